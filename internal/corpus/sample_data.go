package corpus

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// sampleRepeat inflates the bootstrap corpus with duplicate rows; the
// training path deduplicates them again, which keeps that code exercised
// on first runs.
const sampleRepeat = 100

var fabricatedSamples = []string{
	"SHOCKING: Scientists discover miracle cure that doctors don't want you to know!",
	"BREAKING: Aliens confirmed by government officials in secret meeting!",
	"You won't believe what this celebrity said about politics!",
	"This one weird trick will make you rich overnight!",
	"Government hiding the truth about this dangerous conspiracy!",
	"EXPOSED: The secret they don't want you to see!",
	"URGENT: Share this before it gets deleted!",
	"AMAZING discovery that will change everything!",
	"Click here for the truth they're hiding from you!",
	"BREAKING NEWS: Unbelievable revelation about famous person!",
}

var authenticSamples = []string{
	"According to recent studies published in Nature, researchers have made progress in understanding climate change.",
	"The university announced new findings in medical research conducted over three years.",
	"Economic indicators suggest steady growth in the manufacturing sector, experts report.",
	"Scientists at MIT have developed a new approach to renewable energy storage.",
	"Government officials announced policy changes following extensive public consultation.",
	"Research published in peer-reviewed journals indicates progress in cancer treatment.",
	"The Federal Reserve reported quarterly economic data showing moderate growth.",
	"Academic institutions collaborate on international research project.",
	"Public health officials provide updates on vaccination programs.",
	"Technology companies announce new developments in software security.",
}

// writeSampleData materializes the bootstrap corpus as CSV files at the
// configured source paths.
func writeSampleData(fabricatedPath, authenticPath string) error {
	if err := writeTextCSV(fabricatedPath, fabricatedSamples); err != nil {
		return err
	}
	return writeTextCSV(authenticPath, authenticSamples)
}

func writeTextCSV(path string, texts []string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"text"}); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for i := 0; i < sampleRepeat; i++ {
		for _, text := range texts {
			if err := w.Write([]string{text}); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}
