// Package corpus assembles the labeled training set. Two CSV sources
// feed it, one per class: fabricated articles and authentic ones. When
// either source is missing the loader synthesizes a small bootstrap
// corpus and says so loudly; that path exists for first-run and test
// setups, not for production training.
package corpus

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/lost-boy7/Fake-News-Analyzer/internal/domain"
)

// Config points the loader at its CSV sources. AllowSampleFallback
// permits synthesizing the bootstrap corpus when a source is missing;
// without it a missing source is a training-data error.
type Config struct {
	FabricatedPath      string
	AuthenticPath       string
	AllowSampleFallback bool
}

// Loader reads and labels the raw corpus.
type Loader struct {
	cfg    Config
	logger *zap.Logger
}

// NewLoader creates a corpus loader.
func NewLoader(cfg Config, logger *zap.Logger) *Loader {
	return &Loader{cfg: cfg, logger: logger}
}

// Load returns all labeled samples, fabricated rows first. The second
// return reports whether the bootstrap corpus was synthesized because a
// source file was absent. Rows with no usable text are dropped;
// duplicates are kept and left for Dedupe.
func (l *Loader) Load(_ context.Context) ([]domain.Sample, bool, error) {
	synthesized := false
	if l.missingSource() {
		if !l.cfg.AllowSampleFallback {
			return nil, false, fmt.Errorf("%w: corpus source missing (fabricated=%s, authentic=%s)",
				domain.ErrTrainingData, l.cfg.FabricatedPath, l.cfg.AuthenticPath)
		}
		l.logger.Warn("Training data not found, synthesizing bootstrap corpus",
			zap.String("fabricated", l.cfg.FabricatedPath),
			zap.String("authentic", l.cfg.AuthenticPath))
		if err := writeSampleData(l.cfg.FabricatedPath, l.cfg.AuthenticPath); err != nil {
			return nil, false, fmt.Errorf("%w: synthesize bootstrap corpus: %v", domain.ErrTrainingData, err)
		}
		synthesized = true
	}

	fabricated, err := readLabeled(l.cfg.FabricatedPath, domain.Fabricated)
	if err != nil {
		return nil, synthesized, err
	}
	authentic, err := readLabeled(l.cfg.AuthenticPath, domain.Authentic)
	if err != nil {
		return nil, synthesized, err
	}

	samples := make([]domain.Sample, 0, len(fabricated)+len(authentic))
	samples = append(samples, fabricated...)
	samples = append(samples, authentic...)
	if len(samples) == 0 {
		return nil, synthesized, fmt.Errorf("%w: corpus is empty", domain.ErrTrainingData)
	}
	return samples, synthesized, nil
}

func (l *Loader) missingSource() bool {
	for _, path := range []string{l.cfg.FabricatedPath, l.cfg.AuthenticPath} {
		if _, err := os.Stat(path); err != nil {
			return true
		}
	}
	return false
}

// readLabeled parses one CSV source. The document text comes from the
// "text" column when present, otherwise from "title"; files exposing
// neither are rejected.
func readLabeled(path string, label domain.Label) ([]domain.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrTrainingData, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header of %s: %v", domain.ErrTrainingData, path, err)
	}
	textCol := columnIndex(header, "text")
	if textCol < 0 {
		textCol = columnIndex(header, "title")
	}
	if textCol < 0 {
		return nil, fmt.Errorf("%w: %s has neither a text nor a title column", domain.ErrTrainingData, path)
	}

	var samples []domain.Sample
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", domain.ErrTrainingData, path, err)
		}
		if textCol >= len(record) {
			continue
		}
		text := strings.TrimSpace(record[textCol])
		if text == "" {
			continue
		}
		samples = append(samples, domain.Sample{Text: text, Label: label})
	}
	return samples, nil
}

func columnIndex(header []string, name string) int {
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), name) {
			return i
		}
	}
	return -1
}
