package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/lost-boy7/Fake-News-Analyzer/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	fab := writeFile(t, dir, "fake.csv", "text\nmiracle cure found\naliens landed yesterday\n")
	auth := writeFile(t, dir, "true.csv", "text\nquarterly growth reported\n")

	l := NewLoader(Config{FabricatedPath: fab, AuthenticPath: auth}, zap.NewNop())
	samples, synthesized, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if synthesized {
		t.Error("expected real corpus, got synthesized flag")
	}
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	if samples[0].Label != domain.Fabricated || samples[1].Label != domain.Fabricated {
		t.Error("expected fabricated labels first")
	}
	if samples[2].Label != domain.Authentic {
		t.Error("expected authentic label last")
	}
	if samples[2].Text != "quarterly growth reported" {
		t.Errorf("unexpected text %q", samples[2].Text)
	}
}

func TestLoader_TitleColumnFallback(t *testing.T) {
	dir := t.TempDir()
	fab := writeFile(t, dir, "fake.csv", "title,subject\nshocking headline,politics\n")
	auth := writeFile(t, dir, "true.csv", "title,subject\ncalm headline,business\n")

	l := NewLoader(Config{FabricatedPath: fab, AuthenticPath: auth}, zap.NewNop())
	samples, _, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[0].Text != "shocking headline" {
		t.Errorf("unexpected text %q", samples[0].Text)
	}
}

func TestLoader_DropsBlankRows(t *testing.T) {
	dir := t.TempDir()
	fab := writeFile(t, dir, "fake.csv", "text\nreal content\n\n   \n")
	auth := writeFile(t, dir, "true.csv", "text\nmore content\n")

	l := NewLoader(Config{FabricatedPath: fab, AuthenticPath: auth}, zap.NewNop())
	samples, _, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 2 {
		t.Errorf("expected blank rows dropped, got %d samples", len(samples))
	}
}

func TestLoader_NoUsableColumn(t *testing.T) {
	dir := t.TempDir()
	fab := writeFile(t, dir, "fake.csv", "subject,date\npolitics,2020\n")
	auth := writeFile(t, dir, "true.csv", "text\nfine\n")

	l := NewLoader(Config{FabricatedPath: fab, AuthenticPath: auth}, zap.NewNop())
	if _, _, err := l.Load(context.Background()); !errors.Is(err, domain.ErrTrainingData) {
		t.Errorf("expected ErrTrainingData, got %v", err)
	}
}

func TestLoader_SynthesizesWhenMissing(t *testing.T) {
	dir := t.TempDir()
	fab := filepath.Join(dir, "data", "Fake.csv")
	auth := filepath.Join(dir, "data", "True.csv")

	l := NewLoader(Config{FabricatedPath: fab, AuthenticPath: auth, AllowSampleFallback: true}, zap.NewNop())
	samples, synthesized, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !synthesized {
		t.Error("expected synthesized flag")
	}
	if len(samples) != 2*sampleRepeat*10 {
		t.Errorf("expected %d raw samples, got %d", 2*sampleRepeat*10, len(samples))
	}

	unique := Dedupe(samples)
	if len(unique) != 20 {
		t.Errorf("expected 20 unique samples, got %d", len(unique))
	}

	// The bootstrap corpus lands on disk so the next run loads it directly.
	if _, err := os.Stat(fab); err != nil {
		t.Errorf("fabricated csv not written: %v", err)
	}
	if _, err := os.Stat(auth); err != nil {
		t.Errorf("authentic csv not written: %v", err)
	}
}

func TestLoader_MissingSourceWithoutFallback(t *testing.T) {
	dir := t.TempDir()
	fab := filepath.Join(dir, "data", "Fake.csv")
	auth := filepath.Join(dir, "data", "True.csv")

	l := NewLoader(Config{FabricatedPath: fab, AuthenticPath: auth}, zap.NewNop())
	if _, _, err := l.Load(context.Background()); !errors.Is(err, domain.ErrTrainingData) {
		t.Errorf("expected ErrTrainingData, got %v", err)
	}
	if _, err := os.Stat(fab); err == nil {
		t.Error("expected no bootstrap corpus written in strict mode")
	}
}

func TestDedupe_DuplicatedRowsCollapse(t *testing.T) {
	var samples []domain.Sample
	for i := 0; i < 10; i++ {
		samples = append(samples, domain.Sample{Text: "same fabricated story", Label: domain.Fabricated})
	}
	for i := 0; i < 10; i++ {
		samples = append(samples, domain.Sample{Text: "same authentic story", Label: domain.Authentic})
	}

	unique := Dedupe(samples)
	if len(unique) != 2 {
		t.Fatalf("expected exactly 2 rows after dedupe, got %d", len(unique))
	}
	if unique[0].Label != domain.Fabricated || unique[1].Label != domain.Authentic {
		t.Errorf("unexpected labels after dedupe: %v, %v", unique[0].Label, unique[1].Label)
	}
}

func TestDedupe_FirstOccurrenceWins(t *testing.T) {
	samples := []domain.Sample{
		{Text: "contested story", Label: domain.Fabricated},
		{Text: "contested story", Label: domain.Authentic},
	}
	unique := Dedupe(samples)
	if len(unique) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(unique))
	}
	if unique[0].Label != domain.Fabricated {
		t.Errorf("expected first occurrence kept, got label %v", unique[0].Label)
	}
}

func TestStratifiedSplit_Proportions(t *testing.T) {
	var samples []domain.Sample
	for i := 0; i < 10; i++ {
		samples = append(samples, domain.Sample{Text: "fabricated " + string(rune('a'+i)), Label: domain.Fabricated})
	}
	for i := 0; i < 10; i++ {
		samples = append(samples, domain.Sample{Text: "authentic " + string(rune('a'+i)), Label: domain.Authentic})
	}

	split, err := StratifiedSplit(samples, 0.8, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(split.Train) != 16 {
		t.Errorf("expected 16 training samples, got %d", len(split.Train))
	}
	if len(split.Test) != 4 {
		t.Errorf("expected 4 test samples, got %d", len(split.Test))
	}

	count := func(set []domain.Sample, label domain.Label) int {
		n := 0
		for _, s := range set {
			if s.Label == label {
				n++
			}
		}
		return n
	}
	if count(split.Train, domain.Fabricated) != 8 || count(split.Train, domain.Authentic) != 8 {
		t.Error("training split not stratified")
	}
	if count(split.Test, domain.Fabricated) != 2 || count(split.Test, domain.Authentic) != 2 {
		t.Error("test split not stratified")
	}
}

func TestStratifiedSplit_Deterministic(t *testing.T) {
	var samples []domain.Sample
	for i := 0; i < 6; i++ {
		samples = append(samples, domain.Sample{Text: "f" + string(rune('0'+i)), Label: domain.Fabricated})
		samples = append(samples, domain.Sample{Text: "a" + string(rune('0'+i)), Label: domain.Authentic})
	}

	first, err := StratifiedSplit(samples, 0.8, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := StratifiedSplit(samples, 0.8, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first.Train) != len(second.Train) || len(first.Test) != len(second.Test) {
		t.Fatal("split sizes differ between runs")
	}
	for i := range first.Train {
		if first.Train[i] != second.Train[i] {
			t.Fatalf("training sample %d differs between runs", i)
		}
	}
	for i := range first.Test {
		if first.Test[i] != second.Test[i] {
			t.Fatalf("test sample %d differs between runs", i)
		}
	}
}

func TestStratifiedSplit_TinyClasses(t *testing.T) {
	samples := []domain.Sample{
		{Text: "f1", Label: domain.Fabricated},
		{Text: "f2", Label: domain.Fabricated},
		{Text: "a1", Label: domain.Authentic},
		{Text: "a2", Label: domain.Authentic},
	}
	split, err := StratifiedSplit(samples, 0.8, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(split.Train) != 2 || len(split.Test) != 2 {
		t.Errorf("expected 2/2 split, got %d/%d", len(split.Train), len(split.Test))
	}
}

func TestStratifiedSplit_Errors(t *testing.T) {
	valid := []domain.Sample{
		{Text: "f1", Label: domain.Fabricated},
		{Text: "f2", Label: domain.Fabricated},
		{Text: "a1", Label: domain.Authentic},
		{Text: "a2", Label: domain.Authentic},
	}

	if _, err := StratifiedSplit(valid, 0, 42); !errors.Is(err, domain.ErrTrainingData) {
		t.Errorf("expected ErrTrainingData for zero ratio, got %v", err)
	}
	if _, err := StratifiedSplit(valid, 1, 42); !errors.Is(err, domain.ErrTrainingData) {
		t.Errorf("expected ErrTrainingData for ratio 1, got %v", err)
	}

	oneSided := []domain.Sample{
		{Text: "f1", Label: domain.Fabricated},
		{Text: "f2", Label: domain.Fabricated},
		{Text: "a1", Label: domain.Authentic},
	}
	if _, err := StratifiedSplit(oneSided, 0.8, 42); !errors.Is(err, domain.ErrTrainingData) {
		t.Errorf("expected ErrTrainingData for undersized class, got %v", err)
	}

	invalid := []domain.Sample{{Text: "x", Label: domain.Label(7)}}
	if _, err := StratifiedSplit(invalid, 0.8, 42); !errors.Is(err, domain.ErrTrainingData) {
		t.Errorf("expected ErrTrainingData for invalid label, got %v", err)
	}
}
