package features

import (
	"math"
	"strings"
	"testing"
)

func TestExtract_SensationalHeadline(t *testing.T) {
	stats := Extract("SHOCKING secret miracle cure exposed!!")

	if stats.ExclamationCount != 2 {
		t.Errorf("expected 2 exclamation marks, got %d", stats.ExclamationCount)
	}
	if stats.SensationalCount < 3 {
		t.Errorf("expected at least 3 sensational markers, got %d", stats.SensationalCount)
	}
	if stats.WordCount != 5 {
		t.Errorf("expected 5 words, got %d", stats.WordCount)
	}
}

func TestExtract_MarkersCountOncePerDocument(t *testing.T) {
	stats := Extract("shocking shocking shocking")
	if stats.SensationalCount != 1 {
		t.Errorf("repeated marker should count once, got %d", stats.SensationalCount)
	}
}

func TestExtract_MarkersCaseInsensitive(t *testing.T) {
	stats := Extract("BREAKING: Urgent ALERT issued")
	if stats.SensationalCount != 3 {
		t.Errorf("expected 3 sensational markers, got %d", stats.SensationalCount)
	}
}

func TestExtract_EmotionalMarkers(t *testing.T) {
	stats := Extract("They hate the fear and love the outcome")
	if stats.EmotionalCount != 3 {
		t.Errorf("expected 3 emotional markers, got %d", stats.EmotionalCount)
	}
}

func TestExtract_CapitalRatio(t *testing.T) {
	stats := Extract("ABcd")
	if math.Abs(stats.CapitalRatio-0.5) > 1e-9 {
		t.Errorf("expected capital ratio 0.5, got %f", stats.CapitalRatio)
	}
}

func TestExtract_AvgWordLength(t *testing.T) {
	stats := Extract("ab abcd")
	if math.Abs(stats.AvgWordLength-3.0) > 1e-9 {
		t.Errorf("expected average word length 3.0, got %f", stats.AvgWordLength)
	}
}

func TestExtract_Empty(t *testing.T) {
	stats := Extract("")

	if stats.CharCount != 0 || stats.WordCount != 0 {
		t.Errorf("expected zero counts, got chars=%d words=%d", stats.CharCount, stats.WordCount)
	}
	if stats.AvgWordLength != 0 {
		t.Errorf("expected zero average word length, got %f", stats.AvgWordLength)
	}
	if stats.CapitalRatio != 0 {
		t.Errorf("expected zero capital ratio, got %f", stats.CapitalRatio)
	}
}

func TestExtract_CountsRunesNotBytes(t *testing.T) {
	stats := Extract("naïve")
	if stats.CharCount != 5 {
		t.Errorf("expected 5 characters, got %d", stats.CharCount)
	}
}

func TestExtract_NeutralText(t *testing.T) {
	text := "the committee reviewed quarterly results and published its findings"
	stats := Extract(text)

	if stats.SensationalCount != 0 {
		t.Errorf("expected no sensational markers, got %d", stats.SensationalCount)
	}
	if stats.ExclamationCount != 0 || stats.QuestionCount != 0 {
		t.Errorf("expected no punctuation hits, got !=%d ?=%d", stats.ExclamationCount, stats.QuestionCount)
	}
	if stats.WordCount != len(strings.Fields(text)) {
		t.Errorf("word count mismatch: %d", stats.WordCount)
	}
}
