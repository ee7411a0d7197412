// Package features computes surface statistics over raw article text.
// These run on the original input, not the normalized form, because
// capitalization and punctuation are exactly what they measure.
package features

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lost-boy7/Fake-News-Analyzer/internal/domain"
)

// sensationalMarkers flag clickbait vocabulary. Each marker counts at
// most once per document, by substring containment.
var sensationalMarkers = []string{
	"shocking", "unbelievable", "amazing", "secret", "miracle",
	"exposed", "breaking", "urgent", "alert",
}

// emotionalMarkers flag emotionally charged vocabulary, counted the
// same way as sensational markers.
var emotionalMarkers = []string{
	"hate", "love", "fear", "angry", "happy", "sad",
}

// Extract computes all text statistics for one document.
func Extract(text string) domain.TextStats {
	words := strings.Fields(text)
	lower := strings.ToLower(text)

	stats := domain.TextStats{
		CharCount:        utf8.RuneCountInString(text),
		WordCount:        len(words),
		AvgWordLength:    avgWordLength(words),
		ExclamationCount: strings.Count(text, "!"),
		QuestionCount:    strings.Count(text, "?"),
		CapitalRatio:     capitalRatio(text),
		SensationalCount: countMarkers(lower, sensationalMarkers),
		EmotionalCount:   countMarkers(lower, emotionalMarkers),
	}
	return stats
}

func avgWordLength(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	total := 0
	for _, w := range words {
		total += utf8.RuneCountInString(w)
	}
	return float64(total) / float64(len(words))
}

func capitalRatio(text string) float64 {
	if text == "" {
		return 0
	}
	upper, total := 0, 0
	for _, r := range text {
		total++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return float64(upper) / float64(total)
}

func countMarkers(lower string, markers []string) int {
	count := 0
	for _, m := range markers {
		if strings.Contains(lower, m) {
			count++
		}
	}
	return count
}
