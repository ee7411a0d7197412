// Package textnorm reduces raw article text to the canonical token form
// consumed by the vectorizer. Cleanup steps run in a fixed order so that
// structural noise (URLs, markup, addresses) is removed before punctuation
// folding can split it into word-shaped fragments.
package textnorm

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	urlPattern        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	emailPattern      = regexp.MustCompile(`\S+@\S+`)
	digitPattern      = regexp.MustCompile(`[0-9]+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// minTokenRunes is the shortest token kept after filtering. Two-letter
// fragments carry almost no signal for this corpus.
const minTokenRunes = 3

// Normalizer holds the stopword set applied during token filtering.
// The zero value is not usable; construct with New.
type Normalizer struct {
	stopwords map[string]struct{}
}

// New creates a normalizer with the built-in English stopword set.
func New() *Normalizer {
	return NewWithStopwords(EnglishStopwords())
}

// NewWithStopwords creates a normalizer with a caller-supplied stopword
// list. Words are matched after lowercasing.
func NewWithStopwords(stopwords []string) *Normalizer {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Normalizer{stopwords: stops}
}

// Normalize runs the full cleanup chain and returns the surviving tokens
// joined by single spaces. Output is stable under re-normalization.
func (n *Normalizer) Normalize(text string) string {
	return strings.Join(n.Tokens(text), " ")
}

// Tokens runs the full cleanup chain and returns the surviving tokens in
// document order. An input with no usable tokens yields an empty slice.
func (n *Normalizer) Tokens(text string) []string {
	cleaned := strings.ToLower(text)
	cleaned = urlPattern.ReplaceAllString(cleaned, "")
	cleaned = tagPattern.ReplaceAllString(cleaned, "")
	cleaned = emailPattern.ReplaceAllString(cleaned, "")
	cleaned = foldPunct(cleaned)
	cleaned = digitPattern.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(whitespacePattern.ReplaceAllString(cleaned, " "))
	if cleaned == "" {
		return nil
	}

	words := strings.Split(cleaned, " ")
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) < minTokenRunes {
			continue
		}
		if _, stop := n.stopwords[w]; stop {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// foldPunct maps every ASCII punctuation character to a space. Unicode
// punctuation is left alone, matching the training corpus conventions.
func foldPunct(s string) string {
	return strings.Map(func(r rune) rune {
		if r < utf8.RuneSelf && strings.ContainsRune(asciiPunct, r) {
			return ' '
		}
		return r
	}, s)
}
