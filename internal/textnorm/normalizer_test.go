package textnorm

import (
	"strings"
	"testing"
)

func TestNormalizer_Normalize(t *testing.T) {
	n := New()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "lowercases and strips punctuation",
			in:   "SHOCKING secret miracle cure exposed!!",
			want: "shocking secret miracle cure exposed",
		},
		{
			name: "removes urls",
			in:   "read more at https://example.com/story?id=1 and www.example.org today",
			want: "read today",
		},
		{
			name: "removes html tags",
			in:   "<p>Breaking news</p> from the <a href=\"x\">front</a> lines",
			want: "breaking news front lines",
		},
		{
			name: "removes email addresses",
			in:   "contact tips@newsroom.example immediately",
			want: "contact immediately",
		},
		{
			name: "removes digit runs",
			in:   "covid-19 cases rose 1500 percent since 2020",
			want: "covid cases rose percent since",
		},
		{
			name: "drops stopwords and short tokens",
			in:   "it is a cat on the mat",
			want: "cat mat",
		},
		{
			name: "collapses whitespace",
			in:   "strange \t\n  gaps    everywhere",
			want: "strange gaps everywhere",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "whitespace only",
			in:   "   \t\n  ",
			want: "",
		},
		{
			name: "punctuation only",
			in:   "!!! ??? ... ---",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizer_Idempotent(t *testing.T) {
	n := New()

	inputs := []string{
		"SHOCKING secret miracle cure exposed!!",
		"Scientists discover habitable planet near Alpha Centauri https://example.com/x",
		"<div>Markets rallied 3% on Tuesday, analysts said.</div>",
		"plain already-normalized words remain untouched",
		"",
	}

	for _, in := range inputs {
		once := n.Normalize(in)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("normalization not stable for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestNormalizer_Tokens(t *testing.T) {
	n := New()

	tokens := n.Tokens("The SHOCKING truth they don't want revealed!")
	want := []string{"shocking", "truth", "want", "revealed"}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i, tok := range want {
		if tokens[i] != tok {
			t.Errorf("token %d: expected %q, got %q", i, tok, tokens[i])
		}
	}
}

func TestNormalizer_TokensEmpty(t *testing.T) {
	n := New()
	if got := n.Tokens("the of and"); len(got) != 0 {
		t.Errorf("expected no tokens from pure stopwords, got %v", got)
	}
}

func TestNewWithStopwords_CustomList(t *testing.T) {
	n := NewWithStopwords([]string{"breaking"})

	got := n.Normalize("Breaking news tonight")
	if strings.Contains(got, "breaking") {
		t.Errorf("custom stopword survived: %q", got)
	}
	if !strings.Contains(got, "news") {
		t.Errorf("expected 'news' kept, got %q", got)
	}
}

func TestNormalizer_OrderMatters(t *testing.T) {
	n := New()

	// The URL must vanish whole; folding its punctuation first would leave
	// word-shaped fragments like "https" and "example" behind.
	got := n.Normalize("visit https://example.com/breaking-news-2024 now")
	if strings.Contains(got, "example") || strings.Contains(got, "https") {
		t.Errorf("url fragments leaked into output: %q", got)
	}
	if got != "visit" {
		t.Errorf("expected %q, got %q", "visit", got)
	}
}
