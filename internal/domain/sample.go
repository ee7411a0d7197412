package domain

// Sample is one labeled training document. Samples are transient: they live
// for the duration of a training run and are never persisted.
type Sample struct {
	Text  string
	Label Label
}

// TextStats holds the auxiliary descriptive statistics computed over the
// raw (pre-normalization) text of a document. They enrich prediction
// responses and are never fed into the classifier.
type TextStats struct {
	CharCount        int
	WordCount        int
	AvgWordLength    float64
	ExclamationCount int
	QuestionCount    int
	CapitalRatio     float64
	SensationalCount int
	EmotionalCount   int
}
