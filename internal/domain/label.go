package domain

import "fmt"

// Label is the binary document class. The ordinal values double as the
// class index used by training data and the classifier.
type Label int

const (
	// Fabricated marks a document judged to be fake/misleading content.
	Fabricated Label = 0
	// Authentic marks a document judged to be genuine content.
	Authentic Label = 1

	// NumLabels is the number of classes the system distinguishes.
	NumLabels = 2
)

// IsValid checks that the label is one of the two known classes.
func (l Label) IsValid() bool {
	return l == Fabricated || l == Authentic
}

// String returns the outward-facing tag for the label.
func (l Label) String() string {
	switch l {
	case Fabricated:
		return "FABRICATED"
	case Authentic:
		return "AUTHENTIC"
	default:
		return fmt.Sprintf("Label(%d)", int(l))
	}
}

// Key returns the lowercase identifier used in probability breakdowns
// and metric labels.
func (l Label) Key() string {
	switch l {
	case Fabricated:
		return "fabricated"
	case Authentic:
		return "authentic"
	default:
		return "unknown"
	}
}
