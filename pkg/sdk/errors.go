package analyzer

import "github.com/lost-boy7/Fake-News-Analyzer/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotTrained         = domain.ErrNotTrained
	ErrTrainingInProgress = domain.ErrTrainingInProgress
	ErrEmptyInput         = domain.ErrEmptyInput
	ErrTextTooShort       = domain.ErrTextTooShort
	ErrTextTooLong        = domain.ErrTextTooLong
	ErrTrainingData       = domain.ErrTrainingData
	ErrPersistence        = domain.ErrPersistence
	ErrFetchFailed        = domain.ErrFetchFailed
)
