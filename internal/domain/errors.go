package domain

import "errors"

// Domain errors - these are business logic errors that should be translated
// to appropriate HTTP status codes by the handler layer

var (
	// Contest errors
	ErrContestNotFound     = errors.New("contest not found")
	ErrContestStarted      = errors.New("contest has already started")
	ErrContestProblemLimit = errors.New("contest already holds the maximum number of problems")
	ErrInvalidProblemLink  = errors.New("invalid problem link")
	ErrNoProblemForRating  = errors.New("no problem found for given rating")

	// Standings errors
	ErrNoProblems         = errors.New("contest has no problems")
	ErrInvalidParticipant = errors.New("participant must be an individual handle or a team of 1-3 members")

	// General errors
	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
)

// DomainError wraps an error with additional context
type DomainError struct {
	Err     error
	Message string
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &DomainError{
		Err:     err,
		Message: message,
	}
}
