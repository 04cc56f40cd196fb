package application

import "errors"

// Sentinel errors returned by the application services. Callers match them
// with errors.Is; the wrapped cause is kept for diagnostics.
var (
	ErrInvalidToken          = errors.New("token invalid")
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrEmptyContents         = errors.New("item contents are empty")
	ErrSubmissionInFlight    = errors.New("a submission is already in flight")
	ErrSessionEnded          = errors.New("session ended before the result arrived")
	ErrAcquisitionInProgress = errors.New("token prompt already open")
	ErrAcquisitionDeclined   = errors.New("token acquisition declined")
	ErrNoPrompter            = errors.New("no interactive prompt available")
	ErrLocationNotFound      = errors.New("location not found")
)
