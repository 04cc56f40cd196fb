package model

// Submission is a single item on its way to Dynalist. It is consumed by one
// outbound request and never persisted.
type Submission struct {
	ID          string // Correlates log lines for one submit; never sent.
	Contents    string
	Note        string
	Destination Location
}
