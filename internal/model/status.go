package model

import "fmt"

// Status is the tracked application status of a job for one user.
// There is no transition graph: the user may move a job between any of the
// four states at will, matching the tracker UI's status buttons.
type Status string

const (
	StatusNotApplied Status = "Not Applied"
	StatusApplied    Status = "Applied"
	StatusRejected   Status = "Rejected"
	StatusSelected   Status = "Selected"
)

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusNotApplied, StatusApplied, StatusRejected, StatusSelected:
		return st, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

// Recordable reports whether a transition to this status is written to the
// status history log. Reverting to "Not Applied" is not recorded.
func (s Status) Recordable() bool {
	switch s {
	case StatusApplied, StatusRejected, StatusSelected:
		return true
	}
	return false
}
