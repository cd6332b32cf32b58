package portfolio

import "strings"

// Status is the normalized lifecycle state of a project
type Status string

// Project statuses
const (
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on_hold"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists the statuses in form order
var Statuses = []Status{StatusPlanning, StatusInProgress, StatusCompleted, StatusOnHold, StatusCancelled}

// Label returns "In Progress" style text
func (s Status) Label() string { return Humanize(string(s)) }

// ResolveStatus is the single source of truth for a project's status.
// The status sent by the backend wins; both vocabularies the backend has
// used are accepted. A missing or unrecognised status is derived from the
// completion percentage.
func ResolveStatus(stated string, completion int) Status {
	switch strings.ToUpper(strings.TrimSpace(stated)) {
	case "COMPLETED", "FINISHED":
		return StatusCompleted
	case "IN_PROGRESS", "CURRENT":
		return StatusInProgress
	case "PLANNING":
		return StatusPlanning
	case "ON_HOLD", "PAUSED":
		return StatusOnHold
	case "CANCELLED", "CANCELED":
		return StatusCancelled
	}

	switch {
	case completion >= 100:
		return StatusCompleted
	case completion > 0:
		return StatusInProgress
	default:
		return StatusPlanning
	}
}

// ParseStatus accepts a user supplied filter value. ok is false for unknown
// values.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Statuses {
		if st == known {
			return st, true
		}
	}
	return "", false
}
