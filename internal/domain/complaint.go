package domain

import (
	"errors"
	"time"
)

// Status is a complaint's position in its lifecycle. Closed set; validated
// at the HTTP boundary.
type Status string

const (
	StatusOpen       Status = "open"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
)

// ErrUnknownStatus reports a status value outside the closed set.
var ErrUnknownStatus = errors.New("domain: unknown complaint status")

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusAssigned, StatusInProgress, StatusResolved:
		return Status(s), nil
	default:
		return "", ErrUnknownStatus
	}
}

func (s Status) String() string { return string(s) }

// Complaint is a citizen-filed ticket. StaffID is nil until an admin assigns
// it to a staff member.
type Complaint struct {
	ID              string
	UserID          string
	StaffID         *string
	Title           string
	Description     string
	Category        string
	Status          Status
	ResolutionNotes *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StatusCounts is the admin statistics overview: total complaints plus a
// breakdown per lifecycle status.
type StatusCounts struct {
	Total      int64
	Open       int64
	Assigned   int64
	InProgress int64
	Resolved   int64
}

// CategoryCount is one row of the per-category breakdown.
type CategoryCount struct {
	Category string
	Count    int64
}
