package model

import "strings"

// ShortageStatus is the state of a material shortage.
type ShortageStatus string

const (
	ShortageOpen     ShortageStatus = "OPEN"
	ShortageResolved ShortageStatus = "RESOLVED"
)

// Valid reports whether s is a known shortage status.
func (s ShortageStatus) Valid() bool {
	return s == ShortageOpen || s == ShortageResolved
}

// ParseShortageStatus maps a string onto a ShortageStatus, defaulting to
// open for unrecognised values.
func ParseShortageStatus(s string) ShortageStatus {
	if strings.EqualFold(strings.TrimSpace(s), string(ShortageResolved)) {
		return ShortageResolved
	}
	return ShortageOpen
}

// Shortage is a material shortage blocking a job. Jobs with an open
// shortage are excluded from normal scheduling.
type Shortage struct {
	ID          string         `json:"id"`
	JobNumber   string         `json:"job_number"`
	Description string         `json:"description"`
	Part        string         `json:"part,omitempty"`
	Quantity    int            `json:"quantity,omitempty"`
	Status      ShortageStatus `json:"status"`
	Notes       string         `json:"notes,omitempty"`
	DateAdded   Date           `json:"date_added"`
}

// NewShortage returns an open shortage for the given job with a
// generated ID, dated today.
func NewShortage(jobNumber, description string) Shortage {
	return Shortage{
		ID:          shortID(),
		JobNumber:   jobNumber,
		Description: description,
		Status:      ShortageOpen,
		DateAdded:   Today(),
	}
}
