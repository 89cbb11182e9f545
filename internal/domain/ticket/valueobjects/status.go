package valueobjects

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in-progress"
	StatusResolved   TicketStatus = "resolved"
)

// AllStatuses lists statuses in lifecycle order.
var AllStatuses = []TicketStatus{StatusOpen, StatusInProgress, StatusResolved}

var validTicketStatuses = map[TicketStatus]bool{
	StatusOpen:       true,
	StatusInProgress: true,
	StatusResolved:   true,
}

var titleCaser = cases.Title(language.English)

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

// CanTransitionTo allows any jump between known statuses. Moving to the
// current status is a no-op for the caller, not an error.
func (ts TicketStatus) CanTransitionTo(newStatus TicketStatus) bool {
	return ts.IsValid() && newStatus.IsValid()
}

func (ts TicketStatus) IsResolved() bool {
	return ts == StatusResolved
}

// AcceptsMessages is false once a ticket is resolved.
func (ts TicketStatus) AcceptsMessages() bool {
	return !ts.IsResolved()
}

// Label renders the status for display, e.g. "In Progress".
func (ts TicketStatus) Label() string {
	return titleCaser.String(strings.ReplaceAll(string(ts), "-", " "))
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}

// IsValidTicketStatus is the binding check for the ticketstatus tag.
func IsValidTicketStatus(s string) bool {
	return TicketStatus(s).IsValid()
}
