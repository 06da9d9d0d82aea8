package valueobjects

import "fmt"

type TicketStatus string

const (
	StatusOpen          TicketStatus = "open"
	StatusAwaitingReply TicketStatus = "awaiting_reply"
	StatusInProgress    TicketStatus = "in_progress"
	StatusClosed        TicketStatus = "closed"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusOpen:          true,
	StatusAwaitingReply: true,
	StatusInProgress:    true,
	StatusClosed:        true,
}

var ticketStatusLabels = map[TicketStatus]string{
	StatusOpen:          "Open",
	StatusAwaitingReply: "Awaiting Reply",
	StatusInProgress:    "In Progress",
	StatusClosed:        "Closed",
}

func (ts TicketStatus) String() string {
	return string(ts)
}

// Label returns the human-readable status label used in change-log entries.
func (ts TicketStatus) Label() string {
	return ticketStatusLabels[ts]
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) IsClosed() bool {
	return ts == StatusClosed
}

func (ts TicketStatus) IsInProgress() bool {
	return ts == StatusInProgress
}

// AutoCloseEligible reports whether the inactivity sweep may close a
// ticket in this status. In-progress and already-closed tickets are
// excluded.
func (ts TicketStatus) AutoCloseEligible() bool {
	return ts != StatusInProgress && ts != StatusClosed
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid status: %s", s)
	}
	return ts, nil
}

// AllStatuses returns every valid status value.
func AllStatuses() []TicketStatus {
	return []TicketStatus{StatusOpen, StatusAwaitingReply, StatusInProgress, StatusClosed}
}
