package valueobjects

import "fmt"

type Priority string

const (
	PriorityEmergency Priority = "emergency"
	PriorityCritical  Priority = "critical"
	PriorityHigh      Priority = "high"
	PriorityMedium    Priority = "medium"
	PriorityLow       Priority = "low"
)

var validPriorities = map[Priority]bool{
	PriorityEmergency: true,
	PriorityCritical:  true,
	PriorityHigh:      true,
	PriorityMedium:    true,
	PriorityLow:       true,
}

var priorityLabels = map[Priority]string{
	PriorityEmergency: "Emergency",
	PriorityCritical:  "Critical",
	PriorityHigh:      "High",
	PriorityMedium:    "Medium",
	PriorityLow:       "Low",
}

func (p Priority) String() string {
	return string(p)
}

// Label returns the human-readable priority label used in change-log entries.
func (p Priority) Label() string {
	return priorityLabels[p]
}

func (p Priority) IsValid() bool {
	return validPriorities[p]
}

func NewPriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %s", s)
	}
	return p, nil
}

// AllPriorities returns every valid priority value.
func AllPriorities() []Priority {
	return []Priority{PriorityEmergency, PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}
}
