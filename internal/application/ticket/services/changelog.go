// Package services holds application services shared by the ticket
// lifecycle usecases.
package services

import (
	"context"
	"fmt"

	"opendesk/internal/domain/directory"
	"opendesk/internal/domain/ticket"
	"opendesk/internal/domain/ticket/valueobjects"
)

// TicketChanges is a typed partial update of a ticket's loggable fields.
// Nil pointers mean "leave unchanged". The assignee carries a separate
// set flag because nil is a meaningful value (unassign).
type TicketChanges struct {
	DepartmentID *uint
	Assignee     *uint
	AssigneeSet  bool
	Summary      *string
	Priority     *valueobjects.Priority
	Status       *valueobjects.TicketStatus
}

// Empty reports whether no loggable field is being changed.
func (c TicketChanges) Empty() bool {
	return c.DepartmentID == nil && !c.AssigneeSet && c.Summary == nil &&
		c.Priority == nil && c.Status == nil
}

// FieldChange is one synthesized change-log entry: the field that
// changed and the human-readable sentence recorded for it.
type FieldChange struct {
	Field   string
	Message string
}

// Loggable field names in their fixed emission order. Status is last
// deliberately: when an edit closes a ticket, the closing log entry must
// be the newest, most visible one.
const (
	FieldDepartment = "department_id"
	FieldAssignee   = "assignee"
	FieldSummary    = "summary"
	FieldPriority   = "priority"
	FieldStatus     = "status"
)

// ChangeLogSynthesizer diffs proposed field values against the current
// ticket state and produces one ordered log message per field that
// actually changes value.
type ChangeLogSynthesizer struct {
	directory directory.Repository
}

func NewChangeLogSynthesizer(dir directory.Repository) *ChangeLogSynthesizer {
	return &ChangeLogSynthesizer{directory: dir}
}

// Diff returns the ordered list of changes the proposed edit would make
// to the ticket's loggable fields. Fields whose proposed value equals
// the current value produce nothing.
func (s *ChangeLogSynthesizer) Diff(
	ctx context.Context,
	current *ticket.Ticket,
	changes TicketChanges,
) ([]FieldChange, error) {
	var out []FieldChange

	if changes.DepartmentID != nil && *changes.DepartmentID != current.DepartmentID() {
		dept, err := s.directory.DepartmentByID(ctx, *changes.DepartmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up department: %w", err)
		}
		name := fmt.Sprintf("#%d", *changes.DepartmentID)
		if dept != nil {
			name = dept.Name
		}
		out = append(out, FieldChange{
			Field:   FieldDepartment,
			Message: "The department has been changed to " + name + ".",
		})
	}

	if changes.AssigneeSet && !uintPtrEqual(changes.Assignee, current.StaffID()) {
		label := "Unassigned"
		if changes.Assignee != nil {
			staff, err := s.directory.StaffByID(ctx, *changes.Assignee)
			if err != nil {
				return nil, fmt.Errorf("failed to look up staff: %w", err)
			}
			label = fmt.Sprintf("#%d", *changes.Assignee)
			if staff != nil {
				label = staff.FullName()
			}
		}
		out = append(out, FieldChange{
			Field:   FieldAssignee,
			Message: "The ticket has been assigned to " + label + ".",
		})
	}

	if changes.Summary != nil && *changes.Summary != current.Summary() {
		out = append(out, FieldChange{
			Field:   FieldSummary,
			Message: "The summary has been changed to " + *changes.Summary + ".",
		})
	}

	if changes.Priority != nil && *changes.Priority != current.Priority() {
		out = append(out, FieldChange{
			Field:   FieldPriority,
			Message: "The priority has been changed to " + changes.Priority.Label() + ".",
		})
	}

	if changes.Status != nil && *changes.Status != current.Status() {
		out = append(out, FieldChange{
			Field:   FieldStatus,
			Message: "The status has been changed to " + changes.Status.Label() + ".",
		})
	}

	return out, nil
}

// Apply mutates the ticket entity with every set field. Diff and Apply
// are separate phases so log messages always describe a transition that
// actually happened.
func (s *ChangeLogSynthesizer) Apply(t *ticket.Ticket, changes TicketChanges) error {
	if changes.DepartmentID != nil {
		if err := t.MoveToDepartment(*changes.DepartmentID); err != nil {
			return err
		}
	}
	if changes.AssigneeSet {
		t.Assign(changes.Assignee)
	}
	if changes.Summary != nil {
		if err := t.SetSummary(*changes.Summary); err != nil {
			return err
		}
	}
	if changes.Priority != nil {
		if err := t.ChangePriority(*changes.Priority); err != nil {
			return err
		}
	}
	if changes.Status != nil {
		if err := t.ChangeStatus(*changes.Status); err != nil {
			return err
		}
	}
	return nil
}

func uintPtrEqual(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
