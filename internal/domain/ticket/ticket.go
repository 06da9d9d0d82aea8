package ticket

import (
	"fmt"
	"time"

	"opendesk/internal/domain/ticket/valueobjects"
	"opendesk/internal/shared/biztime"
)

// Ticket is the mutable projection of a support ticket's current state.
// Its append-only reply thread is owned by the Reply entity; every
// change to a loggable field is mirrored there as a log entry.
type Ticket struct {
	id           uint
	code         string
	departmentID uint
	staffID      *uint
	serviceID    *uint
	clientID     *uint
	email        string
	summary      string
	priority     valueobjects.Priority
	status       valueobjects.TicketStatus
	dateAdded    time.Time
	dateClosed   *time.Time
}

func NewTicket(
	departmentID uint,
	summary string,
	priority valueobjects.Priority,
	status valueobjects.TicketStatus,
	clientID *uint,
	serviceID *uint,
	email string,
) (*Ticket, error) {
	if departmentID == 0 {
		return nil, fmt.Errorf("department ID is required")
	}
	if len(summary) == 0 {
		return nil, fmt.Errorf("summary is required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if clientID == nil && email == "" {
		return nil, fmt.Errorf("either a client or an email address is required")
	}

	t := &Ticket{
		departmentID: departmentID,
		summary:      summary,
		priority:     priority,
		status:       status,
		clientID:     clientID,
		serviceID:    serviceID,
		email:        email,
		dateAdded:    biztime.NowUTC(),
	}

	if status.IsClosed() {
		now := biztime.NowUTC()
		t.dateClosed = &now
	}

	return t, nil
}

func ReconstructTicket(
	id uint,
	code string,
	departmentID uint,
	staffID *uint,
	serviceID *uint,
	clientID *uint,
	email string,
	summary string,
	priority valueobjects.Priority,
	status valueobjects.TicketStatus,
	dateAdded time.Time,
	dateClosed *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("ticket code is required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if status.IsClosed() != (dateClosed != nil) {
		return nil, fmt.Errorf("date_closed must be set exactly when status is closed")
	}

	return &Ticket{
		id:           id,
		code:         code,
		departmentID: departmentID,
		staffID:      staffID,
		serviceID:    serviceID,
		clientID:     clientID,
		email:        email,
		summary:      summary,
		priority:     priority,
		status:       status,
		dateAdded:    dateAdded,
		dateClosed:   dateClosed,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Code() string {
	return t.code
}

func (t *Ticket) DepartmentID() uint {
	return t.departmentID
}

func (t *Ticket) StaffID() *uint {
	return t.staffID
}

func (t *Ticket) ServiceID() *uint {
	return t.serviceID
}

func (t *Ticket) ClientID() *uint {
	return t.clientID
}

func (t *Ticket) Email() string {
	return t.email
}

func (t *Ticket) Summary() string {
	return t.summary
}

func (t *Ticket) Priority() valueobjects.Priority {
	return t.priority
}

func (t *Ticket) Status() valueobjects.TicketStatus {
	return t.status
}

func (t *Ticket) DateAdded() time.Time {
	return t.dateAdded
}

func (t *Ticket) DateClosed() *time.Time {
	return t.dateClosed
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) SetCode(code string) error {
	if len(t.code) > 0 {
		return fmt.Errorf("ticket code is already set")
	}
	if len(code) == 0 {
		return fmt.Errorf("ticket code cannot be empty")
	}
	t.code = code
	return nil
}

// MoveToDepartment changes the owning department.
func (t *Ticket) MoveToDepartment(departmentID uint) error {
	if departmentID == 0 {
		return fmt.Errorf("department ID cannot be zero")
	}
	t.departmentID = departmentID
	return nil
}

// Assign sets or clears the current assignee. Nil unassigns.
func (t *Ticket) Assign(staffID *uint) {
	t.staffID = staffID
}

// AttachClient binds the ticket to a client. The binding may only be
// relaxed from nil; an existing client may never be swapped for another.
func (t *Ticket) AttachClient(clientID uint) error {
	if clientID == 0 {
		return fmt.Errorf("client ID cannot be zero")
	}
	if t.clientID != nil && *t.clientID != clientID {
		return fmt.Errorf("ticket already belongs to another client")
	}
	t.clientID = &clientID
	return nil
}

// SetService sets or clears the associated service.
func (t *Ticket) SetService(serviceID *uint) {
	t.serviceID = serviceID
}

// SetEmail updates the free-form contact address used when no client is
// attached.
func (t *Ticket) SetEmail(email string) {
	t.email = email
}

// SetSummary updates the ticket summary.
func (t *Ticket) SetSummary(summary string) error {
	if len(summary) == 0 {
		return fmt.Errorf("summary cannot be empty")
	}
	t.summary = summary
	return nil
}

// ChangePriority updates the ticket priority.
func (t *Ticket) ChangePriority(p valueobjects.Priority) error {
	if !p.IsValid() {
		return fmt.Errorf("invalid priority: %s", p)
	}
	t.priority = p
	return nil
}

// ChangeStatus moves the ticket to the given status. Any status may move
// to any other; the date_closed invariant is maintained here: it is set
// exactly when the ticket enters closed and cleared when it leaves.
func (t *Ticket) ChangeStatus(s valueobjects.TicketStatus) error {
	if !s.IsValid() {
		return fmt.Errorf("invalid status: %s", s)
	}
	if t.status == s {
		return nil
	}

	t.status = s
	if s.IsClosed() {
		now := biztime.NowUTC()
		t.dateClosed = &now
	} else {
		t.dateClosed = nil
	}

	return nil
}

// SameClientIdentity reports whether two tickets belong to the same
// client: either the same non-nil client ID, or, when both are
// email-only, the same address. Merge requires this.
func (t *Ticket) SameClientIdentity(other *Ticket) bool {
	if t.clientID != nil && other.clientID != nil {
		return *t.clientID == *other.clientID
	}
	if t.clientID == nil && other.clientID == nil {
		return t.email != "" && t.email == other.email
	}
	return false
}

// CloneForSplit creates an unsaved ticket copying the source's current
// non-reply fields. The clone receives its own code on save.
func (t *Ticket) CloneForSplit() *Ticket {
	clone := &Ticket{
		departmentID: t.departmentID,
		staffID:      t.staffID,
		serviceID:    t.serviceID,
		clientID:     t.clientID,
		email:        t.email,
		summary:      t.summary,
		priority:     t.priority,
		status:       t.status,
		dateAdded:    biztime.NowUTC(),
	}
	if t.dateClosed != nil {
		closed := *t.dateClosed
		clone.dateClosed = &closed
	}
	return clone
}

func (t *Ticket) Validate() error {
	if t.departmentID == 0 {
		return fmt.Errorf("department ID is required")
	}
	if len(t.summary) == 0 {
		return fmt.Errorf("summary is required")
	}
	if !t.priority.IsValid() {
		return fmt.Errorf("invalid priority")
	}
	if !t.status.IsValid() {
		return fmt.Errorf("invalid status")
	}
	if t.status.IsClosed() != (t.dateClosed != nil) {
		return fmt.Errorf("date_closed must be set exactly when status is closed")
	}
	return nil
}
