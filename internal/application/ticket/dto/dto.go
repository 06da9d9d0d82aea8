package dto

import (
	"time"

	"opendesk/internal/domain/ticket"
)

type TicketDTO struct {
	ID           uint       `json:"id"`
	Code         string     `json:"code"`
	DepartmentID uint       `json:"department_id"`
	StaffID      *uint      `json:"staff_id"`
	ServiceID    *uint      `json:"service_id"`
	ClientID     *uint      `json:"client_id"`
	Email        string     `json:"email,omitempty"`
	Summary      string     `json:"summary"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status"`
	DateAdded    time.Time  `json:"date_added"`
	DateClosed   *time.Time `json:"date_closed"`
	Replies      []ReplyDTO `json:"replies,omitempty"`
}

type ReplyDTO struct {
	ID        uint      `json:"id"`
	TicketID  uint      `json:"ticket_id"`
	StaffID   *uint     `json:"staff_id"`
	ContactID *uint     `json:"contact_id"`
	Type      string    `json:"type"`
	Details   string    `json:"details"`
	DateAdded time.Time `json:"date_added"`
}

type TicketListItemDTO struct {
	ID           uint   `json:"id"`
	Code         string `json:"code"`
	DepartmentID uint   `json:"department_id"`
	StaffID      *uint  `json:"staff_id"`
	Summary      string `json:"summary"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
	DateAdded    string `json:"date_added"`
}

// ToTicketDTO converts a ticket and its thread. Staff-only notes are
// filtered out unless the caller is staff.
func ToTicketDTO(t *ticket.Ticket, replies []*ticket.Reply, staffView bool) *TicketDTO {
	if t == nil {
		return nil
	}

	replyDTOs := make([]ReplyDTO, 0, len(replies))
	for _, r := range replies {
		if r.Type() == "note" && !staffView {
			continue
		}
		replyDTOs = append(replyDTOs, ToReplyDTO(r))
	}

	return &TicketDTO{
		ID:           t.ID(),
		Code:         t.Code(),
		DepartmentID: t.DepartmentID(),
		StaffID:      t.StaffID(),
		ServiceID:    t.ServiceID(),
		ClientID:     t.ClientID(),
		Email:        t.Email(),
		Summary:      t.Summary(),
		Priority:     t.Priority().String(),
		Status:       t.Status().String(),
		DateAdded:    t.DateAdded(),
		DateClosed:   t.DateClosed(),
		Replies:      replyDTOs,
	}
}

func ToReplyDTO(r *ticket.Reply) ReplyDTO {
	return ReplyDTO{
		ID:        r.ID(),
		TicketID:  r.TicketID(),
		StaffID:   r.StaffID(),
		ContactID: r.ContactID(),
		Type:      r.Type().String(),
		Details:   r.Details(),
		DateAdded: r.DateAdded(),
	}
}

func ToTicketListItemDTO(t *ticket.Ticket) TicketListItemDTO {
	return TicketListItemDTO{
		ID:           t.ID(),
		Code:         t.Code(),
		DepartmentID: t.DepartmentID(),
		StaffID:      t.StaffID(),
		Summary:      t.Summary(),
		Priority:     t.Priority().String(),
		Status:       t.Status().String(),
		DateAdded:    t.DateAdded().Format(time.RFC3339),
	}
}
