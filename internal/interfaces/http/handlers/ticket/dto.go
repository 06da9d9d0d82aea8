package ticket

import (
	"encoding/base64"
	"strconv"

	"github.com/gin-gonic/gin"

	"opendesk/internal/application/ticket/services"
	"opendesk/internal/application/ticket/usecases"
	vo "opendesk/internal/domain/ticket/valueobjects"
	"opendesk/internal/shared/errors"
	"opendesk/internal/shared/utils"
)

type AddTicketRequest struct {
	DepartmentID uint   `json:"department_id"`
	Summary      string `json:"summary"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
	ClientID     *uint  `json:"client_id,omitempty"`
	ServiceID    *uint  `json:"service_id,omitempty"`
	Email        string `json:"email"`
}

func (r *AddTicketRequest) ToCommand() usecases.AddTicketCommand {
	return usecases.AddTicketCommand{
		DepartmentID: r.DepartmentID,
		Summary:      r.Summary,
		Priority:     r.Priority,
		Status:       r.Status,
		ClientID:     r.ClientID,
		ServiceID:    r.ServiceID,
		Email:        r.Email,
	}
}

// AttachmentPayload carries a base64-encoded attachment body.
type AttachmentPayload struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type AddReplyRequest struct {
	Type        string              `json:"type"`
	Details     string              `json:"details"`
	Attachments []AttachmentPayload `json:"attachments,omitempty"`

	// NewTicket marks the opening message of a freshly created ticket so
	// the confirmation email is sent instead of an update notification.
	NewTicket bool `json:"new_ticket"`

	DepartmentID *uint   `json:"department_id,omitempty"`
	Assignee     *uint   `json:"assignee,omitempty"`
	AssigneeSet  bool    `json:"assignee_set"`
	Summary      *string `json:"summary,omitempty"`
	Priority     *string `json:"priority,omitempty"`
	Status       *string `json:"status,omitempty"`
}

func (r *AddReplyRequest) ToCommand(ticketID uint, actor Identity) (usecases.AddReplyCommand, error) {
	files := make([]usecases.UploadFile, 0, len(r.Attachments))
	for _, a := range r.Attachments {
		content, err := base64.StdEncoding.DecodeString(a.Content)
		if err != nil {
			return usecases.AddReplyCommand{}, errors.NewSingleFieldError("attachments", "Invalid attachment encoding")
		}
		files = append(files, usecases.UploadFile{Name: a.Name, Content: content})
	}

	changes := services.TicketChanges{
		DepartmentID: r.DepartmentID,
		Assignee:     r.Assignee,
		AssigneeSet:  r.AssigneeSet,
		Summary:      r.Summary,
	}
	if r.Priority != nil {
		p, err := vo.NewPriority(*r.Priority)
		if err != nil {
			return usecases.AddReplyCommand{}, errors.NewSingleFieldError("priority", "Invalid priority")
		}
		changes.Priority = &p
	}
	if r.Status != nil {
		s, err := vo.NewTicketStatus(*r.Status)
		if err != nil {
			return usecases.AddReplyCommand{}, errors.NewSingleFieldError("status", "Invalid status")
		}
		changes.Status = &s
	}

	return usecases.AddReplyCommand{
		TicketID:    ticketID,
		StaffID:     actor.StaffID,
		ContactID:   actor.ContactID,
		Type:        r.Type,
		Details:     r.Details,
		Attachments: files,
		IsNewTicket: r.NewTicket,
		Changes:     changes,
	}, nil
}

type EditTicketRequest struct {
	DepartmentID *uint   `json:"department_id,omitempty"`
	Assignee     *uint   `json:"assignee,omitempty"`
	AssigneeSet  bool    `json:"assignee_set"`
	Summary      *string `json:"summary,omitempty"`
	Priority     *string `json:"priority,omitempty"`
	Status       *string `json:"status,omitempty"`
	ClientID     *uint   `json:"client_id,omitempty"`
	ServiceID    *uint   `json:"service_id,omitempty"`
	Email        *string `json:"email,omitempty"`

	// Log controls synthesis of audit log entries for the changed
	// fields. Logging is the default; omitting the field keeps it on,
	// callers opt out with an explicit false.
	Log *bool `json:"log,omitempty"`
}

func (r *EditTicketRequest) ToCommand(ticketID uint, byStaffID *uint) usecases.EditTicketCommand {
	return usecases.EditTicketCommand{
		TicketID:     ticketID,
		DepartmentID: r.DepartmentID,
		Assignee:     r.Assignee,
		AssigneeSet:  r.AssigneeSet,
		Summary:      r.Summary,
		Priority:     r.Priority,
		Status:       r.Status,
		ClientID:     r.ClientID,
		ServiceID:    r.ServiceID,
		Email:        r.Email,
		Log:          r.Log == nil || *r.Log,
		ByStaffID:    byStaffID,
	}
}

type BulkEditFieldsRequest struct {
	DepartmentID *uint   `json:"department_id,omitempty"`
	Assignee     *uint   `json:"assignee,omitempty"`
	AssigneeSet  bool    `json:"assignee_set"`
	Summary      *string `json:"summary,omitempty"`
	Priority     *string `json:"priority,omitempty"`
	Status       *string `json:"status,omitempty"`
	ServiceID    *uint   `json:"service_id,omitempty"`
}

func (r *BulkEditFieldsRequest) toFields() usecases.BulkEditFields {
	return usecases.BulkEditFields{
		DepartmentID: r.DepartmentID,
		Assignee:     r.Assignee,
		AssigneeSet:  r.AssigneeSet,
		Summary:      r.Summary,
		Priority:     r.Priority,
		Status:       r.Status,
		ServiceID:    r.ServiceID,
	}
}

type BulkEditRequest struct {
	TicketIDs []uint                  `json:"ticket_ids"`
	Shared    *BulkEditFieldsRequest  `json:"shared,omitempty"`
	PerTicket []BulkEditFieldsRequest `json:"per_ticket,omitempty"`
}

func (r *BulkEditRequest) ToCommand(byStaffID *uint) usecases.BulkEditCommand {
	input := usecases.BulkEditInput{}
	if r.Shared != nil {
		shared := r.Shared.toFields()
		input.Shared = &shared
	}
	if len(r.PerTicket) > 0 {
		input.PerTicket = make([]usecases.BulkEditFields, len(r.PerTicket))
		for i, f := range r.PerTicket {
			input.PerTicket[i] = f.toFields()
		}
	}

	return usecases.BulkEditCommand{
		TicketIDs: r.TicketIDs,
		Input:     input,
		ByStaffID: byStaffID,
	}
}

type MergeTicketsRequest struct {
	TargetID  uint   `json:"target_id"`
	SourceIDs []uint `json:"source_ids"`
}

type SplitTicketRequest struct {
	ReplyIDs []uint `json:"reply_ids"`
}

func parseListTicketsRequest(c *gin.Context) (usecases.ListTicketsCommand, error) {
	page, pageSize := utils.ParsePagination(c)

	cmd := usecases.ListTicketsCommand{
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		Page:      page,
		PageSize:  pageSize,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	for param, dest := range map[string]**uint{
		"department_id": &cmd.DepartmentID,
		"staff_id":      &cmd.StaffID,
		"client_id":     &cmd.ClientID,
	} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return cmd, errors.NewSingleFieldError(param, "Invalid "+param)
		}
		v := uint(id)
		*dest = &v
	}

	return cmd, nil
}
