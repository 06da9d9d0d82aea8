package mappers

import (
	"fmt"
	"time"

	"opendesk/internal/domain/ticket"
	vo "opendesk/internal/domain/ticket/valueobjects"
	"opendesk/internal/infrastructure/persistence/models"
	"opendesk/internal/shared/biztime"
)

// TicketMapper handles the conversion between ticket domain entities and
// persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)

	ReplyToModel(r *ticket.Reply) *models.ReplyModel
	ReplyToDomain(model *models.ReplyModel) (*ticket.Reply, error)

	AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel
	AttachmentToDomain(model *models.AttachmentModel) (*ticket.Attachment, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	model := &models.TicketModel{
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
		DateAdded:    t.DateAdded().UnixMilli(),
	}

	if t.DateClosed() != nil {
		closed := t.DateClosed().UnixMilli()
		model.DateClosed = &closed
	}

	return model
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, fmt.Errorf("invalid priority in ticket %d: %w", model.ID, err)
	}
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid status in ticket %d: %w", model.ID, err)
	}

	t, err := ticket.ReconstructTicket(
		model.ID,
		model.Code,
		model.DepartmentID,
		model.StaffID,
		model.ServiceID,
		model.ClientID,
		model.Email,
		model.Summary,
		priority,
		status,
		biztime.FromUnixMilli(model.DateAdded),
		milliToTimePtr(model.DateClosed),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct ticket %d: %w", model.ID, err)
	}
	return t, nil
}

func (m *TicketMapperImpl) ReplyToModel(r *ticket.Reply) *models.ReplyModel {
	return &models.ReplyModel{
		ID:        r.ID(),
		TicketID:  r.TicketID(),
		StaffID:   r.Author().StaffID,
		ContactID: r.Author().ContactID,
		Type:      r.Type().String(),
		Details:   r.Details(),
		DateAdded: r.DateAdded().UnixMilli(),
	}
}

func (m *TicketMapperImpl) ReplyToDomain(model *models.ReplyModel) (*ticket.Reply, error) {
	rtype, err := vo.NewReplyType(model.Type)
	if err != nil {
		return nil, fmt.Errorf("invalid type in reply %d: %w", model.ID, err)
	}

	r, err := ticket.ReconstructReply(
		model.ID,
		model.TicketID,
		ticket.Author{StaffID: model.StaffID, ContactID: model.ContactID},
		rtype,
		model.Details,
		biztime.FromUnixMilli(model.DateAdded),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct reply %d: %w", model.ID, err)
	}
	return r, nil
}

func (m *TicketMapperImpl) AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel {
	return &models.AttachmentModel{
		ID:         a.ID(),
		ReplyID:    a.ReplyID(),
		Name:       a.Name(),
		StoredPath: a.StoredPath(),
	}
}

func (m *TicketMapperImpl) AttachmentToDomain(model *models.AttachmentModel) (*ticket.Attachment, error) {
	a, err := ticket.ReconstructAttachment(model.ID, model.ReplyID, model.Name, model.StoredPath)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct attachment %d: %w", model.ID, err)
	}
	return a, nil
}

func milliToTimePtr(v *int64) *time.Time {
	if v == nil {
		return nil
	}
	t := biztime.FromUnixMilli(*v)
	return &t
}
