package usecases

import (
	"context"
	"time"

	"opendesk/internal/domain/ticket/valueobjects"
	"opendesk/internal/shared/logger"
)

type CloseTicketCommand struct {
	TicketID uint
	// ByStaffID is the closing actor; nil means the client closed it.
	ByStaffID *uint
}

type CloseTicketResult struct {
	TicketID   uint
	Status     string
	DateClosed *time.Time
}

// CloseTicketUseCase is a convenience wrapper over edit forcing
// status=closed. The current assignee is preserved: closing a ticket
// does not unassign it.
type CloseTicketUseCase struct {
	edit   EditTicketExecutor
	logger logger.Interface
}

func NewCloseTicketUseCase(edit EditTicketExecutor, log logger.Interface) *CloseTicketUseCase {
	return &CloseTicketUseCase{edit: edit, logger: log}
}

func (uc *CloseTicketUseCase) Execute(ctx context.Context, cmd CloseTicketCommand) (*CloseTicketResult, error) {
	uc.logger.Infow("executing close ticket use case", "ticket_id", cmd.TicketID)

	closed := valueobjects.StatusClosed.String()
	updated, err := uc.edit.Execute(ctx, EditTicketCommand{
		TicketID:  cmd.TicketID,
		Status:    &closed,
		Log:       true,
		ByStaffID: cmd.ByStaffID,
	})
	if err != nil {
		return nil, err
	}

	return &CloseTicketResult{
		TicketID:   updated.ID,
		Status:     updated.Status,
		DateClosed: updated.DateClosed,
	}, nil
}
