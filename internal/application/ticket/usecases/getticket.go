package usecases

import (
	"context"

	"opendesk/internal/application/ticket/dto"
	"opendesk/internal/domain/ticket"
	"opendesk/internal/shared/errors"
	"opendesk/internal/shared/logger"
)

type GetTicketCommand struct {
	TicketID uint
	// StaffView determines whether note-type entries are included.
	StaffView bool
}

type GetTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	replyRepo  ticket.ReplyRepository
	logger     logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	replyRepo ticket.ReplyRepository,
	log logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		replyRepo:  replyRepo,
		logger:     log,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, cmd GetTicketCommand) (*dto.TicketDTO, error) {
	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}
	if t == nil {
		return nil, errors.NewSingleFieldError("ticket_id", "Ticket not found")
	}

	replies, err := uc.replyRepo.GetByTicketID(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to load replies", "ticket_id", t.ID(), "error", err)
		return nil, err
	}

	return dto.ToTicketDTO(t, replies, cmd.StaffView), nil
}
