package usecases

import (
	"context"

	"opendesk/internal/application/ticket/dto"
	"opendesk/internal/domain/ticket"
	"opendesk/internal/shared/errors"
	"opendesk/internal/shared/logger"
)

type GetTicketByCodeCommand struct {
	Code string
	// ReplyCode, when set, must match the HMAC derived from the ticket
	// code. Inbound email routing passes the value parsed from the
	// subject line; an empty value skips verification.
	ReplyCode string
	StaffView bool
}

type GetTicketByCodeUseCase struct {
	ticketRepo ticket.TicketRepository
	replyRepo  ticket.ReplyRepository
	replyCoder *ticket.ReplyCoder
	logger     logger.Interface
}

func NewGetTicketByCodeUseCase(
	ticketRepo ticket.TicketRepository,
	replyRepo ticket.ReplyRepository,
	replyCoder *ticket.ReplyCoder,
	log logger.Interface,
) *GetTicketByCodeUseCase {
	return &GetTicketByCodeUseCase{
		ticketRepo: ticketRepo,
		replyRepo:  replyRepo,
		replyCoder: replyCoder,
		logger:     log,
	}
}

func (uc *GetTicketByCodeUseCase) Execute(ctx context.Context, cmd GetTicketByCodeCommand) (*dto.TicketDTO, error) {
	if cmd.Code == "" {
		return nil, errors.NewSingleFieldError("code", "Please enter a ticket code")
	}

	t, err := uc.ticketRepo.GetByCode(ctx, cmd.Code)
	if err != nil {
		uc.logger.Errorw("failed to get ticket by code", "code", cmd.Code, "error", err)
		return nil, err
	}
	if t == nil {
		return nil, errors.NewSingleFieldError("code", "Ticket not found")
	}

	if cmd.ReplyCode != "" && !uc.replyCoder.Verify(t.Code(), cmd.ReplyCode) {
		uc.logger.Warnw("reply code verification failed", "code", cmd.Code)
		return nil, errors.NewSingleFieldError("reply_code", "Ticket not found")
	}

	replies, err := uc.replyRepo.GetByTicketID(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to load replies", "ticket_id", t.ID(), "error", err)
		return nil, err
	}

	return dto.ToTicketDTO(t, replies, cmd.StaffView), nil
}
