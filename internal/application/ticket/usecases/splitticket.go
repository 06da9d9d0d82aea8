package usecases

import (
	"context"
	"fmt"

	"opendesk/internal/domain/ticket"
	"opendesk/internal/shared/errors"
	"opendesk/internal/shared/logger"
)

type SplitTicketCommand struct {
	TicketID  uint
	ReplyIDs  []uint
	ByStaffID *uint
}

type SplitTicketResult struct {
	NewTicketID  uint
	NewCode      string
	MovedReplies []uint
}

// SplitTicketUseCase carves selected replies out of a ticket into a
// fresh one. The clone copies every ticket field except id and code;
// the original must keep at least one reply-type entry and the
// selection must move at least one. Log entries never move.
type SplitTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	replyRepo  ticket.ReplyRepository
	codes      ticket.CodeGenerator
	tx         TransactionRunner
	logger     logger.Interface
}

func NewSplitTicketUseCase(
	ticketRepo ticket.TicketRepository,
	replyRepo ticket.ReplyRepository,
	codes ticket.CodeGenerator,
	tx TransactionRunner,
	log logger.Interface,
) *SplitTicketUseCase {
	return &SplitTicketUseCase{
		ticketRepo: ticketRepo,
		replyRepo:  replyRepo,
		codes:      codes,
		tx:         tx,
		logger:     log,
	}
}

func (uc *SplitTicketUseCase) Execute(ctx context.Context, cmd SplitTicketCommand) (*SplitTicketResult, error) {
	uc.logger.Infow("executing split ticket use case",
		"ticket_id", cmd.TicketID, "reply_count", len(cmd.ReplyIDs))

	source, err := uc.validate(ctx, cmd)
	if err != nil {
		return nil, err
	}

	clone := source.CloneForSplit()

	if err := uc.insertCloneAndMove(ctx, clone, cmd.ReplyIDs); err != nil {
		uc.logger.Errorw("split failed", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket split",
		"ticket_id", source.ID(), "new_ticket_id", clone.ID(), "moved", cmd.ReplyIDs)

	return &SplitTicketResult{
		NewTicketID:  clone.ID(),
		NewCode:      clone.Code(),
		MovedReplies: cmd.ReplyIDs,
	}, nil
}

func (uc *SplitTicketUseCase) validate(ctx context.Context, cmd SplitTicketCommand) (*ticket.Ticket, error) {
	if len(cmd.ReplyIDs) == 0 {
		return nil, errors.NewSingleFieldError("reply_ids", "Select at least one reply to move")
	}

	source, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, errors.NewSingleFieldError("ticket_id", "Ticket not found")
	}

	replies, err := uc.replyRepo.GetByIDs(ctx, cmd.ReplyIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*ticket.Reply, len(replies))
	for _, r := range replies {
		byID[r.ID()] = r
	}

	ferrs := errors.FieldErrors{}
	selectedReplies := 0
	for i, id := range cmd.ReplyIDs {
		key := fmt.Sprintf("reply_ids[%d]", i)
		r, ok := byID[id]
		if !ok || r.TicketID() != source.ID() {
			ferrs.Add(key, "Reply does not belong to this ticket")
			continue
		}
		if !r.Type().IsContent() {
			ferrs.Add(key, "Log entries cannot be moved")
			continue
		}
		if r.Type().IsReply() {
			selectedReplies++
		}
	}
	if len(ferrs) > 0 {
		return nil, errors.NewFieldErrors(ferrs)
	}

	if selectedReplies == 0 {
		return nil, errors.NewSingleFieldError("reply_ids", "Select at least one reply to move")
	}

	remaining, err := uc.replyRepo.CountRepliesExcluding(ctx, source.ID(), cmd.ReplyIDs)
	if err != nil {
		return nil, err
	}
	if remaining == 0 {
		return nil, errors.NewSingleFieldError("reply_ids", "The original ticket must keep at least one reply")
	}

	return source, nil
}

// insertCloneAndMove runs the clone insert and the reply move in one
// transaction, retrying the whole transaction when the generated code
// collides with an existing one.
func (uc *SplitTicketUseCase) insertCloneAndMove(ctx context.Context, clone *ticket.Ticket, replyIDs []uint) error {
	var lastErr error

	for attempt := 0; attempt < codeInsertAttempts; attempt++ {
		code, err := uc.codes.Generate(ctx)
		if err != nil {
			return errors.NewInternalError("failed to generate ticket code", err.Error())
		}

		fresh := *clone
		if err := fresh.SetCode(code); err != nil {
			return errors.NewInternalError("failed to set ticket code", err.Error())
		}

		err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
			if err := uc.ticketRepo.Save(txCtx, &fresh); err != nil {
				return err
			}
			return uc.replyRepo.ReassignByIDs(txCtx, replyIDs, fresh.ID())
		})
		if err == nil {
			*clone = fresh
			return nil
		}
		if !errors.IsDuplicateError(err) {
			return err
		}

		lastErr = err
		uc.logger.Warnw("ticket code collision, retrying",
			"code", code, "attempt", attempt+1)
	}

	return errors.NewConflictError("could not allocate a unique ticket code", lastErr.Error())
}
