package usecases

import (
	"context"

	"opendesk/internal/application/ticket/services"
	"opendesk/internal/domain/ticket"
	"opendesk/internal/domain/ticket/valueobjects"
	"opendesk/internal/shared/errors"
)

// applyChangesWithLog is the two-phase pipeline behind every write path
// that touches loggable fields: diff the proposed values against the
// current ticket, apply them, persist the ticket, then append one
// log-type reply per changed field in the fixed order. Must run inside
// the caller's transaction so the field update and its log entries
// commit atomically.
func applyChangesWithLog(
	ctx context.Context,
	chlog *services.ChangeLogSynthesizer,
	ticketRepo ticket.TicketRepository,
	replyRepo ticket.ReplyRepository,
	t *ticket.Ticket,
	changes services.TicketChanges,
	actor ticket.Author,
	log bool,
) ([]services.FieldChange, error) {
	if changes.Empty() {
		return nil, nil
	}

	diff, err := chlog.Diff(ctx, t, changes)
	if err != nil {
		return nil, err
	}

	if err := chlog.Apply(t, changes); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := ticketRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	if !log {
		return diff, nil
	}

	for _, change := range diff {
		if err := appendLogEntry(ctx, replyRepo, t.ID(), actor, change.Message); err != nil {
			return nil, err
		}
	}

	return diff, nil
}

// appendLogEntry records one change-description entry on the thread.
// Deliberately non-recursive: log entries never trigger further logs.
func appendLogEntry(
	ctx context.Context,
	replyRepo ticket.ReplyRepository,
	ticketID uint,
	actor ticket.Author,
	message string,
) error {
	entry, err := ticket.NewReply(ticketID, actor, valueobjects.ReplyTypeLog, message)
	if err != nil {
		return errors.NewInternalError("failed to build log entry", err.Error())
	}
	return replyRepo.Save(ctx, entry)
}
