package usecases

import (
	"context"
	"strings"

	"opendesk/internal/application/ticket/services"
	"opendesk/internal/domain/directory"
	"opendesk/internal/domain/ticket"
	"opendesk/internal/domain/ticket/valueobjects"
	"opendesk/internal/shared/errors"
	"opendesk/internal/shared/logger"
)

// AddReplyCommand is the input to the central write primitive. Changes
// carries the loggable-field updates arriving with the reply; IsNewTicket
// selects the opening-message email template.
type AddReplyCommand struct {
	TicketID    uint
	StaffID     *uint
	ContactID   *uint
	Type        string
	Details     string
	Attachments []UploadFile
	Changes     services.TicketChanges
	IsNewTicket bool
}

type AddReplyResult struct {
	// ReplyID is zero when the reply was skipped as log-only (no
	// content, only field changes).
	ReplyID         uint
	LogEntries      int
	EmailDispatched bool
}

// AddReplyUseCase appends an entry to a ticket's thread and applies any
// accompanying field changes. Every other write path (edit, close,
// merge notices, auto-close canned replies) funnels through it.
type AddReplyUseCase struct {
	ticketRepo     ticket.TicketRepository
	replyRepo      ticket.ReplyRepository
	attachmentRepo ticket.AttachmentRepository
	directory      directory.Repository
	chlog          *services.ChangeLogSynthesizer
	store          AttachmentStore
	mailer         EmailDispatcher
	replyCoder     *ticket.ReplyCoder
	sanitizer      Sanitizer
	tx             TransactionRunner
	logger         logger.Interface
}

func NewAddReplyUseCase(
	ticketRepo ticket.TicketRepository,
	replyRepo ticket.ReplyRepository,
	attachmentRepo ticket.AttachmentRepository,
	dir directory.Repository,
	chlog *services.ChangeLogSynthesizer,
	store AttachmentStore,
	mailer EmailDispatcher,
	replyCoder *ticket.ReplyCoder,
	sanitizer Sanitizer,
	tx TransactionRunner,
	log logger.Interface,
) *AddReplyUseCase {
	return &AddReplyUseCase{
		ticketRepo:     ticketRepo,
		replyRepo:      replyRepo,
		attachmentRepo: attachmentRepo,
		directory:      dir,
		chlog:          chlog,
		store:          store,
		mailer:         mailer,
		replyCoder:     replyCoder,
		sanitizer:      sanitizer,
		tx:             tx,
		logger:         log,
	}
}

func (uc *AddReplyUseCase) Execute(ctx context.Context, cmd AddReplyCommand) (*AddReplyResult, error) {
	uc.logger.Infow("executing add reply use case", "ticket_id", cmd.TicketID)

	rtype := valueobjects.ReplyTypeReply
	if cmd.Type != "" {
		parsed, err := valueobjects.NewReplyType(cmd.Type)
		if err != nil {
			return nil, errors.NewSingleFieldError("type", "Invalid reply type")
		}
		rtype = parsed
	}
	if rtype.IsLog() {
		// Log entries are synthesized internally, never submitted.
		return nil, errors.NewSingleFieldError("type", "Invalid reply type")
	}

	author := ticket.Author{StaffID: cmd.StaffID, ContactID: cmd.ContactID}
	if author.StaffID != nil && author.ContactID != nil {
		return nil, errors.NewSingleFieldError("author", "A reply has exactly one author")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.NewSingleFieldError("ticket_id", "Ticket not found")
	}

	details, err := uc.effectiveDetails(ctx, author, cmd.Details)
	if err != nil {
		return nil, err
	}

	diff, err := uc.chlog.Diff(ctx, t, cmd.Changes)
	if err != nil {
		return nil, errors.NewInternalError("failed to diff ticket changes", err.Error())
	}

	// A reply with no content, no attachments, and no field changes is
	// contentless and rejected outright.
	if details == "" && len(cmd.Attachments) == 0 && len(diff) == 0 {
		return nil, errors.NewSingleFieldError("details", "Please enter a reply")
	}

	// Attachments are written to the store before any database work so a
	// store failure aborts cleanly with nothing persisted. The store
	// removes its own partial writes.
	var stored []StoredFile
	if len(cmd.Attachments) > 0 {
		stored, err = uc.store.Write(ctx, t.ID(), cmd.Attachments)
		if err != nil {
			uc.logger.Errorw("attachment store write failed", "error", err, "ticket_id", t.ID())
			return nil, errors.NewDependencyError("failed to store attachments", err.Error())
		}
	}

	result := &AddReplyResult{}

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		// The content row is skipped when the reply would be contentless:
		// field changes alone produce only log entries.
		if details != "" || len(stored) > 0 {
			reply, err := ticket.NewReply(t.ID(), author, rtype, details)
			if err != nil {
				return errors.NewValidationError(err.Error())
			}
			if err := uc.replyRepo.Save(txCtx, reply); err != nil {
				return err
			}
			result.ReplyID = reply.ID()

			if len(stored) > 0 {
				attachments := make([]*ticket.Attachment, 0, len(stored))
				for _, f := range stored {
					a, err := ticket.NewAttachment(reply.ID(), f.OriginalName, f.StoredPath)
					if err != nil {
						return errors.NewValidationError(err.Error())
					}
					attachments = append(attachments, a)
				}
				if err := uc.attachmentRepo.SaveAll(txCtx, attachments); err != nil {
					return err
				}
			}
		}

		changes, err := applyChangesWithLog(
			txCtx, uc.chlog, uc.ticketRepo, uc.replyRepo, t, cmd.Changes, author, true)
		if err != nil {
			return err
		}
		result.LogEntries = len(changes)
		return nil
	})
	if err != nil {
		if len(stored) > 0 {
			if rmErr := uc.store.Remove(ctx, stored); rmErr != nil {
				uc.logger.Errorw("failed to clean up stored attachments", "error", rmErr)
			}
		}
		return nil, err
	}

	// Notifications are best-effort side effects outside the atomicity
	// boundary. A dispatch failure is logged and reported on the result,
	// never rolled back into the committed write.
	if rtype == valueobjects.ReplyTypeReply && result.ReplyID != 0 {
		result.EmailDispatched = uc.notify(ctx, t, author, details, cmd.IsNewTicket)
	}

	uc.logger.Infow("reply recorded",
		"ticket_id", t.ID(), "reply_id", result.ReplyID, "log_entries", result.LogEntries)

	return result, nil
}

// effectiveDetails sanitizes the submitted body and suppresses
// signature-only content: a staff reply consisting of nothing but the
// author's stored signature is treated as empty.
func (uc *AddReplyUseCase) effectiveDetails(ctx context.Context, author ticket.Author, raw string) (string, error) {
	details := strings.TrimSpace(uc.sanitizer.Sanitize(raw))
	if details == "" || author.StaffID == nil {
		return details, nil
	}

	staff, err := uc.directory.StaffByID(ctx, *author.StaffID)
	if err != nil {
		return "", errors.NewInternalError("failed to look up staff", err.Error())
	}
	if staff != nil && staff.Signature != "" &&
		details == strings.TrimSpace(uc.sanitizer.Sanitize(staff.Signature)) {
		return "", nil
	}
	return details, nil
}

// notify dispatches the ticket-updated email. The template depends on
// whether the author is staff, a client/contact, or the ticket's own
// email address.
func (uc *AddReplyUseCase) notify(ctx context.Context, t *ticket.Ticket, author ticket.Author, details string, isNewTicket bool) bool {
	to := t.Email()
	if t.ClientID() != nil {
		client, err := uc.directory.ClientByID(ctx, *t.ClientID())
		if err != nil || client == nil {
			uc.logger.Warnw("could not resolve ticket client for notification",
				"ticket_id", t.ID(), "error", err)
		} else {
			to = client.Email
		}
	}
	if to == "" {
		return false
	}

	var companyID uint
	if dept, err := uc.directory.DepartmentByID(ctx, t.DepartmentID()); err == nil && dept != nil {
		companyID = dept.CompanyID
	}

	templateKey := TemplateTicketEmailUpdate
	switch {
	case isNewTicket:
		templateKey = TemplateTicketOpened
	case author.IsStaff():
		templateKey = TemplateTicketStaffResponse
	case author.IsContact():
		templateKey = TemplateTicketClientUpdate
	}

	msg := EmailMessage{
		TemplateKey: templateKey,
		CompanyID:   companyID,
		Language:    "en",
		To:          to,
		Tags: map[string]string{
			"ticket_code": t.Code(),
			"reply_code":  uc.replyCoder.Generate(t.Code()),
			"summary":     t.Summary(),
			"status":      t.Status().Label(),
			"message":     details,
		},
	}

	if err := uc.mailer.Send(ctx, msg); err != nil {
		uc.logger.Warnw("ticket notification dispatch failed",
			"ticket_id", t.ID(), "template", templateKey, "error", err)
		return false
	}
	return true
}
