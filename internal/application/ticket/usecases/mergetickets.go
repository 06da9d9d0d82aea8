package usecases

import (
	"context"
	"fmt"

	"opendesk/internal/application/ticket/services"
	"opendesk/internal/domain/directory"
	"opendesk/internal/domain/ticket"
	"opendesk/internal/domain/ticket/valueobjects"
	"opendesk/internal/shared/errors"
	"opendesk/internal/shared/logger"
)

type MergeTicketsCommand struct {
	TargetID  uint
	SourceIDs []uint
}

type MergeTicketsResult struct {
	TargetID uint
	Merged   []uint
}

// MergeTicketsUseCase folds the content history of one or more source
// tickets into a target. Every precondition is validated before any
// mutation; a single violation aborts the whole merge. Reply- and
// note-type entries move to the target; log entries stay with the
// source whose history they describe. Each source then receives a
// system-authored merge notice and is closed.
type MergeTicketsUseCase struct {
	ticketRepo    ticket.TicketRepository
	replyRepo     ticket.ReplyRepository
	directory     directory.Repository
	chlog         *services.ChangeLogSynthesizer
	mailer        EmailDispatcher
	systemStaffID uint
	tx            TransactionRunner
	logger        logger.Interface
}

func NewMergeTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	replyRepo ticket.ReplyRepository,
	dir directory.Repository,
	chlog *services.ChangeLogSynthesizer,
	mailer EmailDispatcher,
	systemStaffID uint,
	tx TransactionRunner,
	log logger.Interface,
) *MergeTicketsUseCase {
	return &MergeTicketsUseCase{
		ticketRepo:    ticketRepo,
		replyRepo:     replyRepo,
		directory:     dir,
		chlog:         chlog,
		mailer:        mailer,
		systemStaffID: systemStaffID,
		tx:            tx,
		logger:        log,
	}
}

func (uc *MergeTicketsUseCase) Execute(ctx context.Context, cmd MergeTicketsCommand) (*MergeTicketsResult, error) {
	uc.logger.Infow("executing merge tickets use case",
		"target_id", cmd.TargetID, "source_count", len(cmd.SourceIDs))

	target, sources, err := uc.validate(ctx, cmd)
	if err != nil {
		return nil, err
	}

	systemActor := ticket.SystemAuthor(uc.systemStaffID)

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		for _, source := range sources {
			if err := uc.replyRepo.ReassignContent(txCtx, source.ID(), target.ID()); err != nil {
				return err
			}

			notice, err := ticket.NewReply(
				source.ID(),
				systemActor,
				valueobjects.ReplyTypeReply,
				fmt.Sprintf("This ticket has been merged into ticket #%s.", target.Code()),
			)
			if err != nil {
				return errors.NewInternalError("failed to build merge notice", err.Error())
			}
			if err := uc.replyRepo.Save(txCtx, notice); err != nil {
				return err
			}

			closed := valueobjects.StatusClosed
			if _, err := applyChangesWithLog(
				txCtx, uc.chlog, uc.ticketRepo, uc.replyRepo, source,
				services.TicketChanges{Status: &closed}, systemActor, true); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("merge failed", "target_id", cmd.TargetID, "error", err)
		return nil, err
	}

	// Merge notices are emailed after commit, best-effort.
	for _, source := range sources {
		uc.notifyMerged(ctx, source, target)
	}

	result := &MergeTicketsResult{TargetID: target.ID(), Merged: make([]uint, 0, len(sources))}
	for _, source := range sources {
		result.Merged = append(result.Merged, source.ID())
	}

	uc.logger.Infow("tickets merged", "target_id", target.ID(), "merged", result.Merged)
	return result, nil
}

// validate checks every merge precondition without mutating anything.
func (uc *MergeTicketsUseCase) validate(ctx context.Context, cmd MergeTicketsCommand) (*ticket.Ticket, []*ticket.Ticket, error) {
	ferrs := errors.FieldErrors{}

	if len(cmd.SourceIDs) == 0 {
		return nil, nil, errors.NewSingleFieldError("source_ids", "Select at least one ticket to merge")
	}

	target, err := uc.ticketRepo.GetByID(ctx, cmd.TargetID)
	if err != nil {
		return nil, nil, err
	}
	if target == nil {
		return nil, nil, errors.NewSingleFieldError("target_id", "Ticket not found")
	}

	targetDept, err := uc.directory.DepartmentByID(ctx, target.DepartmentID())
	if err != nil {
		return nil, nil, err
	}
	if targetDept == nil {
		return nil, nil, errors.NewInternalError("target ticket has no department")
	}

	sources := make([]*ticket.Ticket, 0, len(cmd.SourceIDs))
	for i, sourceID := range cmd.SourceIDs {
		key := fmt.Sprintf("source_ids[%d]", i)

		if sourceID == cmd.TargetID {
			ferrs.Add(key, "A ticket cannot be merged into itself")
			continue
		}

		source, err := uc.ticketRepo.GetByID(ctx, sourceID)
		if err != nil {
			return nil, nil, err
		}
		if source == nil {
			ferrs.Add(key, "Ticket not found")
			continue
		}

		sourceDept, err := uc.directory.DepartmentByID(ctx, source.DepartmentID())
		if err != nil {
			return nil, nil, err
		}
		if sourceDept == nil || sourceDept.CompanyID != targetDept.CompanyID {
			ferrs.Add(key, "Ticket belongs to a different company")
		}
		if source.Status().IsClosed() {
			ferrs.Add(key, "Closed tickets cannot be merged")
		}
		if !target.SameClientIdentity(source) {
			ferrs.Add(key, "Ticket belongs to a different client")
		}

		sources = append(sources, source)
	}

	if len(ferrs) > 0 {
		return nil, nil, errors.NewFieldErrors(ferrs)
	}
	return target, sources, nil
}

func (uc *MergeTicketsUseCase) notifyMerged(ctx context.Context, source, target *ticket.Ticket) {
	to := source.Email()
	if source.ClientID() != nil {
		if client, err := uc.directory.ClientByID(ctx, *source.ClientID()); err == nil && client != nil {
			to = client.Email
		}
	}
	if to == "" {
		return
	}

	var companyID uint
	if dept, err := uc.directory.DepartmentByID(ctx, source.DepartmentID()); err == nil && dept != nil {
		companyID = dept.CompanyID
	}

	err := uc.mailer.Send(ctx, EmailMessage{
		TemplateKey: TemplateTicketMerged,
		CompanyID:   companyID,
		Language:    "en",
		To:          to,
		Tags: map[string]string{
			"ticket_code": source.Code(),
			"target_code": target.Code(),
			"summary":     source.Summary(),
		},
	})
	if err != nil {
		uc.logger.Warnw("merge notification dispatch failed",
			"ticket_id", source.ID(), "error", err)
	}
}
