package usecases

import (
	"context"

	"opendesk/internal/application/ticket/dto"
	"opendesk/internal/application/ticket/services"
	"opendesk/internal/domain/directory"
	"opendesk/internal/domain/ticket"
	"opendesk/internal/domain/ticket/valueobjects"
	"opendesk/internal/shared/errors"
	"opendesk/internal/shared/logger"
	"opendesk/internal/shared/validation"
)

// EditTicketCommand is a partial update: nil pointers leave the field
// unchanged. The assignee carries a set flag because nil is a meaningful
// value (unassign). ByStaffID is the acting staff member recorded on
// synthesized log entries; nil means the client or system acted.
type EditTicketCommand struct {
	TicketID     uint
	DepartmentID *uint
	Assignee     *uint
	AssigneeSet  bool
	Summary      *string
	Priority     *string
	Status       *string
	ClientID     *uint
	ServiceID    *uint
	Email        *string
	Log          bool
	ByStaffID    *uint
}

// Changes extracts the loggable-field portion of the command.
func (cmd EditTicketCommand) Changes() services.TicketChanges {
	changes := services.TicketChanges{
		DepartmentID: cmd.DepartmentID,
		Assignee:     cmd.Assignee,
		AssigneeSet:  cmd.AssigneeSet,
		Summary:      cmd.Summary,
	}
	if cmd.Priority != nil {
		p := valueobjects.Priority(*cmd.Priority)
		changes.Priority = &p
	}
	if cmd.Status != nil {
		s := valueobjects.TicketStatus(*cmd.Status)
		changes.Status = &s
	}
	return changes
}

// EditTicketUseCase validates and applies a partial update, emitting one
// log entry per changed loggable field. Returns the updated ticket
// without its thread.
type EditTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	replyRepo  ticket.ReplyRepository
	directory  directory.Repository
	chlog      *services.ChangeLogSynthesizer
	tx         TransactionRunner
	logger     logger.Interface
}

func NewEditTicketUseCase(
	ticketRepo ticket.TicketRepository,
	replyRepo ticket.ReplyRepository,
	dir directory.Repository,
	chlog *services.ChangeLogSynthesizer,
	tx TransactionRunner,
	log logger.Interface,
) *EditTicketUseCase {
	return &EditTicketUseCase{
		ticketRepo: ticketRepo,
		replyRepo:  replyRepo,
		directory:  dir,
		chlog:      chlog,
		tx:         tx,
		logger:     log,
	}
}

func (uc *EditTicketUseCase) Execute(ctx context.Context, cmd EditTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing edit ticket use case", "ticket_id", cmd.TicketID)

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.NewSingleFieldError("ticket_id", "Ticket not found")
	}

	if ferrs := uc.rules(t).Validate(ctx, cmd.values()); len(ferrs) > 0 {
		uc.logger.Warnw("edit ticket validation failed", "ticket_id", cmd.TicketID, "fields", ferrs)
		return nil, errors.NewFieldErrors(ferrs)
	}

	actor := ticket.Author{StaffID: cmd.ByStaffID}

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if cmd.ClientID != nil {
			if err := t.AttachClient(*cmd.ClientID); err != nil {
				return errors.NewSingleFieldError("client_id", err.Error())
			}
		}
		if cmd.ServiceID != nil {
			serviceID := *cmd.ServiceID
			t.SetService(&serviceID)
		}
		if cmd.Email != nil {
			t.SetEmail(*cmd.Email)
		}

		changes := cmd.Changes()
		if changes.Empty() {
			return uc.ticketRepo.Update(txCtx, t)
		}

		_, err := applyChangesWithLog(
			txCtx, uc.chlog, uc.ticketRepo, uc.replyRepo, t, changes, actor, cmd.Log)
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to edit ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket edited", "ticket_id", t.ID())

	// Replies are deliberately not loaded on the edit result.
	return dto.ToTicketDTO(t, nil, true), nil
}

func (uc *EditTicketUseCase) rules(current *ticket.Ticket) *validation.RuleSet {
	return validation.NewRuleSet("ticket.edit").
		CheckPresent("department_id", validation.Exists("Department not found",
			func(ctx context.Context, id uint) (bool, error) {
				dept, err := uc.directory.DepartmentByID(ctx, id)
				return dept != nil, err
			})).
		CheckPresent("assignee", validation.Exists("Staff member not found",
			func(ctx context.Context, id uint) (bool, error) {
				staff, err := uc.directory.StaffByID(ctx, id)
				return staff != nil, err
			})).
		CheckPresent("summary", func(ctx context.Context, value any, all validation.Values) error {
			if all.Empty("summary") {
				return errSummaryEmpty
			}
			return nil
		}).
		CheckPresent("summary", validation.MaxLen(255, "Summary may not exceed 255 characters")).
		CheckPresent("priority", validation.OneOf("Invalid priority", priorityStrings()...)).
		CheckPresent("status", validation.OneOf("Invalid status", statusStrings()...)).
		CheckPresent("client_id", uc.clientGuard(current)).
		CheckPresent("service_id", uc.serviceGuard(current)).
		CheckPresent("email", validation.Email("Invalid email address"))
}

// clientGuard enforces the one-way client binding: a nil client may be
// set, an existing one may never be swapped.
func (uc *EditTicketUseCase) clientGuard(current *ticket.Ticket) validation.CheckFunc {
	return func(ctx context.Context, value any, all validation.Values) error {
		clientID, ok := all.Uint("client_id")
		if !ok || clientID == 0 {
			return errClientInvalid
		}
		if existing := current.ClientID(); existing != nil && *existing != clientID {
			return errClientReassign
		}
		client, err := uc.directory.ClientByID(ctx, clientID)
		if err != nil || client == nil {
			return errClientNotFound
		}
		return nil
	}
}

// serviceGuard verifies a candidate service belongs to the ticket's
// client (the incoming one when the edit also attaches a client).
func (uc *EditTicketUseCase) serviceGuard(current *ticket.Ticket) validation.CheckFunc {
	return func(ctx context.Context, value any, all validation.Values) error {
		serviceID, ok := all.Uint("service_id")
		if !ok || serviceID == 0 {
			return errServiceNotFound
		}
		svc, err := uc.directory.ServiceByID(ctx, serviceID)
		if err != nil || svc == nil {
			return errServiceNotFound
		}

		clientID, hasCandidate := all.Uint("client_id")
		if !hasCandidate {
			if existing := current.ClientID(); existing != nil {
				clientID = *existing
			}
		}
		if clientID == 0 || svc.ClientID != clientID {
			return errServiceNotOwned
		}
		return nil
	}
}

func (cmd EditTicketCommand) values() validation.Values {
	v := validation.Values{}
	if cmd.DepartmentID != nil {
		v["department_id"] = *cmd.DepartmentID
	}
	if cmd.AssigneeSet && cmd.Assignee != nil {
		v["assignee"] = *cmd.Assignee
	}
	if cmd.Summary != nil {
		v["summary"] = *cmd.Summary
	}
	if cmd.Priority != nil {
		v["priority"] = *cmd.Priority
	}
	if cmd.Status != nil {
		v["status"] = *cmd.Status
	}
	if cmd.ClientID != nil {
		v["client_id"] = *cmd.ClientID
	}
	if cmd.ServiceID != nil {
		v["service_id"] = *cmd.ServiceID
	}
	if cmd.Email != nil {
		v["email"] = *cmd.Email
	}
	return v
}
