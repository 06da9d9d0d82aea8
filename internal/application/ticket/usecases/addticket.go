package usecases

import (
	"context"
	"time"

	"opendesk/internal/domain/directory"
	"opendesk/internal/domain/ticket"
	"opendesk/internal/domain/ticket/valueobjects"
	"opendesk/internal/shared/errors"
	"opendesk/internal/shared/logger"
	"opendesk/internal/shared/validation"
)

// codeInsertAttempts bounds the insert-retry loop for generated ticket
// codes. Collisions are detected by the unique index, never by a
// pre-check, so concurrent adds cannot slip a duplicate through.
const codeInsertAttempts = 3

// TransactionRunner executes a function inside one database transaction.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type AddTicketCommand struct {
	DepartmentID uint
	Summary      string
	Priority     string
	Status       string
	ClientID     *uint
	ServiceID    *uint
	Email        string
}

type AddTicketResult struct {
	TicketID  uint
	Code      string
	Status    string
	DateAdded time.Time
}

type AddTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	directory  directory.Repository
	codes      ticket.CodeGenerator
	tx         TransactionRunner
	logger     logger.Interface
}

func NewAddTicketUseCase(
	ticketRepo ticket.TicketRepository,
	dir directory.Repository,
	codes ticket.CodeGenerator,
	tx TransactionRunner,
	log logger.Interface,
) *AddTicketUseCase {
	return &AddTicketUseCase{
		ticketRepo: ticketRepo,
		directory:  dir,
		codes:      codes,
		tx:         tx,
		logger:     log,
	}
}

func (uc *AddTicketUseCase) Execute(ctx context.Context, cmd AddTicketCommand) (*AddTicketResult, error) {
	uc.logger.Infow("executing add ticket use case",
		"department_id", cmd.DepartmentID, "summary", cmd.Summary)

	if ferrs := uc.rules().Validate(ctx, cmd.values()); len(ferrs) > 0 {
		uc.logger.Warnw("add ticket validation failed", "fields", ferrs)
		return nil, errors.NewFieldErrors(ferrs)
	}

	priority := valueobjects.Priority(cmd.Priority)
	if cmd.Priority == "" {
		priority = valueobjects.PriorityMedium
	}
	status := valueobjects.TicketStatus(cmd.Status)
	if cmd.Status == "" {
		status = valueobjects.StatusOpen
	}

	newTicket, err := ticket.NewTicket(
		cmd.DepartmentID,
		cmd.Summary,
		priority,
		status,
		cmd.ClientID,
		cmd.ServiceID,
		cmd.Email,
	)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.saveWithFreshCode(ctx, newTicket); err != nil {
		uc.logger.Errorw("failed to save ticket", "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket created", "ticket_id", newTicket.ID(), "code", newTicket.Code())

	return &AddTicketResult{
		TicketID:  newTicket.ID(),
		Code:      newTicket.Code(),
		Status:    newTicket.Status().String(),
		DateAdded: newTicket.DateAdded(),
	}, nil
}

// saveWithFreshCode inserts the ticket under a newly generated code,
// retrying on a duplicate-key error from the unique index.
func (uc *AddTicketUseCase) saveWithFreshCode(ctx context.Context, t *ticket.Ticket) error {
	var lastErr error

	for attempt := 0; attempt < codeInsertAttempts; attempt++ {
		code, err := uc.codes.Generate(ctx)
		if err != nil {
			return errors.NewInternalError("failed to generate ticket code", err.Error())
		}

		fresh := *t
		if err := fresh.SetCode(code); err != nil {
			return errors.NewInternalError("failed to set ticket code", err.Error())
		}

		err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
			return uc.ticketRepo.Save(txCtx, &fresh)
		})
		if err == nil {
			*t = fresh
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

func (uc *AddTicketUseCase) rules() *validation.RuleSet {
	return validation.NewRuleSet("ticket.add").
		Require("department_id", "Please select a department").
		CheckPresent("department_id", validation.Exists("Department not found",
			func(ctx context.Context, id uint) (bool, error) {
				dept, err := uc.directory.DepartmentByID(ctx, id)
				return dept != nil, err
			})).
		Require("summary", "Please enter a summary").
		Check("summary", validation.MaxLen(255, "Summary may not exceed 255 characters")).
		CheckPresent("priority", validation.OneOf("Invalid priority",
			priorityStrings()...)).
		CheckPresent("status", validation.OneOf("Invalid status",
			statusStrings()...)).
		CheckPresent("client_id", validation.Exists("Client not found",
			func(ctx context.Context, id uint) (bool, error) {
				client, err := uc.directory.ClientByID(ctx, id)
				return client != nil, err
			})).
		CheckPresent("service_id", uc.serviceOwnershipCheck()).
		Check("email", uc.contactEmailCheck())
}

// serviceOwnershipCheck verifies a candidate service exists and belongs
// to the client named in the same input.
func (uc *AddTicketUseCase) serviceOwnershipCheck() validation.CheckFunc {
	return func(ctx context.Context, value any, all validation.Values) error {
		serviceID, ok := all.Uint("service_id")
		if !ok || serviceID == 0 {
			return nil
		}
		svc, err := uc.directory.ServiceByID(ctx, serviceID)
		if err != nil || svc == nil {
			return errServiceNotFound
		}
		clientID, _ := all.Uint("client_id")
		if clientID == 0 || svc.ClientID != clientID {
			return errServiceNotOwned
		}
		return nil
	}
}

// contactEmailCheck requires a well-formed email when it is the sole
// identifying contact (no client attached).
func (uc *AddTicketUseCase) contactEmailCheck() validation.CheckFunc {
	emailFormat := validation.Email("Invalid email address")
	return func(ctx context.Context, value any, all validation.Values) error {
		if _, hasClient := all.Uint("client_id"); hasClient {
			return emailFormat(ctx, value, all)
		}
		if all.Empty("email") {
			return errEmailRequired
		}
		return emailFormat(ctx, value, all)
	}
}

func (cmd AddTicketCommand) values() validation.Values {
	v := validation.Values{
		"summary": cmd.Summary,
		"email":   cmd.Email,
	}
	if cmd.DepartmentID != 0 {
		v["department_id"] = cmd.DepartmentID
	}
	if cmd.Priority != "" {
		v["priority"] = cmd.Priority
	}
	if cmd.Status != "" {
		v["status"] = cmd.Status
	}
	if cmd.ClientID != nil {
		v["client_id"] = *cmd.ClientID
	}
	if cmd.ServiceID != nil {
		v["service_id"] = *cmd.ServiceID
	}
	return v
}

func priorityStrings() []string {
	all := valueobjects.AllPriorities()
	out := make([]string, len(all))
	for i, p := range all {
		out[i] = p.String()
	}
	return out
}

func statusStrings() []string {
	all := valueobjects.AllStatuses()
	out := make([]string, len(all))
	for i, s := range all {
		out[i] = s.String()
	}
	return out
}
