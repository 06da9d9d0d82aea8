package usecases

import (
	"context"
	"fmt"

	"opendesk/internal/domain/directory"
	"opendesk/internal/domain/ticket"
	"opendesk/internal/shared/errors"
	"opendesk/internal/shared/logger"
)

// BulkEditFields is the per-ticket field set of a bulk edit. It mirrors
// EditTicketCommand without the ticket identity.
type BulkEditFields struct {
	DepartmentID *uint
	Assignee     *uint
	AssigneeSet  bool
	Summary      *string
	Priority     *string
	Status       *string
	ServiceID    *uint
}

// BulkEditInput is a tagged variant: either one field set applied to
// every ticket, or one field set per ticket. Exactly one side is set.
type BulkEditInput struct {
	Shared    *BulkEditFields
	PerTicket []BulkEditFields
}

func (in BulkEditInput) validate(ticketCount int) error {
	if (in.Shared == nil) == (in.PerTicket == nil) {
		return errors.NewBadRequestError("bulk edit input must be either shared or per-ticket fields")
	}
	if in.PerTicket != nil && len(in.PerTicket) != ticketCount {
		return errors.NewBadRequestError(
			fmt.Sprintf("per-ticket fields count %d does not match ticket count %d",
				len(in.PerTicket), ticketCount))
	}
	return nil
}

// fieldsFor returns the candidate fields for the i-th ticket.
func (in BulkEditInput) fieldsFor(i int) BulkEditFields {
	if in.Shared != nil {
		return *in.Shared
	}
	return in.PerTicket[i]
}

type BulkEditCommand struct {
	TicketIDs []uint
	Input     BulkEditInput
	ByStaffID *uint
}

type BulkEditItemResult struct {
	TicketID uint
	Err      error
}

type BulkEditResult struct {
	Items []BulkEditItemResult
}

// Failed returns the per-ticket errors, keyed by ticket ID.
func (r *BulkEditResult) Failed() map[uint]error {
	out := map[uint]error{}
	for _, item := range r.Items {
		if item.Err != nil {
			out[item.TicketID] = item.Err
		}
	}
	return out
}

// BulkEditUseCase edits many tickets at once. Two cross-cutting checks
// run against every ticket BEFORE any mutation: a candidate service must
// belong to that ticket's current client, and a candidate department
// must belong to the same company as the ticket's current department.
// Any violation anywhere means no ticket is touched. The per-ticket
// edits that follow a clean pre-check are independent operations; a
// later failure does not roll back earlier successes.
type BulkEditUseCase struct {
	ticketRepo ticket.TicketRepository
	directory  directory.Repository
	edit       EditTicketExecutor
	logger     logger.Interface
}

func NewBulkEditUseCase(
	ticketRepo ticket.TicketRepository,
	dir directory.Repository,
	edit EditTicketExecutor,
	log logger.Interface,
) *BulkEditUseCase {
	return &BulkEditUseCase{
		ticketRepo: ticketRepo,
		directory:  dir,
		edit:       edit,
		logger:     log,
	}
}

func (uc *BulkEditUseCase) Execute(ctx context.Context, cmd BulkEditCommand) (*BulkEditResult, error) {
	uc.logger.Infow("executing bulk edit use case", "ticket_count", len(cmd.TicketIDs))

	if len(cmd.TicketIDs) == 0 {
		return nil, errors.NewSingleFieldError("ticket_ids", "Select at least one ticket")
	}
	if err := cmd.Input.validate(len(cmd.TicketIDs)); err != nil {
		return nil, err
	}

	tickets, ferrs, err := uc.precheck(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if len(ferrs) > 0 {
		uc.logger.Warnw("bulk edit pre-check failed", "fields", ferrs)
		return nil, errors.NewFieldErrors(ferrs)
	}

	result := &BulkEditResult{Items: make([]BulkEditItemResult, 0, len(cmd.TicketIDs))}
	for i, t := range tickets {
		fields := cmd.Input.fieldsFor(i)
		_, editErr := uc.edit.Execute(ctx, fields.toCommand(t.ID(), cmd.ByStaffID))
		if editErr != nil {
			uc.logger.Warnw("bulk edit item failed", "ticket_id", t.ID(), "error", editErr)
		}
		result.Items = append(result.Items, BulkEditItemResult{TicketID: t.ID(), Err: editErr})
	}

	return result, nil
}

// precheck loads every ticket and validates the cross-cutting
// constraints without mutating anything.
func (uc *BulkEditUseCase) precheck(ctx context.Context, cmd BulkEditCommand) ([]*ticket.Ticket, errors.FieldErrors, error) {
	ferrs := errors.FieldErrors{}
	tickets := make([]*ticket.Ticket, len(cmd.TicketIDs))

	for i, ticketID := range cmd.TicketIDs {
		key := fmt.Sprintf("tickets[%d]", i)

		t, err := uc.ticketRepo.GetByID(ctx, ticketID)
		if err != nil {
			return nil, nil, err
		}
		if t == nil {
			ferrs.Add(key, "Ticket not found")
			continue
		}
		tickets[i] = t

		fields := cmd.Input.fieldsFor(i)

		if fields.ServiceID != nil {
			svc, err := uc.directory.ServiceByID(ctx, *fields.ServiceID)
			if err != nil {
				return nil, nil, err
			}
			switch {
			case svc == nil:
				ferrs.Add(key+".service_id", errServiceNotFound.Error())
			case t.ClientID() == nil || svc.ClientID != *t.ClientID():
				ferrs.Add(key+".service_id", errServiceNotOwned.Error())
			}
		}

		if fields.DepartmentID != nil {
			candidate, err := uc.directory.DepartmentByID(ctx, *fields.DepartmentID)
			if err != nil {
				return nil, nil, err
			}
			current, err := uc.directory.DepartmentByID(ctx, t.DepartmentID())
			if err != nil {
				return nil, nil, err
			}
			switch {
			case candidate == nil:
				ferrs.Add(key+".department_id", "Department not found")
			case current == nil || candidate.CompanyID != current.CompanyID:
				ferrs.Add(key+".department_id", "Department belongs to a different company")
			}
		}
	}

	return tickets, ferrs, nil
}

func (f BulkEditFields) toCommand(ticketID uint, byStaffID *uint) EditTicketCommand {
	return EditTicketCommand{
		TicketID:     ticketID,
		DepartmentID: f.DepartmentID,
		Assignee:     f.Assignee,
		AssigneeSet:  f.AssigneeSet,
		Summary:      f.Summary,
		Priority:     f.Priority,
		Status:       f.Status,
		ServiceID:    f.ServiceID,
		Log:          true,
		ByStaffID:    byStaffID,
	}
}
