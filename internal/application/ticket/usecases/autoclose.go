package usecases

import (
	"context"

	"opendesk/internal/domain/directory"
	"opendesk/internal/domain/ticket"
	"opendesk/internal/shared/biztime"
	"opendesk/internal/shared/errors"
	"opendesk/internal/shared/logger"
)

type AutoCloseCommand struct {
	DepartmentID uint
}

type AutoCloseResult struct {
	Closed []uint
}

// AutoCloseUseCase is the inactivity sweep. For a department with an
// auto-close window configured it closes every ticket whose status
// permits it and whose newest staff-authored reply is older than the
// window, optionally appending the department's canned reply first.
// Tickets that never received a staff reply are left alone.
type AutoCloseUseCase struct {
	ticketRepo    ticket.TicketRepository
	directory     directory.Repository
	addReply      AddReplyExecutor
	close         CloseTicketExecutor
	systemStaffID uint
	logger        logger.Interface
}

func NewAutoCloseUseCase(
	ticketRepo ticket.TicketRepository,
	dir directory.Repository,
	addReply AddReplyExecutor,
	close CloseTicketExecutor,
	systemStaffID uint,
	log logger.Interface,
) *AutoCloseUseCase {
	return &AutoCloseUseCase{
		ticketRepo:    ticketRepo,
		directory:     dir,
		addReply:      addReply,
		close:         close,
		systemStaffID: systemStaffID,
		logger:        log,
	}
}

func (uc *AutoCloseUseCase) Execute(ctx context.Context, cmd AutoCloseCommand) (*AutoCloseResult, error) {
	dept, err := uc.directory.DepartmentByID(ctx, cmd.DepartmentID)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, errors.NewSingleFieldError("department_id", "Department not found")
	}
	if !dept.AutoCloseEnabled() {
		return &AutoCloseResult{}, nil
	}

	cutoff := biztime.CutoffBefore(dept.AutoCloseMinutes)
	candidates, err := uc.ticketRepo.AutoCloseCandidates(ctx, dept.ID, cutoff)
	if err != nil {
		return nil, err
	}

	result := &AutoCloseResult{}
	for _, t := range candidates {
		if dept.AutoCloseReply != "" {
			_, replyErr := uc.addReply.Execute(ctx, AddReplyCommand{
				TicketID: t.ID(),
				StaffID:  &uc.systemStaffID,
				Details:  dept.AutoCloseReply,
			})
			if replyErr != nil {
				uc.logger.Warnw("auto-close canned reply failed",
					"ticket_id", t.ID(), "error", replyErr)
				continue
			}
		}

		if _, closeErr := uc.close.Execute(ctx, CloseTicketCommand{
			TicketID:  t.ID(),
			ByStaffID: &uc.systemStaffID,
		}); closeErr != nil {
			uc.logger.Warnw("auto-close failed", "ticket_id", t.ID(), "error", closeErr)
			continue
		}

		result.Closed = append(result.Closed, t.ID())
	}

	uc.logger.Infow("auto-close sweep finished",
		"department_id", dept.ID, "closed", len(result.Closed))

	return result, nil
}

// SweepAll runs the sweep for every department with auto-close
// configured. The scheduler invokes it on an interval; the return value
// is the number of tickets closed.
func (uc *AutoCloseUseCase) SweepAll(ctx context.Context) (int, error) {
	departments, err := uc.directory.AutoCloseDepartments(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, dept := range departments {
		result, err := uc.Execute(ctx, AutoCloseCommand{DepartmentID: dept.ID})
		if err != nil {
			uc.logger.Warnw("auto-close sweep failed for department",
				"department_id", dept.ID, "error", err)
			continue
		}
		total += len(result.Closed)
	}
	return total, nil
}
