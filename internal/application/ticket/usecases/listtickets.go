package usecases

import (
	"context"

	"opendesk/internal/application/ticket/dto"
	"opendesk/internal/domain/ticket"
	"opendesk/internal/domain/ticket/valueobjects"
	"opendesk/internal/shared/errors"
	"opendesk/internal/shared/logger"
	"opendesk/internal/shared/utils"
	"opendesk/internal/shared/validation"
)

type ListTicketsCommand struct {
	Status       string
	Priority     string
	DepartmentID *uint
	StaffID      *uint
	ClientID     *uint
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}

type ListTicketsResult struct {
	Items    []dto.TicketListItemDTO
	Total    int64
	Page     int
	PageSize int
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.TicketRepository, log logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{ticketRepo: ticketRepo, logger: log}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, cmd ListTicketsCommand) (*ListTicketsResult, error) {
	if ferrs := listRules().Validate(ctx, cmd.values()); len(ferrs) > 0 {
		return nil, errors.NewFieldErrors(ferrs)
	}

	page, pageSize := utils.ValidatePagination(cmd.Page, cmd.PageSize)

	filter := ticket.TicketFilter{
		DepartmentID: cmd.DepartmentID,
		StaffID:      cmd.StaffID,
		ClientID:     cmd.ClientID,
		Page:         page,
		PageSize:     pageSize,
		SortBy:       cmd.SortBy,
		SortOrder:    cmd.SortOrder,
	}
	if cmd.Status != "" {
		status := valueobjects.TicketStatus(cmd.Status)
		filter.Status = &status
	}
	if cmd.Priority != "" {
		priority := valueobjects.Priority(cmd.Priority)
		filter.Priority = &priority
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, err
	}

	items := make([]dto.TicketListItemDTO, len(tickets))
	for i, t := range tickets {
		items[i] = dto.ToTicketListItemDTO(t)
	}

	return &ListTicketsResult{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func listRules() *validation.RuleSet {
	return validation.NewRuleSet("ticket.list").
		CheckPresent("status", validation.OneOf("Invalid status", statusStrings()...)).
		CheckPresent("priority", validation.OneOf("Invalid priority", priorityStrings()...)).
		CheckPresent("sort_by", validation.OneOf("Invalid sort field",
			"date_added", "priority", "status", "department_id")).
		CheckPresent("sort_order", validation.OneOf("Invalid sort order", "asc", "desc"))
}

func (cmd ListTicketsCommand) values() validation.Values {
	v := validation.Values{}
	if cmd.Status != "" {
		v["status"] = cmd.Status
	}
	if cmd.Priority != "" {
		v["priority"] = cmd.Priority
	}
	if cmd.SortBy != "" {
		v["sort_by"] = cmd.SortBy
	}
	if cmd.SortOrder != "" {
		v["sort_order"] = cmd.SortOrder
	}
	return v
}
