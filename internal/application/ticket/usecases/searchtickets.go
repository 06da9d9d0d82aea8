package usecases

import (
	"context"
	"strings"

	"opendesk/internal/application/ticket/dto"
	"opendesk/internal/domain/ticket"
	"opendesk/internal/shared/errors"
	"opendesk/internal/shared/logger"
	"opendesk/internal/shared/utils"
)

type SearchTicketsCommand struct {
	Term     string
	Page     int
	PageSize int
}

type SearchTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewSearchTicketsUseCase(ticketRepo ticket.TicketRepository, log logger.Interface) *SearchTicketsUseCase {
	return &SearchTicketsUseCase{ticketRepo: ticketRepo, logger: log}
}

func (uc *SearchTicketsUseCase) Execute(ctx context.Context, cmd SearchTicketsCommand) (*ListTicketsResult, error) {
	term := strings.TrimSpace(cmd.Term)
	if term == "" {
		return nil, errors.NewSingleFieldError("term", "Please enter a search term")
	}

	page, pageSize := utils.ValidatePagination(cmd.Page, cmd.PageSize)

	tickets, total, err := uc.ticketRepo.Search(ctx, term, ticket.TicketFilter{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to search tickets", "term", term, "error", err)
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
