package usecases

import (
	"context"

	"opendesk/internal/application/ticket/dto"
)

// Executor interfaces let use cases compose one another and let the
// HTTP layer depend on behavior rather than concrete types.

type AddTicketExecutor interface {
	Execute(ctx context.Context, cmd AddTicketCommand) (*AddTicketResult, error)
}

type AddReplyExecutor interface {
	Execute(ctx context.Context, cmd AddReplyCommand) (*AddReplyResult, error)
}

type EditTicketExecutor interface {
	Execute(ctx context.Context, cmd EditTicketCommand) (*dto.TicketDTO, error)
}

type BulkEditExecutor interface {
	Execute(ctx context.Context, cmd BulkEditCommand) (*BulkEditResult, error)
}

type CloseTicketExecutor interface {
	Execute(ctx context.Context, cmd CloseTicketCommand) (*CloseTicketResult, error)
}

type MergeTicketsExecutor interface {
	Execute(ctx context.Context, cmd MergeTicketsCommand) (*MergeTicketsResult, error)
}

type SplitTicketExecutor interface {
	Execute(ctx context.Context, cmd SplitTicketCommand) (*SplitTicketResult, error)
}

type AutoCloseExecutor interface {
	Execute(ctx context.Context, cmd AutoCloseCommand) (*AutoCloseResult, error)
	SweepAll(ctx context.Context) (int, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, cmd GetTicketCommand) (*dto.TicketDTO, error)
}

type GetTicketByCodeExecutor interface {
	Execute(ctx context.Context, cmd GetTicketByCodeCommand) (*dto.TicketDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, cmd ListTicketsCommand) (*ListTicketsResult, error)
}

type SearchTicketsExecutor interface {
	Execute(ctx context.Context, cmd SearchTicketsCommand) (*ListTicketsResult, error)
}
