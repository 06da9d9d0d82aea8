package usecases

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opendesk/internal/application/ticket/dto"
	"opendesk/internal/domain/directory"
	"opendesk/internal/domain/ticket"
	"opendesk/internal/shared/errors"
)

type bulkEditFixture struct {
	ticketRepo *mockTicketRepository
	directory  *mockDirectoryRepository
	edit       *mockEditTicketExecutor
	useCase    *BulkEditUseCase
}

func newBulkEditFixture(tickets map[uint]*ticket.Ticket) *bulkEditFixture {
	f := &bulkEditFixture{
		ticketRepo: &mockTicketRepository{
			GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
				return tickets[ticketID], nil
			},
		},
		directory: &mockDirectoryRepository{
			DepartmentByIDFunc: func(ctx context.Context, id uint) (*directory.Department, error) {
				switch id {
				case 5, 6:
					return &directory.Department{ID: id, CompanyID: 1}, nil
				case 8:
					return &directory.Department{ID: 8, CompanyID: 2}, nil
				}
				return nil, nil
			},
			ServiceByIDFunc: func(ctx context.Context, id uint) (*directory.Service, error) {
				if id == 3 {
					return &directory.Service{ID: 3, ClientID: 9}, nil
				}
				return nil, nil
			},
		},
		edit: &mockEditTicketExecutor{},
	}

	f.useCase = NewBulkEditUseCase(f.ticketRepo, f.directory, f.edit, &mockLogger{})
	return f
}

func TestBulkEditUseCase_Execute_SharedFields(t *testing.T) {
	f := newBulkEditFixture(map[uint]*ticket.Ticket{
		1: openTicket(1, "5550001", 5, uintPtr(9), ""),
		2: openTicket(2, "5550002", 5, uintPtr(9), ""),
	})

	var edited []EditTicketCommand
	f.edit.ExecuteFunc = func(ctx context.Context, cmd EditTicketCommand) (*dto.TicketDTO, error) {
		edited = append(edited, cmd)
		return &dto.TicketDTO{ID: cmd.TicketID}, nil
	}

	result, err := f.useCase.Execute(context.Background(), BulkEditCommand{
		TicketIDs: []uint{1, 2},
		Input: BulkEditInput{
			Shared: &BulkEditFields{
				Priority:    strPtr("high"),
				Assignee:    uintPtr(7),
				AssigneeSet: true,
			},
		},
		ByStaffID: uintPtr(7),
	})

	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Empty(t, result.Failed())

	require.Len(t, edited, 2)
	for i, cmd := range edited {
		assert.Equal(t, uint(i+1), cmd.TicketID)
		require.NotNil(t, cmd.Priority)
		assert.Equal(t, "high", *cmd.Priority)
		assert.True(t, cmd.AssigneeSet)
		assert.True(t, cmd.Log)
		require.NotNil(t, cmd.ByStaffID)
		assert.Equal(t, uint(7), *cmd.ByStaffID)
	}
}

func TestBulkEditUseCase_Execute_PerTicketFields(t *testing.T) {
	f := newBulkEditFixture(map[uint]*ticket.Ticket{
		1: openTicket(1, "5550001", 5, uintPtr(9), ""),
		2: openTicket(2, "5550002", 5, uintPtr(9), ""),
	})

	var edited []EditTicketCommand
	f.edit.ExecuteFunc = func(ctx context.Context, cmd EditTicketCommand) (*dto.TicketDTO, error) {
		edited = append(edited, cmd)
		return &dto.TicketDTO{ID: cmd.TicketID}, nil
	}

	result, err := f.useCase.Execute(context.Background(), BulkEditCommand{
		TicketIDs: []uint{1, 2},
		Input: BulkEditInput{
			PerTicket: []BulkEditFields{
				{Priority: strPtr("low")},
				{Status: strPtr("closed")},
			},
		},
	})

	require.NoError(t, err)
	assert.Empty(t, result.Failed())

	require.Len(t, edited, 2)
	require.NotNil(t, edited[0].Priority)
	assert.Equal(t, "low", *edited[0].Priority)
	assert.Nil(t, edited[0].Status)
	require.NotNil(t, edited[1].Status)
	assert.Equal(t, "closed", *edited[1].Status)
}

func TestBulkEditUseCase_Execute_InputShapeErrors(t *testing.T) {
	tests := []struct {
		name  string
		cmd   BulkEditCommand
		field string
	}{
		{
			name: "no tickets selected",
			cmd: BulkEditCommand{
				Input: BulkEditInput{Shared: &BulkEditFields{}},
			},
			field: "ticket_ids",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBulkEditFixture(nil)

			_, err := f.useCase.Execute(context.Background(), tt.cmd)

			require.Error(t, err)
			verrs := errors.GetValidationErrors(err)
			require.NotNil(t, verrs)
			assert.True(t, verrs.Fields.Has(tt.field))
		})
	}

	t.Run("both shared and per-ticket", func(t *testing.T) {
		f := newBulkEditFixture(map[uint]*ticket.Ticket{1: openTicket(1, "5550001", 5, uintPtr(9), "")})

		_, err := f.useCase.Execute(context.Background(), BulkEditCommand{
			TicketIDs: []uint{1},
			Input: BulkEditInput{
				Shared:    &BulkEditFields{},
				PerTicket: []BulkEditFields{{}},
			},
		})

		require.Error(t, err)
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrorTypeBadRequest, appErr.Type)
	})

	t.Run("per-ticket count mismatch", func(t *testing.T) {
		f := newBulkEditFixture(map[uint]*ticket.Ticket{1: openTicket(1, "5550001", 5, uintPtr(9), "")})

		_, err := f.useCase.Execute(context.Background(), BulkEditCommand{
			TicketIDs: []uint{1},
			Input: BulkEditInput{
				PerTicket: []BulkEditFields{{}, {}},
			},
		})

		require.Error(t, err)
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrorTypeBadRequest, appErr.Type)
	})
}

func TestBulkEditUseCase_Execute_PrecheckBlocksEverything(t *testing.T) {
	tests := []struct {
		name          string
		input         BulkEditInput
		expectedField string
	}{
		{
			name: "cross-company department",
			input: BulkEditInput{
				Shared: &BulkEditFields{DepartmentID: uintPtr(8)},
			},
			expectedField: "tickets[0].department_id",
		},
		{
			name: "unknown department",
			input: BulkEditInput{
				Shared: &BulkEditFields{DepartmentID: uintPtr(99)},
			},
			expectedField: "tickets[0].department_id",
		},
		{
			name: "service owned by another client",
			input: BulkEditInput{
				PerTicket: []BulkEditFields{
					{ServiceID: uintPtr(3)},
					{Priority: strPtr("low")},
				},
			},
			expectedField: "tickets[0].service_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBulkEditFixture(map[uint]*ticket.Ticket{
				1: openTicket(1, "5550001", 5, uintPtr(10), ""),
				2: openTicket(2, "5550002", 5, uintPtr(9), ""),
			})

			editCalls := 0
			f.edit.ExecuteFunc = func(ctx context.Context, cmd EditTicketCommand) (*dto.TicketDTO, error) {
				editCalls++
				return &dto.TicketDTO{}, nil
			}

			_, err := f.useCase.Execute(context.Background(), BulkEditCommand{
				TicketIDs: []uint{1, 2},
				Input:     tt.input,
			})

			require.Error(t, err)
			assert.Zero(t, editCalls, "a pre-check violation must block every edit")

			verrs := errors.GetValidationErrors(err)
			require.NotNil(t, verrs)
			assert.True(t, verrs.Fields.Has(tt.expectedField), "expected violation on %q, got %v", tt.expectedField, verrs.Fields)
		})
	}
}

func TestBulkEditUseCase_Execute_MissingTicketBlocksEverything(t *testing.T) {
	f := newBulkEditFixture(map[uint]*ticket.Ticket{
		1: openTicket(1, "5550001", 5, uintPtr(9), ""),
	})

	editCalls := 0
	f.edit.ExecuteFunc = func(ctx context.Context, cmd EditTicketCommand) (*dto.TicketDTO, error) {
		editCalls++
		return &dto.TicketDTO{}, nil
	}

	_, err := f.useCase.Execute(context.Background(), BulkEditCommand{
		TicketIDs: []uint{1, 42},
		Input:     BulkEditInput{Shared: &BulkEditFields{Priority: strPtr("low")}},
	})

	require.Error(t, err)
	assert.Zero(t, editCalls)

	verrs := errors.GetValidationErrors(err)
	require.NotNil(t, verrs)
	assert.Contains(t, verrs.Fields["tickets[1]"], "Ticket not found")
}

func TestBulkEditUseCase_Execute_ItemFailuresAreIndependent(t *testing.T) {
	f := newBulkEditFixture(map[uint]*ticket.Ticket{
		1: openTicket(1, "5550001", 5, uintPtr(9), ""),
		2: openTicket(2, "5550002", 5, uintPtr(9), ""),
		3: openTicket(3, "5550003", 5, uintPtr(9), ""),
	})

	editErr := stderrors.New("deadlock detected")
	f.edit.ExecuteFunc = func(ctx context.Context, cmd EditTicketCommand) (*dto.TicketDTO, error) {
		if cmd.TicketID == 2 {
			return nil, editErr
		}
		return &dto.TicketDTO{ID: cmd.TicketID}, nil
	}

	result, err := f.useCase.Execute(context.Background(), BulkEditCommand{
		TicketIDs: []uint{1, 2, 3},
		Input:     BulkEditInput{Shared: &BulkEditFields{Priority: strPtr("low")}},
	})

	require.NoError(t, err)
	require.Len(t, result.Items, 3)

	failed := result.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, editErr, failed[2])

	assert.NoError(t, result.Items[0].Err)
	assert.Error(t, result.Items[1].Err)
	assert.NoError(t, result.Items[2].Err)
}
