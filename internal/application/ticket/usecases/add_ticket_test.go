package usecases

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opendesk/internal/domain/directory"
	"opendesk/internal/domain/ticket"
	"opendesk/internal/domain/ticket/valueobjects"
	"opendesk/internal/shared/errors"
)

func addTicketDirectory() *mockDirectoryRepository {
	return &mockDirectoryRepository{
		DepartmentByIDFunc: func(ctx context.Context, id uint) (*directory.Department, error) {
			if id == 5 {
				return &directory.Department{ID: 5, CompanyID: 1, Name: "Support"}, nil
			}
			return nil, nil
		},
		ClientByIDFunc: func(ctx context.Context, id uint) (*directory.Client, error) {
			if id == 9 {
				return &directory.Client{ID: 9, CompanyID: 1, Email: "client@example.com"}, nil
			}
			return nil, nil
		},
		ServiceByIDFunc: func(ctx context.Context, id uint) (*directory.Service, error) {
			if id == 3 {
				return &directory.Service{ID: 3, ClientID: 9, Name: "VPS"}, nil
			}
			return nil, nil
		},
	}
}

func TestAddTicketUseCase_Execute_Success(t *testing.T) {
	tests := []struct {
		name             string
		command          AddTicketCommand
		expectedPriority valueobjects.Priority
		expectedStatus   valueobjects.TicketStatus
	}{
		{
			name: "client ticket with owned service",
			command: AddTicketCommand{
				DepartmentID: 5,
				Summary:      "Server unreachable",
				Priority:     "high",
				ClientID:     uintPtr(9),
				ServiceID:    uintPtr(3),
			},
			expectedPriority: valueobjects.PriorityHigh,
			expectedStatus:   valueobjects.StatusOpen,
		},
		{
			name: "email-only ticket defaults priority and status",
			command: AddTicketCommand{
				DepartmentID: 5,
				Summary:      "Billing question",
				Email:        "visitor@example.com",
			},
			expectedPriority: valueobjects.PriorityMedium,
			expectedStatus:   valueobjects.StatusOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var savedTicket *ticket.Ticket
			mockRepo := &mockTicketRepository{
				SaveFunc: func(ctx context.Context, tkt *ticket.Ticket) error {
					if err := tkt.SetID(100); err != nil {
						return err
					}
					savedTicket = tkt
					return nil
				},
			}

			useCase := NewAddTicketUseCase(
				mockRepo, addTicketDirectory(), &mockCodeGenerator{},
				&mockTransactionRunner{}, &mockLogger{})

			result, err := useCase.Execute(context.Background(), tt.command)

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, uint(100), result.TicketID)
			assert.Equal(t, "1234567", result.Code)
			assert.Equal(t, tt.expectedStatus.String(), result.Status)
			assert.NotZero(t, result.DateAdded)

			require.NotNil(t, savedTicket)
			assert.Equal(t, tt.command.Summary, savedTicket.Summary())
			assert.Equal(t, tt.expectedPriority, savedTicket.Priority())
			assert.Equal(t, tt.expectedStatus, savedTicket.Status())
		})
	}
}

func TestAddTicketUseCase_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name            string
		command         AddTicketCommand
		expectedField   string
		expectedMessage string
	}{
		{
			name:            "missing department",
			command:         AddTicketCommand{Summary: "Help", Email: "a@b.com"},
			expectedField:   "department_id",
			expectedMessage: "Please select a department",
		},
		{
			name:            "unknown department",
			command:         AddTicketCommand{DepartmentID: 99, Summary: "Help", Email: "a@b.com"},
			expectedField:   "department_id",
			expectedMessage: "Department not found",
		},
		{
			name:            "missing summary",
			command:         AddTicketCommand{DepartmentID: 5, Email: "a@b.com"},
			expectedField:   "summary",
			expectedMessage: "Please enter a summary",
		},
		{
			name: "summary too long",
			command: AddTicketCommand{
				DepartmentID: 5,
				Summary:      strings.Repeat("x", 256),
				Email:        "a@b.com",
			},
			expectedField:   "summary",
			expectedMessage: "Summary may not exceed 255 characters",
		},
		{
			name: "invalid priority",
			command: AddTicketCommand{
				DepartmentID: 5, Summary: "Help", Email: "a@b.com", Priority: "urgent",
			},
			expectedField:   "priority",
			expectedMessage: "Invalid priority",
		},
		{
			name:            "no client and no email",
			command:         AddTicketCommand{DepartmentID: 5, Summary: "Help"},
			expectedField:   "email",
			expectedMessage: "Please enter an email address",
		},
		{
			name: "malformed email",
			command: AddTicketCommand{
				DepartmentID: 5, Summary: "Help", Email: "not-an-address",
			},
			expectedField:   "email",
			expectedMessage: "Invalid email address",
		},
		{
			name: "service owned by another client",
			command: AddTicketCommand{
				DepartmentID: 5, Summary: "Help",
				ClientID:  uintPtr(9),
				ServiceID: uintPtr(7),
			},
			expectedField:   "service_id",
			expectedMessage: "Service not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase := NewAddTicketUseCase(
				&mockTicketRepository{}, addTicketDirectory(), &mockCodeGenerator{},
				&mockTransactionRunner{}, &mockLogger{})

			result, err := useCase.Execute(context.Background(), tt.command)

			require.Error(t, err)
			assert.Nil(t, result)

			verrs := errors.GetValidationErrors(err)
			require.NotNil(t, verrs)
			require.True(t, verrs.Fields.Has(tt.expectedField), "expected violation on %q, got %v", tt.expectedField, verrs.Fields)
			assert.Contains(t, verrs.Fields[tt.expectedField], tt.expectedMessage)
		})
	}
}

func TestAddTicketUseCase_Execute_ServiceOwnershipEnforced(t *testing.T) {
	dir := addTicketDirectory()
	dir.ServiceByIDFunc = func(ctx context.Context, id uint) (*directory.Service, error) {
		return &directory.Service{ID: id, ClientID: 42, Name: "Hosting"}, nil
	}

	useCase := NewAddTicketUseCase(
		&mockTicketRepository{}, dir, &mockCodeGenerator{},
		&mockTransactionRunner{}, &mockLogger{})

	_, err := useCase.Execute(context.Background(), AddTicketCommand{
		DepartmentID: 5,
		Summary:      "Help",
		ClientID:     uintPtr(9),
		ServiceID:    uintPtr(3),
	})

	require.Error(t, err)
	verrs := errors.GetValidationErrors(err)
	require.NotNil(t, verrs)
	assert.Contains(t, verrs.Fields["service_id"], "Service does not belong to the selected client")
}

func TestAddTicketUseCase_Execute_CodeCollisionRetries(t *testing.T) {
	duplicateErr := stderrors.New("Error 1062: Duplicate entry '1234567' for key 'tickets.code'")

	t.Run("succeeds after collisions", func(t *testing.T) {
		attempts := 0
		mockRepo := &mockTicketRepository{
			SaveFunc: func(ctx context.Context, tkt *ticket.Ticket) error {
				attempts++
				if attempts < 3 {
					return duplicateErr
				}
				return tkt.SetID(100)
			},
		}

		codes := []string{"1111111", "2222222", "3333333"}
		generated := 0
		mockCodes := &mockCodeGenerator{
			GenerateFunc: func(ctx context.Context) (string, error) {
				code := codes[generated]
				generated++
				return code, nil
			},
		}

		useCase := NewAddTicketUseCase(
			mockRepo, addTicketDirectory(), mockCodes,
			&mockTransactionRunner{}, &mockLogger{})

		result, err := useCase.Execute(context.Background(), AddTicketCommand{
			DepartmentID: 5,
			Summary:      "Help",
			Email:        "a@b.com",
		})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, 3, attempts)
		assert.Equal(t, "3333333", result.Code)
	})

	t.Run("gives up after exhausting attempts", func(t *testing.T) {
		attempts := 0
		mockRepo := &mockTicketRepository{
			SaveFunc: func(ctx context.Context, tkt *ticket.Ticket) error {
				attempts++
				return duplicateErr
			},
		}

		useCase := NewAddTicketUseCase(
			mockRepo, addTicketDirectory(), &mockCodeGenerator{},
			&mockTransactionRunner{}, &mockLogger{})

		result, err := useCase.Execute(context.Background(), AddTicketCommand{
			DepartmentID: 5,
			Summary:      "Help",
			Email:        "a@b.com",
		})

		require.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, codeInsertAttempts, attempts)

		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrorTypeConflict, appErr.Type)
	})

	t.Run("non-duplicate save error is returned as-is", func(t *testing.T) {
		attempts := 0
		saveErr := stderrors.New("connection refused")
		mockRepo := &mockTicketRepository{
			SaveFunc: func(ctx context.Context, tkt *ticket.Ticket) error {
				attempts++
				return saveErr
			},
		}

		useCase := NewAddTicketUseCase(
			mockRepo, addTicketDirectory(), &mockCodeGenerator{},
			&mockTransactionRunner{}, &mockLogger{})

		_, err := useCase.Execute(context.Background(), AddTicketCommand{
			DepartmentID: 5,
			Summary:      "Help",
			Email:        "a@b.com",
		})

		require.Error(t, err)
		assert.Equal(t, 1, attempts)
		assert.Equal(t, saveErr, err)
	})
}
