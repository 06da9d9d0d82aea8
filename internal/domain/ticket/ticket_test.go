package ticket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opendesk/internal/domain/ticket/valueobjects"
)

func uintPtr(v uint) *uint {
	return &v
}

// newValidTicket creates an email-only open ticket with sensible defaults.
func newValidTicket(t *testing.T) *Ticket {
	t.Helper()
	tk, err := NewTicket(5, "Panel unreachable", valueobjects.PriorityMedium, valueobjects.StatusOpen, nil, nil, "visitor@example.com")
	require.NoError(t, err)
	return tk
}

func reconstructedTicket(t *testing.T, status valueobjects.TicketStatus, closedAt *time.Time) *Ticket {
	t.Helper()
	tk, err := ReconstructTicket(
		1, "5550001", 5, nil, nil, uintPtr(9), "",
		"Persisted ticket",
		valueobjects.PriorityHigh, status,
		time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), closedAt,
	)
	require.NoError(t, err)
	return tk
}

func TestNewTicket(t *testing.T) {
	t.Run("valid email-only ticket", func(t *testing.T) {
		tk := newValidTicket(t)

		assert.Zero(t, tk.ID())
		assert.Empty(t, tk.Code())
		assert.Equal(t, uint(5), tk.DepartmentID())
		assert.Equal(t, valueobjects.StatusOpen, tk.Status())
		assert.Nil(t, tk.DateClosed())
		assert.NotZero(t, tk.DateAdded())
	})

	t.Run("valid client ticket without email", func(t *testing.T) {
		tk, err := NewTicket(5, "Help", valueobjects.PriorityLow, valueobjects.StatusOpen, uintPtr(9), uintPtr(3), "")
		require.NoError(t, err)
		require.NotNil(t, tk.ClientID())
		assert.Equal(t, uint(9), *tk.ClientID())
	})

	t.Run("created closed sets date_closed", func(t *testing.T) {
		tk, err := NewTicket(5, "Help", valueobjects.PriorityLow, valueobjects.StatusClosed, uintPtr(9), nil, "")
		require.NoError(t, err)
		require.NotNil(t, tk.DateClosed())
	})

	invalid := []struct {
		name         string
		departmentID uint
		summary      string
		priority     valueobjects.Priority
		status       valueobjects.TicketStatus
		clientID     *uint
		email        string
	}{
		{"missing department", 0, "Help", valueobjects.PriorityLow, valueobjects.StatusOpen, uintPtr(9), ""},
		{"missing summary", 5, "", valueobjects.PriorityLow, valueobjects.StatusOpen, uintPtr(9), ""},
		{"invalid priority", 5, "Help", "urgent", valueobjects.StatusOpen, uintPtr(9), ""},
		{"invalid status", 5, "Help", valueobjects.PriorityLow, "resolved", uintPtr(9), ""},
		{"no client and no email", 5, "Help", valueobjects.PriorityLow, valueobjects.StatusOpen, nil, ""},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTicket(tt.departmentID, tt.summary, tt.priority, tt.status, tt.clientID, nil, tt.email)
			assert.Error(t, err)
		})
	}
}

func TestReconstructTicket_ClosedInvariant(t *testing.T) {
	closedAt := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)

	t.Run("closed with timestamp", func(t *testing.T) {
		tk := reconstructedTicket(t, valueobjects.StatusClosed, &closedAt)
		assert.True(t, tk.Status().IsClosed())
	})

	t.Run("closed without timestamp rejected", func(t *testing.T) {
		_, err := ReconstructTicket(
			1, "5550001", 5, nil, nil, uintPtr(9), "", "Summary",
			valueobjects.PriorityHigh, valueobjects.StatusClosed,
			time.Now().UTC(), nil,
		)
		assert.Error(t, err)
	})

	t.Run("open with timestamp rejected", func(t *testing.T) {
		_, err := ReconstructTicket(
			1, "5550001", 5, nil, nil, uintPtr(9), "", "Summary",
			valueobjects.PriorityHigh, valueobjects.StatusOpen,
			time.Now().UTC(), &closedAt,
		)
		assert.Error(t, err)
	})
}

func TestTicket_SetIDAndCodeAreOnceOnly(t *testing.T) {
	tk := newValidTicket(t)

	require.NoError(t, tk.SetID(10))
	assert.Error(t, tk.SetID(11))
	assert.Equal(t, uint(10), tk.ID())

	require.NoError(t, tk.SetCode("1234567"))
	assert.Error(t, tk.SetCode("7654321"))
	assert.Equal(t, "1234567", tk.Code())

	assert.Error(t, newValidTicket(t).SetID(0))
	assert.Error(t, newValidTicket(t).SetCode(""))
}

func TestTicket_ChangeStatus_MaintainsDateClosed(t *testing.T) {
	tk := newValidTicket(t)

	require.NoError(t, tk.ChangeStatus(valueobjects.StatusClosed))
	require.NotNil(t, tk.DateClosed())

	require.NoError(t, tk.ChangeStatus(valueobjects.StatusOpen))
	assert.Nil(t, tk.DateClosed())

	require.NoError(t, tk.ChangeStatus(valueobjects.StatusInProgress))
	assert.Nil(t, tk.DateClosed())

	assert.Error(t, tk.ChangeStatus("resolved"))
}

func TestTicket_ChangeStatus_SameStatusIsNoOp(t *testing.T) {
	closedAt := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	tk := reconstructedTicket(t, valueobjects.StatusClosed, &closedAt)

	require.NoError(t, tk.ChangeStatus(valueobjects.StatusClosed))
	require.NotNil(t, tk.DateClosed())
	assert.Equal(t, closedAt, *tk.DateClosed())
}

func TestTicket_AttachClient_OneWay(t *testing.T) {
	tk := newValidTicket(t)

	require.NoError(t, tk.AttachClient(9))
	require.NotNil(t, tk.ClientID())
	assert.Equal(t, uint(9), *tk.ClientID())

	// Re-attaching the same client is idempotent.
	require.NoError(t, tk.AttachClient(9))

	assert.Error(t, tk.AttachClient(10))
	assert.Equal(t, uint(9), *tk.ClientID())

	assert.Error(t, tk.AttachClient(0))
}

func TestTicket_Assign(t *testing.T) {
	tk := newValidTicket(t)

	tk.Assign(uintPtr(7))
	require.NotNil(t, tk.StaffID())
	assert.Equal(t, uint(7), *tk.StaffID())

	tk.Assign(nil)
	assert.Nil(t, tk.StaffID())
}

func TestTicket_SameClientIdentity(t *testing.T) {
	mk := func(clientID *uint, email string) *Ticket {
		tk, err := NewTicket(5, "Help", valueobjects.PriorityLow, valueobjects.StatusOpen, clientID, nil, email)
		require.NoError(t, err)
		return tk
	}

	tests := []struct {
		name     string
		a, b     *Ticket
		expected bool
	}{
		{"same client", mk(uintPtr(9), ""), mk(uintPtr(9), ""), true},
		{"different clients", mk(uintPtr(9), ""), mk(uintPtr(10), ""), false},
		{"same email, no clients", mk(nil, "a@b.com"), mk(nil, "a@b.com"), true},
		{"different emails", mk(nil, "a@b.com"), mk(nil, "c@d.com"), false},
		{"client vs email-only", mk(uintPtr(9), ""), mk(nil, "a@b.com"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.SameClientIdentity(tt.b))
		})
	}
}

func TestTicket_CloneForSplit(t *testing.T) {
	closedAt := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	source := reconstructedTicket(t, valueobjects.StatusClosed, &closedAt)

	clone := source.CloneForSplit()

	assert.Zero(t, clone.ID())
	assert.Empty(t, clone.Code())
	assert.Equal(t, source.DepartmentID(), clone.DepartmentID())
	assert.Equal(t, source.Summary(), clone.Summary())
	assert.Equal(t, source.Priority(), clone.Priority())
	assert.Equal(t, source.Status(), clone.Status())
	assert.Equal(t, source.ClientID(), clone.ClientID())
	require.NotNil(t, clone.DateClosed())
	assert.Equal(t, closedAt, *clone.DateClosed())

	// The copied timestamp is independent of the source's.
	require.NoError(t, clone.ChangeStatus(valueobjects.StatusOpen))
	require.NotNil(t, source.DateClosed())
}
