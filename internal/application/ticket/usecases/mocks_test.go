package usecases

import (
	"context"
	"time"

	"opendesk/internal/application/ticket/dto"
	"opendesk/internal/domain/directory"
	"opendesk/internal/domain/ticket"
	"opendesk/internal/domain/ticket/valueobjects"
	"opendesk/internal/shared/logger"
)

type mockTicketRepository struct {
	SaveFunc                func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc              func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc             func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
	GetByCodeFunc           func(ctx context.Context, code string) (*ticket.Ticket, error)
	GetByIDsFunc            func(ctx context.Context, ticketIDs []uint) ([]*ticket.Ticket, error)
	ListFunc                func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
	SearchFunc              func(ctx context.Context, term string, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
	AutoCloseCandidatesFunc func(ctx context.Context, departmentID uint, cutoff time.Time) ([]*ticket.Ticket, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetByCode(ctx context.Context, code string) (*ticket.Ticket, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetByIDs(ctx context.Context, ticketIDs []uint) ([]*ticket.Ticket, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ticketIDs)
	}
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) Search(ctx context.Context, term string, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, term, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) AutoCloseCandidates(ctx context.Context, departmentID uint, cutoff time.Time) ([]*ticket.Ticket, error) {
	if m.AutoCloseCandidatesFunc != nil {
		return m.AutoCloseCandidatesFunc(ctx, departmentID, cutoff)
	}
	return nil, nil
}

type mockReplyRepository struct {
	SaveFunc                  func(ctx context.Context, r *ticket.Reply) error
	GetByIDFunc               func(ctx context.Context, replyID uint) (*ticket.Reply, error)
	GetByIDsFunc              func(ctx context.Context, replyIDs []uint) ([]*ticket.Reply, error)
	GetByTicketIDFunc         func(ctx context.Context, ticketID uint) ([]*ticket.Reply, error)
	ReassignByIDsFunc         func(ctx context.Context, replyIDs []uint, toTicketID uint) error
	ReassignContentFunc       func(ctx context.Context, fromTicketID, toTicketID uint) error
	CountRepliesExcludingFunc func(ctx context.Context, ticketID uint, excluded []uint) (int64, error)
}

func (m *mockReplyRepository) Save(ctx context.Context, r *ticket.Reply) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, r)
	}
	return nil
}

func (m *mockReplyRepository) GetByID(ctx context.Context, replyID uint) (*ticket.Reply, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, replyID)
	}
	return nil, nil
}

func (m *mockReplyRepository) GetByIDs(ctx context.Context, replyIDs []uint) ([]*ticket.Reply, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, replyIDs)
	}
	return nil, nil
}

func (m *mockReplyRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Reply, error) {
	if m.GetByTicketIDFunc != nil {
		return m.GetByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockReplyRepository) ReassignByIDs(ctx context.Context, replyIDs []uint, toTicketID uint) error {
	if m.ReassignByIDsFunc != nil {
		return m.ReassignByIDsFunc(ctx, replyIDs, toTicketID)
	}
	return nil
}

func (m *mockReplyRepository) ReassignContent(ctx context.Context, fromTicketID, toTicketID uint) error {
	if m.ReassignContentFunc != nil {
		return m.ReassignContentFunc(ctx, fromTicketID, toTicketID)
	}
	return nil
}

func (m *mockReplyRepository) CountRepliesExcluding(ctx context.Context, ticketID uint, excluded []uint) (int64, error) {
	if m.CountRepliesExcludingFunc != nil {
		return m.CountRepliesExcludingFunc(ctx, ticketID, excluded)
	}
	return 0, nil
}

type mockAttachmentRepository struct {
	SaveAllFunc         func(ctx context.Context, attachments []*ticket.Attachment) error
	GetByReplyIDFunc    func(ctx context.Context, replyID uint) ([]*ticket.Attachment, error)
	DeleteByReplyIDFunc func(ctx context.Context, replyID uint) error
}

func (m *mockAttachmentRepository) SaveAll(ctx context.Context, attachments []*ticket.Attachment) error {
	if m.SaveAllFunc != nil {
		return m.SaveAllFunc(ctx, attachments)
	}
	return nil
}

func (m *mockAttachmentRepository) GetByReplyID(ctx context.Context, replyID uint) ([]*ticket.Attachment, error) {
	if m.GetByReplyIDFunc != nil {
		return m.GetByReplyIDFunc(ctx, replyID)
	}
	return nil, nil
}

func (m *mockAttachmentRepository) DeleteByReplyID(ctx context.Context, replyID uint) error {
	if m.DeleteByReplyIDFunc != nil {
		return m.DeleteByReplyIDFunc(ctx, replyID)
	}
	return nil
}

type mockDirectoryRepository struct {
	DepartmentByIDFunc       func(ctx context.Context, id uint) (*directory.Department, error)
	StaffByIDFunc            func(ctx context.Context, id uint) (*directory.Staff, error)
	ClientByIDFunc           func(ctx context.Context, id uint) (*directory.Client, error)
	ContactByIDFunc          func(ctx context.Context, id uint) (*directory.Contact, error)
	ServiceByIDFunc          func(ctx context.Context, id uint) (*directory.Service, error)
	AutoCloseDepartmentsFunc func(ctx context.Context) ([]*directory.Department, error)
}

func (m *mockDirectoryRepository) DepartmentByID(ctx context.Context, id uint) (*directory.Department, error) {
	if m.DepartmentByIDFunc != nil {
		return m.DepartmentByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockDirectoryRepository) StaffByID(ctx context.Context, id uint) (*directory.Staff, error) {
	if m.StaffByIDFunc != nil {
		return m.StaffByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockDirectoryRepository) ClientByID(ctx context.Context, id uint) (*directory.Client, error) {
	if m.ClientByIDFunc != nil {
		return m.ClientByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockDirectoryRepository) ContactByID(ctx context.Context, id uint) (*directory.Contact, error) {
	if m.ContactByIDFunc != nil {
		return m.ContactByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockDirectoryRepository) ServiceByID(ctx context.Context, id uint) (*directory.Service, error) {
	if m.ServiceByIDFunc != nil {
		return m.ServiceByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockDirectoryRepository) AutoCloseDepartments(ctx context.Context) ([]*directory.Department, error) {
	if m.AutoCloseDepartmentsFunc != nil {
		return m.AutoCloseDepartmentsFunc(ctx)
	}
	return nil, nil
}

type mockEmailDispatcher struct {
	SendFunc func(ctx context.Context, msg EmailMessage) error
}

func (m *mockEmailDispatcher) Send(ctx context.Context, msg EmailMessage) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}
	return nil
}

type mockAttachmentStore struct {
	WriteFunc  func(ctx context.Context, ticketID uint, files []UploadFile) ([]StoredFile, error)
	RemoveFunc func(ctx context.Context, files []StoredFile) error
}

func (m *mockAttachmentStore) Write(ctx context.Context, ticketID uint, files []UploadFile) ([]StoredFile, error) {
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, ticketID, files)
	}
	stored := make([]StoredFile, len(files))
	for i, f := range files {
		stored[i] = StoredFile{OriginalName: f.Name, StoredPath: "/stored/" + f.Name}
	}
	return stored, nil
}

func (m *mockAttachmentStore) Remove(ctx context.Context, files []StoredFile) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, files)
	}
	return nil
}

// mockSanitizer passes the input through unchanged unless overridden.
type mockSanitizer struct {
	SanitizeFunc func(s string) string
}

func (m *mockSanitizer) Sanitize(s string) string {
	if m.SanitizeFunc != nil {
		return m.SanitizeFunc(s)
	}
	return s
}

// mockTransactionRunner invokes the callback with the caller's context,
// matching the production runner's behavior of carrying the tx in ctx.
type mockTransactionRunner struct {
	RunInTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTransactionRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTransactionFunc != nil {
		return m.RunInTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockCodeGenerator struct {
	GenerateFunc func(ctx context.Context) (string, error)
}

func (m *mockCodeGenerator) Generate(ctx context.Context) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx)
	}
	return "1234567", nil
}

type mockEditTicketExecutor struct {
	ExecuteFunc func(ctx context.Context, cmd EditTicketCommand) (*dto.TicketDTO, error)
}

func (m *mockEditTicketExecutor) Execute(ctx context.Context, cmd EditTicketCommand) (*dto.TicketDTO, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &dto.TicketDTO{}, nil
}

type mockAddReplyExecutor struct {
	ExecuteFunc func(ctx context.Context, cmd AddReplyCommand) (*AddReplyResult, error)
}

func (m *mockAddReplyExecutor) Execute(ctx context.Context, cmd AddReplyCommand) (*AddReplyResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &AddReplyResult{}, nil
}

type mockCloseTicketExecutor struct {
	ExecuteFunc func(ctx context.Context, cmd CloseTicketCommand) (*CloseTicketResult, error)
}

func (m *mockCloseTicketExecutor) Execute(ctx context.Context, cmd CloseTicketCommand) (*CloseTicketResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &CloseTicketResult{}, nil
}

type mockLogger struct {
	DebugFunc  func(msg string, args ...any)
	InfoFunc   func(msg string, args ...any)
	WarnFunc   func(msg string, args ...any)
	ErrorFunc  func(msg string, args ...any)
	DebugwFunc func(msg string, keysAndValues ...interface{})
	InfowFunc  func(msg string, keysAndValues ...interface{})
	WarnwFunc  func(msg string, keysAndValues ...interface{})
	ErrorwFunc func(msg string, keysAndValues ...interface{})
}

func (m *mockLogger) Debug(msg string, args ...any) {
	if m.DebugFunc != nil {
		m.DebugFunc(msg, args...)
	}
}

func (m *mockLogger) Info(msg string, args ...any) {
	if m.InfoFunc != nil {
		m.InfoFunc(msg, args...)
	}
}

func (m *mockLogger) Warn(msg string, args ...any) {
	if m.WarnFunc != nil {
		m.WarnFunc(msg, args...)
	}
}

func (m *mockLogger) Error(msg string, args ...any) {
	if m.ErrorFunc != nil {
		m.ErrorFunc(msg, args...)
	}
}

func (m *mockLogger) With(args ...any) logger.Interface {
	return m
}

func (m *mockLogger) Named(name string) logger.Interface {
	return m
}

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {
	if m.DebugwFunc != nil {
		m.DebugwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Infow(msg string, keysAndValues ...interface{}) {
	if m.InfowFunc != nil {
		m.InfowFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	if m.WarnwFunc != nil {
		m.WarnwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}

func uintPtr(v uint) *uint {
	return &v
}

func strPtr(s string) *string {
	return &s
}

// openTicket builds a stored open ticket for test fixtures.
func openTicket(id uint, code string, departmentID uint, clientID *uint, email string) *ticket.Ticket {
	t, err := ticket.ReconstructTicket(
		id, code, departmentID, nil, nil, clientID, email,
		"Cannot reach the control panel",
		valueobjects.PriorityMedium, valueobjects.StatusOpen,
		time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), nil,
	)
	if err != nil {
		panic(err)
	}
	return t
}
