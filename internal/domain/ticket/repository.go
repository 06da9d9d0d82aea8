package ticket

import (
	"context"
	"time"

	"opendesk/internal/domain/ticket/valueobjects"
)

// TicketRepository persists tickets. Save must fail with a duplicate-key
// error when the generated code collides with an existing one; the unique
// index on code is the uniqueness guarantee, not a pre-check.
type TicketRepository interface {
	Save(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	GetByCode(ctx context.Context, code string) (*Ticket, error)
	GetByIDs(ctx context.Context, ticketIDs []uint) ([]*Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
	Search(ctx context.Context, term string, filter TicketFilter) ([]*Ticket, int64, error)

	// AutoCloseCandidates returns tickets in the department whose status
	// permits auto-closure and whose most recent staff-authored
	// reply-type entry is older than the cutoff. Tickets with no staff
	// reply are excluded by construction.
	AutoCloseCandidates(ctx context.Context, departmentID uint, cutoff time.Time) ([]*Ticket, error)
}

// TicketFilter narrows and pages ticket listings.
type TicketFilter struct {
	Status       *valueobjects.TicketStatus
	Priority     *valueobjects.Priority
	DepartmentID *uint
	StaffID      *uint
	ClientID     *uint
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}

// ReplyRepository persists the append-only reply thread.
type ReplyRepository interface {
	Save(ctx context.Context, r *Reply) error
	GetByID(ctx context.Context, replyID uint) (*Reply, error)
	GetByIDs(ctx context.Context, replyIDs []uint) ([]*Reply, error)

	// GetByTicketID returns the thread ordered date_added DESC, id DESC.
	GetByTicketID(ctx context.Context, ticketID uint) ([]*Reply, error)

	// ReassignByIDs transfers ownership of the given replies to another
	// ticket. Used by split.
	ReassignByIDs(ctx context.Context, replyIDs []uint, toTicketID uint) error

	// ReassignContent transfers every reply- and note-type entry from one
	// ticket to another, leaving log entries behind. Used by merge.
	ReassignContent(ctx context.Context, fromTicketID, toTicketID uint) error

	// CountRepliesExcluding counts reply-type entries on a ticket outside
	// the excluded set. Split uses it to guarantee the source keeps at
	// least one real reply.
	CountRepliesExcluding(ctx context.Context, ticketID uint, excluded []uint) (int64, error)
}

// AttachmentRepository persists reply attachments.
type AttachmentRepository interface {
	SaveAll(ctx context.Context, attachments []*Attachment) error
	GetByReplyID(ctx context.Context, replyID uint) ([]*Attachment, error)
	DeleteByReplyID(ctx context.Context, replyID uint) error
}
