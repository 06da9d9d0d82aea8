package ticket

import (
	"fmt"
	"time"

	"opendesk/internal/domain/ticket/valueobjects"
	"opendesk/internal/shared/biztime"
)

// Author identifies who wrote a reply. Exactly one of StaffID and
// ContactID may be set; when both are nil the ticket's own email address
// authored it (an unauthenticated, email-origin reply).
type Author struct {
	StaffID   *uint
	ContactID *uint
}

// SystemAuthor returns the author used for automated entries, carrying
// the injected system actor sentinel.
func SystemAuthor(systemStaffID uint) Author {
	return Author{StaffID: &systemStaffID}
}

// IsStaff reports whether a staff member authored the entry.
func (a Author) IsStaff() bool {
	return a.StaffID != nil
}

// IsContact reports whether a non-primary client contact authored the entry.
func (a Author) IsContact() bool {
	return a.ContactID != nil
}

// IsEmailOrigin reports whether the entry came from the ticket's own
// email address without authentication.
func (a Author) IsEmailOrigin() bool {
	return a.StaffID == nil && a.ContactID == nil
}

// Reply is one immutable entry in a ticket's append-only thread.
// Ownership may be transferred between tickets (merge, split) but the
// entry itself never changes.
type Reply struct {
	id        uint
	ticketID  uint
	author    Author
	rtype     valueobjects.ReplyType
	details   string
	dateAdded time.Time
}

func NewReply(
	ticketID uint,
	author Author,
	rtype valueobjects.ReplyType,
	details string,
) (*Reply, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !rtype.IsValid() {
		return nil, fmt.Errorf("invalid reply type")
	}
	if author.StaffID != nil && author.ContactID != nil {
		return nil, fmt.Errorf("reply cannot be authored by both staff and contact")
	}

	return &Reply{
		ticketID:  ticketID,
		author:    author,
		rtype:     rtype,
		details:   details,
		dateAdded: biztime.NowUTC(),
	}, nil
}

func ReconstructReply(
	id uint,
	ticketID uint,
	author Author,
	rtype valueobjects.ReplyType,
	details string,
	dateAdded time.Time,
) (*Reply, error) {
	if id == 0 {
		return nil, fmt.Errorf("reply ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !rtype.IsValid() {
		return nil, fmt.Errorf("invalid reply type")
	}

	return &Reply{
		id:        id,
		ticketID:  ticketID,
		author:    author,
		rtype:     rtype,
		details:   details,
		dateAdded: dateAdded,
	}, nil
}

func (r *Reply) ID() uint {
	return r.id
}

func (r *Reply) TicketID() uint {
	return r.ticketID
}

func (r *Reply) Author() Author {
	return r.author
}

func (r *Reply) StaffID() *uint {
	return r.author.StaffID
}

func (r *Reply) ContactID() *uint {
	return r.author.ContactID
}

func (r *Reply) Type() valueobjects.ReplyType {
	return r.rtype
}

func (r *Reply) Details() string {
	return r.details
}

func (r *Reply) DateAdded() time.Time {
	return r.dateAdded
}

func (r *Reply) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("reply ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("reply ID cannot be zero")
	}
	r.id = id
	return nil
}
