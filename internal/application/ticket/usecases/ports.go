package usecases

import "context"

// Email template keys. Template selection depends on whether the
// triggering reply's author is staff, a client/contact, or an
// unauthenticated email sender.
const (
	TemplateTicketOpened        = "ticket_opened"
	TemplateTicketStaffResponse = "ticket_staff_response"
	TemplateTicketClientUpdate  = "ticket_client_update"
	TemplateTicketEmailUpdate   = "ticket_email_update"
	TemplateTicketMerged        = "ticket_merged"
	TemplateTicketAutoClosed    = "ticket_auto_closed"
)

// EmailMessage is the dispatch request handed to the email collaborator.
// Tags hold template variables (ticket code, reply code, summary...).
type EmailMessage struct {
	TemplateKey string
	CompanyID   uint
	Language    string
	To          string
	Tags        map[string]string
	CC          []string
}

// EmailDispatcher is the outbound notification collaborator. Dispatch
// failures after a committed write are reported but never roll the
// write back.
type EmailDispatcher interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// UploadFile is an attachment payload arriving with a reply.
type UploadFile struct {
	Name    string
	Content []byte
}

// StoredFile describes a persisted attachment.
type StoredFile struct {
	OriginalName string
	StoredPath   string
}

// AttachmentStore persists attachment payloads. Write must remove any
// partially written files before returning an error; Remove cleans up
// stored files when the surrounding database work fails to commit.
type AttachmentStore interface {
	Write(ctx context.Context, ticketID uint, files []UploadFile) ([]StoredFile, error)
	Remove(ctx context.Context, files []StoredFile) error
}

// Sanitizer strips unsafe markup from user-supplied reply bodies.
type Sanitizer interface {
	Sanitize(s string) string
}
