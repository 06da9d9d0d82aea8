package ticket

import "fmt"

// Attachment links a stored file to the reply it arrived with.
// Ownership cascades from Reply to Ticket.
type Attachment struct {
	id         uint
	replyID    uint
	name       string
	storedPath string
}

func NewAttachment(replyID uint, name, storedPath string) (*Attachment, error) {
	if replyID == 0 {
		return nil, fmt.Errorf("reply ID is required")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("attachment name is required")
	}
	if len(storedPath) == 0 {
		return nil, fmt.Errorf("stored path is required")
	}

	return &Attachment{
		replyID:    replyID,
		name:       name,
		storedPath: storedPath,
	}, nil
}

func ReconstructAttachment(id, replyID uint, name, storedPath string) (*Attachment, error) {
	if id == 0 {
		return nil, fmt.Errorf("attachment ID cannot be zero")
	}
	if replyID == 0 {
		return nil, fmt.Errorf("reply ID is required")
	}

	return &Attachment{
		id:         id,
		replyID:    replyID,
		name:       name,
		storedPath: storedPath,
	}, nil
}

func (a *Attachment) ID() uint {
	return a.id
}

func (a *Attachment) ReplyID() uint {
	return a.replyID
}

func (a *Attachment) Name() string {
	return a.name
}

func (a *Attachment) StoredPath() string {
	return a.storedPath
}

func (a *Attachment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("attachment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("attachment ID cannot be zero")
	}
	a.id = id
	return nil
}
