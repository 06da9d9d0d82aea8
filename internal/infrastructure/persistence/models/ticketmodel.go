package models

type TicketModel struct {
	ID           uint   `gorm:"primaryKey"`
	Code         string `gorm:"uniqueIndex;size:50;not null"`
	DepartmentID uint   `gorm:"not null;index"`
	StaffID      *uint  `gorm:"index"`
	ServiceID    *uint  `gorm:"index"`
	ClientID     *uint  `gorm:"index"`
	Email        string `gorm:"size:255"`
	Summary      string `gorm:"size:255;not null"`
	Priority     string `gorm:"size:20;not null;index"`
	Status       string `gorm:"size:20;not null;index"`
	DateAdded    int64  `gorm:"autoCreateTime:milli;not null;index"`
	DateClosed   *int64

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}

type ReplyModel struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  uint   `gorm:"not null;index"`
	StaffID   *uint  `gorm:"index"`
	ContactID *uint  `gorm:"index"`
	Type      string `gorm:"size:10;not null;index"`
	Details   string `gorm:"type:text;not null"`
	DateAdded int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (ReplyModel) TableName() string {
	return "ticket_replies"
}

type AttachmentModel struct {
	ID         uint   `gorm:"primaryKey"`
	ReplyID    uint   `gorm:"not null;index"`
	Name       string `gorm:"size:255;not null"`
	StoredPath string `gorm:"size:512;not null"`
	DateAdded  int64  `gorm:"autoCreateTime:milli;not null"`
}

func (AttachmentModel) TableName() string {
	return "ticket_attachments"
}
