package valueobjects

import "fmt"

// ReplyType distinguishes the three kinds of entries in a ticket's
// append-only thread: visible content from client or staff, staff-only
// notes, and system-generated change records.
type ReplyType string

const (
	ReplyTypeReply ReplyType = "reply"
	ReplyTypeNote  ReplyType = "note"
	ReplyTypeLog   ReplyType = "log"
)

var validReplyTypes = map[ReplyType]bool{
	ReplyTypeReply: true,
	ReplyTypeNote:  true,
	ReplyTypeLog:   true,
}

func (rt ReplyType) String() string {
	return string(rt)
}

func (rt ReplyType) IsValid() bool {
	return validReplyTypes[rt]
}

func (rt ReplyType) IsLog() bool {
	return rt == ReplyTypeLog
}

func (rt ReplyType) IsReply() bool {
	return rt == ReplyTypeReply
}

// IsContent reports whether the entry carries conversation content.
// Merge moves only content entries; log entries stay with the ticket
// whose history they describe.
func (rt ReplyType) IsContent() bool {
	return rt == ReplyTypeReply || rt == ReplyTypeNote
}

func NewReplyType(s string) (ReplyType, error) {
	rt := ReplyType(s)
	if !rt.IsValid() {
		return "", fmt.Errorf("invalid reply type: %s", s)
	}
	return rt, nil
}
