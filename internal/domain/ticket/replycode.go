package ticket

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"regexp"
)

// replyCodeLength is the number of hex characters embedded in outbound
// email subjects.
const replyCodeLength = 16

// subjectReference matches the "#<digits> -<hex>-" pair the inbound
// email parser extracts from a subject or body to route a reply to an
// existing ticket without authentication.
var subjectReference = regexp.MustCompile(`#(\d+) -([0-9a-f]+)-`)

// ReplyCoder derives and verifies the keyed reply code for a ticket
// code. The code proves an inbound email references a ticket this system
// issued, since only the holder of the secret can produce it.
type ReplyCoder struct {
	secret []byte
}

func NewReplyCoder(secret string) *ReplyCoder {
	return &ReplyCoder{secret: []byte(secret)}
}

// Generate returns the reply code for a ticket code.
func (rc *ReplyCoder) Generate(ticketCode string) string {
	mac := hmac.New(sha256.New, rc.secret)
	mac.Write([]byte(ticketCode))
	sum := hex.EncodeToString(mac.Sum(nil))
	return sum[:replyCodeLength]
}

// Verify reports whether the reply code matches the ticket code in
// constant time.
func (rc *ReplyCoder) Verify(ticketCode, replyCode string) bool {
	expected := rc.Generate(ticketCode)
	return hmac.Equal([]byte(expected), []byte(replyCode))
}

// ParseSubjectReference extracts the (ticket code, reply code) pair from
// free text. ok is false when no reference is present.
func ParseSubjectReference(text string) (ticketCode, replyCode string, ok bool) {
	m := subjectReference.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
