package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Context keys set by ActorIdentity.
const (
	ContextStaffID   = "staff_id"
	ContextContactID = "contact_id"
)

// ActorIdentity resolves the acting staff member or contact from the
// headers set by the authenticating gateway. Authentication itself
// happens upstream; absent headers mean an anonymous (email-origin)
// actor.
func ActorIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := parseIDHeader(c, "X-Staff-ID"); ok {
			c.Set(ContextStaffID, id)
		}
		if id, ok := parseIDHeader(c, "X-Contact-ID"); ok {
			c.Set(ContextContactID, id)
		}
		c.Next()
	}
}

func parseIDHeader(c *gin.Context, header string) (uint, bool) {
	raw := c.GetHeader(header)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
