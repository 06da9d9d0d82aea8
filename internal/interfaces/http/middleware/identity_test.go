package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func runIdentityRequest(t *testing.T, headers map[string]string) (staffID, contactID *uint) {
	t.Helper()

	engine := gin.New()
	engine.Use(ActorIdentity())
	engine.GET("/probe-identity", func(c *gin.Context) {
		if v, ok := c.Get(ContextStaffID); ok {
			id := v.(uint)
			staffID = &id
		}
		if v, ok := c.Get(ContextContactID); ok {
			id := v.(uint)
			contactID = &id
		}
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe-identity", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	return staffID, contactID
}

func TestActorIdentity(t *testing.T) {
	t.Run("staff header sets staff identity", func(t *testing.T) {
		staffID, contactID := runIdentityRequest(t, map[string]string{"X-Staff-ID": "7"})
		require.NotNil(t, staffID)
		assert.Equal(t, uint(7), *staffID)
		assert.Nil(t, contactID)
	})

	t.Run("contact header sets contact identity", func(t *testing.T) {
		staffID, contactID := runIdentityRequest(t, map[string]string{"X-Contact-ID": "4"})
		assert.Nil(t, staffID)
		require.NotNil(t, contactID)
		assert.Equal(t, uint(4), *contactID)
	})

	t.Run("no headers mean an anonymous actor", func(t *testing.T) {
		staffID, contactID := runIdentityRequest(t, nil)
		assert.Nil(t, staffID)
		assert.Nil(t, contactID)
	})

	t.Run("malformed and zero IDs are ignored", func(t *testing.T) {
		for _, raw := range []string{"abc", "0", "-1", "99999999999999999999"} {
			staffID, _ := runIdentityRequest(t, map[string]string{"X-Staff-ID": raw})
			assert.Nil(t, staffID, "header %q must not resolve to an identity", raw)
		}
	})
}
