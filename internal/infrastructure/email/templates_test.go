package email

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opendesk/internal/application/ticket/usecases"
	"opendesk/internal/domain/ticket"
)

func templateTags() map[string]string {
	return map[string]string{
		"ticket_code": "5550001",
		"reply_code":  "a1b2c3d4e5f60718",
		"summary":     "Cannot reach the control panel",
		"status":      "Open",
	}
}

func TestTicketSubject_EmbedsRoutableReference(t *testing.T) {
	coder := ticket.NewReplyCoder("test-secret")
	tags := templateTags()
	tags["reply_code"] = coder.Generate("5550001")

	subject := ticketSubject("Ticket Response", tags)

	code, replyCode, ok := ticket.ParseSubjectReference(subject)
	require.True(t, ok)
	assert.Equal(t, "5550001", code)
	assert.True(t, coder.Verify(code, replyCode))
}

func TestTemplates_EveryKeyIsRegistered(t *testing.T) {
	keys := []string{
		usecases.TemplateTicketOpened,
		usecases.TemplateTicketStaffResponse,
		usecases.TemplateTicketClientUpdate,
		usecases.TemplateTicketEmailUpdate,
		usecases.TemplateTicketMerged,
		usecases.TemplateTicketAutoClosed,
	}

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			tpl, ok := templates[key]
			require.True(t, ok)

			tags := templateTags()
			tags["target_code"] = "5550009"

			subject := tpl.subject(tags)
			assert.NotEmpty(t, subject)
			assert.Contains(t, subject, "5550001")

			plain, html := tpl.body(tags)
			assert.NotEmpty(t, plain)
			assert.Contains(t, html, "<html>")
		})
	}
}

func TestMessageEmbedding(t *testing.T) {
	t.Run("absent message adds nothing", func(t *testing.T) {
		assert.Empty(t, messagePlain(map[string]string{}))
		assert.Empty(t, messageHTML(map[string]string{}))
	})

	t.Run("plain body is quoted verbatim", func(t *testing.T) {
		out := messagePlain(map[string]string{"message": "The panel is back up."})
		assert.Contains(t, out, "The panel is back up.")
		assert.Contains(t, out, "----------------")
	})

	t.Run("html prefers the rendered variant", func(t *testing.T) {
		out := messageHTML(map[string]string{
			"message":      "plain fallback",
			"message_html": "<p>rendered <strong>body</strong></p>",
		})
		assert.Contains(t, out, "<blockquote><p>rendered <strong>body</strong></p></blockquote>")
		assert.NotContains(t, out, "plain fallback")
	})

	t.Run("html falls back to escape-free paragraph", func(t *testing.T) {
		out := messageHTML(map[string]string{"message": "plain fallback"})
		assert.Equal(t, "<blockquote><p>plain fallback</p></blockquote>", out)
	})
}

func TestMergedTemplate_PointsAtTarget(t *testing.T) {
	tags := templateTags()
	tags["target_code"] = "5550009"

	tpl := templates[usecases.TemplateTicketMerged]
	plain, html := tpl.body(tags)

	assert.Contains(t, plain, "merged into ticket #5550009")
	assert.Contains(t, html, "5550009")
	assert.False(t, strings.Contains(tpl.subject(tags), "-a1b2c3d4e5f60718-"),
		"merged notices are terminal and carry no reply reference")
}
