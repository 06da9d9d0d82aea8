package email

import (
	"fmt"

	"opendesk/internal/application/ticket/usecases"
)

type emailTemplate struct {
	subject func(tags map[string]string) string
	body    func(tags map[string]string) (plain, html string)
}

// ticketSubject builds the standard ticket subject line. The
// "#<code> -<reply code>-" pair is what the inbound mail parser matches
// to route a reply without authentication.
func ticketSubject(prefix string, tags map[string]string) string {
	return fmt.Sprintf("%s [#%s -%s-] %s",
		prefix, tags["ticket_code"], tags["reply_code"], tags["summary"])
}

// messagePlain and messageHTML embed the triggering reply's body when
// one accompanies the notification.
func messagePlain(tags map[string]string) string {
	if tags["message"] == "" {
		return ""
	}
	return fmt.Sprintf("\n\n----------------\n%s\n----------------", tags["message"])
}

func messageHTML(tags map[string]string) string {
	if tags["message_html"] != "" {
		return fmt.Sprintf(`<blockquote>%s</blockquote>`, tags["message_html"])
	}
	if tags["message"] != "" {
		return fmt.Sprintf(`<blockquote><p>%s</p></blockquote>`, tags["message"])
	}
	return ""
}

var templates = map[string]emailTemplate{
	usecases.TemplateTicketOpened: {
		subject: func(tags map[string]string) string {
			return ticketSubject("Ticket Opened", tags)
		},
		body: func(tags map[string]string) (string, string) {
			plain := fmt.Sprintf(`Your ticket #%s has been opened.

Subject: %s
Status: %s%s

We will respond as soon as possible. Replying to this email will add your message to the ticket.`,
				tags["ticket_code"], tags["summary"], tags["status"], messagePlain(tags))
			html := fmt.Sprintf(`<html><body>
<h2>Ticket Opened</h2>
<p>Your ticket <strong>#%s</strong> has been opened.</p>
<p><strong>Subject:</strong> %s<br><strong>Status:</strong> %s</p>
%s<p>We will respond as soon as possible. Replying to this email will add your message to the ticket.</p>
</body></html>`,
				tags["ticket_code"], tags["summary"], tags["status"], messageHTML(tags))
			return plain, html
		},
	},
	usecases.TemplateTicketStaffResponse: {
		subject: func(tags map[string]string) string {
			return ticketSubject("Ticket Response", tags)
		},
		body: func(tags map[string]string) (string, string) {
			plain := fmt.Sprintf(`There is a new response on your ticket #%s.

Subject: %s
Status: %s%s

Replying to this email will add your message to the ticket.`,
				tags["ticket_code"], tags["summary"], tags["status"], messagePlain(tags))
			html := fmt.Sprintf(`<html><body>
<h2>Ticket Response</h2>
<p>There is a new response on your ticket <strong>#%s</strong>.</p>
<p><strong>Subject:</strong> %s<br><strong>Status:</strong> %s</p>
%s<p>Replying to this email will add your message to the ticket.</p>
</body></html>`,
				tags["ticket_code"], tags["summary"], tags["status"], messageHTML(tags))
			return plain, html
		},
	},
	usecases.TemplateTicketClientUpdate: {
		subject: func(tags map[string]string) string {
			return ticketSubject("Ticket Updated", tags)
		},
		body: func(tags map[string]string) (string, string) {
			plain := fmt.Sprintf(`Ticket #%s has been updated by the client.

Subject: %s
Status: %s%s`,
				tags["ticket_code"], tags["summary"], tags["status"], messagePlain(tags))
			html := fmt.Sprintf(`<html><body>
<h2>Ticket Updated</h2>
<p>Ticket <strong>#%s</strong> has been updated by the client.</p>
<p><strong>Subject:</strong> %s<br><strong>Status:</strong> %s</p>
%s</body></html>`,
				tags["ticket_code"], tags["summary"], tags["status"], messageHTML(tags))
			return plain, html
		},
	},
	usecases.TemplateTicketEmailUpdate: {
		subject: func(tags map[string]string) string {
			return ticketSubject("Ticket Updated", tags)
		},
		body: func(tags map[string]string) (string, string) {
			plain := fmt.Sprintf(`Ticket #%s has been updated by email.

Subject: %s
Status: %s%s`,
				tags["ticket_code"], tags["summary"], tags["status"], messagePlain(tags))
			html := fmt.Sprintf(`<html><body>
<h2>Ticket Updated</h2>
<p>Ticket <strong>#%s</strong> has been updated by email.</p>
<p><strong>Subject:</strong> %s<br><strong>Status:</strong> %s</p>
%s</body></html>`,
				tags["ticket_code"], tags["summary"], tags["status"], messageHTML(tags))
			return plain, html
		},
	},
	usecases.TemplateTicketMerged: {
		subject: func(tags map[string]string) string {
			return fmt.Sprintf("Ticket Merged [#%s] %s", tags["ticket_code"], tags["summary"])
		},
		body: func(tags map[string]string) (string, string) {
			plain := fmt.Sprintf(`Your ticket #%s has been merged into ticket #%s.

Further updates will appear on ticket #%s.`,
				tags["ticket_code"], tags["target_code"], tags["target_code"])
			html := fmt.Sprintf(`<html><body>
<h2>Ticket Merged</h2>
<p>Your ticket <strong>#%s</strong> has been merged into ticket <strong>#%s</strong>.</p>
<p>Further updates will appear on ticket <strong>#%s</strong>.</p>
</body></html>`,
				tags["ticket_code"], tags["target_code"], tags["target_code"])
			return plain, html
		},
	},
	usecases.TemplateTicketAutoClosed: {
		subject: func(tags map[string]string) string {
			return ticketSubject("Ticket Closed", tags)
		},
		body: func(tags map[string]string) (string, string) {
			plain := fmt.Sprintf(`Your ticket #%s has been closed due to inactivity.

Subject: %s

Replying to this email will reopen the conversation.`,
				tags["ticket_code"], tags["summary"])
			html := fmt.Sprintf(`<html><body>
<h2>Ticket Closed</h2>
<p>Your ticket <strong>#%s</strong> has been closed due to inactivity.</p>
<p><strong>Subject:</strong> %s</p>
<p>Replying to this email will reopen the conversation.</p>
</body></html>`,
				tags["ticket_code"], tags["summary"])
			return plain, html
		},
	},
}
