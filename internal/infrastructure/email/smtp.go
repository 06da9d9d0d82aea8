package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"opendesk/internal/application/ticket/usecases"
	"opendesk/internal/shared/logger"
	"opendesk/internal/shared/services/markdown"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// SMTPDispatcher sends ticket notifications over SMTP. The subject of
// every ticket email embeds the "#<code> -<reply code>-" reference so
// inbound replies can be routed back to the ticket.
type SMTPDispatcher struct {
	config   SMTPConfig
	dialer   *gomail.Dialer
	renderer *markdown.Service
	logger   logger.Interface
}

func NewSMTPDispatcher(config SMTPConfig, log logger.Interface) *SMTPDispatcher {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPDispatcher{
		config:   config,
		dialer:   dialer,
		renderer: markdown.NewService(),
		logger:   log,
	}
}

func (s *SMTPDispatcher) Send(ctx context.Context, msg usecases.EmailMessage) error {
	tpl, ok := templates[msg.TemplateKey]
	if !ok {
		return fmt.Errorf("unknown email template: %s", msg.TemplateKey)
	}

	// The message body tag arrives as authored text; the HTML variant
	// gets a rendered copy so formatting survives in mail clients.
	if body := msg.Tags["message"]; body != "" {
		rendered, err := s.renderer.Render(body)
		if err != nil {
			s.logger.Warnw("message body rendering failed, sending without it",
				"template", msg.TemplateKey, "error", err)
		} else {
			msg.Tags["message_html"] = rendered
		}
	}

	subject := tpl.subject(msg.Tags)
	plainBody, htmlBody := tpl.body(msg.Tags)

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.config.FromAddress, s.config.FromName))
	m.SetHeader("To", msg.To)
	if len(msg.CC) > 0 {
		m.SetHeader("Cc", msg.CC...)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Debugw("ticket email sent",
		"template", msg.TemplateKey, "to", msg.To)

	return nil
}
