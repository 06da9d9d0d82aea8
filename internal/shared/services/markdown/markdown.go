// Package markdown renders user-authored message bodies to HTML safe
// for embedding in outbound email.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type Service struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewService() *Service {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span", "pre")

	return &Service{md: md, policy: policy}
}

// Render converts a message body to sanitized HTML. The sanitization
// pass runs after rendering so raw HTML embedded in the source cannot
// slip through.
func (s *Service) Render(body string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("failed to render message body: %w", err)
	}
	return s.policy.Sanitize(buf.String()), nil
}
