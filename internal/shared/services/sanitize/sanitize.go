// Package sanitize strips unsafe markup from user-supplied reply bodies
// before they are persisted or rendered.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

type Service struct {
	policy *bluemonday.Policy
}

func NewService() *Service {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span", "div", "pre")

	return &Service{policy: policy}
}

func (s *Service) Sanitize(input string) string {
	return strings.TrimSpace(s.policy.Sanitize(input))
}
