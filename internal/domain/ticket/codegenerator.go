package ticket

import (
	"context"

	"opendesk/internal/shared/id"
)

// CodeGenerator produces candidate human-facing ticket codes. Uniqueness
// is enforced by the storage layer's unique index; callers retry on a
// duplicate-key error rather than pre-checking.
type CodeGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// RandomCodeGenerator generates random numeric codes of a fixed length.
type RandomCodeGenerator struct {
	length int
}

func NewRandomCodeGenerator(length int) *RandomCodeGenerator {
	if length <= 0 {
		length = id.DefaultCodeLength
	}
	return &RandomCodeGenerator{length: length}
}

func (g *RandomCodeGenerator) Generate(ctx context.Context) (string, error) {
	return id.Digits(g.length)
}
