package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyCoder_GenerateAndVerify(t *testing.T) {
	coder := NewReplyCoder("test-secret")

	code := coder.Generate("5550001")
	assert.Len(t, code, 16)
	assert.Regexp(t, "^[0-9a-f]+$", code)

	// Deterministic for the same input.
	assert.Equal(t, code, coder.Generate("5550001"))

	// Different ticket codes yield different reply codes.
	assert.NotEqual(t, code, coder.Generate("5550002"))

	assert.True(t, coder.Verify("5550001", code))
	assert.False(t, coder.Verify("5550001", "0000000000000000"))
	assert.False(t, coder.Verify("5550002", code))
	assert.False(t, coder.Verify("5550001", ""))
}

func TestReplyCoder_SecretMatters(t *testing.T) {
	a := NewReplyCoder("secret-a")
	b := NewReplyCoder("secret-b")

	code := a.Generate("5550001")
	assert.False(t, b.Verify("5550001", code))
}

func TestParseSubjectReference(t *testing.T) {
	coder := NewReplyCoder("test-secret")
	replyCode := coder.Generate("5550001")

	tests := []struct {
		name         string
		text         string
		expectedCode string
		expectedOK   bool
	}{
		{
			name:         "standard outbound subject",
			text:         "[Support] [#5550001 -" + replyCode + "-] Panel unreachable",
			expectedCode: "5550001",
			expectedOK:   true,
		},
		{
			name:         "reference buried in a reply body",
			text:         "On Monday you wrote:\n> ticket #5550001 -" + replyCode + "- update",
			expectedCode: "5550001",
			expectedOK:   true,
		},
		{
			name:       "no reference",
			text:       "Re: your invoice",
			expectedOK: false,
		},
		{
			name:       "digits without a reply code",
			text:       "order #5550001 shipped",
			expectedOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticketCode, parsedReply, ok := ParseSubjectReference(tt.text)

			assert.Equal(t, tt.expectedOK, ok)
			if tt.expectedOK {
				assert.Equal(t, tt.expectedCode, ticketCode)
				assert.Equal(t, replyCode, parsedReply)
			}
		})
	}
}

func TestParseSubjectReference_RoundTrip(t *testing.T) {
	coder := NewReplyCoder("test-secret")
	replyCode := coder.Generate("8675309")

	subject := "[Helpdesk] [#8675309 -" + replyCode + "-] Re: login problem"

	ticketCode, parsedReply, ok := ParseSubjectReference(subject)
	require.True(t, ok)
	assert.Equal(t, "8675309", ticketCode)
	assert.True(t, coder.Verify(ticketCode, parsedReply))
}
