package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillValidator(t *testing.T) {
	ok := func(steps string, instructions, hosts []string) error {
		return SkillValidator(steps, instructions, hosts)
	}

	assert.NoError(t, ok("{}", []string{"turn on dark mode"}, []string{"example.com"}))
	assert.NoError(t, ok("{}", []string{"x"}, nil))

	assert.ErrorIs(t, ok("", []string{"x"}, nil), ErrStepsEmpty)
	assert.ErrorIs(t, ok(strings.Repeat("a", 2001), []string{"x"}, nil), ErrStepsTooLong)
	assert.ErrorIs(t, ok("{}", nil, nil), ErrNoInstructions)
	assert.ErrorIs(t, ok("{}", make([]string, 21), nil), ErrTooManyInstructs)
	assert.ErrorIs(t, ok("{}", []string{"  "}, nil), ErrInstructionEmpty)
	assert.ErrorIs(t, ok("{}", []string{strings.Repeat("a", 2001)}, nil), ErrInstructionLong)
	assert.ErrorIs(t, ok("{}", []string{"x"}, []string{"a,b"}), ErrHostHasComma)
}

func TestEmailValidator(t *testing.T) {
	assert.NoError(t, EmailValidator("fer@example.com"))
	assert.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	assert.ErrorIs(t, EmailValidator("not-an-email"), ErrEmailInvalid)
}
