package validators

import (
	"errors"
	"fmt"
	"strings"
)

// Column limits from the skill models.
const (
	maxStepsChars       = 2000
	maxInstructionChars = 2000
	maxInstructions     = 20
)

var (
	ErrStepsEmpty       = errors.New("no steps provided")
	ErrStepsTooLong     = fmt.Errorf("steps can't be longer than %d characters", maxStepsChars)
	ErrNoInstructions   = errors.New("at least one instruction is required")
	ErrTooManyInstructs = fmt.Errorf("at most %d instructions are allowed", maxInstructions)
	ErrInstructionEmpty = errors.New("instructions can't be empty")
	ErrInstructionLong  = fmt.Errorf("instructions can't be longer than %d characters", maxInstructionChars)
	ErrHostHasComma     = errors.New("hosts can't contain commas")
)

func SkillValidator(steps string, instructions []string, hosts []string) error {
	if steps == "" {
		return ErrStepsEmpty
	}

	if len(steps) > maxStepsChars {
		return ErrStepsTooLong
	}

	if len(instructions) == 0 {
		return ErrNoInstructions
	}

	if len(instructions) > maxInstructions {
		return ErrTooManyInstructs
	}

	for _, text := range instructions {
		if strings.TrimSpace(text) == "" {
			return ErrInstructionEmpty
		}

		if len(text) > maxInstructionChars {
			return ErrInstructionLong
		}
	}

	for _, h := range hosts {
		if strings.Contains(h, ",") {
			return ErrHostHasComma
		}
	}

	return nil
}
