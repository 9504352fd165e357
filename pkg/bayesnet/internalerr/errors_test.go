package internalerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariableErrorUnwraps(t *testing.T) {
	err := Variable("factor lookup", "Alarm", "", ErrMissingAssignment)
	wrapped := fmt.Errorf("eliminate: %w", err)

	assert.True(t, errors.Is(wrapped, ErrMissingAssignment))
	assert.False(t, errors.Is(wrapped, ErrInvalidOutcome))

	var ve *VariableError
	if assert.True(t, errors.As(wrapped, &ve)) {
		assert.Equal(t, "Alarm", ve.Variable)
	}
}

func TestVariableErrorMessage(t *testing.T) {
	err := Variable("cpt lookup", "B", "maybe", ErrInvalidOutcome)
	assert.Equal(t, `cpt lookup: invalid outcome: B="maybe"`, err.Error())

	err = Variable("eliminate", "C", "", ErrVariableNotFound)
	assert.Equal(t, "eliminate: variable not found: C", err.Error())
}
