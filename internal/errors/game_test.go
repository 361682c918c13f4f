package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-raid/internal/errors"
)

func TestGameTaxonomy(t *testing.T) {
	testCases := []struct {
		name  string
		err   *errors.Error
		code  errors.Code
		check func(error) bool
	}{
		{"insufficient resources", errors.InsufficientResources("need %d", 1), errors.CodeResourceExhausted, errors.IsInsufficientResources},
		{"invalid target", errors.InvalidTarget("slot %d", 9), errors.CodeNotFound, errors.IsInvalidTarget},
		{"already active", errors.AlreadyActive("slot busy"), errors.CodeAlreadyExists, errors.IsAlreadyActive},
		{"ineligible replacement", errors.IneligibleReplacement("mythical"), errors.CodeFailedPrecondition, errors.IsIneligibleReplacement},
		{"terminal", errors.Terminal("raid over"), errors.CodeAborted, errors.IsTerminal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, tc.err.Code)
			assert.True(t, tc.check(tc.err))
			assert.True(t, tc.check(errors.Wrap(tc.err, "wrapped")))
		})
	}

	assert.False(t, errors.IsAlreadyActive(errors.AlreadyExists("plain duplicate")))
	assert.False(t, errors.IsInvalidTarget(errors.NotFound("plain missing")))
}
