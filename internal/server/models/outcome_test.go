package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOutcome_Success(t *testing.T) {
	assert.True(t, OutcomeAllowed.Success())

	for _, o := range []Outcome{
		OutcomeDeniedInvalidToken, OutcomeDeniedRevoked, OutcomeDeniedExpired,
		OutcomeDeniedViewsExhausted, OutcomeDeniedPasswordRequired,
		OutcomeDeniedWrongPassword, OutcomeDeniedRaceOrLimit,
		OutcomeErrorPayloadMissing, OutcomeErrorDecryptFailed,
	} {
		assert.Falsef(t, o.Success(), "%s must not be a success", o)
	}
}

func TestOutcome_InternalFault(t *testing.T) {
	assert.True(t, OutcomeErrorPayloadMissing.InternalFault())
	assert.True(t, OutcomeErrorDecryptFailed.InternalFault())
	assert.False(t, OutcomeAllowed.InternalFault())
	assert.False(t, OutcomeDeniedRevoked.InternalFault())
}

func TestAccessLink_RemainingViews(t *testing.T) {
	l := &AccessLink{MaxViews: 3, CurrentViews: 1, ExpiresAt: time.Now()}
	assert.Equal(t, 2, l.RemainingViews())

	l.CurrentViews = 3
	assert.Equal(t, 0, l.RemainingViews())

	// never negative, even if the store is somehow out of contract
	l.CurrentViews = 5
	assert.Equal(t, 0, l.RemainingViews())
}
