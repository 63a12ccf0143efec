package models

// Outcome is the closed taxonomy of redemption results. Every audit record
// carries exactly one of these; free-form strings are deliberately not
// accepted so the taxonomy cannot fragment through typos.
type Outcome string

const (
	OutcomeAllowed Outcome = "allowed"

	OutcomeDeniedInvalidToken     Outcome = "denied_invalid_token"
	OutcomeDeniedRevoked          Outcome = "denied_revoked"
	OutcomeDeniedExpired          Outcome = "denied_expired"
	OutcomeDeniedViewsExhausted   Outcome = "denied_views_exhausted"
	OutcomeDeniedPasswordRequired Outcome = "denied_password_required"
	OutcomeDeniedWrongPassword    Outcome = "denied_wrong_password"
	OutcomeDeniedRaceOrLimit      Outcome = "denied_race_or_limit"

	OutcomeErrorPayloadMissing Outcome = "error_payload_missing"
	OutcomeErrorDecryptFailed  Outcome = "error_decrypt_failed"
)

// Success reports whether the outcome delivered the plaintext.
func (o Outcome) Success() bool {
	return o == OutcomeAllowed
}

// InternalFault reports whether the outcome is an internal-consistency
// failure rather than an expected denial.
func (o Outcome) InternalFault() bool {
	return o == OutcomeErrorPayloadMissing || o == OutcomeErrorDecryptFailed
}
