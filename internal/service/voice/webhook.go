package voice

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"voicedesk/internal/domain"
)

// TranscriptEvent is the webhook payload the provider posts on every
// conversation update. The transcript is always the full conversation so
// far, not a delta.
type TranscriptEvent struct {
	CallID     string        `json:"call_id"`
	Transcript []domain.Turn `json:"transcript"`
}

// Validate rejects events that cannot be routed to a session. Turn roles are
// deliberately not validated: the order reducer skips anything that is not a
// user turn, so unknown roles are harmless and must not cost us the update.
func (e TranscriptEvent) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.CallID, validation.Required),
	)
}
