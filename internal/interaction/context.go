package interaction

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// ViewContext is the typed form of a view's private metadata: the only state
// that survives between round trips of a modal. It is serialized into the
// view at creation and must round-trip unchanged through every subsequent
// event for that view.
type ViewContext struct {
	// DryRun redirects side effects to the test recipient/channel.
	DryRun bool `json:"dryRun"`
	// ChannelID is the channel of the message that opened the modal,
	// used to anchor the acknowledgment reply.
	ChannelID string `json:"channelId,omitempty"`
	// MessageTS is the timestamp of that message.
	MessageTS string `json:"messageTs,omitempty"`
}

// Encode serializes the context for embedding in a view.
func (c ViewContext) Encode() string {
	raw, err := json.Marshal(c)
	if err != nil {
		return "{}"
	}

	return string(raw)
}

// DecodeViewContext deserializes a private metadata string. A missing or
// malformed string decodes to the zero context rather than failing: the
// platform owns the payload in transit, and a corrupt context should degrade
// to production defaults, not break the interaction.
func DecodeViewContext(raw string) ViewContext {
	var ctx ViewContext
	if raw == "" {
		return ctx
	}

	if err := json.Unmarshal([]byte(raw), &ctx); err != nil {
		log.Warn().Err(err).Msg("unparseable view private metadata, using defaults")
		return ViewContext{}
	}

	return ctx
}
