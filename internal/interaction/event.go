package interaction

import (
	"errors"
	"sort"

	slacklib "github.com/slack-go/slack"
)

// ErrMalformedEvent is returned when an interaction payload is missing the
// fields its type requires. The request fails as a whole; there is no
// partial processing.
var ErrMalformedEvent = errors.New("interaction: malformed event payload")

// Kind discriminates the two inbound event shapes.
type Kind string

const (
	// KindAction is a single activated element (button press, dispatched input edit).
	KindAction Kind = "action"
	// KindSubmission is a full form submission.
	KindSubmission Kind = "submission"
)

// ViewRef identifies the view an event originated from.
type ViewRef struct {
	ID              string
	ExternalID      string
	CallbackID      string
	PrivateMetadata string
}

// Snapshot is the complete current state of every input field rendered in a
// view at the time of an event: blockID -> actionID -> value. It is the only
// way prior round-trip input is recovered; the system holds no state between
// requests.
type Snapshot map[string]map[string]string

// Flatten projects out every field value in block order, then action order
// within a block. Slack delivers the state as a JSON object, so insertion
// order is recovered by a numeric-suffix-aware key sort; index-derived IDs
// (speaker_block_0, speaker_block_1, ...) compare in render order.
func (s Snapshot) Flatten() []string {
	if len(s) == 0 {
		return nil
	}

	values := make([]string, 0, len(s))
	for _, blockID := range sortedKeysNatural(mapKeys(s)) {
		actions := s[blockID]
		actionIDs := make([]string, 0, len(actions))
		for actionID := range actions {
			actionIDs = append(actionIDs, actionID)
		}
		for _, actionID := range sortedKeysNatural(actionIDs) {
			values = append(values, actions[actionID])
		}
	}

	return values
}

// Event is the discriminated representation of an inbound interaction.
type Event struct {
	Kind       Kind
	ActionID   string // set for KindAction
	BlockID    string // set for KindAction
	Value      string // set for KindAction
	CallbackID string // set for KindSubmission
	TriggerID  string
	ChannelID  string
	MessageTS  string // timestamp of the message the interaction anchors to
	View       ViewRef
	Snapshot   Snapshot
}

// RoutingID returns the identifier used to select a handler: the activated
// element's action ID, or the view callback ID for submissions.
func (e Event) RoutingID() ActionID {
	if e.Kind == KindSubmission {
		return ActionID(e.CallbackID)
	}

	return ActionID(e.ActionID)
}

// FromCallback converts a parsed Slack interaction callback into an Event.
func FromCallback(callback *slacklib.InteractionCallback) (Event, error) {
	switch callback.Type {
	case slacklib.InteractionTypeBlockActions:
		if len(callback.ActionCallback.BlockActions) == 0 {
			return Event{}, ErrMalformedEvent
		}
		action := callback.ActionCallback.BlockActions[0]

		return Event{
			Kind:      KindAction,
			ActionID:  action.ActionID,
			BlockID:   action.BlockID,
			Value:     action.Value,
			TriggerID: callback.TriggerID,
			ChannelID: channelID(callback),
			MessageTS: callback.Container.MessageTs,
			View:      viewRef(callback),
			Snapshot:  snapshotFrom(callback.View.State),
		}, nil

	case slacklib.InteractionTypeViewSubmission:
		if callback.View.CallbackID == "" {
			return Event{}, ErrMalformedEvent
		}

		return Event{
			Kind:       KindSubmission,
			CallbackID: callback.View.CallbackID,
			TriggerID:  callback.TriggerID,
			ChannelID:  channelID(callback),
			View:       viewRef(callback),
			Snapshot:   snapshotFrom(callback.View.State),
		}, nil

	default:
		return Event{}, ErrMalformedEvent
	}
}

func viewRef(callback *slacklib.InteractionCallback) ViewRef {
	return ViewRef{
		ID:              callback.View.ID,
		ExternalID:      callback.View.ExternalID,
		CallbackID:      callback.View.CallbackID,
		PrivateMetadata: callback.View.PrivateMetadata,
	}
}

func channelID(callback *slacklib.InteractionCallback) string {
	if callback.Channel.ID != "" {
		return callback.Channel.ID
	}

	return callback.Container.ChannelID
}

func snapshotFrom(state *slacklib.ViewState) Snapshot {
	if state == nil || len(state.Values) == 0 {
		return nil
	}

	snapshot := make(Snapshot, len(state.Values))
	for blockID, actions := range state.Values {
		fields := make(map[string]string, len(actions))
		for actionID, action := range actions {
			fields[actionID] = action.Value
		}
		snapshot[blockID] = fields
	}

	return snapshot
}

func mapKeys(s Snapshot) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}

	return keys
}

func sortedKeysNatural(keys []string) []string {
	sort.Slice(keys, func(i, j int) bool {
		return naturalLess(keys[i], keys[j])
	})

	return keys
}

// naturalLess compares strings byte-wise but treats runs of digits as
// numbers, so "b_2" sorts before "b_10".
func naturalLess(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		if isDigit(a[0]) && isDigit(b[0]) {
			an, aRest := leadingInt(a)
			bn, bRest := leadingInt(b)
			if an != bn {
				return an < bn
			}
			a, b = aRest, bRest
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}

	return len(a) < len(b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func leadingInt(s string) (int, string) {
	n := 0
	i := 0
	for i < len(s) && isDigit(s[i]) {
		n = n*10 + int(s[i]-'0')
		i++
	}

	return n, s[i:]
}
