package interaction

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	slacklib "github.com/slack-go/slack"

	"github.com/ward28/wardbot/internal/blockkit"
	"github.com/ward28/wardbot/internal/dedupe"
	"github.com/ward28/wardbot/internal/schedule"
)

// initialSpeakerCount is how many input fields a freshly opened modal shows.
const initialSpeakerCount = 2

// ModalAPI is the subset of the Slack client the modal handler needs.
type ModalAPI interface {
	OpenModal(ctx context.Context, triggerID string, view slacklib.ModalViewRequest) error
	UpdateModal(ctx context.Context, viewID string, view slacklib.ModalViewRequest) error
}

// ReplyPoster posts a plain text reply into a message thread.
type ReplyPoster interface {
	PostThreadReply(ctx context.Context, channelID, threadTS, text string) error
}

// Notification is the payload handed to the notification side effect.
type Notification struct {
	Subject   string
	Body      string
	Recipient string
}

// NotificationSender delivers a notification. Fire-and-forget; callers catch
// and log failures.
type NotificationSender interface {
	Send(ctx context.Context, n Notification) error
}

// SpeakersModalHandler renders the sacrament speakers modal. On the open
// action it opens a fresh modal; on the add-field action it re-renders the
// same view with one more input, pre-filling every previously entered value.
type SpeakersModalHandler struct {
	modals ModalAPI
}

// NewSpeakersModalHandler creates the modal handler.
func NewSpeakersModalHandler(modals ModalAPI) *SpeakersModalHandler {
	return &SpeakersModalHandler{modals: modals}
}

// Handle processes an open or add-field action.
func (h *SpeakersModalHandler) Handle(ctx context.Context, event Event, dryRun bool) (*Response, error) {
	previous := event.Snapshot.Flatten()
	count := len(previous) + 1
	if count < initialSpeakerCount {
		count = initialSpeakerCount
	}

	// On open, the context is seeded from the triggering message so the
	// submission can thread its acknowledgment. On add-field, the context
	// already embedded in the view round-trips unchanged.
	var viewCtx ViewContext
	switch event.RoutingID() {
	case ActionOpenSpeakersModal:
		viewCtx = ViewContext{
			DryRun:    dryRun,
			ChannelID: event.ChannelID,
			MessageTS: event.MessageTS,
		}
	default:
		viewCtx = DecodeViewContext(event.View.PrivateMetadata)
	}

	view, err := buildSpeakersModal(viewCtx, previous, count)
	if err != nil {
		return nil, fmt.Errorf("interaction.SpeakersModalHandler.Handle: build modal: %w", err)
	}

	switch event.RoutingID() {
	case ActionAddSpeakerField:
		// Update in place: same view identity, one more field.
		if updateErr := h.modals.UpdateModal(ctx, event.View.ID, view); updateErr != nil {
			return nil, fmt.Errorf("interaction.SpeakersModalHandler.Handle: update modal: %w", updateErr)
		}
	default:
		view.ExternalID = "speakers-" + uuid.NewString()
		if openErr := h.modals.OpenModal(ctx, event.TriggerID, view); openErr != nil {
			return nil, fmt.Errorf("interaction.SpeakersModalHandler.Handle: open modal: %w", openErr)
		}
	}

	return nil, nil
}

// buildSpeakersModal renders count labeled inputs, pre-filled from previous
// by positional index, followed by the add-field button.
func buildSpeakersModal(viewCtx ViewContext, previous []string, count int) (slacklib.ModalViewRequest, error) {
	modal := blockkit.Modal(blockkit.PlainText("Sacrament Speakers")).
		Submit(blockkit.PlainText("Submit")).
		Close(blockkit.PlainText("Cancel")).
		CallbackID(string(ActionSubmitSpeakers)).
		PrivateMetadata(viewCtx.Encode())

	for i := 0; i < count; i++ {
		value := ""
		if i < len(previous) {
			value = previous[i]
		}

		modal.AddBlock(blockkit.Input(blockkit.PlainText(fmt.Sprintf("Speaker %d", i+1))).
			BlockID(fmt.Sprintf("speaker_block_%d", i)).
			Optional().
			Element(blockkit.TextInput().
				ActionID(fmt.Sprintf("speaker_input_%d", i)).
				MaybeInitialValue(value).
				Placeholder(blockkit.PlainText("Full name"))))
	}

	modal.AddBlock(blockkit.Actions().
		BlockID("speaker_controls").
		AddElement(blockkit.Button(blockkit.PlainText("Add another speaker")).
			ActionID(string(ActionAddSpeakerField))))

	return modal.Build()
}

// SpeakersSubmitHandler finalizes a submission: it emails the entered
// speakers for the upcoming Sunday at most once per cycle, posts an
// acknowledgment reply under the original request message, and clears the
// form. A cycle that was already satisfied is suppressed silently; from the
// submitter's perspective it is indistinguishable from a send.
type SpeakersSubmitHandler struct {
	guard     *dedupe.Guard
	sender    NotificationSender
	replies   ReplyPoster
	recipient string
	dryRunTo  string
	now       func() time.Time
}

// SubmitOption configures optional SpeakersSubmitHandler parameters.
type SubmitOption func(*SpeakersSubmitHandler)

// WithSubmitClock overrides the wall clock, for tests.
func WithSubmitClock(now func() time.Time) SubmitOption {
	return func(h *SpeakersSubmitHandler) {
		h.now = now
	}
}

// NewSpeakersSubmitHandler creates the submission handler. recipient receives
// production notifications; dryRunRecipient receives dry-run ones.
func NewSpeakersSubmitHandler(
	guard *dedupe.Guard,
	sender NotificationSender,
	replies ReplyPoster,
	recipient, dryRunRecipient string,
	opts ...SubmitOption,
) *SpeakersSubmitHandler {
	h := &SpeakersSubmitHandler{
		guard:     guard,
		sender:    sender,
		replies:   replies,
		recipient: recipient,
		dryRunTo:  dryRunRecipient,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Handle processes a speakers form submission.
func (h *SpeakersSubmitHandler) Handle(ctx context.Context, event Event, dryRun bool) (*Response, error) {
	viewCtx := DecodeViewContext(event.View.PrivateMetadata)
	isDry := dryRun || viewCtx.DryRun

	speakers := make([]string, 0, len(event.Snapshot))
	for _, value := range event.Snapshot.Flatten() {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			speakers = append(speakers, trimmed)
		}
	}

	occurrence := schedule.ClosestSunday(h.now())

	ran, err := h.guard.Run(ctx, occurrence, func(ctx context.Context) error {
		recipient := h.recipient
		if isDry {
			recipient = h.dryRunTo
		}

		formatted := formatOccurrence(occurrence)
		log.Info().
			Str("recipient", recipient).
			Str("occurrence", formatted).
			Bool("dry_run", isDry).
			Msg("sending sacrament speakers email")

		return h.sender.Send(ctx, Notification{
			Subject:   fmt.Sprintf("Sacrament Speakers for %s", formatted),
			Body:      fmt.Sprintf("Here are our speakers for %s:\n\n%s\n\nThanks!", formatted, strings.Join(speakers, "\n")),
			Recipient: recipient,
		})
	})
	if err != nil {
		// Best-effort: the platform gets a normal acknowledgment either way,
		// and a failed send left no marker, so the next submission retries.
		log.Error().Err(err).Msg("sacrament speakers side effect failed")
		return ClearResponse(), nil
	}

	if ran && viewCtx.ChannelID != "" && viewCtx.MessageTS != "" {
		reply := "Thanks! The speakers for " + formatOccurrence(occurrence) + " have been sent."
		if replyErr := h.replies.PostThreadReply(ctx, viewCtx.ChannelID, viewCtx.MessageTS, reply); replyErr != nil {
			log.Error().Err(replyErr).Msg("failed to post acknowledgment reply")
		}
	}

	return ClearResponse(), nil
}

// formatOccurrence renders a date like "June 9th".
func formatOccurrence(t time.Time) string {
	return t.Format("January") + " " + strconv.Itoa(t.Day()) + dayOrdinal(t.Day())
}

func dayOrdinal(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
