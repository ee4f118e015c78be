package slack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
	slacklib "github.com/slack-go/slack"

	"github.com/ward28/wardbot/internal/interaction"
)

// Handler processes Slack interactivity webhooks: it authenticates the
// request, parses the interaction payload into an event, and dispatches it
// through the router.
type Handler struct {
	signingSecret  string
	router         *interaction.Router
	testingChannel string
}

// NewHandler creates a webhook handler. Interactions originating in the
// testing channel run in dry-run mode.
func NewHandler(signingSecret string, router *interaction.Router, testingChannelID string) *Handler {
	return &Handler{
		signingSecret:  signingSecret,
		router:         router,
		testingChannel: testingChannelID,
	}
}

// HandleInteractions is an http.HandlerFunc for POST /slack/interactions.
func (h *Handler) HandleInteractions(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	if verifyErr := h.verifySignature(r.Header, body); verifyErr != nil {
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	// Interactions use a form-encoded body with the JSON in the "payload"
	// field. The body was consumed for signature verification, so re-create
	// it and let the stdlib parse the form.
	r.Body = io.NopCloser(bytes.NewReader(body))

	if parseErr := r.ParseForm(); parseErr != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	payloadStr := r.FormValue("payload")
	if payloadStr == "" {
		// Fallback: manually URL-decode from the raw body.
		payloadStr = extractFormPayload(string(body))
	}

	var callback slacklib.InteractionCallback
	if payloadStr == "" || json.Unmarshal([]byte(payloadStr), &callback) != nil {
		malformed(w)
		return
	}

	event, eventErr := interaction.FromCallback(&callback)
	if eventErr != nil {
		log.Warn().Err(eventErr).Msg("malformed interaction payload")
		malformed(w)
		return
	}

	handler, routeErr := h.router.Route(event.RoutingID())
	if routeErr != nil {
		// Only elements this application rendered can produce an event, so
		// an unknown identifier is a programming error, not bad input.
		log.Error().Err(routeErr).Msg("unhandled interaction identifier")
		malformed(w)
		return
	}

	dryRun := h.testingChannel != "" && event.ChannelID == h.testingChannel

	resp, handleErr := handler.Handle(r.Context(), event, dryRun)
	if handleErr != nil {
		log.Error().Err(handleErr).Str("action", string(event.RoutingID())).Msg("interaction handler failed")
		malformed(w)
		return
	}

	if resp == nil {
		w.WriteHeader(http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		log.Error().Err(encodeErr).Msg("encode interaction response")
	}
}

// malformed responds with the generic failure the platform shows the user,
// without exposing internal detail.
func malformed(w http.ResponseWriter) {
	http.Error(w, "There was a problem handling this interaction.", http.StatusInternalServerError)
}

// verifySignature validates the Slack request signature using the signing secret.
func (h *Handler) verifySignature(header http.Header, body []byte) error {
	sv, err := slacklib.NewSecretsVerifier(header, h.signingSecret)
	if err != nil {
		return fmt.Errorf("slack.Handler.verifySignature: create verifier: %w", err)
	}

	if _, writeErr := sv.Write(body); writeErr != nil {
		return fmt.Errorf("slack.Handler.verifySignature: write body: %w", writeErr)
	}

	if ensureErr := sv.Ensure(); ensureErr != nil {
		return fmt.Errorf("slack.Handler.verifySignature: ensure: %w", ensureErr)
	}

	return nil
}

// extractFormPayload parses the "payload" value from a URL-encoded form body.
func extractFormPayload(body string) string {
	values, err := url.ParseQuery(body)
	if err != nil {
		return ""
	}

	return values.Get("payload")
}
