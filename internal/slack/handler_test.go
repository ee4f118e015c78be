package slack_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	slacklib "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ward28/wardbot/internal/dedupe"
	"github.com/ward28/wardbot/internal/interaction"
	"github.com/ward28/wardbot/internal/schedule"
	wardslack "github.com/ward28/wardbot/internal/slack"
)

const (
	testSigningSecret = "test-signing-secret-12345"
	testingChannelID  = "CTEST"
)

// --- fakes ---

type fakeModalAPI struct {
	openedTrigger string
	openedView    *slacklib.ModalViewRequest
	updatedViewID string
	updatedView   *slacklib.ModalViewRequest
}

func (f *fakeModalAPI) OpenModal(_ context.Context, triggerID string, view slacklib.ModalViewRequest) error {
	f.openedTrigger = triggerID
	f.openedView = &view
	return nil
}

func (f *fakeModalAPI) UpdateModal(_ context.Context, viewID string, view slacklib.ModalViewRequest) error {
	f.updatedViewID = viewID
	f.updatedView = &view
	return nil
}

type fakeSender struct {
	sent []interaction.Notification
}

func (f *fakeSender) Send(_ context.Context, n interaction.Notification) error {
	f.sent = append(f.sent, n)
	return nil
}

type fakeReplies struct {
	channelID string
	threadTS  string
	text      string
	calls     int
}

func (f *fakeReplies) PostThreadReply(_ context.Context, channelID, threadTS, text string) error {
	f.calls++
	f.channelID = channelID
	f.threadTS = threadTS
	f.text = text
	return nil
}

type memCache struct {
	entries map[string]string
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]string)}
}

func (c *memCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *memCache) SetWithTTL(_ context.Context, key, value string, _ time.Duration) error {
	c.entries[key] = value
	return nil
}

// --- fixtures ---

// Friday before Sunday 2024-06-09.
var handlerNow = time.Date(2024, time.June, 7, 12, 0, 0, 0, time.UTC)

type handlerFixture struct {
	handler *wardslack.Handler
	modals  *fakeModalAPI
	sender  *fakeSender
	replies *fakeReplies
	cache   *memCache
}

func newHandlerFixture() *handlerFixture {
	modals := &fakeModalAPI{}
	sender := &fakeSender{}
	replies := &fakeReplies{}
	cache := newMemCache()

	clock := func() time.Time { return handlerNow }
	guard := dedupe.NewGuard(cache, "sacrament-speakers", schedule.NextCutover, dedupe.WithClock(clock))

	router := interaction.NewRouter(
		interaction.NewSpeakersModalHandler(modals),
		interaction.NewSpeakersSubmitHandler(
			guard, sender, replies,
			"secretary@example.org", "dry-run@example.org",
			interaction.WithSubmitClock(clock),
		),
	)

	return &handlerFixture{
		handler: wardslack.NewHandler(testSigningSecret, router, testingChannelID),
		modals:  modals,
		sender:  sender,
		replies: replies,
		cache:   cache,
	}
}

// --- signature helpers ---

// computeSlackSignature computes a valid Slack request signature for the given body and timestamp.
func computeSlackSignature(secret, timestamp, body string) string {
	sigBase := fmt.Sprintf("v0:%s:%s", timestamp, body)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(sigBase))
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}

func signedInteractionRequest(payload string) *http.Request {
	body := url.Values{"payload": {payload}}.Encode()
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	sig := computeSlackSignature(testSigningSecret, ts, body)

	req := httptest.NewRequest(http.MethodPost, "/slack/interactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Slack-Request-Timestamp", ts)
	req.Header.Set("X-Slack-Signature", sig)

	return req
}

// --- HandleInteractions tests ---

func TestHandleInteractions(t *testing.T) {
	t.Parallel()

	t.Run("open action from the testing channel opens a dry-run modal", func(t *testing.T) {
		t.Parallel()

		f := newHandlerFixture()

		payload := fmt.Sprintf(`{
			"type": "block_actions",
			"trigger_id": "T1",
			"channel": {"id": %q},
			"container": {"message_ts": "1111.2222"},
			"actions": [{"type": "button", "action_id": "open_speakers_modal", "block_id": "speakers_actions"}]
		}`, testingChannelID)
		rec := httptest.NewRecorder()

		f.handler.HandleInteractions(rec, signedInteractionRequest(payload))

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, f.modals.openedView)
		assert.Equal(t, "T1", f.modals.openedTrigger)

		var inputs int
		for _, block := range f.modals.openedView.Blocks.BlockSet {
			if _, ok := block.(*slacklib.InputBlock); ok {
				inputs++
			}
		}
		assert.Equal(t, 2, inputs, "a fresh modal shows the initial field count")

		viewCtx := interaction.DecodeViewContext(f.modals.openedView.PrivateMetadata)
		assert.True(t, viewCtx.DryRun, "testing channel interactions run dry")
		assert.Equal(t, testingChannelID, viewCtx.ChannelID)
		assert.Equal(t, "1111.2222", viewCtx.MessageTS)
	})

	t.Run("open action from another channel is not a dry run", func(t *testing.T) {
		t.Parallel()

		f := newHandlerFixture()

		payload := `{
			"type": "block_actions",
			"trigger_id": "T1",
			"channel": {"id": "C999"},
			"container": {"message_ts": "1111.2222"},
			"actions": [{"type": "button", "action_id": "open_speakers_modal", "block_id": "speakers_actions"}]
		}`
		rec := httptest.NewRecorder()

		f.handler.HandleInteractions(rec, signedInteractionRequest(payload))

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, f.modals.openedView)
		assert.False(t, interaction.DecodeViewContext(f.modals.openedView.PrivateMetadata).DryRun)
	})

	t.Run("submission sends the email, replies in thread, and clears the form", func(t *testing.T) {
		t.Parallel()

		f := newHandlerFixture()

		metadata := interaction.ViewContext{DryRun: true, ChannelID: "C123", MessageTS: "1111.2222"}.Encode()
		payload := fmt.Sprintf(`{
			"type": "view_submission",
			"view": {
				"id": "V42",
				"callback_id": "submit_speakers",
				"private_metadata": %s,
				"state": {
					"values": {
						"speaker_block_0": {"speaker_input_0": {"type": "plain_text_input", "value": "Alice"}},
						"speaker_block_1": {"speaker_input_1": {"type": "plain_text_input", "value": "Bob"}}
					}
				}
			}
		}`, strconv.Quote(metadata))
		rec := httptest.NewRecorder()

		f.handler.HandleInteractions(rec, signedInteractionRequest(payload))

		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "clear", resp["response_action"])

		require.Len(t, f.sender.sent, 1)
		assert.Equal(t, "dry-run@example.org", f.sender.sent[0].Recipient)
		assert.Equal(t, "Sacrament Speakers for June 9th", f.sender.sent[0].Subject)
		assert.Contains(t, f.sender.sent[0].Body, "Alice\nBob")

		assert.Equal(t, 1, f.replies.calls)
		assert.Equal(t, "C123", f.replies.channelID)
		assert.Equal(t, "1111.2222", f.replies.threadTS)

		_, ok := f.cache.entries["sacrament-speakers:2024-06-09"]
		assert.True(t, ok)
	})

	t.Run("invalid signature is rejected", func(t *testing.T) {
		t.Parallel()

		f := newHandlerFixture()

		req := signedInteractionRequest(`{"type":"block_actions"}`)
		req.Header.Set("X-Slack-Signature", "v0=deadbeef")
		rec := httptest.NewRecorder()

		f.handler.HandleInteractions(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, f.modals.openedView)
	})

	t.Run("missing signature headers are rejected", func(t *testing.T) {
		t.Parallel()

		f := newHandlerFixture()

		body := url.Values{"payload": {`{"type":"block_actions"}`}}.Encode()
		req := httptest.NewRequest(http.MethodPost, "/slack/interactions", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()

		f.handler.HandleInteractions(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unparseable payload yields the generic failure", func(t *testing.T) {
		t.Parallel()

		f := newHandlerFixture()
		rec := httptest.NewRecorder()

		f.handler.HandleInteractions(rec, signedInteractionRequest(`not-json`))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "There was a problem handling this interaction.")
	})

	t.Run("unknown action identifier yields the generic failure", func(t *testing.T) {
		t.Parallel()

		f := newHandlerFixture()

		payload := `{
			"type": "block_actions",
			"trigger_id": "T1",
			"channel": {"id": "C999"},
			"actions": [{"type": "button", "action_id": "launch_missiles", "block_id": "b0"}]
		}`
		rec := httptest.NewRecorder()

		f.handler.HandleInteractions(rec, signedInteractionRequest(payload))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Nil(t, f.modals.openedView)
	})
}
