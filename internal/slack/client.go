package slack

import (
	"context"
	"fmt"

	slacklib "github.com/slack-go/slack"

	"github.com/ward28/wardbot/internal/blockkit"
	"github.com/ward28/wardbot/internal/interaction"
)

// API abstracts the subset of the Slack client this application uses.
// This allows testing without real HTTP calls.
type API interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slacklib.MsgOption) (string, string, error)
	OpenViewContext(ctx context.Context, triggerID string, view slacklib.ModalViewRequest) (*slacklib.ViewResponse, error)
	UpdateViewContext(ctx context.Context, view slacklib.ModalViewRequest, externalID, hash, viewID string) (*slacklib.ViewResponse, error)
	GetConversationInfoContext(ctx context.Context, input *slacklib.GetConversationInfoInput) (*slacklib.Channel, error)
}

// Client wraps the Slack API behind the application's message and modal
// operations.
type Client struct {
	api API
}

// Compile-time interface checks.
var (
	_ interaction.ModalAPI    = (*Client)(nil) //nolint:gochecknoglobals // compile-time check
	_ interaction.ReplyPoster = (*Client)(nil) //nolint:gochecknoglobals // compile-time check
)

// NewClient creates a Client with the given API client.
func NewClient(api API) *Client {
	return &Client{api: api}
}

// PostMessage posts a built message payload and returns its timestamp.
func (c *Client) PostMessage(ctx context.Context, msg blockkit.Message) (string, error) {
	opts := make([]slacklib.MsgOption, 0, 3)
	if msg.Text != "" {
		opts = append(opts, slacklib.MsgOptionText(msg.Text, false))
	}
	if len(msg.Blocks) > 0 {
		opts = append(opts, slacklib.MsgOptionBlocks(msg.Blocks...))
	}
	if msg.ThreadTS != "" {
		opts = append(opts, slacklib.MsgOptionTS(msg.ThreadTS))
	}

	_, ts, err := c.api.PostMessageContext(ctx, msg.Channel, opts...)
	if err != nil {
		return "", fmt.Errorf("slack.Client.PostMessage: %w", err)
	}

	return ts, nil
}

// PostThreadReply posts a plain text reply under the given message.
func (c *Client) PostThreadReply(ctx context.Context, channelID, threadTS, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channelID,
		slacklib.MsgOptionTS(threadTS),
		slacklib.MsgOptionText(text, false),
	)
	if err != nil {
		return fmt.Errorf("slack.Client.PostThreadReply: %w", err)
	}

	return nil
}

// OpenModal opens a new modal against an interaction trigger.
func (c *Client) OpenModal(ctx context.Context, triggerID string, view slacklib.ModalViewRequest) error {
	if _, err := c.api.OpenViewContext(ctx, triggerID, view); err != nil {
		return fmt.Errorf("slack.Client.OpenModal: %w", err)
	}

	return nil
}

// UpdateModal replaces the contents of an existing modal, preserving its
// view identity.
func (c *Client) UpdateModal(ctx context.Context, viewID string, view slacklib.ModalViewRequest) error {
	if _, err := c.api.UpdateViewContext(ctx, view, "", "", viewID); err != nil {
		return fmt.Errorf("slack.Client.UpdateModal: %w", err)
	}

	return nil
}

// ChannelTopic returns the topic of a channel.
func (c *Client) ChannelTopic(ctx context.Context, channelID string) (string, error) {
	channel, err := c.api.GetConversationInfoContext(ctx, &slacklib.GetConversationInfoInput{
		ChannelID: channelID,
	})
	if err != nil {
		return "", fmt.Errorf("slack.Client.ChannelTopic: %w", err)
	}

	return channel.Topic.Value, nil
}
