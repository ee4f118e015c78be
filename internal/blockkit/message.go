package blockkit

import (
	slacklib "github.com/slack-go/slack"
)

// Message is an immutable chat message payload ready to post.
type Message struct {
	Channel  string
	Text     string
	Blocks   []slacklib.Block
	ThreadTS string
}

// MessageBuilder assembles a postable chat message.
type MessageBuilder struct {
	channel  string
	text     string
	blocks   []BlockBuilder
	threadTS string
}

// NewMessage creates a builder for a chat message payload.
func NewMessage() *MessageBuilder {
	return &MessageBuilder{}
}

// Channel sets the destination channel.
func (b *MessageBuilder) Channel(channelID string) *MessageBuilder {
	b.channel = channelID
	return b
}

// Text sets the fallback text shown where blocks cannot render.
func (b *MessageBuilder) Text(text string) *MessageBuilder {
	b.text = text
	return b
}

// AddBlock appends a block, preserving insertion order.
func (b *MessageBuilder) AddBlock(block BlockBuilder) *MessageBuilder {
	b.blocks = append(b.blocks, block)
	return b
}

// AddBlocks appends blocks in the given order.
func (b *MessageBuilder) AddBlocks(blocks ...BlockBuilder) *MessageBuilder {
	b.blocks = append(b.blocks, blocks...)
	return b
}

// ThreadTS anchors the message as a reply in the given thread.
func (b *MessageBuilder) ThreadTS(ts string) *MessageBuilder {
	b.threadTS = ts
	return b
}

// Build produces the message payload. It fails with ErrMissingChannel when no
// channel was set and ErrEmptyMessage when the message has neither blocks nor
// fallback text.
func (b *MessageBuilder) Build() (Message, error) {
	if b.channel == "" {
		return Message{}, ErrMissingChannel
	}
	if len(b.blocks) == 0 && b.text == "" {
		return Message{}, ErrEmptyMessage
	}

	blocks, err := buildBlocks(b.blocks)
	if err != nil {
		return Message{}, err
	}

	return Message{
		Channel:  b.channel,
		Text:     b.text,
		Blocks:   blocks,
		ThreadTS: b.threadTS,
	}, nil
}
