package blockkit

import (
	slacklib "github.com/slack-go/slack"
)

// TextBuilder is implemented by plain-text and markdown text object builders.
type TextBuilder interface {
	Build() *slacklib.TextBlockObject
}

// PlainTextBuilder assembles a plain_text text object.
type PlainTextBuilder struct {
	text  string
	emoji bool
}

// PlainText creates a builder for a plain_text object with the given content.
func PlainText(text string) *PlainTextBuilder {
	return &PlainTextBuilder{text: text}
}

// Emoji enables emoji rendering in the text.
func (b *PlainTextBuilder) Emoji() *PlainTextBuilder {
	b.emoji = true
	return b
}

// Build produces the immutable text object.
func (b *PlainTextBuilder) Build() *slacklib.TextBlockObject {
	return slacklib.NewTextBlockObject(slacklib.PlainTextType, b.text, b.emoji, false)
}

// MarkdownBuilder assembles an mrkdwn text object.
type MarkdownBuilder struct {
	text string
}

// Markdown creates a builder for an mrkdwn text object with the given content.
func Markdown(text string) *MarkdownBuilder {
	return &MarkdownBuilder{text: text}
}

// Build produces the immutable text object.
func (b *MarkdownBuilder) Build() *slacklib.TextBlockObject {
	return slacklib.NewTextBlockObject(slacklib.MarkdownType, b.text, false, false)
}
