package blockkit

import (
	slacklib "github.com/slack-go/slack"
)

// ElementBuilder is implemented by interactive element builders. Build fails
// with ErrMissingActionID when the element has no action ID: the action ID is
// the dispatch key used by the interaction router, so an element without one
// can never be handled.
type ElementBuilder interface {
	Build() (slacklib.BlockElement, error)
}

// ButtonBuilder assembles a button element.
type ButtonBuilder struct {
	text     *slacklib.TextBlockObject
	actionID string
	style    slacklib.Style
	value    string
	url      string
}

// Button creates a builder for a button with the given label.
func Button(text *PlainTextBuilder) *ButtonBuilder {
	return &ButtonBuilder{text: text.Build()}
}

// ActionID sets the button's action ID.
func (b *ButtonBuilder) ActionID(id string) *ButtonBuilder {
	b.actionID = id
	return b
}

// Style sets the button style (primary or danger).
func (b *ButtonBuilder) Style(style slacklib.Style) *ButtonBuilder {
	b.style = style
	return b
}

// Value sets the value sent back when the button is pressed.
func (b *ButtonBuilder) Value(value string) *ButtonBuilder {
	b.value = value
	return b
}

// URL sets the URL opened when the button is pressed.
func (b *ButtonBuilder) URL(url string) *ButtonBuilder {
	b.url = url
	return b
}

// Build produces the button element, or ErrMissingActionID when no action ID
// was set.
func (b *ButtonBuilder) Build() (slacklib.BlockElement, error) {
	if b.actionID == "" {
		return nil, ErrMissingActionID
	}

	btn := slacklib.NewButtonBlockElement(b.actionID, b.value, b.text)
	if b.style != "" {
		btn.Style = b.style
	}
	if b.url != "" {
		btn.URL = b.url
	}

	return btn, nil
}

// TextInputBuilder assembles a plain_text_input element.
type TextInputBuilder struct {
	actionID     string
	initialValue string
	multiline    bool
	minLength    int
	maxLength    int
	placeholder  *slacklib.TextBlockObject
}

// TextInput creates a builder for a plain-text input element.
func TextInput() *TextInputBuilder {
	return &TextInputBuilder{}
}

// ActionID sets the input's action ID.
func (b *TextInputBuilder) ActionID(id string) *TextInputBuilder {
	b.actionID = id
	return b
}

// InitialValue pre-fills the input with the given value.
func (b *TextInputBuilder) InitialValue(value string) *TextInputBuilder {
	b.initialValue = value
	return b
}

// MaybeInitialValue pre-fills the input only when the value is non-empty.
// Convenient when re-rendering a form from a sparse snapshot.
func (b *TextInputBuilder) MaybeInitialValue(value string) *TextInputBuilder {
	if value != "" {
		b.initialValue = value
	}
	return b
}

// Multiline renders the input as a multi-line text area.
func (b *TextInputBuilder) Multiline() *TextInputBuilder {
	b.multiline = true
	return b
}

// MinLength sets the minimum accepted input length.
func (b *TextInputBuilder) MinLength(n int) *TextInputBuilder {
	b.minLength = n
	return b
}

// MaxLength sets the maximum accepted input length.
func (b *TextInputBuilder) MaxLength(n int) *TextInputBuilder {
	b.maxLength = n
	return b
}

// Placeholder sets the placeholder text shown in the empty input.
func (b *TextInputBuilder) Placeholder(text *PlainTextBuilder) *TextInputBuilder {
	b.placeholder = text.Build()
	return b
}

// Build produces the input element, or ErrMissingActionID when no action ID
// was set.
func (b *TextInputBuilder) Build() (slacklib.BlockElement, error) {
	if b.actionID == "" {
		return nil, ErrMissingActionID
	}

	input := slacklib.NewPlainTextInputBlockElement(b.placeholder, b.actionID)
	input.InitialValue = b.initialValue
	input.Multiline = b.multiline
	input.MinLength = b.minLength
	input.MaxLength = b.maxLength

	return input, nil
}
