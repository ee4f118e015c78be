package blockkit_test

import (
	"testing"

	slacklib "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ward28/wardbot/internal/blockkit"
)

func TestPlainText(t *testing.T) {
	t.Parallel()

	t.Run("builds plain_text object", func(t *testing.T) {
		t.Parallel()

		text := blockkit.PlainText("Submit Sacrament Speakers").Build()

		assert.Equal(t, slacklib.PlainTextType, text.Type)
		assert.Equal(t, "Submit Sacrament Speakers", text.Text)
		assert.False(t, text.Emoji)
	})

	t.Run("emoji flag is carried through", func(t *testing.T) {
		t.Parallel()

		text := blockkit.PlainText("thanks :pray:").Emoji().Build()

		assert.True(t, text.Emoji)
	})
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	text := blockkit.Markdown("*bold* move").Build()

	assert.Equal(t, slacklib.MarkdownType, text.Type)
	assert.Equal(t, "*bold* move", text.Text)
}

func TestButtonBuilder(t *testing.T) {
	t.Parallel()

	t.Run("fails without action ID", func(t *testing.T) {
		t.Parallel()

		_, err := blockkit.Button(blockkit.PlainText("Click me")).Build()

		require.ErrorIs(t, err, blockkit.ErrMissingActionID)
	})

	t.Run("builds with only required fields", func(t *testing.T) {
		t.Parallel()

		element, err := blockkit.Button(blockkit.PlainText("Open")).
			ActionID("open_speakers_modal").
			Build()
		require.NoError(t, err)

		btn, ok := element.(*slacklib.ButtonBlockElement)
		require.True(t, ok, "element should be a ButtonBlockElement")
		assert.Equal(t, "open_speakers_modal", btn.ActionID)
		assert.Equal(t, "Open", btn.Text.Text)
		assert.Empty(t, btn.Style)
		assert.Empty(t, btn.Value)
		assert.Empty(t, btn.URL)
	})

	t.Run("carries exactly the optional fields that were set", func(t *testing.T) {
		t.Parallel()

		element, err := blockkit.Button(blockkit.PlainText("Go")).
			ActionID("go").
			Style(slacklib.StylePrimary).
			Value("v1").
			URL("https://example.com").
			Build()
		require.NoError(t, err)

		btn, ok := element.(*slacklib.ButtonBlockElement)
		require.True(t, ok)
		assert.Equal(t, slacklib.StylePrimary, btn.Style)
		assert.Equal(t, "v1", btn.Value)
		assert.Equal(t, "https://example.com", btn.URL)
	})
}

func TestTextInputBuilder(t *testing.T) {
	t.Parallel()

	t.Run("fails without action ID", func(t *testing.T) {
		t.Parallel()

		_, err := blockkit.TextInput().Build()

		require.ErrorIs(t, err, blockkit.ErrMissingActionID)
	})

	t.Run("builds with optional fields", func(t *testing.T) {
		t.Parallel()

		element, err := blockkit.TextInput().
			ActionID("speaker_input_0").
			InitialValue("Alice").
			Multiline().
			MinLength(1).
			MaxLength(80).
			Placeholder(blockkit.PlainText("Full name")).
			Build()
		require.NoError(t, err)

		input, ok := element.(*slacklib.PlainTextInputBlockElement)
		require.True(t, ok, "element should be a PlainTextInputBlockElement")
		assert.Equal(t, "speaker_input_0", input.ActionID)
		assert.Equal(t, "Alice", input.InitialValue)
		assert.True(t, input.Multiline)
		assert.Equal(t, 1, input.MinLength)
		assert.Equal(t, 80, input.MaxLength)
		require.NotNil(t, input.Placeholder)
		assert.Equal(t, "Full name", input.Placeholder.Text)
	})

	t.Run("MaybeInitialValue ignores empty values", func(t *testing.T) {
		t.Parallel()

		element, err := blockkit.TextInput().
			ActionID("speaker_input_1").
			MaybeInitialValue("").
			Build()
		require.NoError(t, err)

		input, ok := element.(*slacklib.PlainTextInputBlockElement)
		require.True(t, ok)
		assert.Empty(t, input.InitialValue)
	})
}
