package blockkit

import "errors"

// Structural validation errors raised at Build() time. These indicate a
// programming error in the caller and must be handled before any payload
// is sent to Slack.
var (
	ErrMissingActionID    = errors.New("blockkit: interactive element requires an action ID")
	ErrEmptySection       = errors.New("blockkit: section block requires text or fields")
	ErrEmptyActions       = errors.New("blockkit: actions block requires at least one element")
	ErrMissingElement     = errors.New("blockkit: input block requires an element")
	ErrUnsupportedElement = errors.New("blockkit: input block only supports plain-text input elements")
	ErrEmptyView          = errors.New("blockkit: view requires at least one block")
	ErrEmptyMessage       = errors.New("blockkit: message requires blocks or fallback text")
	ErrMissingChannel     = errors.New("blockkit: message requires a channel")
)
