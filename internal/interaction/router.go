package interaction

import (
	"context"
	"errors"
	"fmt"
)

// ActionID enumerates every interaction identifier this application handles.
// The set is closed: routing is an exhaustive switch, and an identifier
// outside it is a programming error in whatever rendered the element.
type ActionID string

const (
	// ActionOpenSpeakersModal is the button on the weekly request message.
	ActionOpenSpeakersModal ActionID = "open_speakers_modal"
	// ActionAddSpeakerField is the button inside the modal that grows the form.
	ActionAddSpeakerField ActionID = "add_speaker_field"
	// ActionSubmitSpeakers is the modal's view callback ID.
	ActionSubmitSpeakers ActionID = "submit_speakers"
)

// ErrUnknownAction is returned for identifiers outside the closed set.
var ErrUnknownAction = errors.New("interaction: unknown action identifier")

// Response instructs the platform what to do with the originating view.
// A nil response means a plain acknowledgment.
type Response struct {
	ResponseAction string `json:"response_action,omitempty"`
}

// ClearResponse tells the platform to clear the form from the user's view.
func ClearResponse() *Response {
	return &Response{ResponseAction: "clear"}
}

// Handler processes one routed interaction event. dryRun redirects side
// effects to test recipients; handlers combine it with the dry-run flag
// recovered from the view context.
type Handler interface {
	Handle(ctx context.Context, event Event, dryRun bool) (*Response, error)
}

// Router maps action identifiers to their handlers. The registry is fixed at
// construction; there is no runtime registration.
type Router struct {
	speakersModal  *SpeakersModalHandler
	speakersSubmit *SpeakersSubmitHandler
}

// NewRouter creates a Router over the application's handlers.
func NewRouter(modal *SpeakersModalHandler, submit *SpeakersSubmitHandler) *Router {
	return &Router{
		speakersModal:  modal,
		speakersSubmit: submit,
	}
}

// Route returns the handler for an identifier, or ErrUnknownAction.
func (r *Router) Route(id ActionID) (Handler, error) {
	switch id {
	case ActionOpenSpeakersModal, ActionAddSpeakerField:
		return r.speakersModal, nil
	case ActionSubmitSpeakers:
		return r.speakersSubmit, nil
	default:
		return nil, fmt.Errorf("interaction.Router.Route: %q: %w", id, ErrUnknownAction)
	}
}
