package blockkit

import (
	slacklib "github.com/slack-go/slack"
)

// ModalBuilder assembles a modal view request.
type ModalBuilder struct {
	title           *slacklib.TextBlockObject
	blocks          []BlockBuilder
	submit          *slacklib.TextBlockObject
	close           *slacklib.TextBlockObject
	privateMetadata string
	callbackID      string
	externalID      string
	clearOnClose    bool
	notifyOnClose   bool
}

// Modal creates a builder for a modal view with the given title.
func Modal(title *PlainTextBuilder) *ModalBuilder {
	return &ModalBuilder{title: title.Build()}
}

// AddBlock appends a block, preserving insertion order.
func (b *ModalBuilder) AddBlock(block BlockBuilder) *ModalBuilder {
	b.blocks = append(b.blocks, block)
	return b
}

// AddBlocks appends blocks in the given order.
func (b *ModalBuilder) AddBlocks(blocks ...BlockBuilder) *ModalBuilder {
	b.blocks = append(b.blocks, blocks...)
	return b
}

// Submit sets the submit button label.
func (b *ModalBuilder) Submit(text *PlainTextBuilder) *ModalBuilder {
	b.submit = text.Build()
	return b
}

// Close sets the close button label.
func (b *ModalBuilder) Close(text *PlainTextBuilder) *ModalBuilder {
	b.close = text.Build()
	return b
}

// PrivateMetadata attaches an opaque context string that Slack returns
// unchanged on every subsequent event referencing this view.
func (b *ModalBuilder) PrivateMetadata(metadata string) *ModalBuilder {
	b.privateMetadata = metadata
	return b
}

// CallbackID sets the callback ID used to route view submissions.
func (b *ModalBuilder) CallbackID(id string) *ModalBuilder {
	b.callbackID = id
	return b
}

// ExternalID sets the caller-assigned view identifier.
func (b *ModalBuilder) ExternalID(id string) *ModalBuilder {
	b.externalID = id
	return b
}

// ClearOnClose clears the whole view stack when the modal is closed.
func (b *ModalBuilder) ClearOnClose() *ModalBuilder {
	b.clearOnClose = true
	return b
}

// NotifyOnClose requests a view_closed event when the modal is dismissed.
func (b *ModalBuilder) NotifyOnClose() *ModalBuilder {
	b.notifyOnClose = true
	return b
}

// Build produces the modal view request, or ErrEmptyView when no blocks were
// added. Block builders are validated here, in insertion order.
func (b *ModalBuilder) Build() (slacklib.ModalViewRequest, error) {
	if len(b.blocks) == 0 {
		return slacklib.ModalViewRequest{}, ErrEmptyView
	}

	blocks, err := buildBlocks(b.blocks)
	if err != nil {
		return slacklib.ModalViewRequest{}, err
	}

	return slacklib.ModalViewRequest{
		Type:            slacklib.VTModal,
		Title:           b.title,
		Blocks:          slacklib.Blocks{BlockSet: blocks},
		Submit:          b.submit,
		Close:           b.close,
		PrivateMetadata: b.privateMetadata,
		CallbackID:      b.callbackID,
		ExternalID:      b.externalID,
		ClearOnClose:    b.clearOnClose,
		NotifyOnClose:   b.notifyOnClose,
	}, nil
}

// HomeTabBuilder assembles a home tab view request.
type HomeTabBuilder struct {
	blocks          []BlockBuilder
	privateMetadata string
	callbackID      string
	externalID      string
}

// HomeTab creates a builder for a home tab view.
func HomeTab() *HomeTabBuilder {
	return &HomeTabBuilder{}
}

// AddBlock appends a block, preserving insertion order.
func (b *HomeTabBuilder) AddBlock(block BlockBuilder) *HomeTabBuilder {
	b.blocks = append(b.blocks, block)
	return b
}

// PrivateMetadata attaches an opaque context string to the view.
func (b *HomeTabBuilder) PrivateMetadata(metadata string) *HomeTabBuilder {
	b.privateMetadata = metadata
	return b
}

// CallbackID sets the view callback ID.
func (b *HomeTabBuilder) CallbackID(id string) *HomeTabBuilder {
	b.callbackID = id
	return b
}

// ExternalID sets the caller-assigned view identifier.
func (b *HomeTabBuilder) ExternalID(id string) *HomeTabBuilder {
	b.externalID = id
	return b
}

// Build produces the home tab view request, or ErrEmptyView when no blocks
// were added.
func (b *HomeTabBuilder) Build() (slacklib.HomeTabViewRequest, error) {
	if len(b.blocks) == 0 {
		return slacklib.HomeTabViewRequest{}, ErrEmptyView
	}

	blocks, err := buildBlocks(b.blocks)
	if err != nil {
		return slacklib.HomeTabViewRequest{}, err
	}

	return slacklib.HomeTabViewRequest{
		Type:            slacklib.VTHomeTab,
		Blocks:          slacklib.Blocks{BlockSet: blocks},
		PrivateMetadata: b.privateMetadata,
		CallbackID:      b.callbackID,
		ExternalID:      b.externalID,
	}, nil
}

// buildBlocks builds each block builder in order, propagating the first error.
func buildBlocks(builders []BlockBuilder) ([]slacklib.Block, error) {
	blocks := make([]slacklib.Block, 0, len(builders))
	for _, builder := range builders {
		block, err := builder.Build()
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	return blocks, nil
}
