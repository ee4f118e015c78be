package blockkit

import (
	slacklib "github.com/slack-go/slack"

	"github.com/rs/zerolog/log"
)

// BlockBuilder is implemented by layout block builders. Children are built
// and validated when the parent's Build is called, in insertion order.
type BlockBuilder interface {
	Build() (slacklib.Block, error)
}

// SectionBuilder assembles a section block.
type SectionBuilder struct {
	blockID string
	text    *slacklib.TextBlockObject
	fields  []*slacklib.TextBlockObject
}

// Section creates a builder for a section block.
func Section() *SectionBuilder {
	return &SectionBuilder{}
}

// BlockID sets the block ID used to re-locate the block on later round trips.
func (b *SectionBuilder) BlockID(id string) *SectionBuilder {
	b.blockID = id
	return b
}

// Text sets the section's text object.
func (b *SectionBuilder) Text(text TextBuilder) *SectionBuilder {
	b.text = text.Build()
	return b
}

// AddField appends a field text object, preserving insertion order.
func (b *SectionBuilder) AddField(text TextBuilder) *SectionBuilder {
	b.fields = append(b.fields, text.Build())
	return b
}

// Build produces the section block, or ErrEmptySection when neither text nor
// fields were set.
func (b *SectionBuilder) Build() (slacklib.Block, error) {
	if b.text == nil && len(b.fields) == 0 {
		return nil, ErrEmptySection
	}

	section := slacklib.NewSectionBlock(b.text, b.fields, nil)
	section.BlockID = b.blockID

	return section, nil
}

// DividerBuilder assembles a divider block.
type DividerBuilder struct {
	blockID string
}

// Divider creates a builder for a divider block.
func Divider() *DividerBuilder {
	return &DividerBuilder{}
}

// BlockID sets the block ID.
func (b *DividerBuilder) BlockID(id string) *DividerBuilder {
	b.blockID = id
	return b
}

// Build produces the divider block.
func (b *DividerBuilder) Build() (slacklib.Block, error) {
	divider := slacklib.NewDividerBlock()
	divider.BlockID = b.blockID

	return divider, nil
}

// ActionsBuilder assembles an actions block.
type ActionsBuilder struct {
	blockID  string
	elements []ElementBuilder
}

// Actions creates a builder for an actions block.
func Actions() *ActionsBuilder {
	return &ActionsBuilder{}
}

// BlockID sets the block ID.
func (b *ActionsBuilder) BlockID(id string) *ActionsBuilder {
	b.blockID = id
	return b
}

// AddElement appends an interactive element, preserving insertion order.
func (b *ActionsBuilder) AddElement(element ElementBuilder) *ActionsBuilder {
	b.elements = append(b.elements, element)
	return b
}

// Build produces the actions block, or ErrEmptyActions when no elements were
// added. A missing block ID is allowed but logged: without one, the block
// cannot be re-located in a view snapshot.
func (b *ActionsBuilder) Build() (slacklib.Block, error) {
	if len(b.elements) == 0 {
		return nil, ErrEmptyActions
	}
	if b.blockID == "" {
		log.Warn().Msg("actions block is missing a block ID, which is recommended")
	}

	built := make([]slacklib.BlockElement, 0, len(b.elements))
	for _, element := range b.elements {
		el, err := element.Build()
		if err != nil {
			return nil, err
		}
		built = append(built, el)
	}

	return slacklib.NewActionBlock(b.blockID, built...), nil
}

// InputBuilder assembles an input block holding exactly one labeled element.
type InputBuilder struct {
	blockID        string
	label          *slacklib.TextBlockObject
	element        ElementBuilder
	hint           *slacklib.TextBlockObject
	optional       bool
	dispatchAction bool
}

// Input creates a builder for an input block with the given label.
func Input(label *PlainTextBuilder) *InputBuilder {
	return &InputBuilder{label: label.Build()}
}

// BlockID sets the block ID.
func (b *InputBuilder) BlockID(id string) *InputBuilder {
	b.blockID = id
	return b
}

// Element assigns the block's single input element.
func (b *InputBuilder) Element(element ElementBuilder) *InputBuilder {
	b.element = element
	return b
}

// Hint sets the hint text shown below the input.
func (b *InputBuilder) Hint(text *PlainTextBuilder) *InputBuilder {
	b.hint = text.Build()
	return b
}

// Optional marks the input as not required for submission.
func (b *InputBuilder) Optional() *InputBuilder {
	b.optional = true
	return b
}

// DispatchAction makes the element emit a block_actions event on change.
func (b *InputBuilder) DispatchAction() *InputBuilder {
	b.dispatchAction = true
	return b
}

// Build produces the input block. It fails with ErrMissingElement when no
// element was assigned and ErrUnsupportedElement when the element is not a
// plain-text input. A missing block ID is allowed but logged.
func (b *InputBuilder) Build() (slacklib.Block, error) {
	if b.element == nil {
		return nil, ErrMissingElement
	}
	if _, ok := b.element.(*TextInputBuilder); !ok {
		return nil, ErrUnsupportedElement
	}
	if b.blockID == "" {
		log.Warn().Msg("input block is missing a block ID, which is recommended")
	}

	element, err := b.element.Build()
	if err != nil {
		return nil, err
	}

	input := slacklib.NewInputBlock(b.blockID, b.label, b.hint, element)
	input.Optional = b.optional
	input.DispatchAction = b.dispatchAction

	return input, nil
}
