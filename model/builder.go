package model

// Builder assembles a Model from individual shapes. It exists so tests and
// the CLI's model loader can construct fixtures without a full IR parser,
// which stays out of scope for this engine.
type Builder struct {
	model *Model
}

// NewBuilder starts an empty model under construction.
func NewBuilder() *Builder {
	return &Builder{model: &Model{shapes: map[ShapeID]Shape{}}}
}

// AddShape registers a shape, overwriting any prior shape with the same id.
func (b *Builder) AddShape(s Shape) *Builder {
	id := s.ShapeID()
	if _, exists := b.model.shapes[id]; !exists {
		b.model.order = append(b.model.order, id)
	}
	b.model.shapes[id] = s
	return b
}

// Build finalizes the model. The builder must not be reused afterward.
func (b *Builder) Build() *Model {
	return b.model
}
