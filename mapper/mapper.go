package mapper

import (
	"sort"

	"github.com/kstich/cfnschema/resourceschema"
)

// Mapper is one decoration stage in the pipeline. Before runs ahead of
// property population, After runs once properties and definitions from the
// schema converter have been set (the built-in identifier, mutability,
// documentation, and deprecated mappers fill in their fields during After,
// in Order), and UpdateNode runs last, against
// the fully serialized document, letting a stage rewrite arbitrary
// locations (the one thing After can't do, since it only sees the
// builder's structured fields). Implementations that don't need a given
// hook embed NoopMapper to satisfy the interface without boilerplate.
type Mapper interface {
	Order() int8
	Before(ctx *Context, doc *resourceschema.Document)
	After(ctx *Context, doc *resourceschema.Document)
	UpdateNode(ctx *Context, doc *resourceschema.Document, node *resourceschema.Node) *resourceschema.Node
}

// NoopMapper gives every hook a default no-op implementation; embed it and
// override only the hooks a mapper actually uses.
type NoopMapper struct{}

func (NoopMapper) Before(*Context, *resourceschema.Document) {}
func (NoopMapper) After(*Context, *resourceschema.Document)  {}
func (NoopMapper) UpdateNode(_ *Context, _ *resourceschema.Document, node *resourceschema.Node) *resourceschema.Node {
	return node
}

// Pipeline runs a fixed set of mappers in ascending Order.
type Pipeline struct {
	mappers []Mapper
}

// NewPipeline sorts mappers by Order and returns a Pipeline ready to run.
// Ties keep the order mappers were passed in, matching a stable sort.
func NewPipeline(mappers ...Mapper) *Pipeline {
	sorted := make([]Mapper, len(mappers))
	copy(sorted, mappers)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order() < sorted[j].Order() })
	return &Pipeline{mappers: sorted}
}

// RunBefore invokes every mapper's Before hook, in order.
func (p *Pipeline) RunBefore(ctx *Context, doc *resourceschema.Document) {
	for _, m := range p.mappers {
		m.Before(ctx, doc)
	}
}

// RunAfter invokes every mapper's After hook, in order.
func (p *Pipeline) RunAfter(ctx *Context, doc *resourceschema.Document) {
	for _, m := range p.mappers {
		m.After(ctx, doc)
	}
}

// RunUpdateNode threads node through every mapper's UpdateNode hook, in
// order, each receiving the previous mapper's result.
func (p *Pipeline) RunUpdateNode(ctx *Context, doc *resourceschema.Document, node *resourceschema.Node) *resourceschema.Node {
	for _, m := range p.mappers {
		node = m.UpdateNode(ctx, doc, node)
	}
	return node
}
