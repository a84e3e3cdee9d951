package mapper

import (
	"github.com/kstich/cfnschema/model"
	"github.com/kstich/cfnschema/resourceschema"
	"github.com/kstich/cfnschema/traits"
)

// IdentifierMapper renders a resource's primary and additional identifiers
// as property pointers.
type IdentifierMapper struct{ NoopMapper }

func (IdentifierMapper) Order() int8 { return 32 }

func (IdentifierMapper) After(ctx *Context, doc *resourceschema.Document) {
	for _, name := range ctx.Index.GetPrimaryIdentifiers(ctx.ResourceID) {
		doc.PrimaryIdentifier = append(doc.PrimaryIdentifier, ctx.PropertyPointer(name))
	}
	for _, set := range ctx.Index.GetAdditionalIdentifiers(ctx.ResourceID) {
		pointers := make([]string, 0, len(set))
		for _, name := range set {
			pointers = append(pointers, ctx.PropertyPointer(name))
		}
		doc.AdditionalIdentifiers = append(doc.AdditionalIdentifiers, pointers)
	}
}

// MutabilityMapper renders each mutability bucket's property names as
// pointers.
type MutabilityMapper struct{ NoopMapper }

func (MutabilityMapper) Order() int8 { return 64 }

func (m MutabilityMapper) After(ctx *Context, doc *resourceschema.Document) {
	doc.CreateOnlyProperties = pointerize(ctx, ctx.Index.GetCreateOnlyProperties(ctx.ResourceID))
	doc.ReadOnlyProperties = pointerize(ctx, ctx.Index.GetReadOnlyProperties(ctx.ResourceID))
	doc.WriteOnlyProperties = pointerize(ctx, ctx.Index.GetWriteOnlyProperties(ctx.ResourceID))
}

func pointerize(ctx *Context, names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = ctx.PropertyPointer(name)
	}
	return out
}

// DocumentationMapper fills in the resource's description and doc links
// from its @documentation and @externalDocumentation traits.
type DocumentationMapper struct{ NoopMapper }

func (DocumentationMapper) Order() int8 { return 16 }

func (DocumentationMapper) After(ctx *Context, doc *resourceschema.Document) {
	resource, ok := ctx.Model.Resource(ctx.ResourceID)
	if !ok {
		return
	}
	if description, ok := model.GetShapeTrait[traits.DocumentationTraitValue](resource, traits.DocumentationTraitID); ok {
		doc.Description = string(description)
	}
	links, ok := model.GetShapeTrait[traits.ExternalDocumentationTraitValue](resource, traits.ExternalDocumentationTraitID)
	if !ok {
		return
	}
	if url := firstMatchingLink(links, ctx.Options.SourceDocKeys); url != "" {
		doc.SourceURL = url
	}
	if url := firstMatchingLink(links, ctx.Options.ExternalDocKeys); url != "" {
		doc.DocumentationURL = url
	}
}

func firstMatchingLink(links traits.ExternalDocumentationTraitValue, keys []string) string {
	for _, key := range keys {
		if url, ok := links[key]; ok {
			return url
		}
	}
	return ""
}

// DeprecatedMapper adds each property whose originating member carries
// @deprecated to the document's deprecated properties list.
type DeprecatedMapper struct{ NoopMapper }

func (DeprecatedMapper) Order() int8 { return 8 }

func (DeprecatedMapper) After(ctx *Context, doc *resourceschema.Document) {
	if ctx.Options.DisableDeprecatedPropertyGeneration {
		return
	}
	for _, name := range ctx.Index.GetProperties(ctx.ResourceID) {
		def, ok := ctx.Index.GetProperty(ctx.ResourceID, name)
		if !ok || def.Member == nil {
			continue
		}
		if traits.HasTrait(def.Member, traits.DeprecatedTraitID) {
			doc.DeprecatedProperties = append(doc.DeprecatedProperties, ctx.PropertyPointer(name))
		}
	}
}

// JSONAddMapper applies configured JSON-add patches to the fully rendered
// document, creating any intermediate object members the target pointer
// requires. It runs last, after every other mapper has shaped the
// document's structured fields, since it operates on the serialized node
// tree rather than the Document builder.
type JSONAddMapper struct{ NoopMapper }

func (JSONAddMapper) Order() int8 { return 96 }

func (JSONAddMapper) UpdateNode(ctx *Context, _ *resourceschema.Document, node *resourceschema.Node) *resourceschema.Node {
	for _, pointer := range ctx.Options.JSONAddOrder {
		value := ctx.Options.JSONAdd[pointer]
		tokens, err := resourceschema.ParsePointer(pointer)
		if err != nil || len(tokens) == 0 {
			continue
		}
		_ = node.AddWithIntermediateValues(tokens, value)
	}
	return node
}
