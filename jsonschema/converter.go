package jsonschema

import (
	"fmt"

	"github.com/kstich/cfnschema/model"
	"github.com/kstich/cfnschema/traits"
)

// Converter turns a shape in a model into a schema document. synth hands it
// the synthetic structure built for a resource's properties; resourceschema
// and mapper consume the result without knowing how it was produced. Swap
// in a different implementation to change how leaf types, formats, and
// nesting are rendered, without touching the derivation or mapping stages.
type Converter interface {
	Convert(m *model.Model, root model.Shape) (*SchemaDocument, error)
}

// Options configures DefaultConverter's format choices, mirroring the
// subset of a resource schema's configuration that affects leaf rendering.
type Options struct {
	// DefaultBlobFormat is applied to blob-shaped members that don't
	// otherwise specify one. Defaults to "byte" when empty.
	DefaultBlobFormat string
}

// DefaultConverter is a minimal shape-to-schema converter: it renders
// structures as objects, simple shapes as their JSON Schema type/format
// pair, and recurses through structure members. It does not resolve list,
// map, or union shapes beyond documents; callers needing those should
// provide a richer Converter.
type DefaultConverter struct {
	Options Options
}

// NewDefaultConverter builds a DefaultConverter with the given options.
func NewDefaultConverter(opts Options) *DefaultConverter {
	return &DefaultConverter{Options: opts}
}

func (c *DefaultConverter) blobFormat() string {
	if c.Options.DefaultBlobFormat != "" {
		return c.Options.DefaultBlobFormat
	}
	return "byte"
}

// Convert renders root as a schema document. root may be a shape that
// isn't registered in m (e.g. a synthetic structure built by synth);
// member targets reached while walking it must still resolve through m.
func (c *DefaultConverter) Convert(m *model.Model, root model.Shape) (*SchemaDocument, error) {
	schema, err := c.convertShapeValue(m, root)
	if err != nil {
		return nil, err
	}
	return &SchemaDocument{RootSchema: schema}, nil
}

func (c *DefaultConverter) convertShape(m *model.Model, id model.ShapeID) (*Schema, error) {
	shape, ok := m.Shape(id)
	if !ok {
		return nil, fmt.Errorf("jsonschema: shape %s not found in model", id)
	}
	return c.convertShapeValue(m, shape)
}

func (c *DefaultConverter) convertShapeValue(m *model.Model, shape model.Shape) (*Schema, error) {
	switch s := shape.(type) {
	case *model.StructureShape:
		return c.convertStructure(m, s)
	case *model.SimpleShape:
		return c.convertSimple(s), nil
	default:
		return nil, fmt.Errorf("jsonschema: shape %s has no schema representation", shape.ShapeID())
	}
}

func (c *DefaultConverter) convertStructure(m *model.Model, s *model.StructureShape) (*Schema, error) {
	out := &Schema{Type: "object"}
	for _, member := range s.Members {
		propSchema, err := c.convertShape(m, member.Target)
		if err != nil {
			return nil, fmt.Errorf("jsonschema: member %s: %w", member.Name, err)
		}
		if doc, ok := model.GetTrait[traits.DocumentationTraitValue](member.Traits, traits.DocumentationTraitID); ok {
			propSchema.Description = string(doc)
		}
		out.SetProperty(member.Name, propSchema)
		if traits.HasTrait(member, traits.RequiredTraitID) {
			out.Required = append(out.Required, member.Name)
		}
	}
	return out, nil
}

func (c *DefaultConverter) convertSimple(s *model.SimpleShape) *Schema {
	out := &Schema{}
	switch s.Type {
	case model.SimpleString:
		out.Type = "string"
		if traits.HasTrait(s, traits.SensitiveTraitID) {
			out.Format = "password"
		}
	case model.SimpleBoolean:
		out.Type = "boolean"
	case model.SimpleInteger:
		out.Type = "integer"
		out.Format = "int32"
	case model.SimpleLong:
		out.Type = "integer"
		out.Format = "int64"
	case model.SimpleFloat:
		out.Type = "number"
		out.Format = "float"
	case model.SimpleDouble:
		out.Type = "number"
		out.Format = "double"
	case model.SimpleBlob:
		out.Type = "string"
		out.Format = c.blobFormat()
	case model.SimpleTimestamp:
		out.Type = "string"
		out.Format = "date-time"
	case model.SimpleDocument:
		// No type constraint: accepts any JSON value.
	}
	if traits.HasTrait(s, traits.BoxTraitID) {
		out.SetExtension("nullable", true)
	}
	return out
}
