package main

import (
	"fmt"

	"github.com/kstich/cfnschema/model"
	"github.com/kstich/cfnschema/traits"
)

// RawModel is the on-disk shape of a model file, accepted as either JSON
// or YAML. It exists because parsing a full Smithy model is out of scope
// for this engine; this is a deliberately small format covering exactly
// the shape kinds the derivation engine and converter understand.
type RawModel struct {
	Namespace string              `json:"namespace" yaml:"namespace"`
	Shapes    map[string]RawShape `json:"shapes" yaml:"shapes"`
}

// RawShape is one entry of a RawModel's shape table. Which fields apply
// depends on Type: "resource", "structure", "operation", "service", or any
// simple type name (string, integer, long, float, double, boolean, blob,
// timestamp, document).
type RawShape struct {
	Type string `json:"type" yaml:"type"`

	// resource
	Identifiers []RawIdentifier `json:"identifiers,omitempty" yaml:"identifiers,omitempty"`
	Create      string          `json:"create,omitempty" yaml:"create,omitempty"`
	Read        string          `json:"read,omitempty" yaml:"read,omitempty"`
	Update      string          `json:"update,omitempty" yaml:"update,omitempty"`
	Put         string          `json:"put,omitempty" yaml:"put,omitempty"`
	Delete      string          `json:"delete,omitempty" yaml:"delete,omitempty"`
	List        string          `json:"list,omitempty" yaml:"list,omitempty"`
	Resources   []string        `json:"resources,omitempty" yaml:"resources,omitempty"`

	// structure
	Members []RawMember `json:"members,omitempty" yaml:"members,omitempty"`

	// operation
	Input  string `json:"input,omitempty" yaml:"input,omitempty"`
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	Traits map[string]any `json:"traits,omitempty" yaml:"traits,omitempty"`
}

// RawIdentifier is one entry of a resource's identifier map. Order matters:
// it becomes the resource's primary identifier order.
type RawIdentifier struct {
	Name   string `json:"name" yaml:"name"`
	Target string `json:"target" yaml:"target"`
}

// RawMember is one entry of a structure's member list. Order matters: it
// drives derived property order.
type RawMember struct {
	Name   string         `json:"name" yaml:"name"`
	Target string         `json:"target" yaml:"target"`
	Traits map[string]any `json:"traits,omitempty" yaml:"traits,omitempty"`
}

// BuildModel turns a RawModel into a model.Model, resolving every shape
// reference against raw.Namespace.
func BuildModel(raw *RawModel) (*model.Model, error) {
	b := model.NewBuilder()

	for name, rs := range raw.Shapes {
		id := model.NewShapeID(raw.Namespace, name)
		shapeTraits, err := decodeTraits(raw.Namespace, rs.Traits)
		if err != nil {
			return nil, fmt.Errorf("shape %s: %w", name, err)
		}

		switch rs.Type {
		case "resource":
			resource := &model.ResourceShape{ID: id, Traits: shapeTraits}
			for _, ident := range rs.Identifiers {
				resource.Identifiers = append(resource.Identifiers, model.Identifier{
					Name:   ident.Name,
					Target: model.NewShapeID(raw.Namespace, ident.Target),
				})
			}
			resource.Create = shapeRefOrNil(raw.Namespace, rs.Create)
			resource.Read = shapeRefOrNil(raw.Namespace, rs.Read)
			resource.Update = shapeRefOrNil(raw.Namespace, rs.Update)
			resource.Put = shapeRefOrNil(raw.Namespace, rs.Put)
			resource.Delete = shapeRefOrNil(raw.Namespace, rs.Delete)
			resource.List = shapeRefOrNil(raw.Namespace, rs.List)
			for _, r := range rs.Resources {
				resource.Resources = append(resource.Resources, model.NewShapeID(raw.Namespace, r))
			}
			b.AddShape(resource)

		case "structure":
			structure := &model.StructureShape{ID: id, Traits: shapeTraits}
			for _, rm := range rs.Members {
				memberTraits, err := decodeTraits(raw.Namespace, rm.Traits)
				if err != nil {
					return nil, fmt.Errorf("shape %s member %s: %w", name, rm.Name, err)
				}
				structure.Members = append(structure.Members, &model.MemberShape{
					ID:     id.WithMember(rm.Name),
					Name:   rm.Name,
					Target: model.NewShapeID(raw.Namespace, rm.Target),
					Traits: memberTraits,
				})
			}
			b.AddShape(structure)

		case "operation":
			op := &model.OperationShape{ID: id, Traits: shapeTraits}
			op.Input = shapeRefOrNil(raw.Namespace, rs.Input)
			op.Output = shapeRefOrNil(raw.Namespace, rs.Output)
			b.AddShape(op)

		case "service":
			svc := &model.ServiceShape{ID: id, Traits: shapeTraits}
			for _, r := range rs.Resources {
				svc.Resources = append(svc.Resources, model.NewShapeID(raw.Namespace, r))
			}
			b.AddShape(svc)

		default:
			b.AddShape(&model.SimpleShape{ID: id, Type: model.SimpleType(rs.Type), Traits: shapeTraits})
		}
	}

	return b.Build(), nil
}

func shapeRefOrNil(namespace, name string) *model.ShapeID {
	if name == "" {
		return nil
	}
	id := model.NewShapeID(namespace, name)
	return &id
}

// decodeTraits interprets the raw trait map produced by JSON/YAML decoding
// into this engine's typed trait values, falling back to storing the
// decoded value verbatim for traits it doesn't specifically recognize.
func decodeTraits(namespace string, raw map[string]any) (model.TraitBag, error) {
	if len(raw) == 0 {
		return model.TraitBag{}, nil
	}
	bag := model.TraitBag{}
	for name, value := range raw {
		id := model.TraitID(name)
		switch id {
		case traits.ReadOnlyPropertyTraitID, traits.CreateOnlyPropertyTraitID, traits.WriteOnlyPropertyTraitID,
			traits.MutablePropertyTraitID, traits.ExcludePropertyTraitID, traits.AdditionalIdentifierTraitID,
			traits.DeprecatedTraitID, traits.BoxTraitID, traits.SensitiveTraitID, traits.RequiredTraitID:
			bag[id] = traits.Presence{}

		case traits.PropertyNameTraitID:
			s, _ := value.(string)
			bag[id] = traits.PropertyNameTraitValue(s)

		case traits.DocumentationTraitID:
			s, _ := value.(string)
			bag[id] = traits.DocumentationTraitValue(s)

		case traits.ExternalDocumentationTraitID:
			links := traits.ExternalDocumentationTraitValue{}
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					if s, ok := v.(string); ok {
						links[k] = s
					}
				}
			}
			bag[id] = links

		case traits.ResourceTraitID:
			rv := traits.ResourceTraitValue{}
			if m, ok := value.(map[string]any); ok {
				if n, ok := m["name"].(string); ok {
					rv.Name = n
				}
				if schemas, ok := m["additionalSchemas"].([]any); ok {
					for _, s := range schemas {
						if str, ok := s.(string); ok {
							rv.AdditionalSchemas = append(rv.AdditionalSchemas, model.NewShapeID(namespace, str))
						}
					}
				}
			}
			bag[id] = rv

		default:
			bag[id] = value
		}
	}
	return bag, nil
}
