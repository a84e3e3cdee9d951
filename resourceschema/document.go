// Package resourceschema builds the resource schema document a conversion
// produces and serializes it with a stable, insertion-order-preserving
// encoding. It is grounded on ResourceSchema and ResourceSchema.Builder.
package resourceschema

import (
	"github.com/kstich/cfnschema/jsonschema"
)

// Handler lifecycle names, matching the CREATE/READ/UPDATE/DELETE/LIST
// operations a resource binds.
const (
	HandlerCreate = "create"
	HandlerRead   = "read"
	HandlerUpdate = "update"
	HandlerDelete = "delete"
	HandlerList   = "list"
)

// handlerOrder fixes the order handlers are emitted in, independent of the
// order callers happen to call SetHandler.
var handlerOrder = []string{HandlerCreate, HandlerRead, HandlerUpdate, HandlerDelete, HandlerList}

// Property is one entry of a resource schema's properties map: the JSON
// Schema for the property plus the two optional CloudFormation extensions
// carried from the model, insertion ordering (for array-shaped properties
// where element order is meaningful to update semantics) and the property
// names this one depends on.
type Property struct {
	Schema         *jsonschema.Schema
	InsertionOrder bool
	Dependencies   []string
}

// Handler describes one lifecycle handler entry: the IAM-like permission
// strings CloudFormation should grant before invoking it.
type Handler struct {
	Permissions []string
}

// Document is a resource schema under construction. Every ordered field
// pairs a map with an explicit order slice; SetX methods are the only
// sanctioned way to populate them, since they're what keeps the two in
// sync.
type Document struct {
	TypeName          string
	Description       string
	SourceURL         string
	DocumentationURL  string

	Definitions     map[string]*jsonschema.Schema
	DefinitionOrder []string

	Properties    map[string]*Property
	PropertyOrder []string

	ReadOnlyProperties    []string
	WriteOnlyProperties   []string
	CreateOnlyProperties  []string
	DeprecatedProperties  []string

	PrimaryIdentifier     []string
	AdditionalIdentifiers [][]string

	Handlers map[string]*Handler

	AdditionalProperties *bool
}

// NewDocument starts a document for the given CloudFormation type name.
func NewDocument(typeName string) *Document {
	return &Document{TypeName: typeName}
}

// SetDefinition adds or replaces a named definition, preserving first-seen
// order.
func (d *Document) SetDefinition(name string, schema *jsonschema.Schema) {
	if d.Definitions == nil {
		d.Definitions = map[string]*jsonschema.Schema{}
	}
	if _, exists := d.Definitions[name]; !exists {
		d.DefinitionOrder = append(d.DefinitionOrder, name)
	}
	d.Definitions[name] = schema
}

// SetProperty adds or replaces a property, preserving first-seen order.
func (d *Document) SetProperty(name string, prop *Property) {
	if d.Properties == nil {
		d.Properties = map[string]*Property{}
	}
	if _, exists := d.Properties[name]; !exists {
		d.PropertyOrder = append(d.PropertyOrder, name)
	}
	d.Properties[name] = prop
}

// SetHandler adds or replaces a handler entry.
func (d *Document) SetHandler(name string, h *Handler) {
	if d.Handlers == nil {
		d.Handlers = map[string]*Handler{}
	}
	d.Handlers[name] = h
}

// ToNode renders the document as an ordered Node tree, omitting empty
// fields the way the document's source format does.
func (d *Document) ToNode() *Node {
	out := NewObjectNode()
	out.Set("typeName", NewStringNode(d.TypeName))
	if d.Description != "" {
		out.Set("description", NewStringNode(d.Description))
	}
	if d.SourceURL != "" {
		out.Set("sourceUrl", NewStringNode(d.SourceURL))
	}
	if d.DocumentationURL != "" {
		out.Set("documentationUrl", NewStringNode(d.DocumentationURL))
	}

	if len(d.DefinitionOrder) > 0 {
		defs := NewObjectNode()
		for _, name := range d.DefinitionOrder {
			defs.Set(name, SchemaToNode(d.Definitions[name]))
		}
		out.Set("definitions", defs)
	}

	if len(d.PropertyOrder) > 0 {
		props := NewObjectNode()
		for _, name := range d.PropertyOrder {
			props.Set(name, propertyToNode(d.Properties[name]))
		}
		out.Set("properties", props)
	}

	setStringArray(out, "readOnlyProperties", d.ReadOnlyProperties)
	setStringArray(out, "writeOnlyProperties", d.WriteOnlyProperties)
	setStringArray(out, "createOnlyProperties", d.CreateOnlyProperties)
	setStringArray(out, "deprecatedProperties", d.DeprecatedProperties)
	setStringArray(out, "primaryIdentifier", d.PrimaryIdentifier)

	if len(d.AdditionalIdentifiers) > 0 {
		arr := NewArrayNode()
		for _, set := range d.AdditionalIdentifiers {
			arr.Append(stringArrayNode(set))
		}
		out.Set("additionalIdentifiers", arr)
	}

	if len(d.Handlers) > 0 {
		handlers := NewObjectNode()
		for _, name := range handlerOrder {
			h, ok := d.Handlers[name]
			if !ok {
				continue
			}
			hn := NewObjectNode()
			setStringArray(hn, "permissions", h.Permissions)
			handlers.Set(name, hn)
		}
		out.Set("handlers", handlers)
	}

	if d.AdditionalProperties != nil {
		out.Set("additionalProperties", NewBoolNode(*d.AdditionalProperties))
	}

	return out
}

func setStringArray(obj *Node, key string, values []string) {
	if len(values) == 0 {
		return
	}
	obj.Set(key, stringArrayNode(values))
}

func stringArrayNode(values []string) *Node {
	arr := NewArrayNode()
	for _, v := range values {
		arr.Append(NewStringNode(v))
	}
	return arr
}

func propertyToNode(p *Property) *Node {
	out := SchemaToNode(p.Schema)
	if p.InsertionOrder {
		out.Set("insertionOrder", NewBoolNode(true))
	}
	if len(p.Dependencies) > 0 {
		setStringArray(out, "dependencies", p.Dependencies)
	}
	return out
}

// SchemaToNode renders a jsonschema.Schema as an ordered Node tree, in the
// property order the schema recorded rather than Go's randomized map
// order.
func SchemaToNode(s *jsonschema.Schema) *Node {
	if s == nil {
		return NewNullNode()
	}
	out := NewObjectNode()
	if s.Type != "" {
		out.Set("type", NewStringNode(s.Type))
	}
	if s.Format != "" {
		out.Set("format", NewStringNode(s.Format))
	}
	if s.Description != "" {
		out.Set("description", NewStringNode(s.Description))
	}
	if s.Pattern != "" {
		out.Set("pattern", NewStringNode(s.Pattern))
	}
	if s.Default != nil {
		out.Set("default", NewValueNode(s.Default))
	}
	if len(s.Enum) > 0 {
		arr := NewArrayNode()
		for _, v := range s.Enum {
			arr.Append(NewValueNode(v))
		}
		out.Set("enum", arr)
	}
	if len(s.PropertyOrder) > 0 {
		props := NewObjectNode()
		for _, name := range s.PropertyOrder {
			props.Set(name, SchemaToNode(s.Properties[name]))
		}
		out.Set("properties", props)
	}
	setStringArray(out, "required", s.Required)
	if s.AdditionalProperties != nil {
		out.Set("additionalProperties", NewValueNode(s.AdditionalProperties))
	}
	if s.Items != nil {
		out.Set("items", SchemaToNode(s.Items))
	}
	if s.MinItems != nil {
		out.Set("minItems", NewNumberNode(float64(*s.MinItems)))
	}
	if s.MaxItems != nil {
		out.Set("maxItems", NewNumberNode(float64(*s.MaxItems)))
	}
	if len(s.OneOf) > 0 {
		arr := NewArrayNode()
		for _, sub := range s.OneOf {
			arr.Append(SchemaToNode(sub))
		}
		out.Set("oneOf", arr)
	}
	for _, key := range s.ExtensionOrder {
		out.Set(key, NewValueNode(s.Extensions[key]))
	}
	return out
}
