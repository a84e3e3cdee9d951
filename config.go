package cfnschema

import (
	"github.com/kstich/cfnschema/model"
	"github.com/kstich/cfnschema/resourceschema"
)

// defaultExternalDocKeys and defaultSourceDocKeys are the link names this
// engine recognizes by default when picking a documentationUrl/sourceUrl
// out of a resource's @externalDocumentation trait. Configuring ExternalDocKeys
// or SourceDocKeys replaces these lists entirely rather than extending them.
var (
	defaultExternalDocKeys = []string{
		"Documentation Url", "DocumentationUrl", "API Reference",
		"User Guide", "Developer Guide", "Reference", "Guide",
	}
	defaultSourceDocKeys = []string{"Source Url", "SourceUrl", "Source", "Source Code"}
)

const defaultBlobFormat = "byte"

// Config is the configuration a Converter needs to turn a model into
// resource schema documents.
type Config struct {
	// Service is the service shape whose transitively reachable resources
	// are converted. Required.
	Service model.ShapeID

	// OrganizationName is the first segment of every generated type name
	// (Org::Service::Resource). Required.
	OrganizationName string

	// ServiceName is the second segment of every generated type name.
	// Defaults to Service's shape name when empty.
	ServiceName string

	// DefaultBlobFormat is the JSON Schema format applied to blob-shaped
	// properties that don't specify their own. Defaults to "byte".
	DefaultBlobFormat string

	// DisableDeprecatedPropertyGeneration suppresses the deprecatedProperties
	// list entirely when set.
	DisableDeprecatedPropertyGeneration bool

	// DisableCapitalizedProperties keeps property names exactly as the
	// model declares them instead of capitalizing the first letter.
	DisableCapitalizedProperties bool

	// ExternalDocKeys orders the link names checked against a resource's
	// @externalDocumentation trait when resolving documentationUrl.
	ExternalDocKeys []string

	// SourceDocKeys orders the link names checked against the same trait
	// when resolving sourceUrl.
	SourceDocKeys []string

	// JSONAdd is a set of JSON-pointer-addressed patches applied to every
	// generated document's final node tree, in JSONAddOrder. Missing
	// intermediate object members are created as needed.
	JSONAdd      map[string]*resourceschema.Node
	JSONAddOrder []string
}

// withDefaults returns a copy of c with every optional field that is still
// at its zero value replaced by this engine's default.
func (c Config) withDefaults() Config {
	if c.DefaultBlobFormat == "" {
		c.DefaultBlobFormat = defaultBlobFormat
	}
	if len(c.ExternalDocKeys) == 0 {
		c.ExternalDocKeys = defaultExternalDocKeys
	}
	if len(c.SourceDocKeys) == 0 {
		c.SourceDocKeys = defaultSourceDocKeys
	}
	return c
}

// validate reports the first missing required field or malformed JSONAdd
// pointer, if any.
func (c Config) validate() *Error {
	if c.Service == (model.ShapeID{}) {
		return missingConfiguration("service")
	}
	if c.OrganizationName == "" {
		return missingConfiguration("organizationName")
	}
	for _, pointer := range c.JSONAddOrder {
		tokens, err := resourceschema.ParsePointer(pointer)
		if err != nil {
			return invalidJSONPointer(pointer, err.Error())
		}
		if len(tokens) == 0 {
			return invalidJSONPointer(pointer, "json_add pointer must not address the document root")
		}
	}
	return nil
}
