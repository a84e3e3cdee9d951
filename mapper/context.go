// Package mapper implements the pipeline of decoration stages that turn a
// resource's derived properties and converted schema into a finished
// resource schema document: identifiers and mutability lists rendered as
// property pointers, documentation pulled from traits, deprecated
// properties flagged, and configured JSON patches applied to the final
// document. It is grounded on CloudFormationConverter's mapper extension
// point and the built-in mappers under fromsmithy/mappers.
package mapper

import (
	"strings"
	"unicode"

	"github.com/kstich/cfnschema/model"
	"github.com/kstich/cfnschema/resourceschema"
	"github.com/kstich/cfnschema/traits"
)

// Options carries the subset of engine configuration mappers need. The
// root package owns the full configuration surface; it translates into
// this smaller struct so mapper never depends on the root package.
type Options struct {
	DisableDeprecatedPropertyGeneration bool
	DisableCapitalizedProperties        bool
	ExternalDocKeys                     []string
	SourceDocKeys                       []string
	JSONAdd                             map[string]*resourceschema.Node
	JSONAddOrder                        []string
}

// Context is the per-resource state every mapper stage sees.
type Context struct {
	Model      *model.Model
	ResourceID model.ShapeID
	Index      *traits.ResourceIndex
	Options    Options
}

// ResolvedPropertyName returns the external name a property should be
// keyed under in the final document: the member name, capitalized, unless
// capitalization has been disabled.
func (c *Context) ResolvedPropertyName(name string) string {
	if c.Options.DisableCapitalizedProperties {
		return name
	}
	return capitalize(name)
}

// PropertyPointer returns the JSON pointer the final document uses to
// reference a property, e.g. "/properties/BucketName".
func (c *Context) PropertyPointer(name string) string {
	return "/properties/" + escapePointerToken(c.ResolvedPropertyName(name))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func escapePointerToken(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}
