// Package traits defines the trait vocabulary this engine understands and
// the resource property derivation engine (ResourceIndex) that interprets
// them. It is ported from
// smithy-aws-cloudformation-traits' ResourceIndex.java and its trait
// classes.
package traits

import "github.com/kstich/cfnschema/model"

// Trait ids recognized on resource shapes and structure members. The engine
// never validates that these resolve to shapes registered elsewhere.
const (
	ResourceTraitID              model.TraitID = "resource"
	AdditionalIdentifierTraitID  model.TraitID = "additionalIdentifier"
	ExcludePropertyTraitID       model.TraitID = "excludeProperty"
	CreateOnlyPropertyTraitID    model.TraitID = "createOnlyProperty"
	ReadOnlyPropertyTraitID      model.TraitID = "readOnlyProperty"
	WriteOnlyPropertyTraitID     model.TraitID = "writeOnlyProperty"
	MutablePropertyTraitID       model.TraitID = "mutableProperty"
	PropertyNameTraitID          model.TraitID = "propertyName"
	DocumentationTraitID         model.TraitID = "documentation"
	ExternalDocumentationTraitID model.TraitID = "externalDocumentation"
	DeprecatedTraitID            model.TraitID = "deprecated"

	// Vocabulary consumed by the default shape-to-schema converter rather
	// than the derivation engine: boxed-primitive (nullable extension),
	// sensitivity (password format), and required markers that drive schema
	// rendering, not mutability.
	BoxTraitID       model.TraitID = "box"
	SensitiveTraitID model.TraitID = "sensitive"
	RequiredTraitID  model.TraitID = "required"
)

// Presence marks a trait that carries no payload beyond being attached,
// e.g. @excludeProperty or @readOnlyProperty.
type Presence struct{}

// ResourceTraitValue is the @resource trait's payload: an optional name
// override and the list of additional structure shapes whose members
// should be folded into the resource's properties.
type ResourceTraitValue struct {
	Name              string
	AdditionalSchemas []model.ShapeID
}

// PropertyNameTraitValue overrides a member's external property name.
type PropertyNameTraitValue string

// DocumentationTraitValue is a resource's description.
type DocumentationTraitValue string

// ExternalDocumentationTraitValue maps link name to URL.
type ExternalDocumentationTraitValue map[string]string

// HasTrait is a small helper over model.TraitBag.Has for readability at
// call sites that only care about presence.
func HasTrait(shape model.Shape, id model.TraitID) bool {
	return shape.ShapeTraits().Has(id)
}
