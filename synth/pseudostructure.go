// Package synth builds the synthetic structure shape handed to a
// shape-to-schema converter: one ordinary structure whose members are a
// resource's derived properties, so the converter never needs to know
// anything about resource derivation itself. It is grounded on
// CloudFormationConverter's pseudo-resource construction.
package synth

import (
	"github.com/kstich/cfnschema/model"
	"github.com/kstich/cfnschema/traits"
)

// syntheticSuffix marks a structure shape as one this package built rather
// than one the model declared.
const syntheticSuffix = "__SYNTHETIC__"

// BuildPseudoStructure assembles the synthetic structure for resourceID's
// derived properties, in the order idx reports them. A property derived
// from an actual structure member is re-parented under the synthetic
// structure with that member's own traits intact (so a shape-to-schema
// converter still sees its documentation, requiredness, and so on); a
// property seeded directly from the resource's identifier map gets a
// fresh, traitless member pointing at its target shape.
func BuildPseudoStructure(resourceID model.ShapeID, idx *traits.ResourceIndex) *model.StructureShape {
	syntheticID := model.NewShapeID(resourceID.Namespace, resourceID.Name+syntheticSuffix)
	names := idx.GetProperties(resourceID)
	members := make([]*model.MemberShape, 0, len(names))
	for _, name := range names {
		def, ok := idx.GetProperty(resourceID, name)
		if !ok {
			continue
		}
		memberTraits := model.TraitBag{}
		if def.Member != nil {
			memberTraits = def.Member.Traits
		}
		members = append(members, &model.MemberShape{
			ID:     syntheticID.WithMember(name),
			Name:   name,
			Target: def.TargetShapeID,
			Traits: memberTraits,
		})
	}
	return &model.StructureShape{ID: syntheticID, Members: members, Traits: model.TraitBag{}}
}
