package traits

import "github.com/kstich/cfnschema/model"

// ResourcePropertyDefinition is one entry of a resource's derivation table.
// Member is the structure member that first seeded this property, or that
// most recently pinned it with an explicit mutability trait (later implicit
// appearances update only Constraints), preserved so a shape-to-schema
// converter can reuse its
// traits (documentation, required-ness, and so on) verbatim rather than
// losing them at synthesis time; it is nil for a property seeded directly
// from the resource's identifier map, which has no originating member.
// TargetShapeID is always set: the shape the property's value conforms
// to, i.e. Member.Target when Member is non-nil.
type ResourcePropertyDefinition struct {
	Member                 *model.MemberShape
	TargetShapeID          model.ShapeID
	Constraints            ConstraintSet
	HasExplicitConstraints bool
}

// propertyTable is an insertion-ordered name -> definition map, used while
// building a derivation table and exposed read-only afterward.
type propertyTable struct {
	order []string
	defs  map[string]ResourcePropertyDefinition
}

func newPropertyTable() *propertyTable {
	return &propertyTable{defs: map[string]ResourcePropertyDefinition{}}
}

func (t *propertyTable) get(name string) (ResourcePropertyDefinition, bool) {
	d, ok := t.defs[name]
	return d, ok
}

func (t *propertyTable) set(name string, def ResourcePropertyDefinition) {
	if _, exists := t.defs[name]; !exists {
		t.order = append(t.order, name)
	}
	t.defs[name] = def
}

// derivationTable holds every derived fact about one resource: its full
// property set (including excluded properties, filtered out at query
// time), its primary identifiers, its additional identifier sets, and the
// set of member shape ids excluded via @excludeProperty.
type derivationTable struct {
	properties            *propertyTable
	primaryIdentifiers     []string
	additionalIdentifiers  [][]string
	excludedMemberShapeIDs map[model.ShapeID]struct{}
}

// ResourceIndex derives, for each resource in a model, the set of
// properties a CloudFormation resource schema exposes and their
// mutability, by inspecting the resource's lifecycle operations and the
// mutability traits on their input/output members. Results are computed
// on first query for a given resource and memoized for the lifetime of
// the index.
type ResourceIndex struct {
	model  *model.Model
	tables map[model.ShapeID]*derivationTable
}

// NewResourceIndex builds an index over m. Derivation itself is lazy; this
// call does no per-resource work.
func NewResourceIndex(m *model.Model) *ResourceIndex {
	return &ResourceIndex{model: m, tables: map[model.ShapeID]*derivationTable{}}
}

func (idx *ResourceIndex) tableFor(resourceID model.ShapeID) *derivationTable {
	if t, ok := idx.tables[resourceID]; ok {
		return t
	}
	resource, ok := idx.model.Resource(resourceID)
	if !ok {
		t := &derivationTable{properties: newPropertyTable(), excludedMemberShapeIDs: map[model.ShapeID]struct{}{}}
		idx.tables[resourceID] = t
		return t
	}
	t := buildDerivationTable(idx.model, resource)
	idx.tables[resourceID] = t
	return t
}

func (t *derivationTable) isExcluded(def ResourcePropertyDefinition) bool {
	if def.Member == nil {
		return false
	}
	_, excluded := t.excludedMemberShapeIDs[def.Member.ID]
	return excluded
}

// GetProperties returns every derived property name, in insertion order,
// excluding any whose originating member was collected by
// @excludeProperty.
func (idx *ResourceIndex) GetProperties(resourceID model.ShapeID) []string {
	t := idx.tableFor(resourceID)
	out := make([]string, 0, len(t.properties.order))
	for _, name := range t.properties.order {
		def, _ := t.properties.get(name)
		if t.isExcluded(def) {
			continue
		}
		out = append(out, name)
	}
	return out
}

// GetProperty looks up one property's definition, honoring exclusion the
// same way GetProperties does.
func (idx *ResourceIndex) GetProperty(resourceID model.ShapeID, name string) (ResourcePropertyDefinition, bool) {
	t := idx.tableFor(resourceID)
	def, ok := t.properties.get(name)
	if !ok || t.isExcluded(def) {
		return ResourcePropertyDefinition{}, false
	}
	return def, true
}

func (idx *ResourceIndex) propertiesWithConstraint(resourceID model.ShapeID, c ConstraintType) []string {
	var out []string
	for _, name := range idx.GetProperties(resourceID) {
		def, _ := idx.GetProperty(resourceID, name)
		if def.Constraints.Has(c) {
			out = append(out, name)
		}
	}
	return out
}

// GetCreateOnlyProperties returns property names whose collapsed
// constraint is CREATE_ONLY, in property order.
func (idx *ResourceIndex) GetCreateOnlyProperties(resourceID model.ShapeID) []string {
	return idx.propertiesWithConstraint(resourceID, CreateOnly)
}

// GetReadOnlyProperties returns property names whose collapsed constraint
// is READ_ONLY, in property order.
func (idx *ResourceIndex) GetReadOnlyProperties(resourceID model.ShapeID) []string {
	return idx.propertiesWithConstraint(resourceID, ReadOnly)
}

// GetWriteOnlyProperties returns property names whose collapsed constraint
// is WRITE_ONLY, in property order.
func (idx *ResourceIndex) GetWriteOnlyProperties(resourceID model.ShapeID) []string {
	return idx.propertiesWithConstraint(resourceID, WriteOnly)
}

// GetExcludedProperties returns the member shape ids collected via
// @excludeProperty, reachable from any lifecycle operation's structure.
func (idx *ResourceIndex) GetExcludedProperties(resourceID model.ShapeID) map[model.ShapeID]struct{} {
	return idx.tableFor(resourceID).excludedMemberShapeIDs
}

// GetPrimaryIdentifiers returns the resource's identifier property names,
// in the order the resource declares them.
func (idx *ResourceIndex) GetPrimaryIdentifiers(resourceID model.ShapeID) []string {
	return idx.tableFor(resourceID).primaryIdentifiers
}

// GetAdditionalIdentifiers returns the additional identifier sets
// collected from the read operation's input, each as an ordered list of
// property names (in practice always a single name per set).
func (idx *ResourceIndex) GetAdditionalIdentifiers(resourceID model.ShapeID) [][]string {
	return idx.tableFor(resourceID).additionalIdentifiers
}

// buildDerivationTable runs the full derivation algorithm for one resource:
// seed its identifiers, walk its lifecycle operations in a fixed order,
// fold in any additional schemas named by its @resource trait, and
// register additional identifiers collected along the way.
func buildDerivationTable(m *model.Model, resource *model.ResourceShape) *derivationTable {
	props := newPropertyTable()
	excluded := map[model.ShapeID]struct{}{}

	identifierMutability := NewConstraintSet(ReadOnly)
	if resource.Put != nil {
		identifierMutability = NewConstraintSet(CreateOnly)
	}

	primaryIdentifiers := make([]string, 0, len(resource.Identifiers))
	for _, ident := range resource.Identifiers {
		primaryIdentifiers = append(primaryIdentifiers, ident.Name)
		props.set(ident.Name, ResourcePropertyDefinition{
			TargetShapeID:          ident.Target,
			Constraints:            identifierMutability.Clone(),
			HasExplicitConstraints: true,
		})
	}

	var additionalIdentifiers [][]string

	if resource.Read != nil {
		if input, ok := m.GetOperationInput(*resource.Read); ok {
			for _, member := range input.Members {
				if HasTrait(member, AdditionalIdentifierTraitID) {
					additionalIdentifiers = append(additionalIdentifiers, []string{member.Name})
					if def, exists := props.get(member.Name); !exists || !def.HasExplicitConstraints {
						props.set(member.Name, ResourcePropertyDefinition{
							Member:                 member,
							TargetShapeID:          member.Target,
							Constraints:            NewConstraintSet(ReadOnly),
							HasExplicitConstraints: true,
						})
					}
				}
			}
		}
		if output, ok := m.GetOperationOutput(*resource.Read); ok {
			processLifecycleStructure(m, resource.ID, resource.Read, output, props, excluded, NewConstraintSet(ReadOnly), addReadOnly)
		}
	}

	if resource.Put != nil {
		if input, ok := m.GetOperationInput(*resource.Put); ok {
			processLifecycleStructure(m, resource.ID, resource.Put, input, props, excluded, NewConstraintSet(WriteOnly), addWriteOnly)
		}
	}

	if resource.Create != nil {
		if input, ok := m.GetOperationInput(*resource.Create); ok {
			processLifecycleStructure(m, resource.ID, resource.Create, input, props, excluded, NewConstraintSet(CreateOnly), addCreateOnly)
		}
	}

	if resource.Update != nil {
		if input, ok := m.GetOperationInput(*resource.Update); ok {
			processLifecycleStructure(m, resource.ID, resource.Update, input, props, excluded, NewConstraintSet(WriteOnly), addWriteOnly)
		}
	}

	if resourceTrait, ok := model.GetShapeTrait[ResourceTraitValue](resource, ResourceTraitID); ok {
		for _, schemaID := range resourceTrait.AdditionalSchemas {
			if structure, ok := m.Structure(schemaID); ok {
				processLifecycleStructure(m, resource.ID, nil, structure, props, excluded, ConstraintSet{}, identityUpdater)
			}
		}
	}

	for name := range props.defs {
		def, _ := props.get(name)
		def.Constraints = collapseConstraints(def.Constraints)
		props.defs[name] = def
	}

	return &derivationTable{
		properties:             props,
		primaryIdentifiers:     primaryIdentifiers,
		additionalIdentifiers:  additionalIdentifiers,
		excludedMemberShapeIDs: excluded,
	}
}

// processLifecycleStructure folds one lifecycle operation's structure into
// props: it collects excluded properties reachable from the structure,
// then for each member either seeds a new property definition, applies
// the given updater to an existing implicit one, or leaves an explicit one
// untouched. Members bound to the resource's identifiers are skipped
// entirely, since identifiers are seeded separately. opID is nil for the
// additional-schemas pass, which has no identifier bindings to skip.
func processLifecycleStructure(
	m *model.Model,
	resourceID model.ShapeID,
	opID *model.ShapeID,
	structure *model.StructureShape,
	props *propertyTable,
	excluded map[model.ShapeID]struct{},
	defaultConstraints ConstraintSet,
	updater func(ConstraintSet) ConstraintSet,
) {
	collectExcludedProperties(m, structure, excluded)

	var identifierMemberNames map[string]struct{}
	if opID != nil {
		bindings := m.GetOperationIdentifierBindings(resourceID, *opID)
		identifierMemberNames = make(map[string]struct{}, len(bindings))
		for _, memberName := range bindings {
			identifierMemberNames[memberName] = struct{}{}
		}
	}

	for _, member := range structure.Members {
		if _, isIdentifier := identifierMemberNames[member.Name]; isIdentifier {
			continue
		}

		explicit := explicitMemberConstraints(member)
		current, exists := props.get(member.Name)

		switch {
		case !exists || !explicit.Empty():
			constraints := defaultConstraints
			if !explicit.Empty() {
				constraints = explicit
			}
			props.set(member.Name, ResourcePropertyDefinition{
				Member:                 member,
				TargetShapeID:          member.Target,
				Constraints:            constraints.Clone(),
				HasExplicitConstraints: !explicit.Empty(),
			})
		case current.HasExplicitConstraints:
			// An earlier pass already pinned this property explicitly; later
			// implicit signals never override it.
		default:
			props.set(member.Name, ResourcePropertyDefinition{
				Member:                 current.Member,
				TargetShapeID:          current.TargetShapeID,
				Constraints:            updater(current.Constraints),
				HasExplicitConstraints: false,
			})
		}
	}
}

// explicitMemberConstraints reads the mutability trait directly attached
// to a member, if any, in priority order readOnly, createOnly, writeOnly.
func explicitMemberConstraints(member *model.MemberShape) ConstraintSet {
	switch {
	case HasTrait(member, ReadOnlyPropertyTraitID):
		return NewConstraintSet(ReadOnly)
	case HasTrait(member, CreateOnlyPropertyTraitID):
		return NewConstraintSet(CreateOnly)
	case HasTrait(member, WriteOnlyPropertyTraitID):
		return NewConstraintSet(WriteOnly)
	default:
		return ConstraintSet{}
	}
}

// collectExcludedProperties walks the structure graph reachable from
// structure (following member targets that are themselves structures) and
// records the shape id of every member carrying @excludeProperty.
func collectExcludedProperties(m *model.Model, structure *model.StructureShape, excluded map[model.ShapeID]struct{}) {
	visited := map[model.ShapeID]struct{}{}
	var visit func(s *model.StructureShape)
	visit = func(s *model.StructureShape) {
		if _, seen := visited[s.ID]; seen {
			return
		}
		visited[s.ID] = struct{}{}
		for _, member := range s.Members {
			if HasTrait(member, ExcludePropertyTraitID) {
				excluded[member.ID] = struct{}{}
				continue
			}
			if target, ok := m.Shape(member.Target); ok {
				if targetStruct, ok := target.(*model.StructureShape); ok {
					visit(targetStruct)
				}
			}
		}
	}
	visit(structure)
}
