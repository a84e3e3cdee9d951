package model

// Shape is implemented by every shape kind the engine queries: resources,
// structures, members, operations, services, and simple (leaf) shapes.
type Shape interface {
	ShapeID() ShapeID
	ShapeTraits() TraitBag
}

// Identifier is one entry of a resource's identifier map: a logical name
// bound to the shape that identifies it. Resource.Identifiers preserves
// insertion order, since CloudFormation treats the identifier map as
// ordered.
type Identifier struct {
	Name   string
	Target ShapeID
}

// ResourceShape models a resource: its identifiers, its lifecycle operation
// bindings, and any resources nested beneath it (for transitive-resource
// traversal).
type ResourceShape struct {
	ID          ShapeID
	Identifiers []Identifier
	Create      *ShapeID
	Read        *ShapeID
	Update      *ShapeID
	Put         *ShapeID
	Delete      *ShapeID
	List        *ShapeID
	Resources   []ShapeID
	Traits      TraitBag
}

func (r *ResourceShape) ShapeID() ShapeID      { return r.ID }
func (r *ResourceShape) ShapeTraits() TraitBag { return r.Traits }

// MemberShape models a single member of a structure: its local name, the
// shape it targets, and its own traits.
type MemberShape struct {
	ID     ShapeID
	Name   string
	Target ShapeID
	Traits TraitBag
}

func (m *MemberShape) ShapeID() ShapeID      { return m.ID }
func (m *MemberShape) ShapeTraits() TraitBag { return m.Traits }

// StructureShape models an ordered set of members. Member order is
// significant: it drives property ordering in the derivation engine.
type StructureShape struct {
	ID      ShapeID
	Members []*MemberShape
	Traits  TraitBag
}

func (s *StructureShape) ShapeID() ShapeID      { return s.ID }
func (s *StructureShape) ShapeTraits() TraitBag { return s.Traits }

// Member looks up a member of this structure by name.
func (s *StructureShape) Member(name string) (*MemberShape, bool) {
	for _, m := range s.Members {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// OperationShape models an operation's input/output structure bindings.
type OperationShape struct {
	ID     ShapeID
	Input  *ShapeID
	Output *ShapeID
	Traits TraitBag
}

func (o *OperationShape) ShapeID() ShapeID      { return o.ID }
func (o *OperationShape) ShapeTraits() TraitBag { return o.Traits }

// ServiceShape models a service and the resources bound directly beneath
// it. Resources nested under those resources are reached transitively via
// ResourceShape.Resources.
type ServiceShape struct {
	ID        ShapeID
	Resources []ShapeID
	Traits    TraitBag
}

func (s *ServiceShape) ShapeID() ShapeID      { return s.ID }
func (s *ServiceShape) ShapeTraits() TraitBag { return s.Traits }

// SimpleType enumerates the leaf shape kinds the default shape-to-schema
// converter cares about for format selection.
type SimpleType string

const (
	SimpleString    SimpleType = "string"
	SimpleBoolean   SimpleType = "boolean"
	SimpleInteger   SimpleType = "integer"
	SimpleLong      SimpleType = "long"
	SimpleFloat     SimpleType = "float"
	SimpleDouble    SimpleType = "double"
	SimpleBlob      SimpleType = "blob"
	SimpleTimestamp SimpleType = "timestamp"
	SimpleDocument  SimpleType = "document"
)

// SimpleShape models a leaf (non-aggregate) shape: the primitive types a
// structure member can target.
type SimpleShape struct {
	ID     ShapeID
	Type   SimpleType
	Traits TraitBag
}

func (s *SimpleShape) ShapeID() ShapeID      { return s.ID }
func (s *SimpleShape) ShapeTraits() TraitBag { return s.Traits }
