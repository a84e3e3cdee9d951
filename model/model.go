package model

// Model is a directed graph of shapes. It is the read-only query surface
// the rest of the engine builds on; nothing in this package parses a
// textual or wire-format model into one of these — callers build a Model
// with Builder.
//
// A Model is immutable after Builder.Build; concurrent read-only access is
// safe once built.
type Model struct {
	shapes map[ShapeID]Shape
	order  []ShapeID // insertion order, for deterministic enumeration
}

// Shape returns the shape registered under id, if any.
func (m *Model) Shape(id ShapeID) (Shape, bool) {
	s, ok := m.shapes[id]
	return s, ok
}

// Resource returns the shape under id as a *ResourceShape.
func (m *Model) Resource(id ShapeID) (*ResourceShape, bool) {
	s, ok := m.shapes[id]
	if !ok {
		return nil, false
	}
	r, ok := s.(*ResourceShape)
	return r, ok
}

// Structure returns the shape under id as a *StructureShape.
func (m *Model) Structure(id ShapeID) (*StructureShape, bool) {
	s, ok := m.shapes[id]
	if !ok {
		return nil, false
	}
	st, ok := s.(*StructureShape)
	return st, ok
}

// Operation returns the shape under id as an *OperationShape.
func (m *Model) Operation(id ShapeID) (*OperationShape, bool) {
	s, ok := m.shapes[id]
	if !ok {
		return nil, false
	}
	o, ok := s.(*OperationShape)
	return o, ok
}

// Service returns the shape under id as a *ServiceShape.
func (m *Model) Service(id ShapeID) (*ServiceShape, bool) {
	s, ok := m.shapes[id]
	if !ok {
		return nil, false
	}
	sv, ok := s.(*ServiceShape)
	return sv, ok
}

// EnumerateResources returns every resource shape in the model, in
// insertion order.
func (m *Model) EnumerateResources() []*ResourceShape {
	var out []*ResourceShape
	for _, id := range m.order {
		if r, ok := m.shapes[id].(*ResourceShape); ok {
			out = append(out, r)
		}
	}
	return out
}

// GetOperationInput resolves an operation's input structure.
func (m *Model) GetOperationInput(opID ShapeID) (*StructureShape, bool) {
	op, ok := m.Operation(opID)
	if !ok || op.Input == nil {
		return nil, false
	}
	return m.Structure(*op.Input)
}

// GetOperationOutput resolves an operation's output structure.
func (m *Model) GetOperationOutput(opID ShapeID) (*StructureShape, bool) {
	op, ok := m.Operation(opID)
	if !ok || op.Output == nil {
		return nil, false
	}
	return m.Structure(*op.Output)
}

// GetOperationIdentifierBindings returns, for the given resource and one of
// its lifecycle operations, the mapping of identifier name to the name of
// the operation's input member bound to it. A member binds to an
// identifier when it shares the identifier's name and target shape.
func (m *Model) GetOperationIdentifierBindings(resourceID, opID ShapeID) map[string]string {
	bindings := map[string]string{}
	resource, ok := m.Resource(resourceID)
	if !ok {
		return bindings
	}
	input, ok := m.GetOperationInput(opID)
	if !ok {
		return bindings
	}
	for _, ident := range resource.Identifiers {
		member, ok := input.Member(ident.Name)
		if ok && member.Target == ident.Target {
			bindings[ident.Name] = member.Name
		}
	}
	return bindings
}

// GetTransitiveResources returns every resource shape reachable from the
// service, including resources nested beneath other resources, in
// deterministic pre-order with duplicates removed.
func (m *Model) GetTransitiveResources(serviceID ShapeID) []*ResourceShape {
	service, ok := m.Service(serviceID)
	if !ok {
		return nil
	}
	visited := map[ShapeID]bool{}
	var out []*ResourceShape
	var visit func(ids []ShapeID)
	visit = func(ids []ShapeID) {
		for _, id := range ids {
			if visited[id] {
				continue
			}
			visited[id] = true
			r, ok := m.Resource(id)
			if !ok {
				continue
			}
			out = append(out, r)
			visit(r.Resources)
		}
	}
	visit(service.Resources)
	return out
}
