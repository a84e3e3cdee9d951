package traits_test

import (
	"reflect"
	"testing"

	"github.com/kstich/cfnschema/model"
	"github.com/kstich/cfnschema/traits"
)

const ns = "example.foo"

func sid(name string) model.ShapeID { return model.NewShapeID(ns, name) }
func ref(id model.ShapeID) *model.ShapeID { return &id }

func member(structID model.ShapeID, name string, target model.ShapeID, traitBag model.TraitBag) *model.MemberShape {
	if traitBag == nil {
		traitBag = model.TraitBag{}
	}
	return &model.MemberShape{ID: structID.WithMember(name), Name: name, Target: target, Traits: traitBag}
}

// buildFooModel models a resource with create, read, and update but no
// put: one property flows through all three lifecycle stages without any
// explicit trait and ends up fully mutable, one is create-only, and one
// carries an explicit readOnlyProperty trait that a later implicit signal
// must not override.
func buildFooModel(t *testing.T) (*model.Model, model.ShapeID) {
	t.Helper()
	b := model.NewBuilder()
	b.AddShape(&model.SimpleShape{ID: sid("FooId"), Type: model.SimpleString})
	b.AddShape(&model.SimpleShape{ID: sid("FooString"), Type: model.SimpleString})

	readOut := &model.StructureShape{ID: sid("ReadFooResponse")}
	readOut.Members = []*model.MemberShape{
		member(readOut.ID, "id", sid("FooId"), nil),
		member(readOut.ID, "evolving", sid("FooString"), nil),
	}
	b.AddShape(readOut)
	b.AddShape(&model.OperationShape{ID: sid("ReadFoo"), Output: ref(sid("ReadFooResponse"))})

	createIn := &model.StructureShape{ID: sid("CreateFooRequest")}
	createIn.Members = []*model.MemberShape{
		member(createIn.ID, "id", sid("FooId"), nil),
		member(createIn.ID, "evolving", sid("FooString"), nil),
		member(createIn.ID, "createOnly", sid("FooString"), nil),
		member(createIn.ID, "explicitReadOnly", sid("FooString"), model.TraitBag{traits.ReadOnlyPropertyTraitID: traits.Presence{}}),
	}
	b.AddShape(createIn)
	b.AddShape(&model.OperationShape{ID: sid("CreateFoo"), Input: ref(sid("CreateFooRequest"))})

	updateIn := &model.StructureShape{ID: sid("UpdateFooRequest")}
	updateIn.Members = []*model.MemberShape{
		member(updateIn.ID, "id", sid("FooId"), nil),
		member(updateIn.ID, "evolving", sid("FooString"), nil),
		member(updateIn.ID, "explicitReadOnly", sid("FooString"), nil),
	}
	b.AddShape(updateIn)
	b.AddShape(&model.OperationShape{ID: sid("UpdateFoo"), Input: ref(sid("UpdateFooRequest"))})

	resource := &model.ResourceShape{
		ID:          sid("Foo"),
		Identifiers: []model.Identifier{{Name: "id", Target: sid("FooId")}},
		Create:      ref(sid("CreateFoo")),
		Read:        ref(sid("ReadFoo")),
		Update:      ref(sid("UpdateFoo")),
		Traits:      model.TraitBag{traits.DocumentationTraitID: traits.DocumentationTraitValue("A foo.")},
	}
	b.AddShape(resource)

	return b.Build(), resource.ID
}

func TestResourceIndexFooLifecycleWithoutPut(t *testing.T) {
	m, resourceID := buildFooModel(t)
	idx := traits.NewResourceIndex(m)

	if got, want := idx.GetPrimaryIdentifiers(resourceID), []string{"id"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("GetPrimaryIdentifiers() = %v, want %v", got, want)
	}
	idDef, ok := idx.GetProperty(resourceID, "id")
	if !ok || !idDef.Constraints.Has(traits.ReadOnly) {
		t.Fatalf("id property = %+v, want READ_ONLY (no put means read-only identifier default)", idDef)
	}

	evolving, ok := idx.GetProperty(resourceID, "evolving")
	if !ok {
		t.Fatal("evolving property missing")
	}
	if !evolving.Constraints.Empty() {
		t.Fatalf("evolving property constraints = %v, want fully mutable after read+create+update", evolving.Constraints)
	}

	createOnly, ok := idx.GetProperty(resourceID, "createOnly")
	if !ok || !createOnly.Constraints.Has(traits.CreateOnly) {
		t.Fatalf("createOnly property = %+v, want CREATE_ONLY", createOnly)
	}

	explicit, ok := idx.GetProperty(resourceID, "explicitReadOnly")
	if !ok || !explicit.Constraints.Has(traits.ReadOnly) {
		t.Fatalf("explicitReadOnly property = %+v, want READ_ONLY even after an implicit update-input appearance", explicit)
	}
	if !explicit.HasExplicitConstraints {
		t.Fatal("explicitReadOnly should report HasExplicitConstraints")
	}
}

// buildBarModel models a resource with put and read but no create or
// update: put input seeds a write-only property, read's input carries an
// additionalIdentifier member, read's output seeds a read-only property,
// and the resource's @resource trait folds in an additional schema with
// one plain member and one excluded member.
func buildBarModel(t *testing.T) (*model.Model, model.ShapeID) {
	t.Helper()
	b := model.NewBuilder()
	b.AddShape(&model.SimpleShape{ID: sid("BarId"), Type: model.SimpleString})
	b.AddShape(&model.SimpleShape{ID: sid("BarArn"), Type: model.SimpleString})
	b.AddShape(&model.SimpleShape{ID: sid("BarString"), Type: model.SimpleString})

	putIn := &model.StructureShape{ID: sid("PutBarRequest")}
	putIn.Members = []*model.MemberShape{
		member(putIn.ID, "id", sid("BarId"), nil),
		member(putIn.ID, "writeOnly", sid("BarString"), nil),
	}
	b.AddShape(putIn)
	b.AddShape(&model.OperationShape{ID: sid("PutBar"), Input: ref(sid("PutBarRequest"))})

	readIn := &model.StructureShape{ID: sid("ReadBarRequest")}
	readIn.Members = []*model.MemberShape{
		member(readIn.ID, "id", sid("BarId"), nil),
		member(readIn.ID, "arn", sid("BarArn"), model.TraitBag{traits.AdditionalIdentifierTraitID: traits.Presence{}}),
	}
	b.AddShape(readIn)

	readOut := &model.StructureShape{ID: sid("ReadBarResponse")}
	readOut.Members = []*model.MemberShape{
		member(readOut.ID, "id", sid("BarId"), nil),
		member(readOut.ID, "readOnly", sid("BarString"), nil),
	}
	b.AddShape(readOut)
	b.AddShape(&model.OperationShape{ID: sid("ReadBar"), Input: ref(sid("ReadBarRequest")), Output: ref(sid("ReadBarResponse"))})

	extra := &model.StructureShape{ID: sid("BarExtra")}
	extra.Members = []*model.MemberShape{
		member(extra.ID, "extra", sid("BarString"), nil),
		member(extra.ID, "hidden", sid("BarString"), model.TraitBag{traits.ExcludePropertyTraitID: traits.Presence{}}),
	}
	b.AddShape(extra)

	resource := &model.ResourceShape{
		ID:          sid("Bar"),
		Identifiers: []model.Identifier{{Name: "id", Target: sid("BarId")}},
		Put:         ref(sid("PutBar")),
		Read:        ref(sid("ReadBar")),
		Traits: model.TraitBag{
			traits.DocumentationTraitID: traits.DocumentationTraitValue("A bar."),
			traits.ResourceTraitID:      traits.ResourceTraitValue{AdditionalSchemas: []model.ShapeID{sid("BarExtra")}},
		},
	}
	b.AddShape(resource)

	return b.Build(), resource.ID
}

func TestResourceIndexBarPutReadAdditionalSchemaAndIdentifier(t *testing.T) {
	m, resourceID := buildBarModel(t)
	idx := traits.NewResourceIndex(m)

	idDef, ok := idx.GetProperty(resourceID, "id")
	if !ok || !idDef.Constraints.Has(traits.CreateOnly) {
		t.Fatalf("id property = %+v, want CREATE_ONLY (put present means create-only identifier default)", idDef)
	}

	writeOnly, ok := idx.GetProperty(resourceID, "writeOnly")
	if !ok || !writeOnly.Constraints.Has(traits.WriteOnly) {
		t.Fatalf("writeOnly property = %+v, want WRITE_ONLY", writeOnly)
	}

	readOnly, ok := idx.GetProperty(resourceID, "readOnly")
	if !ok || !readOnly.Constraints.Has(traits.ReadOnly) {
		t.Fatalf("readOnly property = %+v, want READ_ONLY", readOnly)
	}

	arn, ok := idx.GetProperty(resourceID, "arn")
	if !ok || !arn.Constraints.Has(traits.ReadOnly) {
		t.Fatalf("arn property = %+v, want READ_ONLY from additionalIdentifier seeding", arn)
	}
	wantAdditional := [][]string{{"arn"}}
	if got := idx.GetAdditionalIdentifiers(resourceID); !reflect.DeepEqual(got, wantAdditional) {
		t.Fatalf("GetAdditionalIdentifiers() = %v, want %v", got, wantAdditional)
	}

	extra, ok := idx.GetProperty(resourceID, "extra")
	if !ok || !extra.Constraints.Empty() {
		t.Fatalf("extra property = %+v, want fully mutable from the additional-schema pass", extra)
	}

	if _, ok := idx.GetProperty(resourceID, "hidden"); ok {
		t.Fatal("hidden property should be excluded by @excludeProperty")
	}
	props := idx.GetProperties(resourceID)
	for _, name := range props {
		if name == "hidden" {
			t.Fatal("GetProperties() should not list an excluded property")
		}
	}
}

// TestResourceIndexWriteThenCreateCollapsesToSingleConstraint exercises the
// case addCreateOnly alone cannot collapse: a property that first becomes
// write-only (via put) and is then seen again, unannotated, in create
// input. addCreateOnly only strips READ_ONLY, so without the final
// collapse pass this would leave two constraints set at once; the
// collapse's precedence then picks CREATE_ONLY over WRITE_ONLY.
func TestResourceIndexWriteThenCreateCollapsesToSingleConstraint(t *testing.T) {
	b := model.NewBuilder()
	b.AddShape(&model.SimpleShape{ID: sid("BazId"), Type: model.SimpleString})
	b.AddShape(&model.SimpleShape{ID: sid("BazString"), Type: model.SimpleString})

	putIn := &model.StructureShape{ID: sid("PutBazRequest")}
	putIn.Members = []*model.MemberShape{
		member(putIn.ID, "id", sid("BazId"), nil),
		member(putIn.ID, "shared", sid("BazString"), nil),
	}
	b.AddShape(putIn)
	b.AddShape(&model.OperationShape{ID: sid("PutBaz"), Input: ref(sid("PutBazRequest"))})

	createIn := &model.StructureShape{ID: sid("CreateBazRequest")}
	createIn.Members = []*model.MemberShape{
		member(createIn.ID, "id", sid("BazId"), nil),
		member(createIn.ID, "shared", sid("BazString"), nil),
	}
	b.AddShape(createIn)
	b.AddShape(&model.OperationShape{ID: sid("CreateBaz"), Input: ref(sid("CreateBazRequest"))})

	resource := &model.ResourceShape{
		ID:          sid("Baz"),
		Identifiers: []model.Identifier{{Name: "id", Target: sid("BazId")}},
		Put:         ref(sid("PutBaz")),
		Create:      ref(sid("CreateBaz")),
	}
	b.AddShape(resource)

	idx := traits.NewResourceIndex(b.Build())
	shared, ok := idx.GetProperty(resource.ID, "shared")
	if !ok {
		t.Fatal("shared property missing")
	}
	if len(shared.Constraints) != 1 || !shared.Constraints.Has(traits.CreateOnly) {
		t.Fatalf("shared property constraints = %v, want collapsed to {CREATE_ONLY}", shared.Constraints)
	}
}

func TestResourceIndexMemoizesPerResource(t *testing.T) {
	m, resourceID := buildFooModel(t)
	idx := traits.NewResourceIndex(m)
	first := idx.GetProperties(resourceID)
	second := idx.GetProperties(resourceID)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected memoized derivation to be stable across calls: %v != %v", first, second)
	}
}
