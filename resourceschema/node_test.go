package resourceschema_test

import (
	"testing"

	"github.com/kstich/cfnschema/resourceschema"
)

func TestNodeMarshalJSONPreservesMemberOrder(t *testing.T) {
	n := resourceschema.NewObjectNode()
	n.Set("zebra", resourceschema.NewStringNode("z"))
	n.Set("alpha", resourceschema.NewStringNode("a"))
	n.Set("mid", resourceschema.NewNumberNode(3))

	got, err := n.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"zebra":"z","alpha":"a","mid":3}`
	if string(got) != want {
		t.Fatalf("MarshalJSON() = %s, want %s", got, want)
	}
}

func TestNodeSetReplacesInPlaceWithoutReordering(t *testing.T) {
	n := resourceschema.NewObjectNode()
	n.Set("a", resourceschema.NewStringNode("1"))
	n.Set("b", resourceschema.NewStringNode("2"))
	n.Set("a", resourceschema.NewStringNode("3"))

	got, err := n.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"a":"3","b":"2"}`
	if string(got) != want {
		t.Fatalf("MarshalJSON() = %s, want %s", got, want)
	}
}

func TestNodeArrayMarshalJSON(t *testing.T) {
	n := resourceschema.NewArrayNode()
	n.Append(resourceschema.NewStringNode("x"))
	n.Append(resourceschema.NewBoolNode(true))

	got, err := n.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `["x",true]`
	if string(got) != want {
		t.Fatalf("MarshalJSON() = %s, want %s", got, want)
	}
}

func TestNodeIsEmpty(t *testing.T) {
	cases := []struct {
		name string
		n    *resourceschema.Node
		want bool
	}{
		{"nil", nil, true},
		{"null", resourceschema.NewNullNode(), true},
		{"empty object", resourceschema.NewObjectNode(), true},
		{"empty array", resourceschema.NewArrayNode(), true},
		{"zero string", resourceschema.NewStringNode(""), false},
		{"false", resourceschema.NewBoolNode(false), false},
		{"nonempty object", resourceschema.NewObjectNode().Set("k", resourceschema.NewStringNode("v")), false},
	}
	for _, c := range cases {
		if got := c.n.IsEmpty(); got != c.want {
			t.Errorf("%s: IsEmpty() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestNodeGet(t *testing.T) {
	n := resourceschema.NewObjectNode()
	n.Set("key", resourceschema.NewStringNode("value"))

	v, ok := n.Get("key")
	if !ok || v.Scalar != "value" {
		t.Fatalf("Get(key) = %v, %v, want value, true", v, ok)
	}
	if _, ok := n.Get("missing"); ok {
		t.Fatal("Get(missing) should report false")
	}
}

func TestValueToNodeSortsObjectKeys(t *testing.T) {
	v := map[string]any{"zebra": 1.0, "alpha": 2.0}
	n := resourceschema.ValueToNode(v)
	got, err := n.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"alpha":2,"zebra":1}`
	if string(got) != want {
		t.Fatalf("MarshalJSON() = %s, want %s", got, want)
	}
}

func TestValueToNodeArrayAndNull(t *testing.T) {
	v := []any{"a", nil, true}
	n := resourceschema.ValueToNode(v)
	got, err := n.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `["a",null,true]`
	if string(got) != want {
		t.Fatalf("MarshalJSON() = %s, want %s", got, want)
	}
}

func TestNodeSetPanicsOnNonObject(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Set on an array node to panic")
		}
	}()
	resourceschema.NewArrayNode().Set("k", resourceschema.NewStringNode("v"))
}

func TestNodeAppendPanicsOnNonArray(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Append on an object node to panic")
		}
	}()
	resourceschema.NewObjectNode().Append(resourceschema.NewStringNode("v"))
}
