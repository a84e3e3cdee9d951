package resourceschema_test

import (
	"testing"

	"github.com/kstich/cfnschema/resourceschema"
)

func TestParsePointer(t *testing.T) {
	cases := []struct {
		pointer string
		want    []string
	}{
		{"", nil},
		{"/a/b", []string{"a", "b"}},
		{"/a~1b", []string{"a/b"}},
		{"/a~0b", []string{"a~b"}},
	}
	for _, c := range cases {
		got, err := resourceschema.ParsePointer(c.pointer)
		if err != nil {
			t.Fatalf("ParsePointer(%q): %v", c.pointer, err)
		}
		if len(got) != len(c.want) {
			t.Fatalf("ParsePointer(%q) = %v, want %v", c.pointer, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("ParsePointer(%q) = %v, want %v", c.pointer, got, c.want)
			}
		}
	}
}

func TestParsePointerRejectsMissingLeadingSlash(t *testing.T) {
	if _, err := resourceschema.ParsePointer("a/b"); err == nil {
		t.Fatal("expected an error for a pointer missing its leading '/'")
	}
}

func TestAddWithIntermediateValuesCreatesMissingObjects(t *testing.T) {
	root := resourceschema.NewObjectNode()
	tokens, err := resourceschema.ParsePointer("/a/b/c")
	if err != nil {
		t.Fatal(err)
	}
	if err := root.AddWithIntermediateValues(tokens, resourceschema.NewStringNode("leaf")); err != nil {
		t.Fatal(err)
	}
	got, err := root.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"a":{"b":{"c":"leaf"}}}`
	if string(got) != want {
		t.Fatalf("MarshalJSON() = %s, want %s", got, want)
	}
}

func TestAddWithIntermediateValuesOverwritesExisting(t *testing.T) {
	root := resourceschema.NewObjectNode()
	root.Set("a", resourceschema.NewStringNode("old"))
	tokens, _ := resourceschema.ParsePointer("/a")
	if err := root.AddWithIntermediateValues(tokens, resourceschema.NewStringNode("new")); err != nil {
		t.Fatal(err)
	}
	v, _ := root.Get("a")
	if v.Scalar != "new" {
		t.Fatalf("a = %v, want new", v.Scalar)
	}
}

func TestAddWithIntermediateValuesArrayAppendToken(t *testing.T) {
	root := resourceschema.NewObjectNode()
	root.Set("items", resourceschema.NewArrayNode())
	tokens, _ := resourceschema.ParsePointer("/items/-")
	if err := root.AddWithIntermediateValues(tokens, resourceschema.NewStringNode("x")); err != nil {
		t.Fatal(err)
	}
	got, err := root.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"items":["x"]}`
	if string(got) != want {
		t.Fatalf("MarshalJSON() = %s, want %s", got, want)
	}
}

func TestAddWithIntermediateValuesArrayIndexOutOfRangeErrors(t *testing.T) {
	root := resourceschema.NewObjectNode()
	root.Set("items", resourceschema.NewArrayNode())
	tokens, _ := resourceschema.ParsePointer("/items/5")
	if err := root.AddWithIntermediateValues(tokens, resourceschema.NewStringNode("x")); err == nil {
		t.Fatal("expected an error for an out-of-range array index")
	}
}

func TestAddWithIntermediateValuesThroughScalarErrors(t *testing.T) {
	root := resourceschema.NewObjectNode()
	root.Set("a", resourceschema.NewStringNode("scalar"))
	tokens, _ := resourceschema.ParsePointer("/a/b")
	if err := root.AddWithIntermediateValues(tokens, resourceschema.NewStringNode("x")); err == nil {
		t.Fatal("expected an error when adding through a scalar")
	}
}

func TestAddWithIntermediateValuesRootTokenErrors(t *testing.T) {
	root := resourceschema.NewObjectNode()
	if err := root.AddWithIntermediateValues(nil, resourceschema.NewStringNode("x")); err == nil {
		t.Fatal("expected an error when adding at the document root")
	}
}
