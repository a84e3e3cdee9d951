package resourceschema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	goccyjson "github.com/goccy/go-json"
)

// NodeKind discriminates the shape of a Node.
type NodeKind int

const (
	NodeNull NodeKind = iota
	NodeScalar
	NodeArray
	NodeObject
)

// NodeMember is one ordered key/value pair of an object Node.
type NodeMember struct {
	Key   string
	Value *Node
}

// Node is an ordered JSON value tree. It exists because Go's map type has
// no stable iteration order and this engine's output documents must
// serialize properties, definitions, and patched keys in a deterministic
// order, not an alphabetized or randomized one. It also doubles as the
// target for JSON-pointer-addressed patches applied during mapping.
type Node struct {
	Kind    NodeKind
	Members []NodeMember // NodeObject
	Items   []*Node       // NodeArray
	Scalar  any           // NodeScalar: string, float64, bool
}

// NewObjectNode returns an empty object node.
func NewObjectNode() *Node { return &Node{Kind: NodeObject} }

// NewArrayNode returns an empty array node.
func NewArrayNode() *Node { return &Node{Kind: NodeArray} }

// NewStringNode wraps a string scalar.
func NewStringNode(s string) *Node { return &Node{Kind: NodeScalar, Scalar: s} }

// NewBoolNode wraps a bool scalar.
func NewBoolNode(b bool) *Node { return &Node{Kind: NodeScalar, Scalar: b} }

// NewNumberNode wraps a numeric scalar.
func NewNumberNode(n float64) *Node { return &Node{Kind: NodeScalar, Scalar: n} }

// NewNullNode returns the null node.
func NewNullNode() *Node { return &Node{Kind: NodeNull} }

// NewValueNode wraps an arbitrary Go value produced elsewhere (e.g. a
// jsonschema.Schema field) as a scalar node. Slices and maps are not
// supported; build them as Node trees explicitly instead.
func NewValueNode(v any) *Node {
	if v == nil {
		return NewNullNode()
	}
	return &Node{Kind: NodeScalar, Scalar: v}
}

// Set adds or replaces a member, preserving the position of an existing
// key and appending new keys in call order. Set panics if n is not an
// object node; callers are expected to have built n with NewObjectNode.
func (n *Node) Set(key string, value *Node) *Node {
	if n.Kind != NodeObject {
		panic("resourceschema: Set called on a non-object node")
	}
	for i, m := range n.Members {
		if m.Key == key {
			n.Members[i].Value = value
			return n
		}
	}
	n.Members = append(n.Members, NodeMember{Key: key, Value: value})
	return n
}

// Get looks up a member by key.
func (n *Node) Get(key string) (*Node, bool) {
	if n.Kind != NodeObject {
		return nil, false
	}
	for _, m := range n.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// ValueToNode converts an arbitrary decoded JSON/YAML value (as produced
// by goccy/go-json or yaml.v3 unmarshaling into interface{}) into a Node
// tree. Object keys are sorted, since such values arrive with no
// meaningful insertion order of their own to preserve.
func ValueToNode(v any) *Node {
	switch val := v.(type) {
	case nil:
		return NewNullNode()
	case map[string]any:
		out := NewObjectNode()
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out.Set(k, ValueToNode(val[k]))
		}
		return out
	case []any:
		out := NewArrayNode()
		for _, item := range val {
			out.Append(ValueToNode(item))
		}
		return out
	case bool, string, float64, int, int64:
		return &Node{Kind: NodeScalar, Scalar: val}
	default:
		return &Node{Kind: NodeScalar, Scalar: val}
	}
}

// Append adds an element to an array node.
func (n *Node) Append(value *Node) *Node {
	if n.Kind != NodeArray {
		panic("resourceschema: Append called on a non-array node")
	}
	n.Items = append(n.Items, value)
	return n
}

// IsEmpty reports whether this node is the kind of "nothing to show"
// value the document builder omits: null, an empty object, or an empty
// array. Scalars are never empty, including the zero string and false.
func (n *Node) IsEmpty() bool {
	if n == nil {
		return true
	}
	switch n.Kind {
	case NodeNull:
		return true
	case NodeObject:
		return len(n.Members) == 0
	case NodeArray:
		return len(n.Items) == 0
	default:
		return false
	}
}

// MarshalJSON renders the node preserving member and element order.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	switch n.Kind {
	case NodeNull:
		return []byte("null"), nil
	case NodeScalar:
		return goccyjson.Marshal(n.Scalar)
	case NodeArray:
		var b strings.Builder
		b.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				b.WriteByte(',')
			}
			raw, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			b.Write(raw)
		}
		b.WriteByte(']')
		return []byte(b.String()), nil
	case NodeObject:
		var b strings.Builder
		b.WriteByte('{')
		for i, m := range n.Members {
			if i > 0 {
				b.WriteByte(',')
			}
			key, err := goccyjson.Marshal(m.Key)
			if err != nil {
				return nil, err
			}
			b.Write(key)
			b.WriteByte(':')
			val, err := m.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			b.Write(val)
		}
		b.WriteByte('}')
		return []byte(b.String()), nil
	default:
		return nil, fmt.Errorf("resourceschema: node has unknown kind %d", n.Kind)
	}
}

func boolNodePtr(n *Node) (bool, bool) {
	if n == nil || n.Kind != NodeScalar {
		return false, false
	}
	b, ok := n.Scalar.(bool)
	return b, ok
}

func stringNodePtr(n *Node) (string, bool) {
	if n == nil || n.Kind != NodeScalar {
		return "", false
	}
	switch v := n.Scalar.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	default:
		return strconv.Quote(fmt.Sprint(v)), true
	}
}
