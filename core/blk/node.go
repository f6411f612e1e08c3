package blk

import "fmt"

// Kind identifies what a Node holds.
type Kind uint8

const (
	// KindBlock is a named block with an ordered list of children.
	KindBlock Kind = iota
	// KindInt is an integer scalar.
	KindInt
	// KindFloat is a floating point scalar.
	KindFloat
	// KindBool is a boolean scalar.
	KindBool
	// KindString is a string scalar.
	KindString
	// KindArray is an ordered list of scalars of a uniform kind.
	KindArray
)

// String returns a human readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindBlock:
		return "block"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Node is one entry in a parsed config tree.
//
// Sibling names may repeat; children are an ordered sequence, not a map.
// The order is preserved exactly as it appears in the source text because
// downstream consumers derive positional information (tech tree rows and
// columns) from it. Nodes are built once per Parse call and never mutated
// afterwards.
type Node struct {
	// Name is the block or key name. Empty only for the synthetic root.
	Name string
	// Kind tells which payload field below is valid.
	Kind Kind
	// Line is the source line the node started on.
	Line int

	// Children holds the ordered children of a KindBlock node.
	Children []*Node
	// Elems holds the ordered elements of a KindArray node.
	Elems []*Node

	IntVal   int64
	FloatVal float64
	BoolVal  bool
	StrVal   string
}

// IsBlock reports whether the node is a block.
func (n *Node) IsBlock() bool { return n.Kind == KindBlock }

// Child returns the first child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Blocks returns the children of kind block, preserving order.
func (n *Node) Blocks() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == KindBlock {
			out = append(out, c)
		}
	}
	return out
}

// Int returns the value of the first int child with the given name.
func (n *Node) Int(name string) (int64, bool) {
	if c := n.Child(name); c != nil && c.Kind == KindInt {
		return c.IntVal, true
	}
	return 0, false
}

// Float returns the value of the first float child with the given name.
// An int child is accepted and widened.
func (n *Node) Float(name string) (float64, bool) {
	c := n.Child(name)
	if c == nil {
		return 0, false
	}
	switch c.Kind {
	case KindFloat:
		return c.FloatVal, true
	case KindInt:
		return float64(c.IntVal), true
	}
	return 0, false
}

// Bool returns the value of the first bool child with the given name.
func (n *Node) Bool(name string) (bool, bool) {
	if c := n.Child(name); c != nil && c.Kind == KindBool {
		return c.BoolVal, true
	}
	return false, false
}

// Str returns the value of the first string child with the given name.
func (n *Node) Str(name string) (string, bool) {
	if c := n.Child(name); c != nil && c.Kind == KindString {
		return c.StrVal, true
	}
	return "", false
}

// Has reports whether any child with the given name exists.
func (n *Node) Has(name string) bool { return n.Child(name) != nil }
