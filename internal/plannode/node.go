// Package plannode defines the typed relational-operator nodes of a plan tree
// recovered from the indented textual notation.
//
// Every node exposes its operator type name, the raw property map and its
// children. Operators with well-known properties get a dedicated type with
// typed fields; all others are represented by *Generic.
package plannode

import (
	"maps"
	"slices"
)

// Operator type names with a dedicated node type.
const (
	TypeScan   = "ScanCrel"
	TypeFilter = "LogicalFilter"
	TypeJoin   = "LogicalJoin"
	TypeSort   = "LogicalSort"
)

// Node is a single operator of a plan tree. A node owns its children; no
// node appears under two parents.
type Node interface {
	// TypeName is the operator name as it appeared in the plan text.
	TypeName() string
	// Properties returns a copy of the raw property map.
	Properties() map[string]string
	// Property returns one raw property and whether it was present.
	Property(name string) (string, bool)
	// Children returns the direct children in plan order.
	Children() []Node
}

// base carries the state shared by every node type.
type base struct {
	typeName   string
	properties map[string]string
	children   []Node
}

func newBase(typeName string, props map[string]string, children []Node) base {
	return base{
		typeName:   typeName,
		properties: maps.Clone(props),
		children:   slices.Clone(children),
	}
}

func (b *base) TypeName() string {
	return b.typeName
}

func (b *base) Properties() map[string]string {
	if b.properties == nil {
		return map[string]string{}
	}
	return maps.Clone(b.properties)
}

func (b *base) Property(name string) (string, bool) {
	v, ok := b.properties[name]
	return v, ok
}

func (b *base) Children() []Node {
	return slices.Clone(b.children)
}

// Generic is any operator without a dedicated type.
type Generic struct {
	base
}

// New builds the node type matching typeName. The property map and the
// children slice are copied; the children become owned by the new node.
func New(typeName string, props map[string]string, children []Node) (Node, error) {
	b := newBase(typeName, props, children)
	switch typeName {
	case TypeScan:
		scan, err := newScan(b)
		if err != nil {
			return nil, err
		}
		return scan, nil
	case TypeFilter:
		return newFilter(b), nil
	case TypeJoin:
		return newJoin(b), nil
	case TypeSort:
		return newSort(b), nil
	default:
		return &Generic{base: b}, nil
	}
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, child := range n.Children() {
		walk(child, depth+1, fn)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	count := 0
	Walk(n, func(Node, int) bool {
		count++
		return true
	})
	return count
}
