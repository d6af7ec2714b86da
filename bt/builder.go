package bt

import (
	"fmt"
)

// Def declares a subtree for Build
// Construct with the SequenceOf, SelectorOf, InvertOf and Do helpers;
// node ids are assigned in declaration order, so a malformed hierarchy
// cannot be expressed
type Def[A any] struct {
	kind      defKind
	composite CompositeKind
	decorator DecoratorKind
	action    A
	children  []Def[A]
}

type defKind int

const (
	defComposite defKind = iota
	defDecorator
	defLeaf
)

// SequenceOf declares a sequence composite
func SequenceOf[A any](children ...Def[A]) Def[A] {
	return Def[A]{kind: defComposite, composite: Sequence, children: children}
}

// SelectorOf declares a selector composite
func SelectorOf[A any](children ...Def[A]) Def[A] {
	return Def[A]{kind: defComposite, composite: Selector, children: children}
}

// InvertOf declares an inverting decorator
func InvertOf[A any](child Def[A]) Def[A] {
	return Def[A]{kind: defDecorator, decorator: Invert, children: []Def[A]{child}}
}

// Do declares a leaf running the given action
func Do[A any](action A) Def[A] {
	return Def[A]{kind: defLeaf, action: action}
}

// Build assembles a tree from a declaration
func Build[A any](root Def[A]) (*Tree[A], error) {
	tree := New[A]()
	if err := build(tree, 0, root); err != nil {
		return nil, err
	}
	return tree, nil
}

// MustBuild assembles a tree and panics on a malformed declaration
// Intended for static trees defined at startup
func MustBuild[A any](root Def[A]) *Tree[A] {
	tree, err := Build(root)
	if err != nil {
		panic(err)
	}
	return tree
}

func build[A any](tree *Tree[A], parent int, def Def[A]) error {
	var id int
	switch def.kind {
	case defComposite:
		if len(def.children) == 0 {
			return fmt.Errorf("bt: composite node requires children")
		}
		id = tree.PushComposite(def.composite)
	case defDecorator:
		if len(def.children) != 1 {
			return fmt.Errorf("bt: decorator node requires exactly one child, got %d", len(def.children))
		}
		id = tree.PushDecorator(def.decorator)
	case defLeaf:
		id = tree.PushLeaf(def.action)
	}

	for _, child := range def.children {
		if err := build(tree, id, child); err != nil {
			return err
		}
	}

	if err := tree.AddEdge(parent, id); err != nil {
		return fmt.Errorf("bt: linking node %d under %d: %w", id, parent, err)
	}
	return nil
}
