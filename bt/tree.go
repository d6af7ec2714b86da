// Package bt is a stateless behavior tree engine
// Trees hold no cursor state and can be shared by any number of agents;
// each agent keeps its own Brain tracking where it is in the tree
package bt

import (
	"errors"
)

// OutVerdict is a settled leaf result, Verdict without Running
type OutVerdict int

const (
	OutSuccess OutVerdict = iota
	OutFailure
)

// Invert flips success and failure
func (v OutVerdict) Invert() OutVerdict {
	if v == OutSuccess {
		return OutFailure
	}
	return OutSuccess
}

func (v OutVerdict) String() string {
	if v == OutSuccess {
		return "success"
	}
	return "failure"
}

// CompositeKind selects the child iteration rule
type CompositeKind int

const (
	// Sequence iterates every child on success, stops immediately on failure
	Sequence CompositeKind = iota

	// Selector iterates every child on failure, stops immediately on success
	Selector
)

// DecoratorKind selects the single-child transform
type DecoratorKind int

const (
	// Invert turns success into failure and vice versa
	Invert DecoratorKind = iota
)

// Graph construction errors
var (
	// ErrRootChild is returned when adding an edge into the root
	ErrRootChild = errors.New("bt: root node cannot be a child")

	// ErrLeafParent is returned when adding an edge out of a leaf
	ErrLeafParent = errors.New("bt: leaf node cannot be a parent")
)

const noNode = -1

// Node variants held in the tree arena
type node interface {
	isNode()
}

type rootNode struct {
	child int
}

type compositeNode struct {
	kind     CompositeKind
	parent   int
	children []int
}

type decoratorNode struct {
	kind   DecoratorKind
	parent int
	child  int
}

type leafNode[A any] struct {
	action A
	parent int
}

func (*rootNode) isNode()      {}
func (*compositeNode) isNode() {}
func (*decoratorNode) isNode() {}
func (*leafNode[A]) isNode()   {}

// OutputKind discriminates traversal results
type OutputKind int

const (
	// OutputTask means traversal stopped at a leaf with work to do
	OutputTask OutputKind = iota

	// OutputComplete means traversal reached the top of the tree
	OutputComplete
)

// Output is the result of running the tree
type Output[A any] struct {
	Kind OutputKind

	// Node and Action are set for OutputTask
	Node   int
	Action A

	// Verdict is set for OutputComplete
	Verdict OutVerdict
}

// Tree is an arena-allocated behavior tree
//
// The tree is guaranteed to run from any node with any verdict at any
// time; there is no internal state. It only returns the first task or
// root completion it reaches. Continuing from a task node is up to the
// caller
type Tree[A any] struct {
	graph []node
}

// New creates a tree containing only the root node (id 0)
func New[A any]() *Tree[A] {
	return &Tree[A]{graph: []node{&rootNode{child: noNode}}}
}

// Len returns the number of nodes including the root
func (t *Tree[A]) Len() int {
	return len(t.graph)
}

// PushComposite adds a composite node and returns its id
func (t *Tree[A]) PushComposite(kind CompositeKind) int {
	t.graph = append(t.graph, &compositeNode{kind: kind, parent: noNode})
	return len(t.graph) - 1
}

// PushDecorator adds a decorator node and returns its id
func (t *Tree[A]) PushDecorator(kind DecoratorKind) int {
	t.graph = append(t.graph, &decoratorNode{kind: kind, parent: noNode, child: noNode})
	return len(t.graph) - 1
}

// PushLeaf adds a leaf node and returns its id
func (t *Tree[A]) PushLeaf(action A) int {
	t.graph = append(t.graph, &leafNode[A]{action: action, parent: noNode})
	return len(t.graph) - 1
}

// AddEdge creates a directed edge from parent to child. A rejected
// edge leaves both nodes untouched
func (t *Tree[A]) AddEdge(from, to int) error {
	if _, ok := t.graph[from].(*leafNode[A]); ok {
		return ErrLeafParent
	}
	if _, ok := t.graph[to].(*rootNode); ok {
		return ErrRootChild
	}

	switch n := t.graph[from].(type) {
	case *rootNode:
		n.child = to
	case *compositeNode:
		n.children = append(n.children, to)
	case *decoratorNode:
		n.child = to
	}

	switch n := t.graph[to].(type) {
	case *compositeNode:
		n.parent = from
	case *decoratorNode:
		n.parent = from
	case *leafNode[A]:
		n.parent = from
	}

	return nil
}

// traversal is a single step while walking the tree, avoiding recursion
type traversal[A any] struct {
	kind    traversalKind
	node    int
	verdict OutVerdict
	action  A
}

type traversalKind int

const (
	stepDown traversalKind = iota
	stepUp
	stepTask
	stepFinish
)

// down steps toward the leaves. Stops on a leaf node
func (t *Tree[A]) down(id int) traversal[A] {
	switch n := t.graph[id].(type) {
	case *rootNode:
		return traversal[A]{kind: stepDown, node: n.child}
	case *compositeNode:
		// running down on a composite starts fresh from the first child
		return traversal[A]{kind: stepDown, node: n.children[0]}
	case *decoratorNode:
		return traversal[A]{kind: stepDown, node: n.child}
	case *leafNode[A]:
		return traversal[A]{kind: stepTask, action: n.action}
	}
	panic("bt: unknown node kind")
}

// up steps toward the root carrying a verdict from source
// Stops on a leaf node, or the root if the tree is finished
func (t *Tree[A]) up(id, source int, verdict OutVerdict) traversal[A] {
	switch n := t.graph[id].(type) {
	case *rootNode:
		return traversal[A]{kind: stepFinish, verdict: verdict}
	case *compositeNode:
		// sequence and selector share the algorithm with flipped verdicts
		result := OutSuccess
		if n.kind == Selector {
			result = OutFailure
		}

		if verdict == result {
			// children always have ascending node ids, so the next
			// sibling is the first child past the reporting one
			for _, child := range n.children {
				if child > source {
					return traversal[A]{kind: stepDown, node: child}
				}
			}
			return traversal[A]{kind: stepUp, node: n.parent, verdict: result}
		}
		return traversal[A]{kind: stepUp, node: n.parent, verdict: result.Invert()}
	case *decoratorNode:
		switch n.kind {
		case Invert:
			return traversal[A]{kind: stepUp, node: n.parent, verdict: verdict.Invert()}
		}
	case *leafNode[A]:
		return traversal[A]{kind: stepUp, node: n.parent, verdict: verdict}
	}
	panic("bt: unknown node kind")
}

// traverse runs steps until a task or completion
func (t *Tree[A]) traverse(tr traversal[A]) Output[A] {
	visiting := noNode
	for {
		switch tr.kind {
		case stepDown:
			visiting = tr.node
			tr = t.down(tr.node)
		case stepUp:
			source := visiting
			visiting = tr.node
			tr = t.up(tr.node, source, tr.verdict)
		case stepTask:
			return Output[A]{Kind: OutputTask, Node: visiting, Action: tr.action}
		case stepFinish:
			return Output[A]{Kind: OutputComplete, Verdict: tr.verdict}
		}
	}
}

// RunRoot runs from the top of the tree
func (t *Tree[A]) RunRoot() Output[A] {
	return t.traverse(traversal[A]{kind: stepDown, node: 0})
}

// RunLeaf runs from a particular node that produced a particular verdict
func (t *Tree[A]) RunLeaf(inputNode int, verdict OutVerdict) Output[A] {
	return t.traverse(traversal[A]{kind: stepUp, node: inputNode, verdict: verdict})
}
