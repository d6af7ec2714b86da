package bt

import (
	"errors"
	"testing"
)

type mockTask int

const (
	taskA mockTask = iota
	taskB
	taskC
)

func TestSequence(t *testing.T) {
	tree := MustBuild(SequenceOf(
		Do(taskA),
		Do(taskB),
	))

	// root=0, sequence=1, then leaves in declaration order
	const nodeA, nodeB = 2, 3

	out := tree.RunRoot()
	if out.Kind != OutputTask || out.Node != nodeA || out.Action != taskA {
		t.Errorf("Expected first task at node %d, got %+v", nodeA, out)
	}

	out = tree.RunLeaf(nodeA, OutSuccess)
	if out.Kind != OutputTask || out.Node != nodeB || out.Action != taskB {
		t.Errorf("Expected second task at node %d, got %+v", nodeB, out)
	}

	out = tree.RunLeaf(nodeB, OutSuccess)
	if out.Kind != OutputComplete || out.Verdict != OutSuccess {
		t.Errorf("Expected sequence to succeed fully, got %+v", out)
	}

	out = tree.RunRoot()
	if out.Kind != OutputTask || out.Node != nodeA {
		t.Errorf("Expected first task on next iteration, got %+v", out)
	}

	out = tree.RunLeaf(nodeA, OutFailure)
	if out.Kind != OutputComplete || out.Verdict != OutFailure {
		t.Errorf("Expected sequence to fail, got %+v", out)
	}
}

func TestSelector(t *testing.T) {
	tree := MustBuild(SelectorOf(
		Do(taskA),
		Do(taskB),
	))

	const nodeA, nodeB = 2, 3

	out := tree.RunRoot()
	if out.Kind != OutputTask || out.Node != nodeA || out.Action != taskA {
		t.Errorf("Expected first task at node %d, got %+v", nodeA, out)
	}

	out = tree.RunLeaf(nodeA, OutFailure)
	if out.Kind != OutputTask || out.Node != nodeB || out.Action != taskB {
		t.Errorf("Expected second task at node %d, got %+v", nodeB, out)
	}

	out = tree.RunLeaf(nodeB, OutFailure)
	if out.Kind != OutputComplete || out.Verdict != OutFailure {
		t.Errorf("Expected selector to fail fully, got %+v", out)
	}

	out = tree.RunRoot()
	if out.Kind != OutputTask || out.Node != nodeA {
		t.Errorf("Expected first task on next iteration, got %+v", out)
	}

	out = tree.RunLeaf(nodeA, OutSuccess)
	if out.Kind != OutputComplete || out.Verdict != OutSuccess {
		t.Errorf("Expected selector to succeed, got %+v", out)
	}
}

func TestInvert(t *testing.T) {
	tree := MustBuild(InvertOf(Do(taskA)))

	const nodeA = 2

	out := tree.RunRoot()
	if out.Kind != OutputTask || out.Node != nodeA {
		t.Errorf("Expected child task at node %d, got %+v", nodeA, out)
	}

	out = tree.RunLeaf(nodeA, OutSuccess)
	if out.Kind != OutputComplete || out.Verdict != OutFailure {
		t.Errorf("Expected success inverted to failure, got %+v", out)
	}

	out = tree.RunRoot()
	if out.Kind != OutputTask || out.Node != nodeA {
		t.Errorf("Expected child task on next iteration, got %+v", out)
	}

	out = tree.RunLeaf(nodeA, OutFailure)
	if out.Kind != OutputComplete || out.Verdict != OutSuccess {
		t.Errorf("Expected failure inverted to success, got %+v", out)
	}
}

func TestNestedSelectorShortCircuit(t *testing.T) {
	tree := MustBuild(SelectorOf(
		SequenceOf(
			Do(taskA),
			Do(taskB),
		),
		Do(taskC),
	))

	// root=0, selector=1, sequence=2, A=3, B=4, C=5
	const nodeA, nodeB, nodeC = 3, 4, 5

	out := tree.RunRoot()
	if out.Node != nodeA {
		t.Errorf("Expected task A at node %d, got %+v", nodeA, out)
	}

	// Failing inside the sequence falls through to the selector's next child
	out = tree.RunLeaf(nodeA, OutFailure)
	if out.Kind != OutputTask || out.Node != nodeC || out.Action != taskC {
		t.Errorf("Expected fallback task C at node %d, got %+v", nodeC, out)
	}

	out = tree.RunLeaf(nodeC, OutSuccess)
	if out.Kind != OutputComplete || out.Verdict != OutSuccess {
		t.Errorf("Expected selector success, got %+v", out)
	}

	// Completing the sequence short-circuits the selector
	out = tree.RunRoot()
	out = tree.RunLeaf(out.Node, OutSuccess)
	if out.Node != nodeB {
		t.Errorf("Expected task B at node %d, got %+v", nodeB, out)
	}
	out = tree.RunLeaf(nodeB, OutSuccess)
	if out.Kind != OutputComplete || out.Verdict != OutSuccess {
		t.Errorf("Expected selector to short-circuit on sequence success, got %+v", out)
	}
}

func TestGraphBuildErrors(t *testing.T) {
	tree := New[mockTask]()
	leaf := tree.PushLeaf(taskA)
	other := tree.PushLeaf(taskB)

	if err := tree.AddEdge(leaf, other); !errors.Is(err, ErrLeafParent) {
		t.Errorf("Expected ErrLeafParent, got %v", err)
	}

	comp := tree.PushComposite(Sequence)
	if err := tree.AddEdge(comp, 0); !errors.Is(err, ErrRootChild) {
		t.Errorf("Expected ErrRootChild, got %v", err)
	}

	if err := tree.AddEdge(comp, leaf); err != nil {
		t.Errorf("Expected valid edge, got %v", err)
	}
}

func TestRejectedEdgeLeavesTreeIntact(t *testing.T) {
	tree := New[mockTask]()
	comp := tree.PushComposite(Sequence)
	leaf := tree.PushLeaf(taskA)

	if err := tree.AddEdge(comp, 0); !errors.Is(err, ErrRootChild) {
		t.Fatalf("Expected ErrRootChild, got %v", err)
	}
	if err := tree.AddEdge(leaf, comp); !errors.Is(err, ErrLeafParent) {
		t.Fatalf("Expected ErrLeafParent, got %v", err)
	}
	if err := tree.AddEdge(0, comp); err != nil {
		t.Fatalf("Expected valid root edge, got %v", err)
	}
	if err := tree.AddEdge(comp, leaf); err != nil {
		t.Fatalf("Expected valid leaf edge, got %v", err)
	}

	// Rejected edges must not have linked root under the composite or
	// reparented the composite; the walk settles in bounded steps
	out := tree.RunRoot()
	if out.Kind != OutputTask || out.Node != leaf {
		t.Fatalf("Expected task at node %d, got %+v", leaf, out)
	}
	out = tree.RunLeaf(leaf, OutSuccess)
	if out.Kind != OutputComplete || out.Verdict != OutSuccess {
		t.Errorf("Expected completion at root, got %+v", out)
	}
}

func TestBuilderValidation(t *testing.T) {
	tests := []struct {
		name    string
		def     Def[mockTask]
		wantErr bool
	}{
		{"empty composite", SequenceOf[mockTask](), true},
		{"valid single leaf under root", Do(taskA), false},
		{"valid nested", SequenceOf(Do(taskA), SelectorOf(Do(taskB), Do(taskC))), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.def)
			if (err != nil) != tt.wantErr {
				t.Errorf("Expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestBrainPopChanged(t *testing.T) {
	var b Brain
	if b.PopChanged() {
		t.Error("Expected fresh brain to be unchanged")
	}

	b.WriteVerdict(VerdictFailure)
	if b.Verdict != VerdictFailure {
		t.Errorf("Expected verdict failure, got %v", b.Verdict)
	}
	if !b.PopChanged() {
		t.Error("Expected changed flag after write")
	}
	if b.PopChanged() {
		t.Error("Expected changed flag cleared after pop")
	}
}
