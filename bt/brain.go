package bt

// Verdict is a leaf action's result, including the unsettled Running
type Verdict int

const (
	// VerdictRunning means the action needs more frames; the agent
	// yields and resumes at the same node next tick
	VerdictRunning Verdict = iota
	VerdictSuccess
	VerdictFailure
)

// Out converts to a settled OutVerdict; false for Running
func (v Verdict) Out() (OutVerdict, bool) {
	switch v {
	case VerdictSuccess:
		return OutSuccess, true
	case VerdictFailure:
		return OutFailure, true
	}
	return OutSuccess, false
}

// Brain is an agent's cursor into a shared behavior tree
// Zero value starts at the root
type Brain struct {
	// VisitingNode is the node the agent is currently at
	// 0 (the root) means the tree starts fresh
	VisitingNode int

	// Verdict is the latest result written by a leaf action
	Verdict Verdict

	// Changed flags that Verdict was written since the last PopChanged
	// A leaf that never writes is a contract violation handled by the driver
	Changed bool
}

// WriteVerdict records a leaf result and marks the brain handled
func (b *Brain) WriteVerdict(v Verdict) {
	b.Verdict = v
	b.Changed = true
}

// PopChanged returns whether a verdict was written and clears the flag
func (b *Brain) PopChanged() bool {
	changed := b.Changed
	b.Changed = false
	return changed
}
