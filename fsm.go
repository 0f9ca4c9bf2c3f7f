package splitkb

import (
	"time"

	"splitkb/hid"
)

// nodeKind is the small integer tag for one of the generic FSM state
// shapes: the five from spec §4.2, plus Sequence's Delay. A composite
// action (ModTap, TapDance, …) is compiled once, by Keymap.Compile at
// startup, into a fixed array of these nodes
// wired together by index — "an array of state records indexed by a
// small integer id", per the design notes, rather than named states
// referencing each other by string.
type nodeKind uint8

const (
	nodeStart nodeKind = iota
	nodePress
	nodeTap
	nodeWait
	nodeMouseMove
	nodeDelay // Sequence's fixed inter-tap gap; ignores input entirely.
)

// emitKind selects which HID sink a Press/Tap node's target speaks to.
type emitKind uint8

const (
	emitNone emitKind = iota
	emitKeyboard
	emitConsumer
	emitMouse
)

type emitTarget struct {
	kind     emitKind
	chord    ChordSpec
	consumer CC
	mouse    MB
}

// node is one compiled state in an action's FSM graph.
type node struct {
	kind nodeKind

	// Start, Press (on release), Tap, Delay, MouseMove (on release):
	// index of the node to transition to.
	next int

	target emitTarget // Press, Tap

	waitT        time.Duration // Wait, Delay
	success      int           // Wait
	fail         int           // Wait
	inverted     bool          // Wait
	permissiveOK bool          // Wait

	move MouseMoveSpec // MouseMove
}

// graph is the compiled FSM for one Action. Node 0 is always Start.
type graph struct {
	nodes []node
}

// fsmState is the mutable, per-position runtime state that walks a
// graph. It holds nothing the graph itself doesn't parameterize, so the
// same graph can in principle drive many instances; in practice each
// Position owns exactly one.
type fsmState struct {
	cur     int
	t0      time.Time
	pressed bool // nodePress: press already emitted

	// nodeMouseMove: current velocity, re-initialized on entry.
	vx, vy, vw float32

	// priorInput is this position's input reading as of the end of the
	// previous tick's drive call. Start only leaves on a rising edge
	// (input true, priorInput false) — see the comment on nodeStart in
	// step(). A graph that returns to Start mid-tick (Sequence, once
	// playback finishes) must not immediately retrigger just because the
	// key is still physically held.
	priorInput bool
}

// atStart reports whether the FSM is idle — the only time its bound
// action may change (spec invariant 2).
func (f *fsmState) atStart() bool {
	return f.cur == 0
}

// reset forces the FSM back to Start without emitting releases; callers
// that need the "everything currently held gets released" guarantee
// (catastrophic panic recovery) must call sinks.ReleaseAll separately,
// since a reset graph has lost track of what it had pressed.
func (f *fsmState) reset() {
	f.cur = 0
	f.pressed = false
	f.vx, f.vy, f.vw = 0, 0, 0
	f.priorInput = false
}

// ErrorSink receives HID sink failures so the main loop's diagnostics
// logger can report them once, per spec §7: the FSM itself never rolls
// back state because a sink rejected an emit.
type ErrorSink interface {
	HIDError(err error)
}

// drive runs one tick of g against f: it calls step on the current
// node, and if the node changed, chases enter/step transitions until a
// fixed point (a node returning itself) is reached within this tick.
// permissiveHold is the signal from the arbiter: "commit to hold now",
// consulted only by Wait nodes with permissiveOK set.
func (f *fsmState) drive(g *graph, input bool, now time.Time, permissiveHold bool, sinks hid.Sinks, diag ErrorSink) {
	defer func() { f.priorInput = input }()
	for {
		next := step(g, f, input, now, permissiveHold, sinks, diag)
		if next == f.cur {
			return
		}
		f.cur = next
		enter(g, f, now, sinks, diag)
		// A node whose natural next step (absent new input) is itself
		// terminates the chase — spec's "a self-loop terminates the
		// chase." Tap and MouseMove don't: entering Tap emits
		// press+release immediately, and the next loop iteration's
		// step() call unconditionally advances past it in this same
		// tick; MouseMove needs that step() call to emit its first move
		// (see peekSelfLoop).
		if peekSelfLoop(g, f) {
			return
		}
	}
}

// peekSelfLoop reports whether the freshly entered node is one whose
// natural next step (absent new input) is itself, so drive can stop
// chasing. nodeWait, nodeStart, nodePress and nodeDelay all persist
// across ticks and already did everything entering them requires inside
// enter(), so the chase can stop right there.
//
// nodeMouseMove also persists across ticks, but unlike Press its emit
// lives in step(), not enter() — enter() only seeds velocity. Reporting
// it here would let drive return before step() ever ran on the entry
// tick, dropping that tick's move. So it is deliberately left out of
// this set: the chase falls through to one more step() call, which
// emits the first move and then reports itself as the fixed point.
func peekSelfLoop(g *graph, f *fsmState) bool {
	switch g.nodes[f.cur].kind {
	case nodeWait, nodeStart, nodePress, nodeDelay:
		return true
	default:
		// nodeTap: always resolves and transitions onward within the
		// same tick, so the chase must keep going.
		// nodeMouseMove: see above.
		return false
	}
}
