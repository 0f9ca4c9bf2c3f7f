package splitkb

import "splitkb/hid"

// RuntimeState is everything the engine tracks for one physical
// position between ticks: its currently bound action (spec §3's
// bound_action) and the FSM walking that action's compiled graph.
type RuntimeState struct {
	bound *compiledAction
	fsm   fsmState
}

// Runtime owns every position's RuntimeState and drives them one tick
// at a time, in the fixed order spec §5 lays out: resolve the active
// layer, rebind whatever's idle, compute permissive-hold flips, then
// step every FSM.
type Runtime struct {
	keymap *Keymap
	clock  Clock
	sinks  hid.Sinks
	diag   ErrorSink

	states [2][Rows][Cols]RuntimeState
	flips  FlipSet
	prev   Bitmap
}

// NewRuntime builds a Runtime over an already-validated and compiled
// keymap. Every position starts bound to its base-layer (or unmapped)
// action.
func NewRuntime(keymap *Keymap, sinks hid.Sinks, diag ErrorSink, clock Clock) *Runtime {
	r := &Runtime{keymap: keymap, sinks: sinks, diag: diag, clock: clock}
	forEachPosition(func(p Position) {
		r.state(p).bound = keymap.Resolve(Base, p)
	})
	return r
}

func (r *Runtime) state(p Position) *RuntimeState {
	return &r.states[p.Side][p.Row][p.Col]
}

// rebind enforces invariant 2: a position's bound action only ever
// changes while its FSM is at Start. Internal callers only ever invoke
// this after checking atStart themselves, but the check lives here too
// so the invariant holds even if that changes.
func (rs *RuntimeState) rebind(ca *compiledAction) error {
	if !rs.fsm.atStart() {
		return ErrRebindWhileActive
	}
	rs.bound = ca
	return nil
}

// Tick runs one full cycle of the engine over a freshly sampled down
// bitmap: layer resolution (component C), binding, permissive-hold
// arbitration (component D), and FSM driving (component B) for every
// position on both halves, in that fixed order (spec §5).
func (r *Runtime) Tick(down *Bitmap) {
	now := r.clock.Now()
	active := r.keymap.ActiveLayer(down)

	r.flips.Reset()
	forEachPosition(func(p Position) {
		if down.Get(p) && !r.prev.Get(p) {
			r.flips.Add(p)
		}
	})

	// Pass 1: rebind whatever's idle, then run the permissive-hold
	// arbiter's extra step for every qualifying position. This whole
	// pass completes, in traversal order, before any position's normal
	// step runs (spec §5's "permissive-hold injections ... then
	// per-position step" are two complete passes, not interleaved).
	forEachPosition(func(p Position) {
		if a, ok := r.keymap.baseAction(p); ok && a.Kind == ActionLayerHold {
			return
		}
		rs := r.state(p)
		if rs.fsm.atStart() {
			_ = rs.rebind(r.keymap.Resolve(active, p))
		}
		if permissiveHold(r.keymap, p, &r.flips) {
			rs.fsm.drive(rs.bound.graph, down.Get(p), now, true, r.sinks, r.diag)
		}
	})

	// Pass 2: the normal step, traversal order.
	forEachPosition(func(p Position) {
		if a, ok := r.keymap.baseAction(p); ok && a.Kind == ActionLayerHold {
			return
		}
		rs := r.state(p)
		rs.fsm.drive(rs.bound.graph, down.Get(p), now, false, r.sinks, r.diag)
	})

	r.prev = *down
}

// forEachPosition visits every matrix position in the fixed traversal
// order spec §4.3/§5 rely on: left side row-major, then right side
// row-major.
func forEachPosition(fn func(Position)) {
	for _, side := range [2]Side{Left, Right} {
		for row := 0; row < Rows; row++ {
			for col := 0; col < Cols; col++ {
				fn(Position{Side: side, Row: row, Col: col})
			}
		}
	}
}

// ReleaseAll forces every position's FSM back to idle and tells every
// HID sink to release everything it may be holding. Used by the main
// loop's panic-recovery path (spec §7) before the next tick runs.
func (r *Runtime) ReleaseAll() {
	forEachPosition(func(p Position) {
		r.state(p).fsm.reset()
	})
	r.prev = Bitmap{}
	r.sinks.ReleaseAll()
}
