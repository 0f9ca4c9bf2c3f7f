package splitkb

import (
	"time"

	"splitkb/hid"
)

func emitPress(t emitTarget, sinks hid.Sinks, diag ErrorSink) {
	var err error
	switch t.kind {
	case emitKeyboard:
		if sinks.Keyboard != nil {
			err = sinks.Keyboard.Press(t.chord.bytes()...)
		}
	case emitConsumer:
		if sinks.Consumer != nil {
			err = sinks.Consumer.Press(uint16(t.consumer))
		}
	case emitMouse:
		if sinks.Mouse != nil {
			err = sinks.Mouse.Press(byte(t.mouse))
		}
	}
	report(diag, err)
}

func emitRelease(t emitTarget, sinks hid.Sinks, diag ErrorSink) {
	var err error
	switch t.kind {
	case emitKeyboard:
		if sinks.Keyboard != nil {
			err = sinks.Keyboard.Release(t.chord.bytes()...)
		}
	case emitConsumer:
		if sinks.Consumer != nil {
			err = sinks.Consumer.ReleaseAll()
		}
	case emitMouse:
		if sinks.Mouse != nil {
			err = sinks.Mouse.Release(byte(t.mouse))
		}
	}
	report(diag, err)
}

// report swallows err after handing it to diag, per spec §7: a sink
// rejection is logged once and dropped, never retried, never rolled
// back into FSM state.
func report(diag ErrorSink, err error) {
	if err != nil && diag != nil {
		diag.HIDError(err)
	}
}

// enter runs the one-time side effects of having just transitioned into
// f.cur.
func enter(g *graph, f *fsmState, now time.Time, sinks hid.Sinks, diag ErrorSink) {
	n := &g.nodes[f.cur]
	switch n.kind {
	case nodeStart:
		// idempotent; nothing to do.
	case nodePress:
		emitPress(n.target, sinks, diag)
		f.pressed = true
	case nodeTap:
		emitPress(n.target, sinks, diag)
		emitRelease(n.target, sinks, diag)
	case nodeWait, nodeDelay:
		f.t0 = now
	case nodeMouseMove:
		f.vx = float32(n.move.DX)
		f.vy = float32(n.move.DY)
		f.vw = float32(n.move.DW)
	}
}

// step evaluates f.cur against the current input and returns the node
// to transition to (f.cur itself, if nothing changes).
func step(g *graph, f *fsmState, input bool, now time.Time, permissiveHold bool, sinks hid.Sinks, diag ErrorSink) int {
	n := &g.nodes[f.cur]
	switch n.kind {
	case nodeStart:
		// A rising edge, not mere level: most graphs only ever return
		// to Start on a falling edge (the key having already been
		// released), so this never matters for them. Two can land here
		// with the key still physically held: Sequence, whose terminal
		// Tap transitions straight back to Start the instant playback
		// finishes, and a hold_is_tap ModTap, whose Tap(hold) does the
		// same once its Wait times out. Gating on the edge rather than
		// the level keeps a continuous hold from replaying either one
		// (spec §3: one press, one replay).
		if input && !f.priorInput {
			return n.next
		}
		return f.cur

	case nodePress:
		if !f.pressed {
			// Defensive: spec allows for a step evaluated before enter
			// has run. In this implementation enter always precedes
			// the first step on a node, so this is unreachable.
			return f.cur
		}
		if input {
			return f.cur
		}
		emitRelease(n.target, sinks, diag)
		f.pressed = false
		return n.next

	case nodeTap:
		// Tap always resolves the same tick it is entered; by the
		// time step() ever sees this node again the chase has already
		// emitted press+release in enter() and is just advancing.
		return n.next

	case nodeWait:
		inp := input
		if n.inverted {
			inp = !inp
		}
		elapsed := now.Sub(f.t0)
		if inp && n.permissiveOK && permissiveHold {
			return n.success
		}
		if inp && elapsed > n.waitT {
			return n.success
		}
		if !inp && elapsed > n.waitT {
			return n.success
		}
		if !inp && elapsed <= n.waitT {
			return n.fail
		}
		return f.cur

	case nodeDelay:
		if now.Sub(f.t0) >= n.waitT {
			return n.next
		}
		return f.cur

	case nodeMouseMove:
		if input {
			x := int8(clampMouse(roundf(f.vx)))
			y := int8(clampMouse(roundf(f.vy)))
			w := int8(clampMouse(roundf(f.vw)))
			if sinks.Mouse != nil {
				report(diag, sinks.Mouse.Move(x, y, w))
			}
			f.vx *= n.move.AX
			f.vy *= n.move.AY
			return f.cur
		}
		f.vx, f.vy, f.vw = 0, 0, 0
		return n.next
	}
	return f.cur
}

func roundf(v float32) int32 {
	if v >= 0 {
		return int32(v + 0.5)
	}
	return int32(v - 0.5)
}

func clampMouse(v int32) int32 {
	switch {
	case v > 127:
		return 127
	case v < -128:
		return -128
	default:
		return v
	}
}
