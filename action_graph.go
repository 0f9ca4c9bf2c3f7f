package splitkb

// compile builds the fixed FSM graph for a, following the composite
// wiring spec §4.2 lays out per action kind. It runs once per keymap
// entry, from Keymap.Compile at startup (never per tick; rebinding a
// position reuses the compiled graph), so the small allocation here
// never touches the hot path.
func compile(a Action) *graph {
	switch a.Kind {
	case ActionKey:
		return compileSimple(emitTarget{kind: emitKeyboard, chord: a.Chord})
	case ActionConsumerKey:
		return compileSimple(emitTarget{kind: emitConsumer, consumer: a.Consumer})
	case ActionMouseKey:
		return compileSimple(emitTarget{kind: emitMouse, mouse: a.Mouse})
	case ActionMouseMove:
		return compileMouseMove(a.Move)
	case ActionModTap:
		return compileModTap(a.ModTap)
	case ActionTapDance:
		return compileTapDance(a.TapDance)
	case ActionSequence:
		return compileSequence(a.Sequence)
	default:
		// ActionLayerHold and ActionNone never drive an FSM: LayerHold
		// positions participate only in layer selection (spec §4.3),
		// and unmapped positions produce no output at all.
		return &graph{nodes: []node{{kind: nodeStart, next: 0}}}
	}
}

// compileSimple builds the Start -> Press -> Start graph shared by Key,
// ConsumerKey and MouseKey (spec §4.2 "Composite FSMs").
func compileSimple(target emitTarget) *graph {
	return &graph{nodes: []node{
		{kind: nodeStart, next: 1},
		{kind: nodePress, target: target, next: 0},
	}}
}

func compileMouseMove(m MouseMoveSpec) *graph {
	return &graph{nodes: []node{
		{kind: nodeStart, next: 1},
		{kind: nodeMouseMove, move: m, next: 0},
	}}
}

// compileModTap builds Start -> Wait{T, success=HoldPress, fail=Tap(tap)}
// -> Start. HoldPress is Press(hold) normally, or Tap(hold) when
// hold_is_tap requests a "tap the hold chord instead of holding it"
// variant.
func compileModTap(m ModTapSpec) *graph {
	holdTarget := emitTarget{kind: emitKeyboard, chord: m.Hold}
	tapTarget := emitTarget{kind: emitKeyboard, chord: ChordSpec{m.Tap}}

	holdKind := nodePress
	if m.HoldIsTap {
		holdKind = nodeTap
	}

	return &graph{nodes: []node{
		{kind: nodeStart, next: 1},
		{kind: nodeWait, waitT: m.T, success: 2, fail: 3, permissiveOK: m.Permissive},
		{kind: holdKind, target: holdTarget, next: 0},
		{kind: nodeTap, target: tapTarget, next: 0},
	}}
}

// compileTapDance builds the two-stage graph from spec §4.2:
//
//	Start -> W1{T, success=Press(h1), fail=W2}
//	W2{T, success=Tap(t1), fail=W3, inverted}
//	W3{T, success=Press(h2), fail=Tap(t2)} -> Start
//
// W1 and W3 (the two "is it actually held" timers) honor permissive
// hold; W2 (the inverted "still up" gap between taps) does not, since
// permissive hold affirms a hold decision and W2 is instead measuring
// the absence of a second press — there is no hold to commit to early.
func compileTapDance(t TapDanceSpec) *graph {
	hold1 := emitTarget{kind: emitKeyboard, chord: t.Hold1}
	hold2 := emitTarget{kind: emitKeyboard, chord: t.Hold2}
	tap1 := emitTarget{kind: emitKeyboard, chord: t.Tap1}
	tap2 := emitTarget{kind: emitKeyboard, chord: t.Tap2}

	return &graph{nodes: []node{
		{kind: nodeStart, next: 1},
		{kind: nodeWait, waitT: t.T, success: 2, fail: 3, permissiveOK: true},
		{kind: nodePress, target: hold1, next: 0},
		{kind: nodeWait, waitT: t.T, success: 4, fail: 5, inverted: true, permissiveOK: false},
		{kind: nodeTap, target: tap1, next: 0},
		{kind: nodeWait, waitT: t.T, success: 6, fail: 7, permissiveOK: true},
		{kind: nodePress, target: hold2, next: 0},
		{kind: nodeTap, target: tap2, next: 0},
	}}
}

// compileSequence builds a linear chain of Tap(code) separated by fixed
// Delay gates, ignoring input entirely during playback (spec §3:
// "subsequent presses while already playing are ignored" — there being
// nothing in the graph that branches on input during a Delay is exactly
// how that's achieved).
func compileSequence(s SequenceSpec) *graph {
	if len(s.Codes) == 0 {
		return &graph{nodes: []node{{kind: nodeStart, next: 0}}}
	}
	nodes := []node{{kind: nodeStart, next: 1}}
	for i, code := range s.Codes {
		nodes = append(nodes, node{
			kind:   nodeTap,
			target: emitTarget{kind: emitKeyboard, chord: ChordSpec{code}},
			next:   len(nodes) + 1,
		})
		if i != len(s.Codes)-1 {
			nodes = append(nodes, node{
				kind: nodeDelay,
				waitT: s.delay(),
				next:  len(nodes) + 1,
			})
		}
	}
	// Last Tap's next must return to Start (index 0), not fall off the
	// end of the slice.
	nodes[len(nodes)-1].next = 0
	return &graph{nodes: nodes}
}
