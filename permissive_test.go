package splitkb

import "testing"

func keymapWithModTapAt(t *testing.T, p Position) *Keymap {
	t.Helper()
	k := NewKeymap(map[LayerID]map[Position]Action{
		Base: {
			p: {Kind: ActionModTap, ModTap: ModTapSpec{Tap: codeA, Hold: ChordSpec{codeShift1}, Permissive: true}},
		},
	})
	if err := k.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	k.Compile()
	return k
}

func TestPermissiveHoldIgnoresNonCandidateActions(t *testing.T) {
	p := Position{Left, 0, 0}
	other := Position{Left, 0, 1}
	k := NewKeymap(map[LayerID]map[Position]Action{
		Base: {
			p:     {Kind: ActionKey, Chord: ChordSpec{codeA}},
			other: {Kind: ActionKey, Chord: ChordSpec{codeB}},
		},
	})
	if err := k.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	k.Compile()

	var flips FlipSet
	flips.Add(other)
	if permissiveHold(k, p, &flips) {
		t.Fatalf("permissiveHold should only fire for ModTap/TapDance base actions")
	}
}

func TestPermissiveHoldSameSideExcludesSelf(t *testing.T) {
	p := Position{Left, 0, 0}
	k := keymapWithModTapAt(t, p)

	var flips FlipSet
	flips.Add(p)
	if permissiveHold(k, p, &flips) {
		t.Fatalf("a position's own flip should not trigger its own permissive hold")
	}
}

func TestPermissiveHoldSameSideOtherPosition(t *testing.T) {
	p := Position{Left, 0, 0}
	other := Position{Left, 0, 1}
	k := keymapWithModTapAt(t, p)

	var flips FlipSet
	flips.Add(other)
	if !permissiveHold(k, p, &flips) {
		t.Fatalf("a same-side flip on another position should trigger permissive hold")
	}
}

func TestPermissiveHoldOtherSide(t *testing.T) {
	p := Position{Left, 0, 0}
	remote := Position{Right, 0, 0}
	k := keymapWithModTapAt(t, p)

	var flips FlipSet
	flips.Add(remote)
	if !permissiveHold(k, p, &flips) {
		t.Fatalf("a flip on the other side should trigger permissive hold")
	}
}

func TestPermissiveHoldJudgesBaseBindingOnly(t *testing.T) {
	// q's base action is ModTap, but on the active "fn" layer it's
	// currently resolved to a plain Key. Permissive hold must still be
	// judged against the base binding (spec §4.4).
	p := Position{Left, 0, 0}
	other := Position{Left, 0, 1}
	k := NewKeymap(map[LayerID]map[Position]Action{
		Base: {
			p: {Kind: ActionModTap, ModTap: ModTapSpec{Tap: codeA, Hold: ChordSpec{codeShift1}, Permissive: true}},
		},
		"fn": {
			p: {Kind: ActionKey, Chord: ChordSpec{codeB}},
		},
	})
	if err := k.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	k.Compile()

	var flips FlipSet
	flips.Add(other)
	if !permissiveHold(k, p, &flips) {
		t.Fatalf("permissiveHold must consult the base binding even when a different layer is active")
	}
}
