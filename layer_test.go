package splitkb

import "testing"

func TestKeymapValidateRequiresBase(t *testing.T) {
	k := NewKeymap(map[LayerID]map[Position]Action{
		"numbers": {},
	})
	if err := k.Validate(); err != ErrNoBaseLayer {
		t.Fatalf("Validate() = %v, want ErrNoBaseLayer", err)
	}
}

func TestKeymapValidateRejectsLayerHoldOutsideBase(t *testing.T) {
	k := NewKeymap(map[LayerID]map[Position]Action{
		Base: {},
		"numbers": {
			{Left, 0, 0}: {Kind: ActionLayerHold, Layer: Base},
		},
	})
	if err := k.Validate(); err == nil {
		t.Fatalf("Validate() = nil, want ErrLayerHoldNotOnBase")
	}
}

func TestKeymapValidateRejectsUnknownLayerReference(t *testing.T) {
	k := NewKeymap(map[LayerID]map[Position]Action{
		Base: {
			{Left, 0, 0}: {Kind: ActionLayerHold, Layer: "ghost"},
		},
	})
	if err := k.Validate(); err == nil {
		t.Fatalf("Validate() = nil, want ErrUnknownLayer")
	}
}

func TestKeymapValidateRejectsBadPosition(t *testing.T) {
	k := NewKeymap(map[LayerID]map[Position]Action{
		Base: {
			{Left, Rows, 0}: {Kind: ActionKey, Chord: ChordSpec{codeA}},
		},
	})
	if err := k.Validate(); err == nil {
		t.Fatalf("Validate() = nil, want ErrBadPosition")
	}
}

func TestActiveLayerTieBreakIsTraversalOrder(t *testing.T) {
	// Right/0/0 is traversed after every Left position, so when both
	// layer-hold keys are held at once, "numbers" (held on the later
	// Right-side position) wins.
	first := Position{Left, 0, 0}
	second := Position{Right, 0, 0}
	base := map[Position]Action{
		first:  {Kind: ActionLayerHold, Layer: "symbols"},
		second: {Kind: ActionLayerHold, Layer: "numbers"},
	}
	k := NewKeymap(map[LayerID]map[Position]Action{
		Base:      base,
		"symbols": {},
		"numbers": {},
	})
	if err := k.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	k.Compile()

	var down Bitmap
	down.Set(first, true)
	down.Set(second, true)

	if got := k.ActiveLayer(&down); got != "numbers" {
		t.Fatalf("ActiveLayer = %q, want %q (later in traversal order wins)", got, "numbers")
	}
}

func TestResolveFallsThroughToBase(t *testing.T) {
	p := Position{Left, 0, 0}
	unmapped := Position{Left, 0, 1}
	k := NewKeymap(map[LayerID]map[Position]Action{
		Base: {p: {Kind: ActionKey, Chord: ChordSpec{codeA}}},
		"fn":  {},
	})
	if err := k.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	k.Compile()

	got := k.Resolve("fn", p)
	if got.action.Kind != ActionKey {
		t.Fatalf("Resolve(fn, p) fell through incorrectly: %+v", got.action)
	}
	if k.Resolve("fn", unmapped).action.Kind != ActionNone {
		t.Fatalf("unmapped position should resolve to ActionNone")
	}
}
