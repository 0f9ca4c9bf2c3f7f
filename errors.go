package splitkb

import "errors"

var (
	// ErrUnknownLayer is returned by Keymap.Validate when an action
	// references a layer id that has no entry in the keymap.
	ErrUnknownLayer = errors.New("splitkb: keymap references unknown layer")

	// ErrBadPosition is returned by Keymap.Validate when a bound
	// position falls outside the declared matrix bounds.
	ErrBadPosition = errors.New("splitkb: position out of matrix bounds")

	// ErrNoBaseLayer is returned by Keymap.Validate when the keymap has
	// no "base" layer; every keymap must fall through to one.
	ErrNoBaseLayer = errors.New("splitkb: keymap has no base layer")

	// ErrLayerHoldNotOnBase is returned by Keymap.Validate when a
	// LayerHold action is bound outside the base layer; spec ties
	// layer switching to base-layer keys only.
	ErrLayerHoldNotOnBase = errors.New("splitkb: LayerHold action bound outside base layer")

	// ErrRebindWhileActive guards the invariant that a position's
	// bound action is only ever replaced while its FSM is idle.
	ErrRebindWhileActive = errors.New("splitkb: attempted to rebind a position whose FSM is not idle")
)
