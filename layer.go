package splitkb

import "fmt"

// compiledAction pairs an authored Action with its one-time-compiled FSM
// graph. Keymap.Compile builds these once at startup — the same "do the
// expensive lookup-table construction once in Init, never per event"
// idiom the teacher applies to its own prepareKeys() — so resolving a
// position's action on the hot per-tick path is a couple of map reads
// and a pointer copy, never an allocation.
type compiledAction struct {
	action Action
	graph  *graph
}

// none is the shared compiledAction for an unmapped position: its graph
// never leaves Start, so it is safe to share a single instance across
// every unmapped position rather than compiling one per position.
var none = &compiledAction{action: Action{Kind: ActionNone}, graph: compile(Action{Kind: ActionNone})}

// Keymap is the static `layer_id -> Position -> Action` table from spec
// §3/§6. Every layer other than Base falls through to Base for
// positions it doesn't bind.
type Keymap struct {
	Layers map[LayerID]map[Position]Action

	compiled map[LayerID]map[Position]*compiledAction
}

// NewKeymap wraps a raw layer table. Call Validate then Compile before
// handing it to a Runtime.
func NewKeymap(layers map[LayerID]map[Position]Action) *Keymap {
	return &Keymap{Layers: layers}
}

// Validate checks the configuration-error class of mistakes spec §7
// says must halt startup with a clear message: an unknown base layer,
// a LayerHold naming a layer that doesn't exist, a LayerHold bound
// outside base, or a position outside the declared matrix bounds.
func (k *Keymap) Validate() error {
	if _, ok := k.Layers[Base]; !ok {
		return ErrNoBaseLayer
	}
	for layer, positions := range k.Layers {
		for p, a := range positions {
			if !p.Valid() {
				return fmt.Errorf("%w: %+v in layer %q", ErrBadPosition, p, layer)
			}
			if a.Kind == ActionLayerHold {
				if layer != Base {
					return fmt.Errorf("%w: %+v in layer %q", ErrLayerHoldNotOnBase, p, layer)
				}
				if _, ok := k.Layers[a.Layer]; !ok {
					return fmt.Errorf("%w: %q referenced by %+v", ErrUnknownLayer, a.Layer, p)
				}
			}
		}
	}
	return nil
}

// Compile builds every layer's compiledAction table once. Must run
// after Validate succeeds and before the keymap is used by a Runtime.
func (k *Keymap) Compile() {
	k.compiled = make(map[LayerID]map[Position]*compiledAction, len(k.Layers))
	for layer, positions := range k.Layers {
		m := make(map[Position]*compiledAction, len(positions))
		for p, a := range positions {
			m[p] = &compiledAction{action: a, graph: compile(a)}
		}
		k.compiled[layer] = m
	}
}

// Resolve returns the compiled action bound to p on layer, falling
// through to Base when layer doesn't bind p, and finally to a shared
// "unmapped" compiledAction when neither does.
func (k *Keymap) Resolve(layer LayerID, p Position) *compiledAction {
	if m, ok := k.compiled[layer]; ok {
		if a, ok := m[p]; ok {
			return a
		}
	}
	if layer != Base {
		if m, ok := k.compiled[Base]; ok {
			if a, ok := m[p]; ok {
				return a
			}
		}
	}
	return none
}

// baseAction returns the raw, uncompiled Base-layer action bound to p,
// used by both layer selection (to find LayerHold keys) and the
// permissive-hold arbiter (which always judges against the base
// binding, spec §4.4).
func (k *Keymap) baseAction(p Position) (Action, bool) {
	m, ok := k.Layers[Base]
	if !ok {
		return Action{}, false
	}
	a, ok := m[p]
	return a, ok
}

// ActiveLayer implements spec §4.3's layer-selection rule: scan every
// base-layer LayerHold position, in {Left row-major, then Right
// row-major} traversal order, and keep overwriting the active layer for
// every one found currently held. Ties resolve to "later in traversal
// order wins" — spec §9's open question, pinned by following the
// original firmware's flat overwrite-a-single-variable scan loop.
func (k *Keymap) ActiveLayer(down *Bitmap) LayerID {
	active := Base
	forEachPosition(func(p Position) {
		a, ok := k.baseAction(p)
		if ok && a.Kind == ActionLayerHold && down.Get(p) {
			active = a.Layer
		}
	})
	return active
}
