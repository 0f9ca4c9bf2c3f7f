package splitkb

import "time"

// KB is a USB HID keyboard usage code. Modifiers (LCTRL..RGUI, codes
// 0xE0-0xE7) and ordinary keys share this space.
type KB byte

// CC is a consumer-control usage code (media keys).
type CC uint16

// MB is a mouse button bitmask (one bit per button).
type MB byte

// ChordSpec is a non-empty ordered list of keyboard usages pressed and
// released together. Press order follows declaration order; release
// order also follows declaration order (spec §3).
type ChordSpec []KB

// bytes converts a chord to the raw codes a hid.Keyboard expects. It
// allocates a new slice on every call.
func (c ChordSpec) bytes() []byte {
	out := make([]byte, len(c))
	for i, k := range c {
		out[i] = byte(k)
	}
	return out
}

// ActionKind tags which variant of Action is populated. Dispatch
// throughout the runtime is a switch on Kind, never an interface method
// call. Binding an Action does not allocate; each keyboard press or
// release copies its chord into a fresh slice (see ChordSpec.bytes).
type ActionKind uint8

const (
	// ActionNone marks an unmapped position.
	ActionNone ActionKind = iota
	ActionKey
	ActionConsumerKey
	ActionMouseKey
	ActionMouseMove
	ActionSequence
	ActionModTap
	ActionTapDance
	ActionLayerHold
)

// MouseMoveSpec parameterizes a MouseMove action (spec §3): held each
// tick it emits mouse.move(vx,vy,vw), accelerating vx/vy geometrically
// each tick while vw stays constant.
type MouseMoveSpec struct {
	DX, DY, DW int16
	AX, AY     float32
}

// SequenceSpec parameterizes the reserved Sequence action: a timed,
// key-by-key replay of codes, each tap separated by at least
// DelaySeconds.
type SequenceSpec struct {
	Codes        []KB
	DelaySeconds float32
}

func (s SequenceSpec) delay() time.Duration {
	return time.Duration(s.DelaySeconds * float32(time.Second))
}

// ModTapSpec parameterizes a mod-tap key: tapped, it emits Tap; held
// past T (or committed early by the permissive-hold arbiter), it holds
// Hold instead.
type ModTapSpec struct {
	Tap        KB
	Hold       ChordSpec
	T          time.Duration
	HoldIsTap  bool
	Permissive bool
}

// TapDanceSpec parameterizes a two-stage tap-dance key. Tap1/Tap2 are
// modeled as chords (not bare KB) to accommodate multi-key taps like
// the CTRL+ALT second tap in spec §8 scenario 4, even though spec §3's
// grammar writes "t1:KB, t2:KB" — a single-KB tap is just a one-element
// chord, so this is a strict generalization, not a deviation.
type TapDanceSpec struct {
	Tap1  ChordSpec
	Hold1 ChordSpec
	Tap2  ChordSpec
	Hold2 ChordSpec
	T     time.Duration
}

// Action is a tagged variant bound to a physical key position. Exactly
// one of the type-specific fields is meaningful, selected by Kind.
type Action struct {
	Kind ActionKind

	Chord    ChordSpec     // ActionKey
	Consumer CC            // ActionConsumerKey
	Mouse    MB            // ActionMouseKey
	Move     MouseMoveSpec // ActionMouseMove
	Sequence SequenceSpec  // ActionSequence
	ModTap   ModTapSpec    // ActionModTap
	TapDance TapDanceSpec  // ActionTapDance
	Layer    LayerID       // ActionLayerHold
}

// LayerID names a keymap layer. "base" is reserved for the layer every
// other layer falls through to.
type LayerID string

// Base is the required fallback layer name.
const Base LayerID = "base"
