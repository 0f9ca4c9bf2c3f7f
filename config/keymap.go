package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"splitkb"
)

// rawKeymapFile mirrors spec §6's keymap structure,
// `{layer_name: {side: {row: {col: action}}}}`, under a top-level
// `layers` key.
type rawKeymapFile struct {
	Layers map[string]map[string]map[int]map[int]rawAction `yaml:"layers"`
}

// rawAction is the YAML wire shape of an Action: a "kind" discriminator
// plus whichever of the variant-specific fields that kind uses. Unused
// fields are simply left zero by the decoder.
type rawAction struct {
	Kind string `yaml:"kind"`

	Chord    []string `yaml:"chord,omitempty"`
	Consumer string   `yaml:"consumer,omitempty"`
	Mouse    string   `yaml:"mouse,omitempty"`

	Move *rawMouseMove `yaml:"move,omitempty"`

	Sequence *rawSequence `yaml:"sequence,omitempty"`
	ModTap   *rawModTap   `yaml:"mod_tap,omitempty"`
	TapDance *rawTapDance `yaml:"tap_dance,omitempty"`

	Layer string `yaml:"layer,omitempty"`
}

type rawMouseMove struct {
	DX int16 `yaml:"dx"`
	DY int16 `yaml:"dy"`
	DW int16 `yaml:"dw"`
	AX float32 `yaml:"ax"`
	AY float32 `yaml:"ay"`
}

type rawSequence struct {
	Codes   []string `yaml:"codes"`
	DelayMs float32  `yaml:"delay_ms"`
}

type rawModTap struct {
	Tap        string   `yaml:"tap"`
	Hold       []string `yaml:"hold"`
	Ms         int      `yaml:"ms"`
	HoldIsTap  bool     `yaml:"hold_is_tap"`
	Permissive bool     `yaml:"permissive"`
}

type rawTapDance struct {
	Tap1  []string `yaml:"tap1"`
	Hold1 []string `yaml:"hold1"`
	Tap2  []string `yaml:"tap2"`
	Hold2 []string `yaml:"hold2"`
	Ms    int      `yaml:"ms"`
}

func chord(names []string) (splitkb.ChordSpec, error) {
	c := make(splitkb.ChordSpec, len(names))
	for i, n := range names {
		code, ok := keyboardCodes[n]
		if !ok {
			return nil, fmt.Errorf("config: unknown key code %q", n)
		}
		c[i] = code
	}
	return c, nil
}

func (r rawAction) toAction() (splitkb.Action, error) {
	switch r.Kind {
	case "", "none":
		return splitkb.Action{Kind: splitkb.ActionNone}, nil

	case "key":
		c, err := chord(r.Chord)
		if err != nil {
			return splitkb.Action{}, err
		}
		return splitkb.Action{Kind: splitkb.ActionKey, Chord: c}, nil

	case "consumer_key":
		code, ok := consumerCodes[r.Consumer]
		if !ok {
			return splitkb.Action{}, fmt.Errorf("config: unknown consumer code %q", r.Consumer)
		}
		return splitkb.Action{Kind: splitkb.ActionConsumerKey, Consumer: code}, nil

	case "mouse_key":
		b, ok := mouseButtons[r.Mouse]
		if !ok {
			return splitkb.Action{}, fmt.Errorf("config: unknown mouse button %q", r.Mouse)
		}
		return splitkb.Action{Kind: splitkb.ActionMouseKey, Mouse: b}, nil

	case "mouse_move":
		if r.Move == nil {
			return splitkb.Action{}, fmt.Errorf("config: mouse_move action missing move parameters")
		}
		return splitkb.Action{Kind: splitkb.ActionMouseMove, Move: splitkb.MouseMoveSpec{
			DX: r.Move.DX, DY: r.Move.DY, DW: r.Move.DW,
			AX: r.Move.AX, AY: r.Move.AY,
		}}, nil

	case "sequence":
		if r.Sequence == nil {
			return splitkb.Action{}, fmt.Errorf("config: sequence action missing sequence parameters")
		}
		codes := make([]splitkb.KB, len(r.Sequence.Codes))
		for i, n := range r.Sequence.Codes {
			code, ok := keyboardCodes[n]
			if !ok {
				return splitkb.Action{}, fmt.Errorf("config: unknown key code %q", n)
			}
			codes[i] = code
		}
		return splitkb.Action{Kind: splitkb.ActionSequence, Sequence: splitkb.SequenceSpec{
			Codes:        codes,
			DelaySeconds: r.Sequence.DelayMs / 1000,
		}}, nil

	case "mod_tap":
		if r.ModTap == nil {
			return splitkb.Action{}, fmt.Errorf("config: mod_tap action missing mod_tap parameters")
		}
		tap, ok := keyboardCodes[r.ModTap.Tap]
		if !ok {
			return splitkb.Action{}, fmt.Errorf("config: unknown key code %q", r.ModTap.Tap)
		}
		hold, err := chord(r.ModTap.Hold)
		if err != nil {
			return splitkb.Action{}, err
		}
		return splitkb.Action{Kind: splitkb.ActionModTap, ModTap: splitkb.ModTapSpec{
			Tap: tap, Hold: hold,
			T:          time.Duration(r.ModTap.Ms) * time.Millisecond,
			HoldIsTap:  r.ModTap.HoldIsTap,
			Permissive: r.ModTap.Permissive,
		}}, nil

	case "tap_dance":
		if r.TapDance == nil {
			return splitkb.Action{}, fmt.Errorf("config: tap_dance action missing tap_dance parameters")
		}
		t1, err := chord(r.TapDance.Tap1)
		if err != nil {
			return splitkb.Action{}, err
		}
		h1, err := chord(r.TapDance.Hold1)
		if err != nil {
			return splitkb.Action{}, err
		}
		t2, err := chord(r.TapDance.Tap2)
		if err != nil {
			return splitkb.Action{}, err
		}
		h2, err := chord(r.TapDance.Hold2)
		if err != nil {
			return splitkb.Action{}, err
		}
		return splitkb.Action{Kind: splitkb.ActionTapDance, TapDance: splitkb.TapDanceSpec{
			Tap1: t1, Hold1: h1, Tap2: t2, Hold2: h2,
			T: time.Duration(r.TapDance.Ms) * time.Millisecond,
		}}, nil

	case "layer_hold":
		if r.Layer == "" {
			return splitkb.Action{}, fmt.Errorf("config: layer_hold action missing layer name")
		}
		return splitkb.Action{Kind: splitkb.ActionLayerHold, Layer: splitkb.LayerID(r.Layer)}, nil

	default:
		return splitkb.Action{}, fmt.Errorf("config: unknown action kind %q", r.Kind)
	}
}

func sideFromString(s string) (splitkb.Side, error) {
	switch s {
	case "left":
		return splitkb.Left, nil
	case "right":
		return splitkb.Right, nil
	default:
		return 0, fmt.Errorf("config: unknown side %q, want \"left\" or \"right\"", s)
	}
}

// LoadKeymap reads, validates and compiles a keymap YAML file (spec §6's
// `{layer_name: {side: {row: {col: action}}}}` structure). The returned
// Keymap is ready to hand to splitkb.NewRuntime.
func LoadKeymap(path string) (*splitkb.Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading keymap %s: %w", path, err)
	}
	var raw rawKeymapFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: parsing keymap %s: %w", path, err)
	}

	layers := make(map[splitkb.LayerID]map[splitkb.Position]splitkb.Action, len(raw.Layers))
	for layerName, sides := range raw.Layers {
		positions := make(map[splitkb.Position]splitkb.Action)
		for sideName, rows := range sides {
			side, err := sideFromString(sideName)
			if err != nil {
				return nil, err
			}
			for row, cols := range rows {
				for col, ra := range cols {
					a, err := ra.toAction()
					if err != nil {
						return nil, fmt.Errorf("config: layer %q %s/%d/%d: %w", layerName, sideName, row, col, err)
					}
					positions[splitkb.Position{Side: side, Row: row, Col: col}] = a
				}
			}
		}
		layers[splitkb.LayerID(layerName)] = positions
	}

	keymap := splitkb.NewKeymap(layers)
	if err := keymap.Validate(); err != nil {
		return nil, err
	}
	keymap.Compile()
	return keymap, nil
}
