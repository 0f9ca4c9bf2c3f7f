// Package hid defines the three USB HID endpoints the splitkb runtime
// drives (boot keyboard, consumer control, mouse) as plain Go
// interfaces, and provides a Linux USB-gadget backed implementation plus
// an in-memory fake for tests.
//
// Report assembly and the gadget's HID descriptors are intentionally not
// this package's concern (spec treats them as boilerplate); Keyboard,
// Consumer and Mouse only need to accept usage codes and turn them into
// whatever bytes the chosen transport expects.
package hid

// Keyboard is the boot-keyboard HID endpoint. Codes are raw USB HID
// keyboard usage ids; modifiers (LCTRL, LSHIFT, ...) share the same
// space as ordinary keys.
type Keyboard interface {
	// Press adds codes to the set of currently-held keys. It may
	// return an error if more than six non-modifier keys would be
	// held at once (six-key-rollover limit).
	Press(codes ...byte) error
	// Release removes codes from the set of currently-held keys.
	Release(codes ...byte) error
}

// Consumer is the consumer-control HID endpoint (media keys). At most
// one usage is ever pressed at a time; there is no partial release, only
// ReleaseAll.
type Consumer interface {
	Press(code uint16) error
	ReleaseAll() error
}

// Mouse is the mouse HID endpoint.
type Mouse interface {
	Press(button byte) error
	Release(button byte) error
	// Move reports a relative displacement. dx, dy and dw are clamped
	// to the signed 8-bit range by the caller before this is invoked.
	Move(dx, dy, dw int8) error
}

// Sinks bundles the three endpoints the runtime needs each tick.
type Sinks struct {
	Keyboard Keyboard
	Consumer Consumer
	Mouse    Mouse
}

// ReleaseAll asks every sink to drop whatever it currently holds. It is
// used after a recovered panic in the main loop, where the FSMs are
// reset to Start and must not leave the host believing any key is
// still down.
func (s Sinks) ReleaseAll() {
	if s.Keyboard != nil {
		_ = s.Keyboard.Release(allKeyboardCodes()...)
	}
	if s.Consumer != nil {
		_ = s.Consumer.ReleaseAll()
	}
	if s.Mouse != nil {
		for _, b := range allMouseButtons() {
			_ = s.Mouse.Release(b)
		}
	}
}

// allKeyboardCodes enumerates every USB HID keyboard usage id so a
// blanket release can be issued without the caller needing to track
// which ones might be down.
func allKeyboardCodes() []byte {
	codes := make([]byte, 256)
	for i := range codes {
		codes[i] = byte(i)
	}
	return codes
}

func allMouseButtons() []byte {
	// Eight buttons, one bit each, matches the mouse button bitmask
	// width used by MB actions.
	return []byte{1, 2, 4, 8, 16, 32, 64, 128}
}
