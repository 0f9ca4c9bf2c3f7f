//go:build linux

package hid

import (
	"fmt"
	"os"
)

// GadgetKeyboard writes fixed-width boot-keyboard reports to a Linux USB
// gadget HID character device (/dev/hidg0 and friends, as configured by
// configfs on the primary's gadget port). The 8-byte report layout
// (modifier byte, reserved byte, six keycodes) is the standard USB HID
// boot-keyboard report; assembling it is the one piece of "report
// format" this package can't avoid owning, since nothing upstream of it
// is a HID descriptor concern.
type GadgetKeyboard struct {
	f *os.File

	mod  byte
	held []byte // non-modifier codes currently down, across every position
}

// OpenGadgetKeyboard opens the gadget character device at path. hidg
// devices are plain character devices (configfs already fixed their
// report length and polling interval), so unlike the serial link there
// is no termios mode to set here.
func OpenGadgetKeyboard(path string) (*GadgetKeyboard, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("hid: open %s: %w", path, err)
	}
	return &GadgetKeyboard{f: f}, nil
}

func (k *GadgetKeyboard) Close() error { return k.f.Close() }

// Press adds codes to the set currently held across every position and
// writes the full report — the boot-keyboard report format has room for
// only one chord's worth of codes at a time, so every position's FSM
// shares this one accumulated set rather than each overwriting it.
func (k *GadgetKeyboard) Press(codes ...byte) error {
	for _, c := range codes {
		if isModifier(c) {
			k.mod |= modifierBit(c)
			continue
		}
		if k.indexOf(c) < 0 {
			if len(k.held) >= 6 {
				return fmt.Errorf("hid: rollover: more than 6 keys held")
			}
			k.held = append(k.held, c)
		}
	}
	return k.flush()
}

func (k *GadgetKeyboard) Release(codes ...byte) error {
	for _, c := range codes {
		if isModifier(c) {
			k.mod &^= modifierBit(c)
			continue
		}
		if i := k.indexOf(c); i >= 0 {
			k.held = append(k.held[:i], k.held[i+1:]...)
		}
	}
	return k.flush()
}

func (k *GadgetKeyboard) indexOf(c byte) int {
	for i, h := range k.held {
		if h == c {
			return i
		}
	}
	return -1
}

func (k *GadgetKeyboard) flush() error {
	report := make([]byte, 8)
	report[0] = k.mod
	copy(report[2:], k.held)
	_, err := k.f.Write(report)
	return err
}

func isModifier(code byte) bool { return code >= 0xE0 && code <= 0xE7 }
func modifierBit(code byte) byte {
	return 1 << (code - 0xE0)
}

// GadgetConsumer writes 2-byte consumer-control reports.
type GadgetConsumer struct{ f *os.File }

func OpenGadgetConsumer(path string) (*GadgetConsumer, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("hid: open %s: %w", path, err)
	}
	return &GadgetConsumer{f: f}, nil
}

func (c *GadgetConsumer) Close() error { return c.f.Close() }

func (c *GadgetConsumer) Press(code uint16) error {
	_, err := c.f.Write([]byte{byte(code), byte(code >> 8)})
	return err
}

func (c *GadgetConsumer) ReleaseAll() error {
	_, err := c.f.Write([]byte{0, 0})
	return err
}

// GadgetMouse writes 4-byte relative mouse reports (buttons, x, y, wheel).
type GadgetMouse struct {
	f       *os.File
	buttons byte
}

func OpenGadgetMouse(path string) (*GadgetMouse, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("hid: open %s: %w", path, err)
	}
	return &GadgetMouse{f: f}, nil
}

func (m *GadgetMouse) Close() error { return m.f.Close() }

func (m *GadgetMouse) Press(button byte) error {
	m.buttons |= button
	return m.send(0, 0, 0)
}

func (m *GadgetMouse) Release(button byte) error {
	m.buttons &^= button
	return m.send(0, 0, 0)
}

func (m *GadgetMouse) Move(dx, dy, dw int8) error {
	return m.send(dx, dy, dw)
}

func (m *GadgetMouse) send(dx, dy, dw int8) error {
	_, err := m.f.Write([]byte{m.buttons, byte(dx), byte(dy), byte(dw)})
	return err
}
