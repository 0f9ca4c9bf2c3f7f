package config

import "splitkb"

// keyboardCodes names USB HID boot-keyboard usage ids the keymap file
// can reference by symbolic name, the same "name -> wire code" table
// idiom the HID gadget report writer the hid package is grounded on
// keeps for its own scancode mapping.
var keyboardCodes = map[string]splitkb.KB{
	"A": 0x04, "B": 0x05, "C": 0x06, "D": 0x07, "E": 0x08, "F": 0x09,
	"G": 0x0A, "H": 0x0B, "I": 0x0C, "J": 0x0D, "K": 0x0E, "L": 0x0F,
	"M": 0x10, "N": 0x11, "O": 0x12, "P": 0x13, "Q": 0x14, "R": 0x15,
	"S": 0x16, "T": 0x17, "U": 0x18, "V": 0x19, "W": 0x1A, "X": 0x1B,
	"Y": 0x1C, "Z": 0x1D,

	"1": 0x1E, "2": 0x1F, "3": 0x20, "4": 0x21, "5": 0x22,
	"6": 0x23, "7": 0x24, "8": 0x25, "9": 0x26, "0": 0x27,

	"ENTER": 0x28, "ESC": 0x29, "BACKSPACE": 0x2A, "TAB": 0x2B,
	"SPACE": 0x2C, "MINUS": 0x2D, "EQUAL": 0x2E,

	"LCTRL": 0xE0, "LSHIFT": 0xE1, "LALT": 0xE2, "LGUI": 0xE3,
	"RCTRL": 0xE4, "RSHIFT": 0xE5, "RALT": 0xE6, "RGUI": 0xE7,
}

// consumerCodes names a small set of USB HID consumer-control usages
// (media keys).
var consumerCodes = map[string]splitkb.CC{
	"VOLUME_UP": 0xE9, "VOLUME_DOWN": 0xEA, "MUTE": 0xE2,
	"PLAY_PAUSE": 0xCD, "NEXT_TRACK": 0xB5, "PREV_TRACK": 0xB6,
}

// mouseButtons names the mouse button bitmask positions.
var mouseButtons = map[string]splitkb.MB{
	"LEFT": 0x01, "RIGHT": 0x02, "MIDDLE": 0x04,
	"BACK": 0x08, "FORWARD": 0x10,
}
