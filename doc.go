// Package splitkb implements the input-processing engine that runs on the
// primary (USB-attached) half of a two-piece mechanical keyboard.
//
// Each tick it samples the local switch matrix and the latest frame from
// the secondary half's serial link, resolves which layer is active, lets
// the permissive-hold arbiter commit ambiguous mod-tap/tap-dance keys
// early, and then drives one finite-state machine per physical position,
// emitting presses and releases to the keyboard, consumer-control and
// mouse HID sinks.
//
// The package has no notion of GPIO pins, UART baud rates or USB report
// descriptors: those live in the link and hid subpackages (and in
// cmd/splitkbd, which wires the concrete hardware backends together) so
// that the state-machine logic here can be driven and tested with plain
// Go values.
package splitkb
