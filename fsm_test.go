package splitkb

import (
	"testing"
	"time"

	"splitkb/hid"
)

func TestCompileSimpleKeyRoundTrip(t *testing.T) {
	a := Action{Kind: ActionKey, Chord: ChordSpec{codeA, codeB}}
	g := compile(a)
	fake := hid.NewFake()
	clock := NewVirtualClock()
	var f fsmState

	f.drive(g, true, clock.Now(), false, fake.Sinks(), nil)
	if len(fake.Presses) != 2 || fake.Presses[0] != byte(codeA) || fake.Presses[1] != byte(codeB) {
		t.Fatalf("Presses = %v, want [A B] in declared order", fake.Presses)
	}

	clock.Advance(time.Millisecond)
	f.drive(g, false, clock.Now(), false, fake.Sinks(), nil)
	if len(fake.Releases) != 2 || fake.Releases[0] != byte(codeA) || fake.Releases[1] != byte(codeB) {
		t.Fatalf("Releases = %v, want [A B] in declared order", fake.Releases)
	}
	if !f.atStart() {
		t.Fatalf("fsm did not return to Start after release")
	}
}

func TestModTapReleaseBeforeTimeoutTaps(t *testing.T) {
	a := Action{Kind: ActionModTap, ModTap: ModTapSpec{
		Tap: codeA, Hold: ChordSpec{codeShift1}, T: 200 * time.Millisecond,
	}}
	g := compile(a)
	fake := hid.NewFake()
	clock := NewVirtualClock()
	var f fsmState

	f.drive(g, true, clock.Now(), false, fake.Sinks(), nil)
	clock.Advance(50 * time.Millisecond)
	f.drive(g, false, clock.Now(), false, fake.Sinks(), nil)

	if len(fake.Presses) != 1 || fake.Presses[0] != byte(codeA) {
		t.Fatalf("Presses = %v, want [A]", fake.Presses)
	}
	if len(fake.Releases) != 1 || fake.Releases[0] != byte(codeA) {
		t.Fatalf("Releases = %v, want [A]", fake.Releases)
	}
	if !f.atStart() {
		t.Fatalf("fsm did not settle back at Start")
	}
}

func TestConsumerKeyReleaseIsReleaseAll(t *testing.T) {
	g := compileSimple(emitTarget{kind: emitConsumer, consumer: CC(0xB5)})
	fake := hid.NewFake()
	clock := NewVirtualClock()
	var f fsmState

	f.drive(g, true, clock.Now(), false, fake.Sinks(), nil)
	f.drive(g, false, clock.Now(), false, fake.Sinks(), nil)

	if len(fake.Consumer) != 1 || fake.Consumer[0] != 0xB5 {
		t.Fatalf("Consumer = %v, want [0xB5]", fake.Consumer)
	}
	if fake.ConsumerReleases != 1 {
		t.Fatalf("ConsumerReleases = %d, want 1 (release-all, not a partial release)", fake.ConsumerReleases)
	}
}

func TestHIDErrorReportedNotRolledBack(t *testing.T) {
	a := Action{Kind: ActionKey, Chord: ChordSpec{codeA}}
	g := compile(a)
	fake := hid.NewFake()
	fake.RejectKeyboard = true
	clock := NewVirtualClock()
	var f fsmState

	var reported []error
	sink := errorCollector(func(err error) { reported = append(reported, err) })

	f.drive(g, true, clock.Now(), false, fake.Sinks(), sink)
	if len(reported) != 1 {
		t.Fatalf("expected one reported HID error, got %d", len(reported))
	}
	// Press was rejected; the FSM still advanced to Press as if it
	// succeeded, per spec §4.2's failure semantics.
	if f.atStart() {
		t.Fatalf("fsm should have advanced past Start despite the sink rejection")
	}
}

type errorCollector func(error)

func (e errorCollector) HIDError(err error) { e(err) }

func sequenceAction() Action {
	return Action{Kind: ActionSequence, Sequence: SequenceSpec{
		Codes:        []KB{codeA, codeB},
		DelaySeconds: 0.01,
	}}
}

func TestSequencePlaysOnTap(t *testing.T) {
	g := compile(sequenceAction())
	fake := hid.NewFake()
	clock := NewVirtualClock()
	var f fsmState

	f.drive(g, true, clock.Now(), false, fake.Sinks(), nil)
	clock.Advance(time.Millisecond)
	f.drive(g, false, clock.Now(), false, fake.Sinks(), nil)

	// Playback ignores input entirely; releasing mid-sequence must not
	// cut it short. Advance past the inter-tap delay and keep driving
	// with the key already up.
	for i := 0; i < 5 && !f.atStart(); i++ {
		clock.Advance(10 * time.Millisecond)
		f.drive(g, false, clock.Now(), false, fake.Sinks(), nil)
	}

	if !f.atStart() {
		t.Fatalf("sequence did not return to Start after playback")
	}
	if len(fake.Presses) != 2 || fake.Presses[0] != byte(codeA) || fake.Presses[1] != byte(codeB) {
		t.Fatalf("Presses = %v, want [A B] in declared order", fake.Presses)
	}
	if len(fake.Releases) != 2 || fake.Releases[0] != byte(codeA) || fake.Releases[1] != byte(codeB) {
		t.Fatalf("Releases = %v, want [A B] in declared order", fake.Releases)
	}
}

func TestSequenceHeldThroughCompletionPlaysOnce(t *testing.T) {
	g := compile(sequenceAction())
	fake := hid.NewFake()
	clock := NewVirtualClock()
	var f fsmState

	f.drive(g, true, clock.Now(), false, fake.Sinks(), nil)
	for i := 0; i < 5 && !f.atStart(); i++ {
		clock.Advance(10 * time.Millisecond)
		f.drive(g, true, clock.Now(), false, fake.Sinks(), nil)
	}
	if !f.atStart() {
		t.Fatalf("sequence did not finish playback while the key stayed held")
	}
	if len(fake.Presses) != 2 {
		t.Fatalf("Presses = %v, want exactly one playback's worth", fake.Presses)
	}

	// Key is still down; further ticks must not replay the sequence
	// (spec §3: one press, one replay).
	for i := 0; i < 10; i++ {
		clock.Advance(10 * time.Millisecond)
		f.drive(g, true, clock.Now(), false, fake.Sinks(), nil)
	}
	if len(fake.Presses) != 2 {
		t.Fatalf("Presses = %v, want no replay while the key is still held", fake.Presses)
	}
	if !f.atStart() {
		t.Fatalf("fsm should stay parked at Start while the key remains held")
	}

	clock.Advance(time.Millisecond)
	f.drive(g, false, clock.Now(), false, fake.Sinks(), nil)
	clock.Advance(time.Millisecond)
	f.drive(g, true, clock.Now(), false, fake.Sinks(), nil)
	for i := 0; i < 5 && !f.atStart(); i++ {
		clock.Advance(10 * time.Millisecond)
		f.drive(g, true, clock.Now(), false, fake.Sinks(), nil)
	}
	if len(fake.Presses) != 4 {
		t.Fatalf("Presses = %v, want a second playback after a genuine release and re-press", fake.Presses)
	}
}
