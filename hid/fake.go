package hid

// Fake is an in-memory Keyboard+Consumer+Mouse that records every call
// instead of touching hardware, the way the teacher corpus's simulation
// screen records cell writes instead of painting a real terminal. It is
// the standard fixture for FSM, layer and permissive-hold tests.
type Fake struct {
	Presses   []byte // keyboard codes pressed, in call order (flattened)
	Releases  []byte
	Consumer  []uint16 // consumer codes pressed, in order
	ConsumerReleases int
	MousePress   []byte
	MouseRelease []byte
	Moves        []Move

	// RejectKeyboard, when set, makes Press/Release on the keyboard
	// endpoint fail without recording anything, simulating a
	// transient USB error or a six-key-rollover rejection (spec §7).
	RejectKeyboard bool
}

// Move records a single mouse.move(dx,dy,dw) call.
type Move struct{ DX, DY, DW int8 }

func NewFake() *Fake { return &Fake{} }

func (f *Fake) Press(codes ...byte) error {
	if f.RejectKeyboard {
		return errRejected
	}
	f.Presses = append(f.Presses, codes...)
	return nil
}

func (f *Fake) Release(codes ...byte) error {
	if f.RejectKeyboard {
		return errRejected
	}
	f.Releases = append(f.Releases, codes...)
	return nil
}

// The Consumer interface's Press/ReleaseAll are implemented via small
// adapter methods below so *Fake can satisfy Keyboard, Consumer and
// Mouse simultaneously without name collisions on "Press"/"Release".

type fakeConsumer struct{ f *Fake }

func (c fakeConsumer) Press(code uint16) error {
	c.f.Consumer = append(c.f.Consumer, code)
	return nil
}

func (c fakeConsumer) ReleaseAll() error {
	c.f.ConsumerReleases++
	return nil
}

// AsConsumer returns a Consumer view onto f.
func (f *Fake) AsConsumer() Consumer { return fakeConsumer{f} }

type fakeMouse struct{ f *Fake }

func (m fakeMouse) Press(button byte) error {
	m.f.MousePress = append(m.f.MousePress, button)
	return nil
}

func (m fakeMouse) Release(button byte) error {
	m.f.MouseRelease = append(m.f.MouseRelease, button)
	return nil
}

func (m fakeMouse) Move(dx, dy, dw int8) error {
	m.f.Moves = append(m.f.Moves, Move{dx, dy, dw})
	return nil
}

// AsMouse returns a Mouse view onto f.
func (f *Fake) AsMouse() Mouse { return fakeMouse{f} }

// Sinks bundles the three views into a ready-to-use Sinks value.
func (f *Fake) Sinks() Sinks {
	return Sinks{Keyboard: f, Consumer: f.AsConsumer(), Mouse: f.AsMouse()}
}

var errRejected = fakeError("hid: sink rejected report")

type fakeError string

func (e fakeError) Error() string { return string(e) }
