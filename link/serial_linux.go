//go:build linux

package link

import (
	"fmt"

	"github.com/pkg/term"
	"golang.org/x/sys/unix"
)

// Serial opens and configures the secondary half's UART device node:
// 115200 baud, 8 data bits, no parity, one stop bit, raw (non-canonical)
// mode, matching spec §6. It implements Flusher via tcflush(3), the
// idiom the teacher repo applies to its own tty before every scan so
// that a frame read never returns data queued before the caller asked
// for it.
type Serial struct {
	t *term.Term
}

// OpenSerial opens dev (e.g. "/dev/ttyACM1") and puts it into the wire
// mode the secondary half's firmware transmits at.
func OpenSerial(dev string) (*Serial, error) {
	t, err := term.Open(dev, term.Speed(115200), term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("link: open %s: %w", dev, err)
	}
	return &Serial{t: t}, nil
}

func (s *Serial) Read(p []byte) (int, error) {
	return s.t.Read(p)
}

// Flush discards any bytes the kernel's UART driver has already
// buffered for this fd, implementing the Flusher interface FrameReader
// expects.
func (s *Serial) Flush() error {
	return unix.IoctlTcflush(int(s.t.Fd()), unix.TCIFLUSH)
}

func (s *Serial) Close() error {
	return s.t.Close()
}
