package link

import (
	"bufio"
	"io"
)

// FrameReader reads the freshest available frame from the secondary
// half on each tick. "Freshest" means: before reading, any bytes the
// serial driver has already buffered are dropped (via Flusher, if one
// is supplied) so a tick never processes a frame that arrived before
// the previous tick's read — spec's "use the freshest frame" contract,
// not "process every frame".
type FrameReader struct {
	r        *bufio.Reader
	flush    Flusher
	rows     int
	cols     int
	maxRetry int

	last     [][]bool // last successfully decoded matrix; held across bad frames
	BadCount int       // diagnostics: frames discarded for bad length/bytes
}

// Flusher discards whatever the underlying transport has already
// buffered, so the very next Read pulls genuinely new bytes. The serial
// backend implements this with a tcflush(3) ioctl; tests can pass nil.
type Flusher interface {
	Flush() error
}

// NewFrameReader wraps r (normally the open UART device) into a
// FrameReader for a rows x cols remote matrix.
func NewFrameReader(r io.Reader, flush Flusher, rows, cols int) *FrameReader {
	return &FrameReader{
		r:        bufio.NewReaderSize(r, FrameSize*4),
		flush:    flush,
		rows:     rows,
		cols:     cols,
		maxRetry: 8,
		last:     zeroMatrix(rows, cols),
	}
}

func zeroMatrix(rows, cols int) [][]bool {
	m := make([][]bool, rows)
	for r := range m {
		m[r] = make([]bool, cols)
	}
	return m
}

// Read returns the freshest valid matrix. If every candidate line read
// this call was malformed, it returns the last known-good matrix
// unchanged (so a burst of line noise degrades to "remote half froze"
// rather than "remote half released everything") and BadCount is
// incremented once per malformed line.
func (f *FrameReader) Read() [][]bool {
	if f.flush != nil {
		_ = f.flush.Flush()
		// Lines an earlier tick pulled into the bufio buffer are just as
		// stale as the kernel's queue.
		_, _ = f.r.Discard(f.r.Buffered())
	}
	for i := 0; i < f.maxRetry; i++ {
		line, err := f.r.ReadBytes('\n')
		if err != nil {
			// Nothing more buffered yet this tick; keep prior state.
			return f.last
		}
		m, derr := DecodeFrame(line, f.rows, f.cols)
		if derr != nil {
			f.BadCount++
			continue
		}
		f.last = m
		return m
	}
	return f.last
}
