// Package diagnostics implements the textual, periodic summary line
// spec §6 asks for ("a log line every N ticks reporting mean tick
// period and bad-frame count"), plus the dropped-HID-emit counter
// original_source keeps alongside it.
package diagnostics

import (
	"io"
	"log"
	"time"
)

// Logger accumulates per-tick timing and error counts and periodically
// flushes a one-line summary via a standard *log.Logger, the same
// logging idiom every full repo in the corpus converges on.
type Logger struct {
	log       *log.Logger
	interval  int
	badFrames func() int

	ticks        int
	sumTickDur   time.Duration
	lastTick     time.Time
	haveLastTick bool
	droppedEmits int
}

// New builds a Logger writing to out, emitting a summary every
// interval ticks. badFrames is consulted at each summary to report the
// link's bad-frame count (typically link.FrameReader.BadCount).
func New(out io.Writer, interval int, badFrames func() int) *Logger {
	if interval <= 0 {
		interval = 5000
	}
	return &Logger{
		log:       log.New(out, "splitkbd: ", log.LstdFlags),
		interval:  interval,
		badFrames: badFrames,
	}
}

// Tick records one tick's wall-clock timestamp and, every interval
// ticks, emits the summary line.
func (l *Logger) Tick(now time.Time) {
	if l.haveLastTick {
		l.sumTickDur += now.Sub(l.lastTick)
	}
	l.lastTick = now
	l.haveLastTick = true
	l.ticks++

	if l.ticks < l.interval {
		return
	}
	l.flush()
}

func (l *Logger) flush() {
	mean := time.Duration(0)
	if l.ticks > 1 {
		mean = l.sumTickDur / time.Duration(l.ticks-1)
	}
	bad := 0
	if l.badFrames != nil {
		bad = l.badFrames()
	}
	l.log.Printf("ticks=%d mean_period=%s bad_frames=%d dropped_emits=%d",
		l.ticks, mean, bad, l.droppedEmits)
	l.ticks = 0
	l.sumTickDur = 0
	l.haveLastTick = false
}

// HIDError implements splitkb.ErrorSink: a sink rejection is logged
// once and counted, never retried and never rolled back into FSM state
// (spec §7).
func (l *Logger) HIDError(err error) {
	l.droppedEmits++
	l.log.Printf("hid sink error (dropped): %v", err)
}
