// Command splitkbd is the primary half's main super-loop: acquire the
// local GPIO matrix, the remote serial link and the three USB HID
// sinks, then drive splitkb.Runtime one tick at a time forever (spec
// §5, §7).
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"splitkb"
	"splitkb/config"
	"splitkb/diagnostics"
	"splitkb/hid"
	"splitkb/link"
)

func main() {
	configPath := flag.String("config", "/etc/splitkbd/config.yaml", "path to runtime config YAML")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("splitkbd: %v", err)
	}

	keymap, err := config.LoadKeymap(cfg.KeymapPath)
	if err != nil {
		// Configuration errors halt startup with a clear message
		// (spec §7); they are never retried.
		log.Fatalf("splitkbd: %v", err)
	}

	serial := openSerialRetrying(cfg.SerialDevice)
	defer serial.Close()
	reader := link.NewFrameReader(serial, serial, splitkb.Rows, splitkb.Cols)

	gpio := newSysfsGPIO()
	scanner := splitkb.NewMatrixScanner(gpio, reader)

	kb, cc, mb := acquireSinksRetrying(cfg)
	defer kb.Close()
	defer cc.Close()
	defer mb.Close()
	sinks := hid.Sinks{Keyboard: kb, Consumer: cc, Mouse: mb}

	diag := diagnostics.New(os.Stderr, cfg.DiagnosticsIntervalTicks, func() int { return reader.BadCount })

	rt := splitkb.NewRuntime(keymap, sinks, diag, splitkb.RealClock{})

	ticker := time.NewTicker(cfg.TickInterval())
	defer ticker.Stop()

	for range ticker.C {
		runTick(rt, scanner, diag)
	}
}

// runTick runs one tick with panic recovery (spec §7): a panic anywhere
// in the FSM/layer/arbiter chain is caught, logged, and every sink is
// told to release everything before the next tick starts fresh.
func runTick(rt *splitkb.Runtime, scanner *splitkb.MatrixScanner, diag *diagnostics.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("splitkbd: recovered panic in tick: %v", r)
			rt.ReleaseAll()
		}
	}()
	down := scanner.Sample()
	rt.Tick(down)
	diag.Tick(time.Now())
}

func openSerialRetrying(device string) *link.Serial {
	for {
		s, err := link.OpenSerial(device)
		if err == nil {
			return s
		}
		log.Printf("splitkbd: opening serial link %s: %v, retrying", device, err)
		time.Sleep(100 * time.Millisecond)
	}
}

// acquireSinksRetrying retries opening the three HID gadget endpoints
// in a tight loop until USB enumeration succeeds (spec §7: "retry
// acquiring sinks in a tight loop until enumeration succeeds; no other
// work runs before then").
func acquireSinksRetrying(cfg *config.Config) (*hid.GadgetKeyboard, *hid.GadgetConsumer, *hid.GadgetMouse) {
	for {
		kb, err := hid.OpenGadgetKeyboard(cfg.KeyboardDevice)
		if err != nil {
			time.Sleep(50 * time.Millisecond)
			continue
		}
		cc, err := hid.OpenGadgetConsumer(cfg.ConsumerDevice)
		if err != nil {
			kb.Close()
			time.Sleep(50 * time.Millisecond)
			continue
		}
		mb, err := hid.OpenGadgetMouse(cfg.MouseDevice)
		if err != nil {
			kb.Close()
			cc.Close()
			time.Sleep(50 * time.Millisecond)
			continue
		}
		return kb, cc, mb
	}
}
