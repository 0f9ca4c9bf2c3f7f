//go:build linux

package main

import (
	"fmt"
	"os"
	"strconv"

	"splitkb"
)

// rowPins/colPins are the Linux sysfs GPIO numbers wired to the
// primary half's own matrix rows and columns. GPIO pin assignment is
// boilerplate hardware init (spec §1, explicitly out of scope); these
// are placeholders a board bring-up would replace.
var rowPins = [splitkb.Rows]int{17, 27, 22, 23}
var colPins = [splitkb.Cols]int{5, 6, 13, 19, 26, 21}

// sysfsGPIO drives rows and reads columns through the kernel's sysfs
// GPIO character interface (/sys/class/gpio). It is the one piece of
// genuinely board-specific boilerplate the engine depends on; nothing
// in spec.md's core asks for a particular GPIO transport, so this
// stays a thin, undecorated file I/O wrapper rather than importing a
// GPIO library no pack example pulls in.
type sysfsGPIO struct {
	rows [splitkb.Rows]*os.File
	cols [splitkb.Cols]*os.File
}

func newSysfsGPIO() *sysfsGPIO {
	g := &sysfsGPIO{}
	for i, pin := range rowPins {
		exportPin(pin)
		setDirection(pin, "out")
		f, err := os.OpenFile(valuePath(pin), os.O_RDWR, 0)
		if err != nil {
			panic(fmt.Sprintf("gpio: open row pin %d: %v", pin, err))
		}
		g.rows[i] = f
	}
	for i, pin := range colPins {
		exportPin(pin)
		setDirection(pin, "in")
		f, err := os.OpenFile(valuePath(pin), os.O_RDONLY, 0)
		if err != nil {
			panic(fmt.Sprintf("gpio: open col pin %d: %v", pin, err))
		}
		g.cols[i] = f
	}
	return g
}

func (g *sysfsGPIO) SetRow(row int, level bool) error {
	v := "0"
	if level {
		v = "1"
	}
	_, err := g.rows[row].WriteAt([]byte(v), 0)
	return err
}

func (g *sysfsGPIO) ReadCol(col int) (bool, error) {
	buf := make([]byte, 1)
	if _, err := g.cols[col].ReadAt(buf, 0); err != nil {
		return false, err
	}
	return buf[0] == '1', nil
}

func valuePath(pin int) string {
	return fmt.Sprintf("/sys/class/gpio/gpio%d/value", pin)
}

func exportPin(pin int) {
	f, err := os.OpenFile("/sys/class/gpio/export", os.O_WRONLY, 0)
	if err != nil {
		return // already exported, or unavailable in a test environment
	}
	defer f.Close()
	_, _ = f.WriteString(strconv.Itoa(pin))
}

func setDirection(pin int, dir string) {
	f, err := os.OpenFile(fmt.Sprintf("/sys/class/gpio/gpio%d/direction", pin), os.O_WRONLY, 0)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.WriteString(dir)
}
