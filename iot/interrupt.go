package iot

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/pdp8/cpu"
)

// INTERRUPT_CONTROL_DEVICE is the device code of the interrupt control.
const INTERRUPT_CONTROL_DEVICE = 0o00

// Interrupt control functions.
const (
	INTERRUPT_IOFF = uint16(0) // Disable interrupts.
	INTERRUPT_ION  = uint16(1) // Enable interrupts.
	INTERRUPT_SKON = uint16(2) // Skip if interrupts are enabled.
)

// InterruptControl implements the processor's own interrupt enable
// device. Functions 3 through 7 are ignored.
type InterruptControl struct {
	Verbose bool // If set, log each operation.
}

var _ cpu.Device = (*InterruptControl)(nil)

// Attach binds the interrupt control to its device code.
func (ic *InterruptControl) Attach(cp *cpu.Cpu) (err error) {
	err = cp.SetDevice(INTERRUPT_CONTROL_DEVICE, ic)
	return
}

// Detach clears the interrupt control's device code, if still bound to it.
func (ic *InterruptControl) Detach(cp *cpu.Cpu) (err error) {
	dev, err := cp.GetDevice(INTERRUPT_CONTROL_DEVICE)
	if err != nil {
		return
	}
	if owner, ok := dev.(*InterruptControl); !ok || owner != ic {
		return
	}

	err = cp.SetDevice(INTERRUPT_CONTROL_DEVICE, nil)
	return
}

// Defines returns the assembler mnemonics for the interrupt control.
func (ic *InterruptControl) Defines() iter.Seq2[string, string] {
	define := func(function uint16) string {
		return fmt.Sprintf("%04o", cpu.MakeCodeIot(INTERRUPT_CONTROL_DEVICE, function).Word())
	}
	return maps.All(map[string]string{
		"IOFF": define(INTERRUPT_IOFF),
		"ION":  define(INTERRUPT_ION),
		"SKON": define(INTERRUPT_SKON),
	})
}

// Iot executes an interrupt control function.
func (ic *InterruptControl) Iot(cp *cpu.Cpu, code cpu.Code) {
	switch code.Function() {
	case INTERRUPT_IOFF:
		cp.SetInterruptEnable(false)
	case INTERRUPT_ION:
		cp.SetInterruptEnable(true)
	case INTERRUPT_SKON:
		if cp.InterruptEnabled() {
			cp.RequestSkip()
		}
	default:
		return
	}

	if ic.Verbose {
		log.Printf("iot: interrupt control: %v", code)
	}
}
