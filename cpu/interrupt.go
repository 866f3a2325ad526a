package cpu

import (
	"log"
)

// The machine has a single interrupt line. Requests are counted, not
// attributed: the service routine at ADDR_ISR must poll each device for
// its own flag, service it, and re-enable interrupts before returning
// through ADDR_SAVED_PC.

// RequestInterrupt raises the interrupt line on behalf of a device.
func (cpu *Cpu) RequestInterrupt(device int) (err error) {
	if !validDevice(device) {
		err = ErrDeviceCode
		return
	}

	cpu.interruptPending++

	if cpu.Verbose {
		log.Printf("cpu: interrupt request from %02o, %d pending", device, cpu.interruptPending)
	}

	return
}

// InterruptPending returns the number of undispatched interrupt requests.
func (cpu *Cpu) InterruptPending() int {
	return cpu.interruptPending
}

// ClearInterruptPending withdraws one pending interrupt request.
func (cpu *Cpu) ClearInterruptPending() (err error) {
	if cpu.interruptPending == 0 {
		err = ErrInterruptNone
		return
	}

	cpu.interruptPending--

	return
}

// InterruptEnabled returns true if interrupts are enabled.
func (cpu *Cpu) InterruptEnabled() bool {
	return cpu.interruptEnable
}

// SetInterruptEnable enables or disables interrupt dispatch.
func (cpu *Cpu) SetInterruptEnable(enable bool) {
	cpu.interruptEnable = enable
}

// dispatchInterrupt saves context and vectors to the service routine.
// At most one request is dispatched per call.
func (cpu *Cpu) dispatchInterrupt() (dispatched bool) {
	if !cpu.interruptEnable || cpu.interruptPending <= 0 {
		return
	}

	cpu.memory[cpu.normalise(ADDR_SAVED_AC)] = cpu.ac
	cpu.memory[cpu.normalise(ADDR_SAVED_PC)] = cpu.pc
	cpu.memory[cpu.normalise(ADDR_SAVED_LINK)] = cpu.link

	cpu.interruptPending--
	cpu.interruptEnable = false
	cpu.pc = cpu.normalise(ADDR_ISR)

	if cpu.Verbose {
		log.Printf("cpu: interrupt, return to %04o", cpu.memory[cpu.normalise(ADDR_SAVED_PC)])
	}

	dispatched = true
	return
}
