package cpu

import (
	"log"
)

// DEVICE_COUNT is the number of IOT device codes.
const DEVICE_COUNT = 64

// Device is an IOT peripheral. Iot is called with the full instruction
// word whenever an IOT addresses the device's code. It may request a skip,
// access AC, PC, Link and memory, and request interrupts; it must not block.
type Device interface {
	Iot(cpu *Cpu, code Code)
}

// DeviceFunc adapts a function to a Device.
type DeviceFunc func(cpu *Cpu, code Code)

func (df DeviceFunc) Iot(cpu *Cpu, code Code) {
	df(cpu, code)
}

func validDevice(device int) bool {
	return device >= 0 && device < DEVICE_COUNT
}

// SetDevice binds a device code to an IOT handler, replacing any previous
// binding. A nil device clears the slot.
//
// The CPU does not own the device; clear the slot before discarding it.
func (cpu *Cpu) SetDevice(device int, dev Device) (err error) {
	if !validDevice(device) {
		err = ErrDeviceCode
		return
	}

	cpu.device[device] = dev

	return
}

// GetDevice returns the IOT handler bound to a device code, if any.
func (cpu *Cpu) GetDevice(device int) (dev Device, err error) {
	if !validDevice(device) {
		err = ErrDeviceCode
		return
	}

	dev = cpu.device[device]

	return
}

// RequestSkip skips the next instruction once the current one completes.
func (cpu *Cpu) RequestSkip() {
	cpu.skipPending = true
}

// executeIot routes an IOT to its device. Unbound codes are a no-op.
func (cpu *Cpu) executeIot(code Code) {
	dev := cpu.device[code.Device()]
	if dev == nil {
		if cpu.Verbose {
			log.Printf("cpu: iot %02o: no device", code.Device())
		}
		return
	}

	dev.Iot(cpu, code)
}
