package cpu

// Ticker receives the host monotonic time, in nanoseconds, after every
// executed instruction.
type Ticker interface {
	Tick(cpu *Cpu, now uint64)
}

// TickerFunc adapts a function to a Ticker.
type TickerFunc func(cpu *Cpu, now uint64)

func (tf TickerFunc) Tick(cpu *Cpu, now uint64) {
	tf(cpu, now)
}

// SetTicker binds a device code to a tick handler. A nil ticker clears
// the slot.
func (cpu *Cpu) SetTicker(device int, tick Ticker) (err error) {
	if !validDevice(device) {
		err = ErrDeviceCode
		return
	}

	cpu.ticker[device] = tick

	return
}

// broadcastTicks calls every tick handler in device code order.
func (cpu *Cpu) broadcastTicks() {
	var now uint64
	var timed bool

	for _, tick := range cpu.ticker {
		if tick == nil {
			continue
		}
		if !timed {
			now = cpu.now()
			timed = true
		}
		tick.Tick(cpu, now)
	}
}

// now returns the tick timestamp.
func (cpu *Cpu) now() uint64 {
	if cpu.Now != nil {
		return cpu.Now()
	}
	return monotonicNanos()
}
