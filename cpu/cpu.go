package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

var _cpu_defines = map[string]string{
	"SAVED_AC":   fmt.Sprintf("%04o", ADDR_SAVED_AC),
	"SAVED_PC":   fmt.Sprintf("%04o", ADDR_SAVED_PC),
	"SAVED_LINK": fmt.Sprintf("%04o", ADDR_SAVED_LINK),
	"ISR":        fmt.Sprintf("%04o", ADDR_ISR),
	"AUTO_INDEX": fmt.Sprintf("%04o", ADDR_AUTO_INDEX_FIRST),
}

// Cpu is the simulation context for a single PDP-8 processor.
//
// A Cpu is owned by one caller and is not safe for concurrent use.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Cycles int // Instructions executed since reset.

	Now func() uint64 // Tick clock in nanoseconds; nil uses the host monotonic clock.

	memory []uint16

	pc             uint16
	ac             uint16
	link           uint16
	switchRegister uint16

	halted      bool
	skipPending bool

	interruptEnable  bool
	interruptPending int

	device [DEVICE_COUNT]Device // IOT handlers, not owned.
	ticker [DEVICE_COUNT]Ticker // Tick handlers, not owned.

	board *Board
}

// NewCpu creates a CPU with a zero-filled memory of the given size.
func NewCpu(words int) (cpu *Cpu, err error) {
	if words <= 0 {
		err = ErrMemorySize
		return
	}

	cpu = &Cpu{}
	err = cpu.Resize(words)
	if err != nil {
		cpu = nil
		return
	}

	return
}

// Defines for the cpu.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Close releases memory and drops all device and tick bindings.
func (cpu *Cpu) Close() (err error) {
	cpu.memory = nil
	clear(cpu.device[:])
	clear(cpu.ticker[:])
	cpu.board = nil

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc", "ac", "link", "sr",
		"ion", "irq", "halt",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%04o  %v", cpu.pc, Code(cpu.Read(cpu.pc)).Disassemble(cpu.pc))
		case "ac":
			strval = fmt.Sprintf("%04o", cpu.ac)
		case "link":
			strval = fmt.Sprintf("%o", cpu.link)
		case "sr":
			strval = fmt.Sprintf("%04o", cpu.switchRegister)
		case "ion":
			strval = fmt.Sprintf("%v", cpu.interruptEnable)
		case "irq":
			strval = fmt.Sprintf("%d", cpu.interruptPending)
		case "halt":
			strval = fmt.Sprintf("%v", cpu.halted)
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Reset the CPU state.
//   - Clears AC, PC, Link, and the halt, skip and interrupt state.
//   - Zeros memory and the cycle counter.
//   - Reloads the attached board's ROM image into low memory.
//
// Device and tick bindings and the switch register are kept.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.pc = 0
	cpu.ac = 0
	cpu.link = 0
	cpu.halted = false
	cpu.skipPending = false
	cpu.interruptEnable = false
	cpu.interruptPending = 0
	cpu.Cycles = 0

	clear(cpu.memory)

	if cpu.board != nil && len(cpu.board.Rom) > 0 {
		rom := cpu.board.Rom
		if len(rom) > len(cpu.memory) {
			rom = rom[:len(cpu.memory)]
		}
		for n, word := range rom {
			cpu.memory[n] = word & WORD_MASK
		}
		if cpu.Verbose {
			log.Printf("cpu: %v: loaded %d rom words", cpu.board.Name, len(rom))
		}
	}
}

// SetHalt stops execution.
func (cpu *Cpu) SetHalt() {
	cpu.halted = true
}

// ClearHalt allows execution to continue.
func (cpu *Cpu) ClearHalt() {
	cpu.halted = false
}

// Halted returns true if the CPU is halted.
func (cpu *Cpu) Halted() bool {
	return cpu.halted
}

// Ac returns the accumulator.
func (cpu *Cpu) Ac() uint16 {
	return cpu.ac
}

// SetAc sets the accumulator.
func (cpu *Cpu) SetAc(value uint16) {
	cpu.ac = value & WORD_MASK
}

// Pc returns the program counter.
func (cpu *Cpu) Pc() uint16 {
	return cpu.pc
}

// SetPc sets the program counter, modulo the memory size.
func (cpu *Cpu) SetPc(value uint16) {
	cpu.pc = cpu.normalise(value & WORD_MASK)
}

// Link returns the link bit.
func (cpu *Cpu) Link() uint16 {
	return cpu.link & LINK_MASK
}

// SetLink sets the link bit from the low bit of value.
func (cpu *Cpu) SetLink(value uint16) {
	cpu.link = value & LINK_MASK
}

// SwitchRegister returns the front panel switches.
func (cpu *Cpu) SwitchRegister() uint16 {
	return cpu.switchRegister
}

// SetSwitchRegister sets the front panel switches.
func (cpu *Cpu) SetSwitchRegister(value uint16) {
	cpu.switchRegister = value & WORD_MASK
}

// Step executes a single instruction cycle: fetch, execute, deferred skip,
// interrupt dispatch, then device ticks.
//
// Returns false, without side effects, if the CPU is halted or has no
// memory.
func (cpu *Cpu) Step() (executed bool) {
	if cpu.halted || len(cpu.memory) == 0 {
		return
	}

	code := Code(cpu.memory[cpu.pc])
	if cpu.Verbose {
		log.Printf("cpu: %04o: %04o %v", cpu.pc, code.Word(), code.Disassemble(cpu.pc))
	}
	cpu.pc = cpu.normalise(cpu.pc + 1)

	switch code.Class() {
	case OP_AND, OP_TAD, OP_ISZ, OP_DCA, OP_JMS, OP_JMP:
		cpu.executeMemory(code)
	case OP_IOT:
		cpu.executeIot(code)
	case OP_OPR:
		cpu.executeOperate(code)
	}

	if cpu.skipPending {
		cpu.pc = cpu.normalise(cpu.pc + 1)
		cpu.skipPending = false
	}

	cpu.dispatchInterrupt()

	cpu.broadcastTicks()

	cpu.Cycles++

	executed = true
	return
}

// Run executes up to max instructions, stopping early on halt. Returns the
// number of instructions executed.
func (cpu *Cpu) Run(max int) (count int) {
	for count < max {
		if cpu.halted {
			break
		}
		if !cpu.Step() {
			break
		}
		count++
	}

	return
}
