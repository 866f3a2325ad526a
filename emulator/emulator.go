// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"io"
	"iter"
	"log"

	"github.com/ezrec/pdp8/cpu"
	"github.com/ezrec/pdp8/internal"
	"github.com/ezrec/pdp8/iot"
)

// Emulator state. CPU + board + system devices.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	Interrupts iot.InterruptControl // Interrupt control, device 00.
}

// NewEmulator creates a new emulator for a board.
func NewEmulator(board *cpu.Board) (emu *Emulator, err error) {
	cp, err := cpu.NewCpuForBoard(board)
	if err != nil {
		return
	}

	emu = &Emulator{
		Cpu:     cp,
		Program: &cpu.Program{},
	}

	err = emu.Interrupts.Attach(emu.Cpu)
	if err != nil {
		emu = nil
		return
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		emu.Cpu.Defines(),
		emu.Interrupts.Defines(),
	)
}

// Assemble parses source text, with all defines predefined, into the
// emulator's program.
func (emu *Emulator) Assemble(input io.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for equ, value := range emu.Defines() {
		asm.Predefine(equ, value)
	}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog

	return
}

// Close the emulator
func (emu *Emulator) Close() (err error) {
	err = emu.Interrupts.Detach(emu.Cpu)
	if err != nil {
		return
	}

	err = emu.Cpu.Close()

	return
}

// Reset the CPU, load the program, and start at its first word.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Interrupts.Verbose = emu.Verbose

	emu.Cpu.Reset()

	err = emu.Program.Load(emu.Cpu)
	if err != nil {
		return
	}

	emu.Cpu.SetPc(emu.Program.Start)

	if emu.Verbose {
		log.Printf("emulator: reset, start at %04o", emu.Program.Start)
	}

	return
}

// Code returns the current instruction code.
func (emu *Emulator) Code() cpu.Code {
	pc := emu.Cpu.Pc()
	return cpu.Code(emu.Cpu.Read(pc))
}

// LineNo returns the source line number for the instruction at the PC.
func (emu *Emulator) LineNo() int {
	return emu.Program.LineNo(emu.Cpu.Pc())
}

// Tick performs a single instruction of the emulator.
// done is set once the CPU halts.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc()
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
		}
	}()

	if emu.Cpu.Halted() {
		done = true
		return
	}

	if !emu.Cpu.Step() {
		if emu.Cpu.MemoryWords() == 0 {
			err = cpu.ErrMemoryEmpty
			return
		}
		done = true
		return
	}

	done = emu.Cpu.Halted()

	return
}

// Run performs up to max instructions, stopping at a halt. Returns the
// number of instructions executed.
func (emu *Emulator) Run(max int) (count int, err error) {
	start := emu.Cpu.Cycles
	defer func() {
		count = emu.Cpu.Cycles - start
	}()

	for emu.Cpu.Cycles-start < max {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}

	return
}
