package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// linkKind selects how an Opcode's operand is resolved after parsing.
type linkKind int

const (
	linkNone   = linkKind(iota) // Code is complete.
	linkMemory                  // Operand is a memory reference target.
	linkIot                     // Operand is the IOT device and function.
	linkData                    // Operand is a data word expression.
)

// Opcode represents one assembled word with its source location.
type Opcode struct {
	LineNo  int      // Source line.
	Address uint16   // Load address.
	Words   []string // Source words of the statement.
	Code    Code     // Assembled word.
	Operand string   // Unresolved operand expression, if any.

	link linkKind
}

// Program is an assembled PDP-8 program.
type Program struct {
	Opcodes []Opcode
	Start   uint16 // Address of the first assembled word.
}

// Debug returns the opcode assembled at addr.
func (prog *Program) Debug(addr uint16) (op *Opcode, ok bool) {
	for n := range prog.Opcodes {
		if prog.Opcodes[n].Address == addr {
			op = &prog.Opcodes[n]
			ok = true
			return
		}
	}

	return
}

// LineNo returns the source line of the word at addr, or 0.
func (prog *Program) LineNo(addr uint16) int {
	op, ok := prog.Debug(addr)
	if !ok {
		return 0
	}
	return op.LineNo
}

// Codes iterates the assembled words by address, in source order.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(addr uint16, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Address, op.Code) {
				return
			}
		}
	}
}

// Load writes the program into the CPU's memory.
func (prog *Program) Load(cpu *Cpu) (err error) {
	for addr, code := range prog.Codes() {
		err = cpu.Write(addr, code.Word())
		if err != nil {
			return
		}
	}

	return
}

// Listing returns an assembler listing: line, address, word, and the
// disassembled instruction.
func (prog *Program) Listing() string {
	var text strings.Builder
	for _, op := range prog.Opcodes {
		fmt.Fprintf(&text, "%5d %04o %04o  %-16v / %v\n",
			op.LineNo, op.Address, op.Code.Word(),
			op.Code.Disassemble(op.Address), strings.Join(op.Words, " "))
	}
	return text.String()
}
