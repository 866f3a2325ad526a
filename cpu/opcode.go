package cpu

import (
	"fmt"
	"strings"
)

// Word field masks.
const (
	WORD_MASK    = uint16(0o7777) // 12-bit data word.
	LINK_MASK    = uint16(0o1)    // Link register.
	CARRY_BIT    = uint16(0o10000)
	SIGN_BIT     = uint16(0o4000)
	CLASS_MASK   = uint16(0o7000) // Opcode class field.
	INDIRECT_BIT = uint16(0o400)  // Memory reference: indirect.
	PAGE_BIT     = uint16(0o200)  // Memory reference: current page.
	OFFSET_MASK  = uint16(0o177)  // Memory reference: in-page offset.
	GROUP_BIT    = uint16(0o400)  // Operate: group 2.
	DEVICE_MASK  = uint16(0o770)  // IOT: device code.
	FUNC_MASK    = uint16(0o7)    // IOT: device function.
)

// Architectural addresses.
const (
	ADDR_SAVED_AC         = uint16(0o0006) // AC saved on interrupt.
	ADDR_SAVED_PC         = uint16(0o0007) // Return address saved on interrupt.
	ADDR_SAVED_LINK       = uint16(0o0010) // Link saved on interrupt.
	ADDR_ISR              = uint16(0o0020) // Interrupt service routine entry.
	ADDR_AUTO_INDEX_FIRST = uint16(0o0010) // First auto-index register.
	ADDR_AUTO_INDEX_LAST  = uint16(0o0017) // Last auto-index register.
)

// Group 1 operate micro-ops.
const (
	OPR1_CLA   = uint16(0o200)
	OPR1_CLL   = uint16(0o100)
	OPR1_CMA   = uint16(0o040)
	OPR1_CML   = uint16(0o020)
	OPR1_RAR   = uint16(0o010)
	OPR1_RAL   = uint16(0o004)
	OPR1_TWICE = uint16(0o002) // Rotate twice, or byte swap alone.
	OPR1_IAC   = uint16(0o001)
)

// Group 2 operate micro-ops.
const (
	OPR2_CLA   = uint16(0o200)
	OPR2_SMA   = uint16(0o100)
	OPR2_SZA   = uint16(0o040)
	OPR2_SNL   = uint16(0o020)
	OPR2_SENSE = uint16(0o010) // Invert the skip sense.
	OPR2_OSR   = uint16(0o004)
	OPR2_HLT   = uint16(0o002)
	OPR2_ION   = uint16(0o001)
)

// CodeClass is the 3-bit opcode class of an instruction.
type CodeClass int

//go:generate go tool stringer -linecomment -type=CodeClass
const (
	OP_AND = CodeClass(0) // AND
	OP_TAD = CodeClass(1) // TAD
	OP_ISZ = CodeClass(2) // ISZ
	OP_DCA = CodeClass(3) // DCA
	OP_JMS = CodeClass(4) // JMS
	OP_JMP = CodeClass(5) // JMP
	OP_IOT = CodeClass(6) // IOT
	OP_OPR = CodeClass(7) // OPR
)

// MemoryReference returns true for the six memory reference classes.
func (cc CodeClass) MemoryReference() bool {
	return cc >= OP_AND && cc <= OP_JMP
}

// microOp names a single operate bit pattern.
type microOp struct {
	Name string
	Bits uint16
}

// group1Ops in execution order. Combined rotates come before their parts
// so disassembly prefers them.
var group1Ops = []microOp{
	{"CLA", OPR1_CLA},
	{"CLL", OPR1_CLL},
	{"CMA", OPR1_CMA},
	{"CML", OPR1_CML},
	{"RTR", OPR1_RAR | OPR1_TWICE},
	{"RTL", OPR1_RAL | OPR1_TWICE},
	{"RAR", OPR1_RAR},
	{"RAL", OPR1_RAL},
	{"BSW", OPR1_TWICE},
	{"IAC", OPR1_IAC},
}

// group2Ops in execution order.
var group2Ops = []microOp{
	{"CLA", OPR2_CLA},
	{"SMA", OPR2_SMA},
	{"SZA", OPR2_SZA},
	{"SNL", OPR2_SNL},
	{"SPA", OPR2_SMA | OPR2_SENSE},
	{"SNA", OPR2_SZA | OPR2_SENSE},
	{"SZL", OPR2_SNL | OPR2_SENSE},
	{"SKP", OPR2_SENSE},
	{"OSR", OPR2_OSR},
	{"HLT", OPR2_HLT},
	{"ION", OPR2_ION},
}

// Code is a single 12-bit PDP-8 instruction word.
type Code uint16

// MakeCodeMem creates a memory reference instruction.
func MakeCodeMem(class CodeClass, indirect bool, currentPage bool, offset uint16) Code {
	word := (uint16(class) << 9) & CLASS_MASK
	if indirect {
		word |= INDIRECT_BIT
	}
	if currentPage {
		word |= PAGE_BIT
	}
	return Code(word | (offset & OFFSET_MASK))
}

// MakeCodeIot creates an IOT instruction for a device and function.
func MakeCodeIot(device int, function uint16) Code {
	return Code((uint16(OP_IOT) << 9) | ((uint16(device) << 3) & DEVICE_MASK) | (function & FUNC_MASK))
}

// MakeCodeOperate creates a group 1 or group 2 operate instruction.
func MakeCodeOperate(group int, bits uint16) Code {
	word := (uint16(OP_OPR) << 9) | (bits & 0o377)
	if group == 2 {
		word |= GROUP_BIT
	}
	return Code(word)
}

// Word returns the masked instruction word.
func (code Code) Word() uint16 {
	return uint16(code) & WORD_MASK
}

// Class returns the opcode class.
func (code Code) Class() CodeClass {
	return CodeClass((code.Word() & CLASS_MASK) >> 9)
}

// Indirect returns true if the indirect bit is set.
func (code Code) Indirect() bool {
	return (code.Word() & INDIRECT_BIT) != 0
}

// CurrentPage returns true if the page bit selects the current page.
func (code Code) CurrentPage() bool {
	return (code.Word() & PAGE_BIT) != 0
}

// Offset returns the 7-bit in-page offset.
func (code Code) Offset() uint16 {
	return code.Word() & OFFSET_MASK
}

// Device returns the IOT device code.
func (code Code) Device() int {
	return int((code.Word() & DEVICE_MASK) >> 3)
}

// Function returns the IOT device function (microcode) bits.
func (code Code) Function() uint16 {
	return code.Word() & FUNC_MASK
}

// Group returns the operate group, 1 or 2.
func (code Code) Group() int {
	if (code.Word() & GROUP_BIT) != 0 {
		return 2
	}
	return 1
}

// skipConds pairs each group 2 condition with its normal and sensed name.
var skipConds = []struct {
	Bits        uint16
	Name, Sense string
}{
	{OPR2_SMA, "SMA", "SPA"},
	{OPR2_SZA, "SZA", "SNA"},
	{OPR2_SNL, "SNL", "SZL"},
}

// microOps returns the operate mnemonics for the instruction.
func (code Code) microOps() (names []string) {
	bits := code.Word() & 0o377

	if code.Group() == 1 {
		for _, op := range group1Ops {
			if bits&op.Bits == op.Bits {
				names = append(names, op.Name)
				bits &^= op.Bits
			}
		}
	} else {
		sense := (bits & OPR2_SENSE) != 0
		if (bits & OPR2_CLA) != 0 {
			names = append(names, "CLA")
		}
		var skips int
		for _, cond := range skipConds {
			if (bits & cond.Bits) == 0 {
				continue
			}
			skips++
			if sense {
				names = append(names, cond.Sense)
			} else {
				names = append(names, cond.Name)
			}
		}
		if sense && skips == 0 {
			names = append(names, "SKP")
		}
		for _, op := range []microOp{{"OSR", OPR2_OSR}, {"HLT", OPR2_HLT}, {"ION", OPR2_ION}} {
			if (bits & op.Bits) != 0 {
				names = append(names, op.Name)
			}
		}
	}

	if len(names) == 0 {
		names = []string{"NOP"}
	}

	return
}

// Disassemble returns the PAL form of the instruction located at addr.
// Current page references are resolved to absolute addresses.
func (code Code) Disassemble(addr uint16) string {
	class := code.Class()
	switch {
	case class.MemoryReference():
		target := code.Offset()
		if code.CurrentPage() {
			target |= (addr + 1) & WORD_MASK &^ OFFSET_MASK
		}
		if code.Indirect() {
			return fmt.Sprintf("%v I %04o", class, target)
		}
		return fmt.Sprintf("%v %04o", class, target)
	case class == OP_IOT:
		return fmt.Sprintf("%v %02o %o", class, code.Device(), code.Function())
	default:
		return strings.Join(code.microOps(), " ")
	}
}

// String returns the PAL form of the instruction. Current page references
// are shown as 'C' plus the in-page offset.
func (code Code) String() string {
	class := code.Class()
	if !class.MemoryReference() || !code.CurrentPage() {
		return code.Disassemble(0)
	}

	if code.Indirect() {
		return fmt.Sprintf("%v I C%04o", class, code.Offset())
	}
	return fmt.Sprintf("%v C%04o", class, code.Offset())
}
