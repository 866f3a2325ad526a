package cpu

// EffectiveAddress resolves the operand address of a memory reference
// instruction against the (already advanced) PC.
//
// Indirect references through the auto-index registers 0010-0017 increment
// the pointer before it is used, whatever the opcode.
func (cpu *Cpu) EffectiveAddress(code Code) (address uint16) {
	if len(cpu.memory) == 0 {
		return
	}

	var base uint16
	if code.CurrentPage() {
		base = cpu.pc &^ OFFSET_MASK
	}
	address = cpu.normalise(base | code.Offset())

	if code.Indirect() {
		if address >= ADDR_AUTO_INDEX_FIRST && address <= ADDR_AUTO_INDEX_LAST {
			cpu.memory[address] = (cpu.memory[address] + 1) & WORD_MASK
		}
		address = cpu.normalise(cpu.memory[address])
	}

	return
}
