package cpu

// executeMemory runs AND, TAD, ISZ, DCA, JMS or JMP.
func (cpu *Cpu) executeMemory(code Code) {
	address := cpu.EffectiveAddress(code)

	switch code.Class() {
	case OP_AND:
		cpu.ac = (cpu.ac & cpu.memory[address]) & WORD_MASK
	case OP_TAD:
		// Carry out toggles the Link rather than setting it.
		sum := cpu.ac + cpu.memory[address]
		if (sum & CARRY_BIT) != 0 {
			cpu.link ^= LINK_MASK
		}
		cpu.ac = sum & WORD_MASK
	case OP_ISZ:
		cpu.memory[address] = (cpu.memory[address] + 1) & WORD_MASK
		if cpu.memory[address] == 0 {
			cpu.skipPending = true
		}
	case OP_DCA:
		cpu.memory[address] = cpu.ac & WORD_MASK
		cpu.ac = 0
	case OP_JMS:
		cpu.memory[address] = cpu.pc & WORD_MASK
		cpu.pc = cpu.normalise(address + 1)
	case OP_JMP:
		cpu.pc = cpu.normalise(address)
	}
}
