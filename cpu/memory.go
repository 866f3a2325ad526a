package cpu

// MEMORY_WORDS is the size of a standard 4K word memory field.
const MEMORY_WORDS = 4096

// Resize changes the memory size, preserving existing contents and
// zero-filling any growth. The PC is wrapped into the new size.
func (cpu *Cpu) Resize(words int) (err error) {
	if words <= 0 {
		err = ErrMemorySize
		return
	}

	memory := make([]uint16, words)
	copy(memory, cpu.memory)
	cpu.memory = memory

	cpu.pc = cpu.normalise(cpu.pc)

	return
}

// MemoryWords returns the number of words of memory.
func (cpu *Cpu) MemoryWords() int {
	return len(cpu.memory)
}

// normalise wraps a 12-bit address into memory.
func (cpu *Cpu) normalise(address uint16) uint16 {
	if len(cpu.memory) == 0 {
		return 0
	}
	return uint16(int(address&WORD_MASK) % len(cpu.memory))
}

// Read returns the memory word at address, modulo the memory size.
func (cpu *Cpu) Read(address uint16) uint16 {
	if len(cpu.memory) == 0 {
		return 0
	}
	return cpu.memory[cpu.normalise(address)] & WORD_MASK
}

// Write stores a 12-bit word at address, modulo the memory size.
func (cpu *Cpu) Write(address uint16, value uint16) (err error) {
	if len(cpu.memory) == 0 {
		err = ErrMemoryEmpty
		return
	}
	cpu.memory[cpu.normalise(address)] = value & WORD_MASK
	return
}

// Load stores consecutive words starting at start.
func (cpu *Cpu) Load(words []uint16, start uint16) (err error) {
	if len(cpu.memory) == 0 {
		err = ErrMemoryEmpty
		return
	}
	for n, word := range words {
		err = cpu.Write(start+uint16(n), word)
		if err != nil {
			return
		}
	}
	return
}
