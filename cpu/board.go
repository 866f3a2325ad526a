package cpu

import (
	"iter"
	"slices"
)

// Board describes a host or embedded target. It is read-only once
// attached to a CPU.
type Board struct {
	Name        string   // Human readable name.
	Mcu         string   // Microcontroller identifier.
	CoreClockHz uint32   // Core clock, informational.
	TickHz      uint32   // Device tick rate, informational.
	MemoryWords int      // PDP-8 memory size in words.
	RamBytes    int      // Host RAM, informational.
	FlashBytes  int      // Host flash, informational.
	Rom         []uint16 // Loaded into low memory on every reset.
}

var boardHostSimulator = Board{
	Name:        "Host Simulator",
	Mcu:         "N/A",
	TickHz:      60,
	MemoryWords: MEMORY_WORDS,
}

var boardFruitJam = Board{
	Name:        "Adafruit Fruit Jam",
	Mcu:         "RP2350",
	CoreClockHz: 200_000_000,
	TickHz:      60,
	MemoryWords: MEMORY_WORDS,
	RamBytes:    512 * 1024,
	FlashBytes:  16 * 1024 * 1024,
}

// BoardHostSimulator returns the descriptor for the host-side simulator.
func BoardHostSimulator() *Board {
	return &boardHostSimulator
}

// BoardFruitJam returns the descriptor for the Adafruit Fruit Jam.
func BoardFruitJam() *Board {
	return &boardFruitJam
}

var boards = map[string](*Board){
	"host":     &boardHostSimulator,
	"fruitjam": &boardFruitJam,
}

// Boards iterates the built-in boards by short name, in name order.
func Boards() iter.Seq2[string, *Board] {
	return func(yield func(string, *Board) bool) {
		names := make([]string, 0, len(boards))
		for name := range boards {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			if !yield(name, boards[name]) {
				return
			}
		}
	}
}

// LookupBoard finds a built-in board by short name.
func LookupBoard(name string) (board *Board, err error) {
	board, ok := boards[name]
	if !ok {
		err = ErrBoardUnknown
	}
	return
}

// NewCpuForBoard creates a CPU sized for, and attached to, a board.
func NewCpuForBoard(board *Board) (cpu *Cpu, err error) {
	if board == nil {
		err = ErrBoardNil
		return
	}

	words := board.MemoryWords
	if words == 0 {
		words = MEMORY_WORDS
	}

	cpu, err = NewCpu(words)
	if err != nil {
		return
	}

	err = cpu.AttachBoard(board)
	if err != nil {
		cpu = nil
		return
	}

	return
}

// AttachBoard resizes memory for the board, records it, and resets the
// CPU. A board with no memory size keeps the current size.
func (cpu *Cpu) AttachBoard(board *Board) (err error) {
	if board == nil {
		err = ErrBoardNil
		return
	}

	words := board.MemoryWords
	if words == 0 {
		words = len(cpu.memory)
		if words == 0 {
			words = MEMORY_WORDS
		}
	}

	err = cpu.Resize(words)
	if err != nil {
		return
	}

	cpu.board = board
	cpu.Reset()

	return
}

// Board returns the attached board, if any.
func (cpu *Cpu) Board() *Board {
	return cpu.board
}
