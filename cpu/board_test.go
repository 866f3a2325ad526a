package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoards(t *testing.T) {
	assert := assert.New(t)

	var names []string
	for name, board := range Boards() {
		names = append(names, name)
		found, err := LookupBoard(name)
		assert.NoError(err)
		assert.Equal(board, found)
	}
	assert.Equal([]string{"fruitjam", "host"}, names)

	host := BoardHostSimulator()
	assert.Equal("Host Simulator", host.Name)
	assert.Equal("N/A", host.Mcu)
	assert.Equal(uint32(0), host.CoreClockHz)
	assert.Equal(uint32(60), host.TickHz)
	assert.Equal(MEMORY_WORDS, host.MemoryWords)

	jam := BoardFruitJam()
	assert.Equal("Adafruit Fruit Jam", jam.Name)
	assert.Equal("RP2350", jam.Mcu)
	assert.Equal(uint32(200_000_000), jam.CoreClockHz)
	assert.Equal(512*1024, jam.RamBytes)
	assert.Equal(16*1024*1024, jam.FlashBytes)

	_, err := LookupBoard("pdp-8/e")
	assert.ErrorIs(err, ErrBoardUnknown)
}

func TestNewCpuForBoard(t *testing.T) {
	assert := assert.New(t)

	cpu, err := NewCpuForBoard(nil)
	assert.ErrorIs(err, ErrBoardNil)
	assert.Nil(cpu)

	cpu, err = NewCpuForBoard(BoardFruitJam())
	assert.NoError(err)
	assert.Equal(MEMORY_WORDS, cpu.MemoryWords())
	assert.Equal(BoardFruitJam(), cpu.Board())

	cpu, err = NewCpuForBoard(&Board{Name: "sized by default"})
	assert.NoError(err)
	assert.Equal(MEMORY_WORDS, cpu.MemoryWords())
}

func TestAttachBoard(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, map[uint16]uint16{0o200: 0o1234})
	cpu.SetAc(0o7777)

	assert.ErrorIs(cpu.AttachBoard(nil), ErrBoardNil)
	assert.Equal(uint16(0o7777), cpu.Ac())
	assert.Equal(uint16(0o1234), cpu.Read(0o200))

	rom := &Board{
		Name:        "rom",
		MemoryWords: 8,
		Rom:         []uint16{0o7001, 0o7001, 0o7402, 3, 4, 5, 6, 7, 0o10, 0o11},
	}
	assert.NoError(cpu.AttachBoard(rom))
	assert.Equal(8, cpu.MemoryWords())
	assert.Equal(rom, cpu.Board())
	assert.Equal(uint16(0), cpu.Ac())
	assert.Equal(uint16(7), cpu.Read(7))

	assert.Equal(3, cpu.Run(10))
	assert.True(cpu.Halted())
	assert.Equal(uint16(2), cpu.Ac())

	// Reset reloads the ROM.
	assert.NoError(cpu.Write(0, 0))
	cpu.Reset()
	assert.Equal(uint16(0o7001), cpu.Read(0))

	// No memory size keeps the current one.
	assert.NoError(cpu.AttachBoard(&Board{Name: "keep"}))
	assert.Equal(8, cpu.MemoryWords())
	assert.Equal(uint16(0), cpu.Read(0))
}
