package emulator

import (
	"errors"
	"maps"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/pdp8/cpu"
)

func newEmulator(t *testing.T, program []string) (emu *Emulator) {
	assert := assert.New(t)

	emu, err := NewEmulator(cpu.BoardHostSimulator())
	assert.NoError(err)

	err = emu.Assemble(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatalf("%v", err)
	}

	err = emu.Reset()
	assert.NoError(err)

	return
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(cpu.BoardFruitJam())
	assert.NoError(err)
	assert.False(emu.Verbose)
	assert.Equal(cpu.BoardFruitJam(), emu.Cpu.Board())
	assert.Equal(cpu.MEMORY_WORDS, emu.Cpu.MemoryWords())

	dev, err := emu.Cpu.GetDevice(0)
	assert.NoError(err)
	assert.Equal(&emu.Interrupts, dev)

	_, err = NewEmulator(nil)
	assert.ErrorIs(err, cpu.ErrBoardNil)
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(cpu.BoardHostSimulator())
	assert.NoError(err)

	defines := maps.Collect(emu.Defines())
	assert.Equal("6000", defines["IOFF"])
	assert.Equal("6001", defines["ION"])
	assert.Equal("6002", defines["SKON"])
	assert.Equal("0020", defines["ISR"])
	assert.Equal("0007", defines["SAVED_PC"])
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, []string{
		"*0200",
		"START,  CLA CLL",
		"        TAD A",
		"        TAD B",
		"        DCA C",
		"        HLT",
		"A,      2",
		"B,      3",
		"C,      0",
	})

	count, err := emu.Run(100)
	assert.NoError(err)
	assert.Equal(5, count)
	assert.True(emu.Cpu.Halted())
	assert.Equal(uint16(5), emu.Cpu.Read(0o207))

	// Halted, nothing more to do.
	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulatorLineNo(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"/ count down from three",
		"*0200",
		"        TAD N",
		"LOOP,   ISZ N",
		"        JMP LOOP",
		"        HLT",
		"N,      -3",
	}
	emu := newEmulator(t, program)

	assert.Equal(3, emu.LineNo())
	assert.Equal(uint16(0o200), emu.Cpu.Pc())

	var lines []int
	for {
		lines = append(lines, emu.LineNo())
		done, err := emu.Tick()
		assert.NoError(err)
		if done {
			break
		}
	}

	assert.Equal([]int{3, 4, 5, 4, 5, 4, 6}, lines)
	assert.Equal(uint16(0o7775), emu.Cpu.Ac())
	assert.Equal(uint16(0), emu.Cpu.Read(0o204))
}

func TestEmulatorInterruptControl(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, []string{
		"*0200",
		"        ION",
		"        SKON",
		"        HLT",
		"        CLA IAC",
		"        IOFF",
		"        SKON",
		"        HLT",
		"        CLA",
		"        HLT",
	})

	count, err := emu.Run(100)
	assert.NoError(err)
	assert.Equal(6, count)
	assert.Equal(uint16(1), emu.Cpu.Ac())
	assert.False(emu.Cpu.InterruptEnabled())
}

func TestEmulatorInterruptDispatch(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, []string{
		"*0200",
		"        ION",
		"WAIT,   JMP WAIT",
		"*0020",
		"        CLA IAC",
		"        HLT",
	})
	assert.Equal(uint16(0o200), emu.Program.Start)

	err := emu.Cpu.RequestInterrupt(3)
	assert.NoError(err)

	count, err := emu.Run(10)
	assert.NoError(err)
	assert.Equal(3, count)
	assert.Equal(uint16(1), emu.Cpu.Ac())
	assert.Equal(uint16(0o201), emu.Cpu.Read(cpu.ADDR_SAVED_PC))
	assert.Equal(0, emu.Cpu.InterruptPending())
	assert.False(emu.Cpu.InterruptEnabled())
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, []string{
		"*0200",
		"        HLT",
	})

	err := emu.Close()
	assert.NoError(err)

	_, err = emu.Tick()
	assert.ErrorIs(err, cpu.ErrMemoryEmpty)

	var rte *ErrRuntime
	assert.True(errors.As(err, &rte))
	assert.Equal(2, rte.LineNo)
	assert.Equal(uint16(0o200), rte.Pc)
}

func TestEmulatorAssembleError(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(cpu.BoardHostSimulator())
	assert.NoError(err)

	err = emu.Assemble(strings.NewReader("*0200\n  TAD MISSING\n"))
	var missing cpu.ErrLabelMissing
	assert.ErrorAs(err, &missing)
	assert.Equal(cpu.ErrLabelMissing("MISSING"), missing)
}
