package iot

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/pdp8/cpu"
)

func TestInterruptControl(t *testing.T) {
	assert := assert.New(t)

	cp, err := cpu.NewCpu(cpu.MEMORY_WORDS)
	assert.NoError(err)

	ic := &InterruptControl{}
	assert.NoError(ic.Attach(cp))

	program := []uint16{
		0o6001, // ION
		0o6002, // SKON
		0o7402, // HLT
		0o6000, // IOFF
		0o6002, // SKON
		0o7001, // IAC
		0o6007, // ignored
		0o7402, // HLT
	}
	assert.NoError(cp.Load(program, 0o200))
	cp.SetPc(0o200)

	cp.Step()
	assert.True(cp.InterruptEnabled())

	cp.Step()
	assert.Equal(uint16(0o203), cp.Pc())

	cp.Step()
	assert.False(cp.InterruptEnabled())

	assert.Equal(4, cp.Run(10))
	assert.True(cp.Halted())
	assert.Equal(uint16(1), cp.Ac())
	assert.Equal(uint16(0o210), cp.Pc())
}

func TestInterruptControlDetach(t *testing.T) {
	assert := assert.New(t)

	cp, err := cpu.NewCpu(cpu.MEMORY_WORDS)
	assert.NoError(err)

	ic := &InterruptControl{}
	other := cpu.DeviceFunc(func(cp *cpu.Cpu, code cpu.Code) {})

	assert.NoError(ic.Attach(cp))
	assert.NoError(ic.Detach(cp))
	dev, err := cp.GetDevice(INTERRUPT_CONTROL_DEVICE)
	assert.NoError(err)
	assert.Nil(dev)

	// Leaves other devices alone.
	assert.NoError(cp.SetDevice(INTERRUPT_CONTROL_DEVICE, other))
	assert.NoError(ic.Detach(cp))
	dev, err = cp.GetDevice(INTERRUPT_CONTROL_DEVICE)
	assert.NoError(err)
	assert.NotNil(dev)
}

func TestInterruptControlDefines(t *testing.T) {
	assert := assert.New(t)

	ic := &InterruptControl{}
	assert.Equal(map[string]string{
		"IOFF": "6000",
		"ION":  "6001",
		"SKON": "6002",
	}, maps.Collect(ic.Defines()))
}
