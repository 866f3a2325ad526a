package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTadLinkToggle(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, map[uint16]uint16{
		0o200: 0o1100, // TAD 0100
		0o201: 0o1100, // TAD 0100
		0o100: 0o7777,
	})
	cpu.SetPc(0o200)

	cpu.SetAc(1)
	cpu.Step()
	assert.Equal(uint16(0), cpu.Ac())
	assert.Equal(uint16(1), cpu.Link())

	cpu.SetAc(1)
	cpu.Step()
	assert.Equal(uint16(0), cpu.Ac())
	assert.Equal(uint16(0), cpu.Link())
}

func TestMemoryReference(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		pc    uint16
		code  uint16
		ac    uint16
		link  uint16
		mem   map[uint16]uint16
		expPc uint16
		expAc uint16
		expL  uint16
		expM  map[uint16]uint16
	}){
		{"and", 0o200, 0o0100, 0o7070, 0, map[uint16]uint16{0o100: 0o0770},
			0o201, 0o0070, 0, nil},
		{"tad", 0o200, 0o1100, 0o0001, 1, map[uint16]uint16{0o100: 0o0002},
			0o201, 0o0003, 1, nil},
		{"tad-carry", 0o200, 0o1100, 0o4000, 1, map[uint16]uint16{0o100: 0o4000},
			0o201, 0o0000, 0, nil},
		{"isz", 0o200, 0o2100, 0, 0, map[uint16]uint16{0o100: 0o0005},
			0o201, 0, 0, map[uint16]uint16{0o100: 0o0006}},
		{"isz-wrap", 0o200, 0o2100, 0, 0, map[uint16]uint16{0o100: 0o7777},
			0o202, 0, 0, map[uint16]uint16{0o100: 0}},
		{"dca", 0o200, 0o3100, 0o1234, 1, nil,
			0o201, 0, 1, map[uint16]uint16{0o100: 0o1234}},
		{"jms", 0o0004, 0o4030, 0, 0, nil,
			0o0031, 0, 0, map[uint16]uint16{0o030: 0o0005}},
		{"jmp", 0o200, 0o5100, 0, 0, nil,
			0o100, 0, 0, nil},
		{"jmp-current-page", 0o1234, 0o5377, 0, 0, nil,
			0o1377, 0, 0, nil},
		{"jmp-indirect", 0o200, 0o5500, 0, 0, map[uint16]uint16{0o100: 0o3000},
			0o3000, 0, 0, nil},
		{"dca-indirect-current", 0o200, 0o3610, 0o0077, 0, map[uint16]uint16{0o210: 0o2000},
			0o201, 0, 0, map[uint16]uint16{0o2000: 0o0077}},
		{"tad-auto-index", 0, 0o1410, 0, 0, map[uint16]uint16{0o010: 0o0020, 0o021: 0o0005},
			0o001, 0o0005, 0, map[uint16]uint16{0o010: 0o0021}},
		{"auto-index-wrap", 0o200, 0o1417, 0, 0, map[uint16]uint16{0o017: 0o7777, 0: 0o0042},
			0o201, 0o0042, 0, map[uint16]uint16{0o017: 0}},
		{"auto-index-direct", 0o200, 0o1010, 0, 0, map[uint16]uint16{0o010: 0o0020},
			0o201, 0o0020, 0, map[uint16]uint16{0o010: 0o0020}},
	}

	for _, entry := range table {
		cpu := newTestCpu(t, entry.mem)
		assert.NoError(cpu.Write(entry.pc, entry.code), entry.name)
		cpu.SetPc(entry.pc)
		cpu.SetAc(entry.ac)
		cpu.SetLink(entry.link)

		assert.True(cpu.Step(), entry.name)

		assert.Equal(entry.expPc, cpu.Pc(), entry.name)
		assert.Equal(entry.expAc, cpu.Ac(), entry.name)
		assert.Equal(entry.expL, cpu.Link(), entry.name)
		for addr, value := range entry.expM {
			assert.Equal(value, cpu.Read(addr), entry.name)
		}
	}
}

func TestEffectiveAddress(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, map[uint16]uint16{0o15: 0o4444})

	cpu.SetPc(0o4201)
	assert.Equal(uint16(0o0123), cpu.EffectiveAddress(MakeCodeMem(OP_TAD, false, false, 0o123)))
	assert.Equal(uint16(0o4323), cpu.EffectiveAddress(MakeCodeMem(OP_TAD, false, true, 0o123)))

	// Auto-index pre-increments for any opcode.
	assert.Equal(uint16(0o4445), cpu.EffectiveAddress(MakeCodeMem(OP_JMP, true, false, 0o15)))
	assert.Equal(uint16(0o4445), cpu.Read(0o15))

	small, err := NewCpu(0o100)
	assert.NoError(err)
	small.SetPc(0o77)
	assert.Equal(uint16(0o23), small.EffectiveAddress(MakeCodeMem(OP_TAD, false, false, 0o123)))

	assert.NoError(small.Close())
	assert.Equal(uint16(0), small.EffectiveAddress(MakeCodeMem(OP_TAD, true, false, 0o10)))
}
