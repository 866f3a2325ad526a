package cpu

// executeOperate dispatches on the operate group bit.
func (cpu *Cpu) executeOperate(code Code) {
	if code.Group() == 1 {
		cpu.operateGroup1(code.Word())
	} else {
		cpu.operateGroup2(code.Word())
	}
}

// operateGroup1 applies CLA, CLL, CMA, CML, the rotate group and IAC in
// that order.
func (cpu *Cpu) operateGroup1(word uint16) {
	if (word & OPR1_CLA) != 0 {
		cpu.ac = 0
	}
	if (word & OPR1_CLL) != 0 {
		cpu.link = 0
	}
	if (word & OPR1_CMA) != 0 {
		cpu.ac = ^cpu.ac & WORD_MASK
	}
	if (word & OPR1_CML) != 0 {
		cpu.link ^= LINK_MASK
	}

	right := (word & OPR1_RAR) != 0
	left := (word & OPR1_RAL) != 0
	twice := (word & OPR1_TWICE) != 0

	switch {
	case twice && !right && !left:
		// BSW
		cpu.ac = ((cpu.ac & 0o77) << 6) | ((cpu.ac >> 6) & 0o77)
	case right && left:
		// Undefined; neither direction applies.
	case right || left:
		count := 1
		if twice {
			count = 2
		}
		combined := (cpu.link << 12) | cpu.ac
		for range count {
			if right {
				combined = (combined >> 1) | ((combined & 1) << 12)
			} else {
				combined = ((combined << 1) & 0o17777) | ((combined >> 12) & 1)
			}
		}
		cpu.link = (combined >> 12) & LINK_MASK
		cpu.ac = combined & WORD_MASK
	}

	if (word & OPR1_IAC) != 0 {
		combined := ((cpu.link << 12) | cpu.ac) + 1
		cpu.link = (combined >> 12) & LINK_MASK
		cpu.ac = combined & WORD_MASK
	}
}

// operateGroup2 applies CLA, the skip conditions, OSR, HLT and ION.
func (cpu *Cpu) operateGroup2(word uint16) {
	if (word & OPR2_CLA) != 0 {
		cpu.ac = 0
	}

	cond := ((word&OPR2_SMA) != 0 && (cpu.ac&SIGN_BIT) != 0) ||
		((word&OPR2_SZA) != 0 && cpu.ac == 0) ||
		((word&OPR2_SNL) != 0 && cpu.link != 0)

	if (word & OPR2_OSR) != 0 {
		cpu.ac = (cpu.ac | cpu.switchRegister) & WORD_MASK
	}
	if (word & OPR2_HLT) != 0 {
		cpu.halted = true
	}
	if (word & OPR2_ION) != 0 {
		cpu.interruptEnable = true
	}

	skip := cond
	if (word & OPR2_SENSE) != 0 {
		skip = !cond
	}
	if skip {
		cpu.skipPending = true
	}
}
