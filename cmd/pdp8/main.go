// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/ezrec/pdp8/cpu"
	"github.com/ezrec/pdp8/emulator"
)

func main() {
	var compile string
	var boardName string
	var switches string
	var cycles int
	var listing bool
	var boards bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".pal file to assemble and run")
	flag.StringVar(&boardName, "b", "host", "Board to emulate")
	flag.StringVar(&switches, "s", "0", "Switch register, in octal")
	flag.IntVar(&cycles, "n", 1_000_000, "Maximum instructions to execute")
	flag.BoolVar(&listing, "l", false, "Print the assembler listing, do not execute")
	flag.BoolVar(&boards, "B", false, "List the available boards")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if boards {
		for name, board := range cpu.Boards() {
			fmt.Printf("%-10v %v (%v)\n", name, board.Name, board.Mcu)
		}
		return
	}

	board, err := cpu.LookupBoard(boardName)
	if err != nil {
		log.Fatalf("%v: %v", boardName, err)
	}

	sr, err := strconv.ParseUint(switches, 8, 12)
	if err != nil {
		log.Fatalf("-s %v: %v", switches, err)
	}

	emu, err := emulator.NewEmulator(board)
	if err != nil {
		log.Fatalf("%v: %v", boardName, err)
	}
	defer emu.Close()

	emu.Verbose = verbose
	emu.Cpu.SetSwitchRegister(uint16(sr))

	// Assemble the program.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		err = emu.Assemble(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	if listing {
		fmt.Print(emu.Program.Listing())
		return
	}

	err = emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	count, err := emu.Run(cycles)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	if !emu.Cpu.Halted() {
		log.Printf("%v: not halted after %d instructions", compile, count)
	}

	fmt.Print(emu.Cpu.String())
}
