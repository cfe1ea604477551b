// Package ilfile loads IL programs from TOML fixture files.
//
// The format mirrors the graph structure directly; indices are not written
// in the file, they are assigned in declared order by the il builders, so
// two files with the same shape produce structurally correspondent
// programs:
//
//	name = "demo"
//
//	[[function]]
//	name = "main"
//
//	[[function.block]]
//	[[function.block.instruction]]
//	address = 0x1000
//	text = "push"
//
//	[[function.edge]]
//	head = 0
//	tail = 1
//	label = "cond"
package ilfile

import (
	"fmt"
	"os"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"talon/internal/il"
)

type programFile struct {
	Name      string         `toml:"name"`
	Functions []functionFile `toml:"function"`
}

type functionFile struct {
	Name   string      `toml:"name"`
	Blocks []blockFile `toml:"block"`
	Edges  []edgeFile  `toml:"edge"`
}

type blockFile struct {
	Instructions []instructionFile `toml:"instruction"`
}

type instructionFile struct {
	Address *int64 `toml:"address"` // optional; absent means no address
	Text    string `toml:"text"`
}

type edgeFile struct {
	Head  int64  `toml:"head"`
	Tail  int64  `toml:"tail"`
	Label string `toml:"label"`
}

// File is a parsed program fixture.
type File struct {
	Name    string
	Program *il.Program
}

// Load reads and parses a program fixture from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ilfile: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("ilfile: %s: %w", path, err)
	}
	return f, nil
}

// Parse builds a validated program from TOML fixture data.
func Parse(data []byte) (*File, error) {
	var pf programFile
	meta, err := toml.Decode(string(data), &pf)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if und := meta.Undecoded(); len(und) > 0 {
		return nil, fmt.Errorf("unknown key %q", und[0].String())
	}

	program := il.NewProgram()
	for fi, ff := range pf.Functions {
		function := il.NewFunction(ff.Name)
		for _, bf := range ff.Blocks {
			block := function.NewBlock()
			for _, inf := range bf.Instructions {
				if inf.Address == nil {
					block.AppendInstruction(inf.Text)
					continue
				}
				addr, err := safecast.Conv[uint64](*inf.Address)
				if err != nil {
					return nil, fmt.Errorf("function %d: invalid address %d: %w", fi, *inf.Address, err)
				}
				block.AppendInstructionAt(addr, inf.Text)
			}
		}
		for _, ef := range ff.Edges {
			head, err := safecast.Conv[uint64](ef.Head)
			if err != nil {
				return nil, fmt.Errorf("function %d: invalid edge head %d: %w", fi, ef.Head, err)
			}
			tail, err := safecast.Conv[uint64](ef.Tail)
			if err != nil {
				return nil, fmt.Errorf("function %d: invalid edge tail %d: %w", fi, ef.Tail, err)
			}
			if _, err := function.AddEdgeWithLabel(il.BlockIndex(head), il.BlockIndex(tail), ef.Label); err != nil {
				return nil, fmt.Errorf("function %d: %w", fi, err)
			}
		}
		program.AddFunction(function)
	}

	if err := il.Validate(program); err != nil {
		return nil, err
	}
	return &File{Name: pf.Name, Program: program}, nil
}
