package il

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Digest returns a hex-encoded SHA-256 over the program's structure:
// function, block, instruction, and edge indices plus instruction addresses
// and text. Two programs with the same digest are structurally
// correspondent for migration purposes.
func Digest(p *Program) string {
	h := sha256.New()
	for _, f := range p.functions {
		fmt.Fprintf(h, "fn %d %s\n", f.index, f.name)
		for _, block := range f.blocks {
			fmt.Fprintf(h, "bb %d\n", block.index)
			for _, instruction := range block.instructions {
				if instruction.hasAddr {
					fmt.Fprintf(h, "in %d 0x%x %s\n", instruction.index, instruction.address, instruction.text)
				} else {
					fmt.Fprintf(h, "in %d - %s\n", instruction.index, instruction.text)
				}
			}
		}
		for _, edge := range f.cfg.edges {
			fmt.Fprintf(h, "eg %d %d\n", edge.head, edge.tail)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
