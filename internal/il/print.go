package il

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a human-readable representation of the program.
func Fprint(w io.Writer, p *Program) error {
	if w == nil || p == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "funcs=%d\n", len(p.functions)); err != nil {
		return err
	}
	for _, f := range p.functions {
		if err := printFunction(w, f); err != nil {
			return err
		}
	}
	return nil
}

// Sprint returns the program as a string, for tests and quick dumps.
func Sprint(p *Program) string {
	var sb strings.Builder
	// strings.Builder writes cannot fail
	_ = Fprint(&sb, p)
	return sb.String()
}

func printFunction(w io.Writer, f *Function) error {
	if _, err := fmt.Fprintf(w, "fn %d %s: blocks=%d edges=%d\n", f.index, f.name, len(f.blocks), len(f.cfg.edges)); err != nil {
		return err
	}
	for _, block := range f.blocks {
		if block.IsEmpty() {
			if _, err := fmt.Fprintf(w, "  bb%d: <empty>\n", block.index); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "  bb%d:\n", block.index); err != nil {
			return err
		}
		for _, instruction := range block.instructions {
			if _, err := fmt.Fprintf(w, "    %s\n", instruction); err != nil {
				return err
			}
		}
	}
	for _, edge := range f.cfg.edges {
		if _, err := fmt.Fprintf(w, "  %s\n", edge); err != nil {
			return err
		}
	}
	return nil
}
