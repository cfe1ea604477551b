package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"talon/internal/il"
	"talon/internal/ilfile"
	"talon/internal/loc"
	"talon/internal/observ"
	"talon/internal/trace"
)

var walkCmd = &cobra.Command{
	Use:   "walk [flags] <program.toml>",
	Short: "Walk structural successors breadth-first from a starting position",
	Long:  `Walk the control-flow graph in structural order from --address (or the program's first instruction), printing each frontier of successor locations. Branch targets are never interpreted; this is graph order, not execution order`,
	Args:  cobra.ExactArgs(1),
	RunE:  runWalk,
}

func init() {
	walkCmd.Flags().String("address", "", "starting instruction address (default: first instruction of the first function)")
	walkCmd.Flags().Int("steps", 10, "maximum number of frontiers to expand")
}

func runWalk(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	tracer := trace.FromContext(cmd.Context())
	timer := observ.NewTimer()

	phase := timer.Begin("load")
	f, err := ilfile.Load(args[0])
	if err != nil {
		return err
	}
	timer.End(phase, args[0])

	start, err := startLocation(cmd, f.Program)
	if err != nil {
		return err
	}
	steps, err := cmd.Flags().GetInt("steps")
	if err != nil {
		return fmt.Errorf("failed to get steps flag: %w", err)
	}

	quiet, err := quietEnabled(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "start: %s\n", start)

	span := trace.Begin(tracer, trace.ScopePass, "walk", 0)
	phase = timer.Begin("walk")
	frontier := []loc.RefProgramLocation{start}
	visited := map[loc.ProgramLocation]bool{start.Owned(): true}
	total := 0
	for step := 1; step <= steps && len(frontier) > 0; step++ {
		var next []loc.RefProgramLocation
		for _, l := range frontier {
			successors, err := l.AdvanceForward()
			if err != nil {
				span.End("inconsistent graph")
				return err
			}
			for _, succ := range successors {
				key := succ.Owned()
				if visited[key] {
					continue
				}
				visited[key] = true
				next = append(next, succ)
			}
		}
		if len(next) == 0 {
			if !quiet {
				fmt.Fprintf(out, "step %d: no new locations (walk complete)\n", step)
			}
			break
		}
		if !quiet {
			fmt.Fprintf(out, "step %d:\n", step)
		}
		for _, l := range next {
			span.Point("visit", l.String())
			if !quiet {
				fmt.Fprintf(out, "  %s\n", describeLocation(l))
			}
		}
		total += len(next)
		frontier = next
	}
	span.End(fmt.Sprintf("%d locations", total))
	timer.End(phase, fmt.Sprintf("%d locations", total))

	fmt.Fprintf(out, "visited %d locations\n", total)
	return printTimings(cmd, timer)
}

// startLocation picks the walk's starting point: --address when given,
// otherwise the first position of the program's first function.
func startLocation(cmd *cobra.Command, program *il.Program) (loc.RefProgramLocation, error) {
	addrStr, err := cmd.Flags().GetString("address")
	if err != nil {
		return loc.RefProgramLocation{}, fmt.Errorf("failed to get address flag: %w", err)
	}
	if addrStr != "" {
		address, err := parseAddress(addrStr)
		if err != nil {
			return loc.RefProgramLocation{}, err
		}
		l, ok := loc.FromAddress(program, address)
		if !ok {
			return loc.RefProgramLocation{}, fmt.Errorf("address 0x%x not found in program", address)
		}
		return l, nil
	}
	return firstLocation(program)
}

func firstLocation(program *il.Program) (loc.RefProgramLocation, error) {
	functions := program.Functions()
	if len(functions) == 0 {
		return loc.RefProgramLocation{}, fmt.Errorf("program has no functions")
	}
	function := functions[0]
	blocks := function.Blocks()
	if len(blocks) == 0 {
		return loc.RefProgramLocation{}, fmt.Errorf("function %d has no blocks", function.Index())
	}
	block := blocks[0]
	if block.IsEmpty() {
		return loc.NewRefProgramLocation(function, loc.RefEmptyBlock(block)), nil
	}
	return loc.NewRefProgramLocation(function, loc.RefInstruction(block, block.Instructions()[0])), nil
}

func describeLocation(l loc.RefProgramLocation) string {
	if instruction := l.Instruction(); instruction != nil {
		return fmt.Sprintf("%s  %s", l, instruction.Text())
	}
	if edge := l.FunctionLocation().Edge(); edge != nil && edge.Label() != "" {
		return fmt.Sprintf("%s  [%s]", l, edge.Label())
	}
	return l.String()
}
