package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"talon/internal/il"
	"talon/internal/ilfile"
	"talon/internal/observ"
	"talon/internal/trace"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] <program.toml>",
	Short: "Print a program fixture in human-readable form",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().Bool("stats", false, "print entity counts instead of the full listing")
}

func runDump(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	tracer := trace.FromContext(cmd.Context())
	timer := observ.NewTimer()

	span := trace.Begin(tracer, trace.ScopePass, "load", 0)
	phase := timer.Begin("load")
	f, err := ilfile.Load(args[0])
	span.End("")
	if err != nil {
		return err
	}
	timer.End(phase, args[0])

	out := cmd.OutOrStdout()
	if f.Name != "" {
		fmt.Fprintf(out, "program %s\n", f.Name)
	}
	stats, err := cmd.Flags().GetBool("stats")
	if err != nil {
		return fmt.Errorf("failed to get stats flag: %w", err)
	}
	if stats {
		printStats(cmd, f.Program)
		return printTimings(cmd, timer)
	}
	if err := il.Fprint(out, f.Program); err != nil {
		return err
	}
	return printTimings(cmd, timer)
}

func printStats(cmd *cobra.Command, p *il.Program) {
	var blocks, instructions, edges int
	for _, f := range p.Functions() {
		blocks += len(f.Blocks())
		edges += len(f.CFG().Edges())
		for _, b := range f.Blocks() {
			instructions += len(b.Instructions())
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "functions=%d blocks=%d instructions=%d edges=%d\n",
		len(p.Functions()), blocks, instructions, edges)
}
