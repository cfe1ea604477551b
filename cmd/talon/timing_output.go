package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"talon/internal/observ"
)

// printTimings emits the timer summary to stderr when --timings is set.
func printTimings(cmd *cobra.Command, timer *observ.Timer) error {
	root := cmd.Root()
	on, err := root.PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if !on {
		return nil
	}
	format, err := root.PersistentFlags().GetString("timings-format")
	if err != nil {
		return fmt.Errorf("failed to get timings-format flag: %w", err)
	}
	switch format {
	case "json":
		enc := json.NewEncoder(cmd.ErrOrStderr())
		enc.SetIndent("", "  ")
		return enc.Encode(timer.Report())
	case "pretty":
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
		return nil
	default:
		return fmt.Errorf("invalid --timings-format value %q (expected pretty|json)", format)
	}
}
