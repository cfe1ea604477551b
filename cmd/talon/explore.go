package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"talon/internal/ilfile"
	"talon/internal/ui"
)

var exploreCmd = &cobra.Command{
	Use:   "explore [flags] <program.toml>",
	Short: "Step through a program's structural successors interactively",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplore,
}

func init() {
	exploreCmd.Flags().String("address", "", "starting instruction address (default: first instruction of the first function)")
}

func runExplore(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("explore needs an interactive terminal")
	}

	f, err := ilfile.Load(args[0])
	if err != nil {
		return err
	}
	start, err := startLocation(cmd, f.Program)
	if err != nil {
		return err
	}

	title := args[0]
	if f.Name != "" {
		title = f.Name
	}
	model := ui.NewExploreModel(title, start)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("explore ui: %w", err)
	}
	return nil
}
