package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"talon/internal/ilfile"
	"talon/internal/loc"
	"talon/internal/locset"
	"talon/internal/observ"
	"talon/internal/trace"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [flags] <from.toml> <to.toml>",
	Short: "Re-resolve locations from one program snapshot in another",
	Long:  `Re-resolve locations tracked in one program fixture against a structurally correspondent second fixture. Identity is by index; each failure names the entity that did not resolve`,
	Args:  cobra.ExactArgs(2),
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().String("locations", "", "location set saved against the source program (msgpack)")
	migrateCmd.Flags().String("address", "", "single instruction address to migrate instead of a set")
	migrateCmd.Flags().String("save", "", "write the migrated set to this path, bound to the target program")
	migrateCmd.Flags().Bool("strict", false, "fail on the first location that does not resolve")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	tracer := trace.FromContext(cmd.Context())
	timer := observ.NewTimer()

	span := trace.Begin(tracer, trace.ScopePass, "load", 0)
	phase := timer.Begin("load")
	files := make([]*ilfile.File, 2)
	g, _ := errgroup.WithContext(cmd.Context())
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			f, err := ilfile.Load(path)
			if err != nil {
				return err
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.End("load failed")
		return err
	}
	span.End("")
	timer.End(phase, "2 programs")
	source, target := files[0], files[1]

	refs, err := sourceLocations(cmd, source)
	if err != nil {
		return err
	}

	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return fmt.Errorf("failed to get strict flag: %w", err)
	}
	quiet, err := quietEnabled(cmd)
	if err != nil {
		return err
	}

	span = trace.Begin(tracer, trace.ScopePass, "migrate", 0)
	phase = timer.Begin("migrate")
	out := cmd.OutOrStdout()
	var migrated []loc.ProgramLocation
	failures := 0
	for _, ref := range refs {
		moved, err := ref.Migrate(target.Program)
		if err != nil {
			if strict {
				span.End("failed")
				return err
			}
			failures++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", ref, err)
			continue
		}
		migrated = append(migrated, moved.Owned())
		if !quiet {
			fmt.Fprintf(out, "%s -> %s\n", ref, moved)
		}
	}
	span.End(fmt.Sprintf("%d ok, %d failed", len(migrated), failures))
	timer.End(phase, fmt.Sprintf("%d locations", len(refs)))

	savePath, err := cmd.Flags().GetString("save")
	if err != nil {
		return fmt.Errorf("failed to get save flag: %w", err)
	}
	if savePath != "" {
		if err := locset.Save(savePath, target.Program, migrated); err != nil {
			return err
		}
		fmt.Fprintf(out, "saved %d locations to %s\n", len(migrated), savePath)
	}

	if err := printTimings(cmd, timer); err != nil {
		return err
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d locations did not resolve in %s", failures, len(refs), args[1])
	}
	return nil
}

// sourceLocations resolves the locations to migrate against the source
// program: a saved set, or the single location of --address.
func sourceLocations(cmd *cobra.Command, source *ilfile.File) ([]loc.RefProgramLocation, error) {
	setPath, err := cmd.Flags().GetString("locations")
	if err != nil {
		return nil, fmt.Errorf("failed to get locations flag: %w", err)
	}
	addrStr, err := cmd.Flags().GetString("address")
	if err != nil {
		return nil, fmt.Errorf("failed to get address flag: %w", err)
	}

	switch {
	case setPath != "" && addrStr != "":
		return nil, fmt.Errorf("--locations and --address are mutually exclusive")
	case setPath != "":
		owned, err := locset.Load(setPath, source.Program)
		if err != nil {
			return nil, err
		}
		refs := make([]loc.RefProgramLocation, 0, len(owned))
		for _, l := range owned {
			ref, ok := l.Apply(source.Program)
			if !ok {
				return nil, fmt.Errorf("saved location %s does not apply to the source program", l)
			}
			refs = append(refs, ref)
		}
		return refs, nil
	case addrStr != "":
		address, err := parseAddress(addrStr)
		if err != nil {
			return nil, err
		}
		ref, ok := loc.FromAddress(source.Program, address)
		if !ok {
			return nil, fmt.Errorf("address 0x%x not found in source program", address)
		}
		return []loc.RefProgramLocation{ref}, nil
	default:
		return nil, fmt.Errorf("one of --locations or --address is required")
	}
}
