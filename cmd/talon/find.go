package main

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"talon/internal/ilfile"
	"talon/internal/loc"
	"talon/internal/observ"
	"talon/internal/trace"
)

var findCmd = &cobra.Command{
	Use:   "find [flags] <program.toml>...",
	Short: "Locate an instruction address in one or more program fixtures",
	Long:  `Locate the first instruction carrying the given address in each program fixture, in the program's declared enumeration order`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFind,
}

func init() {
	findCmd.Flags().String("address", "", "instruction address to locate (e.g. 0x1000)")
	findCmd.Flags().Int("jobs", 0, "max parallel workers for multiple files (0=auto)")
	if err := findCmd.MarkFlagRequired("address"); err != nil {
		panic(err)
	}
}

// findResult is one file's outcome; indices are per-goroutine unique, so
// the results slice needs no mutex.
type findResult struct {
	path     string
	location loc.ProgramLocation
	text     string
	found    bool
	err      error
}

func runFind(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	tracer := trace.FromContext(cmd.Context())
	timer := observ.NewTimer()

	addrStr, err := cmd.Flags().GetString("address")
	if err != nil {
		return fmt.Errorf("failed to get address flag: %w", err)
	}
	address, err := parseAddress(addrStr)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	span := trace.Begin(tracer, trace.ScopePass, "scan", 0)
	phase := timer.Begin("scan")
	results := make([]findResult, len(args))

	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(min(jobs, len(args)))
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = findInFile(path, address)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	span.End(fmt.Sprintf("%d files", len(args)))
	timer.End(phase, fmt.Sprintf("%d files", len(args)))

	missing := 0
	for _, res := range results {
		switch {
		case res.err != nil:
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", res.path, res.err)
			missing++
		case !res.found:
			fmt.Fprintf(cmd.OutOrStdout(), "%s: 0x%x not found\n", res.path, address)
			missing++
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s  %s\n", res.path, res.location, res.text)
		}
	}
	if err := printTimings(cmd, timer); err != nil {
		return err
	}
	if missing > 0 {
		return fmt.Errorf("address 0x%x not located in %d of %d files", address, missing, len(args))
	}
	return nil
}

func findInFile(path string, address uint64) findResult {
	res := findResult{path: path}
	f, err := ilfile.Load(path)
	if err != nil {
		res.err = err
		return res
	}
	l, ok := loc.FromAddress(f.Program, address)
	if !ok {
		return res
	}
	res.found = true
	res.location = l.Owned()
	res.text = l.Instruction().Text()
	return res
}

// parseAddress accepts decimal or 0x-prefixed hex.
func parseAddress(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("missing --address value")
	}
	address, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return address, nil
}
