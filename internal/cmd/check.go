package cmd

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"bennypowers.dev/jsxtree/internal/loader"
	"bennypowers.dev/jsxtree/internal/position"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// ErrCheckFailed is returned when any checked file fails.
var ErrCheckFailed = errors.New("check failed")

// checkResult is the outcome for one file. err is nil for a clean round
// trip.
type checkResult struct {
	path string
	err  error
}

// checkFile loads path and compares the stringified tree with its source.
func checkFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // project source file
	if err != nil {
		return err
	}
	source := string(data)
	root, err := loader.Build(source, loader.WithFilePath(path))
	if err != nil {
		return err
	}
	out := loader.Stringify(root)
	if out == source {
		return nil
	}
	i := 0
	for i < len(out) && i < len(source) && out[i] == source[i] {
		i++
	}
	line, column := position.NewIndex(source).Position(i)
	return fmt.Errorf("output differs from source at %d:%d", line+1, column+1)
}

func checkCmd() *cobra.Command {
	var jobs int

	cmd := cobra.Command{
		Use:   "check [PATTERN...]",
		Short: "Verify that files survive a load and print unchanged.",
		Long: "Check loads every matched file into a node tree and stringifies it again, reporting syntax errors and files whose output differs. " +
			"Without patterns the configured include and exclude patterns apply.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			var files []string
			if len(args) > 0 {
				files, err = cfg.Match(args)
			} else {
				files, err = cfg.Files()
			}
			if err != nil {
				return err
			}

			results := make([]checkResult, len(files))
			var g errgroup.Group
			g.SetLimit(max(jobs, 1))
			for i, path := range files {
				g.Go(func() error {
					results[i] = checkResult{path: path, err: checkFile(path)}
					return nil
				})
			}
			_ = g.Wait()

			out := cmd.OutOrStdout()
			var errs []error
			for _, r := range results {
				if r.err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", r.path, r.err))
					_, _ = fmt.Fprintf(out, "FAIL %s: %v\n", r.path, r.err)
					continue
				}
				_, _ = fmt.Fprintf(out, "ok   %s\n", r.path)
			}
			if len(errs) > 0 {
				return fmt.Errorf("%w: %d of %d files\n%w", ErrCheckFailed, len(errs), len(files), errors.Join(errs...))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "Number of files checked in parallel.")

	return &cmd
}
