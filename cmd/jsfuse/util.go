package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/mattn/go-isatty"

	"github.com/deepnoodle-ai/jsfuse/config"
	"github.com/deepnoodle-ai/jsfuse/errz"
	"github.com/deepnoodle-ai/jsfuse/transform/composition"
)

var (
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", red(errorMessage(err)))
	os.Exit(1)
}

// errorMessage renders err for the terminal. Diagnostics with a known
// location show the offending source line.
func errorMessage(err error) string {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		lines := make([]string, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			lines = append(lines, errorMessage(e))
		}
		return strings.Join(lines, "\n")
	}
	var e *errz.Error
	if errors.As(err, &e) {
		return strings.TrimRight(e.FriendlyErrorMessage(), "\n")
	}
	return err.Error()
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Reads global settings and adjusts the environment accordingly.
func processGlobalFlags(cfg config.Config) {
	if cfg.NoColor {
		color.NoColor = true
	}
}

func printStats(w io.Writer, stats composition.Stats) {
	fmt.Fprintf(w, "%s %d\n", cyan("rewrites:"), stats.Rewrites())
	rows := []struct {
		name  string
		count int
	}{
		{"lambdas", stats.Lambdas},
		{"merges", stats.Merges},
		{"splices", stats.Splices},
		{"wraps", stats.Wraps},
		{"direct calls", stats.DirectCalls},
		{"hoisted", stats.Hoisted},
		{"skipped", stats.Skipped},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %s %d\n", faint(fmt.Sprintf("%-13s", row.name)), row.count)
	}
}
