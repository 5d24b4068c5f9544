package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deepnoodle-ai/jsfuse"
	"github.com/deepnoodle-ai/jsfuse/config"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	return newApp(viper.New()).rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jsfuse [file]",
		Short: "Rewrite function composition in compiled JavaScript into direct calls",
		Long: `jsfuse rewrites A2/A3 applications of the composeL and composeR
primitives emitted by the Elm compiler into plain calls and lambdas.

The program is read from a file argument, --code or stdin, and the
result is printed to stdout unless --write is given.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runOptimize,
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "config file (default ~/"+config.DefaultFile+")")
	pf.Bool("no-color", false, "disable colored output")
	pf.String("log-level", config.DefaultLogLevel, "log level: debug, info, warn, error or disabled")
	pf.String("apply2", "", "name of the two-argument apply helper")
	pf.String("apply3", "", "name of the three-argument apply helper")
	pf.String("compose-left", "", "name of the right-to-left composition primitive")
	pf.String("compose-right", "", "name of the left-to-right composition primitive")
	pf.String("param-prefix", "", "prefix for generated lambda parameters")
	pf.String("decl-prefix", "", "prefix for hoisted declarations")

	f := cmd.Flags()
	addInputFlags(f)
	f.BoolP("write", "w", false, "write the result back to the input file")
	f.Bool("stats", false, "print rewrite counts to stderr")
	f.Bool("strict", false, "fail if any composition site is left unrewritten")

	cmd.AddCommand(a.astCmd(), a.fmtCmd(), versionCmd())
	return cmd
}

func (a *app) runOptimize(cmd *cobra.Command, args []string) error {
	in, err := readInput(cmd, args)
	if errors.Is(err, errNoInput) {
		return cmd.Help()
	}
	if err != nil {
		return err
	}
	opts := []jsfuse.Option{
		jsfuse.WithFilename(in.path),
		jsfuse.WithNames(a.cfg.Names),
	}
	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		opts = append(opts, jsfuse.WithStrict())
	}
	result, err := jsfuse.Optimize(cmd.Context(), in.source, opts...)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd, in, result.Code); err != nil {
		return err
	}
	if stats, _ := cmd.Flags().GetBool("stats"); stats {
		printStats(cmd.ErrOrStderr(), result.Stats)
	}
	return nil
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("output")
			switch strings.ToLower(format) {
			case "json":
				info, err := json.MarshalIndent(map[string]any{
					"version": version,
					"commit":  commit,
					"date":    date,
				}, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(info))
			case "", "text":
				fmt.Fprintln(cmd.OutOrStdout(), version)
			default:
				return fmt.Errorf("unknown output format: %s", format)
			}
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "text", "output format: json or text")
	return cmd
}
