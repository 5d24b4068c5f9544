package main

import (
	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/jsfuse"
	"github.com/deepnoodle-ai/jsfuse/ast"
)

func (a *app) fmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Print a program in canonical form without rewriting it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			program, err := jsfuse.Parse(cmd.Context(), in.source, jsfuse.WithFilename(in.path))
			if err != nil {
				return err
			}
			return writeOutput(cmd, in, ast.Format(program))
		},
	}
	addInputFlags(cmd.Flags())
	cmd.Flags().BoolP("write", "w", false, "write the result back to the input file")
	return cmd
}
