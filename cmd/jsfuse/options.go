package main

import (
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/deepnoodle-ai/jsfuse/config"
)

// app carries the configuration shared by all commands of one invocation.
type app struct {
	v   *viper.Viper
	cfg config.Config
}

func newApp(v *viper.Viper) *app {
	return &app{v: v, cfg: config.Default()}
}

// flagKeys maps config keys to the persistent flags that override them.
var flagKeys = map[string]string{
	"no_color":            "no-color",
	"log_level":           "log-level",
	"names.apply2":        "apply2",
	"names.apply3":        "apply3",
	"names.compose_left":  "compose-left",
	"names.compose_right": "compose-right",
	"names.param_prefix":  "param-prefix",
	"names.decl_prefix":   "decl-prefix",
}

// setup resolves the configuration and attaches a logger to the command
// context. It runs before every command.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	for key, name := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := a.v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	path, _ := flags.GetString("config")
	cfg, err := config.Load(a.v, path)
	if err != nil {
		return err
	}
	a.cfg = cfg
	processGlobalFlags(cfg)

	level, _ := cfg.Level()
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:     cmd.ErrOrStderr(),
		NoColor: cfg.NoColor || !isTerminal(cmd.ErrOrStderr()),
	}).Level(level).With().Timestamp().Logger()
	if cfg.File != "" {
		logger.Debug().Str("file", cfg.File).Msg("loaded config")
	}
	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}

func addInputFlags(f *pflag.FlagSet) {
	f.StringP("code", "c", "", "program text to process")
	f.Bool("stdin", false, "read the program from stdin")
}

var errNoInput = errors.New("no input provided")

// input is a program's source text and the file it was read from, if any.
type input struct {
	source string
	path   string
}

// readInput determines what program is to be processed. There are three
// possibilities:
//  1. --code <code>
//  2. --stdin, or stdin when it is not a terminal
//  3. path as args[0]
func readInput(cmd *cobra.Command, args []string) (input, error) {
	codeSet := cmd.Flags().Changed("code")
	stdinSet, _ := cmd.Flags().GetBool("stdin")
	pathSupplied := len(args) > 0

	count := 0
	for _, set := range []bool{codeSet, stdinSet, pathSupplied} {
		if set {
			count++
		}
	}
	if count > 1 {
		return input{}, errors.New("multiple input sources specified")
	}

	switch {
	case codeSet:
		code, _ := cmd.Flags().GetString("code")
		return input{source: code}, nil
	case pathSupplied:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return input{}, err
		}
		return input{source: string(data), path: args[0]}, nil
	case !stdinSet && isTerminal(cmd.InOrStdin()):
		return input{}, errNoInput
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return input{}, err
	}
	return input{source: string(data)}, nil
}

// writeOutput prints code, or replaces the input file with it when --write
// is set.
func writeOutput(cmd *cobra.Command, in input, code string) error {
	write, _ := cmd.Flags().GetBool("write")
	if !write {
		_, err := io.WriteString(cmd.OutOrStdout(), code)
		return err
	}
	if in.path == "" {
		return errors.New("--write requires a file argument")
	}
	info, err := os.Stat(in.path)
	if err != nil {
		return err
	}
	return os.WriteFile(in.path, []byte(code), info.Mode().Perm())
}
