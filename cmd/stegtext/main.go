// Command stegtext hides, finds, and strips invisible secret messages in text.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"xdao.co/stegtext/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// exitError carries a non-usage failure out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func fail(format string, args ...any) error {
	return &exitError{code: 1, err: fmt.Errorf(format, args...)}
}

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	verbose    bool
	format     string
	units      string

	cfg    config.Config
	logger *zap.Logger
}

func run(args []string, in io.Reader, out io.Writer, errOut io.Writer) int {
	a := &app{in: in, out: out, errOut: errOut, logger: zap.NewNop()}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.Execute()
	_ = a.logger.Sync()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		fmt.Fprintf(errOut, "stegtext: %v\n", ee.err)
		return ee.code
	}
	fmt.Fprintf(errOut, "stegtext: %v\n", err)
	return 2
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "stegtext",
		Short: "Hide, find, and strip invisible secret messages in text",
		Long: `stegtext appends invisible carrier characters to visible text so that
build tooling can tag generated strings (captions, localized UI text) with
machine-readable metadata without changing how they render.

Input files are read line by line; "-" or no file reads stdin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Debug logging to stderr")
	root.PersistentFlags().StringVar(&a.format, "format", "", "Output format: json or text (overrides config)")
	root.PersistentFlags().StringVar(&a.units, "units", "", "Range units: bytes or utf16 (overrides config)")

	root.AddCommand(
		a.encodeCommand(),
		a.appendCommand(),
		a.scanCommand(),
		a.stripCommand(),
		a.describeCommand(),
		a.annotateCommand(),
		a.extractCommand(),
		a.configCommand(),
	)
	return root
}

func (a *app) setup() error {
	level := zapcore.WarnLevel
	if a.verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(a.errOut),
		zap.NewAtomicLevelAt(level),
	)
	a.logger = zap.New(core)

	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.LoadFile(a.configPath)
		if err != nil {
			return fail("%v", err)
		}
		cfg = loaded
		a.logger.Debug("loaded config", zap.String("path", a.configPath))
	}
	if a.format != "" {
		cfg.Output.Format = a.format
	}
	if a.units != "" {
		cfg.Output.RangeUnits = a.units
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}
