package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vk/blotterkit/internal/app"
	"github.com/vk/blotterkit/internal/blotter"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// usageError marks err as a usage problem, which exits with code 2.
func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	logFormat       string
	logLevel        string
	healthcheckPort int
}

// config validates the flags and builds the app configuration for runPath.
func (f *globalFlags) config(runPath string) (*app.Config, error) {
	cfg, err := app.NewConfig(app.Config{
		RunPath:         runPath,
		LogFormat:       f.logFormat,
		LogLevel:        f.logLevel,
		HealthcheckPort: f.healthcheckPort,
	})
	if err != nil {
		return nil, usageError(err)
	}
	slog.Debug("CLI parameter validation complete.", "config", cfg)
	return cfg, nil
}

// NewCommand builds the blotterkit command tree. Reports and listings go to
// outW, logs go to errW. modules replaces the compiled-in blotters when given.
func NewCommand(outW, errW io.Writer, modules ...blotter.Module) *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:   "blotterkit",
		Short: "Simulate order flow against pluggable blotters",
		Long: `blotterkit loads a run file that names a blotter, submits the run's
orders to it and fills them against the run's prices.

Blotters are resolved by name from a catalog populated at startup.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&flags.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.StringVar(&flags.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.IntVar(&flags.healthcheckPort, "healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")

	root.AddCommand(
		runCmd(flags, outW, errW, modules),
		listCmd(flags, outW, errW, modules),
	)
	return root
}

// Execute runs the command tree against args.
func Execute(ctx context.Context, args []string, outW, errW io.Writer, modules ...blotter.Module) error {
	cmd := NewCommand(outW, errW, modules...)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func runCmd(flags *globalFlags, outW, errW io.Writer, modules []blotter.Module) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "run [RUN_PATH]",
		Short: "Execute a run file or a directory of run files",
		Long: `Execute a run file or a directory of run files.

RUN_PATH is a single .hcl, .yaml or .yml file, or a directory searched
recursively for them. Files in a directory are merged into one run.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return usageError(err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" && len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				slog.Debug("No run path provided, printing usage and exiting.")
				return cmd.Help()
			}
			cfg, err := flags.config(path)
			if err != nil {
				return err
			}
			a := app.NewApp(outW, errW, cfg, modules...)
			_, err = a.Run(cmd.Context())
			return err
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "Path to the run file or directory.")
	return cmd
}

func listCmd(flags *globalFlags, outW, errW io.Writer, modules []blotter.Module) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered blotters",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return usageError(err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config("")
			if err != nil {
				return err
			}
			return app.NewApp(outW, errW, cfg, modules...).List()
		},
	}
}
