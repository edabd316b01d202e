package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/reinclude/cmd/reinclude/commands"
	"github.com/walteh/reinclude/cmd/reinclude/opts"
	"github.com/walteh/reinclude/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// NewRootCmd creates the root command; run without arguments it rewrites the working directory
func NewRootCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reinclude",
		Short: `Rewrite quoted ".h" includes to ".hpp" in the *.hpp files of a directory`,
		Long: `reinclude lists a single directory (the working directory by default), selects
every *.hpp file, replaces each occurrence of .h" with .hpp" and writes the
file back in place. Subdirectories are not visited.

A config file (--config) may declare other rules, a directory and atomic writes.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), cmd.ErrOrStderr(), o.Debug)

			o.UserLogger = log.NewUserLogger(ctx, cmd.OutOrStdout())
			o.UserLogger.SetQuiet(o.Quiet)

			cmd.SetContext(log.NewContext(ctx, o.UserLogger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := commands.RunRewrite(cmd.Context(), o, false)
			return err
		},
	}

	addRootFlags(cmd, o)

	cmd.AddCommand(
		commands.NewCheckCmd(o),
		commands.NewVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "config file path (.hcl, .yaml, .json or .reincluderc)")
	cmd.PersistentFlags().StringVar(&o.Dir, "dir", "", "directory to rewrite (default: working directory)")
	cmd.PersistentFlags().BoolVar(&o.Atomic, "atomic", false, "replace files through a temp file and rename")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&o.Quiet, "quiet", "q", false, "only print errors")
}

// setupLogging attaches a zerolog console logger to ctx
func setupLogging(ctx context.Context, out io.Writer, debug bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: out}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

// reportError prints a failed run. Flag errors happen before a user logger exists.
func reportError(ctx context.Context, o *opts.RootOpts, out io.Writer, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ul := o.UserLogger
	if ul == nil {
		ul = log.NewUserLogger(ctx, out)
	}

	if errors.Is(err, commands.ErrChangesPending) {
		ul.LogValidation(false, err.Error(), nil)
		return
	}
	ul.LogValidation(false, "Command failed", err)
}
