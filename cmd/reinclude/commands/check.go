package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/reinclude/cmd/reinclude/opts"
	"github.com/walteh/reinclude/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// ErrChangesPending is returned by check when at least one file would be rewritten
var ErrChangesPending = errors.Base("files need to be rewritten")

// NewCheckCmd creates a new check command
func NewCheckCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report files that would be rewritten, without writing",
		Long: `Check reads and transforms every matching file exactly like a normal run,
but writes nothing. It exits with status 1 when any file would change,
which makes it usable as a CI guard after a migration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := RunRewrite(cmd.Context(), o, true)
			if err != nil {
				return err
			}

			if n := result.Changed(); n > 0 {
				return errors.Errorf("%d of %d: %w", n, len(result.Files), ErrChangesPending)
			}

			log.FromContext(cmd.Context()).LogValidation(true, "All files are up to date", nil)
			return nil
		},
	}

	return cmd
}
