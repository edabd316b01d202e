package commands

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/reinclude/cmd/reinclude/opts"
	"github.com/walteh/reinclude/pkg/log"
	"github.com/walteh/reinclude/pkg/rewrite"
	"github.com/walteh/reinclude/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// RunRewrite loads the effective config and rewrites the target directory.
// Rows for every processed file are printed even when the run fails part way.
func RunRewrite(ctx context.Context, o *opts.RootOpts, dryRun bool) (*rewrite.Result, error) {
	cfg, err := o.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}

	rwOpts := opts.RewriteOptions(cfg)
	rwOpts.DryRun = dryRun
	rwOpts.Reporter = status.New(zerolog.Ctx(ctx))

	rw, err := rewrite.New(rwOpts)
	if err != nil {
		return nil, errors.Errorf("creating rewriter: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("rewriting directory")

	ul := log.FromContext(ctx)
	if dryRun {
		ul.LogStateChange("Checking " + rw.Dir())
	} else {
		ul.LogStateChange("Rewriting " + rw.Dir())
	}

	result, err := rw.Run(ctx)
	for _, f := range result.Files {
		ul.LogFileChange(status.FileInfo{
			Path:         f.Name,
			Status:       f.Status,
			Replacements: f.Replacements,
		})
	}
	if err != nil {
		return result, errors.Errorf("rewriting %s: %w", rw.Dir(), err)
	}

	ul.LogSummary(result.Changed(), len(result.Files), result.Replacements(), dryRun)

	return result, nil
}
