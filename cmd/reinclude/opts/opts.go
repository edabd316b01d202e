package opts

import (
	"context"

	"github.com/walteh/reinclude/pkg/config"
	"github.com/walteh/reinclude/pkg/log"
	"github.com/walteh/reinclude/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	Dir        string
	Atomic     bool
	Debug      bool
	Quiet      bool

	UserLogger *log.UserLogger
}

// LoadConfig returns the built-in defaults, or the config file when one was
// given, with flag overrides applied on top
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	cfg := config.Default()
	if o.ConfigFile != "" {
		loaded, err := config.LoadConfig(ctx, o.ConfigFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if o.Dir != "" {
		cfg.Directory = o.Dir
	}
	if o.Atomic {
		cfg.Atomic = true
	}

	return cfg, nil
}

// RewriteOptions builds rewriter options from a loaded config
func RewriteOptions(cfg *config.Config) rewrite.Options {
	mode := rewrite.ModeInPlace
	if cfg.Atomic {
		mode = rewrite.ModeAtomic
	}
	return rewrite.Options{
		Dir:   cfg.Directory,
		Rules: cfg.ReplacementRules(),
		Mode:  mode,
	}
}
