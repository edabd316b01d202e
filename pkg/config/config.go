// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/reinclude/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Rule is a literal replacement applied to files whose name matches Glob
type Rule struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
	Glob string `json:"glob" yaml:"glob"`
}

// 📚 Config represents the complete configuration
type Config struct {
	// Directory to rewrite; empty means the working directory
	Directory string `json:"directory,omitempty" yaml:"directory,omitempty"`
	// Atomic replaces each file through a temp file and rename
	Atomic bool `json:"atomic,omitempty" yaml:"atomic,omitempty"`
	// Rules to apply; empty means the default rule
	Rules []Rule `json:"rules,omitempty" yaml:"rules,omitempty"`

	location string
}

// 🎯 Default returns the built-in configuration: `.h"` -> `.hpp"` in *.hpp files of the working directory
func Default() *Config {
	def := text.DefaultRule()
	return &Config{
		Rules: []Rule{{
			From: def.FromText,
			To:   def.ToText,
			Glob: def.FileFilterGlob,
		}},
	}
}

// Location returns the path the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// ReplacementRules converts the configured rules for the text replacer
func (cfg *Config) ReplacementRules() []text.ReplacementRule {
	rules := make([]text.ReplacementRule, 0, len(cfg.Rules))
	for _, r := range cfg.Rules {
		rules = append(rules, text.ReplacementRule{
			FromText:       r.From,
			ToText:         r.To,
			FileFilterGlob: r.Glob,
		})
	}
	return rules
}

// 🔍 Validate fills defaults and checks the configuration.
// A relative directory in a loaded file is resolved against the file's directory.
func Validate(ctx context.Context, cfg *Config) error {
	logger := zerolog.Ctx(ctx)

	if cfg == nil {
		return errors.Errorf("config is nil")
	}

	if len(cfg.Rules) == 0 {
		logger.Debug().Msg("no rules configured, using default rule")
		cfg.Rules = Default().Rules
	}

	if strings.TrimSpace(cfg.Directory) != "" {
		dir := filepath.Clean(cfg.Directory)
		if !filepath.IsAbs(dir) && cfg.location != "" {
			dir = filepath.Join(filepath.Dir(cfg.location), dir)
		}
		cfg.Directory = dir
	}

	if err := text.NewSimpleTextReplacer().ValidateRules(cfg.ReplacementRules()); err != nil {
		return errors.Errorf("validating rules: %w", err)
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	dir := cfg.Directory
	if dir == "" {
		dir = "."
	}
	parts := make([]string, 0, len(cfg.Rules))
	for _, r := range cfg.Rules {
		parts = append(parts, fmt.Sprintf("%s: %q -> %q", r.Glob, r.From, r.To))
	}
	mode := "in-place"
	if cfg.Atomic {
		mode = "atomic"
	}
	return fmt.Sprintf("%s [%s] (%s)", dir, strings.Join(parts, ", "), mode)
}
