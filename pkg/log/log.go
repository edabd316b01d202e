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

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/reinclude/pkg/status"
)

// 📢 UserLogger provides user-friendly console feedback, mirrored to zerolog
type UserLogger struct {
	log   zerolog.Logger
	out   io.Writer
	quiet bool
	mu    sync.Mutex
}

// 🏭 NewUserLogger creates a user logger writing to out, using the context's zerolog logger
func NewUserLogger(ctx context.Context, out io.Writer) *UserLogger {
	if out == nil {
		out = os.Stdout
	}
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
		out: out,
	}
}

// SetQuiet suppresses console output; zerolog events are still emitted
func (u *UserLogger) SetQuiet(quiet bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.quiet = quiet
}

func (u *UserLogger) printer(p pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	return p.WithPrefix(pterm.Prefix{Text: prefix, Style: p.Prefix.Style}).WithWriter(u.out)
}

// 📝 LogFileChange prints one row per processed file
func (u *UserLogger) LogFileChange(info status.FileInfo) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if info.Error != nil {
		u.log.Error().Err(info.Error).Str("path", info.Path).Msg("rewriting file")
	} else {
		u.log.Debug().
			Str("path", info.Path).
			Str("status", info.Status.String()).
			Int("replacements", info.Replacements).
			Msg("file processed")
	}

	if u.quiet {
		return
	}
	fmt.Fprintln(u.out, status.FormatFileRow(info))
}

// 📊 LogSummary prints the totals of a finished run
func (u *UserLogger) LogSummary(changed, total, replacements int, dryRun bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	verb := "Rewrote"
	if dryRun {
		verb = "Would rewrite"
	}
	msg := fmt.Sprintf("%s %d of %d files (%d replacements)", verb, changed, total, replacements)

	u.log.Info().
		Int("changed", changed).
		Int("total", total).
		Int("replacements", replacements).
		Bool("dry_run", dryRun).
		Msg(msg)

	if u.quiet {
		return
	}
	u.printer(pterm.Success, "✅").Println(msg)
}

// 📊 LogStateChange logs a change to the overall run
func (u *UserLogger) LogStateChange(description string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.log.Info().Msg(description)
	if u.quiet {
		return
	}
	u.printer(pterm.Info, "📦").Println(description)
}

// 🔍 LogValidation logs validation results. Failures are always printed.
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	switch {
	case valid:
		u.log.Info().Msg(description)
		if !u.quiet {
			u.printer(pterm.Success, "✅").Println(description)
		}
	case err != nil:
		u.log.Error().Err(err).Msg(description)
		u.printer(pterm.Error, "❌").Println(description)
		u.printer(pterm.Error, "ERROR").Println(err)
	default:
		u.log.Warn().Msg(description)
		u.printer(pterm.Warning, "⚠️").Println(description)
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the user logger from context, or a discarding one if absent
func FromContext(ctx context.Context) *UserLogger {
	logger, ok := ctx.Value(contextKey{}).(*UserLogger)
	if !ok {
		return &UserLogger{log: zerolog.Nop(), out: io.Discard, quiet: true}
	}
	return logger
}

// 🎯 NewContext adds the user logger to context
func NewContext(ctx context.Context, l *UserLogger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}
