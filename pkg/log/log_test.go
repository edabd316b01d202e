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
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/reinclude/pkg/status"
)

func newTestLogger(t *testing.T) (*UserLogger, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	// Disable color for testing
	color.NoColor = true
	pterm.DisableStyling()
	t.Cleanup(func() {
		color.NoColor = false
		pterm.EnableStyling()
	})

	console := &bytes.Buffer{}
	events := &bytes.Buffer{}
	zlog := zerolog.New(events).Level(zerolog.DebugLevel)
	ctx := zlog.WithContext(context.Background())

	return NewUserLogger(ctx, console), console, events
}

func TestUserLogger(t *testing.T) {
	tests := []struct {
		name        string
		quiet       bool
		op          func(logger *UserLogger)
		wantConsole []string
		wantEvents  []string
	}{
		{
			name: "log_file_change",
			op: func(logger *UserLogger) {
				logger.LogFileChange(status.FileInfo{
					Path:         "vm.hpp",
					Status:       status.StatusModified,
					Replacements: 4,
				})
			},
			wantConsole: []string{"✓ vm.hpp", "modified", "4"},
			wantEvents:  []string{`"path":"vm.hpp"`, `"replacements":4`, `"message":"file processed"`},
		},
		{
			name: "log_file_error",
			op: func(logger *UserLogger) {
				logger.LogFileChange(status.FileInfo{
					Path:   "vm.hpp",
					Status: status.StatusFailed,
					Error:  errors.New("permission denied"),
				})
			},
			wantConsole: []string{"✗ vm.hpp", "failed"},
			wantEvents:  []string{`"level":"error"`, `"error":"permission denied"`},
		},
		{
			name: "log_summary",
			op: func(logger *UserLogger) {
				logger.LogSummary(2, 3, 5, false)
			},
			wantConsole: []string{"Rewrote 2 of 3 files (5 replacements)"},
			wantEvents:  []string{`"changed":2`, `"dry_run":false`},
		},
		{
			name: "log_summary_dry_run",
			op: func(logger *UserLogger) {
				logger.LogSummary(1, 1, 1, true)
			},
			wantConsole: []string{"Would rewrite 1 of 1 files (1 replacements)"},
			wantEvents:  []string{`"dry_run":true`},
		},
		{
			name: "log_state_change",
			op: func(logger *UserLogger) {
				logger.LogStateChange("rewriting /tmp/include")
			},
			wantConsole: []string{"rewriting /tmp/include"},
			wantEvents:  []string{`"message":"rewriting /tmp/include"`},
		},
		{
			name: "log_validation_failure",
			op: func(logger *UserLogger) {
				logger.LogValidation(false, "Command failed", errors.New("listing directory"))
			},
			wantConsole: []string{"Command failed", "listing directory"},
			wantEvents:  []string{`"level":"error"`},
		},
		{
			name:  "quiet_suppresses_console",
			quiet: true,
			op: func(logger *UserLogger) {
				logger.LogSummary(2, 3, 5, false)
				logger.LogFileChange(status.FileInfo{Path: "vm.hpp", Status: status.StatusModified})
			},
			wantEvents: []string{`"changed":2`},
		},
		{
			name:  "quiet_still_prints_failures",
			quiet: true,
			op: func(logger *UserLogger) {
				logger.LogValidation(false, "Command failed", errors.New("boom"))
			},
			wantConsole: []string{"Command failed", "boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, console, events := newTestLogger(t)
			logger.SetQuiet(tt.quiet)

			tt.op(logger)

			if len(tt.wantConsole) == 0 {
				assert.Empty(t, strings.TrimSpace(console.String()), "console should be empty")
			}
			for _, want := range tt.wantConsole {
				assert.Contains(t, console.String(), want)
			}
			for _, want := range tt.wantEvents {
				assert.Contains(t, events.String(), want)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	logger, _, _ := newTestLogger(t)

	ctx := NewContext(context.Background(), logger)
	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	missing := FromContext(context.Background())
	require.NotNil(t, missing)
	assert.NotPanics(t, func() {
		missing.LogStateChange("discarded")
	})
}
