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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/reinclude/cmd/reinclude/commands"
	"github.com/walteh/reinclude/cmd/reinclude/opts"
	"gitlab.com/tozd/go/errors"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	color.NoColor = true
	pterm.DisableStyling()
	t.Cleanup(func() {
		color.NoColor = false
		pterm.EnableStyling()
	})

	out := &bytes.Buffer{}
	cmd := NewRootCmd(&opts.RootOpts{})
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing %s", path)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err, "reading %s", path)
	return string(data)
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(wd))
	})
}

func TestRootCmd_NoArgumentsRewritesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.hpp"), `#include "x.h"`)
	writeFile(t, filepath.Join(dir, "b.txt"), `#include "x.h"`)
	chdir(t, dir)

	out, err := runCLI(t)
	require.NoError(t, err)

	assert.Equal(t, `#include "x.hpp"`, readFile(t, filepath.Join(dir, "a.hpp")))
	assert.Equal(t, `#include "x.h"`, readFile(t, filepath.Join(dir, "b.txt")))
	assert.Contains(t, out, "Rewriting ")
	assert.Contains(t, out, "a.hpp")
	assert.Contains(t, out, "Rewrote 1 of 1 files (1 replacements)")
	assert.NotContains(t, out, "b.txt")
}

func TestRootCmd(t *testing.T) {
	tests := []struct {
		name        string
		files       map[string]string
		args        func(t *testing.T, dir string) []string
		wantErr     bool
		errContains string
		wantFiles   map[string]string
		wantOut     []string
	}{
		{
			name: "dir_flag",
			files: map[string]string{
				"vm.hpp": "#include \"chunk.h\"\n#include \"value.h\"\n",
			},
			args: func(t *testing.T, dir string) []string { return []string{"--dir", dir} },
			wantFiles: map[string]string{
				"vm.hpp": "#include \"chunk.hpp\"\n#include \"value.hpp\"\n",
			},
			wantOut: []string{"Rewrote 1 of 1 files (2 replacements)"},
		},
		{
			name: "atomic_flag",
			files: map[string]string{
				"vm.hpp": "#include \"chunk.h\"\n",
			},
			args: func(t *testing.T, dir string) []string { return []string{"--dir", dir, "--atomic"} },
			wantFiles: map[string]string{
				"vm.hpp": "#include \"chunk.hpp\"\n",
			},
		},
		{
			name: "quiet_flag",
			files: map[string]string{
				"vm.hpp": "#include \"chunk.h\"\n",
			},
			args: func(t *testing.T, dir string) []string { return []string{"--dir", dir, "-q"} },
			wantFiles: map[string]string{
				"vm.hpp": "#include \"chunk.hpp\"\n",
			},
		},
		{
			name: "config_file_rules",
			files: map[string]string{
				"reinclude.yaml": "rules:\n  - from: 'old'\n    to: 'new'\n    glob: '*.txt'\n",
				"a.txt":          "old old",
				"a.hpp":          `#include "x.h"`,
			},
			args: func(t *testing.T, dir string) []string {
				return []string{"--config", filepath.Join(dir, "reinclude.yaml"), "--dir", dir}
			},
			wantFiles: map[string]string{
				"a.txt": "new new",
				"a.hpp": `#include "x.h"`,
			},
		},
		{
			name: "config_file_directory",
			files: map[string]string{
				"reinclude.hcl": "directory = \"include\"\n",
				"top.hpp":       `#include "x.h"`,
			},
			args: func(t *testing.T, dir string) []string {
				require.NoError(t, os.Mkdir(filepath.Join(dir, "include"), 0755))
				writeFile(t, filepath.Join(dir, "include", "inner.hpp"), `#include "y.h"`)
				return []string{"-c", filepath.Join(dir, "reinclude.hcl")}
			},
			wantFiles: map[string]string{
				"top.hpp":           `#include "x.h"`,
				"include/inner.hpp": `#include "y.hpp"`,
			},
		},
		{
			name:  "invalid_config",
			files: map[string]string{"reinclude.yaml": "recursive: true\n"},
			args: func(t *testing.T, dir string) []string {
				return []string{"--config", filepath.Join(dir, "reinclude.yaml"), "--dir", dir}
			},
			wantErr:     true,
			errContains: "loading config",
		},
		{
			name: "missing_directory",
			args: func(t *testing.T, dir string) []string {
				return []string{"--dir", filepath.Join(dir, "missing")}
			},
			wantErr:     true,
			errContains: "listing directory",
		},
		{
			name:        "positional_arguments_rejected",
			args:        func(t *testing.T, dir string) []string { return []string{"--dir", dir, "extra"} },
			wantErr:     true,
			errContains: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, filepath.Join(dir, name), content)
			}

			out, err := runCLI(t, tt.args(t, dir)...)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			for name, want := range tt.wantFiles {
				assert.Equal(t, want, readFile(t, filepath.Join(dir, name)), "content of %s", name)
			}
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestCheckCmd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vm.hpp")
	writeFile(t, path, `#include "x.h"`)

	out, err := runCLI(t, "check", "--dir", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, commands.ErrChangesPending), "check should report pending changes")
	assert.Contains(t, out, "Checking "+dir)
	assert.Contains(t, out, "Would rewrite 1 of 1 files")
	assert.Equal(t, `#include "x.h"`, readFile(t, path), "check should not write")

	_, err = runCLI(t, "--dir", dir)
	require.NoError(t, err)

	out, err = runCLI(t, "check", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "All files are up to date")
}

func TestVersionCmd(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "reinclude version info")
	assert.Contains(t, out, "Go:")

	out, err = runCLI(t, "version", "--json")
	require.NoError(t, err)

	var info commands.VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GoVersion)
}

func TestReportError(t *testing.T) {
	color.NoColor = true
	pterm.DisableStyling()
	defer func() {
		color.NoColor = false
		pterm.EnableStyling()
	}()

	t.Run("without_user_logger", func(t *testing.T) {
		out := &bytes.Buffer{}
		reportError(context.Background(), &opts.RootOpts{}, out, errors.New("unknown flag: --nope"))
		assert.Contains(t, out.String(), "Command failed")
		assert.Contains(t, out.String(), "unknown flag: --nope")
	})

	t.Run("changes_pending", func(t *testing.T) {
		out := &bytes.Buffer{}
		err := errors.Errorf("1 of 2: %w", commands.ErrChangesPending)
		reportError(context.Background(), &opts.RootOpts{}, out, err)
		assert.Contains(t, out.String(), "files need to be rewritten")
		assert.NotContains(t, out.String(), "Command failed")
	})
}
