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

package rewrite

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/reinclude/pkg/status"
	"github.com/walteh/reinclude/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options configures a Rewriter
type Options struct {
	// Dir is the directory to rewrite; empty means the working directory
	Dir string
	// Rules are applied to every file whose name matches the rule's glob
	Rules []text.ReplacementRule
	// Replacer defaults to text.NewSimpleTextReplacer()
	Replacer text.TextReplacer
	// Reporter receives per-file outcomes; nil discards them
	Reporter status.Reporter
	// Mode selects how rewritten content is persisted
	Mode Mode
	// DryRun reads and transforms files without writing them
	DryRun bool
}

// 📄 FileResult is the outcome of one processed file
type FileResult struct {
	Name         string
	Replacements int
	Status       status.FileStatus
}

// 📊 Result summarizes a run. Files are in processing order.
type Result struct {
	Dir    string
	DryRun bool
	Files  []FileResult
}

// Changed returns how many files were (or, in a dry run, would be) modified
func (r *Result) Changed() int {
	n := 0
	for _, f := range r.Files {
		if f.Status == status.StatusModified || f.Status == status.StatusPending {
			n++
		}
	}
	return n
}

// Replacements returns the total number of replacements across all files
func (r *Result) Replacements() int {
	n := 0
	for _, f := range r.Files {
		n += f.Replacements
	}
	return n
}

// 🎮 Rewriter applies literal replacement rules to the files of one directory
type Rewriter struct {
	dir      string
	rules    []text.ReplacementRule
	replacer text.TextReplacer
	reporter status.Reporter
	writer   fileWriter
	mode     Mode
	dryRun   bool
}

// 🏭 New creates a Rewriter, resolving the directory and validating the rules
func New(opts Options) (*Rewriter, error) {
	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Errorf("getting absolute directory path: %w", err)
	}

	if len(opts.Rules) == 0 {
		return nil, errors.Errorf("at least one rule is required")
	}

	replacer := opts.Replacer
	if replacer == nil {
		replacer = text.NewSimpleTextReplacer()
	}
	if err := replacer.ValidateRules(opts.Rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}

	reporter := opts.Reporter
	if reporter == nil {
		reporter = status.New(nil)
	}

	writer, err := newFileWriter(opts.Mode)
	if err != nil {
		return nil, err
	}

	return &Rewriter{
		dir:      dir,
		rules:    opts.Rules,
		replacer: replacer,
		reporter: reporter,
		writer:   writer,
		mode:     opts.Mode,
		dryRun:   opts.DryRun,
	}, nil
}

// Dir returns the absolute directory the rewriter operates on
func (rw *Rewriter) Dir() string {
	return rw.dir
}

// 🔍 Matches reports whether any rule applies to the given file name
func (rw *Rewriter) Matches(name string) bool {
	for _, rule := range rw.rules {
		if rule.MatchesFile(name) {
			return true
		}
	}
	return false
}

// 🏃 Run rewrites every matching file in the directory, one at a time.
// The directory is listed once; files matched at that moment are the only ones touched.
// The first error aborts the batch. The returned Result is never nil and holds the
// files processed before the failure, which keep their new content.
func (rw *Rewriter) Run(ctx context.Context) (*Result, error) {
	logger := zerolog.Ctx(ctx).With().Str("dir", rw.dir).Logger()

	result := &Result{Dir: rw.dir, DryRun: rw.dryRun}

	names, err := rw.list()
	if err != nil {
		return result, err
	}

	logger.Debug().
		Int("matched", len(names)).
		Bool("dry_run", rw.dryRun).
		Str("mode", rw.mode.String()).
		Msg("starting rewrite")

	rw.reporter.StartOperation(ctx, len(names))
	defer rw.reporter.FinishOperation(ctx)

	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return result, errors.Errorf("rewriting %s: %w", rw.dir, err)
		}

		fr, err := rw.rewriteFile(ctx, name)
		if err != nil {
			rw.reporter.TrackFile(ctx, name, status.FileInfo{
				Path:   name,
				Status: status.StatusFailed,
				Error:  err,
			})
			return result, errors.Errorf("rewriting %s: %w", name, err)
		}

		result.Files = append(result.Files, fr)
		rw.reporter.UpdateProgress(ctx, i+1)
	}

	logger.Debug().
		Int("changed", result.Changed()).
		Int("replacements", result.Replacements()).
		Msg("rewrite complete")

	return result, nil
}

// list returns the names of matching files in listing order
func (rw *Rewriter) list() ([]string, error) {
	entries, err := os.ReadDir(rw.dir)
	if err != nil {
		return nil, errors.Errorf("listing directory %s: %w", rw.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !rw.Matches(entry.Name()) {
			continue
		}
		if !rw.isCandidate(entry) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// isCandidate excludes directories and other non-file entries. Symlinks are
// followed; a dangling one is kept so that opening it fails the run.
func (rw *Rewriter) isCandidate(entry fs.DirEntry) bool {
	switch t := entry.Type(); {
	case t.IsRegular():
		return true
	case t&fs.ModeSymlink != 0:
		info, err := os.Stat(filepath.Join(rw.dir, entry.Name()))
		if err != nil {
			return true
		}
		return info.Mode().IsRegular()
	default:
		return false
	}
}

// 📄 rewriteFile reads, transforms and writes back one file
func (rw *Rewriter) rewriteFile(ctx context.Context, name string) (FileResult, error) {
	path := filepath.Join(rw.dir, name)

	content, perm, err := readFile(path)
	if err != nil {
		return FileResult{}, err
	}

	replaced, err := rw.replacer.ReplaceText(ctx, bytes.NewReader(content), text.FilterRules(rw.rules, name))
	if err != nil {
		return FileResult{}, errors.Errorf("replacing text: %w", err)
	}

	fileStatus := status.StatusUnchanged
	switch {
	case replaced.WasModified && rw.dryRun:
		fileStatus = status.StatusPending
	case replaced.WasModified:
		fileStatus = status.StatusModified
	}

	if !rw.dryRun {
		if err := rw.writer.WriteFile(path, replaced.ModifiedContent, perm); err != nil {
			return FileResult{}, err
		}
	}

	rw.reporter.TrackFile(ctx, name, status.FileInfo{
		Path:         name,
		Status:       fileStatus,
		Replacements: replaced.ReplacementCount,
		Size:         int64(len(replaced.ModifiedContent)),
		Checksum:     status.Checksum(replaced.ModifiedContent),
	})

	return FileResult{
		Name:         name,
		Replacements: replaced.ReplacementCount,
		Status:       fileStatus,
	}, nil
}

// readFile loads the whole file and its permission bits
func readFile(path string) ([]byte, fs.FileMode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errors.Errorf("opening file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, 0, errors.Errorf("stating file: %w", err)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, 0, errors.Errorf("reading file: %w", err)
	}

	return content, info.Mode().Perm(), nil
}
