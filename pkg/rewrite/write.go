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
	"io/fs"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// 💾 Mode selects how rewritten content is persisted
type Mode int

const (
	// ModeInPlace truncates and rewrites the existing file
	ModeInPlace Mode = iota
	// ModeAtomic writes a sibling temp file and renames it over the original
	ModeAtomic
)

// String returns a string representation of Mode
func (m Mode) String() string {
	switch m {
	case ModeInPlace:
		return "in-place"
	case ModeAtomic:
		return "atomic"
	default:
		return "unknown"
	}
}

type fileWriter interface {
	WriteFile(path string, content []byte, perm fs.FileMode) error
}

func newFileWriter(mode Mode) (fileWriter, error) {
	switch mode {
	case ModeInPlace:
		return inPlaceWriter{}, nil
	case ModeAtomic:
		return atomicWriter{}, nil
	default:
		return nil, errors.Errorf("unknown write mode %d", mode)
	}
}

// inPlaceWriter keeps the file's inode and permissions. A failure part way
// through leaves the file truncated.
type inPlaceWriter struct{}

func (inPlaceWriter) WriteFile(path string, content []byte, _ fs.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return errors.Errorf("opening file for writing: %w", err)
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		return errors.Errorf("writing file: %w", err)
	}

	if err := f.Close(); err != nil {
		return errors.Errorf("closing file: %w", err)
	}
	return nil
}

// atomicWriter replaces the file with a fully written temp file. Symlinks are
// resolved first so the link itself survives.
type atomicWriter struct{}

func (atomicWriter) WriteFile(path string, content []byte, perm fs.FileMode) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return errors.Errorf("resolving file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return errors.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return errors.Errorf("setting temp file permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		return errors.Errorf("renaming temp file: %w", err)
	}
	committed = true

	return nil
}
