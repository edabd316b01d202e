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

package text

import (
	"context"
	"io"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	// DefaultFromText is the quoted header suffix being migrated away from
	DefaultFromText = `.h"`
	// DefaultToText is what DefaultFromText becomes
	DefaultToText = `.hpp"`
	// DefaultFileFilterGlob selects the files the default rule applies to
	DefaultFileFilterGlob = "*.hpp"
)

// ReplacementRule defines a single text replacement operation
type ReplacementRule struct {
	// FromText is the literal to search for
	FromText string

	// ToText is the replacement literal
	ToText string

	// FileFilterGlob is matched against a file's base name to decide if the rule applies
	FileFilterGlob string
}

// DefaultRule returns the built-in `.h"` -> `.hpp"` rule for *.hpp files
func DefaultRule() ReplacementRule {
	return ReplacementRule{
		FromText:       DefaultFromText,
		ToText:         DefaultToText,
		FileFilterGlob: DefaultFileFilterGlob,
	}
}

// MatchesFile reports whether the rule's glob matches the given base name.
// Invalid patterns never match; ValidateRules rejects them up front.
func (r ReplacementRule) MatchesFile(name string) bool {
	if r.FileFilterGlob == "" {
		return false
	}
	ok, err := doublestar.Match(r.FileFilterGlob, name)
	if err != nil {
		return false
	}
	return ok
}

// FilterRules returns the rules whose glob matches name, preserving order
func FilterRules(rules []ReplacementRule, name string) []ReplacementRule {
	var out []ReplacementRule
	for _, rule := range rules {
		if rule.MatchesFile(name) {
			out = append(out, rule)
		}
	}
	return out
}

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the number of replacements made
	ReplacementCount int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceText applies a set of replacement rules to the content
	ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error)

	// ValidateRules checks that all rules are valid
	ValidateRules(rules []ReplacementRule) error
}
