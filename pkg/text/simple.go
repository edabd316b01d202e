package text

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// SimpleTextReplacer implements TextReplacer using literal byte replacement
type SimpleTextReplacer struct{}

// NewSimpleTextReplacer creates a new SimpleTextReplacer
func NewSimpleTextReplacer() *SimpleTextReplacer {
	return &SimpleTextReplacer{}
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *SimpleTextReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("replacing text: %w", err)
	}

	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	current := originalContent
	for _, rule := range rules {
		if rule.FromText == "" {
			continue
		}

		from := []byte(rule.FromText)
		n := bytes.Count(current, from)
		if n == 0 {
			continue
		}

		current = bytes.ReplaceAll(current, from, []byte(rule.ToText))
		result.WasModified = true
		result.ReplacementCount += n
	}

	result.ModifiedContent = current
	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules.
// A rule whose replacement contains its search text would keep matching on
// every subsequent run, so it is rejected. This does not prove a rule set
// idempotent: a replacement can form a new match with its neighbours, and
// rules can undo each other. DefaultRule is idempotent.
func (r *SimpleTextReplacer) ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if rule.FromText == "" {
			return errors.Errorf("rule %d: from_text is required", i)
		}
		if rule.FileFilterGlob == "" {
			return errors.Errorf("rule %d: file_filter_glob is required", i)
		}
		if !doublestar.ValidatePattern(rule.FileFilterGlob) {
			return errors.Errorf("rule %d: invalid file_filter_glob %q", i, rule.FileFilterGlob)
		}
		if rule.FromText == rule.ToText {
			return errors.Errorf("rule %d: from_text and to_text are identical", i)
		}
		if strings.Contains(rule.ToText, rule.FromText) {
			return errors.Errorf("rule %d: to_text %q contains from_text %q", i, rule.ToText, rule.FromText)
		}
	}
	return nil
}
