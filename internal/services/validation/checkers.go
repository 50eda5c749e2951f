// Package validation holds the pure predicates injected into the rest of the
// system: display names for new players, suggested titles, and guest comments.
// Checkers are stateless and perform no I/O.
package validation

import (
	"strings"
	"unicode"
)

// DisplayNameChecker decides whether a display name may be used
type DisplayNameChecker interface {
	ValidDisplayName(name string) bool
}

// TitleChecker decides whether a suggested title may be recorded
type TitleChecker interface {
	ValidTitle(title string) bool
}

// CommentChecker decides whether a guest comment may be recorded
type CommentChecker interface {
	ValidComment(comment string) bool
}

// BasicDisplayNameChecker accepts names of at least 3 visible characters
// made up of letters, digits, spaces, and common punctuation
type BasicDisplayNameChecker struct{}

// NewDisplayNameChecker creates a BasicDisplayNameChecker
func NewDisplayNameChecker() *BasicDisplayNameChecker {
	return &BasicDisplayNameChecker{}
}

var _ DisplayNameChecker = (*BasicDisplayNameChecker)(nil)

// ValidDisplayName implements DisplayNameChecker
func (c *BasicDisplayNameChecker) ValidDisplayName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 3 {
		return false
	}
	for _, r := range trimmed {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune(" -_.'", r) {
			return false
		}
	}
	return true
}

// BasicTitleChecker accepts titles of 2 to 100 visible characters
type BasicTitleChecker struct{}

// NewTitleChecker creates a BasicTitleChecker
func NewTitleChecker() *BasicTitleChecker {
	return &BasicTitleChecker{}
}

var _ TitleChecker = (*BasicTitleChecker)(nil)

// ValidTitle implements TitleChecker
func (c *BasicTitleChecker) ValidTitle(title string) bool {
	trimmed := strings.TrimSpace(title)
	return len(trimmed) >= 2 && len(trimmed) <= 100
}

// BasicCommentChecker accepts comments of 1 to 500 visible characters
type BasicCommentChecker struct{}

// NewCommentChecker creates a BasicCommentChecker
func NewCommentChecker() *BasicCommentChecker {
	return &BasicCommentChecker{}
}

var _ CommentChecker = (*BasicCommentChecker)(nil)

// ValidComment implements CommentChecker
func (c *BasicCommentChecker) ValidComment(comment string) bool {
	trimmed := strings.TrimSpace(comment)
	return len(trimmed) >= 1 && len(trimmed) <= 500
}
