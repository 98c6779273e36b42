package task

import (
	"strings"
	"unicode/utf8"

	"github.com/jsamuelsen11/taskdialog/internal/domain"
)

// Input caps enforced by the form controls. They are advisory: a control
// stops accepting characters at the cap, nothing is rejected for length.
const (
	TitleMaxLen       = 100
	DescriptionMaxLen = 500
)

// Counter thresholds above which the character counter is highlighted.
const (
	TitleWarnLen       = 80
	DescriptionWarnLen = 400
)

// Draft is the form state of a task being created: the raw, untrimmed
// values exactly as typed.
type Draft struct {
	Title       string
	Description string
}

// Trimmed returns a copy of the draft with leading and trailing whitespace
// removed from both fields.
func (d Draft) Trimmed() Draft {
	return Draft{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
	}
}

// Complete reports whether both fields are non-empty after trimming.
func (d Draft) Complete() bool {
	t := d.Trimmed()
	return t.Title != "" && t.Description != ""
}

// Validate checks that both fields are present after trimming.
// Returns a *domain.ValidationError naming every blank field, or nil.
func (d Draft) Validate() error {
	t := d.Trimmed()
	fields := make(map[string]string)

	if t.Title == "" {
		fields["title"] = domain.MsgRequired
	}
	if t.Description == "" {
		fields["description"] = domain.MsgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Len returns the number of characters (runes) in s, which is what the
// counters display and what the caps are measured in.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// Clamp truncates s to at most limit characters without splitting a rune.
func Clamp(s string, limit int) string {
	if limit < 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
