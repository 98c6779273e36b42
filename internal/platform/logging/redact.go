package logging

import (
	"log/slog"
	"regexp"
	"unicode/utf8"

	"github.com/m-mizutani/masq"
)

// SensitiveHeaders lists the lowercase header names that carry credentials.
// The HTTP middleware redacts them when dumping headers and masq redacts
// attributes with the same names.
var SensitiveHeaders = map[string]bool{
	"authorization":       true,
	"proxy-authorization": true,
	"x-api-key":           true,
	"cookie":              true,
	"set-cookie":          true,
}

// ContentKeys are attribute keys holding text typed into a dialog. Their
// values are clipped to MaxContentRunes so a 500 character description does
// not flood every log line.
var ContentKeys = map[string]bool{
	"title":       true,
	"description": true,
}

// MaxContentRunes is how much of a ContentKeys value is kept.
const MaxContentRunes = 64

var (
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`)

	// At least 10 characters per segment, so version strings don't match.
	jwtPattern = regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`)

	apiKeyInlinePattern = regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`)
)

// replaceAttr redacts first and clips second, so a token pasted into a task
// description is masked even when it sits past the clip point.
func replaceAttr() func([]string, slog.Attr) slog.Attr {
	redact := newRedactor()
	return func(groups []string, a slog.Attr) slog.Attr {
		a = redact(groups, a)
		if ContentKeys[a.Key] && a.Value.Kind() == slog.KindString {
			a.Value = slog.StringValue(Clip(a.Value.String(), MaxContentRunes))
		}
		return a
	}
}

func newRedactor() func([]string, slog.Attr) slog.Attr {
	opts := make([]masq.Option, 0, len(SensitiveHeaders)+8)
	for name := range SensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}
	opts = append(opts,
		masq.WithFieldName("password"),
		masq.WithFieldName("secret"),
		masq.WithFieldName("token"),
		masq.WithFieldPrefix("secret_"),
		masq.WithFieldPrefix("api_key"),
		masq.WithRegex(bearerPattern),
		masq.WithRegex(jwtPattern),
		masq.WithRegex(apiKeyInlinePattern),
	)
	return masq.New(opts...)
}

// Clip shortens s to at most n runes, marking the cut with an ellipsis.
func Clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "…"
}
