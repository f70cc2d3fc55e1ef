// Package redact strips values stored under sensitive keys from hook events.
package redact

import (
	"regexp"
	"slices"
	"strings"

	"github.com/tinkerbelle-io/tb-hooklog/internal/event"
)

// Sentinel replaces every redacted value.
const Sentinel = "<redacted>"

// sensitiveKeys are matched against the lower-cased key name exactly, not as
// substrings: "session" is sensitive, "session_id" is not.
var sensitiveKeys = []string{
	"token",
	"password",
	"secret",
	"authorization",
	"cookie",
	"session",
	"api_key",
	"access_token",
	"refresh_token",
	"key",
	"auth",
	"bearer",
	"oauth",
	"jwt",
	"private_key",
	"client_secret",
	"client_id",
	"webhook_secret",
	"signing_secret",
}

// Redactor replaces values under sensitive keys with Sentinel.
type Redactor struct {
	keys    map[string]struct{}
	pairsRe *regexp.Regexp
}

var defaultRedactor = New()

// New returns a Redactor for the built-in key set plus any extra keys.
// Extra keys are case-insensitive like the built-in ones.
func New(extra ...string) *Redactor {
	keys := make(map[string]struct{}, len(sensitiveKeys)+len(extra))
	for _, k := range sensitiveKeys {
		keys[k] = struct{}{}
	}
	for _, k := range extra {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			keys[k] = struct{}{}
		}
	}
	return &Redactor{keys: keys, pairsRe: pairsPattern(keys)}
}

// Keys returns the sensitive key set in sorted order.
func (r *Redactor) Keys() []string {
	out := make([]string, 0, len(r.keys))
	for k := range r.keys {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// IsSensitive reports whether values under key must be redacted.
func (r *Redactor) IsSensitive(key string) bool {
	_, ok := r.keys[strings.ToLower(key)]
	return ok
}

// Value returns a copy of v in which every value under a sensitive key is
// Sentinel. Sensitive values are replaced whole, never descended into.
// The input is not modified.
func (r *Redactor) Value(v event.Value) event.Value {
	switch v.Kind() {
	case event.Object:
		members := make([]event.Member, 0, v.Len())
		for _, m := range v.Members() {
			if r.IsSensitive(m.Key) {
				members = append(members, event.Member{Key: m.Key, Value: event.StringValue(Sentinel)})
				continue
			}
			members = append(members, event.Member{Key: m.Key, Value: r.Value(m.Value)})
		}
		return event.ObjectValue(members...)
	case event.Array:
		elems := make([]event.Value, 0, v.Len())
		for _, el := range v.Elems() {
			elems = append(elems, r.Value(el))
		}
		return event.ArrayValue(elems...)
	default:
		return v
	}
}

// Text masks `"key": value` pairs with a sensitive key in raw, possibly
// malformed, JSON text. It is a best-effort pass for input that never
// parsed and so cannot be redacted structurally. A string value is masked
// to its closing quote, an object or array to its matching bracket, and
// either one to the end of input when unterminated.
func (r *Redactor) Text(raw string) string {
	var b strings.Builder
	for {
		loc := r.pairsRe.FindStringIndex(raw)
		if loc == nil {
			b.WriteString(raw)
			return b.String()
		}
		b.WriteString(raw[:loc[1]])
		raw = raw[loc[1]:]
		if n := valueLen(raw); n > 0 {
			b.WriteString(`"` + Sentinel + `"`)
			raw = raw[n:]
		}
	}
}

// Value redacts v with the built-in key set.
func Value(v event.Value) event.Value {
	return defaultRedactor.Value(v)
}

// Text masks sensitive pairs in raw text with the built-in key set.
func Text(raw string) string {
	return defaultRedactor.Text(raw)
}

// pairsPattern matches a quoted sensitive key and its colon. The value that
// follows is measured by valueLen.
func pairsPattern(keys map[string]struct{}) *regexp.Regexp {
	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, regexp.QuoteMeta(k))
	}
	slices.Sort(names)
	return regexp.MustCompile(`(?i)"(?:` + strings.Join(names, "|") + `)"\s*:\s*`)
}

// valueLen returns the length of the JSON value at the start of s, or of
// the rest of s if the value is not terminated.
func valueLen(s string) int {
	if s == "" {
		return 0
	}
	switch s[0] {
	case '"':
		return stringLen(s)
	case '{', '[':
		depth := 0
		for i := 0; i < len(s); i++ {
			switch s[i] {
			case '"':
				i += stringLen(s[i:]) - 1
			case '{', '[':
				depth++
			case '}', ']':
				depth--
				if depth == 0 {
					return i + 1
				}
			}
		}
		return len(s)
	default:
		if i := strings.IndexAny(s, ",}] \t\r\n"); i >= 0 {
			return i
		}
		return len(s)
	}
}

// stringLen returns the length of the string literal opening s, including
// both quotes.
func stringLen(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return len(s)
}
