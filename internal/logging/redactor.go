package logging

import (
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

var segmentSplit = regexp.MustCompile(`[^a-z0-9]+`)

// defaultSensitiveWords covers credentials plus the personal contact fields
// carried by employee and client records.
var defaultSensitiveWords = []string{
	"secret", "password", "token", "key", "auth", "credential",
	"email", "phone", "address",
}

// redactor masks values whose key contains a sensitive word as a whole segment.
// "personal_email" is masked, "emailer" is not.
type redactor struct {
	words map[string]struct{}
}

func newRedactor() *redactor {
	words := make(map[string]struct{}, len(defaultSensitiveWords))
	for _, w := range defaultSensitiveWords {
		words[w] = struct{}{}
	}
	return &redactor{words: words}
}

// redact returns a copy of the flattened key/value pairs with sensitive values masked.
func (r *redactor) redact(pairs []any) []any {
	if len(pairs) == 0 {
		return pairs
	}
	out := make([]any, len(pairs))
	copy(out, pairs)
	for i := 0; i+1 < len(out); i += 2 {
		if key, ok := out[i].(string); ok && r.isSensitive(key) {
			out[i+1] = redacted
		}
	}
	return out
}

func (r *redactor) isSensitive(key string) bool {
	for _, part := range segmentSplit.Split(strings.ToLower(key), -1) {
		if _, ok := r.words[part]; ok {
			return true
		}
	}
	return false
}
