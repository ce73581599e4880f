package meta

import (
	"os"
	"strings"
	"unicode"
)

const envPrefix = "${env."

// expandEnv replaces every ${env.KEY} in value with the KEY environment
// variable ("" if unset). Expressions with an invalid key or without a closing
// brace are kept literally.
func expandEnv(value string) string {
	var b strings.Builder
	for {
		before, after, found := strings.Cut(value, envPrefix)
		b.WriteString(before)
		if !found {
			break
		}
		key, rest, closed := strings.Cut(after, "}")
		if !closed {
			b.WriteString(envPrefix)
			b.WriteString(after)
			break
		}
		if !isEnvKey(key) {
			// rescan the remainder so nested expressions still expand
			b.WriteString(envPrefix)
			value = after
			continue
		}
		b.WriteString(os.Getenv(key))
		value = rest
	}
	return b.String()
}

func isEnvKey(key string) bool {
	for _, r := range key {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}
