package sanitizer

import (
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return Pipeline{stripControl, TrimAndNormalize}.Apply(name)
}

func NormalizeService(service string) string {
	return Pipeline{stripControl, TrimAndNormalize}.Apply(service)
}

// NormalizeEmail only trims: case and format are kept exactly as submitted.
func NormalizeEmail(email string) string {
	return Pipeline{stripControl, trim}.Apply(email)
}
