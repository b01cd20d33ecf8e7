package catalog

import (
	"regexp"
	"strings"
)

var numberPrefix = regexp.MustCompile(`^#\d+\s+`)

// ExtractNumber returns the digits of a leading "#<digits>" token. The token
// ends at the first space and must consist of digits only.
func ExtractNumber(name string) (string, bool) {
	if !strings.HasPrefix(name, "#") {
		return "", false
	}
	token, _, _ := strings.Cut(name, " ")
	digits := token[1:]
	if digits == "" {
		return "", false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return digits, true
}

// CleanName strips a leading "#<digits> " prefix and surrounding whitespace.
func CleanName(name string) string {
	return strings.TrimSpace(numberPrefix.ReplaceAllString(name, ""))
}
