package model

import "strings"

// NormalizeTicker trims user input and upper-cases it. An empty result means
// there is nothing to fetch.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
