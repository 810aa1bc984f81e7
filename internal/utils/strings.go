package utils

import (
	"regexp"
	"strings"

	"github.com/PolarWolf314/agentg/internal/ui"
)

var (
	nonWordRegex    = regexp.MustCompile(`[^\p{L}\p{N}\p{M}_]+`)
	underscoreRegex = regexp.MustCompile(`_+`)
)

// FormatPaths formats a slice of paths into a readable string.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}

// SanitizeIdentifier turns a free-form title into a notebook identifier:
// Unicode word characters only, runs of anything else collapsed to one underscore.
// Returns "" when nothing usable remains.
func SanitizeIdentifier(title string) string {
	id := strings.TrimSpace(title)
	id = nonWordRegex.ReplaceAllString(id, "_")
	id = underscoreRegex.ReplaceAllString(id, "_")
	id = strings.Trim(id, "_")
	return id
}
