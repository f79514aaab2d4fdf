package pathutils

import (
	"path/filepath"
	"strings"
)

// RootSanitizer normalizes configured root directories.
type RootSanitizer struct {
	homeExpander *HomeExpander
}

// NewRootSanitizer constructs a RootSanitizer. A nil expander uses the operating system home directory.
func NewRootSanitizer(homeExpander *HomeExpander) *RootSanitizer {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	return &RootSanitizer{homeExpander: homeExpander}
}

// Sanitize trims whitespace, expands "~", cleans each path and drops blanks and repeats,
// keeping the first occurrence order. It returns nil when nothing remains.
func (sanitizer *RootSanitizer) Sanitize(candidatePaths []string) []string {
	var sanitizedPaths []string
	seenPaths := make(map[string]struct{}, len(candidatePaths))

	for _, candidatePath := range candidatePaths {
		trimmedPath := strings.TrimSpace(candidatePath)
		if len(trimmedPath) == 0 {
			continue
		}

		cleanedPath := filepath.Clean(sanitizer.homeExpander.Expand(trimmedPath))
		if _, seen := seenPaths[cleanedPath]; seen {
			continue
		}
		seenPaths[cleanedPath] = struct{}{}
		sanitizedPaths = append(sanitizedPaths, cleanedPath)
	}

	return sanitizedPaths
}
