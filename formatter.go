package context7

import (
	"fmt"
	"strings"
)

// FormatResolution formats a resolution for display. A note is added when
// the server returned more than one candidate.
func FormatResolution(res *LibraryResolution) string {
	if res == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("  Resolved to: " + res.LibraryID)
	if n := len(res.Candidates); n > 1 {
		fmt.Fprintf(&sb, "\n  (%d candidates; using the first match)", n)
	}
	return sb.String()
}

// FormatCandidates lists candidates one per line with their titles.
// Candidates without an ID are skipped.
func FormatCandidates(candidates []LibraryCandidate) string {
	parts := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == "" {
			continue
		}
		line := "  - " + c.ID
		if c.Title != "" {
			line += " (" + c.Title + ")"
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, "\n")
}
