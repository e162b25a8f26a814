package tui

import (
	"strings"

	"github.com/muesli/reflow/truncate"
)

// pluralize returns "s" for counts other than 1, empty string for 1
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

// truncateName fits name into maxWidth cells, ending with an ellipsis when cut
func truncateName(name string, maxWidth int) string {
	if maxWidth <= 0 {
		return name
	}
	return truncate.StringWithTail(name, uint(maxWidth), "…")
}

// overlayViews combines two views by overlaying the second on top of the first
func overlayViews(base, overlay string) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")

	result := make([]string, len(baseLines))
	copy(result, baseLines)

	for i, overlayLine := range overlayLines {
		if i < len(result) && overlayLine != "" {
			result[i] = overlayLine
		} else if i >= len(result) && overlayLine != "" {
			result = append(result, overlayLine)
		}
	}

	return strings.Join(result, "\n")
}
