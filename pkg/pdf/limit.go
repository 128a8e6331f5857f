package pdf

import "strings"

// LimitTextSize caps text at maxChars. When the cut point falls inside a
// page and a page marker sits past 80% of the budget, the cut moves back to
// that marker so no page is split mid-sentence for a small saving.
func LimitTextSize(text string, maxChars int) string {
	if len(text) <= maxChars {
		return text
	}

	truncated := text[:maxChars]
	lastPageMarker := strings.LastIndex(truncated, PageMarkerPrefix)

	if lastPageMarker > maxChars*8/10 {
		return truncated[:lastPageMarker]
	}

	return truncated
}
