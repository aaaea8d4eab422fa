package extract

import (
	"strings"

	"github.com/joseph-ayodele/report-filer/internal/textnorm"
)

// DefaultSignatureMarkers open the closing/signature block of a report.
var DefaultSignatureMarkers = []string{"atte", "atentamente", "dra.", "dr."}

// CollectBody joins the paragraphs after lastMatch up to, not including, the
// first paragraph that starts with a signature marker.
func CollectBody(paragraphs []string, lastMatch int, markers []string) string {
	if lastMatch < -1 {
		lastMatch = -1
	}
	folded := make([]string, 0, len(markers))
	for _, m := range markers {
		if m = strings.TrimSpace(textnorm.Lower(m)); m != "" {
			folded = append(folded, m)
		}
	}

	var lines []string
	for j := lastMatch + 1; j < len(paragraphs); j++ {
		text := strings.TrimSpace(paragraphs[j])
		if isSignature(textnorm.Lower(text), folded) {
			break
		}
		lines = append(lines, text)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func isSignature(normalized string, markers []string) bool {
	for _, m := range markers {
		if strings.HasPrefix(normalized, m) {
			return true
		}
	}
	return false
}
