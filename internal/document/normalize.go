package document

import (
	"regexp"
	"strings"
)

var (
	reCRLF   = regexp.MustCompile(`\r\n?`)
	reBlanks = regexp.MustCompile(`[ \t\x{00A0}]+`)
)

// SplitLines splits extracted text into lines, one candidate paragraph each.
// Form feeds (page breaks) count as line breaks.
func SplitLines(s string) []string {
	s = reCRLF.ReplaceAllString(s, "\n")
	s = strings.ReplaceAll(s, "\f", "\n")
	return strings.Split(s, "\n")
}

// CleanParagraphs collapses blanks and tabs, trims, and drops empty entries.
// Line breaks inside a paragraph are kept.
func CleanParagraphs(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = reCRLF.ReplaceAllString(p, "\n")
		p = reBlanks.ReplaceAllString(p, " ")
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
