package extract

import "regexp"

var reDate = regexp.MustCompile(`\b(\d{2}/\d{2}/\d{4})\b`)

// FindDate returns the first DD/MM/YYYY token verbatim, or "".
// Calendar validity is not checked.
func FindDate(text string) string {
	m := reDate.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}
