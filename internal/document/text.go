package document

import (
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// readText treats each line as a paragraph. Files that are not valid UTF-8
// are decoded as Windows-1252, the usual encoding of exported reports.
func readText(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(b) {
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), b)
		if err != nil {
			return nil, err
		}
		b = decoded
	}
	return SplitLines(string(b)), nil
}
