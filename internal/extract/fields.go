package extract

// PartialRecord accumulates label values while paragraphs are scanned.
// A later paragraph with the same label overwrites the earlier value.
type PartialRecord map[Label]string

// Get returns the value for l, or "" when it was never seen.
func (p PartialRecord) Get(l Label) string {
	return p[l]
}

// ScanFields runs the label patterns over every paragraph and reports the
// index of the last paragraph that matched, -1 if none did.
func ScanFields(paragraphs []string, labels Labels) (PartialRecord, int) {
	fields := make(PartialRecord, len(AllLabels))
	for _, l := range AllLabels {
		fields[l] = ""
	}
	last := -1
	for i, p := range paragraphs {
		label, value, ok := labels.Match(p)
		if !ok {
			continue
		}
		fields[label] = value
		last = i
	}
	return fields, last
}
