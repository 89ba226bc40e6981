package extract

// firstWithin returns the index of the first candidate whose start offset
// falls inside [lo, hi), or -1. Candidates must be in ascending start order,
// which regexp FindAll guarantees.
//
// This is the window-based association used to pair a line-item header with
// the nearest long-text or rate match inside its span: a single flattened
// text stream holds every match, and only the first one occurring inside a
// header's interval belongs to that header.
func firstWithin(starts []int, lo, hi int) int {
	for i, s := range starts {
		if s >= hi {
			break
		}
		if s >= lo {
			return i
		}
	}
	return -1
}

// matchStarts extracts the start offsets from FindAllStringSubmatchIndex
// results.
func matchStarts(matches [][]int) []int {
	starts := make([]int, len(matches))
	for i, m := range matches {
		starts[i] = m[0]
	}
	return starts
}
