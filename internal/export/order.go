package export

import (
	"regexp"
	"sort"
	"strconv"
)

var reItemKey = regexp.MustCompile(`^Item (\d+) (Rate|Unit)$`)

// orderedPairs flattens a mapping section into rows: canonical fields first
// in their fixed order, then dynamically keyed extras ("Item N Rate"/"Item N
// Unit" numbered by match order, anything else alphabetical).
func orderedPairs(m map[string]string, order []string) [][2]string {
	var pairs [][2]string
	seen := map[string]bool{}
	for _, k := range order {
		if v, ok := m[k]; ok {
			pairs = append(pairs, [2]string{k, v})
			seen[k] = true
		}
	}
	var extras []string
	for k := range m {
		if !seen[k] {
			extras = append(extras, k)
		}
	}
	sort.Slice(extras, func(i, j int) bool { return itemKeyLess(extras[i], extras[j]) })
	for _, k := range extras {
		pairs = append(pairs, [2]string{k, m[k]})
	}
	return pairs
}

// itemKeyLess sorts "Item 2 Rate" before "Item 10 Rate" and keeps each
// item's Rate before its Unit; non-item keys sort alphabetically after.
func itemKeyLess(a, b string) bool {
	ma, mb := reItemKey.FindStringSubmatch(a), reItemKey.FindStringSubmatch(b)
	switch {
	case ma != nil && mb != nil:
		na, _ := strconv.Atoi(ma[1])
		nb, _ := strconv.Atoi(mb[1])
		if na != nb {
			return na < nb
		}
		return ma[2] < mb[2] // Rate before Unit
	case ma != nil:
		return true
	case mb != nil:
		return false
	default:
		return a < b
	}
}
