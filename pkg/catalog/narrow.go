package catalog

import "sort"

// Candidates returns every record consistent with the filter: for each
// attribute present in the filter, the record's value must match exactly
// (case-sensitive). An empty filter returns the whole catalog. Catalog
// order is preserved. The input slices are never mutated.
func Candidates(catalog []Record, filter Filter) []Record {
	if len(filter) == 0 {
		return catalog
	}

	out := make([]Record, 0, len(catalog))
	for _, rec := range catalog {
		if matches(rec, filter) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(rec Record, filter Filter) bool {
	for attr, want := range filter {
		if rec[attr] != want {
			return false
		}
	}
	return true
}

// AvailableValues returns the distinct non-empty values of attr across the
// candidate set for the given filter, sorted lexicographically so the
// presentation layer gets a stable, reproducible ordering. Records missing
// the attribute contribute nothing.
func AvailableValues(catalog []Record, filter Filter, attr string) []string {
	seen := make(map[string]struct{})
	values := []string{}

	for _, rec := range Candidates(catalog, filter) {
		v, ok := rec[attr]
		if !ok || v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}

	sort.Strings(values)
	return values
}
