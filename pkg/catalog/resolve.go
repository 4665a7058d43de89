package catalog

// ResolvedItem is the terminal outcome of a completed selection, packaged
// for lead handoff. Metadata is copied verbatim from the matched record;
// formatting is the presentation layer's concern.
type ResolvedItem struct {
	Filter       Filter `json:"filter"`
	Record       Record `json:"record"`
	Price        string `json:"price"`
	Availability string `json:"availability"`

	// Matches is how many records satisfied the completed filter. The
	// schema is assumed to identify items uniquely, so anything above 1
	// points at dirty catalog data; callers may want to log it.
	Matches int `json:"matches"`
}

// Resolve applies the completed filter and takes the first match in
// catalog order. Multiple matches are a silent tie-break, not an error.
// Returns ErrNotFound when nothing matches.
func Resolve(catalog []Record, filter Filter) (*ResolvedItem, error) {
	found := Candidates(catalog, filter)
	if len(found) == 0 {
		return nil, ErrNotFound
	}

	first := found[0]
	return &ResolvedItem{
		Filter:       filter.Clone(),
		Record:       first,
		Price:        first[KeyPrice],
		Availability: first[KeyAvailability],
		Matches:      len(found),
	}, nil
}
