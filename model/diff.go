package model

type (
	// AvailabilityFlip is a catalog item whose availability changed between polls.
	AvailabilityFlip struct {
		ID        string
		Name      string
		Available bool
	}

	// CatalogDiff is a structural comparison of two catalog snapshots by id.
	CatalogDiff struct {
		Added   GameList
		Removed GameList
		Flips   []AvailabilityFlip
	}
)

// Empty reports whether the two snapshots are equivalent; an empty diff
// short-circuits any re-render.
func (d CatalogDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Flips) == 0
}

// Size returns the number of changed items.
func (d CatalogDiff) Size() int {
	return len(d.Added) + len(d.Removed) + len(d.Flips)
}

// DiffCatalogs compares snapshots by id and field, not by serialized form,
// so key order and cosmetic changes never register as churn.
func DiffCatalogs(prev, next GameList) CatalogDiff {
	diff := CatalogDiff{}

	prevByID := make(map[string]Game, len(prev))
	for _, g := range prev {
		prevByID[g.ID] = g
	}
	nextByID := make(map[string]Game, len(next))
	for _, g := range next {
		nextByID[g.ID] = g
	}

	for _, g := range next {
		old, ok := prevByID[g.ID]
		if !ok {
			diff.Added = append(diff.Added, g)
			continue
		}
		if old.Available != g.Available {
			diff.Flips = append(diff.Flips, AvailabilityFlip{
				ID:        g.ID,
				Name:      g.Name,
				Available: g.Available,
			})
		}
	}

	for _, g := range prev {
		if _, ok := nextByID[g.ID]; !ok {
			diff.Removed = append(diff.Removed, g)
		}
	}

	return diff
}
