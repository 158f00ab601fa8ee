package model

import (
	"fmt"
	"strings"
)

type (
	// Game is a catalog item as the backend serves it.
	// Instances are immutable once fetched: a refetch replaces them wholesale.
	Game struct {
		ID          string  `json:"id"`
		Name        string  `json:"nombre"`
		Platform    string  `json:"consola"`
		SizeGB      float64 `json:"peso_gb"`
		Description string  `json:"descripcion,omitempty"`
		ImageURL    string  `json:"imagen_url,omitempty"`
		Available   bool    `json:"disponible"`
	}

	// GameList is an ordered catalog view (insertion order = display order).
	GameList []Game
)

// String implements the stringer interface.
func (l GameList) String() string {
	str := strings.Builder{}
	for i, g := range l {
		str.WriteString(fmt.Sprintf("- [%d] %s %.1fGB (%s)\n", i, g.Name, g.SizeGB, g.Platform))
	}

	return str.String()
}

// TotalGB sums the list item sizes.
func (l GameList) TotalGB() float64 {
	total := 0.0
	for _, g := range l {
		total += g.SizeGB
	}

	return total
}

// Find returns the first list item with the given id.
func (l GameList) Find(id string) (Game, bool) {
	for _, g := range l {
		if g.ID == id {
			return g, true
		}
	}

	return Game{}, false
}

// IDs returns item ids preserving the list order.
func (l GameList) IDs() []string {
	ids := make([]string, 0, len(l))
	for _, g := range l {
		ids = append(ids, g.ID)
	}

	return ids
}
