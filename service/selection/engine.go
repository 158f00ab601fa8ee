// Package selection implements the capacity-constrained catalog selection:
// a storage budget, an insertion-ordered pick list, and the platform
// minimum-capacity policy.
package selection

import (
	"fmt"

	"github.com/lumenik/install-client/model"
)

type (
	// Policy is the platform minimum-capacity rule: large-catalog platforms
	// demand at least MinLargeCatalogGB of declared storage.
	Policy struct {
		LargeCatalogPlatforms []string
		MinLargeCatalogGB     float64
	}

	// Summary is the derived selection state exposed to the presentation
	// layer; recomputed after every mutation.
	Summary struct {
		UsedGB      float64
		RemainingGB float64
		PercentUsed float64
		OverLimit   bool
		CanSubmit   bool
	}

	// Engine holds the selection state. It is the single owner of the
	// capacity/pick-list pair; callers receive copies, never references.
	Engine struct {
		policy   Policy
		notifier model.Notifier

		platform   string
		capacityGB float64
		selected   model.GameList
	}
)

// MinCapacity returns the minimum allowed budget for a platform (0 = none).
func (p Policy) MinCapacity(platform string) float64 {
	for _, large := range p.LargeCatalogPlatforms {
		if large == platform {
			return p.MinLargeCatalogGB
		}
	}

	return 0
}

// NewEngine creates a selection engine for the given platform.
func NewEngine(policy Policy, platform string, notifier model.Notifier) *Engine {
	if notifier == nil {
		notifier = model.DiscardNotices
	}

	return &Engine{
		policy:   policy,
		notifier: notifier,
		platform: platform,
	}
}

// Platform returns the platform the selection is scoped to.
func (e *Engine) Platform() string {
	return e.platform
}

// CapacityGB returns the declared storage budget (0 = unset).
func (e *Engine) CapacityGB() float64 {
	return e.capacityGB
}

// Selected returns a copy of the pick list in insertion order.
func (e *Engine) Selected() model.GameList {
	selected := make(model.GameList, len(e.selected))
	copy(selected, e.selected)

	return selected
}

// Summary recomputes the derived selection state.
func (e *Engine) Summary() Summary {
	used := e.selected.TotalGB()
	s := Summary{
		UsedGB:      used,
		RemainingGB: e.capacityGB - used,
	}
	if e.capacityGB > 0 {
		s.PercentUsed = used / e.capacityGB * 100
		s.OverLimit = used > e.capacityGB
	}
	s.CanSubmit = len(e.selected) > 0 && e.capacityGB > 0 && !s.OverLimit

	return s
}

// SetCapacity declares the storage budget.
// gb=0 removes the limit and drops the selection. A budget below the
// platform minimum is rejected back to unset; a budget below the already
// selected total keeps the budget but drops the selection. Both emit a
// policy-violation warning rather than an error: the control stays usable.
func (e *Engine) SetCapacity(gb float64) {
	if gb <= 0 {
		e.capacityGB = 0
		e.selected = nil
		e.notifier(model.NewNotice(model.SeverityInfo, "Límite de espacio removido"))
		return
	}

	if min := e.policy.MinCapacity(e.platform); gb < min {
		e.capacityGB = 0
		e.selected = nil
		e.notifier(model.NewNotice(model.SeverityWarning,
			fmt.Sprintf("El espacio seleccionado es insuficiente para %s. Selecciona %.0fGB o más", e.platform, min)))
		return
	}

	if used := e.selected.TotalGB(); used > gb && len(e.selected) > 0 {
		e.capacityGB = gb
		e.selected = nil
		e.notifier(model.NewNotice(model.SeverityWarning,
			fmt.Sprintf("Los juegos seleccionados superaban el nuevo límite. Se limpió la selección. Espacio fijado en: %.0fGB", gb)))
		return
	}

	e.capacityGB = gb
	e.notifier(model.NewNotice(model.SeveritySuccess, fmt.Sprintf("Espacio fijado en: %.0fGB", gb)))
}

// Toggle adds or removes one item. Removal is always allowed. Adding
// requires a declared budget and enough remaining space for the item alone;
// it never dedups by anything but id and keeps insertion order stable.
func (e *Engine) Toggle(game model.Game) error {
	for i, g := range e.selected {
		if g.ID == game.ID {
			e.selected = append(e.selected[:i], e.selected[i+1:]...)
			return nil
		}
	}

	if e.capacityGB <= 0 {
		return model.ErrCapacityUnset
	}

	remaining := e.capacityGB - e.selected.TotalGB()
	if game.SizeGB > remaining {
		return fmt.Errorf("%s necesita %.1fGB con %.1fGB disponibles: %w",
			game.Name, game.SizeGB, remaining, model.ErrInsufficientSpace)
	}

	e.selected = append(e.selected, game)

	return nil
}

// SetPlatform switches the displayed platform, resetting budget and selection.
func (e *Engine) SetPlatform(platform string) {
	if platform == e.platform {
		return
	}

	e.platform = platform
	e.capacityGB = 0
	e.selected = nil
}

// Seed loads an existing request into the engine (edit mode): platform and
// budget come from the stored order, the pick list from resolved items.
// The platform policy still applies to the seeded budget.
func (e *Engine) Seed(platform string, capacityGB float64, games model.GameList) {
	e.platform = platform
	e.capacityGB = capacityGB

	e.selected = make(model.GameList, 0, len(games))
	for _, g := range games {
		if _, ok := e.selected.Find(g.ID); ok {
			continue
		}
		e.selected = append(e.selected, g)
	}

	if min := e.policy.MinCapacity(platform); capacityGB > 0 && capacityGB < min {
		e.capacityGB = 0
		e.selected = nil
		e.notifier(model.NewNotice(model.SeverityWarning,
			fmt.Sprintf("El espacio seleccionado es insuficiente para %s. Selecciona %.0fGB o más", platform, min)))
	}
}

// Clear drops the budget and the pick list.
func (e *Engine) Clear() {
	e.capacityGB = 0
	e.selected = nil
}
