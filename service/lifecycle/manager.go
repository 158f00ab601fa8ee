// Package lifecycle drives a service request through create/edit/cancel,
// holding the one globally-exclusive edit session.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lumenik/install-client/api"
	"github.com/lumenik/install-client/catalog"
	"github.com/lumenik/install-client/model"
	"github.com/lumenik/install-client/service/selection"
)

type (
	// Backend is the slice of the API gateway the manager needs.
	Backend interface {
		OrdersByClient(ctx context.Context, clientID string) ([]model.WorkOrder, error)
		Games(ctx context.Context) (model.GameList, error)
		CreateOrder(ctx context.Context, draft api.OrderDraft) error
		UpdateOrder(ctx context.Context, id string, draft api.OrderDraft) error
		DeleteOrder(ctx context.Context, id string) error
	}

	// Confirmer asks the user a yes/no question; injected so destructive
	// paths stay testable without a UI.
	Confirmer interface {
		Confirm(ctx context.Context, prompt string) (bool, error)
	}

	// EditSession marks the single in-progress modification of one pending
	// request. At most one exists per manager.
	EditSession struct {
		OrderID string
		Token   string
	}

	// Manager owns the request lifecycle for one client.
	Manager struct {
		engine   *selection.Engine
		cache    *catalog.Cache
		backend  Backend
		confirm  Confirmer
		notifier model.Notifier

		clientID        string
		defaultPlatform string

		edit *EditSession
	}
)

// NewManager creates a lifecycle manager.
func NewManager(engine *selection.Engine, cache *catalog.Cache, backend Backend,
	confirm Confirmer, notifier model.Notifier, clientID, defaultPlatform string) (*Manager, error) {

	if engine == nil {
		return nil, fmt.Errorf("%s: must be set", "engine")
	}
	if cache == nil {
		return nil, fmt.Errorf("%s: must be set", "cache")
	}
	if backend == nil {
		return nil, fmt.Errorf("%s: must be set", "backend")
	}
	if confirm == nil {
		return nil, fmt.Errorf("%s: must be set", "confirm")
	}
	if clientID == "" {
		return nil, fmt.Errorf("%s: must be set", "clientID")
	}
	if notifier == nil {
		notifier = model.DiscardNotices
	}

	return &Manager{
		engine:          engine,
		cache:           cache,
		backend:         backend,
		confirm:         confirm,
		notifier:        notifier,
		clientID:        clientID,
		defaultPlatform: defaultPlatform,
	}, nil
}

// Editing reports whether an edit session is open; create/clear/platform
// controls are disabled while it is.
func (m *Manager) Editing() bool {
	return m.edit != nil
}

// EditingID returns the order id under edit ("" when idle).
func (m *Manager) EditingID() string {
	if m.edit == nil {
		return ""
	}

	return m.edit.OrderID
}

// BeginEdit loads a pending request and seeds the selection from it.
// Exactly one session may be open; the target must exist in the client's
// pending set even if the caller bypassed the UI gate.
func (m *Manager) BeginEdit(ctx context.Context, orderID string) error {
	if m.edit != nil {
		return fmt.Errorf("order %s: %w", m.edit.OrderID, model.ErrEditConflict)
	}

	orders, err := m.backend.OrdersByClient(ctx, m.clientID)
	if err != nil {
		return fmt.Errorf("loading orders: %w", err)
	}

	var order *model.WorkOrder
	for i := range orders {
		if orders[i].ID == orderID {
			order = &orders[i]
			break
		}
	}
	if order == nil {
		return fmt.Errorf("order %s not found: %w", orderID, model.ErrEditConflict)
	}
	if !order.Editable() {
		return fmt.Errorf("order %s: %w", orderID, model.ErrNotEditable)
	}

	games, err := m.resolveGames(ctx, order.GameIDs)
	if err != nil {
		return err
	}

	m.engine.Seed(order.Platform, order.TotalGB, games)
	m.edit = &EditSession{OrderID: orderID, Token: uuid.New().String()}

	m.notifier(model.NewNotice(model.SeverityInfo,
		fmt.Sprintf("Editando solicitud: %d juego(s), %.1fGB", len(games), games.TotalGB())))

	return nil
}

// resolveGames maps stored ids to items: the currently cached catalog first,
// then one unfiltered full-catalog lookup, since the request's platform may
// differ from the displayed one.
func (m *Manager) resolveGames(ctx context.Context, ids []string) (model.GameList, error) {
	resolved := make(model.GameList, 0, len(ids))
	for _, id := range ids {
		if g, ok := m.cache.Get(id); ok {
			resolved = append(resolved, g)
		}
	}
	if len(resolved) == len(ids) {
		return resolved, nil
	}

	all, err := m.backend.Games(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading full catalog: %w", err)
	}

	resolved = resolved[:0]
	for _, id := range ids {
		if g, ok := all.Find(id); ok {
			resolved = append(resolved, g)
		}
	}

	return resolved, nil
}

// CancelEdit discards the edit after an interactive confirmation and
// restores the default platform view.
func (m *Manager) CancelEdit(ctx context.Context) error {
	if m.edit == nil {
		return model.ErrNoEditSession
	}

	ok, err := m.confirm.Confirm(ctx, "¿Deseas cancelar la edición? Se perderán todos los cambios.")
	if err != nil {
		return fmt.Errorf("confirming cancel: %w", err)
	}
	if !ok {
		return nil
	}

	m.edit = nil
	m.engine.Clear()
	m.engine.SetPlatform(m.defaultPlatform)

	m.notifier(model.NewNotice(model.SeverityInfo, "Edición cancelada"))

	return nil
}

// SaveEdit submits the edited selection over the open session.
func (m *Manager) SaveEdit(ctx context.Context) error {
	if m.edit == nil {
		return model.ErrNoEditSession
	}
	if err := m.validateSelection(); err != nil {
		return err
	}

	draft := m.draft()
	if err := m.backend.UpdateOrder(ctx, m.edit.OrderID, draft); err != nil {
		return fmt.Errorf("updating order %s: %w", m.edit.OrderID, err)
	}

	m.edit = nil
	m.engine.Clear()
	m.engine.SetPlatform(m.defaultPlatform)

	m.notifier(model.NewNotice(model.SeveritySuccess, "Solicitud actualizada correctamente"))

	return nil
}

// SubmitNew creates a request from the current selection. Cost starts at
// zero; staff assigns the real cost later.
func (m *Manager) SubmitNew(ctx context.Context) error {
	if m.edit != nil {
		return fmt.Errorf("order %s: %w", m.edit.OrderID, model.ErrEditConflict)
	}
	if err := m.validateSelection(); err != nil {
		return err
	}

	draft := m.draft()
	cost := 0.0
	draft.Cost = &cost

	if err := m.backend.CreateOrder(ctx, draft); err != nil {
		return fmt.Errorf("creating order: %w", err)
	}

	m.engine.Clear()
	m.notifier(model.NewNotice(model.SeveritySuccess, "¡Solicitud enviada! Un empleado se pondrá en contacto"))

	return nil
}

// DeleteOrder removes a pending request after confirmation; blocked while
// an edit session is open.
func (m *Manager) DeleteOrder(ctx context.Context, orderID string) error {
	if m.edit != nil {
		return fmt.Errorf("order %s: %w", m.edit.OrderID, model.ErrEditConflict)
	}

	ok, err := m.confirm.Confirm(ctx, "¿Estás seguro de que deseas eliminar esta solicitud? Esta acción no se puede deshacer.")
	if err != nil {
		return fmt.Errorf("confirming delete: %w", err)
	}
	if !ok {
		return nil
	}

	if err := m.backend.DeleteOrder(ctx, orderID); err != nil {
		return fmt.Errorf("deleting order %s: %w", orderID, err)
	}

	m.notifier(model.NewNotice(model.SeveritySuccess, "Solicitud eliminada correctamente"))

	return nil
}

// validateSelection fails fast before any network call.
func (m *Manager) validateSelection() error {
	selected := m.engine.Selected()
	if len(selected) == 0 {
		return model.ErrEmptySelection
	}
	if m.engine.CapacityGB() <= 0 {
		return model.ErrNoCapacity
	}
	if m.engine.Summary().OverLimit {
		return fmt.Errorf("%.1fGB de %.1fGB: %w",
			selected.TotalGB(), m.engine.CapacityGB(), model.ErrOverLimit)
	}

	return nil
}

// draft builds the request payload from the selection: platform follows the
// first selected item, the budget becomes the request size, the description
// is a generated summary.
func (m *Manager) draft() api.OrderDraft {
	selected := m.engine.Selected()

	platform := m.engine.Platform()
	if len(selected) > 0 && selected[0].Platform != "" {
		platform = selected[0].Platform
	}

	names := ""
	for i, g := range selected {
		if i > 0 {
			names += ", "
		}
		names += g.Name
	}

	return api.OrderDraft{
		ClientID:    m.clientID,
		ServiceType: model.ServiceInstall,
		Platform:    platform,
		GameIDs:     selected.IDs(),
		TotalGB:     m.engine.CapacityGB(),
		Description: fmt.Sprintf("%d juego(s): %s | %.1fGB", len(selected), names, selected.TotalGB()),
	}
}
