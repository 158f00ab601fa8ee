package lifecycle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumenik/install-client/api"
	"github.com/lumenik/install-client/catalog"
	"github.com/lumenik/install-client/model"
	"github.com/lumenik/install-client/service/selection"
)

type stubBackend struct {
	orders    []model.WorkOrder
	games     model.GameList
	gamesHits int

	created []api.OrderDraft
	updated map[string]api.OrderDraft
	deleted []string
	fail    error
}

func (b *stubBackend) OrdersByClient(ctx context.Context, clientID string) ([]model.WorkOrder, error) {
	return b.orders, b.fail
}

func (b *stubBackend) Games(ctx context.Context) (model.GameList, error) {
	b.gamesHits++
	return b.games, b.fail
}

func (b *stubBackend) CreateOrder(ctx context.Context, draft api.OrderDraft) error {
	if b.fail != nil {
		return b.fail
	}
	b.created = append(b.created, draft)

	return nil
}

func (b *stubBackend) UpdateOrder(ctx context.Context, id string, draft api.OrderDraft) error {
	if b.fail != nil {
		return b.fail
	}
	if b.updated == nil {
		b.updated = make(map[string]api.OrderDraft)
	}
	b.updated[id] = draft

	return nil
}

func (b *stubBackend) DeleteOrder(ctx context.Context, id string) error {
	if b.fail != nil {
		return b.fail
	}
	b.deleted = append(b.deleted, id)

	return nil
}

type stubConfirmer struct {
	answer bool
	asked  []string
}

func (c *stubConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	c.asked = append(c.asked, prompt)
	return c.answer, nil
}

var testPolicy = selection.Policy{
	LargeCatalogPlatforms: []string{"PS3", "PS4"},
	MinLargeCatalogGB:     128,
}

func game(id, platform string, sizeGB float64) model.Game {
	return model.Game{ID: id, Name: "Game " + id, Platform: platform, SizeGB: sizeGB, Available: true}
}

func newTestManager(t *testing.T, backend *stubBackend, confirm *stubConfirmer) (*Manager, *selection.Engine, *catalog.Cache) {
	t.Helper()

	engine := selection.NewEngine(testPolicy, "PS2", nil)
	cache := catalog.NewCache()

	manager, err := NewManager(engine, cache, backend, confirm, model.DiscardNotices, "client-1", "PS4")
	require.NoError(t, err)

	return manager, engine, cache
}

func pendingOrder(id string) model.WorkOrder {
	return model.WorkOrder{
		ID:       id,
		ClientID: "client-1",
		Platform: "PS4",
		GameIDs:  []string{"a", "b"},
		TotalGB:  500,
		Status:   model.StatusPending,
	}
}

func Test_Manager_SubmitNew(t *testing.T) {
	backend := &stubBackend{}
	manager, engine, _ := newTestManager(t, backend, &stubConfirmer{answer: true})
	ctx := context.Background()

	// fail-fast validations: nothing reaches the backend
	require.ErrorIs(t, manager.SubmitNew(ctx), model.ErrEmptySelection)

	engine.SetCapacity(100)
	require.NoError(t, engine.Toggle(game("a", "PS2", 40)))
	require.NoError(t, engine.Toggle(game("b", "PS2", 30)))

	require.NoError(t, manager.SubmitNew(ctx))
	require.Len(t, backend.created, 1)

	draft := backend.created[0]
	require.Equal(t, "client-1", draft.ClientID)
	require.Equal(t, model.ServiceInstall, draft.ServiceType)
	require.Equal(t, "PS2", draft.Platform)
	require.Equal(t, []string{"a", "b"}, draft.GameIDs)
	require.Equal(t, 100.0, draft.TotalGB)
	require.NotNil(t, draft.Cost)
	require.Equal(t, 0.0, *draft.Cost)
	require.Equal(t, "2 juego(s): Game a, Game b | 70.0GB", draft.Description)

	// selection is cleared on success
	require.Empty(t, engine.Selected())
}

func Test_Manager_SubmitNew_NoCapacity(t *testing.T) {
	backend := &stubBackend{}
	manager, engine, _ := newTestManager(t, backend, &stubConfirmer{answer: true})

	// restored state without a budget (the stored order predates the policy)
	engine.Seed("PS2", 0, model.GameList{game("a", "PS2", 10)})

	require.ErrorIs(t, manager.SubmitNew(context.Background()), model.ErrNoCapacity)
	require.Empty(t, backend.created)
}

func Test_Manager_SubmitNew_OverLimitBlocked(t *testing.T) {
	backend := &stubBackend{}
	manager, engine, _ := newTestManager(t, backend, &stubConfirmer{answer: true})

	// pre-existing over-capacity state (seeded)
	engine.Seed("PS2", 25, model.GameList{game("a", "PS2", 10), game("b", "PS2", 15), game("c", "PS2", 5)})

	require.ErrorIs(t, manager.SubmitNew(context.Background()), model.ErrOverLimit)
	require.Empty(t, backend.created)
}

func Test_Manager_EditExclusivity(t *testing.T) {
	backend := &stubBackend{
		orders: []model.WorkOrder{pendingOrder("t1"), pendingOrder("t2")},
		games:  model.GameList{game("a", "PS4", 100), game("b", "PS4", 50)},
	}
	manager, engine, _ := newTestManager(t, backend, &stubConfirmer{answer: true})
	ctx := context.Background()

	require.NoError(t, manager.BeginEdit(ctx, "t1"))
	require.True(t, manager.Editing())
	require.Equal(t, "t1", manager.EditingID())
	require.Equal(t, []string{"a", "b"}, engine.Selected().IDs())
	require.Equal(t, 500.0, engine.CapacityGB())

	// a second edit fails and leaves the open session untouched
	require.ErrorIs(t, manager.BeginEdit(ctx, "t2"), model.ErrEditConflict)
	require.Equal(t, "t1", manager.EditingID())
	require.Equal(t, []string{"a", "b"}, engine.Selected().IDs())

	// create and delete are disabled while editing
	require.ErrorIs(t, manager.SubmitNew(ctx), model.ErrEditConflict)
	require.ErrorIs(t, manager.DeleteOrder(ctx, "t2"), model.ErrEditConflict)
}

func Test_Manager_BeginEdit_Gates(t *testing.T) {
	inProgress := pendingOrder("t3")
	inProgress.Status = model.StatusInProgress

	backend := &stubBackend{orders: []model.WorkOrder{inProgress}}
	manager, _, _ := newTestManager(t, backend, &stubConfirmer{answer: true})
	ctx := context.Background()

	// unknown order: conflict-class failure even if the UI gate was bypassed
	require.ErrorIs(t, manager.BeginEdit(ctx, "missing"), model.ErrEditConflict)
	require.False(t, manager.Editing())

	// non-pending order
	require.ErrorIs(t, manager.BeginEdit(ctx, "t3"), model.ErrNotEditable)
	require.False(t, manager.Editing())
}

func Test_Manager_BeginEdit_ResolvesFromCacheThenFullCatalog(t *testing.T) {
	backend := &stubBackend{
		orders: []model.WorkOrder{pendingOrder("t1")},
		games:  model.GameList{game("a", "PS4", 100), game("b", "PS4", 50)},
	}
	manager, engine, cache := newTestManager(t, backend, &stubConfirmer{answer: true})
	ctx := context.Background()

	// displayed catalog differs from the order's platform: full-catalog fallback
	cache.Replace("PS2", model.GameList{game("x", "PS2", 1)})
	require.NoError(t, manager.BeginEdit(ctx, "t1"))
	require.Equal(t, 1, backend.gamesHits)
	require.Equal(t, []string{"a", "b"}, engine.Selected().IDs())

	// fully cached ids need no extra fetch
	require.NoError(t, manager.SaveEdit(ctx))
	cache.Replace("PS4", backend.games)
	require.NoError(t, manager.BeginEdit(ctx, "t1"))
	require.Equal(t, 1, backend.gamesHits)
}

func Test_Manager_SaveEdit(t *testing.T) {
	backend := &stubBackend{
		orders: []model.WorkOrder{pendingOrder("t1")},
		games:  model.GameList{game("a", "PS4", 100), game("b", "PS4", 50)},
	}
	manager, engine, _ := newTestManager(t, backend, &stubConfirmer{answer: true})
	ctx := context.Background()

	// no session open
	require.ErrorIs(t, manager.SaveEdit(ctx), model.ErrNoEditSession)

	require.NoError(t, manager.BeginEdit(ctx, "t1"))
	require.NoError(t, manager.SaveEdit(ctx))

	draft, ok := backend.updated["t1"]
	require.True(t, ok)
	require.Equal(t, "PS4", draft.Platform)
	require.Equal(t, []string{"a", "b"}, draft.GameIDs)
	require.Equal(t, 500.0, draft.TotalGB)
	// edits never resend a cost: the staff-assigned one survives
	require.Nil(t, draft.Cost)

	// session closed, controls re-enabled, default platform restored
	require.False(t, manager.Editing())
	require.Empty(t, engine.Selected())
	require.Equal(t, "PS4", engine.Platform())
}

func Test_Manager_SaveEdit_EmptySelection(t *testing.T) {
	backend := &stubBackend{
		orders: []model.WorkOrder{pendingOrder("t1")},
		games:  model.GameList{game("a", "PS4", 100), game("b", "PS4", 50)},
	}
	manager, engine, _ := newTestManager(t, backend, &stubConfirmer{answer: true})
	ctx := context.Background()

	require.NoError(t, manager.BeginEdit(ctx, "t1"))
	require.NoError(t, engine.Toggle(game("a", "PS4", 100)))
	require.NoError(t, engine.Toggle(game("b", "PS4", 50)))

	require.ErrorIs(t, manager.SaveEdit(ctx), model.ErrEmptySelection)
	require.Empty(t, backend.updated)
	// failed save keeps the session open
	require.True(t, manager.Editing())
}

func Test_Manager_CancelEdit(t *testing.T) {
	backend := &stubBackend{
		orders: []model.WorkOrder{pendingOrder("t1")},
		games:  model.GameList{game("a", "PS4", 100), game("b", "PS4", 50)},
	}
	confirm := &stubConfirmer{answer: false}
	manager, engine, _ := newTestManager(t, backend, confirm)
	ctx := context.Background()

	require.ErrorIs(t, manager.CancelEdit(ctx), model.ErrNoEditSession)

	require.NoError(t, manager.BeginEdit(ctx, "t1"))

	// declined confirmation keeps everything as it was
	require.NoError(t, manager.CancelEdit(ctx))
	require.True(t, manager.Editing())
	require.Len(t, confirm.asked, 1)

	confirm.answer = true
	require.NoError(t, manager.CancelEdit(ctx))
	require.False(t, manager.Editing())
	require.Empty(t, engine.Selected())
	require.Equal(t, "PS4", engine.Platform())
}

func Test_Manager_DeleteOrder(t *testing.T) {
	backend := &stubBackend{}
	confirm := &stubConfirmer{answer: false}
	manager, _, _ := newTestManager(t, backend, confirm)
	ctx := context.Background()

	// declined: nothing sent
	require.NoError(t, manager.DeleteOrder(ctx, "t9"))
	require.Empty(t, backend.deleted)

	confirm.answer = true
	require.NoError(t, manager.DeleteOrder(ctx, "t9"))
	require.Equal(t, []string{"t9"}, backend.deleted)
}
