package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_WorkOrder_Balance(t *testing.T) {
	order := WorkOrder{
		Cost:       100000,
		AmountPaid: 50000,
		Payments: []Payment{
			{Amount: 30000},
			{Amount: 20000},
		},
	}

	require.Equal(t, 50000.0, order.Outstanding())
	require.False(t, order.FullyPaid())

	order.AmountPaid = 100000
	require.Equal(t, 0.0, order.Outstanding())
	require.True(t, order.FullyPaid())

	// overpaid orders never report a negative balance
	order.AmountPaid = 120000
	require.Equal(t, 0.0, order.Outstanding())
	require.True(t, order.FullyPaid())
}

func Test_WorkOrder_Editable(t *testing.T) {
	order := WorkOrder{Status: StatusPending}
	require.True(t, order.Editable())

	for _, status := range []OrderStatus{StatusInProgress, StatusCompleted, StatusCancelled} {
		order.Status = status
		require.False(t, order.Editable(), "status %s", status)
	}
}

func Test_GameList(t *testing.T) {
	list := GameList{
		{ID: "a", Name: "Alpha", SizeGB: 10},
		{ID: "b", Name: "Beta", SizeGB: 15.5},
	}

	require.Equal(t, 25.5, list.TotalGB())
	require.Equal(t, []string{"a", "b"}, list.IDs())

	g, ok := list.Find("b")
	require.True(t, ok)
	require.Equal(t, "Beta", g.Name)

	_, ok = list.Find("c")
	require.False(t, ok)
}

func Test_DiffCatalogs(t *testing.T) {
	prev := GameList{
		{ID: "a", Name: "Alpha", Available: true},
		{ID: "b", Name: "Beta", Available: true},
		{ID: "c", Name: "Gamma", Available: false},
	}

	// identical snapshots (different order) produce an empty diff
	same := GameList{prev[2], prev[0], prev[1]}
	require.True(t, DiffCatalogs(prev, same).Empty())

	next := GameList{
		{ID: "a", Name: "Alpha", Available: false},
		{ID: "c", Name: "Gamma", Available: false},
		{ID: "d", Name: "Delta", Available: true},
	}

	diff := DiffCatalogs(prev, next)
	require.False(t, diff.Empty())

	require.Len(t, diff.Added, 1)
	require.Equal(t, "d", diff.Added[0].ID)

	require.Len(t, diff.Removed, 1)
	require.Equal(t, "b", diff.Removed[0].ID)

	require.Len(t, diff.Flips, 1)
	require.Equal(t, "a", diff.Flips[0].ID)
	require.False(t, diff.Flips[0].Available)
}

func Test_ErrorClasses(t *testing.T) {
	require.True(t, IsValidation(ErrInvalidAmount))
	require.True(t, IsValidation(ErrCapacityUnset))
	require.False(t, IsValidation(ErrEditConflict))

	require.True(t, IsStateConflict(ErrEditConflict))
	require.True(t, IsStateConflict(ErrBusy))
	require.False(t, IsStateConflict(ErrEmptySelection))
}
