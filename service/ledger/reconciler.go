// Package ledger reconciles work-order balances from the staff side:
// payments, debt reassignment and status transitions over a single
// snapshot that is refetched after every mutation, never recomputed
// locally.
package ledger

import (
	"context"
	"fmt"

	"github.com/lumenik/install-client/model"
)

type (
	// Backend is the slice of the gateway the reconciler mutates through.
	Backend interface {
		OrderByID(ctx context.Context, id string) (model.WorkOrder, error)
		RecordPayment(ctx context.Context, id string, amount float64) error
		AssignDebt(ctx context.Context, id string, newCost float64) error
		ClearPayments(ctx context.Context, id string) error
		SetOrderStatus(ctx context.Context, id string, status model.OrderStatus) error
	}

	// Confirmer gates destructive ledger operations on user approval.
	Confirmer interface {
		Confirm(ctx context.Context, prompt string) (bool, error)
	}

	// Reconciler drives the payment view over one open order at a time.
	Reconciler struct {
		backend  Backend
		confirm  Confirmer
		notifier model.Notifier

		open *model.WorkOrder
	}
)

// NewReconciler creates a ledger reconciler.
func NewReconciler(backend Backend, confirm Confirmer, notifier model.Notifier) (*Reconciler, error) {
	if backend == nil {
		return nil, fmt.Errorf("%s: must be set", "backend")
	}
	if confirm == nil {
		return nil, fmt.Errorf("%s: must be set", "confirm")
	}
	if notifier == nil {
		notifier = model.DiscardNotices
	}

	return &Reconciler{
		backend:  backend,
		confirm:  confirm,
		notifier: notifier,
	}, nil
}

// Open fetches a fresh order snapshot. Reopening always refetches; a
// snapshot held across a closed view is stale by definition.
func (r *Reconciler) Open(ctx context.Context, orderID string) (model.WorkOrder, error) {
	order, err := r.backend.OrderByID(ctx, orderID)
	if err != nil {
		return model.WorkOrder{}, fmt.Errorf("loading order %s: %w", orderID, err)
	}

	r.open = &order

	return order, nil
}

// Close drops the snapshot.
func (r *Reconciler) Close() {
	r.open = nil
}

// Order returns the current snapshot ("" id when none is open).
func (r *Reconciler) Order() model.WorkOrder {
	if r.open == nil {
		return model.WorkOrder{}
	}

	return *r.open
}

// RecordPayment posts a partial payment against the open order and
// refetches: the backend is authoritative for the cumulative total.
func (r *Reconciler) RecordPayment(ctx context.Context, amount float64) error {
	if r.open == nil {
		return model.ErrNoOpenOrder
	}
	if amount <= 0 {
		return fmt.Errorf("monto %.2f: %w", amount, model.ErrInvalidAmount)
	}

	if err := r.backend.RecordPayment(ctx, r.open.ID, amount); err != nil {
		return fmt.Errorf("recording payment on %s: %w", r.open.ID, err)
	}

	r.notifier(model.NewNotice(model.SeveritySuccess,
		fmt.Sprintf("Pago de $%.2f registrado", amount)))

	return r.refetch(ctx)
}

// PayRemaining settles the outstanding balance with exactly one payment.
// A settled order produces an informational notice and no request.
func (r *Reconciler) PayRemaining(ctx context.Context) error {
	if r.open == nil {
		return model.ErrNoOpenOrder
	}

	outstanding := r.open.Outstanding()
	if outstanding <= 0 {
		r.notifier(model.NewNotice(model.SeverityInfo, "La solicitud ya está pagada por completo"))
		return nil
	}

	return r.RecordPayment(ctx, outstanding)
}

// ReassignDebt replaces the order's cost after confirmation. The backend
// also wipes the payment history, so the refetched snapshot starts over
// with nothing paid.
func (r *Reconciler) ReassignDebt(ctx context.Context, newCost float64) error {
	if r.open == nil {
		return model.ErrNoOpenOrder
	}
	if newCost < 0 {
		return fmt.Errorf("costo %.2f: %w", newCost, model.ErrInvalidAmount)
	}

	ok, err := r.confirm.Confirm(ctx,
		fmt.Sprintf("¿Asignar una nueva deuda de $%.2f? El historial de pagos se eliminará.", newCost))
	if err != nil {
		return fmt.Errorf("confirming debt change: %w", err)
	}
	if !ok {
		return nil
	}

	if err := r.backend.AssignDebt(ctx, r.open.ID, newCost); err != nil {
		return fmt.Errorf("assigning debt on %s: %w", r.open.ID, err)
	}

	r.notifier(model.NewNotice(model.SeveritySuccess, "Deuda total asignada y historial limpiado"))

	return r.refetch(ctx)
}

// ClearPayments wipes the payment history after confirmation.
func (r *Reconciler) ClearPayments(ctx context.Context) error {
	if r.open == nil {
		return model.ErrNoOpenOrder
	}

	ok, err := r.confirm.Confirm(ctx,
		"¿Eliminar todo el historial de pagos? Esta acción no se puede deshacer.")
	if err != nil {
		return fmt.Errorf("confirming payment reset: %w", err)
	}
	if !ok {
		return nil
	}

	if err := r.backend.ClearPayments(ctx, r.open.ID); err != nil {
		return fmt.Errorf("clearing payments on %s: %w", r.open.ID, err)
	}

	r.notifier(model.NewNotice(model.SeveritySuccess, "Historial de pagos eliminado"))

	return r.refetch(ctx)
}

// SetStatus moves an order to any of the four statuses. Transition
// legality is the backend's call, not replicated here.
func (r *Reconciler) SetStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("estado %q: %w", status, model.ErrInvalidStatus)
	}

	if err := r.backend.SetOrderStatus(ctx, orderID, status); err != nil {
		return fmt.Errorf("setting status on %s: %w", orderID, err)
	}

	r.notifier(model.NewNotice(model.SeveritySuccess,
		fmt.Sprintf("Estado actualizado a %s", status)))

	if r.open != nil && r.open.ID == orderID {
		return r.refetch(ctx)
	}

	return nil
}

func (r *Reconciler) refetch(ctx context.Context) error {
	order, err := r.backend.OrderByID(ctx, r.open.ID)
	if err != nil {
		return fmt.Errorf("refreshing order %s: %w", r.open.ID, err)
	}

	r.open = &order

	return nil
}
