package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/lumenik/install-client/model"
)

type (
	ordersEnvelope struct {
		Orders []model.WorkOrder `json:"registros"`
		Total  int               `json:"total"`
	}

	// OrderDraft is the creation/update payload for a work order.
	// Cost is set on creation only (zero; staff assigns the real cost later)
	// and left out of edits so the assigned cost survives them.
	OrderDraft struct {
		ClientID    string            `json:"cliente_id"`
		EmployeeID  *string           `json:"empleado_id,omitempty"`
		ServiceType model.ServiceType `json:"tipo_servicio"`
		Platform    string            `json:"consola"`
		GameIDs     []string          `json:"juegos_instalados"`
		TotalGB     float64           `json:"total_gb"`
		Description string            `json:"descripcion"`
		Cost        *float64          `json:"costo,omitempty"`
	}
)

// Orders returns every work order (staff views).
func (c *Client) Orders(ctx context.Context) ([]model.WorkOrder, error) {
	env := ordersEnvelope{}
	if err := c.call(ctx, "", http.MethodGet, "/trabajos", nil, &env); err != nil {
		return nil, err
	}

	return env.Orders, nil
}

// OrderByID fetches one work order.
func (c *Client) OrderByID(ctx context.Context, id string) (model.WorkOrder, error) {
	order := model.WorkOrder{}
	if err := c.call(ctx, "", http.MethodGet, "/trabajos/"+url.PathEscape(id), nil, &order); err != nil {
		return model.WorkOrder{}, err
	}

	return order, nil
}

// OrdersByClient returns a client's order history, newest first.
func (c *Client) OrdersByClient(ctx context.Context, clientID string) ([]model.WorkOrder, error) {
	env := ordersEnvelope{}
	endpoint := "/trabajos/cliente/" + url.PathEscape(clientID)
	if err := c.call(ctx, "", http.MethodGet, endpoint, nil, &env); err != nil {
		return nil, err
	}

	return env.Orders, nil
}

// OrdersByEmployee returns the orders an employee worked on.
func (c *Client) OrdersByEmployee(ctx context.Context, employeeID string) ([]model.WorkOrder, error) {
	env := ordersEnvelope{}
	endpoint := "/trabajos/empleado/" + url.PathEscape(employeeID)
	if err := c.call(ctx, "", http.MethodGet, endpoint, nil, &env); err != nil {
		return nil, err
	}

	return env.Orders, nil
}

// PendingOrders returns pending orders, optionally scoped to an employee.
func (c *Client) PendingOrders(ctx context.Context, employeeID string) ([]model.WorkOrder, error) {
	endpoint := "/trabajos/pendientes"
	if employeeID != "" {
		endpoint += "?empleado_id=" + url.QueryEscape(employeeID)
	}

	env := ordersEnvelope{}
	if err := c.call(ctx, "", http.MethodGet, endpoint, nil, &env); err != nil {
		return nil, err
	}

	return env.Orders, nil
}

// CreateOrder submits a new service request.
func (c *Client) CreateOrder(ctx context.Context, draft OrderDraft) error {
	return c.call(ctx, "trabajos/crear", http.MethodPost, "/trabajos", draft, nil)
}

// UpdateOrder replaces an order's request data.
func (c *Client) UpdateOrder(ctx context.Context, id string, draft OrderDraft) error {
	return c.call(ctx, "trabajos/actualizar", http.MethodPut, "/trabajos/"+url.PathEscape(id), draft, nil)
}

// DeleteOrder removes an order.
func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	return c.call(ctx, "trabajos/eliminar", http.MethodDelete, "/trabajos/"+url.PathEscape(id), nil, nil)
}

// SetOrderStatus requests a status transition; legality is the backend's call.
func (c *Client) SetOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	endpoint := "/trabajos/" + url.PathEscape(id) + "/cambiar-estado"
	body := map[string]model.OrderStatus{"estado": status}

	return c.call(ctx, "trabajos/estado", http.MethodPost, endpoint, body, nil)
}

// RecordPayment registers a payment against an order.
func (c *Client) RecordPayment(ctx context.Context, id string, amount float64) error {
	endpoint := "/trabajos/" + url.PathEscape(id) + "/registrar-pago"
	body := map[string]float64{"monto": amount}

	return c.call(ctx, "trabajos/pago", http.MethodPost, endpoint, body, nil)
}

// AssignDebt replaces an order's cost; the server resets the payment history.
func (c *Client) AssignDebt(ctx context.Context, id string, newCost float64) error {
	endpoint := "/trabajos/" + url.PathEscape(id) + "/asignar-deuda"
	body := map[string]float64{"nuevo_costo": newCost}

	return c.call(ctx, "trabajos/deuda", http.MethodPost, endpoint, body, nil)
}

// ClearPayments resets an order's payments keeping its cost.
func (c *Client) ClearPayments(ctx context.Context, id string) error {
	endpoint := "/trabajos/" + url.PathEscape(id) + "/limpiar-pagos"

	return c.call(ctx, "trabajos/limpiar-pagos", http.MethodPost, endpoint, struct{}{}, nil)
}

// OrderStats returns aggregate work-order statistics.
func (c *Client) OrderStats(ctx context.Context) (model.OrderStats, error) {
	stats := model.OrderStats{}
	if err := c.call(ctx, "", http.MethodGet, "/trabajos/estadisticas", nil, &stats); err != nil {
		return model.OrderStats{}, err
	}

	return stats, nil
}
