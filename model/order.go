package model

import "time"

type (
	// WorkOrder is a service request; the backend owns it, the client keeps
	// read-mostly cached copies which are discarded after every mutation.
	WorkOrder struct {
		ID          string      `json:"id"`
		ClientID    string      `json:"cliente_id"`
		EmployeeID  string      `json:"empleado_id,omitempty"`
		ServiceType ServiceType `json:"tipo_servicio"`
		Platform    string      `json:"consola"`
		GameIDs     []string    `json:"juegos_instalados"`
		TotalGB     float64     `json:"total_gb"`
		Description string      `json:"descripcion"`
		Status      OrderStatus `json:"estado"`
		Cost        float64     `json:"costo"`
		AmountPaid  float64     `json:"monto_pagado"`
		Payments    []Payment   `json:"pagos"`
		CreatedAt   *time.Time  `json:"fecha_creacion,omitempty"`
		StartedAt   *time.Time  `json:"fecha_inicio,omitempty"`
		FinishedAt  *time.Time  `json:"fecha_fin,omitempty"`
	}

	// Payment is a single settled amount within a work order.
	Payment struct {
		Amount float64   `json:"monto"`
		Date   time.Time `json:"fecha"`
	}
)

// Outstanding returns cost minus cumulative payments, floored at zero.
func (o WorkOrder) Outstanding() float64 {
	balance := o.Cost - o.AmountPaid
	if balance < 0 {
		return 0
	}

	return balance
}

// FullyPaid reports whether the cumulative payments cover the cost.
func (o WorkOrder) FullyPaid() bool {
	return o.AmountPaid >= o.Cost
}

// Editable reports whether the client may still modify the order.
func (o WorkOrder) Editable() bool {
	return o.Status == StatusPending
}
