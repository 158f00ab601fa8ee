package model

type (
	// Role is a user access level.
	Role string

	// OrderStatus is a work order lifecycle state.
	OrderStatus string

	// ServiceType is the kind of service a work order asks for.
	ServiceType string
)

const (
	RoleClient   Role = "cliente"
	RoleEmployee Role = "empleado"
	RoleAdmin    Role = "administrador"
)

const (
	StatusPending    OrderStatus = "pendiente"
	StatusInProgress OrderStatus = "en_progreso"
	StatusCompleted  OrderStatus = "completado"
	StatusCancelled  OrderStatus = "cancelado"
)

const (
	ServiceInstall  ServiceType = "instalacion"
	ServiceDownload ServiceType = "descarga"
)

// Valid checks the status against the known set (the backend owns transition legality).
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// User account states as the backend stores them.
const (
	UserActive   = "activo"
	UserInactive = "inactivo"
)
