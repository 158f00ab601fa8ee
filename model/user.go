package model

type (
	// User is a backend account profile.
	User struct {
		ID       string `json:"id"`
		Username string `json:"nombre_usuario"`
		FullName string `json:"nombre_completo"`
		Email    string `json:"email,omitempty"`
		Phone    string `json:"telefono,omitempty"`
		Role     Role   `json:"rol"`
		State    string `json:"estado,omitempty"`
	}

	// UserStats mirrors GET /usuarios/estadisticas.
	UserStats struct {
		TotalUsers int `json:"total_usuarios"`
		Admins     int `json:"administradores"`
		Employees  int `json:"empleados"`
		Clients    int `json:"clientes"`
		Active     int `json:"usuarios_activos"`
	}

	// GameStats mirrors GET /juegos/estadisticas.
	GameStats struct {
		TotalGames  int            `json:"total_juegos"`
		PerPlatform map[string]int `json:"por_consola"`
		TotalSizeGB float64        `json:"peso_total_gb"`
	}

	// OrderStats mirrors GET /trabajos/estadisticas.
	OrderStats struct {
		TotalOrders int     `json:"total_registros"`
		Completed   int     `json:"completados"`
		Pending     int     `json:"pendientes"`
		Income      float64 `json:"ingresos_total"`
	}
)

// Active reports whether the account may log in.
func (u User) Active() bool {
	return u.State == "" || u.State == UserActive
}
