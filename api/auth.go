package api

import (
	"context"
	"net/http"

	"github.com/lumenik/install-client/model"
)

type (
	// LoginResult mirrors POST /auth/login.
	LoginResult struct {
		Token    string     `json:"token"`
		UserID   string     `json:"usuario_id"`
		Username string     `json:"nombre_usuario"`
		FullName string     `json:"nombre_completo"`
		Role     model.Role `json:"rol"`
	}

	// RegisterUser is the registration payload (staff-created accounts).
	RegisterUser struct {
		Username string     `json:"nombre_usuario"`
		Password string     `json:"contraseña"`
		Email    string     `json:"email"`
		FullName string     `json:"nombre_completo"`
		Phone    string     `json:"telefono,omitempty"`
		Role     model.Role `json:"rol"`
	}
)

// User converts the login result to a profile for the session store.
func (r LoginResult) User() model.User {
	return model.User{
		ID:       r.UserID,
		Username: r.Username,
		FullName: r.FullName,
		Role:     r.Role,
	}
}

// Login authenticates; the only call issued without a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	body := map[string]string{
		"nombre_usuario": username,
		"contraseña":     password,
	}

	res := LoginResult{}
	if err := c.call(ctx, "auth/login", http.MethodPost, "/auth/login", body, &res); err != nil {
		return LoginResult{}, err
	}

	return res, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, user RegisterUser) error {
	return c.call(ctx, "auth/registrar", http.MethodPost, "/auth/registrar", user, nil)
}

// ChangePassword rotates the caller's password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{
		"contraseña_actual": current,
		"contraseña_nueva":  next,
	}

	return c.call(ctx, "auth/cambiar-contraseña", http.MethodPost, "/auth/cambiar-contraseña", body, nil)
}

// ValidateToken asks the backend whether a token is still good.
func (c *Client) ValidateToken(ctx context.Context, token string) error {
	return c.call(ctx, "", http.MethodPost, "/auth/validar-token", map[string]string{"token": token}, nil)
}

// Health reports backend reachability.
func (c *Client) Health(ctx context.Context) bool {
	return c.call(ctx, "", http.MethodGet, "/health", nil, nil) == nil
}
