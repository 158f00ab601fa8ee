package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/lumenik/install-client/model"
)

type usersEnvelope struct {
	Users []model.User `json:"usuarios"`
}

// Users returns every account (admin).
func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	env := usersEnvelope{}
	if err := c.call(ctx, "", http.MethodGet, "/usuarios", nil, &env); err != nil {
		return nil, err
	}

	return env.Users, nil
}

// UserByID fetches one account.
func (c *Client) UserByID(ctx context.Context, id string) (model.User, error) {
	user := model.User{}
	if err := c.call(ctx, "", http.MethodGet, "/usuarios/"+url.PathEscape(id), nil, &user); err != nil {
		return model.User{}, err
	}

	return user, nil
}

// UsersByRole returns active accounts with the given role.
func (c *Client) UsersByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	env := usersEnvelope{}
	endpoint := "/usuarios/rol/" + url.PathEscape(string(role))
	if err := c.call(ctx, "", http.MethodGet, endpoint, nil, &env); err != nil {
		return nil, err
	}

	return env.Users, nil
}

// CreateUser adds an account (admin).
func (c *Client) CreateUser(ctx context.Context, user RegisterUser) error {
	return c.call(ctx, "usuarios/crear", http.MethodPost, "/usuarios", user, nil)
}

// UpdateUser edits an account's fields (admin).
func (c *Client) UpdateUser(ctx context.Context, id string, fields map[string]string) error {
	return c.call(ctx, "usuarios/actualizar", http.MethodPut, "/usuarios/"+url.PathEscape(id), fields, nil)
}

// SetUserState activates/deactivates an account (admin).
func (c *Client) SetUserState(ctx context.Context, id, state string) error {
	endpoint := "/usuarios/" + url.PathEscape(id) + "/cambiar-estado"
	body := map[string]string{"estado": state}

	return c.call(ctx, "usuarios/estado", http.MethodPost, endpoint, body, nil)
}

// DeleteUser removes an account permanently (admin).
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.call(ctx, "usuarios/eliminar", http.MethodDelete, "/usuarios/"+url.PathEscape(id), nil, nil)
}

// UserStats returns aggregate account statistics.
func (c *Client) UserStats(ctx context.Context) (model.UserStats, error) {
	stats := model.UserStats{}
	if err := c.call(ctx, "", http.MethodGet, "/usuarios/estadisticas", nil, &stats); err != nil {
		return model.UserStats{}, err
	}

	return stats, nil
}
