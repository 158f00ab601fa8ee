package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/lumenik/install-client/model"
)

type gamesEnvelope struct {
	Games model.GameList `json:"juegos"`
	Total int            `json:"total"`
}

// Games returns every available catalog item across platforms.
func (c *Client) Games(ctx context.Context) (model.GameList, error) {
	env := gamesEnvelope{}
	if err := c.call(ctx, "", http.MethodGet, "/juegos", nil, &env); err != nil {
		return nil, err
	}

	return env.Games, nil
}

// GamesByPlatform returns the filtered catalog for one platform.
func (c *Client) GamesByPlatform(ctx context.Context, platform string) (model.GameList, error) {
	env := gamesEnvelope{}
	endpoint := "/juegos/consola/" + url.PathEscape(platform)
	if err := c.call(ctx, "", http.MethodGet, endpoint, nil, &env); err != nil {
		return nil, err
	}

	return env.Games, nil
}

// GameByID fetches a single catalog item.
func (c *Client) GameByID(ctx context.Context, id string) (model.Game, error) {
	game := model.Game{}
	if err := c.call(ctx, "", http.MethodGet, "/juegos/"+url.PathEscape(id), nil, &game); err != nil {
		return model.Game{}, err
	}

	return game, nil
}

// SearchGames looks items up by a name fragment.
func (c *Client) SearchGames(ctx context.Context, term string) (model.GameList, error) {
	env := gamesEnvelope{}
	endpoint := "/juegos/buscar/" + url.PathEscape(term)
	if err := c.call(ctx, "", http.MethodGet, endpoint, nil, &env); err != nil {
		return nil, err
	}

	return env.Games, nil
}

// CreateGame adds a catalog item (admin).
func (c *Client) CreateGame(ctx context.Context, game model.Game) error {
	return c.call(ctx, "juegos/crear", http.MethodPost, "/juegos", game, nil)
}

// UpdateGame edits a catalog item (admin).
func (c *Client) UpdateGame(ctx context.Context, id string, game model.Game) error {
	return c.call(ctx, "juegos/actualizar", http.MethodPut, "/juegos/"+url.PathEscape(id), game, nil)
}

// SetGameAvailability flips an item's availability (admin).
func (c *Client) SetGameAvailability(ctx context.Context, id string, available bool) error {
	endpoint := "/juegos/" + url.PathEscape(id) + "/disponibilidad"
	body := map[string]bool{"disponible": available}

	return c.call(ctx, "juegos/disponibilidad", http.MethodPost, endpoint, body, nil)
}

// DeleteGame removes a catalog item permanently (admin).
func (c *Client) DeleteGame(ctx context.Context, id string) error {
	return c.call(ctx, "juegos/eliminar", http.MethodDelete, "/juegos/"+url.PathEscape(id), nil, nil)
}

// GameStats returns catalog statistics.
func (c *Client) GameStats(ctx context.Context) (model.GameStats, error) {
	stats := model.GameStats{}
	if err := c.call(ctx, "", http.MethodGet, "/juegos/estadisticas", nil, &stats); err != nil {
		return model.GameStats{}, err
	}

	return stats, nil
}
