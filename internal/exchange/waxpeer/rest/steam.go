package rest

import (
	"context"
	"net/url"
	"strconv"

	"waxbot/internal/models"
)

type ItemsListParams struct {
	Skip     int
	Search   string
	Brand    string
	Order    models.SortOrder
	OrderBy  string
	Exterior string
	MinPrice models.Price
	MaxPrice models.Price
	Game     models.Game
}

// GetItemsList lists marketplace items for a game, at most 100 per
// page - `/get-items-list`.
func (c *Client) GetItemsList(ctx context.Context, p ItemsListParams) (*models.ItemsListResponse, error) {
	params := url.Values{}
	params.Set("skip", strconv.Itoa(p.Skip))
	setString(params, "search", p.Search)
	setString(params, "brand", p.Brand)
	params.Set("order", string(orDefault(p.Order, models.SortDesc)))
	params.Set("order_by", orDefault(p.OrderBy, "price"))
	setString(params, "exterior", p.Exterior)
	setInt(params, "max_price", int64(p.MaxPrice))
	setInt(params, "min_price", int64(p.MinPrice))
	params.Set("game", string(orDefault(p.Game, models.GameCSGO)))

	var resp models.ItemsListResponse
	if err := c.get(ctx, "get-items-list", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSteamItems returns recommended prices for a steam app id - `/get-steam-items`.
func (c *Client) GetSteamItems(ctx context.Context, appID int, highestOffer bool) (*models.SteamItemsResponse, error) {
	if appID == 0 {
		appID = models.GameCSGO.AppID()
	}
	params := url.Values{}
	params.Set("game", strconv.Itoa(appID))
	setFlag(params, "highest_offer", highestOffer)

	var resp models.SteamItemsResponse
	if err := c.get(ctx, "get-steam-items", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func orDefault[T comparable](value, fallback T) T {
	var zero T
	if value == zero {
		return fallback
	}
	return value
}
