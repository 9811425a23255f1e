package rest

import (
	"context"
	"net/url"
	"strconv"

	"waxbot/internal/models"
)

// BuyOrderHistory returns buy order triggers - `/buy-order-history`. An
// empty game returns all games.
func (c *Client) BuyOrderHistory(ctx context.Context, skip int, game models.Game, sort models.SortOrder) (*models.BuyOrderHistoryResponse, error) {
	params := url.Values{}
	params.Set("skip", strconv.Itoa(skip))
	setString(params, "game", string(game))
	params.Set("sort", string(orDefault(sort, models.SortAsc)))

	var resp models.BuyOrderHistoryResponse
	if err := c.get(ctx, "buy-order-history", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type BuyOrdersParams struct {
	Skip int
	Name string
	Own  bool
	Game models.Game
}

// BuyOrders lists active buy orders sorted by price DESC - `/buy-orders`.
func (c *Client) BuyOrders(ctx context.Context, p BuyOrdersParams) (*models.BuyOrdersResponse, error) {
	params := url.Values{}
	params.Set("skip", strconv.Itoa(p.Skip))
	setString(params, "name", p.Name)
	setFlag(params, "own", p.Own)
	setString(params, "game", string(p.Game))

	var resp models.BuyOrdersResponse
	if err := c.get(ctx, "buy-orders", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateBuyOrder places an order that auto-purchases up to amount items at
// or below price - `/create-buy-order`.
func (c *Client) CreateBuyOrder(ctx context.Context, name string, amount int, price models.Price, game models.Game) (*models.CreateBuyOrderResponse, error) {
	params := url.Values{}
	params.Set("name", name)
	params.Set("amount", strconv.Itoa(amount))
	params.Set("price", strconv.FormatInt(int64(price), 10))
	params.Set("game", string(orDefault(game, models.GameCSGO)))

	var resp models.CreateBuyOrderResponse
	if err := c.post(ctx, "create-buy-order", params, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EditBuyOrder changes amount and price of an order - `/edit-buy-order`.
func (c *Client) EditBuyOrder(ctx context.Context, id int64, amount int, price models.Price) (*models.EditBuyOrderResponse, error) {
	body := map[string]any{
		"id":     id,
		"amount": amount,
		"price":  price,
	}

	var resp models.EditBuyOrderResponse
	if err := c.post(ctx, "edit-buy-order", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveBuyOrder removes one or more orders - `/remove-buy-order`.
func (c *Client) RemoveBuyOrder(ctx context.Context, ids ...int64) (*models.RemovedResponse, error) {
	params := url.Values{}
	for _, id := range ids {
		params.Add("id", strconv.FormatInt(id, 10))
	}

	var resp models.RemovedResponse
	if err := c.get(ctx, "remove-buy-order", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveAllOrders removes every buy order, optionally for one game -
// `/remove-all-orders`. On timeout the server answers success=false; the
// partial count is then available through APIError.Decode.
func (c *Client) RemoveAllOrders(ctx context.Context, game models.Game) (*models.RemovedResponse, error) {
	params := url.Values{}
	setString(params, "game", string(game))

	var resp models.RemovedResponse
	if err := c.get(ctx, "remove-all-orders", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
