package rest

import (
	"context"
	"net/url"
	"strconv"

	"waxbot/internal/models"
)

// GetMyInventory returns items that can be listed - `/get-my-inventory`.
// Call FetchInventory first to refresh it.
func (c *Client) GetMyInventory(ctx context.Context, skip int, game models.Game) (*models.InventoryResponse, error) {
	params := url.Values{}
	params.Set("skip", strconv.Itoa(skip))
	params.Set("game", string(orDefault(game, models.GameCSGO)))

	var resp models.InventoryResponse
	if err := c.get(ctx, "get-my-inventory", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ReadyToTransferP2P returns sold items whose steam offers still need to be
// sent - `/ready-to-transfer-p2p`. Poll it at least once a minute: a dropped
// trade socket can miss a send-trade event.
func (c *Client) ReadyToTransferP2P(ctx context.Context, steamAPI string) (*models.ReadyToTransferResponse, error) {
	params := url.Values{}
	params.Set("steam_api", steamAPI)

	var resp models.ReadyToTransferResponse
	if err := c.get(ctx, "ready-to-transfer-p2p", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CheckWssUser forces a p2p status check and re-enables sales for a user
// connected to the trade socket - `/check-wss-user`.
func (c *Client) CheckWssUser(ctx context.Context, steamID string) (*models.CheckWssUserResponse, error) {
	params := url.Values{}
	params.Set("steamid", steamID)

	var resp models.CheckWssUserResponse
	if err := c.get(ctx, "check-wss-user", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EditItems reprices listed items; price 0 removes the item - `/edit-items`.
func (c *Client) EditItems(ctx context.Context, items []models.EditItem, game models.Game) (*models.EditItemsResponse, error) {
	params := url.Values{}
	params.Set("game", string(orDefault(game, models.GameCSGO)))

	var resp models.EditItemsResponse
	if err := c.post(ctx, "edit-items", params, map[string]any{"items": items}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchInventory refreshes the steam inventory on the marketplace - `/fetch-my-inventory`.
func (c *Client) FetchInventory(ctx context.Context, game models.Game) (*models.FetchInventoryResponse, error) {
	params := url.Values{}
	params.Set("game", string(orDefault(game, models.GameCSGO)))

	var resp models.FetchInventoryResponse
	if err := c.get(ctx, "fetch-my-inventory", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListItemsSteam lists inventory items for sale - `/list-items-steam` POST.
func (c *Client) ListItemsSteam(ctx context.Context, items []models.ListItem, game models.Game) (*models.ListItemsResponse, error) {
	params := url.Values{}
	params.Set("game", string(orDefault(game, models.GameCSGO)))

	var resp models.ListItemsResponse
	if err := c.post(ctx, "list-items-steam", params, map[string]any{"items": items}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MyListedItems returns the items currently on sale - `/list-items-steam` GET.
func (c *Client) MyListedItems(ctx context.Context, game models.Game) (*models.MyListedItemsResponse, error) {
	params := url.Values{}
	params.Set("game", string(orDefault(game, models.GameCSGO)))

	var resp models.MyListedItemsResponse
	if err := c.get(ctx, "list-items-steam", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveItems takes items off sale - `/remove-items`.
func (c *Client) RemoveItems(ctx context.Context, ids ...models.ItemID) (*models.RemoveItemsResponse, error) {
	params := url.Values{}
	for _, id := range ids {
		params.Add("id", id.String())
	}

	var resp models.RemoveItemsResponse
	if err := c.get(ctx, "remove-items", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveAll takes every item off sale, optionally for one game - `/remove-all`.
func (c *Client) RemoveAll(ctx context.Context, game models.Game) (*models.RemoveAllResponse, error) {
	params := url.Values{}
	setString(params, "game", string(game))

	var resp models.RemoveAllResponse
	if err := c.get(ctx, "remove-all", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
