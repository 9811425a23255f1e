package rest

import (
	"context"
	"net/url"
	"strconv"

	"waxbot/internal/models"
)

// MerchantHistory returns recent purchases filtered by trade link parts - `/history`.
func (c *Client) MerchantHistory(ctx context.Context, partner, token string, skip int) (*models.PurchasesResponse, error) {
	params := url.Values{}
	setString(params, "partner", partner)
	setString(params, "token", token)
	setInt(params, "skip", int64(skip))

	var resp models.PurchasesResponse
	if err := c.get(ctx, "history", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetMerchantUser checks whether a user is known to the merchant - `/merchant/user` GET.
func (c *Client) GetMerchantUser(ctx context.Context, steamID, merchant string) (*models.MerchantUserResponse, error) {
	params := url.Values{}
	params.Set("steam_id", steamID)
	params.Set("merchant", merchant)

	var resp models.MerchantUserResponse
	if err := c.get(ctx, "merchant/user", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PostMerchantUser registers a user with the merchant - `/merchant/user` POST.
func (c *Client) PostMerchantUser(ctx context.Context, merchant, tradeLink, steamID string) (*models.MerchantUserResponse, error) {
	params := url.Values{}
	params.Set("merchant", merchant)
	body := map[string]string{
		"tradelink": tradeLink,
		"steam_id":  steamID,
	}

	var resp models.MerchantUserResponse
	if err := c.post(ctx, "merchant/user", params, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MerchantInventoryUpdate fetches the user's inventory into the marketplace;
// call it before MerchantInventory - `/merchant/inventory` POST.
func (c *Client) MerchantInventoryUpdate(ctx context.Context, steamID, merchant string) (*models.MerchantInventoryUpdateResponse, error) {
	params := url.Values{}
	params.Set("steam_id", steamID)
	params.Set("merchant", merchant)

	var resp models.MerchantInventoryUpdateResponse
	if err := c.post(ctx, "merchant/inventory", params, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MerchantInventory returns the items the user can deposit - `/merchant/inventory` GET.
func (c *Client) MerchantInventory(ctx context.Context, steamID, merchant string, appID, skip int) (*models.MerchantInventoryResponse, error) {
	if appID == 0 {
		appID = models.GameCSGO.AppID()
	}
	params := url.Values{}
	params.Set("steam_id", steamID)
	params.Set("merchant", merchant)
	params.Set("game", strconv.Itoa(appID))
	params.Set("skip", strconv.Itoa(skip))

	var resp models.MerchantInventoryResponse
	if err := c.get(ctx, "merchant/inventory", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MerchantListItemsSteam deposits items on behalf of a user; instant items
// are repriced during processing - `/merchant/list-items-steam`.
func (c *Client) MerchantListItemsSteam(ctx context.Context, merchant, steamID string, items []models.MerchantListItem) (*models.MerchantListItemsResponse, error) {
	params := url.Values{}
	params.Set("merchant", merchant)
	params.Set("steam_id", steamID)

	var resp models.MerchantListItemsResponse
	if err := c.post(ctx, "merchant/list-items-steam", params, map[string]any{"items": items}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MerchantDepositsHistory returns deposits, optionally filtered by user or
// transaction - `/merchant/deposits`.
func (c *Client) MerchantDepositsHistory(ctx context.Context, merchant, steamID, txID string) (*models.MerchantDepositsResponse, error) {
	params := url.Values{}
	params.Set("merchant", merchant)
	setString(params, "steam_id", steamID)
	setString(params, "tx_id", txID)

	var resp models.MerchantDepositsResponse
	if err := c.post(ctx, "merchant/deposits", params, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
