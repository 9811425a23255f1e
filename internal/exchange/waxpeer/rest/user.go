package rest

import (
	"context"
	"net/url"
	"time"

	"waxbot/internal/models"
)

// GetProfile returns the account behind the api key - `/user`.
func (c *Client) GetProfile(ctx context.Context) (*models.UserResponse, error) {
	var resp models.UserResponse
	if err := c.get(ctx, "user", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type MyHistoryParams struct {
	Skip  int
	Start time.Time
	End   time.Time
	Sort  models.SortOrder
}

// MyHistory fetches trades and wallet transactions in one call, at most 100
// per page - `/my-history`.
func (c *Client) MyHistory(ctx context.Context, p MyHistoryParams) (*models.MyHistoryResponse, error) {
	sort := p.Sort
	if sort == "" {
		sort = models.SortDesc
	}
	body := map[string]any{
		"skip":  p.Skip,
		"start": p.Start.UTC().Format(time.RFC3339),
		"end":   p.End.UTC().Format(time.RFC3339),
		"sort":  sort,
	}

	var resp models.MyHistoryResponse
	if err := c.post(ctx, "my-history", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChangeTradeLink replaces the account's steam trade link - `/change-tradelink`.
func (c *Client) ChangeTradeLink(ctx context.Context, tradeLink string) (*models.TradeLinkResponse, error) {
	var resp models.TradeLinkResponse
	if err := c.post(ctx, "change-tradelink", nil, map[string]string{"tradelink": tradeLink}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetMyKeys links a steam web api key to the account - `/set-my-steamapi`.
func (c *Client) SetMyKeys(ctx context.Context, steamAPI string) (*models.Status, error) {
	params := url.Values{}
	params.Set("steam_api", steamAPI)

	var resp models.Status
	if err := c.get(ctx, "set-my-steamapi", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
