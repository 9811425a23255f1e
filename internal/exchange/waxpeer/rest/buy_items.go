package rest

import (
	"context"
	"net/url"
	"strconv"

	"waxbot/internal/models"
)

type BuyByNameParams struct {
	Name      string
	Price     models.Price
	Token     string
	Partner   string
	ProjectID string
	Game      models.Game
}

// BuyItemWithName buys the cheapest listing of a market hash name and sends
// it to the given trade link - `/buy-one-p2p-name`. Pass ProjectID to be able
// to look the trade up with CustomTradeRequest after a timeout.
func (c *Client) BuyItemWithName(ctx context.Context, p BuyByNameParams) (*models.BuyResponse, error) {
	params := url.Values{}
	params.Set("name", p.Name)
	params.Set("price", strconv.FormatInt(int64(p.Price), 10))
	params.Set("token", p.Token)
	params.Set("partner", p.Partner)
	setString(params, "project_id", p.ProjectID)
	params.Set("game", string(orDefault(p.Game, models.GameCSGO)))

	var resp models.BuyResponse
	if err := c.get(ctx, "buy-one-p2p-name", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type BuyByIDParams struct {
	ItemID    models.ItemID
	Price     models.Price
	Token     string
	Partner   string
	ProjectID string
}

// BuyItemWithID buys a specific listing - `/buy-one-p2p`.
func (c *Client) BuyItemWithID(ctx context.Context, p BuyByIDParams) (*models.BuyResponse, error) {
	params := url.Values{}
	params.Set("item_id", p.ItemID.String())
	params.Set("price", strconv.FormatInt(int64(p.Price), 10))
	params.Set("token", p.Token)
	params.Set("partner", p.Partner)
	setString(params, "project_id", p.ProjectID)

	var resp models.BuyResponse
	if err := c.get(ctx, "buy-one-p2p", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type PricesParams struct {
	Game         models.Game
	MinPrice     models.Price
	MaxPrice     models.Price
	Search       string
	Full         bool
	HighestOffer int
	Single       bool
}

// GetPrices returns every unique item with its min price and count - `/prices`.
// Limited locally to 60 calls per minute.
func (c *Client) GetPrices(ctx context.Context, p PricesParams) (*models.PricesResponse, error) {
	if !c.pricesLimiter.Allow() {
		return nil, ErrRateLimited
	}

	params := url.Values{}
	params.Set("game", string(orDefault(p.Game, models.GameCSGO)))
	setInt(params, "min_price", int64(p.MinPrice))
	setInt(params, "max_price", int64(p.MaxPrice))
	setString(params, "search", p.Search)
	setFlag(params, "minified", !p.Full)
	params.Set("highest_offer", strconv.Itoa(p.HighestOffer))
	setFlag(params, "single", p.Single)

	var resp models.PricesResponse
	if err := c.get(ctx, "prices", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type DopplerPricesParams struct {
	Phases    []string
	Exteriors []string
	Weapons   []string
	Full      bool
	MinPrice  models.Price
	MaxPrice  models.Price
	Search    string
	Single    bool
}

// GetPricesDopplers returns doppler listings by phase - `/prices/dopplers`.
// Limited locally to 60 calls per minute.
func (c *Client) GetPricesDopplers(ctx context.Context, p DopplerPricesParams) (*models.DopplerPricesResponse, error) {
	if !c.dopplersLimiter.Allow() {
		return nil, ErrRateLimited
	}

	params := url.Values{}
	if len(p.Phases) == 0 {
		params.Set("phase", "any")
	}
	addAll(params, "phase", p.Phases)
	addAll(params, "exterior", p.Exteriors)
	addAll(params, "weapon", p.Weapons)
	setFlag(params, "minified", !p.Full)
	setInt(params, "min_price", int64(p.MinPrice))
	setInt(params, "max_price", int64(p.MaxPrice))
	setString(params, "search", p.Search)
	setFlag(params, "single", p.Single)

	var resp models.DopplerPricesResponse
	if err := c.get(ctx, "prices/dopplers", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MassInfo fetches listings, orders and history for up to 50 names - `/mass-info`.
func (c *Client) MassInfo(ctx context.Context, names []string, game models.Game) (*models.MassInfoResponse, error) {
	params := url.Values{}
	params.Set("game", string(orDefault(game, models.GameCSGO)))
	body := map[string]any{
		"name": names,
		"sell": 1,
	}

	var resp models.MassInfoResponse
	if err := c.post(ctx, "mass-info", params, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchItems searches listings by exact names - `/search-items-by-name`.
func (c *Client) SearchItems(ctx context.Context, game models.Game, names ...string) (*models.SearchItemsResponse, error) {
	params := url.Values{}
	params.Set("game", string(orDefault(game, models.GameCSGO)))
	addAll(params, "names", names)

	var resp models.SearchItemsResponse
	if err := c.get(ctx, "search-items-by-name", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CustomTradeRequest looks trades up by the project_id given at purchase
// time - `/check-many-project-id`. A true Success with a non-empty Msg
// means the lookup should be retried.
func (c *Client) CustomTradeRequest(ctx context.Context, projectIDs ...string) (*models.TradesStatusResponse, error) {
	params := url.Values{}
	addAll(params, "id", projectIDs)

	var resp models.TradesStatusResponse
	if err := c.get(ctx, "check-many-project-id", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TradeRequestStatus looks trades up by the id returned from a purchase - `/check-many-steam`.
func (c *Client) TradeRequestStatus(ctx context.Context, ids ...string) (*models.TradesStatusResponse, error) {
	params := url.Values{}
	addAll(params, "id", ids)

	var resp models.TradesStatusResponse
	if err := c.get(ctx, "check-many-steam", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CheckItemAvailability reports whether up to 100 items are still on sale - `/check-availability`.
func (c *Client) CheckItemAvailability(ctx context.Context, itemIDs ...models.ItemID) (*models.AvailabilityResponse, error) {
	params := url.Values{}
	for _, id := range itemIDs {
		params.Add("item_id", id.String())
	}

	var resp models.AvailabilityResponse
	if err := c.get(ctx, "check-availability", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ValidateTradeLink checks a buyer's trade link - `/check-tradelink`.
func (c *Client) ValidateTradeLink(ctx context.Context, tradeLink string) (*models.TradeLinkResponse, error) {
	var resp models.TradeLinkResponse
	if err := c.post(ctx, "check-tradelink", nil, map[string]string{"tradelink": tradeLink}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MyPurchases returns recent purchases, 50 per page - `/history`.
func (c *Client) MyPurchases(ctx context.Context, skip int, partner, token string) (*models.PurchasesResponse, error) {
	params := url.Values{}
	params.Set("skip", strconv.Itoa(skip))
	setString(params, "partner", partner)
	setString(params, "token", token)

	var resp models.PurchasesResponse
	if err := c.get(ctx, "history", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
