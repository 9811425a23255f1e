package models

import (
	"encoding/json"
	"time"
)

// Status is the envelope shared by every REST response. Some failures come
// back with HTTP 200 and Success=false.
type Status struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg,omitempty"`
}

type SteamPrice struct {
	Average     Price  `json:"average"`
	RarityColor string `json:"rarity_color"`
	Rarity      string `json:"rarity"`
	Current     Price  `json:"current"`
	Name        string `json:"name"`
	LowestPrice Price  `json:"lowest_price"`
	Img         string `json:"img"`
}

// User

type User struct {
	Wallet     Price   `json:"wallet"`
	ID         string  `json:"id"`
	UserID     int64   `json:"userid"`
	ID64       string  `json:"id64"`
	Avatar     string  `json:"avatar"`
	Name       string  `json:"name"`
	SellFees   float64 `json:"sell_fees"`
	CanP2P     bool    `json:"can_p2p"`
	TradeLink  string  `json:"tradelink"`
	Login      string  `json:"login"`
	Ref        string  `json:"ref"`
	SellStatus bool    `json:"sell_status"`
}

type UserResponse struct {
	Status
	User User `json:"user"`
}

type HistoryTrade struct {
	Date       time.Time `json:"date"`
	Created    time.Time `json:"created"`
	ID         int64     `json:"id"`
	ItemID     ItemID    `json:"item_id"`
	GiveAmount Price     `json:"give_amount"`
	Image      string    `json:"image"`
	Price      Price     `json:"price"`
	Game       Game      `json:"game"`
	Name       string    `json:"name"`
	Status     int       `json:"status"`
	Average    Price     `json:"average"`
	Action     string    `json:"action"`
}

type HistoryTransaction struct {
	Wallet     string    `json:"wallet"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	Amount     Price     `json:"amount"`
	GiveAmount Price     `json:"give_amount"`
	Direction  string    `json:"direction"`
	Date       time.Time `json:"date"`
}

type MyHistoryResponse struct {
	Status
	Data struct {
		Trades       []HistoryTrade       `json:"trades"`
		Transactions []HistoryTransaction `json:"transactions"`
	} `json:"data"`
}

type TradeLinkResponse struct {
	Status
	Link      string `json:"link"`
	Info      string `json:"info"`
	Token     string `json:"token"`
	SteamID32 int64  `json:"steamid32"`
	SteamID64 int64  `json:"steamid64"`
}

// Steam catalog

type ListedMarketItem struct {
	Name       string  `json:"name"`
	Price      Price   `json:"price"`
	Float      float64 `json:"float"`
	BestDeals  Price   `json:"best_deals"`
	Discount   float64 `json:"discount"`
	SteamPrice Price   `json:"steam_price"`
	Image      string  `json:"image"`
	ItemID     ItemID  `json:"item_id"`
	Brand      string  `json:"brand"`
	Type       string  `json:"type"`
}

type ItemsListResponse struct {
	Status
	Items []ListedMarketItem `json:"items"`
	Count int                `json:"count"`
}

type SteamItem struct {
	Name       string `json:"name"`
	Average    Price  `json:"average"`
	GameID     int    `json:"game_id"`
	Type       string `json:"type"`
	Collection string `json:"collection"`
	RuName     string `json:"ru_name"`
}

type SteamItemsResponse struct {
	Status
	Items []SteamItem `json:"items"`
}

// Buying

type BuyResponse struct {
	Status
	ID int64 `json:"id"`
}

type PriceItem struct {
	Name        string `json:"name"`
	Count       int    `json:"count"`
	Min         Price  `json:"min"`
	Img         string `json:"img"`
	SteamPrice  Price  `json:"steam_price"`
	RarityColor string `json:"rarity_color"`
	Type        string `json:"type"`
}

type PricesResponse struct {
	Status
	Items []PriceItem `json:"items"`
}

type DopplerItem struct {
	Name       string  `json:"name"`
	ItemID     ItemID  `json:"item_id"`
	Price      Price   `json:"price"`
	Phase      string  `json:"phase"`
	SteamPrice Price   `json:"steam_price"`
	Img        string  `json:"img"`
	Weapon     string  `json:"weapon"`
	PaintIndex int     `json:"paint_index"`
	Float      float64 `json:"float"`
}

type DopplerPricesResponse struct {
	Status
	Items []DopplerItem `json:"items"`
}

type Listing struct {
	Price      Price  `json:"price"`
	By         string `json:"by"`
	ItemID     ItemID `json:"item_id"`
	Name       string `json:"name"`
	PaintIndex int    `json:"paint_index"`
	SteamPrice Price  `json:"steam_price"`
	ClassID    string `json:"classid"`
	Image      string `json:"image"`
	Phase      string `json:"phase,omitempty"`
}

type MassInfoEntry struct {
	Listings [][]Listing      `json:"listings"`
	Orders   []json.RawMessage `json:"orders"`
	History  []json.RawMessage `json:"history"`
	Info     json.RawMessage   `json:"info"`
}

type MassInfoResponse struct {
	Status
	Data map[string]MassInfoEntry `json:"data"`
}

type SearchItem struct {
	Name   string `json:"name"`
	Price  Price  `json:"price"`
	Image  string `json:"image"`
	ItemID ItemID `json:"item_id"`
	Phase  string `json:"phase,omitempty"`
}

type SearchItemsResponse struct {
	Status
	Items []SearchItem `json:"items"`
}

type TradeState struct {
	ID                int64       `json:"id"`
	Price             Price       `json:"price"`
	Name              string      `json:"name"`
	Status            TradeStatus `json:"status"`
	ProjectID         string      `json:"project_id"`
	CustomID          string      `json:"custom_id"`
	TradeID           string      `json:"trade_id"`
	Done              bool        `json:"done"`
	ForSteamID64      string      `json:"for_steamid64"`
	Reason            string      `json:"reason"`
	SellerName        string      `json:"seller_name"`
	SellerAvatar      string      `json:"seller_avatar"`
	SellerSteamJoined int64       `json:"seller_steam_joined"`
	SellerSteamLevel  int         `json:"seller_steam_level"`
	SendUntil         int64       `json:"send_until"`
	LastUpdated       int64       `json:"last_updated"`
	Counter           int         `json:"counter"`
}

type TradesStatusResponse struct {
	Status
	Trades []TradeState `json:"trades"`
}

type AvailableItem struct {
	ItemID  ItemID `json:"item_id"`
	Selling bool   `json:"selling"`
	Price   Price  `json:"price"`
	Name    string `json:"name"`
	Image   string `json:"image"`
}

type AvailabilityResponse struct {
	Status
	Items []AvailableItem `json:"items"`
}

type Purchase struct {
	ItemID    ItemID      `json:"item_id"`
	TradeID   int64       `json:"trade_id"`
	Token     string      `json:"token"`
	Partner   int64       `json:"partner"`
	Created   time.Time   `json:"created"`
	SendUntil time.Time   `json:"send_until"`
	Reason    string      `json:"reason"`
	ID        int64       `json:"id"`
	Image     string      `json:"image"`
	Price     Price       `json:"price"`
	Name      string      `json:"name"`
	Status    TradeStatus `json:"status"`
}

type PurchasesResponse struct {
	Status
	History []Purchase `json:"history"`
}

// Buy orders

type BuyOrderTrigger struct {
	ID          int64     `json:"id"`
	ItemName    string    `json:"item_name"`
	Game        Game      `json:"game"`
	Price       Price     `json:"price"`
	Created     time.Time `json:"created"`
	LastUpdated time.Time `json:"last_updated"`
}

type BuyOrderHistoryResponse struct {
	Status
	History []BuyOrderTrigger `json:"history"`
	Count   int               `json:"count"`
}

type BuyOrder struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Price  Price  `json:"price"`
	Amount int    `json:"amount"`
	Game   Game   `json:"game"`
	Filled int    `json:"filled"`
	By     string `json:"by"`
}

type BuyOrdersResponse struct {
	Status
	Offers []BuyOrder `json:"offers"`
	Count  int        `json:"count"`
}

type CreateBuyOrderResponse struct {
	Status
	Filled int   `json:"filled"`
	ID     int64 `json:"id"`
}

type EditBuyOrderResponse struct {
	Status
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
	Price  Price `json:"price"`
}

type RemovedResponse struct {
	Status
	Removed int `json:"removed"`
}

// Selling

type InventoryItem struct {
	ItemID     ItemID     `json:"item_id"`
	Type       string     `json:"type"`
	IconURL    string     `json:"icon_url"`
	Name       string     `json:"name"`
	SteamPrice SteamPrice `json:"steam_price"`
}

type InventoryResponse struct {
	Status
	Items []InventoryItem `json:"items"`
	Count int             `json:"count"`
}

type TradeParty struct {
	ID     string `json:"id"`
	Avatar string `json:"avatar"`
}

type TransferItem struct {
	ID         int64  `json:"id"`
	ItemID     ItemID `json:"item_id"`
	GiveAmount Price  `json:"give_amount"`
	Merchant   string `json:"merchant"`
	Image      string `json:"image"`
	Price      Price  `json:"price"`
	Game       Game   `json:"game"`
	Name       string `json:"name"`
	Status     int    `json:"status"`
}

// TransferTrade is a sale waiting for the seller to send a steam offer.
type TransferTrade struct {
	ID           int64          `json:"id"`
	CostumID     string         `json:"costum_id"`
	TradeID      string         `json:"trade_id"`
	TradeLink    string         `json:"tradelink"`
	TradeMessage string         `json:"trade_message"`
	Done         bool           `json:"done"`
	Stage        int            `json:"stage"`
	Creator      string         `json:"creator"`
	SendUntil    time.Time      `json:"send_until"`
	LastUpdated  time.Time      `json:"last_updated"`
	ForSteamID64 string         `json:"for_steamid64"`
	User         TradeParty     `json:"user"`
	Seller       TradeParty     `json:"seller"`
	Items        []TransferItem `json:"items"`
}

type ReadyToTransferResponse struct {
	Status
	Trades []TransferTrade `json:"trades"`
}

type CheckWssUserResponse struct {
	Status
	Step int `json:"step"`
}

type EditItem struct {
	ItemID ItemID `json:"item_id"`
	Price  Price  `json:"price"`
}

type FailedItem struct {
	ItemID       ItemID `json:"item_id"`
	Price        Price  `json:"price"`
	Msg          string `json:"msg"`
	MsBeforeNext int64  `json:"msBeforeNext"`
}

type EditItemsResponse struct {
	Status
	Updated []EditItem   `json:"updated"`
	Failed  []FailedItem `json:"failed"`
	Removed int          `json:"removed"`
}

type FetchInventoryResponse struct {
	Status
	TotalInventoryCount int `json:"total_inventory_count"`
}

type ListItem struct {
	ItemID ItemID `json:"item_id"`
	Price  Price  `json:"price"`
	Name   string `json:"name,omitempty"`
}

type ListItemsResponse struct {
	Status
	Listed []ListItem   `json:"listed"`
	Failed []FailedItem `json:"failed"`
}

type MyListedItem struct {
	ItemID     ItemID     `json:"item_id"`
	Price      Price      `json:"price"`
	Date       time.Time  `json:"date"`
	Position   int        `json:"position"`
	Name       string     `json:"name"`
	MarketName string     `json:"market_name"`
	SteamPrice SteamPrice `json:"steam_price"`
}

type MyListedItemsResponse struct {
	Status
	Items []MyListedItem `json:"items"`
}

type RemoveItemsResponse struct {
	Status
	Count   int      `json:"count"`
	Removed []ItemID `json:"removed"`
}

type RemoveAllResponse struct {
	Status
	Count int `json:"count"`
}

// Merchant deposits

type MerchantUser struct {
	SteamID   string `json:"steam_id"`
	CanSell   bool   `json:"can_sell"`
	CanP2P    bool   `json:"can_p2p"`
	TradeLink string `json:"tradelink"`
}

type MerchantUserResponse struct {
	Status
	User MerchantUser `json:"user"`
}

type MerchantInventoryUpdateResponse struct {
	Status
	Count int `json:"count"`
}

type MerchantInventoryResponse struct {
	Status
	Items []InventoryItem `json:"items"`
	Count int             `json:"count"`
}

type MerchantListItem struct {
	ItemID  ItemID `json:"item_id"`
	Price   Price  `json:"price"`
	Instant bool   `json:"instant,omitempty"`
}

type MerchantListItemsResponse struct {
	Status
	Listed []ListItem `json:"listed"`
	TxID   string     `json:"tx_id"`
}

type DepositUser struct {
	Name        string `json:"name"`
	SteamID     string `json:"steam_id"`
	SteamJoined int64  `json:"steam_joined"`
}

type DepositItem struct {
	ItemID     ItemID `json:"item_id"`
	Price      Price  `json:"price"`
	GiveAmount Price  `json:"give_amount"`
	Name       string `json:"name"`
	Status     int    `json:"status"`
}

type Deposit struct {
	ID            string        `json:"id"`
	CostumID      string        `json:"costum_id"`
	TradeID       string        `json:"trade_id"`
	TradeLink     string        `json:"tradelink"`
	SteamIDSeller string        `json:"steamid_seller"`
	Created       time.Time     `json:"created"`
	SendUntil     time.Time     `json:"send_until"`
	LastUpdated   string        `json:"last_updated"`
	Reason        string        `json:"reason"`
	User          DepositUser   `json:"user"`
	Items         []DepositItem `json:"items"`
}

type MerchantDepositsResponse struct {
	Status
	Data []Deposit `json:"data"`
}
