package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"waxbot/internal/models"
)

// TradeEventKind is the vocabulary of the trade push channel.
type TradeEventKind string

const (
	EventSendTrade      TradeEventKind = "send-trade"
	EventCancelTrade    TradeEventKind = "cancelTrade"
	EventAcceptWithdraw TradeEventKind = "accept_withdraw"
)

// SiteEventKind is the vocabulary of the site (catalog) push channel.
type SiteEventKind string

const (
	EventHandshake   SiteEventKind = "handshake"
	EventAddItem     SiteEventKind = "add_item"
	EventUpdateItem  SiteEventKind = "update_item"
	EventUpdatedItem SiteEventKind = "updated_item"
	EventRemoveItem  SiteEventKind = "remove_item"
	EventChangeUser  SiteEventKind = "change_user"
)

// Event is a domain event re-emitted from a push channel. Data is the
// server payload, forwarded verbatim.
type Event[K ~string] struct {
	Kind       K
	Data       json.RawMessage
	ReceivedAt time.Time
}

type (
	TradeEvent = Event[TradeEventKind]
	SiteEvent  = Event[SiteEventKind]
)

func (e Event[K]) Decode(v any) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("Пустые данные события %s", string(e.Kind))
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("Не удалось разобрать событие %s: %w", string(e.Kind), err)
	}
	return nil
}

// SendTrade is the payload of a send-trade event: the seller must create
// the steam offer described here before SendUntil.
type SendTrade struct {
	WaxID          string          `json:"waxid"`
	JSONTradeOffer json.RawMessage `json:"json_tradeoffer"`
	TradeLink      string          `json:"tradelink"`
	TradeMessage   string          `json:"trade_message"`
	Created        json.Number     `json:"created"`
	SendUntil      json.Number     `json:"send_until"`
}

// Client is the REST surface the trade watcher depends on.
type Client interface {
	GetProfile(ctx context.Context) (*models.UserResponse, error)
	ReadyToTransferP2P(ctx context.Context, steamAPI string) (*models.ReadyToTransferResponse, error)
	CheckWssUser(ctx context.Context, steamID string) (*models.CheckWssUserResponse, error)
}

// ConnState is the health of a push connection.
type ConnState int32

const (
	StateConnecting ConnState = iota
	StateOpen
	StateClosed
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// PushChannel is the part of a push connection the trade watcher uses.
type PushChannel[K ~string] interface {
	IsOpen() bool
	On(kind K, handler func(Event[K]))
	OnState(handler func(ConnState))
}
