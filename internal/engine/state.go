package engine

import (
	"time"

	"waxbot/internal/models"
)

type TradeSource string

const (
	SourcePush TradeSource = "push"
	SourcePoll TradeSource = "poll"
)

// PendingTrade is a sale the seller still has to send a steam offer for.
type PendingTrade struct {
	ID           string                `json:"id"`
	Source       TradeSource           `json:"source"`
	TradeLink    string                `json:"tradelink"`
	TradeMessage string                `json:"trade_message"`
	SendUntil    time.Time             `json:"send_until"`
	Items        []models.TransferItem `json:"items,omitempty"`
	SeenAt       time.Time             `json:"seen_at"`
}

type WatcherState struct {
	Pending map[string]PendingTrade `json:"pending"`
	// ProcessedIDs holds the ids of pending trades, so a repeated
	// send-trade is not reported twice. Finished trades are removed.
	ProcessedIDs map[string]bool `json:"processed_ids"`
	Canceled     int             `json:"canceled"`
	Withdrawn    int             `json:"withdrawn"`
	LastPollAt   time.Time       `json:"last_poll_at"`
	LastWssStep  int             `json:"last_wss_step"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// forget removes a finished trade from both the pending set and the dedupe set.
func (st *WatcherState) forget(id string) {
	delete(st.Pending, id)
	delete(st.ProcessedIDs, id)
}
