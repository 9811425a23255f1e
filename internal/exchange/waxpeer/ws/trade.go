package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"waxbot/internal/exchange"
)

var errNoTradeCredentials = errors.New("Не заданы steamid и apiKey для торгового WS")

var pingFrame = []byte(`{"name":"ping"}`)

var tradeEvents = map[string]exchange.TradeEventKind{
	"send-trade":      exchange.EventSendTrade,
	"cancelTrade":     exchange.EventCancelTrade,
	"accept_withdraw": exchange.EventAcceptWithdraw,
}

type tradeProtocol struct {
	creds TradeCredentials
}

func (tradeProtocol) name() string { return "trade_ws" }

func (tradeProtocol) header() http.Header { return nil }

func (p tradeProtocol) canReconnect() bool {
	return p.creds.APIKey != "" && p.creds.SteamID != ""
}

func (tradeProtocol) openOnConnect() bool { return true }

func (p tradeProtocol) greeting() ([][]byte, error) {
	if !p.canReconnect() {
		return nil, errNoTradeCredentials
	}
	auth, err := json.Marshal(authFrame{
		Name:     "auth",
		SteamID:  p.creds.SteamID,
		APIKey:   p.creds.APIKey,
		TradeURL: p.creds.TradeURL,
		Source:   Source,
		Version:  Version,
	})
	if err != nil {
		return nil, err
	}
	return [][]byte{auth}, nil
}

func (tradeProtocol) heartbeatFrame() []byte { return pingFrame }

func (tradeProtocol) decode(data []byte) decoded[exchange.TradeEventKind] {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil || f.Name == "" {
		return decoded[exchange.TradeEventKind]{malformed: true}
	}
	if f.Name == "pong" {
		return decoded[exchange.TradeEventKind]{}
	}

	kind, ok := tradeEvents[f.Name]
	if !ok {
		return decoded[exchange.TradeEventKind]{}
	}
	return decoded[exchange.TradeEventKind]{
		event: &exchange.TradeEvent{Kind: kind, Data: f.Data, ReceivedAt: time.Now()},
	}
}
