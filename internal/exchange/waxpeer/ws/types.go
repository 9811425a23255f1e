package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"waxbot/internal/exchange"

	"github.com/gorilla/websocket"
)

type State = exchange.ConnState

const (
	StateConnecting = exchange.StateConnecting
	StateOpen       = exchange.StateOpen
	StateClosed     = exchange.StateClosed
)

const (
	DefaultTradeURL = "wss://wssex.waxpeer.com"
	DefaultSiteURL  = "wss://waxpeer.com/socket.io/?EIO=4&transport=websocket"

	DefaultHeartbeatInterval = 25 * time.Second
	DefaultReconnectUnit     = time.Second

	// Source and Version identify this client in the trade auth frame.
	Source  = "waxbot"
	Version = "1.0.0"

	readLimit    = 2 << 20
	writeTimeout = 10 * time.Second
	inboxSize    = 64
)

type Options struct {
	// URL overrides the channel endpoint.
	URL               string
	HeartbeatInterval time.Duration
	// ReconnectUnit is multiplied by the retry counter to get the delay
	// before the next attempt.
	ReconnectUnit time.Duration
	// ResetBackoffOnOpen zeroes the retry counter once a connection opens.
	// By default the counter only grows for the life of the client.
	ResetBackoffOnOpen bool
	Dialer             *websocket.Dialer
}

func (o Options) withDefaults(url string) Options {
	if o.URL == "" {
		o.URL = url
	}
	if o.HeartbeatInterval <= 0 {
		o.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if o.ReconnectUnit <= 0 {
		o.ReconnectUnit = DefaultReconnectUnit
	}
	if o.Dialer == nil {
		o.Dialer = &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: 15 * time.Second,
		}
	}
	return o
}

type TradeCredentials struct {
	APIKey   string
	SteamID  string
	TradeURL string
}

type SiteCredentials struct {
	APIKey string
	// Events are wire names, e.g. "remove" rather than "remove_item". Empty
	// means no subscriptions.
	Events []string
}

// frame is the trade channel envelope in both directions.
type frame struct {
	Name string          `json:"name"`
	Data json.RawMessage `json:"data,omitempty"`
}

type authFrame struct {
	Name     string `json:"name"`
	SteamID  string `json:"steamid"`
	APIKey   string `json:"apiKey"`
	TradeURL string `json:"tradeurl"`
	Source   string `json:"source"`
	Version  string `json:"version"`
}

// decoded is what a protocol makes of one inbound frame.
type decoded[K ~string] struct {
	event *exchange.Event[K]
	// reply frames are written before anything else is done with the frame.
	reply [][]byte
	// ready marks the connection usable for channels that do not open on
	// the transport handshake alone.
	ready bool
	// readTimeout, when set, bounds the silence allowed between inbound
	// frames for the rest of the attempt.
	readTimeout time.Duration
	// err closes the connection.
	err       error
	malformed bool
}

// protocol is the per-channel part of a push connection.
type protocol[K ~string] interface {
	name() string
	header() http.Header
	canReconnect() bool
	openOnConnect() bool
	greeting() ([][]byte, error)
	heartbeatFrame() []byte
	decode(data []byte) decoded[K]
}
