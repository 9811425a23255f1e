package ws

import (
	"fmt"
	"net/http"
	"time"

	"waxbot/internal/exchange"
)

// siteEvents maps wire names to domain kinds. The server calls removal
// "remove"; it is re-emitted as remove_item.
var siteEvents = map[string]exchange.SiteEventKind{
	"handshake":    exchange.EventHandshake,
	"add_item":     exchange.EventAddItem,
	"update_item":  exchange.EventUpdateItem,
	"updated_item": exchange.EventUpdatedItem,
	"remove":       exchange.EventRemoveItem,
	"change_user":  exchange.EventChangeUser,
}

type subscription struct {
	Name  string `json:"name"`
	Value bool   `json:"value"`
}

type siteProtocol struct {
	creds SiteCredentials
}

func (siteProtocol) name() string { return "site_ws" }

func (p siteProtocol) header() http.Header {
	h := http.Header{}
	if p.creds.APIKey != "" {
		h.Set("Authorization", p.creds.APIKey)
	}
	return h
}

func (p siteProtocol) canReconnect() bool { return p.creds.APIKey != "" }

// The site channel is usable only after the namespace connect is acknowledged.
func (siteProtocol) openOnConnect() bool { return false }

func (p siteProtocol) greeting() ([][]byte, error) {
	frames := make([][]byte, 0, len(p.creds.Events))
	for _, name := range p.creds.Events {
		f, err := encodeEvent("event", subscription{Name: name, Value: true})
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// Engine.IO heartbeats are driven by the server.
func (siteProtocol) heartbeatFrame() []byte { return nil }

func (siteProtocol) decode(data []byte) decoded[exchange.SiteEventKind] {
	f, err := parseEngineFrame(data)
	if err != nil {
		return decoded[exchange.SiteEventKind]{malformed: true}
	}

	switch f.typ {
	case eioOpen:
		return decoded[exchange.SiteEventKind]{
			reply:       [][]byte{connectNamespace},
			readTimeout: f.open.readTimeout(),
		}
	case eioPing:
		return decoded[exchange.SiteEventKind]{reply: [][]byte{f.reply}}
	case eioClose:
		return decoded[exchange.SiteEventKind]{err: errEngineClosed}
	case eioMessage:
		return decodeSocketPacket(*f.sio)
	}
	return decoded[exchange.SiteEventKind]{}
}

func decodeSocketPacket(pkt sioPacket) decoded[exchange.SiteEventKind] {
	switch pkt.typ {
	case sioConnect:
		return decoded[exchange.SiteEventKind]{ready: true}
	case sioDisconnect:
		return decoded[exchange.SiteEventKind]{err: errNamespaceOut}
	case sioConnectError:
		return decoded[exchange.SiteEventKind]{
			err: fmt.Errorf("Ошибка подключения к site WS: %s", connectErrorMessage(pkt.payload)),
		}
	case sioEvent:
		name, data, err := eventArgs(pkt.payload)
		if err != nil {
			return decoded[exchange.SiteEventKind]{malformed: true}
		}
		kind, ok := siteEvents[name]
		if !ok {
			return decoded[exchange.SiteEventKind]{}
		}
		return decoded[exchange.SiteEventKind]{
			event: &exchange.SiteEvent{Kind: kind, Data: data, ReceivedAt: time.Now()},
		}
	}
	return decoded[exchange.SiteEventKind]{}
}
