package ws

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Engine.IO v4 packet types.
const (
	eioOpen    = '0'
	eioClose   = '1'
	eioPing    = '2'
	eioPong    = '3'
	eioMessage = '4'
	eioUpgrade = '5'
	eioNoop    = '6'
)

// Socket.IO v5 packet types, carried inside an Engine.IO message.
const (
	sioConnect      = '0'
	sioDisconnect   = '1'
	sioEvent        = '2'
	sioAck          = '3'
	sioConnectError = '4'
)

var (
	errEngineClosed = errors.New("Сервер закрыл Engine.IO сессию")
	errNamespaceOut = errors.New("Сервер отключил namespace")
)

// connectNamespace joins the default namespace.
var connectNamespace = []byte{eioMessage, sioConnect}

type sioPacket struct {
	typ     byte
	payload []byte
}

type engineFrame struct {
	typ byte
	// pong reply for a ping, nil otherwise
	reply []byte
	sio   *sioPacket
	// session parameters from an open packet
	open *engineOpen
}

// engineOpen is the handshake payload; intervals are in milliseconds.
type engineOpen struct {
	SID          string `json:"sid"`
	PingInterval int64  `json:"pingInterval"`
	PingTimeout  int64  `json:"pingTimeout"`
}

// readTimeout is how long the server may stay silent before the session is
// considered dead. Zero when the server did not announce its ping cadence.
func (o engineOpen) readTimeout() time.Duration {
	if o.PingInterval <= 0 {
		return 0
	}
	return time.Duration(o.PingInterval+o.PingTimeout) * time.Millisecond
}

func parseEngineFrame(data []byte) (engineFrame, error) {
	if len(data) == 0 {
		return engineFrame{}, errors.New("пустой пакет")
	}

	f := engineFrame{typ: data[0]}
	switch f.typ {
	case eioOpen:
		var open engineOpen
		if len(data) > 1 {
			if err := json.Unmarshal(data[1:], &open); err != nil {
				return engineFrame{}, fmt.Errorf("некорректный open пакет: %w", err)
			}
		}
		f.open = &open
	case eioClose, eioPong, eioUpgrade, eioNoop:
	case eioPing:
		f.reply = append([]byte{eioPong}, data[1:]...)
	case eioMessage:
		pkt, err := parseSocketPacket(data[1:])
		if err != nil {
			return engineFrame{}, err
		}
		f.sio = &pkt
	default:
		return engineFrame{}, fmt.Errorf("неизвестный тип пакета %q", f.typ)
	}
	return f, nil
}

// parseSocketPacket strips the namespace and ack id, leaving the JSON payload.
func parseSocketPacket(data []byte) (sioPacket, error) {
	if len(data) == 0 {
		return sioPacket{}, errors.New("пустой Socket.IO пакет")
	}

	pkt := sioPacket{typ: data[0]}
	rest := data[1:]

	if len(rest) > 0 && rest[0] == '/' {
		idx := bytes.IndexByte(rest, ',')
		if idx < 0 {
			rest = nil
		} else {
			rest = rest[idx+1:]
		}
	}
	for len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9' {
		rest = rest[1:]
	}

	pkt.payload = rest
	return pkt, nil
}

// eventArgs splits a Socket.IO EVENT payload into its name and first argument.
func eventArgs(payload []byte) (string, json.RawMessage, error) {
	var args []json.RawMessage
	if err := json.Unmarshal(payload, &args); err != nil {
		return "", nil, err
	}
	if len(args) == 0 {
		return "", nil, errors.New("событие без имени")
	}

	var name string
	if err := json.Unmarshal(args[0], &name); err != nil {
		return "", nil, err
	}
	if len(args) > 1 {
		return name, args[1], nil
	}
	return name, nil, nil
}

func encodeEvent(name string, data any) ([]byte, error) {
	payload, err := json.Marshal([]any{name, data})
	if err != nil {
		return nil, err
	}
	return append([]byte{eioMessage, sioEvent}, payload...), nil
}

func connectErrorMessage(payload []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err != nil || body.Message == "" {
		return string(payload)
	}
	return body.Message
}
