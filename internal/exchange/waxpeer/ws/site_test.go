package ws

import (
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"waxbot/internal/exchange"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readText(conn *websocket.Conn) string {
	_ = conn.SetReadDeadline(time.Now().Add(waitFor))
	_, data, err := conn.ReadMessage()
	if err != nil {
		return ""
	}
	return string(data)
}

func TestSite_HandshakeSubscribeAndEvents(t *testing.T) {
	var (
		mu       sync.Mutex
		received []string
		auth     string
	)
	ts := newTestServer(t, func(conn *websocket.Conn, r *http.Request) {
		mu.Lock()
		auth = r.Header.Get("Authorization")
		mu.Unlock()

		_ = conn.WriteMessage(websocket.TextMessage, []byte(`0{"sid":"abc","pingInterval":25000,"pingTimeout":20000}`))
		connect := readText(conn)

		_ = conn.WriteMessage(websocket.TextMessage, []byte(`40{"sid":"def"}`))
		sub1 := readText(conn)
		sub2 := readText(conn)

		_ = conn.WriteMessage(websocket.TextMessage, []byte(`2`))
		pong := readText(conn)

		mu.Lock()
		received = append(received, connect, sub1, sub2, pong)
		mu.Unlock()

		for _, msg := range []string{
			`42["unknown",{}]`,
			`42["add_item",{"item_id":"1","name":"AK-47 | Redline"}]`,
			`42[`,
			`42["remove",{"item_id":"2"}]`,
		} {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(msg))
		}
		_ = conn.SetReadDeadline(time.Time{})
		drain(conn)
	})

	c := NewSite(SiteCredentials{APIKey: "key", Events: []string{"add_item", "remove"}}, Options{URL: ts.wsURL()}, nil)
	t.Cleanup(func() { _ = c.Close() })

	var evMu sync.Mutex
	var events []exchange.SiteEvent
	record := func(ev exchange.SiteEvent) {
		evMu.Lock()
		events = append(events, ev)
		evMu.Unlock()
	}
	c.On(exchange.EventAddItem, record)
	c.On(exchange.EventRemoveItem, record)

	require.Eventually(t, func() bool {
		evMu.Lock()
		defer evMu.Unlock()
		return len(events) == 2
	}, waitFor, tick)

	assert.True(t, c.IsOpen())
	assert.EqualValues(t, 1, c.DroppedFrames())

	evMu.Lock()
	assert.Equal(t, exchange.EventAddItem, events[0].Kind)
	assert.Equal(t, exchange.EventRemoveItem, events[1].Kind)
	assert.JSONEq(t, `{"item_id":"2"}`, string(events[1].Data))
	evMu.Unlock()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "key", auth)
	assert.Equal(t, []string{
		`40`,
		`42["event",{"name":"add_item","value":true}]`,
		`42["event",{"name":"remove","value":true}]`,
		`3`,
	}, received)
}

func TestSite_ConnectErrorReconnects(t *testing.T) {
	ts := newTestServer(t, func(conn *websocket.Conn, r *http.Request) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`0{"sid":"abc"}`))
		readText(conn)
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`44{"message":"unauthorized"}`))
		drain(conn)
	})

	var opened atomic.Bool
	c := NewSite(SiteCredentials{APIKey: "bad"}, Options{
		URL:           ts.wsURL(),
		ReconnectUnit: 10 * time.Millisecond,
	}, nil)
	t.Cleanup(func() { _ = c.Close() })
	c.OnState(func(s State) {
		if s == StateOpen {
			opened.Store(true)
		}
	})

	require.Eventually(t, func() bool { return ts.conns.Load() >= 2 }, waitFor, tick)
	assert.False(t, opened.Load())
	assert.GreaterOrEqual(t, c.Retries(), int64(1))
}

func TestSiteProtocol_Decode(t *testing.T) {
	p := siteProtocol{creds: SiteCredentials{APIKey: "key", Events: []string{"add_item", "remove"}}}

	tests := []struct {
		name      string
		frame     string
		kind      exchange.SiteEventKind
		data      string
		reply     string
		ready     bool
		err       bool
		malformed bool
	}{
		{name: "empty", frame: ``, malformed: true},
		{name: "unknown engine type", frame: `9`, malformed: true},
		{name: "open", frame: `0{"sid":"a"}`, reply: `40`},
		{name: "bad open", frame: `0{`, malformed: true},
		{name: "ping", frame: `2`, reply: `3`},
		{name: "ping probe", frame: `2probe`, reply: `3probe`},
		{name: "pong", frame: `3`},
		{name: "engine close", frame: `1`, err: true},
		{name: "namespace connect", frame: `40{"sid":"b"}`, ready: true},
		{name: "namespace disconnect", frame: `41`, err: true},
		{name: "connect error", frame: `44{"message":"nope"}`, err: true},
		{name: "event", frame: `42["update_item",{"item_id":"1"}]`, kind: exchange.EventUpdateItem, data: `{"item_id":"1"}`},
		{name: "event with namespace and ack", frame: `42/,17["updated_item",{"x":1}]`, kind: exchange.EventUpdatedItem, data: `{"x":1}`},
		{name: "remove renamed", frame: `42["remove",{"item_id":"2"}]`, kind: exchange.EventRemoveItem, data: `{"item_id":"2"}`},
		{name: "change user", frame: `42["change_user",{"wallet":1}]`, kind: exchange.EventChangeUser, data: `{"wallet":1}`},
		{name: "handshake", frame: `42["handshake",{}]`, kind: exchange.EventHandshake, data: `{}`},
		{name: "unknown event", frame: `42["new_event",{}]`},
		{name: "bad event payload", frame: `42{"a":1}`, malformed: true},
		{name: "empty event", frame: `42[]`, malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := p.decode([]byte(tt.frame))
			assert.Equal(t, tt.malformed, d.malformed)
			assert.Equal(t, tt.ready, d.ready)
			assert.Equal(t, tt.err, d.err != nil)
			if tt.reply != "" {
				require.Len(t, d.reply, 1)
				assert.Equal(t, tt.reply, string(d.reply[0]))
			} else {
				assert.Empty(t, d.reply)
			}
			if tt.kind == "" {
				assert.Nil(t, d.event)
				return
			}
			require.NotNil(t, d.event)
			assert.Equal(t, tt.kind, d.event.Kind)
			assert.JSONEq(t, tt.data, string(d.event.Data))
		})
	}
}

func TestSiteProtocol_Greeting(t *testing.T) {
	p := siteProtocol{creds: SiteCredentials{APIKey: "key", Events: []string{"add_item"}}}

	frames, err := p.greeting()
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, `42["event",{"name":"add_item","value":true}]`, string(frames[0]))

	assert.Equal(t, "key", p.header().Get("Authorization"))
	assert.True(t, p.canReconnect())
	assert.False(t, siteProtocol{}.canReconnect())
	assert.Nil(t, p.heartbeatFrame())
}

func TestSiteProtocol_OpenReadTimeout(t *testing.T) {
	p := siteProtocol{creds: SiteCredentials{APIKey: "key"}}

	d := p.decode([]byte(`0{"sid":"a","pingInterval":25000,"pingTimeout":20000}`))
	assert.Equal(t, 45*time.Second, d.readTimeout)

	d = p.decode([]byte(`0{"sid":"a"}`))
	assert.Zero(t, d.readTimeout)
}

func TestSite_SilentServerReconnects(t *testing.T) {
	ts := newTestServer(t, func(conn *websocket.Conn, r *http.Request) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`0{"sid":"abc","pingInterval":50,"pingTimeout":50}`))
		readText(conn)
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`40`))
		// no pings from here on, the socket stays up
		_ = conn.SetReadDeadline(time.Time{})
		drain(conn)
	})

	var opened, closed atomic.Int32
	c := NewSite(SiteCredentials{APIKey: "key"}, Options{
		URL:           ts.wsURL(),
		ReconnectUnit: 10 * time.Millisecond,
	}, nil)
	t.Cleanup(func() { _ = c.Close() })
	c.OnState(func(s State) {
		switch s {
		case StateOpen:
			opened.Add(1)
		case StateClosed:
			closed.Add(1)
		}
	})

	require.Eventually(t, func() bool { return ts.conns.Load() >= 2 }, waitFor, tick)
	assert.GreaterOrEqual(t, opened.Load(), int32(1))
	assert.GreaterOrEqual(t, closed.Load(), int32(1))
	assert.GreaterOrEqual(t, c.Retries(), int64(1))
}

func TestSite_NoEventsNoSubscriptions(t *testing.T) {
	frames := make(chan string, 8)
	ts := newTestServer(t, func(conn *websocket.Conn, r *http.Request) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`0{"sid":"abc"}`))
		frames <- readText(conn)
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`40`))
		_ = conn.SetReadDeadline(time.Time{})
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			select {
			case frames <- string(data):
			default:
			}
		}
	})

	c := NewSite(SiteCredentials{APIKey: "key"}, Options{URL: ts.wsURL()}, nil)
	t.Cleanup(func() { _ = c.Close() })

	require.Eventually(t, c.IsOpen, waitFor, tick)
	time.Sleep(100 * time.Millisecond)

	require.Len(t, frames, 1)
	assert.Equal(t, "40", <-frames)
	assert.EqualValues(t, 1, ts.conns.Load())

	greeting, err := siteProtocol{creds: SiteCredentials{APIKey: "key"}}.greeting()
	require.NoError(t, err)
	assert.Empty(t, greeting)
}
