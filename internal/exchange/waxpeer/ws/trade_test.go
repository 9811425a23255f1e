package ws

import (
	"encoding/json"
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

func TestTrade_AuthThenHeartbeat(t *testing.T) {
	frames := make(chan []byte, 8)
	ts := newTestServer(t, func(conn *websocket.Conn, r *http.Request) {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			select {
			case frames <- data:
			default:
			}
		}
	})

	newTestTrade(t, ts.wsURL(), Options{HeartbeatInterval: 20 * time.Millisecond})

	var auth authFrame
	select {
	case data := <-frames:
		require.NoError(t, json.Unmarshal(data, &auth))
	case <-time.After(waitFor):
		t.Fatal("auth frame not received")
	}
	assert.Equal(t, authFrame{
		Name:     "auth",
		SteamID:  testCreds.SteamID,
		APIKey:   testCreds.APIKey,
		TradeURL: testCreds.TradeURL,
		Source:   Source,
		Version:  Version,
	}, auth)

	for i := 0; i < 2; i++ {
		select {
		case data := <-frames:
			assert.JSONEq(t, `{"name":"ping"}`, string(data))
		case <-time.After(waitFor):
			t.Fatal("ping not received")
		}
	}
}

func TestTrade_MissingSteamIDClosesWithoutAuth(t *testing.T) {
	var gotFrame atomic.Bool
	ts := newTestServer(t, func(conn *websocket.Conn, r *http.Request) {
		for {
			mt, _, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if mt == websocket.TextMessage {
				gotFrame.Store(true)
			}
		}
	})

	c := NewTrade(TradeCredentials{APIKey: "key"}, Options{
		URL:           ts.wsURL(),
		ReconnectUnit: 10 * time.Millisecond,
	}, nil)
	t.Cleanup(func() { _ = c.Close() })

	require.Eventually(t, func() bool { return c.State() == StateClosed }, waitFor, tick)
	time.Sleep(100 * time.Millisecond)

	assert.False(t, gotFrame.Load())
	assert.EqualValues(t, 1, ts.conns.Load())
	assert.EqualValues(t, 1, c.Retries())
	assert.Equal(t, StateClosed, c.State())
}

func TestTrade_Dispatch(t *testing.T) {
	ts := newTestServer(t, func(conn *websocket.Conn, r *http.Request) {
		_, _, _ = conn.ReadMessage()
		for _, msg := range []string{
			`{"name":"pong"}`,
			`{"name":"something-new","data":{}}`,
			`{"name":"send-trade","data":{"id":1}}`,
			`not json`,
			`{"name":"accept_withdraw","data":{"id":3}}`,
			`{"name":"cancelTrade","data":{"id":2}}`,
		} {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		}
		drain(conn)
	})

	var mu sync.Mutex
	var got []exchange.TradeEvent
	record := func(ev exchange.TradeEvent) {
		mu.Lock()
		got = append(got, ev)
		mu.Unlock()
	}

	done := make(chan struct{})
	c := newTestTrade(t, ts.wsURL(), Options{})
	c.On(exchange.EventSendTrade, record)
	c.On(exchange.EventAcceptWithdraw, record)
	c.On(exchange.EventCancelTrade, func(ev exchange.TradeEvent) {
		record(ev)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("cancelTrade not dispatched")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 3)
	assert.Equal(t, exchange.EventSendTrade, got[0].Kind)
	assert.JSONEq(t, `{"id":1}`, string(got[0].Data))
	assert.Equal(t, exchange.EventAcceptWithdraw, got[1].Kind)
	assert.Equal(t, exchange.EventCancelTrade, got[2].Kind)
	assert.EqualValues(t, 1, c.DroppedFrames())
}

func TestTradeProtocol_Decode(t *testing.T) {
	p := tradeProtocol{creds: testCreds}

	tests := []struct {
		name      string
		frame     string
		kind      exchange.TradeEventKind
		malformed bool
	}{
		{name: "pong", frame: `{"name":"pong"}`},
		{name: "unknown", frame: `{"name":"new-thing","data":1}`},
		{name: "send trade", frame: `{"name":"send-trade","data":{"id":1}}`, kind: exchange.EventSendTrade},
		{name: "cancel", frame: `{"name":"cancelTrade","data":{"id":1}}`, kind: exchange.EventCancelTrade},
		{name: "withdraw", frame: `{"name":"accept_withdraw"}`, kind: exchange.EventAcceptWithdraw},
		{name: "garbage", frame: `{{`, malformed: true},
		{name: "no name", frame: `{"data":1}`, malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := p.decode([]byte(tt.frame))
			assert.Equal(t, tt.malformed, d.malformed)
			assert.NoError(t, d.err)
			if tt.kind == "" {
				assert.Nil(t, d.event)
				return
			}
			require.NotNil(t, d.event)
			assert.Equal(t, tt.kind, d.event.Kind)
		})
	}
}

func TestTradeProtocol_Credentials(t *testing.T) {
	assert.True(t, tradeProtocol{creds: testCreds}.canReconnect())
	assert.False(t, tradeProtocol{creds: TradeCredentials{APIKey: "k"}}.canReconnect())
	assert.False(t, tradeProtocol{creds: TradeCredentials{SteamID: "1"}}.canReconnect())

	_, err := tradeProtocol{}.greeting()
	assert.ErrorIs(t, err, errNoTradeCredentials)
}

func TestTrade_HeartbeatStopsOnClose(t *testing.T) {
	var pings atomic.Int32
	ts := newTestServer(t, func(conn *websocket.Conn, r *http.Request) {
		_, _, _ = conn.ReadMessage() // auth
		if _, _, err := conn.ReadMessage(); err == nil {
			pings.Add(1)
		}
	})

	var c *TradeClient
	tickerCleared := make(chan bool, 1)
	c = newTestTrade(t, ts.wsURL(), Options{
		HeartbeatInterval: 10 * time.Millisecond,
		ReconnectUnit:     time.Hour,
	})
	// state listeners run on the loop goroutine, so the ticker field can be read here
	c.OnState(func(s State) {
		if s == StateClosed {
			select {
			case tickerCleared <- c.heartbeat == nil:
			default:
			}
		}
	})

	select {
	case cleared := <-tickerCleared:
		assert.True(t, cleared)
	case <-time.After(waitFor):
		t.Fatal("connection did not close")
	}

	time.Sleep(100 * time.Millisecond)
	assert.EqualValues(t, 1, pings.Load())
	assert.EqualValues(t, 1, ts.conns.Load())
	assert.Equal(t, StateClosed, c.State())
	assert.EqualValues(t, 1, c.Retries())
}
