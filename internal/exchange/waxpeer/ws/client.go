package ws

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"waxbot/internal/exchange"
	"waxbot/internal/logger"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var errNotConnected = errors.New("WS соединение не установлено")

type (
	TradeClient = Client[exchange.TradeEventKind]
	SiteClient  = Client[exchange.SiteEventKind]
)

// Client is a self-healing push connection. A single loop goroutine owns the
// socket, the timers and handler dispatch; exported methods are safe for
// concurrent use.
type Client[K ~string] struct {
	proto protocol[K]
	opts  Options
	log   *logger.Logger

	state   atomic.Int32
	retries atomic.Int64
	dropped atomic.Int64
	// readTimeout of the current attempt, shared with its reader goroutine
	readTimeout atomic.Int64

	handlersMu    sync.RWMutex
	handlers      map[K][]func(exchange.Event[K])
	stateHandlers []func(State)

	inbox       chan signal
	reconnectCh chan struct{}
	ctx         context.Context
	cancel      context.CancelFunc
	done        chan struct{}
	closeOnce   sync.Once

	// owned by the loop goroutine
	conn       *websocket.Conn
	gen        uint64
	live       bool
	session    string
	heartbeat  *time.Ticker
	retryTimer *time.Timer
}

// NewTrade starts the trade channel. Connecting happens in the background;
// without both an api key and a steam id the connection closes as soon as
// it opens and is never retried.
func NewTrade(creds TradeCredentials, opts Options, log *logger.Logger) *TradeClient {
	return newClient[exchange.TradeEventKind](tradeProtocol{creds: creds}, opts.withDefaults(DefaultTradeURL), log)
}

// NewSite starts the site channel and subscribes to creds.Events every time
// the namespace connects.
func NewSite(creds SiteCredentials, opts Options, log *logger.Logger) *SiteClient {
	return newClient[exchange.SiteEventKind](siteProtocol{creds: creds}, opts.withDefaults(DefaultSiteURL), log)
}

func newClient[K ~string](proto protocol[K], opts Options, log *logger.Logger) *Client[K] {
	if log == nil {
		log = logger.Discard()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Client[K]{
		proto:       proto,
		opts:        opts,
		log:         log,
		handlers:    make(map[K][]func(exchange.Event[K])),
		inbox:       make(chan signal, inboxSize),
		reconnectCh: make(chan struct{}, 1),
		ctx:         ctx,
		cancel:      cancel,
		done:        make(chan struct{}),
	}
	c.state.Store(int32(StateConnecting))

	go c.run()

	return c
}

func (c *Client[K]) logEntry() *logrus.Entry {
	entry := c.log.WithComponent(c.proto.name())
	if c.session != "" {
		entry = entry.WithFields(logrus.Fields{
			"session": c.session,
			"attempt": c.gen,
		})
	}
	return entry
}

func (c *Client[K]) State() State {
	return State(c.state.Load())
}

func (c *Client[K]) IsOpen() bool {
	return c.State() == StateOpen
}

// Retries is the number of close events seen so far.
func (c *Client[K]) Retries() int64 {
	return c.retries.Load()
}

// DroppedFrames counts inbound frames that could not be parsed.
func (c *Client[K]) DroppedFrames() int64 {
	return c.dropped.Load()
}

// On registers a handler for kind. Handlers run on the connection's loop
// goroutine in registration order and must not block.
func (c *Client[K]) On(kind K, handler func(exchange.Event[K])) {
	c.handlersMu.Lock()
	c.handlers[kind] = append(c.handlers[kind], handler)
	c.handlersMu.Unlock()
}

// OnState registers a lifecycle listener, called on every state change.
func (c *Client[K]) OnState(handler func(State)) {
	c.handlersMu.Lock()
	c.stateHandlers = append(c.stateHandlers, handler)
	c.handlersMu.Unlock()
}

// Reconnect drops the current socket, if any, and dials again right away.
func (c *Client[K]) Reconnect() {
	select {
	case c.reconnectCh <- struct{}{}:
	default:
	}
}

// Close stops timers, closes the socket and waits for the loop to exit.
func (c *Client[K]) Close() error {
	c.closeOnce.Do(c.cancel)
	<-c.done
	return nil
}

func (c *Client[K]) run() {
	defer close(c.done)
	defer c.shutdown()

	c.connect()

	for {
		var heartbeatC, retryC <-chan time.Time
		if c.heartbeat != nil {
			heartbeatC = c.heartbeat.C
		}
		if c.retryTimer != nil {
			retryC = c.retryTimer.C
		}

		select {
		case <-c.ctx.Done():
			return
		case <-c.reconnectCh:
			c.logEntry().Info("Принудительное переподключение к WS.")
			c.connect()
		case <-retryC:
			c.retryTimer = nil
			c.connect()
		case <-heartbeatC:
			if err := c.write(c.proto.heartbeatFrame()); err != nil {
				c.closed(fmt.Errorf("Не удалось отправить ping: %w", err))
			}
		case sig := <-c.inbox:
			c.handle(sig)
		}
	}
}

// connect replaces the current attempt with a new one. The old socket is
// closed without counting as a close event.
func (c *Client[K]) connect() {
	c.stopRetry()
	c.dispose()

	c.gen++
	c.live = true
	c.readTimeout.Store(0)
	c.session = newSession()
	c.setState(StateConnecting)

	c.logEntry().WithField("url", c.opts.URL).Info("Подключение к WS.")

	go c.dial(c.gen)
}

func (c *Client[K]) open() {
	c.setState(StateOpen)
	if c.opts.ResetBackoffOnOpen {
		c.retries.Store(0)
	}
	c.stopHeartbeat()

	frames, err := c.proto.greeting()
	if err != nil {
		c.closed(err)
		return
	}
	for _, f := range frames {
		if err := c.write(f); err != nil {
			c.closed(fmt.Errorf("Не удалось отправить приветствие: %w", err))
			return
		}
	}

	if c.proto.heartbeatFrame() != nil {
		c.heartbeat = time.NewTicker(c.opts.HeartbeatInterval)
	}

	c.logEntry().Info("WS соединение установлено.")
}

// closed is the single close path for the current attempt. Read errors,
// dial errors and protocol errors all end here, at most once per attempt.
func (c *Client[K]) closed(cause error) {
	if !c.live {
		return
	}
	c.dispose()
	c.setState(StateClosed)

	retries := c.retries.Add(1)
	entry := c.logEntry().WithField("retries", retries)
	if cause != nil {
		entry = entry.WithError(cause)
	}

	if !c.proto.canReconnect() {
		entry.Warn("WS закрыт, переподключение невозможно без учётных данных.")
		return
	}

	delay := Backoff(c.opts.ReconnectUnit, retries)
	entry.WithField("delay", delay.String()).Warn("WS закрыт, переподключение запланировано.")
	c.retryTimer = time.NewTimer(delay)
}

func (c *Client[K]) dispose() {
	c.live = false
	c.stopHeartbeat()
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}

func (c *Client[K]) shutdown() {
	c.stopRetry()
	c.dispose()
	c.setState(StateClosed)
	c.logEntry().Info("WS клиент остановлен.")
}

func (c *Client[K]) stopHeartbeat() {
	if c.heartbeat != nil {
		c.heartbeat.Stop()
		c.heartbeat = nil
	}
}

func (c *Client[K]) stopRetry() {
	if c.retryTimer != nil {
		c.retryTimer.Stop()
		c.retryTimer = nil
	}
}

func (c *Client[K]) write(data []byte) error {
	if c.conn == nil {
		return errNotConnected
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *Client[K]) setState(s State) {
	if State(c.state.Swap(int32(s))) == s {
		return
	}

	c.handlersMu.RLock()
	handlers := append([]func(State){}, c.stateHandlers...)
	c.handlersMu.RUnlock()

	for _, h := range handlers {
		c.safeCall(func() { h(s) })
	}
}

func (c *Client[K]) dispatch(ev exchange.Event[K]) {
	c.handlersMu.RLock()
	handlers := append([]func(exchange.Event[K]){}, c.handlers[ev.Kind]...)
	c.handlersMu.RUnlock()

	for _, h := range handlers {
		c.safeCall(func() { h(ev) })
	}
}

func (c *Client[K]) safeCall(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.logEntry().WithField("panic", r).Error("Паника в обработчике WS события.")
		}
	}()
	fn()
}

// Backoff is the delay before the next attempt after retries close events.
// It grows linearly without a cap.
func Backoff(unit time.Duration, retries int64) time.Duration {
	if retries < 0 {
		retries = 0
	}
	return time.Duration(retries) * unit
}
