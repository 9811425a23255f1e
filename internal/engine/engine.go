package engine

import (
	"context"
	"sync"
	"time"

	"waxbot/internal/config"
	"waxbot/internal/exchange"
	"waxbot/internal/logger"

	"github.com/sirupsen/logrus"
)

const eventBuffer = 100

// Engine watches the trade channel and the transfer queue and keeps the set
// of sales waiting for a steam offer.
type Engine struct {
	cfg    *config.Config
	client exchange.Client
	trade  exchange.PushChannel[exchange.TradeEventKind]
	log    *logger.Logger

	events chan exchange.TradeEvent
	resync chan struct{}

	mu    sync.Mutex
	state WatcherState
}

func New(cfg *config.Config, client exchange.Client, trade exchange.PushChannel[exchange.TradeEventKind], log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Discard()
	}
	return &Engine{
		cfg:    cfg,
		client: client,
		trade:  trade,
		log:    log,
		events: make(chan exchange.TradeEvent, eventBuffer),
		resync: make(chan struct{}, 1),
		state: WatcherState{
			Pending:      map[string]PendingTrade{},
			ProcessedIDs: map[string]bool{},
		},
	}
}

// Start blocks until ctx is done.
func (e *Engine) Start(ctx context.Context) error {
	e.subscribe()

	e.logProfile(ctx)

	pollEnabled := e.cfg.Engine.SteamAPIKey != ""
	var pollC <-chan time.Time
	if pollEnabled {
		poll := time.NewTicker(e.cfg.Engine.TransferPollInterval)
		defer poll.Stop()
		pollC = poll.C
		e.pollTransfers(ctx)
	} else {
		e.logEntry().Warn("engine.steam_api_key не задан, опрос ready-to-transfer-p2p отключён.")
	}

	wss := time.NewTicker(e.cfg.Engine.WssCheckInterval)
	defer wss.Stop()

	e.logEntry().Info("Наблюдатель трейдов запущен.")

	for {
		select {
		case <-ctx.Done():
			e.logEntry().Info("Наблюдатель трейдов остановлен.")
			return nil
		case ev := <-e.events:
			e.handleEvent(ev)
		case <-e.resync:
			if pollEnabled {
				e.logEntry().Info("Торговый WS переподключён, сверка очереди передачи.")
				e.pollTransfers(ctx)
			}
		case <-pollC:
			e.pollTransfers(ctx)
		case <-wss.C:
			e.checkWss(ctx)
		}
	}
}

// subscribe hands push events over to the engine goroutine. Handlers run on
// the connection loop, so they never block.
func (e *Engine) subscribe() {
	forward := func(ev exchange.TradeEvent) {
		select {
		case e.events <- ev:
		default:
			e.logEntry().WithField("event", string(ev.Kind)).Warn("Очередь событий переполнена, событие пропущено.")
		}
	}
	e.trade.On(exchange.EventSendTrade, forward)
	e.trade.On(exchange.EventCancelTrade, forward)
	e.trade.On(exchange.EventAcceptWithdraw, forward)

	e.trade.OnState(func(s exchange.ConnState) {
		if s != exchange.StateOpen {
			return
		}
		select {
		case e.resync <- struct{}{}:
		default:
		}
	})
}

func (e *Engine) logProfile(ctx context.Context) {
	resp, err := e.client.GetProfile(ctx)
	if err != nil {
		e.logEntry().WithError(err).Warn("Не удалось получить профиль.")
		return
	}
	e.logEntry().WithFields(logrus.Fields{
		"wallet":      resp.User.Wallet.String(),
		"can_p2p":     resp.User.CanP2P,
		"sell_status": resp.User.SellStatus,
	}).Info("Профиль получен.")
}

func (e *Engine) checkWss(ctx context.Context) {
	steamID := e.cfg.Marketplace.SteamID
	if steamID == "" || !e.trade.IsOpen() {
		return
	}
	resp, err := e.client.CheckWssUser(ctx, steamID)
	if err != nil {
		e.logEntry().WithError(err).Warn("Не удалось проверить статус WS пользователя.")
		return
	}

	e.mu.Lock()
	e.state.LastWssStep = resp.Step
	e.state.UpdatedAt = time.Now()
	e.mu.Unlock()

	e.logEntry().WithField("step", resp.Step).Debug("Статус WS пользователя обновлён.")
}

// Pending returns trades waiting to be sent, earliest deadline first.
func (e *Engine) Pending() []PendingTrade {
	e.mu.Lock()
	defer e.mu.Unlock()
	return sortedPending(e.state.Pending)
}

// State returns a copy of the watcher state.
func (e *Engine) State() WatcherState {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.state
	st.Pending = make(map[string]PendingTrade, len(e.state.Pending))
	for k, v := range e.state.Pending {
		st.Pending[k] = v
	}
	st.ProcessedIDs = make(map[string]bool, len(e.state.ProcessedIDs))
	for k, v := range e.state.ProcessedIDs {
		st.ProcessedIDs[k] = v
	}
	return st
}
