package engine

import (
	"context"
	"strconv"
	"time"

	"waxbot/internal/exchange"
	"waxbot/internal/models"

	"github.com/sirupsen/logrus"
)

// tradeRef identifies the trade a cancelTrade or accept_withdraw refers to.
type tradeRef struct {
	WaxID string        `json:"waxid"`
	ID    models.ItemID `json:"id"`
}

func (r tradeRef) key() string {
	if r.WaxID != "" {
		return r.WaxID
	}
	return r.ID.String()
}

func (e *Engine) handleEvent(ev exchange.TradeEvent) {
	switch ev.Kind {
	case exchange.EventSendTrade:
		var st exchange.SendTrade
		if err := ev.Decode(&st); err != nil {
			e.logEntry().WithError(err).Warn("Не удалось разобрать send-trade.")
			return
		}
		e.handleSendTrade(st, ev.ReceivedAt)
	case exchange.EventCancelTrade:
		var ref tradeRef
		if err := ev.Decode(&ref); err != nil {
			e.logEntry().WithError(err).Warn("Не удалось разобрать cancelTrade.")
			return
		}
		e.handleCancel(ref)
	case exchange.EventAcceptWithdraw:
		var ref tradeRef
		if err := ev.Decode(&ref); err != nil {
			e.logEntry().WithError(err).Warn("Не удалось разобрать accept_withdraw.")
			return
		}
		e.handleWithdraw(ref)
	}
}

func (e *Engine) handleSendTrade(st exchange.SendTrade, receivedAt time.Time) {
	if st.WaxID == "" {
		e.logEntry().Warn("send-trade без waxid пропущен.")
		return
	}

	e.mu.Lock()
	if e.state.ProcessedIDs[st.WaxID] {
		e.mu.Unlock()
		e.logEntry().WithField("waxid", st.WaxID).Debug("Повторный send-trade пропущен.")
		return
	}
	e.state.ProcessedIDs[st.WaxID] = true
	e.state.Pending[st.WaxID] = PendingTrade{
		ID:           st.WaxID,
		Source:       SourcePush,
		TradeLink:    st.TradeLink,
		TradeMessage: st.TradeMessage,
		SendUntil:    unixTime(st.SendUntil),
		SeenAt:       receivedAt,
	}
	e.state.UpdatedAt = time.Now()
	pending := len(e.state.Pending)
	e.mu.Unlock()

	e.logEntry().WithFields(logrus.Fields{
		"waxid":      st.WaxID,
		"tradelink":  st.TradeLink,
		"send_until": unixTime(st.SendUntil),
		"pending":    pending,
	}).Info("Получен запрос на отправку трейда.")
}

func (e *Engine) handleCancel(ref tradeRef) {
	key := ref.key()

	e.mu.Lock()
	_, known := e.state.Pending[key]
	e.state.forget(key)
	e.state.Canceled++
	e.state.UpdatedAt = time.Now()
	e.mu.Unlock()

	e.logEntry().WithFields(logrus.Fields{
		"trade": key,
		"known": known,
	}).Info("Трейд отменён.")
}

func (e *Engine) handleWithdraw(ref tradeRef) {
	key := ref.key()

	e.mu.Lock()
	e.state.forget(key)
	e.state.Withdrawn++
	e.state.UpdatedAt = time.Now()
	e.mu.Unlock()

	e.logEntry().WithField("trade", key).Info("Вывод подтверждён.")
}

// pollTransfers reconciles the pending set with ready-to-transfer-p2p: new
// trades are added and polled trades the server no longer lists are dropped.
func (e *Engine) pollTransfers(ctx context.Context) {
	resp, err := e.client.ReadyToTransferP2P(ctx, e.cfg.Engine.SteamAPIKey)
	if err != nil {
		e.logEntry().WithError(err).Warn("Не удалось получить очередь передачи.")
		return
	}

	now := time.Now()
	listed := make(map[string]bool, len(resp.Trades))
	added := 0

	e.mu.Lock()
	for _, t := range resp.Trades {
		id := strconv.FormatInt(t.ID, 10)
		listed[id] = true
		if _, ok := e.state.Pending[id]; ok {
			continue
		}
		e.state.Pending[id] = PendingTrade{
			ID:           id,
			Source:       SourcePoll,
			TradeLink:    t.TradeLink,
			TradeMessage: t.TradeMessage,
			SendUntil:    t.SendUntil,
			Items:        t.Items,
			SeenAt:       now,
		}
		e.state.ProcessedIDs[id] = true
		added++
	}
	removed := 0
	for id, p := range e.state.Pending {
		if p.Source == SourcePoll && !listed[id] {
			e.state.forget(id)
			removed++
		}
	}
	removed += expirePending(&e.state, now)
	e.state.LastPollAt = now
	e.state.UpdatedAt = now
	pending := len(e.state.Pending)
	e.mu.Unlock()

	entry := e.logEntry().WithFields(logrus.Fields{
		"listed":  len(resp.Trades),
		"added":   added,
		"removed": removed,
		"pending": pending,
	})
	if added > 0 {
		entry.Info("Очередь передачи обновлена.")
		return
	}
	entry.Debug("Очередь передачи сверена.")
}
