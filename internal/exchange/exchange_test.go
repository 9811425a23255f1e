package exchange

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_DecodeSendTrade(t *testing.T) {
	ev := TradeEvent{
		Kind: EventSendTrade,
		Data: json.RawMessage(`{"waxid":"a1","tradelink":"https://steamcommunity.com/tradeoffer/new/?partner=1&token=x","trade_message":"hi","created":1700000000,"send_until":1700000600,"json_tradeoffer":{"me":{"assets":[]}}}`),
	}

	var st SendTrade
	require.NoError(t, ev.Decode(&st))
	assert.Equal(t, "a1", st.WaxID)
	assert.Equal(t, "hi", st.TradeMessage)
	assert.Equal(t, json.Number("1700000600"), st.SendUntil)
	assert.JSONEq(t, `{"me":{"assets":[]}}`, string(st.JSONTradeOffer))
}

func TestEvent_DecodeErrors(t *testing.T) {
	var v map[string]any

	err := SiteEvent{Kind: EventAddItem}.Decode(&v)
	assert.Error(t, err)

	err = SiteEvent{Kind: EventAddItem, Data: json.RawMessage(`[1,2]`)}.Decode(&v)
	assert.Error(t, err)
}

func TestConnState_String(t *testing.T) {
	assert.Equal(t, "connecting", StateConnecting.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "state(9)", ConnState(9).String())
}
