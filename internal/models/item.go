package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ItemID is a steam asset id. Rust ids overflow float64, so the API expects
// them as strings; numbers are accepted on input and preserved verbatim.
type ItemID string

func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*id = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ItemID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("Некорректный item_id %s: %w", string(data), err)
		}
		*id = ItemID(n.String())
	}
	return nil
}

func (id ItemID) String() string {
	return string(id)
}

// Game is a marketplace game slug.
type Game string

const (
	GameCSGO Game = "csgo"
	GameRust Game = "rust"
	GameDota Game = "dota2"
	GameTF2  Game = "tf2"
)

// AppID returns the steam app id used by endpoints that take a numeric game.
func (g Game) AppID() int {
	switch g {
	case GameRust:
		return 252490
	case GameDota:
		return 570
	case GameTF2:
		return 440
	default:
		return 730
	}
}

type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// TradeStatus is the numeric status of a steam trade on the marketplace.
type TradeStatus int

// TradeStatusCanceled is set when the seller's details are invalid or the
// trade timed out.
const TradeStatusCanceled TradeStatus = 6
