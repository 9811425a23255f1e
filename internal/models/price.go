package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Price is an amount in marketplace mills: 1000 = $1.
type Price int64

const millsPerDollar = 1000

var millsDivisor = decimal.NewFromInt(millsPerDollar)

func PriceFromUSD(usd decimal.Decimal) Price {
	return Price(usd.Mul(millsDivisor).Round(0).IntPart())
}

func (p Price) USD() decimal.Decimal {
	return decimal.NewFromInt(int64(p)).Div(millsDivisor)
}

func (p Price) String() string {
	return "$" + p.USD().StringFixed(3)
}

// UnmarshalJSON accepts both numbers and numeric strings, the API uses both
// for the same field depending on the endpoint.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*p = 0
			return nil
		}
		data = []byte(s)
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("Некорректная цена %q: %w", string(data), err)
	}
	*p = Price(d.Round(0).IntPart())
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(p), 10)), nil
}
