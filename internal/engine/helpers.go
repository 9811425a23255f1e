package engine

import (
	"encoding/json"
	"sort"
	"time"
)

// unixTime accepts seconds or milliseconds.
func unixTime(n json.Number) time.Time {
	v, err := n.Int64()
	if err != nil || v <= 0 {
		return time.Time{}
	}
	if v > 1e12 {
		return time.UnixMilli(v)
	}
	return time.Unix(v, 0)
}

// expirePending drops trades whose send deadline has passed.
func expirePending(st *WatcherState, now time.Time) int {
	n := 0
	for id, p := range st.Pending {
		if !p.SendUntil.IsZero() && p.SendUntil.Before(now) {
			st.forget(id)
			n++
		}
	}
	return n
}

func sortedPending(pending map[string]PendingTrade) []PendingTrade {
	out := make([]PendingTrade, 0, len(pending))
	for _, p := range pending {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].SendUntil, out[j].SendUntil
		switch {
		case a.IsZero() != b.IsZero():
			return !a.IsZero()
		case !a.Equal(b):
			return a.Before(b)
		default:
			return out[i].ID < out[j].ID
		}
	})
	return out
}
