package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"waxbot/internal/logger"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger

	pricesLimiter   *windowLimiter
	dopplersLimiter *windowLimiter
}

// ErrRateLimited is returned without touching the network when a locally
// limited endpoint was called too often.
var ErrRateLimited = errors.New("Превышен лимит запросов, повторите позже.")

// APIError carries an upstream failure: a non-2xx status or a 2xx body with
// "success": false.
type APIError struct {
	StatusCode int
	Msg        string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("Ошибка waxpeer (status=%d)", e.StatusCode)
	}
	return fmt.Sprintf("Ошибка waxpeer: %s (status=%d)", e.Msg, e.StatusCode)
}

// Decode unmarshals the raw upstream body, some failures still carry
// useful counters (e.g. how many orders were removed before a timeout).
func (e *APIError) Decode(v any) error {
	return json.Unmarshal(e.Body, v)
}

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

type envelope struct {
	Success *bool  `json:"success"`
	Msg     string `json:"msg"`
}
