package rest

import (
	"net/http"
	"strings"
	"time"

	"waxbot/internal/logger"
)

const (
	DefaultBaseURL = "https://api.waxpeer.com/v1"
	DefaultTimeout = 60 * time.Second

	// The marketplace bans IPs that ignore this limit on price dumps.
	priceCallsPerWindow = 60
	priceWindow         = time.Minute
)

func New(baseURL, apiKey string, timeout time.Duration, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:             log,
		pricesLimiter:   newWindowLimiter(priceCallsPerWindow, priceWindow),
		dopplersLimiter: newWindowLimiter(priceCallsPerWindow, priceWindow),
	}
}
