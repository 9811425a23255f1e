package waxpeer

import (
	"errors"

	"waxbot/internal/config"
	"waxbot/internal/exchange"
	"waxbot/internal/exchange/waxpeer/rest"
	"waxbot/internal/exchange/waxpeer/ws"
	"waxbot/internal/logger"
)

// Client bundles the REST groups with the two push connections. The trade
// connection always runs; the site connection only when enabled.
type Client struct {
	*rest.Client

	Trade *ws.TradeClient
	Site  *ws.SiteClient

	log *logger.Logger
}

var _ exchange.Client = (*Client)(nil)

func New(cfg *config.Config, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Discard()
	}
	mp := cfg.Marketplace

	c := &Client{
		Client: rest.New(mp.BaseURL, mp.APIKey, mp.RequestTimeout, log),
		log:    log,
	}

	opts := ws.Options{
		HeartbeatInterval:  cfg.Push.HeartbeatInterval,
		ReconnectUnit:      cfg.Push.ReconnectUnit,
		ResetBackoffOnOpen: cfg.Push.ResetBackoffOnOpen,
	}

	tradeOpts := opts
	tradeOpts.URL = mp.TradeWSURL
	c.Trade = ws.NewTrade(ws.TradeCredentials{
		APIKey:   mp.APIKey,
		SteamID:  mp.SteamID,
		TradeURL: mp.TradeURL,
	}, tradeOpts, log)

	if cfg.Push.SiteEnabled {
		siteOpts := opts
		siteOpts.URL = mp.SiteWSURL
		c.Site = ws.NewSite(ws.SiteCredentials{
			APIKey: mp.APIKey,
			Events: cfg.Push.SiteEvents,
		}, siteOpts, log)
	}

	log.WithComponent("waxpeer").WithField("site", cfg.Push.SiteEnabled).Info("Клиент waxpeer создан.")

	return c
}

// Close disposes both push connections.
func (c *Client) Close() error {
	var errs []error
	if c.Trade != nil {
		errs = append(errs, c.Trade.Close())
	}
	if c.Site != nil {
		errs = append(errs, c.Site.Close())
	}
	return errors.Join(errs...)
}
