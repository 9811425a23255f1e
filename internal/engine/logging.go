package engine

import (
	"github.com/sirupsen/logrus"
)

func (e *Engine) logEntry() *logrus.Entry {
	if e.cfg == nil || e.cfg.Marketplace.SteamID == "" {
		return e.log.WithComponent("engine")
	}
	return e.log.WithSteamID(e.cfg.Marketplace.SteamID).WithField("component", "engine")
}
