package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"waxbot/internal/config"
	"waxbot/internal/engine"
	"waxbot/internal/exchange/waxpeer"
	"waxbot/internal/logger"

	"golang.org/x/sync/errgroup"
)

func main() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Config{
		Level:      cfg.Runtime.Log.Level,
		Format:     cfg.Runtime.Log.Format,
		Output:     cfg.Runtime.Log.File,
		MaxSize:    cfg.Runtime.Log.MaxSize,
		MaxBackups: cfg.Runtime.Log.MaxBackups,
		MaxAge:     cfg.Runtime.Log.MaxAge,
		Compress:   cfg.Runtime.Log.Compress,
	})

	log.Debug("Конфигурация загружена.")
	log.Info("Бот запущен.")

	client := waxpeer.New(cfg, log)
	eng := engine.New(cfg, client, client.Trade, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return eng.Start(gctx)
	})
	g.Go(func() error {
		select {
		case sig := <-sigCh:
			log.WithFields(map[string]interface{}{"signal": sig.String()}).Info("Получен сигнал остановки.")
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("\"Двигатель\" завершился с ошибкой.")
	}

	if err := client.Close(); err != nil {
		log.WithError(err).Warn("Не удалось корректно закрыть соединения.")
	}

	log.Info("Бот остановлен.")
}
