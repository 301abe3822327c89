package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/payflex/banking-system/internal/gateway"
	"github.com/payflex/banking-system/internal/infrastructure/config"
	redisstore "github.com/payflex/banking-system/internal/infrastructure/db/redis"
	"github.com/payflex/banking-system/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Service: "gateway",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	e, err := gateway.New(rdb, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("gateway setup failed")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("api gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
