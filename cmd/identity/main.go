package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/payflex/banking-system/internal/api"
	"github.com/payflex/banking-system/internal/infrastructure/config"
	mongostore "github.com/payflex/banking-system/internal/infrastructure/db/mongo"
	redisstore "github.com/payflex/banking-system/internal/infrastructure/db/redis"
	"github.com/payflex/banking-system/internal/infrastructure/mail"
	"github.com/payflex/banking-system/internal/infrastructure/queue"
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
		Service: "identity",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	mailer := mail.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	dispatcher := queue.NewDispatcher(0, mailer, log)
	dispatcher.Start(ctx)

	e := api.NewIdentityRouter(db, rdb, cfg, dispatcher, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("identity service listening")
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

// ensureIndexes creates the uniqueness constraints and TTL sweeps the session
// invariants depend on. Runs at startup, before the server accepts traffic.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongostore.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongostore.NewRefreshTokenRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongostore.NewVerificationCodeRepository(db).EnsureIndexes(ctx)
}
