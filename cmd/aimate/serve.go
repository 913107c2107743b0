package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/aimatehq/aimate/internal/chat"
	"github.com/aimatehq/aimate/internal/config"
	"github.com/aimatehq/aimate/internal/conversation"
	"github.com/aimatehq/aimate/internal/db"
	"github.com/aimatehq/aimate/internal/handlers"
	"github.com/aimatehq/aimate/internal/logger"
	"github.com/aimatehq/aimate/internal/server"
	"github.com/aimatehq/aimate/internal/store"
	"github.com/aimatehq/aimate/internal/telegram"
)

func runServe(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	log := logger.New(cfg.Log)

	app := fx.New(
		fx.Supply(cfg),
		fx.Supply(log),
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),
		fx.Provide(
			newPool,
			newStore,
			newChatClient,
			newConversationHandler,
			newSender,
			handlers.NewPingHandler,
			newWebhookHandler,
			newServer,
		),
		fx.Invoke(startServer),
	)
	app.Run()
	return nil
}

func newPool(lc fx.Lifecycle, log *slog.Logger, cfg config.Config) (*pgxpool.Pool, error) {
	if err := db.Migrate(log, cfg.Postgres); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := db.Connect(ctx, cfg.Postgres)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pool.Close()
			return nil
		},
	})
	return pool, nil
}

func newStore(log *slog.Logger, pool *pgxpool.Pool) *store.PostgresStore {
	return store.NewPostgresStore(log, pool)
}

func newChatClient(log *slog.Logger, cfg config.Config) *chat.GroqClient {
	return chat.NewGroqClient(log, cfg.Groq)
}

func newConversationHandler(log *slog.Logger, cfg config.Config, st *store.PostgresStore, client *chat.GroqClient) *conversation.Handler {
	return conversation.NewHandler(log, cfg.Bot, st, client)
}

func newSender(log *slog.Logger, cfg config.Config) (*telegram.Sender, error) {
	return telegram.NewSender(log, cfg.Telegram.BotToken, cfg.Bot)
}

func newWebhookHandler(log *slog.Logger, h *conversation.Handler, sender *telegram.Sender) *handlers.WebhookHandler {
	return handlers.NewWebhookHandler(log, h, sender)
}

func newServer(cfg config.Config, pingHandler *handlers.PingHandler, webhookHandler *handlers.WebhookHandler) *server.Server {
	return server.NewServer(cfg.Server.Addr, pingHandler, webhookHandler)
}

func startServer(lc fx.Lifecycle, log *slog.Logger, srv *server.Server, cfg config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server stopped", slog.Any("error", err))
				}
			}()
			log.Info("webhook server listening", slog.String("addr", cfg.Server.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
