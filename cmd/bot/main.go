package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/marketplace-bot/internal/application/access"
	"github.com/jhoicas/marketplace-bot/internal/application/seller"
	"github.com/jhoicas/marketplace-bot/internal/application/usecase"
	"github.com/jhoicas/marketplace-bot/internal/domain/conversation"
	"github.com/jhoicas/marketplace-bot/internal/infrastructure/memory"
	"github.com/jhoicas/marketplace-bot/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/marketplace-bot/internal/infrastructure/redis"
	"github.com/jhoicas/marketplace-bot/internal/interfaces/telegram"
	"github.com/jhoicas/marketplace-bot/pkg/config"
	"github.com/jhoicas/marketplace-bot/pkg/logger"
	"github.com/jhoicas/marketplace-bot/pkg/money"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("session_backend", cfg.Session.Backend).
		Msg("iniciando bot")

	if cfg.Telegram.BotToken == "" {
		log.Fatal().Msg("BOT_TOKEN es obligatorio")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	var sessions conversation.Store
	switch cfg.Session.Backend {
	case "redis":
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		sessions = infraredis.NewSessionStore(client, cfg.Session.TTL)
	case "memory", "":
		store := memory.NewSessionStore(cfg.Session.TTL)
		sweepLog := log.Component("sessions")
		go store.RunSweeper(ctx, time.Minute, func(n int) {
			sweepLog.Debug().Int("expired", n).Msg("sesiones expiradas eliminadas")
		})
		sessions = store
	default:
		log.Fatal().Str("backend", cfg.Session.Backend).Msg("SESSION_BACKEND desconocido (memory | redis)")
	}

	userRepo := postgres.NewUserRepository(pool)
	appRepo := postgres.NewSellerApplicationRepository(pool)
	productRepo := postgres.NewProductRepository(pool)

	authz := access.NewAuthorizer(userRepo)

	client, err := telegram.NewBotClient(cfg.Telegram.BotToken, cfg.Telegram.Debug)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Telegram")
	}
	log.Info().Str("bot", client.Username()).Msg("bot autenticado")

	handler := telegram.NewHandler(telegram.HandlerDeps{
		UserUC:         usecase.NewUserUseCase(userRepo, authz),
		RegistrationUC: seller.NewRegistrationUseCase(authz, appRepo, sessions),
		ApprovalUC:     seller.NewApprovalUseCase(authz, appRepo, postgres.NewTxRunner(pool)),
		ProductUC:      usecase.NewProductUseCase(productRepo, appRepo, authz),
		CartUC:         usecase.NewCartUseCase(postgres.NewCartRepository(pool), productRepo, authz),
		FavoriteUC:     usecase.NewFavoriteUseCase(postgres.NewFavoriteRepository(pool), productRepo, authz),
		Authorizer:     authz,
		Messenger:      client,
		Money:          money.NewFormatter(cfg.App.Locale, cfg.App.Currency),
		Config:         cfg.Telegram,
		Log:            log,
	})

	dispatcher := telegram.NewDispatcher(client, handler, log, cfg.Telegram.PollTimeout)
	if err := dispatcher.Run(ctx); err != nil {
		log.Error().Err(err).Msg("dispatcher finalizado con error")
	}

	log.Info().Msg("bot detenido")
}
