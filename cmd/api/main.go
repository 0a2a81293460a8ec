package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/marketplace-bot/docs"
	"github.com/jhoicas/marketplace-bot/internal/application/access"
	"github.com/jhoicas/marketplace-bot/internal/application/auth"
	"github.com/jhoicas/marketplace-bot/internal/application/seller"
	"github.com/jhoicas/marketplace-bot/internal/application/usecase"
	"github.com/jhoicas/marketplace-bot/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/marketplace-bot/internal/interfaces/http"
	"github.com/jhoicas/marketplace-bot/pkg/config"
	"github.com/jhoicas/marketplace-bot/pkg/logger"
)

// @title						Marketplace API
// @version					1.0
// @description				API de la WebApp del marketplace de Telegram.
// @BasePath					/
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
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
		Str("app", cfg.App.Name).
		Msg("iniciando API")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
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

	userRepo := postgres.NewUserRepository(pool)
	appRepo := postgres.NewSellerApplicationRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authz := access.NewAuthorizer(userRepo)
	userUC := usecase.NewUserUseCase(userRepo, authz)
	authUC := auth.NewAuthUseCase(userUC, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, auth.TelegramConfig{
		BotToken:       cfg.Telegram.BotToken,
		InitDataMaxAge: cfg.Telegram.InitDataMaxAge,
		IsAdmin:        cfg.Telegram.IsAdmin,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Marketplace API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UserUC:     userUC,
		ProductUC:  usecase.NewProductUseCase(productRepo, appRepo, authz),
		CartUC:     usecase.NewCartUseCase(postgres.NewCartRepository(pool), productRepo, authz),
		FavoriteUC: usecase.NewFavoriteUseCase(postgres.NewFavoriteRepository(pool), productRepo, authz),
		ApprovalUC: seller.NewApprovalUseCase(authz, appRepo, txRunner),
		Authorizer: authz,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("API detenida")
}
