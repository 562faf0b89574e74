package main

import (
	"ImaniConsole/internal/adapters/eventbus"
	"ImaniConsole/internal/adapters/httpapi"
	"ImaniConsole/internal/adapters/postgres"
	"ImaniConsole/internal/adapters/telegram"
	"ImaniConsole/internal/auth"
	"ImaniConsole/internal/console"
	"ImaniConsole/internal/shared/config"
	"ImaniConsole/internal/shared/logger"
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize Logger
	isDevMode := cfg.AppEnv == "dev"
	baseLogger := logger.New(isDevMode)
	baseLogger.Info().Str("app_env", cfg.AppEnv).Msg("Configuration loaded")

	// 3. Initialize the auth gate
	keyBytes, err := hex.DecodeString(cfg.TokenKey)
	if err != nil {
		baseLogger.Fatal().Err(err).Msg("Failed to decode TOKEN_KEY. It must be hex-encoded.")
	}
	tokens, err := auth.NewTokenService(keyBytes)
	if err != nil {
		baseLogger.Fatal().Err(err).Msg("Failed to initialize token service")
	}
	gate := auth.NewGate(cfg.AdminEmail, cfg.AdminPassword, tokens, cfg.TokenTTL, &baseLogger)

	// 4. Initialize Database
	ctx := context.Background()
	db, err := postgres.NewDB(ctx, cfg.DatabaseURL, &baseLogger)
	if err != nil {
		baseLogger.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// 5. Initialize Repositories
	identityDir := postgres.NewIdentityDirectory(db, &baseLogger)
	profileRepo := postgres.NewProfileRepository(db, &baseLogger)
	listingRepo := postgres.NewListingRepository(db, &baseLogger)
	notificationRepo := postgres.NewNotificationRepository(db, &baseLogger)

	// 6. Initialize the console core
	bus := eventbus.NewInMemoryEventBus(&baseLogger)
	view := console.NewView(&baseLogger)
	source := console.NewSourceAdapter(identityDir, profileRepo, &baseLogger)
	notifier := console.NewNotifier(notificationRepo, &baseLogger)
	engine := console.NewEngine(view, profileRepo, listingRepo, notifier, bus, &baseLogger)

	// 7. Optional ops alerts
	if cfg.AlertsEnabled() {
		api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
		if err != nil {
			baseLogger.Error().Err(err).Msg("Failed to initialize Telegram alerts, continuing without them")
		} else {
			sender := telegram.NewAlertClient(api, cfg.TelegramOpsChatID, &baseLogger)
			telegram.NewOpsAlertHandler(sender, &baseLogger).Register(bus)
			baseLogger.Info().Msg("Ops alerts enabled")
		}
	}

	// 8. Seed the view with an initial fetch
	res := source.FetchAccounts(ctx)
	listings, err := listingRepo.List(ctx)
	if err != nil {
		baseLogger.Error().Err(err).Msg("Initial listing fetch failed, starting with empty set")
		listings = nil
	}
	view.Replace(console.Snapshot{
		Accounts:   res.Accounts,
		Listings:   listings,
		Degraded:   res.Degraded,
		Diagnostic: res.Diagnostic,
	})

	// 9. Start the operator HTTP API
	handlers := httpapi.NewHandlers(gate, source, listingRepo, view, engine, &baseLogger)
	router := httpapi.NewRouter(handlers, gate, cfg.TrustedOrigins)

	baseLogger.Info().Str("addr", cfg.HTTPAddr).Msg("Console API listening")
	if err := http.ListenAndServe(cfg.HTTPAddr, router); err != nil {
		baseLogger.Fatal().Err(err).Msg("HTTP server stopped")
	}
}
