package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/partybac/internal/activity"
	"github.com/KirkDiggler/partybac/internal/common/clock"
	"github.com/KirkDiggler/partybac/internal/common/password"
	"github.com/KirkDiggler/partybac/internal/common/uuid"
	"github.com/KirkDiggler/partybac/internal/config"
	"github.com/KirkDiggler/partybac/internal/handlers/discord"
	"github.com/KirkDiggler/partybac/internal/handlers/rest"
	"github.com/KirkDiggler/partybac/internal/lookup"
	partyRepo "github.com/KirkDiggler/partybac/internal/repositories/party"
	"github.com/KirkDiggler/partybac/internal/services/messaging"
	partyService "github.com/KirkDiggler/partybac/internal/services/party"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API and the Discord bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*envFile)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg, os.Stderr)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger)
		},
	}
}

func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// openStore connects the configured snapshot backend. The returned closer
// releases the underlying connection.
func openStore(cfg *config.Config) (partyRepo.Repository, func() error, error) {
	switch cfg.StoreBackend {
	case config.StoreSQLite:
		repo, err := partyRepo.NewSQLite(&partyRepo.SQLiteConfig{Path: cfg.SQLitePath})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return repo, repo.Close, nil
	default:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		repo, err := partyRepo.NewRedis(&partyRepo.Config{RedisClient: client})
		if err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to open redis store: %w", err)
		}
		return repo, client.Close, nil
	}
}

func newResetVerifier(hash string) (password.Verifier, error) {
	if hash == "" {
		return password.Deny{}, nil
	}
	return password.NewBcryptVerifier(hash)
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	repo, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("error closing store", "error", err)
		}
	}()

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{})
	if err != nil {
		return fmt.Errorf("failed to create messaging service: %w", err)
	}

	verifier, err := newResetVerifier(cfg.ResetPasswordHash)
	if err != nil {
		return fmt.Errorf("invalid reset password hash: %w", err)
	}

	svc, err := partyService.New(&partyService.Config{
		PartyID:    cfg.PartyID,
		Repository: repo,
		Lookup: lookup.NewOpenFoodFacts(&lookup.Config{
			BaseURL: cfg.LookupBaseURL,
			Timeout: cfg.LookupTimeout,
			Logger:  logger.With("component", "lookup"),
		}),
		Messaging:     messagingSvc,
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
		ResetVerifier: verifier,
		ActivityLog:   activity.New(&activity.Config{Capacity: cfg.ActivityCapacity}),
		Logger:        logger.With("party", cfg.PartyID),
	})
	if err != nil {
		return fmt.Errorf("failed to create party service: %w", err)
	}

	restored, err := svc.Restore(ctx, &partyService.RestoreInput{})
	if err != nil {
		return fmt.Errorf("failed to restore party: %w", err)
	}
	logger.Info("party restored",
		"party", cfg.PartyID,
		"found", restored.Found,
		"participants", restored.ParticipantCount,
		"drinks", restored.TotalDrinks)

	errCh := make(chan error, 1)

	var httpServer *http.Server
	if cfg.HTTPAddr != "" {
		api, err := rest.New(&rest.Config{
			PartyService: svc,
			Messaging:    messagingSvc,
			Logger:       logger.With("component", "rest"),
		})
		if err != nil {
			return fmt.Errorf("failed to create REST server: %w", err)
		}
		httpServer = &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           api.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("REST API listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("REST API failed: %w", err)
			}
		}()
	}

	var bot *discord.Bot
	if cfg.DiscordEnabled() {
		bot, err = discord.New(&discord.Config{
			Token:         cfg.DiscordToken,
			ApplicationID: cfg.ApplicationID,
			GuildID:       cfg.GuildID,
			PartyService:  svc,
			Messaging:     messagingSvc,
			Logger:        logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create Discord bot: %w", err)
		}
		if err := bot.Start(); err != nil {
			return fmt.Errorf("failed to start Discord bot: %w", err)
		}
	}

	if httpServer == nil && bot == nil {
		return errors.New("nothing to serve: set HTTP_ADDR or DISCORD_TOKEN")
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case runErr = <-errCh:
	}

	if bot != nil {
		if err := bot.Stop(); err != nil {
			logger.Warn("error stopping bot", "error", err)
		}
	}
	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("error stopping REST API", "error", err)
		}
	}

	return runErr
}
