package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fadedpez/cardsharp/internal/config"
	idiscord "github.com/fadedpez/cardsharp/internal/discord"
	"github.com/fadedpez/cardsharp/internal/logging"
	"github.com/fadedpez/cardsharp/pkg/cards"
	"github.com/fadedpez/cardsharp/pkg/discord"
	"github.com/fadedpez/cardsharp/pkg/discord/commands"
	"github.com/fadedpez/cardsharp/pkg/scheduler"
	"github.com/fadedpez/cardsharp/pkg/services/resolution"
	"github.com/fadedpez/cardsharp/pkg/services/statistics"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateBot(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.NewLogger(level)

	// Initialize repository
	repo, err := buildRepository(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("Error closing repository: %v", err)
		}
	}()

	shuffler := cards.NewShuffler(nil)
	if cfg.ShuffleSeed != 0 {
		logger.Warn("Using fixed shuffle seed %d; deals are reproducible", cfg.ShuffleSeed)
		shuffler = cards.NewSeededShuffler(cfg.ShuffleSeed)
	}

	resolver := resolution.NewService(repo, shuffler, resolution.WithLogger(logger))
	stats := statistics.NewService(repo, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	retention := scheduler.NewRetentionScheduler(repo, cfg.Retention(), cfg.PruneInterval, logger)
	retention.Start(ctx)
	defer retention.Stop()

	session, err := idiscord.NewSession(cfg.Token)
	if err != nil {
		return fmt.Errorf("error creating Discord session: %w", err)
	}

	bot := discord.NewBot(session, discord.Config{
		AppID:           cfg.AppID,
		GuildID:         cfg.GuildID,
		CleanupCommands: cfg.IsDevelopment(),
	}, logger, commands.All(resolver, stats, logger)...)

	// Start the bot
	if err := bot.Start(); err != nil {
		return fmt.Errorf("error starting bot: %w", err)
	}

	logger.Info("Bot is running. Press Ctrl+C to exit")

	// Wait for interrupt signal to gracefully shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	// Cleanup and exit
	logger.Info("Shutting down...")
	if err := bot.Stop(); err != nil {
		logger.Error("Error stopping bot: %v", err)
	}
	return nil
}
