package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/teampicker/internal/common/clock"
	"github.com/KirkDiggler/teampicker/internal/common/uuid"
	"github.com/KirkDiggler/teampicker/internal/config"
	"github.com/KirkDiggler/teampicker/internal/handlers/command"
	"github.com/KirkDiggler/teampicker/internal/handlers/discord"
	"github.com/KirkDiggler/teampicker/internal/random"
	matchRepo "github.com/KirkDiggler/teampicker/internal/repositories/match"
	"github.com/KirkDiggler/teampicker/internal/services/channel"
	"github.com/KirkDiggler/teampicker/internal/services/match"
	"github.com/KirkDiggler/teampicker/internal/services/messaging"
)

const cleanupTimeout = 2 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, logger); err != nil {
		logger.Fatal("bot exited", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Debug() {
		return zap.NewDevelopment()
	}

	zapCfg := zap.NewProductionConfig()
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = level

	return zapCfg.Build()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	matchRepository, err := matchRepo.NewRedis(&matchRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return fmt.Errorf("failed to create match repository: %w", err)
	}

	client, err := discord.NewClient(&discord.ClientConfig{
		Token:          cfg.Token,
		DebugChannelID: cfg.DebugChannel,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	randomSource := random.New(&random.Config{})

	messagingService, err := messaging.NewService(&messaging.Config{
		Random: randomSource,
	})
	if err != nil {
		return fmt.Errorf("failed to create messaging service: %w", err)
	}

	matchService, err := match.NewService(&match.Config{
		Resources: client,
		Messenger: client,
		Reporter:  client,
		MatchRepo: matchRepository,
		Messaging: messagingService,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create match service: %w", err)
	}

	// matches left behind by a previous process
	releaseHeld(ctx, matchService, logger)

	sessions := make([]*channel.Session, 0, len(cfg.Channels))
	for _, channelID := range cfg.Channels {
		guildID, err := client.GuildOf(ctx, channelID)
		if err != nil {
			return fmt.Errorf("failed to look up queue channel %s: %w", channelID, err)
		}

		session, err := channel.NewSession(&channel.SessionConfig{
			Machine: &channel.MachineConfig{
				ChannelID: channelID,
				GuildID:   guildID,
				Capacity:  cfg.QueueSize,
				Random:    randomSource,
				Clock:     &clock.DefaultClock{},
				UUID:      uuid.New(),
			},
			RenderInterval: cfg.RenderInterval,
			Messenger:      client,
			Reporter:       client,
			Matches:        matchService,
			Messaging:      messagingService,
			Logger:         logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create session for channel %s: %w", channelID, err)
		}
		sessions = append(sessions, session)
	}

	registry, err := channel.NewRegistry(&channel.RegistryConfig{
		Sessions: sessions,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create registry: %w", err)
	}

	dispatcher, err := command.NewDispatcher(&command.Config{
		Prefix:    cfg.Prefix,
		Enabled:   cfg.Commands,
		Sessions:  &command.RegistrySessions{Registry: registry},
		Matches:   matchService,
		Messaging: messagingService,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create command dispatcher: %w", err)
	}

	bot, err := discord.New(&discord.Config{
		Client:        client,
		ApplicationID: cfg.ApplicationID,
		GuildID:       cfg.GuildID,
		Dispatcher:    dispatcher,
		Registry:      registry,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create Discord bot: %w", err)
	}

	if err := bot.Start(); err != nil {
		return fmt.Errorf("failed to start Discord bot: %w", err)
	}

	registry.Start(ctx)

	<-ctx.Done()
	logger.Info("shutting down")

	registry.Stop()
	releaseHeld(context.Background(), matchService, logger)

	if err := bot.Stop(); err != nil {
		logger.Warn("failed to stop bot cleanly", zap.Error(err))
	}

	logger.Info("bot has been shut down")
	return nil
}

func releaseHeld(ctx context.Context, matchService match.Service, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, cleanupTimeout)
	defer cancel()

	if _, err := matchService.ReleaseHeld(ctx, &match.ReleaseHeldInput{}); err != nil {
		logger.Error("failed to release held matches", zap.Error(err))
	}
}
