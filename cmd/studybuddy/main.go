package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/studyhall-labs/studybuddy/internal/api"
	"github.com/studyhall-labs/studybuddy/internal/config"
	"github.com/studyhall-labs/studybuddy/internal/events"
	"github.com/studyhall-labs/studybuddy/internal/kv"
	"github.com/studyhall-labs/studybuddy/internal/message"
	"github.com/studyhall-labs/studybuddy/internal/store"
	"github.com/studyhall-labs/studybuddy/internal/tutor"
	"github.com/studyhall-labs/studybuddy/internal/watch"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("studybuddy starting", "port", cfg.Port, "backend", cfg.StorageBackend)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Key-value backend
	kvStore, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open storage backend", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	defer closeStore()
	slog.Info("storage ready", "backend", cfg.StorageBackend)

	// Stable local identity, minted on first run
	selfID, err := store.EnsureIdentity(ctx, kvStore)
	if err != nil {
		slog.Error("failed to establish identity", "error", err)
		os.Exit(1)
	}
	slog.Info("identity established", "user_id", selfID)

	msgLog := store.NewLog(kvStore, selfID, slog.Default())

	// Topic explainer
	explainer := tutor.NewExplainer(tutor.NewWikiClient(cfg.WikipediaURL), slog.Default())

	// NATS (optional — everything works without it, just no event mirror)
	var announcer events.Announcer
	var natsClient *events.Client
	if cfg.NatsURL != "" {
		natsClient, err = events.NewClient(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer natsClient.Close()
		announcer = natsClient
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured — running without event mirror")
	}

	// Conversation refresh loop
	watcher := watch.New(msgLog, time.Duration(cfg.PollIntervalSeconds)*time.Second,
		func(partnerID string, msgs []message.Message) {
			slog.Debug("conversation view refreshed", "partner", partnerID, "messages", len(msgs))
		}, slog.Default())
	go watcher.Run(ctx)

	// External appends (a second instance sharing the backend) trigger a refresh
	if natsClient != nil {
		if err := natsClient.Subscribe(events.SubjectAppended, func(_ string, _ []byte) {
			watcher.Refresh()
		}); err != nil {
			slog.Error("failed to subscribe to append events", "error", err)
			os.Exit(1)
		}
	}

	// HTTP API
	srv := api.NewServer(cfg.Port, api.Deps{
		Log:       msgLog,
		Explainer: explainer,
		Announcer: announcer,
		Watcher:   watcher,
	}, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("studybuddy ready", "port", cfg.Port, "user_id", selfID)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("studybuddy stopped")
}

// openStore builds the configured kv backend and returns it with its
// cleanup function.
func openStore(ctx context.Context, cfg config.Config) (kv.Store, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return kv.NewMemory(), func() {}, nil
	case config.BackendRedis:
		r, err := kv.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return r, func() { _ = r.Close() }, nil
	case config.BackendPostgres:
		p, err := kv.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	default:
		f, err := kv.NewFile(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return f, func() {}, nil
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
