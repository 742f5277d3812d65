package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	"github.com/scorequest/scorequest-backend/api"
	"github.com/scorequest/scorequest-backend/app/modules/leaderboard"
	"github.com/scorequest/scorequest-backend/app/modules/submission"
	submissiondb "github.com/scorequest/scorequest-backend/app/modules/submission/infrastructure/repositories"
	leaderboarddb "github.com/scorequest/scorequest-backend/app/modules/leaderboard/infrastructure/repositories"
	"github.com/scorequest/scorequest-backend/config"
	"github.com/scorequest/scorequest-backend/internal/db/bundb"
	"github.com/scorequest/scorequest-backend/internal/eventbus"
	"github.com/scorequest/scorequest-backend/internal/observability"
)

// App assembles the modules, shared infrastructure, and HTTP surface.
type App struct {
	Config            *config.Config
	Observability     *observability.Observability
	DB                *bun.DB
	EventBus          eventbus.EventBus
	Router            *message.Router
	SubmissionModule  *submission.Module
	LeaderboardModule *leaderboard.Module
	HTTPServer        *api.Server
}

// Initialize wires everything together. The leaderboard module comes up
// first so its queue service can serve as the submission module's recompute
// trigger.
func (app *App) Initialize(ctx context.Context, cfg *config.Config, obs *observability.Observability) error {
	app.Config = cfg
	app.Observability = obs
	logger := obs.Logger

	db, err := bundb.New(ctx, cfg.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.DB = db

	watermillLogger := watermill.NewSlogLogger(logger)

	bus, err := eventbus.NewJetStreamEventBus(cfg.NATS.URL, watermillLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize event bus: %w", err)
	}
	app.EventBus = bus

	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		return fmt.Errorf("failed to create router: %w", err)
	}
	app.Router = router

	submissionRepo := &submissiondb.SubmissionDBImpl{DB: db}
	leaderboardRepo := &leaderboarddb.LeaderboardDBImpl{DB: db}

	leaderboardModule, err := leaderboard.NewLeaderboardModule(ctx, cfg, obs, leaderboardRepo, submissionRepo, bus, router)
	if err != nil {
		return fmt.Errorf("failed to initialize leaderboard module: %w", err)
	}
	app.LeaderboardModule = leaderboardModule

	submissionModule, err := submission.NewSubmissionModule(ctx, cfg, obs, submissionRepo, bus, router, leaderboardModule.QueueService)
	if err != nil {
		return fmt.Errorf("failed to initialize submission module: %w", err)
	}
	app.SubmissionModule = submissionModule

	app.HTTPServer = api.NewServer(cfg, leaderboardModule.LeaderboardService, obs.Registry, logger)

	return nil
}

// Run starts the router, the modules, and the HTTP server, then blocks until
// the context is canceled.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.Router.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorContext(ctx, "Message router stopped", "error", err)
		}
	}()

	wg.Add(1)
	go app.LeaderboardModule.Run(ctx, &wg)

	wg.Add(1)
	go app.SubmissionModule.Run(ctx, &wg)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "HTTP server stopped", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	wg.Wait()
	return nil
}

// Close shuts everything down in reverse dependency order.
func (app *App) Close(ctx context.Context) error {
	logger := app.Observability.Logger

	if app.HTTPServer != nil {
		if err := app.HTTPServer.Shutdown(ctx); err != nil {
			logger.Error("Failed to shut down HTTP server", "error", err)
		}
	}
	if app.SubmissionModule != nil {
		if err := app.SubmissionModule.Close(); err != nil {
			logger.Error("Failed to close submission module", "error", err)
		}
	}
	if app.LeaderboardModule != nil {
		if err := app.LeaderboardModule.Close(); err != nil {
			logger.Error("Failed to close leaderboard module", "error", err)
		}
	}
	if app.Router != nil {
		if err := app.Router.Close(); err != nil {
			logger.Error("Failed to close message router", "error", err)
		}
	}
	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			logger.Error("Failed to close event bus", "error", err)
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}

	logger.Info("Application shut down gracefully")
	return nil
}
