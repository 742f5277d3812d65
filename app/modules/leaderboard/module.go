package leaderboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	leaderboardservice "github.com/scorequest/scorequest-backend/app/modules/leaderboard/application"
	leaderboardhandlers "github.com/scorequest/scorequest-backend/app/modules/leaderboard/infrastructure/handlers"
	leaderboardqueue "github.com/scorequest/scorequest-backend/app/modules/leaderboard/infrastructure/queue"
	leaderboarddb "github.com/scorequest/scorequest-backend/app/modules/leaderboard/infrastructure/repositories"
	leaderboardrouter "github.com/scorequest/scorequest-backend/app/modules/leaderboard/infrastructure/router"
	"github.com/scorequest/scorequest-backend/config"
	"github.com/scorequest/scorequest-backend/internal/eventbus"
	"github.com/scorequest/scorequest-backend/internal/observability"
)

const queueStopTimeout = 10 * time.Second

// Module represents the leaderboard module.
type Module struct {
	EventBus           eventbus.EventBus
	LeaderboardService leaderboardservice.Service
	QueueService       *leaderboardqueue.QueueService
	LeaderboardRouter  *leaderboardrouter.LeaderboardRouter
	config             *config.Config
	observability      *observability.Observability
	cancelFunc         context.CancelFunc
}

// NewLeaderboardModule creates a new instance of the Leaderboard module. The
// returned module's QueueService doubles as the submission module's
// recompute trigger.
func NewLeaderboardModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	leaderboardDB leaderboarddb.LeaderboardDB,
	submissions leaderboardservice.SubmissionSource,
	eventBus eventbus.EventBus,
	router *message.Router,
) (*Module, error) {
	logger := obs.Logger

	logger.InfoContext(ctx, "leaderboard.NewLeaderboardModule called")

	leaderboardService := leaderboardservice.NewLeaderboardService(
		leaderboardDB,
		submissions,
		eventBus,
		logger,
		obs.Metrics,
		obs.Tracer,
	)

	queueService, err := leaderboardqueue.NewQueueService(ctx, cfg.Postgres.DSN, leaderboardService, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create leaderboard queue service: %w", err)
	}

	handlers := leaderboardhandlers.NewLeaderboardHandlers(leaderboardService, queueService, logger)

	leaderboardRouter := leaderboardrouter.NewLeaderboardRouter(logger, router, eventBus, obs.Registry)
	if err := leaderboardRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure leaderboard router: %w", err)
	}

	return &Module{
		EventBus:           eventBus,
		LeaderboardService: leaderboardService,
		QueueService:       queueService,
		LeaderboardRouter:  leaderboardRouter,
		config:             cfg,
		observability:      obs,
	}, nil
}

// Run starts the recompute queue and keeps the module alive until the
// context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting leaderboard module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.QueueService.Start(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to start recompute queue", "error", err)
		return
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Leaderboard module goroutine stopped")
}

// Close stops the leaderboard module and cleans up resources.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping leaderboard module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), queueStopTimeout)
	defer cancel()
	if err := m.QueueService.Stop(stopCtx); err != nil {
		logger.Error("Failed to stop recompute queue cleanly", "error", err)
	}
	return nil
}
