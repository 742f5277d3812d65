package submission

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"

	submissionservice "github.com/scorequest/scorequest-backend/app/modules/submission/application"
	submissionhandlers "github.com/scorequest/scorequest-backend/app/modules/submission/infrastructure/handlers"
	submissiondb "github.com/scorequest/scorequest-backend/app/modules/submission/infrastructure/repositories"
	submissionrouter "github.com/scorequest/scorequest-backend/app/modules/submission/infrastructure/router"
	"github.com/scorequest/scorequest-backend/config"
	"github.com/scorequest/scorequest-backend/internal/eventbus"
	"github.com/scorequest/scorequest-backend/internal/observability"
)

// Module represents the submission module.
type Module struct {
	EventBus          eventbus.EventBus
	SubmissionService submissionservice.Service
	SubmissionRouter  *submissionrouter.SubmissionRouter
	config            *config.Config
	observability     *observability.Observability
	cancelFunc        context.CancelFunc
}

// NewSubmissionModule creates a new instance of the Submission module. The
// recompute trigger comes from the leaderboard module.
func NewSubmissionModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	submissionDB submissiondb.SubmissionDB,
	eventBus eventbus.EventBus,
	router *message.Router,
	trigger submissionservice.RecomputeTrigger,
) (*Module, error) {
	logger := obs.Logger

	logger.InfoContext(ctx, "submission.NewSubmissionModule called")

	submissionService := submissionservice.NewSubmissionService(
		submissionDB,
		eventBus,
		trigger,
		logger,
		obs.Metrics,
		obs.Tracer,
	)

	handlers := submissionhandlers.NewSubmissionHandlers(submissionService, logger)

	submissionRouter := submissionrouter.NewSubmissionRouter(logger, router, eventBus, obs.Registry)
	if err := submissionRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure submission router: %w", err)
	}

	return &Module{
		EventBus:          eventBus,
		SubmissionService: submissionService,
		SubmissionRouter:  submissionRouter,
		config:            cfg,
		observability:     obs,
	}, nil
}

// Run keeps the module alive until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting submission module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Submission module goroutine stopped")
}

// Close stops the submission module and cleans up resources.
func (m *Module) Close() error {
	m.observability.Logger.Info("Stopping submission module")
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
