package leaderboardrouter

import (
	"context"
	"log/slog"
	"os"

	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"

	leaderboardevents "github.com/scorequest/scorequest-backend/app/modules/leaderboard/domain/events"
	leaderboardhandlers "github.com/scorequest/scorequest-backend/app/modules/leaderboard/infrastructure/handlers"
	submissionevents "github.com/scorequest/scorequest-backend/app/modules/submission/domain/events"
	"github.com/scorequest/scorequest-backend/internal/eventbus"
)

const (
	TestEnvironmentFlag  = "APP_ENV"
	TestEnvironmentValue = "test"
)

// LeaderboardRouter binds leaderboard topics and the submission changefeed
// to their handlers.
type LeaderboardRouter struct {
	logger             *slog.Logger
	Router             *message.Router
	subscriber         eventbus.EventBus
	publisher          eventbus.EventBus
	metricsBuilder     *metrics.PrometheusMetricsBuilder
	prometheusRegistry *prometheus.Registry
	metricsEnabled     bool
}

// NewLeaderboardRouter creates a new instance of the router.
func NewLeaderboardRouter(
	logger *slog.Logger,
	router *message.Router,
	eventBus eventbus.EventBus,
	prometheusRegistry *prometheus.Registry,
) *LeaderboardRouter {
	inTestEnv := os.Getenv(TestEnvironmentFlag) == TestEnvironmentValue

	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil && !inTestEnv {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "", "")
		metricsBuilder = &builder
	}

	return &LeaderboardRouter{
		logger:             logger,
		Router:             router,
		subscriber:         eventBus,
		publisher:          eventBus,
		metricsBuilder:     metricsBuilder,
		prometheusRegistry: prometheusRegistry,
		metricsEnabled:     prometheusRegistry != nil && !inTestEnv,
	}
}

// Configure sets up the middlewares and registers all module-specific handlers.
func (r *LeaderboardRouter) Configure(routerCtx context.Context, handlers leaderboardhandlers.Handlers) error {
	if r.metricsEnabled && r.metricsBuilder != nil {
		r.logger.Info("Adding Prometheus router metrics middleware for Leaderboard")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
	)

	return r.RegisterHandlers(routerCtx, handlers)
}

// RegisterHandlers binds topics to their handler logic.
func (r *LeaderboardRouter) RegisterHandlers(ctx context.Context, handlers leaderboardhandlers.Handlers) error {
	r.logger.InfoContext(ctx, "Registering Leaderboard Handlers")

	r.Router.AddNoPublisherHandler(
		"leaderboard.recompute",
		leaderboardevents.RecomputeRequested,
		r.subscriber,
		handlers.HandleRecomputeRequested,
	)

	// Submission changefeed: every write to an event's submissions queues a
	// recompute for that event.
	r.Router.AddNoPublisherHandler(
		"leaderboard.on_submission_created",
		submissionevents.SubmissionCreated,
		r.subscriber,
		handlers.HandleSubmissionChanged,
	)
	r.Router.AddNoPublisherHandler(
		"leaderboard.on_submission_reviewed",
		submissionevents.SubmissionReviewed,
		r.subscriber,
		handlers.HandleSubmissionChanged,
	)
	r.Router.AddNoPublisherHandler(
		"leaderboard.on_submission_withdrawn",
		submissionevents.SubmissionWithdrawn,
		r.subscriber,
		handlers.HandleSubmissionChanged,
	)

	r.Router.AddHandler(
		"leaderboard.get_standings",
		leaderboardevents.GetStandingsRequested,
		r.subscriber,
		leaderboardevents.GetStandingsResponse,
		r.publisher,
		handlers.HandleGetStandingsRequested,
	)

	return nil
}

// Close stops the router and cleans up resources.
func (r *LeaderboardRouter) Close() error {
	return r.Router.Close()
}
