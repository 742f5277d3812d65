package submissionrouter

import (
	"context"
	"log/slog"
	"os"

	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"

	submissionevents "github.com/scorequest/scorequest-backend/app/modules/submission/domain/events"
	submissionhandlers "github.com/scorequest/scorequest-backend/app/modules/submission/infrastructure/handlers"
	"github.com/scorequest/scorequest-backend/internal/eventbus"
)

const (
	TestEnvironmentFlag  = "APP_ENV"
	TestEnvironmentValue = "test"
)

// SubmissionRouter binds the submission command topics to their handlers.
type SubmissionRouter struct {
	logger             *slog.Logger
	Router             *message.Router
	subscriber         eventbus.EventBus
	metricsBuilder     *metrics.PrometheusMetricsBuilder
	prometheusRegistry *prometheus.Registry
	metricsEnabled     bool
}

// NewSubmissionRouter creates a new instance of the router.
func NewSubmissionRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	prometheusRegistry *prometheus.Registry,
) *SubmissionRouter {
	inTestEnv := os.Getenv(TestEnvironmentFlag) == TestEnvironmentValue

	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil && !inTestEnv {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "", "")
		metricsBuilder = &builder
	}

	return &SubmissionRouter{
		logger:             logger,
		Router:             router,
		subscriber:         subscriber,
		metricsBuilder:     metricsBuilder,
		prometheusRegistry: prometheusRegistry,
		metricsEnabled:     prometheusRegistry != nil && !inTestEnv,
	}
}

// Configure sets up the middlewares and registers all module-specific handlers.
func (r *SubmissionRouter) Configure(routerCtx context.Context, handlers submissionhandlers.Handlers) error {
	if r.metricsEnabled && r.metricsBuilder != nil {
		r.logger.Info("Adding Prometheus router metrics middleware for Submission")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
	)

	return r.RegisterHandlers(routerCtx, handlers)
}

// RegisterHandlers binds command topics to their handler logic.
func (r *SubmissionRouter) RegisterHandlers(ctx context.Context, handlers submissionhandlers.Handlers) error {
	r.logger.InfoContext(ctx, "Registering Submission Command Handlers")

	r.Router.AddNoPublisherHandler(
		"submission.submit",
		submissionevents.SubmitScoreRequested,
		r.subscriber,
		handlers.HandleSubmitScoreRequested,
	)
	r.Router.AddNoPublisherHandler(
		"submission.review",
		submissionevents.ReviewRequested,
		r.subscriber,
		handlers.HandleReviewRequested,
	)
	r.Router.AddNoPublisherHandler(
		"submission.withdraw",
		submissionevents.WithdrawRequested,
		r.subscriber,
		handlers.HandleWithdrawRequested,
	)

	return nil
}

// Close stops the router and cleans up resources.
func (r *SubmissionRouter) Close() error {
	return r.Router.Close()
}
