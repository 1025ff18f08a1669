package inference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/quake-severity-service/internal/artifact"
	"github.com/couchcryptid/quake-severity-service/internal/domain"
	"github.com/couchcryptid/quake-severity-service/internal/observability"
)

// Publisher forwards scored assessments downstream.
type Publisher interface {
	Publish(ctx context.Context, a domain.Assessment) error
}

// Service scores form submissions: it aligns a record onto the training
// columns, runs the classifier and enriches the result. It holds no mutable
// state of its own and is safe for concurrent use.
type Service struct {
	bundle    *artifact.Bundle
	geocoder  domain.Geocoder
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewService creates a Service. Pass a nil geocoder or publisher to disable
// enrichment or publishing.
func NewService(bundle *artifact.Bundle, geocoder domain.Geocoder, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	if bundle != nil {
		metrics.ArtifactsLoaded.Set(1)
	}
	return &Service{
		bundle:    bundle,
		geocoder:  geocoder,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once the artifact bundle is loaded.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.bundle == nil {
		return errors.New("model artifacts are not loaded")
	}
	return nil
}

// Assess validates, adapts and scores one record. Errors wrap one of
// domain.ErrOutOfRange, domain.ErrArtifactLoad, domain.ErrShapeMismatch or
// domain.ErrInvalidDistribution. Enrichment and publishing failures never
// fail the assessment.
func (s *Service) Assess(ctx context.Context, raw domain.RawRecord) (domain.Assessment, error) {
	if err := raw.Validate(); err != nil {
		s.metrics.PredictionErrors.WithLabelValues(errorKind(err)).Inc()
		return domain.Assessment{}, err
	}
	if s.bundle == nil {
		s.metrics.PredictionErrors.WithLabelValues(errorKind(domain.ErrArtifactLoad)).Inc()
		return domain.Assessment{}, fmt.Errorf("%w: no model artifacts loaded", domain.ErrArtifactLoad)
	}

	start := time.Now()
	features := domain.Adapt(raw, s.bundle.Columns)
	if len(features.UnknownCategories) > 0 {
		s.metrics.UnknownCategories.Inc()
		s.logger.Debug("unknown category dropped",
			"location", raw.Location,
			"columns", features.UnknownCategories,
		)
	}

	result, err := domain.Predict(features, s.bundle.Classifier)
	if err != nil {
		s.metrics.PredictionErrors.WithLabelValues(errorKind(err)).Inc()
		s.logger.Error("prediction failed",
			"error", err,
			"model_path", s.bundle.ModelPath,
			"columns_path", s.bundle.ColumnsPath,
		)
		return domain.Assessment{}, err
	}
	s.metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	s.metrics.Predictions.WithLabelValues(result.Label).Inc()

	a := domain.NewAssessment(raw, result)
	a = domain.EnrichWithPlace(ctx, a, s.geocoder, s.logger)

	s.logger.Info("assessment scored",
		"assessment_id", a.ID,
		"label", result.Label,
		"magnitude", raw.Magnitude,
		"depth", raw.Depth,
		"location", raw.Location,
	)

	s.publish(ctx, a)
	return a, nil
}

// publish forwards the assessment if a publisher is configured. Failures are
// logged and counted; the request still succeeds.
func (s *Service) publish(ctx context.Context, a domain.Assessment) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, a); err != nil {
		s.metrics.Published.WithLabelValues("error").Inc()
		s.logger.Warn("publish assessment failed", "assessment_id", a.ID, "error", err)
		return
	}
	s.metrics.Published.WithLabelValues("success").Inc()
}

// errorKind maps an assessment error to its metrics label.
func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrOutOfRange):
		return "invalid_input"
	case errors.Is(err, domain.ErrShapeMismatch):
		return "shape_mismatch"
	case errors.Is(err, domain.ErrInvalidDistribution):
		return "invalid_distribution"
	case errors.Is(err, domain.ErrArtifactLoad):
		return "artifact"
	default:
		return "internal"
	}
}
