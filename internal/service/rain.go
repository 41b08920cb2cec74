package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/vzahanych/rain-prediction-app/internal/features"
	"github.com/vzahanych/rain-prediction-app/internal/model"
	"github.com/vzahanych/rain-prediction-app/pkg/telemetry"
)

// Prediction outcomes reported to the MetricsRecorder.
const (
	OutcomeSuccess        = "success"
	OutcomeSchemaMismatch = "schema_mismatch"
	OutcomeInferenceError = "inference_error"
)

var (
	errNonFinite      = errors.New("estimator returned a non-finite value")
	errNonFiniteInput = errors.New("input contains NaN or infinity")
)

// MetricsRecorder receives one observation per prediction call.
type MetricsRecorder interface {
	RecordPrediction(outcome string, duration time.Duration)
}

// Result is the rain estimate together with the input row it was computed from.
type Result struct {
	Value float64          `json:"prediction"`
	Input []features.Value `json:"input"`
}

// RainService validates feature vectors and runs them through the estimator.
// It holds no mutable state, so one instance serves every request.
type RainService struct {
	estimator Estimator
	logger    *zap.Logger
	tele      *telemetry.Telemetry
	metrics   MetricsRecorder
}

func NewRainService(estimator Estimator, logger *zap.Logger, tele *telemetry.Telemetry) *RainService {
	return &RainService{
		estimator: estimator,
		logger:    logger,
		tele:      tele,
	}
}

// LoadModel reads the forest artifact at path. Failures are *model.ArtifactLoadError.
func LoadModel(path string) (*model.Forest, error) {
	return model.Load(path)
}

// SetMetricsRecorder sets the metrics recorder for the service
func (s *RainService) SetMetricsRecorder(metrics MetricsRecorder) {
	s.metrics = metrics
}

// Ready reports whether an estimator is wired in.
func (s *RainService) Ready() bool {
	return s != nil && s.estimator != nil
}

// Predict returns the estimated rain amount for vector. A vector that lacks
// a feature or carries an unknown one is rejected with *SchemaMismatchError.
// Estimator failures surface as *InferenceError. NaN or infinite values on
// either side of the estimator are inference errors too; bad input is caught
// before the estimator runs. Feature values are never logged.
func (s *RainService) Predict(ctx context.Context, vector features.Vector) (Result, error) {
	tracer := s.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "service.Predict")
	defer span.End()

	start := time.Now()

	values, missing, extra := vector.Ordered()
	if len(missing) > 0 || len(extra) > 0 {
		err := &SchemaMismatchError{Missing: missing, Extra: extra}
		span.SetAttributes(
			attribute.Int("missing_features", len(missing)),
			attribute.Int("extra_features", len(extra)),
		)
		span.SetStatus(codes.Error, err.Error())
		s.observe(OutcomeSchemaMismatch, start)
		s.logger.Debug("Rejected feature vector",
			zap.Strings("missing", missing),
			zap.Strings("extra", extra))
		return Result{}, err
	}

	if bad := nonFinite(values); len(bad) > 0 {
		err := fmt.Errorf("%w: %s", errNonFiniteInput, strings.Join(bad, ", "))
		s.tele.RecordError(ctx, err, map[string]interface{}{"error.kind": "non_finite_input"})
		span.SetStatus(codes.Error, err.Error())
		s.observe(OutcomeInferenceError, start)
		s.logger.Debug("Rejected non-finite input", zap.Strings("features", bad))
		return Result{}, &InferenceError{Err: err}
	}

	value, err := s.estimator.Predict(values)
	if err == nil && (math.IsNaN(value) || math.IsInf(value, 0)) {
		err = fmt.Errorf("%w: %v", errNonFinite, value)
	}
	if err != nil {
		s.tele.RecordError(ctx, err, map[string]interface{}{"error.kind": "estimator"})
		span.SetStatus(codes.Error, err.Error())
		s.observe(OutcomeInferenceError, start)
		s.logger.Error("Inference failed", zap.Error(err))
		return Result{}, &InferenceError{Err: err}
	}

	span.SetAttributes(attribute.Bool("success", true))
	s.observe(OutcomeSuccess, start)
	s.logger.Debug("Prediction completed", zap.Duration("latency", time.Since(start)))

	return Result{Value: value, Input: vector.Rows()}, nil
}

// nonFinite names the features whose value is NaN or infinite.
func nonFinite(values []float64) []string {
	var bad []string
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			bad = append(bad, features.Names()[i])
		}
	}
	return bad
}

func (s *RainService) observe(outcome string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordPrediction(outcome, time.Since(start))
	}
}
