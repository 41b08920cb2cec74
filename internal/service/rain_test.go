package service

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vzahanych/rain-prediction-app/internal/features"
	"github.com/vzahanych/rain-prediction-app/internal/model"
	"github.com/vzahanych/rain-prediction-app/pkg/telemetry"
)

type stubEstimator struct {
	value float64
	err   error
	calls int
	got   []float64
}

func (s *stubEstimator) Predict(x []float64) (float64, error) {
	s.calls++
	s.got = append([]float64(nil), x...)
	return s.value, s.err
}

type recordedPrediction struct {
	outcome string
}

type stubRecorder struct {
	records []recordedPrediction
}

func (r *stubRecorder) RecordPrediction(outcome string, _ time.Duration) {
	r.records = append(r.records, recordedPrediction{outcome: outcome})
}

func newTestService(t *testing.T, est Estimator) (*RainService, *stubRecorder) {
	t.Helper()
	svc := NewRainService(est, zaptest.NewLogger(t), &telemetry.Telemetry{})
	rec := &stubRecorder{}
	svc.SetMetricsRecorder(rec)
	return svc, rec
}

func sequentialVector() features.Vector {
	v := make(features.Vector, features.Count)
	for i, name := range features.Names() {
		v[name] = float64(i)
	}
	return v
}

func TestPredict_PassesOrderedRow(t *testing.T) {
	est := &stubEstimator{value: 3.25}
	svc, rec := newTestService(t, est)

	res, err := svc.Predict(context.Background(), sequentialVector())
	require.NoError(t, err)

	assert.Equal(t, 3.25, res.Value)
	assert.Equal(t, 1, est.calls)
	require.Len(t, est.got, features.Count)
	for i := range est.got {
		assert.Equal(t, float64(i), est.got[i])
	}
	require.Len(t, res.Input, features.Count)
	assert.Equal(t, features.Value{Name: "slp", Value: 9}, res.Input[9])
	assert.Equal(t, []recordedPrediction{{OutcomeSuccess}}, rec.records)
}

func TestPredict_MissingFeature(t *testing.T) {
	est := &stubEstimator{value: 1}
	svc, rec := newTestService(t, est)

	v := features.Zero()
	delete(v, "slp")

	_, err := svc.Predict(context.Background(), v)

	var schemaErr *SchemaMismatchError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"slp"}, schemaErr.Missing)
	assert.Empty(t, schemaErr.Extra)
	assert.Contains(t, err.Error(), "missing slp")
	assert.Zero(t, est.calls, "estimator must not run on a partial vector")
	assert.Equal(t, []recordedPrediction{{OutcomeSchemaMismatch}}, rec.records)
}

func TestPredict_ExtraFeature(t *testing.T) {
	est := &stubEstimator{value: 1}
	svc, _ := newTestService(t, est)

	v := features.Zero()
	v["dewpoint"] = 12

	_, err := svc.Predict(context.Background(), v)

	var schemaErr *SchemaMismatchError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"dewpoint"}, schemaErr.Extra)
	assert.Contains(t, err.Error(), "unexpected dewpoint")
	assert.Zero(t, est.calls)
}

func TestPredict_EstimatorError(t *testing.T) {
	cause := errors.New("array shape (1, 18) incompatible")
	svc, rec := newTestService(t, &stubEstimator{err: cause})

	_, err := svc.Predict(context.Background(), features.Zero())

	var infErr *InferenceError
	require.ErrorAs(t, err, &infErr)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "array shape")
	assert.Equal(t, []recordedPrediction{{OutcomeInferenceError}}, rec.records)
}

func TestPredict_NonFiniteOutput(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		svc, _ := newTestService(t, &stubEstimator{value: v})

		_, err := svc.Predict(context.Background(), features.Zero())

		var infErr *InferenceError
		require.ErrorAs(t, err, &infErr)
		assert.ErrorIs(t, err, errNonFinite)
	}
}

func TestPredict_NonFiniteInput(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		est := &stubEstimator{value: 1}
		svc, rec := newTestService(t, est)

		vec := features.Zero()
		vec["slp"] = v
		_, err := svc.Predict(context.Background(), vec)

		var infErr *InferenceError
		require.ErrorAs(t, err, &infErr)
		assert.ErrorIs(t, err, errNonFiniteInput)
		assert.Contains(t, err.Error(), "slp")
		assert.Zero(t, est.calls)
		assert.Equal(t, []recordedPrediction{{OutcomeInferenceError}}, rec.records)
	}
}

func TestPredict_WithoutMetricsRecorder(t *testing.T) {
	svc := NewRainService(&stubEstimator{value: 2}, zaptest.NewLogger(t), nil)

	res, err := svc.Predict(context.Background(), features.Zero())

	require.NoError(t, err)
	assert.Equal(t, 2.0, res.Value)
}

func TestPredict_FixtureForest(t *testing.T) {
	forest, err := LoadModel(filepath.Join("..", "model", "testdata", "forest.json"))
	require.NoError(t, err)
	svc, _ := newTestService(t, forest)

	zero, err := svc.Predict(context.Background(), features.Zero())
	require.NoError(t, err)
	assert.False(t, math.IsNaN(zero.Value) || math.IsInf(zero.Value, 0))
	assert.InDelta(t, 2.5, zero.Value, 1e-12)

	v := features.Zero()
	v["slp"] = 1013
	v["rhum"] = 80
	v["pr_wtr"] = 40

	first, err := svc.Predict(context.Background(), v)
	require.NoError(t, err)
	second, err := svc.Predict(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, first.Value, second.Value)
	assert.InDelta(t, 4.0, first.Value, 1e-12)
}

func TestLoadModel_Missing(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "random_forest_model.pkl"))

	var loadErr *model.ArtifactLoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestReady(t *testing.T) {
	var nilSvc *RainService
	assert.False(t, nilSvc.Ready())
	assert.False(t, NewRainService(nil, zaptest.NewLogger(t), nil).Ready())
	assert.True(t, NewRainService(&stubEstimator{}, zaptest.NewLogger(t), nil).Ready())
}
