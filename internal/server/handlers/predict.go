package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/vzahanych/rain-prediction-app/internal/features"
	"github.com/vzahanych/rain-prediction-app/internal/server/utils"
	"github.com/vzahanych/rain-prediction-app/internal/service"
)

// Predictor is the part of service.RainService the handlers use.
type Predictor interface {
	Predict(ctx context.Context, vector features.Vector) (service.Result, error)
	Ready() bool
}

const modelUnavailable = "No model is loaded"

type PredictHandler struct {
	predictor Predictor
	logger    *zap.Logger
	zeroFill  bool
}

// NewPredictHandler wires the prediction endpoints. With zeroFill set, absent
// features are sent to the model as 0.0 instead of being rejected.
func NewPredictHandler(predictor Predictor, logger *zap.Logger, zeroFill bool) *PredictHandler {
	return &PredictHandler{
		predictor: predictor,
		logger:    logger,
		zeroFill:  zeroFill,
	}
}

func (h *PredictHandler) ready() bool {
	return h.predictor != nil && h.predictor.Ready()
}

func (h *PredictHandler) vector(raw map[string]float64) features.Vector {
	v := features.Vector(raw)
	if h.zeroFill {
		v = features.ZeroFilled(v)
	}
	return v
}

// PredictJSON handles POST /api/v1/predict.
func (h *PredictHandler) PredictJSON(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	reqLogger := h.logger.With(zap.String("request_id", utils.GetRequestIDFromGinContext(c)))

	if !h.ready() {
		reqLogger.Warn("Prediction requested without a model")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: modelUnavailable,
			Code:  CodeModelUnavailable,
		})
		return
	}

	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		reqLogger.Warn("Invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Code:    CodeInvalidParams,
			Details: err.Error(),
		})
		return
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		reqLogger.Warn("Request validation failed", zap.Int("violations", len(errs)))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    CodeInvalidParams,
			Details: utils.Summary(errs),
		})
		return
	}

	result, err := h.predictor.Predict(ctx, h.vector(req.Features))
	if err != nil {
		status, resp := h.errorResponse(c, err)
		reqLogger.Warn("Prediction rejected", zap.String("code", resp.Code))
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, PredictResponse{
		Prediction: result.Value,
		Input:      result.Input,
	})
}

// errorResponse maps a service error to an HTTP status and body.
func (h *PredictHandler) errorResponse(c *gin.Context, err error) (int, ErrorResponse) {
	span := utils.GetSpanFromGinContext(c)

	var schemaErr *service.SchemaMismatchError
	if errors.As(err, &schemaErr) {
		span.SetAttributes(attribute.String("error.kind", CodeSchemaMismatch))
		return http.StatusBadRequest, ErrorResponse{
			Error:   "Feature vector does not match the model schema",
			Code:    CodeSchemaMismatch,
			Details: err.Error(),
			Missing: schemaErr.Missing,
			Extra:   schemaErr.Extra,
		}
	}

	_ = c.Error(err)
	span.SetAttributes(attribute.String("error.kind", CodeInferenceError))
	return http.StatusInternalServerError, ErrorResponse{
		Error:   "Model inference failed",
		Code:    CodeInferenceError,
		Details: err.Error(),
	}
}

// Features handles GET /api/v1/features.
func (h *PredictHandler) Features(c *gin.Context) {
	c.JSON(http.StatusOK, FeaturesResponse{Features: features.Glossary()})
}

// Explanation handles GET /api/v1/explanation.
func (h *PredictHandler) Explanation(c *gin.Context) {
	c.JSON(http.StatusOK, features.Explain())
}
