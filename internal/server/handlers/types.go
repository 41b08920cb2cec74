package handlers

import "github.com/vzahanych/rain-prediction-app/internal/features"

// Error codes returned in ErrorResponse.Code.
const (
	CodeInvalidParams    = "INVALID_PARAMS"
	CodeSchemaMismatch   = "SCHEMA_MISMATCH"
	CodeInferenceError   = "INFERENCE_ERROR"
	CodeModelUnavailable = "MODEL_UNAVAILABLE"
)

// PredictRequest is the JSON body of POST /api/v1/predict.
type PredictRequest struct {
	Features map[string]float64 `json:"features" validate:"required,dive,finite"`
}

// PredictResponse carries the estimate and the ordered input echo.
type PredictResponse struct {
	Prediction float64          `json:"prediction"`
	Input      []features.Value `json:"input"`
}

type FeaturesResponse struct {
	Features []features.Entry `json:"features"`
}

// ErrorResponse represents an error response with validation
type ErrorResponse struct {
	Error   string   `json:"error" validate:"required,min=1,max=500"`
	Code    string   `json:"code,omitempty" validate:"omitempty,min=1,max=50"`
	Details string   `json:"details,omitempty" validate:"omitempty,max=1000"`
	Missing []string `json:"missing,omitempty"`
	Extra   []string `json:"extra,omitempty"`
}

// HealthResponse represents health check response with validation
type HealthResponse struct {
	Status    string `json:"status" validate:"required,oneof=ok alive ready unavailable"`
	Uptime    string `json:"uptime" validate:"required"`
	Timestamp string `json:"timestamp,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}
