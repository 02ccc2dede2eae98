package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Garima-149/disease-prediction2/ml"
)

type apiHandlers struct {
	deps   Dependencies
	strict bool
}

// PredictRequest is the JSON body of POST /api/predict. Symptoms follows the
// form encoding; Present lists symptom names that are present.
type PredictRequest struct {
	Symptoms map[string]string `json:"symptoms"`
	Present  []string          `json:"present"`
}

// ErrorResponse standard error body
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (h *apiHandlers) register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("GET /api/schema", h.handleSchema)
	mux.HandleFunc("GET /api/labels", h.handleLabels)
	mux.HandleFunc("POST /api/predict", h.handlePredict)
}

func (h *apiHandlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"model":  h.deps.ModelType,
	})
}

func (h *apiHandlers) handleSchema(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"feature_count": ml.FeatureCount,
		"features":      ml.FeatureNames(),
	})
}

func (h *apiHandlers) handleLabels(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"labels":  ml.Labels(),
		"unknown": ml.UnknownDisease,
	})
}

func (h *apiHandlers) handlePredict(w http.ResponseWriter, r *http.Request) {
	logger := h.deps.Logger.With(zap.String("request_id", GetRequestID(r.Context())))

	var req PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	answers := ml.Answers(req.Symptoms)
	if h.strict {
		var fieldsErr *ml.InvalidFieldsError
		if err := ml.ValidateSymptoms(answers); errors.As(err, &fieldsErr) {
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid symptoms", Details: err.Error(), Fields: fieldsErr.Invalid})
			return
		}
	}

	vector := ml.EncodeSymptoms(answers)
	present, err := ml.EncodePresent(req.Present)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid symptoms", Details: err.Error()})
		return
	}
	for i, bit := range present {
		vector[i] |= bit
	}

	prediction, err := h.deps.Predictor.PredictVector(r.Context(), vector)
	if err != nil {
		logger.Error("prediction failed", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "prediction failed"})
		return
	}
	respondJSON(w, http.StatusOK, prediction)
}

// respondJSON writes data as JSON with status
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
