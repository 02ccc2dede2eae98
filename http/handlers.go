package http

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Garima-149/disease-prediction2/ml"
)

type pageHandlers struct {
	deps   Dependencies
	strict bool
}

type symptomField struct {
	Name    string
	Checked bool
}

type pageData struct {
	Title      string
	Symptoms   []symptomField
	Prediction *ml.Prediction
	Error      string
	Invalid    map[string]string
}

func (h *pageHandlers) register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.page("index.html", "Home"))
	mux.HandleFunc("GET /about", h.page("about.html", "About"))
	mux.HandleFunc("GET /contact_us", h.page("contact_us.html", "Contact Us"))
	mux.HandleFunc("GET /predict", h.handlePredictForm)
	mux.HandleFunc("POST /predict", h.handlePredictSubmit)
}

func (h *pageHandlers) page(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, http.StatusOK, name, pageData{Title: title})
	}
}

func (h *pageHandlers) handlePredictForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "predict.html", pageData{
		Title:    "Predict",
		Symptoms: symptomFields(nil),
	})
}

func (h *pageHandlers) handlePredictSubmit(w http.ResponseWriter, r *http.Request) {
	logger := h.deps.Logger.With(zap.String("request_id", GetRequestID(r.Context())))

	if err := r.ParseForm(); err != nil {
		if h.strict {
			h.render(w, r, http.StatusBadRequest, "predict.html", pageData{
				Title:    "Predict",
				Symptoms: symptomFields(nil),
				Error:    "The form could not be read. Please submit it again.",
			})
			return
		}
		// Unreadable input encodes as all symptoms absent.
		logger.Warn("form parse failed, encoding as empty", zap.Error(err))
	}

	if h.strict {
		var fieldsErr *ml.InvalidFieldsError
		if err := ml.ValidateSymptoms(r.PostForm); errors.As(err, &fieldsErr) {
			h.render(w, r, http.StatusBadRequest, "predict.html", pageData{
				Title:    "Predict",
				Symptoms: symptomFields(r.PostForm),
				Error:    "Answer each symptom with yes or no.",
				Invalid:  fieldsErr.Invalid,
			})
			return
		}
	}

	prediction, err := h.deps.Predictor.PredictForm(r.Context(), r.PostForm)
	if err != nil {
		logger.Error("prediction failed", zap.Error(err))
		h.render(w, r, http.StatusInternalServerError, "error.html", pageData{
			Title: "Error",
			Error: "The prediction could not be made.",
		})
		return
	}
	logger.Debug("prediction",
		zap.Int("class_id", prediction.ClassID),
		zap.String("disease", prediction.Disease),
		zap.Strings("symptoms", prediction.Symptoms),
	)

	h.render(w, r, http.StatusOK, "result.html", pageData{
		Title:      "Result",
		Prediction: prediction,
	})
}

func (h *pageHandlers) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	if err := h.deps.Renderer.Render(w, status, name, data); err != nil {
		h.deps.Logger.Error("render failed",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.String("template", name),
			zap.Error(err),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// symptomFields lists the schema for the form, pre-checking "yes" answers from form.
func symptomFields(form ml.FieldGetter) []symptomField {
	names := ml.FeatureNames()
	fields := make([]symptomField, len(names))
	for i, name := range names {
		fields[i] = symptomField{Name: name}
		if form != nil && form.Get(name) == "yes" {
			fields[i].Checked = true
		}
	}
	return fields
}
