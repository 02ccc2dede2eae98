package ml

import (
	"context"
	"fmt"
)

// Prediction is the decoded outcome for one submission.
type Prediction struct {
	ClassID    int      `json:"class_id"`
	Disease    string   `json:"disease"`
	Confidence float64  `json:"confidence"`
	Symptoms   []string `json:"symptoms"`
}

// Predictor runs encode, classify and decode against a shared classifier.
type Predictor struct {
	model Classifier
}

func NewPredictor(model Classifier) *Predictor {
	return &Predictor{model: model}
}

// PredictForm encodes a form submission and classifies it.
func (p *Predictor) PredictForm(ctx context.Context, form FieldGetter) (*Prediction, error) {
	return p.PredictVector(ctx, EncodeSymptoms(form))
}

// PredictVector classifies an already encoded vector. Inference errors are returned as is.
func (p *Predictor) PredictVector(ctx context.Context, vector FeatureVector) (*Prediction, error) {
	if p == nil || p.model == nil {
		return nil, ErrModelNotLoaded
	}
	classID, confidence, err := p.model.Predict(ctx, vector.Float64s())
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	return &Prediction{
		ClassID:    classID,
		Disease:    DiseaseName(classID),
		Confidence: confidence,
		Symptoms:   vector.Present(),
	}, nil
}
