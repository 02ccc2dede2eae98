package ml

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrModelNotLoaded   = errors.New("model not loaded")
	ErrSchemaMismatch   = errors.New("model feature schema mismatch")
	ErrUnsupportedModel = errors.New("unsupported model type")
	ErrInvalidArtifact  = errors.New("invalid model artifact")
)

// Model types accepted by LoadModel.
const (
	TypeDecisionTree = "decision_tree"
	TypeRandomForest = "random_forest"
	TypeRemote       = "remote"
)

// Classifier is a trained model answering one feature vector with one class id.
// Implementations must be safe for concurrent use once constructed.
type Classifier interface {
	Predict(ctx context.Context, features []float64) (classID int, confidence float64, err error)
}

// TypeOf reports the model type behind c, looking through the prediction cache.
func TypeOf(c Classifier) string {
	switch m := c.(type) {
	case *CachedClassifier:
		return TypeOf(m.next)
	case *DecisionTree:
		return TypeDecisionTree
	case *RandomForest:
		return TypeRandomForest
	case *RemoteModel:
		return TypeRemote
	}
	return ""
}

// Artifact is the JSON document LoadModel reads for local models. Nodes is
// set for decision_tree and Trees for random_forest.
type Artifact struct {
	ModelType    string         `json:"model_type"`
	FeatureNames []string       `json:"feature_names,omitempty"`
	NFeatures    int            `json:"n_features,omitempty"`
	NClasses     int            `json:"n_classes,omitempty"`
	Nodes        []TreeNode     `json:"nodes,omitempty"`
	Trees        []ArtifactTree `json:"trees,omitempty"`
}

type ArtifactTree struct {
	Nodes []TreeNode `json:"nodes"`
}

func (h Artifact) check() error {
	if err := CheckSchema(h.FeatureNames); err != nil {
		return err
	}
	if h.NFeatures != 0 && h.NFeatures != FeatureCount {
		return fmt.Errorf("%w: artifact has n_features=%d, want %d", ErrSchemaMismatch, h.NFeatures, FeatureCount)
	}
	return nil
}

func checkWidth(features []float64) error {
	if len(features) != FeatureCount {
		return fmt.Errorf("%w: got %d features, want %d", ErrSchemaMismatch, len(features), FeatureCount)
	}
	return nil
}
