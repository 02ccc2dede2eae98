package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// LoadOptions selects and locates the model artifact.
type LoadOptions struct {
	Type          string
	Path          string
	RemoteURL     string
	RemoteTimeout time.Duration
	CacheSize     int
}

// LoadModel builds the process-wide classifier. It is called once at startup;
// any error here is fatal for the server.
func LoadModel(opts LoadOptions) (Classifier, error) {
	model, err := loadBase(opts)
	if err != nil {
		return nil, err
	}
	if opts.CacheSize <= 0 {
		return model, nil
	}
	cached, err := NewCachedClassifier(model, opts.CacheSize)
	if err != nil {
		return nil, err
	}
	return cached, nil
}

func loadBase(opts LoadOptions) (Classifier, error) {
	switch opts.Type {
	case TypeRemote:
		remote, err := NewRemoteModel(opts.RemoteURL, opts.RemoteTimeout)
		if err != nil {
			return nil, err
		}
		return remote, nil
	case TypeDecisionTree, TypeRandomForest, "":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, opts.Type)
	}

	payload, err := os.ReadFile(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	var artifact Artifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	modelType := opts.Type
	if modelType == "" {
		modelType = artifact.ModelType
	} else if artifact.ModelType != "" && artifact.ModelType != modelType {
		return nil, fmt.Errorf("%w: configured %q but artifact is %q", ErrInvalidArtifact, modelType, artifact.ModelType)
	}

	var model Classifier
	switch modelType {
	case TypeDecisionTree:
		model, err = decisionTreeFromArtifact(artifact)
	case TypeRandomForest:
		model, err = randomForestFromArtifact(artifact)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, modelType)
	}
	if err != nil {
		return nil, err
	}
	return model, nil
}
