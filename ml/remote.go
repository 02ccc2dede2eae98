package ml

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// RemoteModel forwards feature vectors to an inference sidecar that hosts the
// original estimator.
type RemoteModel struct {
	client *resty.Client
	url    string
}

type remoteRequest struct {
	Features []int `json:"features"`
}

type remoteResponse struct {
	ClassID    *int    `json:"class_id"`
	Confidence float64 `json:"confidence"`
	Error      string  `json:"error,omitempty"`
}

func NewRemoteModel(url string, timeout time.Duration) (*RemoteModel, error) {
	if url == "" {
		return nil, errors.New("remote model url is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &RemoteModel{client: client, url: url}, nil
}

func (m *RemoteModel) Predict(ctx context.Context, features []float64) (int, float64, error) {
	if m == nil || m.client == nil {
		return 0, 0, ErrModelNotLoaded
	}
	if err := checkWidth(features); err != nil {
		return 0, 0, err
	}
	body := remoteRequest{Features: make([]int, len(features))}
	for i, v := range features {
		body.Features[i] = int(v)
	}

	var result remoteResponse
	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		SetError(&result).
		Post(m.url)
	if err != nil {
		return 0, 0, fmt.Errorf("remote model request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, 0, fmt.Errorf("remote model returned status %d: %s", resp.StatusCode(), result.Error)
	}
	if result.ClassID == nil {
		return 0, 0, errors.New("remote model response has no class_id")
	}
	return *result.ClassID, result.Confidence, nil
}
