package ml

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteModelPredict(t *testing.T) {
	var got remoteRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"class_id":17,"confidence":0.64}`))
	}))
	defer server.Close()

	model, err := NewRemoteModel(server.URL, time.Second)
	require.NoError(t, err)

	label, confidence, err := model.Predict(context.Background(), EncodeSymptoms(Answers{"itching": "yes"}).Float64s())
	require.NoError(t, err)
	assert.Equal(t, 17, label)
	assert.Equal(t, 0.64, confidence)
	require.Len(t, got.Features, FeatureCount)
	assert.Equal(t, 1, got.Features[0])
	assert.Equal(t, 0, got.Features[1])
}

func TestRemoteModelErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"model warming up"}`))
	}))
	defer server.Close()

	model, err := NewRemoteModel(server.URL, time.Second)
	require.NoError(t, err)
	_, _, err = model.Predict(context.Background(), FeatureVector{}.Float64s())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "model warming up")

	_, err = NewRemoteModel("", time.Second)
	assert.Error(t, err)
}

func TestRemoteModelMissingClassID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"confidence":0.5}`))
	}))
	defer server.Close()

	model, err := NewRemoteModel(server.URL, time.Second)
	require.NoError(t, err)
	_, _, err = model.Predict(context.Background(), FeatureVector{}.Float64s())
	assert.Error(t, err)
}
