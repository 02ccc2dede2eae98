package ml

import (
	"context"
	"errors"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClassifier struct {
	label int
	err   error
	calls atomic.Int32
	last  []float64
}

func (s *stubClassifier) Predict(_ context.Context, features []float64) (int, float64, error) {
	s.calls.Add(1)
	s.last = features
	return s.label, 0.9, s.err
}

func TestPredictFormRoundTrip(t *testing.T) {
	stub := &stubClassifier{label: 0}
	predictor := NewPredictor(stub)

	prediction, err := predictor.PredictForm(context.Background(), url.Values{"itching": {"yes"}, "headache": {"yes"}})
	require.NoError(t, err)
	assert.Equal(t, "Fungal infection", prediction.Disease)
	assert.Equal(t, 0, prediction.ClassID)
	assert.Equal(t, []string{"itching", "headache"}, prediction.Symptoms)

	require.Len(t, stub.last, FeatureCount)
	for i, v := range stub.last {
		if i == 0 || i == 10 {
			assert.Equal(t, 1.0, v)
		} else {
			assert.Equal(t, 0.0, v)
		}
	}
}

func TestPredictUnknownClass(t *testing.T) {
	predictor := NewPredictor(&stubClassifier{label: 41})
	prediction, err := predictor.PredictForm(context.Background(), url.Values{})
	require.NoError(t, err)
	assert.Equal(t, UnknownDisease, prediction.Disease)
}

func TestPredictPropagatesModelError(t *testing.T) {
	boom := errors.New("boom")
	predictor := NewPredictor(&stubClassifier{err: boom})
	_, err := predictor.PredictForm(context.Background(), url.Values{})
	assert.ErrorIs(t, err, boom)

	_, err = NewPredictor(nil).PredictVector(context.Background(), FeatureVector{})
	assert.ErrorIs(t, err, ErrModelNotLoaded)
}

func TestCachedClassifier(t *testing.T) {
	stub := &stubClassifier{label: 17}
	cached, err := NewCachedClassifier(stub, 2)
	require.NoError(t, err)

	vector := EncodeSymptoms(Answers{"joint_pain": "yes"}).Float64s()
	for i := 0; i < 3; i++ {
		label, _, err := cached.Predict(context.Background(), vector)
		require.NoError(t, err)
		assert.Equal(t, 17, label)
	}
	assert.Equal(t, int32(1), stub.calls.Load())
	assert.Equal(t, 1, cached.Len())

	_, _, err = cached.Predict(context.Background(), []float64{0.5})
	require.NoError(t, err)
	assert.Equal(t, int32(2), stub.calls.Load())
	assert.Equal(t, 1, cached.Len())
}

func TestCachedClassifierSkipsErrors(t *testing.T) {
	stub := &stubClassifier{err: errors.New("unavailable")}
	cached, err := NewCachedClassifier(stub, 4)
	require.NoError(t, err)

	_, _, err = cached.Predict(context.Background(), FeatureVector{}.Float64s())
	require.Error(t, err)
	assert.Equal(t, 0, cached.Len())
}

func TestNewCachedClassifierRejectsBadSize(t *testing.T) {
	_, err := NewCachedClassifier(&stubClassifier{}, 0)
	assert.Error(t, err)
}
