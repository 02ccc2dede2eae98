package ml

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cachedResult struct {
	classID    int
	confidence float64
}

// CachedClassifier memoizes a deterministic classifier by feature bitmask.
// Failed predictions are not cached.
type CachedClassifier struct {
	next  Classifier
	cache *lru.Cache[uint32, cachedResult]
}

func NewCachedClassifier(next Classifier, size int) (*CachedClassifier, error) {
	cache, err := lru.New[uint32, cachedResult](size)
	if err != nil {
		return nil, fmt.Errorf("create prediction cache: %w", err)
	}
	return &CachedClassifier{next: next, cache: cache}, nil
}

func (c *CachedClassifier) Predict(ctx context.Context, features []float64) (int, float64, error) {
	key, ok := bitmask(features)
	if !ok {
		return c.next.Predict(ctx, features)
	}
	if hit, found := c.cache.Get(key); found {
		return hit.classID, hit.confidence, nil
	}
	classID, confidence, err := c.next.Predict(ctx, features)
	if err != nil {
		return 0, 0, err
	}
	c.cache.Add(key, cachedResult{classID: classID, confidence: confidence})
	return classID, confidence, nil
}

// Len reports the number of cached vectors.
func (c *CachedClassifier) Len() int {
	return c.cache.Len()
}

func bitmask(features []float64) (uint32, bool) {
	if len(features) != FeatureCount {
		return 0, false
	}
	var vector FeatureVector
	for i, v := range features {
		switch v {
		case 0:
		case 1:
			vector[i] = 1
		default:
			return 0, false
		}
	}
	return vector.Key(), true
}
