package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureNamesOrder(t *testing.T) {
	names := FeatureNames()
	require.Len(t, names, 31)
	assert.Equal(t, "itching", names[0])
	assert.Equal(t, "headache", names[10])
	assert.Equal(t, "history_of_alcohol_consumption", names[30])

	names[0] = "changed"
	assert.Equal(t, "itching", FeatureNames()[0])
}

func TestFeatureIndex(t *testing.T) {
	idx, ok := FeatureIndex("dark_urine")
	assert.True(t, ok)
	assert.Equal(t, 12, idx)

	_, ok = FeatureIndex("sneezing")
	assert.False(t, ok)
}

func TestCheckSchema(t *testing.T) {
	require.NoError(t, CheckSchema(nil))
	require.NoError(t, CheckSchema(FeatureNames()))

	assert.ErrorIs(t, CheckSchema(FeatureNames()[:30]), ErrSchemaMismatch)

	swapped := FeatureNames()
	swapped[0], swapped[1] = swapped[1], swapped[0]
	assert.ErrorIs(t, CheckSchema(swapped), ErrSchemaMismatch)
}

func TestSymptomLabel(t *testing.T) {
	assert.Equal(t, "Pain Behind The Eyes", SymptomLabel("pain_behind_the_eyes"))
	assert.Equal(t, "Itching", SymptomLabel("itching"))
}
