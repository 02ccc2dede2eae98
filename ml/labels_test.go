package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiseaseNameKnownIDs(t *testing.T) {
	cases := map[int]string{
		0:  "Fungal infection",
		7:  "Diabetes",
		13: "Paralysis (brain hemorrhage)",
		17: "Dengue",
		26: "Common Cold",
		36: "(Vertigo) Paroxysmal Positional Vertigo",
		40: "Impetigo",
	}
	for id, want := range cases {
		assert.Equal(t, want, DiseaseName(id), "id %d", id)
	}
}

func TestDiseaseNameCoversTable(t *testing.T) {
	seen := map[string]bool{}
	for id := 0; id < LabelCount; id++ {
		name := DiseaseName(id)
		assert.NotEqual(t, UnknownDisease, name)
		assert.False(t, seen[name], "duplicate label %q", name)
		seen[name] = true
	}
}

func TestDiseaseNameUnknownIDs(t *testing.T) {
	for _, id := range []int{-1, 41, 100, -1000} {
		assert.Equal(t, "Unknown disease", DiseaseName(id))
	}
}

func TestLabels(t *testing.T) {
	labels := Labels()
	assert.Len(t, labels, 41)
	assert.Equal(t, Label{ID: 17, Disease: "Dengue"}, labels[17])
}
