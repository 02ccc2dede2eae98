package ml

import (
	"fmt"
	"sort"
	"strings"
)

const (
	answerYes = "yes"
	answerNo  = "no"
)

// FieldGetter is the read side of a submitted form. url.Values satisfies it.
type FieldGetter interface {
	Get(key string) string
}

// Answers adapts a plain map to FieldGetter.
type Answers map[string]string

func (a Answers) Get(key string) string {
	return a[key]
}

// FeatureVector is one submission encoded in schema order. Values are 0 or 1.
type FeatureVector [FeatureCount]int

// EncodeSymptoms maps a form onto the schema. Only the literal "yes" counts as
// present; missing or any other value encodes as 0.
func EncodeSymptoms(form FieldGetter) FeatureVector {
	var vector FeatureVector
	if form == nil {
		return vector
	}
	for i, name := range symptomNames {
		if form.Get(name) == answerYes {
			vector[i] = 1
		}
	}
	return vector
}

// EncodePresent builds a vector from a list of present symptom names.
func EncodePresent(present []string) (FeatureVector, error) {
	var vector FeatureVector
	var unknown []string
	for _, name := range present {
		idx, ok := FeatureIndex(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		vector[idx] = 1
	}
	if len(unknown) > 0 {
		return vector, &InvalidFieldsError{Unknown: unknown}
	}
	return vector, nil
}

// Float64s widens the vector for model input.
func (v FeatureVector) Float64s() []float64 {
	out := make([]float64, FeatureCount)
	for i, bit := range v {
		out[i] = float64(bit)
	}
	return out
}

// Present lists the symptom names set to 1, in schema order.
func (v FeatureVector) Present() []string {
	present := make([]string, 0)
	for i, bit := range v {
		if bit == 1 {
			present = append(present, symptomNames[i])
		}
	}
	return present
}

// Key packs the vector into a bitmask, bit i set when position i is 1.
func (v FeatureVector) Key() uint32 {
	var key uint32
	for i, bit := range v {
		if bit == 1 {
			key |= 1 << uint(i)
		}
	}
	return key
}

// InvalidFieldsError lists form fields that strict validation refused.
type InvalidFieldsError struct {
	Invalid map[string]string
	Unknown []string
}

func (e *InvalidFieldsError) Error() string {
	parts := make([]string, 0, len(e.Invalid)+len(e.Unknown))
	names := make([]string, 0, len(e.Invalid))
	for name := range e.Invalid {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%q", name, e.Invalid[name]))
	}
	for _, name := range e.Unknown {
		parts = append(parts, fmt.Sprintf("unknown symptom %q", name))
	}
	return "invalid symptom fields: " + strings.Join(parts, ", ")
}

// ValidateSymptoms accepts "", "yes" and "no" for every schema field.
func ValidateSymptoms(form FieldGetter) error {
	if form == nil {
		return nil
	}
	invalid := make(map[string]string)
	for _, name := range symptomNames {
		switch value := form.Get(name); value {
		case "", answerYes, answerNo:
		default:
			invalid[name] = value
		}
	}
	if len(invalid) == 0 {
		return nil
	}
	return &InvalidFieldsError{Invalid: invalid}
}
