package ml

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FeatureCount is the input width every model artifact must accept.
const FeatureCount = 31

// symptomNames is the column order the classifier was trained on.
var symptomNames = [FeatureCount]string{
	"itching",
	"continuous_sneezing",
	"joint_pain",
	"stomach_pain",
	"acidity",
	"ulcers_on_tongue",
	"anxiety",
	"irregular_sugar_level",
	"cough",
	"dehydration",
	"headache",
	"yellowish_skin",
	"dark_urine",
	"nausea",
	"pain_behind_the_eyes",
	"diarrhoea",
	"mild_fever",
	"blurred_and_distorted_vision",
	"redness_of_eyes",
	"runny_nose",
	"chest_pain",
	"fast_heart_rate",
	"bloody_stool",
	"cramps",
	"obesity",
	"enlarged_thyroid",
	"red_spots_over_body",
	"abnormal_menstruation",
	"receiving_blood_transfusion",
	"receiving_unsterile_injections",
	"history_of_alcohol_consumption",
}

var symptomIndex = func() map[string]int {
	index := make(map[string]int, FeatureCount)
	for i, name := range symptomNames {
		index[name] = i
	}
	return index
}()

// FeatureNames returns a copy of the ordered feature schema.
func FeatureNames() []string {
	names := make([]string, FeatureCount)
	copy(names, symptomNames[:])
	return names
}

// FeatureIndex reports the vector position of a symptom.
func FeatureIndex(name string) (int, bool) {
	idx, ok := symptomIndex[name]
	return idx, ok
}

// SymptomLabel turns a schema name into the text shown next to its form control.
func SymptomLabel(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

// CheckSchema compares the feature names an artifact was trained with against
// the fixed schema. An empty slice means the artifact did not record them.
func CheckSchema(names []string) error {
	if len(names) == 0 {
		return nil
	}
	if len(names) != FeatureCount {
		return fmt.Errorf("%w: artifact has %d features, want %d", ErrSchemaMismatch, len(names), FeatureCount)
	}
	for i, name := range names {
		if name != symptomNames[i] {
			return fmt.Errorf("%w: position %d is %q, want %q", ErrSchemaMismatch, i, name, symptomNames[i])
		}
	}
	return nil
}
