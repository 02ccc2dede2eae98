package ml

// UnknownDisease is returned for class ids outside the label table.
const UnknownDisease = "Unknown disease"

// LabelCount is the number of classes the model was trained on.
const LabelCount = 41

var diseaseLabels = [LabelCount]string{
	"Fungal infection",
	"Allergy",
	"GERD",
	"Chronic cholestasis",
	"Drug Reaction",
	"Peptic ulcer disease",
	"AIDS",
	"Diabetes",
	"Gastroenteritis",
	"Bronchial Asthma",
	"Hypertension",
	"Migraine",
	"Cervical spondylosis",
	"Paralysis (brain hemorrhage)",
	"Jaundice",
	"Malaria",
	"Chicken pox",
	"Dengue",
	"Typhoid",
	"Hepatitis A",
	"Hepatitis B",
	"Hepatitis C",
	"Hepatitis D",
	"Hepatitis E",
	"Alcoholic hepatitis",
	"Tuberculosis",
	"Common Cold",
	"Pneumonia",
	"Dimorphic hemorrhoids (piles)",
	"Heart attack",
	"Varicose veins",
	"Hypothyroidism",
	"Hyperthyroidism",
	"Hypoglycemia",
	"Osteoarthrosis",
	"Arthritis",
	"(Vertigo) Paroxysmal Positional Vertigo",
	"Acne",
	"Urinary tract infection",
	"Psoriasis",
	"Impetigo",
}

// DiseaseName decodes a model class id.
func DiseaseName(id int) string {
	if id < 0 || id >= LabelCount {
		return UnknownDisease
	}
	return diseaseLabels[id]
}

// Label is one row of the label table.
type Label struct {
	ID      int    `json:"id"`
	Disease string `json:"disease"`
}

// Labels returns the full table ordered by id.
func Labels() []Label {
	labels := make([]Label, LabelCount)
	for i, name := range diseaseLabels {
		labels[i] = Label{ID: i, Disease: name}
	}
	return labels
}
