// Command export_model converts the tree_ arrays of a fitted scikit-learn
// classifier, dumped to JSON (see ml.SklearnDump), into the model artifact
// the server loads.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/Garima-149/disease-prediction2/ml"
)

func main() {
	in := flag.String("in", "", "sklearn tree dump (JSON)")
	out := flag.String("out", "models/disease_model.json", "artifact path to write")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	payload, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("failed to read dump: %v", err)
	}
	var dump ml.SklearnDump
	if err := json.Unmarshal(payload, &dump); err != nil {
		log.Fatalf("failed to parse dump: %v", err)
	}

	artifact, err := ml.FromSklearn(dump)
	if err != nil {
		log.Fatalf("failed to convert model: %v", err)
	}

	encoded, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode artifact: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	if err := os.WriteFile(*out, encoded, 0o644); err != nil {
		log.Fatalf("failed to write artifact: %v", err)
	}

	if artifact.ModelType == ml.TypeRandomForest {
		log.Printf("wrote random_forest with %d trees to %s", len(artifact.Trees), *out)
	} else {
		log.Printf("wrote decision_tree with %d nodes to %s", len(artifact.Nodes), *out)
	}
}
