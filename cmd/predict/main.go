// Command predict loads a model artifact and classifies one symptom list
// from the command line, without starting the web server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Garima-149/disease-prediction2/config"
	"github.com/Garima-149/disease-prediction2/ml"
)

func main() {
	configPath := flag.String("config", config.Locate("config.yaml"), "config file")
	modelPath := flag.String("model_path", "", "model artifact, overrides the config")
	modelType := flag.String("model_type", "", "model type, overrides the config")
	symptoms := flag.String("symptoms", "", "comma separated symptom names that are present")
	listSchema := flag.Bool("schema", false, "print the feature schema and exit")
	flag.Parse()

	if *listSchema {
		for i, name := range ml.FeatureNames() {
			fmt.Printf("%2d %s\n", i, name)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *modelPath != "" {
		cfg.Model.Path = *modelPath
	}
	if *modelType != "" {
		cfg.Model.Type = *modelType
	}

	model, err := ml.LoadModel(ml.LoadOptions{
		Type:          cfg.Model.Type,
		Path:          cfg.Model.Path,
		RemoteURL:     cfg.Model.RemoteURL,
		RemoteTimeout: cfg.Model.RemoteTimeout,
	})
	if err != nil {
		log.Fatalf("failed to load model: %v", err)
	}

	vector, err := ml.EncodePresent(splitList(*symptoms))
	if err != nil {
		log.Fatalf("%v", err)
	}

	prediction, err := ml.NewPredictor(model).PredictVector(context.Background(), vector)
	if err != nil {
		log.Fatalf("prediction failed: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(prediction); err != nil {
		log.Fatalf("failed to write result: %v", err)
	}
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
