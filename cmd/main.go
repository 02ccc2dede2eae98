package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Garima-149/disease-prediction2/config"
	qhttp "github.com/Garima-149/disease-prediction2/http"
	"github.com/Garima-149/disease-prediction2/logging"
	"github.com/Garima-149/disease-prediction2/ml"
)

func main() {
	// Look for config in root even if run from cmd/
	configPath := config.Locate("config.yaml")

	// 1. Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Logger
	logger, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// 3. Load the model once; every request shares it read-only.
	model, err := ml.LoadModel(ml.LoadOptions{
		Type:          cfg.Model.Type,
		Path:          cfg.Model.Path,
		RemoteURL:     cfg.Model.RemoteURL,
		RemoteTimeout: cfg.Model.RemoteTimeout,
		CacheSize:     cfg.Model.CacheSize,
	})
	if err != nil {
		logger.Fatal("failed to load model",
			zap.String("type", cfg.Model.Type),
			zap.String("path", cfg.Model.Path),
			zap.Error(err),
		)
	}
	modelType := ml.TypeOf(model)
	logger.Info("model loaded",
		zap.String("type", modelType),
		zap.String("path", cfg.Model.Path),
		zap.Int("features", ml.FeatureCount),
		zap.Int("cache_size", cfg.Model.CacheSize),
	)

	renderer, err := qhttp.NewRenderer(cfg.Http.TemplatesDir, logger)
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}
	defer renderer.Close()
	if cfg.Http.WatchTemplates {
		if err := renderer.Watch(cfg.Http.TemplatesDir); err != nil {
			logger.Fatal("failed to watch templates", zap.Error(err))
		}
	}

	// 4. Start HTTP server
	server, err := qhttp.NewServer(qhttp.ServerConfig{
		Port:           cfg.Http.Port,
		Timeout:        cfg.Http.Timeout,
		AllowedOrigins: cfg.Http.AllowedOrigins,
		MaxBodyBytes:   cfg.Http.MaxBodyBytes,
		StaticDir:      cfg.Http.StaticDir,
		StrictForm:     cfg.Predict.StrictForm,
	}, qhttp.Dependencies{
		Predictor: ml.NewPredictor(model),
		Renderer:  renderer,
		Logger:    logger,
		ModelType: modelType,
	})
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 5. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	if err := server.Stop(); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("exiting")
}
