package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"trainer-downloader/internal/config"
	"trainer-downloader/internal/fetcher"
	"trainer-downloader/internal/hub"
	"trainer-downloader/internal/orchestrator"
	"trainer-downloader/internal/s3"
	"trainer-downloader/internal/transport"
	"trainer-downloader/pkg/tasks"

	"github.com/joho/godotenv"
)

func main() {
	var (
		taskID     = flag.String("task-id", "", "task identifier")
		model      = flag.String("model", "", "base model repository id")
		taskType   = flag.String("task-type", "", "one of ImageTask|InstructTextTask|DpoTask|GrpoTask")
		dataset    = flag.String("dataset", "", "dataset URL or repository id")
		fileFormat = flag.String("file-format", "", "one of csv|json|hf|s3")
		envFile    = flag.String("env", "", "path to load env from")
	)
	flag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			log.Fatalf("error loading .env file '%s': %v", *envFile, err)
		}
	}

	spec, err := buildTaskSpec(*taskID, *model, *taskType, *dataset, *fileFormat)
	if err != nil {
		log.Fatalf("invalid arguments: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	datasets, err := fetcher.NewDirStore(cfg.DatasetDir)
	if err != nil {
		log.Fatalf("failed to initialize dataset cache: %v", err)
	}
	models, err := fetcher.NewDirStore(cfg.ModelDir)
	if err != nil {
		log.Fatalf("failed to initialize model cache: %v", err)
	}
	hfCache, err := fetcher.NewDirStore(cfg.HFCacheDir)
	if err != nil {
		log.Fatalf("failed to initialize hub cache: %v", err)
	}

	slog.Info("downloading datasets", "dir", datasets.Root())
	slog.Info("downloading models", "dir", models.Root())

	var objectStore fetcher.ObjectDownloader
	if s3.IsS3Path(spec.DatasetID) {
		client, err := s3.NewClient(&s3.Config{
			EndpointURL:     cfg.S3EndpointURL,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Region:          cfg.S3Region,
		})
		if err != nil {
			log.Fatalf("failed to create S3 client: %v", err)
		}
		objectStore = client
	}

	artifacts := fetcher.New(fetcher.Params{
		Hub:               hub.NewClient(cfg.HubEndpoint, cfg.HubToken),
		HTTP:              transport.NewDownloader(),
		S3:                objectStore,
		Datasets:          datasets,
		Models:            models,
		HFCache:           hfCache,
		LargeWeightsBytes: cfg.LargeWeightsBytes,
		HugeWeightsBytes:  cfg.HugeWeightsBytes,
	})

	orch := orchestrator.New(artifacts, datasets.Root(), os.Stdout)
	if err := orch.Run(context.Background(), spec); err != nil {
		log.Fatalf("download failed: %v", err)
	}
}

func buildTaskSpec(taskID, model, taskType, dataset, fileFormat string) (tasks.TaskSpec, error) {
	if taskID == "" || model == "" || taskType == "" || dataset == "" {
		flag.Usage()
		os.Exit(2)
	}

	parsedType, err := tasks.ParseTaskType(taskType)
	if err != nil {
		return tasks.TaskSpec{}, err
	}
	if parsedType == tasks.ChatTask {
		return tasks.TaskSpec{}, fmt.Errorf("task type %q is not accepted here", taskType)
	}

	spec := tasks.TaskSpec{
		TaskID:    taskID,
		ModelID:   model,
		Type:      parsedType,
		DatasetID: dataset,
	}

	if fileFormat != "" {
		format, err := tasks.ParseFileFormat(fileFormat)
		if err != nil {
			return tasks.TaskSpec{}, err
		}
		spec.Format = format
	}
	return spec, nil
}
