package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the runtime settings for a downloader run. The cache roots
// default to the fixed layout the training containers mount; the env
// overrides exist for local runs and tests, there are no flags for them.
type Config struct {
	DatasetDir string `env:"DATASET_DIR" envDefault:"/cache/datasets"`
	ModelDir   string `env:"MODEL_DIR" envDefault:"/cache/models"`
	HFCacheDir string `env:"HF_CACHE_DIR" envDefault:"/cache/hf_cache"`

	HubEndpoint string `env:"HF_ENDPOINT" envDefault:"https://huggingface.co"`
	HubToken    string `env:"HF_TOKEN"`

	// Weights files above LargeWeightsBytes are worth a dedicated single-file
	// download instead of a full snapshot. HugeWeightsBytes is the cutoff for
	// model families that ship one oversized combined weights file.
	LargeWeightsBytes int64 `env:"LARGE_WEIGHTS_BYTES" envDefault:"6442450944"`
	HugeWeightsBytes  int64 `env:"HUGE_WEIGHTS_BYTES" envDefault:"10737418240"`

	S3EndpointURL     string `env:"S3_ENDPOINT_URL"`
	S3AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	S3Region          string `env:"AWS_REGION" envDefault:"us-east-1"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config from environment: %w", err)
	}
	return &cfg, nil
}
