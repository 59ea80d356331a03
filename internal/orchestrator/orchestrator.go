package orchestrator

import (
	"context"
	"fmt"
	"io"

	"trainer-downloader/pkg/tasks"
)

// ArtifactFetcher is the capability surface the orchestrator drives.
type ArtifactFetcher interface {
	FetchDataset(ctx context.Context, taskID, datasetID string, format tasks.FileFormat) (string, tasks.FileFormat, error)
	FetchImageDataset(ctx context.Context, taskID, archiveURL string) (string, error)
	FetchBaseModel(ctx context.Context, repoID string) (string, error)
	EnsureImageAuxAssets(ctx context.Context) error
}

// Orchestrator runs one task's artifact fetches in order and reports the
// resulting paths on its output stream.
type Orchestrator struct {
	fetcher    ArtifactFetcher
	datasetDir string
	out        io.Writer
}

func New(fetcher ArtifactFetcher, datasetDir string, out io.Writer) *Orchestrator {
	return &Orchestrator{fetcher: fetcher, datasetDir: datasetDir, out: out}
}

// Run fetches the dataset, then the model, then any task-type specific
// auxiliary assets. The first failure aborts the run; nothing is retried.
func (o *Orchestrator) Run(ctx context.Context, spec tasks.TaskSpec) error {
	var modelPath string

	switch spec.Type {
	case tasks.ImageTask:
		if _, err := o.fetcher.FetchImageDataset(ctx, spec.TaskID, spec.DatasetID); err != nil {
			return err
		}
		path, err := o.fetcher.FetchBaseModel(ctx, spec.ModelID)
		if err != nil {
			return err
		}
		modelPath = path
		if err := o.fetcher.EnsureImageAuxAssets(ctx); err != nil {
			return err
		}

	case tasks.InstructTextTask, tasks.DpoTask, tasks.GrpoTask, tasks.ChatTask:
		if _, _, err := o.fetcher.FetchDataset(ctx, spec.TaskID, spec.DatasetID, spec.Format); err != nil {
			return err
		}
		path, err := o.fetcher.FetchBaseModel(ctx, spec.ModelID)
		if err != nil {
			return err
		}
		modelPath = path

	default:
		return fmt.Errorf("unknown task type %q", spec.Type)
	}

	fmt.Fprintf(o.out, "Model path: %s\n", modelPath)
	fmt.Fprintf(o.out, "Dataset path: %s\n", o.datasetDir)
	return nil
}
