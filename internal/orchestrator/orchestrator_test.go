package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"trainer-downloader/pkg/tasks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	calls      []string
	datasetErr error
	modelErr   error
	assetsErr  error
}

func (f *fakeFetcher) FetchDataset(ctx context.Context, taskID, datasetID string, format tasks.FileFormat) (string, tasks.FileFormat, error) {
	f.calls = append(f.calls, "dataset")
	return "/cache/datasets/" + taskID + "_train_data.json", format, f.datasetErr
}

func (f *fakeFetcher) FetchImageDataset(ctx context.Context, taskID, archiveURL string) (string, error) {
	f.calls = append(f.calls, "image-dataset")
	return "/cache/datasets/" + taskID + ".zip", f.datasetErr
}

func (f *fakeFetcher) FetchBaseModel(ctx context.Context, repoID string) (string, error) {
	f.calls = append(f.calls, "model")
	return "/cache/models/org--model", f.modelErr
}

func (f *fakeFetcher) EnsureImageAuxAssets(ctx context.Context) error {
	f.calls = append(f.calls, "aux-assets")
	return f.assetsErr
}

func TestRunTextTask(t *testing.T) {
	fetcher := &fakeFetcher{}
	var out bytes.Buffer
	orch := New(fetcher, "/cache/datasets", &out)

	spec := tasks.TaskSpec{
		TaskID:    "task1",
		ModelID:   "org/model",
		Type:      tasks.InstructTextTask,
		DatasetID: "https://ex.com/data.json",
		Format:    tasks.S3,
	}
	require.NoError(t, orch.Run(context.Background(), spec))

	assert.Equal(t, []string{"dataset", "model"}, fetcher.calls)
	assert.Equal(t, "Model path: /cache/models/org--model\nDataset path: /cache/datasets\n", out.String())
}

func TestRunImageTask(t *testing.T) {
	fetcher := &fakeFetcher{}
	var out bytes.Buffer
	orch := New(fetcher, "/cache/datasets", &out)

	spec := tasks.TaskSpec{
		TaskID:    "task1",
		ModelID:   "org/model",
		Type:      tasks.ImageTask,
		DatasetID: "https://ex.com/images.zip",
	}
	require.NoError(t, orch.Run(context.Background(), spec))

	assert.Equal(t, []string{"image-dataset", "model", "aux-assets"}, fetcher.calls)
	assert.Contains(t, out.String(), "Model path: /cache/models/org--model\n")
}

func TestRunDatasetFailureAbortsBeforeModel(t *testing.T) {
	wantErr := errors.New("boom")
	fetcher := &fakeFetcher{datasetErr: wantErr}
	var out bytes.Buffer
	orch := New(fetcher, "/cache/datasets", &out)

	spec := tasks.TaskSpec{
		TaskID:    "task1",
		ModelID:   "org/model",
		Type:      tasks.GrpoTask,
		DatasetID: "org/data",
		Format:    tasks.HuggingFace,
	}
	err := orch.Run(context.Background(), spec)
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, []string{"dataset"}, fetcher.calls)
	assert.Empty(t, out.String())
}

func TestRunModelFailureProducesNoOutput(t *testing.T) {
	wantErr := errors.New("boom")
	fetcher := &fakeFetcher{modelErr: wantErr}
	var out bytes.Buffer
	orch := New(fetcher, "/cache/datasets", &out)

	spec := tasks.TaskSpec{
		TaskID:    "task1",
		ModelID:   "org/model",
		Type:      tasks.DpoTask,
		DatasetID: "org/data",
		Format:    tasks.HuggingFace,
	}
	err := orch.Run(context.Background(), spec)
	assert.ErrorIs(t, err, wantErr)
	assert.Empty(t, out.String())
}

func TestRunUnknownTaskType(t *testing.T) {
	orch := New(&fakeFetcher{}, "/cache/datasets", &bytes.Buffer{})

	err := orch.Run(context.Background(), tasks.TaskSpec{Type: tasks.TaskType("EmbeddingTask")})
	assert.Error(t, err)
}
