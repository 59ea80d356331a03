package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"trainer-downloader/internal/hub"
	"trainer-downloader/pkg/tasks"

	"github.com/google/uuid"
)

// FetchDataset resolves the training dataset for a text-family task and
// returns its local path along with the format tag it was requested with.
// An existing cache path is returned unchanged without any network call.
func (f *Fetcher) FetchDataset(ctx context.Context, taskID, datasetID string, format tasks.FileFormat) (string, tasks.FileFormat, error) {
	switch format {
	case tasks.S3:
		key := taskID + "_train_data.json"
		dest := f.datasets.Path(key)
		if f.datasets.Has(key) {
			slog.Info("dataset already present, skipping download", "path", dest)
			return dest, format, nil
		}

		staging := filepath.Join(f.stagingDir, uuid.NewString())
		defer os.RemoveAll(staging)

		staged := filepath.Join(staging, filepath.Base(dest))
		if err := f.downloadURL(ctx, datasetID, staged); err != nil {
			return "", format, err
		}
		if err := copyFile(staged, dest); err != nil {
			return "", format, err
		}
		slog.Info("downloaded dataset", "url", datasetID, "path", dest)
		return dest, format, nil

	case tasks.HuggingFace:
		key := SanitizeRepoID(datasetID)
		dest := f.datasets.Path(key)
		if f.datasets.Has(key) {
			slog.Info("dataset already present, skipping download", "path", dest)
			return dest, format, nil
		}
		if err := f.hub.DownloadSnapshot(ctx, hub.DatasetRepo, datasetID, dest, nil); err != nil {
			return "", format, err
		}
		slog.Info("downloaded dataset snapshot", "repo", datasetID, "path", dest)
		return dest, format, nil

	case tasks.CSV, tasks.JSON:
		// Expected to have been staged locally by an upstream step.
		if _, err := os.Stat(datasetID); err != nil {
			return "", format, fmt.Errorf("%w: %s", tasks.ErrLocalFileMissing, datasetID)
		}
		return datasetID, format, nil

	default:
		return "", format, fmt.Errorf("unknown file format %q", format)
	}
}

// FetchImageDataset fetches the compressed image dataset archive by direct
// URL into the dataset cache. Image tasks never use repository snapshots.
func (f *Fetcher) FetchImageDataset(ctx context.Context, taskID, archiveURL string) (string, error) {
	key := taskID + ".zip"
	dest := f.datasets.Path(key)
	if f.datasets.Has(key) {
		slog.Info("image dataset already present, skipping download", "path", dest)
		return dest, nil
	}

	slog.Info("downloading image dataset", "url", archiveURL)
	if err := f.downloadURL(ctx, archiveURL, dest); err != nil {
		return "", err
	}
	slog.Info("downloaded image dataset", "path", dest)
	return dest, nil
}
