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

// FetchBaseModel resolves the base model for a task. If the repository ships
// a weights file above the large-weights cutoff only that file is fetched;
// otherwise the whole repository is snapshotted into the cache path.
func (f *Fetcher) FetchBaseModel(ctx context.Context, repoID string) (string, error) {
	key := SanitizeRepoID(repoID)
	dest := f.models.Path(key)
	if f.models.Has(key) {
		slog.Info("model already present, skipping download", "repo", repoID, "path", dest)
		return dest, nil
	}

	files, err := f.hub.ListRepoFiles(ctx, hub.ModelRepo, repoID)
	if err != nil {
		return "", err
	}

	if weightsPath, ok := hub.LargestOverThreshold(files, weightsSuffix, f.largeWeightsBytes); ok {
		return f.fetchWeightsFile(ctx, repoID, weightsPath, dest)
	}

	if err := f.hub.DownloadSnapshot(ctx, hub.ModelRepo, repoID, dest, nil); err != nil {
		return "", err
	}
	slog.Info("downloaded model snapshot", "repo", repoID, "path", dest)
	return dest, nil
}

// FetchCombinedWeights handles model families that ship one oversized
// combined weights file, where a full snapshot would be wasteful. It fails
// with ErrNoQualifyingFile when the repository has no file above the huge
// cutoff; there is no snapshot fallback.
func (f *Fetcher) FetchCombinedWeights(ctx context.Context, repoID string) (string, error) {
	dest := f.models.Path(SanitizeRepoID(repoID))
	final := filepath.Join(dest, weightsFileName(repoID))
	if _, err := os.Stat(final); err == nil {
		slog.Info("weights already present, skipping download", "repo", repoID, "path", final)
		return final, nil
	}

	files, err := f.hub.ListRepoFiles(ctx, hub.ModelRepo, repoID)
	if err != nil {
		return "", err
	}

	weightsPath, ok := hub.LargestOverThreshold(files, weightsSuffix, f.hugeWeightsBytes)
	if !ok {
		return "", fmt.Errorf("%w: no %s file over %d bytes in %s", tasks.ErrNoQualifyingFile, weightsSuffix, f.hugeWeightsBytes, repoID)
	}
	return f.fetchWeightsFile(ctx, repoID, weightsPath, dest)
}

// fetchWeightsFile downloads one weights file into a staging directory and
// moves it into place, so a killed process cannot leave a partial file that
// later runs mistake for a cache hit.
func (f *Fetcher) fetchWeightsFile(ctx context.Context, repoID, weightsPath, destDir string) (string, error) {
	final := filepath.Join(destDir, weightsFileName(repoID))
	if _, err := os.Stat(final); err == nil {
		slog.Info("weights already present, skipping download", "repo", repoID, "path", final)
		return final, nil
	}

	if err := os.MkdirAll(destDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create model directory %s: %w", destDir, err)
	}

	staging := filepath.Join(f.stagingDir, uuid.NewString())
	defer os.RemoveAll(staging)

	staged, err := f.hub.DownloadFile(ctx, hub.ModelRepo, repoID, weightsPath, staging)
	if err != nil {
		return "", err
	}
	if err := moveFile(staged, final); err != nil {
		return "", err
	}
	slog.Info("downloaded weights file", "repo", repoID, "file", weightsPath, "path", final)
	return final, nil
}
