package fetcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"trainer-downloader/internal/hub"
	"trainer-downloader/internal/s3"
	"trainer-downloader/pkg/tasks"
)

// HubClient is the capability surface the fetcher needs from the model hub.
type HubClient interface {
	ListRepoFiles(ctx context.Context, repoType hub.RepoType, repoID string) ([]hub.RepoFile, error)
	DownloadFile(ctx context.Context, repoType hub.RepoType, repoID, filePath, destDir string) (string, error)
	DownloadSnapshot(ctx context.Context, repoType hub.RepoType, repoID, dest string, allowPatterns []string) error
}

// FileGetter fetches the body of a URL into a local file.
type FileGetter interface {
	GetToFile(ctx context.Context, url, dest string) error
}

// ObjectDownloader fetches a single object from S3-compatible storage.
type ObjectDownloader interface {
	DownloadFile(ctx context.Context, bucket, key, localPath string) error
}

const weightsSuffix = ".safetensors"

// Fetcher places datasets, base models and auxiliary assets into their cache
// locations, skipping anything already present. All transfers for one run
// are issued sequentially.
type Fetcher struct {
	hub  HubClient
	http FileGetter
	s3   ObjectDownloader

	datasets CacheStore
	models   CacheStore
	hfCache  CacheStore

	largeWeightsBytes int64
	hugeWeightsBytes  int64
	stagingDir        string
}

type Params struct {
	Hub  HubClient
	HTTP FileGetter
	S3   ObjectDownloader // optional, only needed for s3:// dataset URLs

	Datasets CacheStore
	Models   CacheStore
	HFCache  CacheStore

	LargeWeightsBytes int64
	HugeWeightsBytes  int64
	StagingDir        string // defaults to os.TempDir()
}

func New(params Params) *Fetcher {
	if params.StagingDir == "" {
		params.StagingDir = os.TempDir()
	}
	return &Fetcher{
		hub:               params.Hub,
		http:              params.HTTP,
		s3:                params.S3,
		datasets:          params.Datasets,
		models:            params.Models,
		hfCache:           params.HFCache,
		largeWeightsBytes: params.LargeWeightsBytes,
		hugeWeightsBytes:  params.HugeWeightsBytes,
		stagingDir:        params.StagingDir,
	}
}

// SanitizeRepoID makes a repository id safe as a single path component.
// It is idempotent: sanitizing twice gives the same result as once.
func SanitizeRepoID(repoID string) string {
	return strings.ReplaceAll(repoID, "/", "--")
}

func weightsFileName(repoID string) string {
	return strings.ReplaceAll(repoID, "/", "_") + weightsSuffix
}

// downloadURL fetches rawURL into dest, going through the object store for
// s3:// URLs and plain HTTP otherwise.
func (f *Fetcher) downloadURL(ctx context.Context, rawURL, dest string) error {
	if !s3.IsS3Path(rawURL) {
		return f.http.GetToFile(ctx, rawURL, dest)
	}

	if f.s3 == nil {
		return fmt.Errorf("%w: %s: no s3 client configured", tasks.ErrDownloadFailed, rawURL)
	}
	bucket, key, err := s3.ParseS3Path(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", tasks.ErrDownloadFailed, err)
	}
	if err := f.s3.DownloadFile(ctx, bucket, key, dest); err != nil {
		return fmt.Errorf("%w: %v", tasks.ErrDownloadFailed, err)
	}
	return nil
}

// moveFile renames src to dest, falling back to a copy through a sibling of
// dest so the final rename stays atomic when src is on another filesystem.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	partial := dest + ".partial"
	if err := copyFile(src, partial); err != nil {
		os.Remove(partial)
		return err
	}
	if err := os.Rename(partial, dest); err != nil {
		os.Remove(partial)
		return fmt.Errorf("failed to move %s to %s: %w", src, dest, err)
	}
	return os.Remove(src)
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dest, err)
	}
	return out.Close()
}
