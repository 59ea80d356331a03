package hub

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"trainer-downloader/pkg/tasks"

	"github.com/go-resty/resty/v2"
)

// RepoType selects the hub namespace a repository lives in.
type RepoType string

const (
	ModelRepo   RepoType = "models"
	DatasetRepo RepoType = "datasets"
)

// RepoFile is one entry of a repository's file tree. Size is 0 when the hub
// did not report one (e.g. directory entries, which listings filter out).
type RepoFile struct {
	Path string
	Size int64
}

type treeEntry struct {
	Type string `json:"type"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// Client talks to a HuggingFace-style hub: it lists repository trees and
// downloads individual files or whole snapshots.
type Client struct {
	client *resty.Client
}

func NewClient(endpoint, token string) *Client {
	client := resty.New().SetBaseURL(endpoint)
	if token != "" {
		client.SetAuthToken(token)
	}
	return &Client{client: client}
}

// ListRepoFiles returns the complete recursive file listing of a repository
// with per-file sizes. An empty repository yields an empty slice, not an
// error.
func (c *Client) ListRepoFiles(ctx context.Context, repoType RepoType, repoID string) ([]RepoFile, error) {
	var entries []treeEntry
	res, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("recursive", "true").
		SetResult(&entries).
		Get(fmt.Sprintf("/api/%s/%s/tree/main", repoType, repoID))
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %v", tasks.ErrRepositoryUnavailable, repoID, err)
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("%w: listing %s: status %d", tasks.ErrRepositoryUnavailable, repoID, res.StatusCode())
	}

	var files []RepoFile
	for _, entry := range entries {
		if entry.Type != "file" {
			continue
		}
		files = append(files, RepoFile{Path: entry.Path, Size: entry.Size})
	}
	return files, nil
}

// DownloadFile fetches one named file into destDir, flattened to its base
// name. It is idempotent at the destination-file granularity: an existing
// destination is returned as-is without any network call.
func (c *Client) DownloadFile(ctx context.Context, repoType RepoType, repoID, filePath, destDir string) (string, error) {
	dest := filepath.Join(destDir, path.Base(filePath))
	if _, err := os.Stat(dest); err == nil {
		slog.Info("file already present, skipping download", "repo", repoID, "file", filePath)
		return dest, nil
	}
	if err := c.downloadTo(ctx, repoType, repoID, filePath, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// DownloadSnapshot fetches a repository's file tree into dest, preserving
// relative paths. When allowPatterns is non-empty only files whose path
// matches one of the patterns are fetched. Files already present under dest
// are skipped. Transfers run strictly sequentially.
func (c *Client) DownloadSnapshot(ctx context.Context, repoType RepoType, repoID, dest string, allowPatterns []string) error {
	files, err := c.ListRepoFiles(ctx, repoType, repoID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dest, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create snapshot directory %s: %w", dest, err)
	}

	for _, file := range files {
		if len(allowPatterns) > 0 && !matchesAny(file.Path, allowPatterns) {
			continue
		}
		target := filepath.Join(dest, filepath.FromSlash(file.Path))
		if _, err := os.Stat(target); err == nil {
			continue
		}
		if err := c.downloadTo(ctx, repoType, repoID, file.Path, target); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) downloadTo(ctx context.Context, repoType RepoType, repoID, filePath, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dest, err)
	}

	res, err := c.client.R().
		SetContext(ctx).
		SetOutput(dest).
		Get(c.resolvePath(repoType, repoID, filePath))
	if err != nil {
		os.Remove(dest)
		return fmt.Errorf("%w: %s/%s: %v", tasks.ErrDownloadFailed, repoID, filePath, err)
	}
	if !res.IsSuccess() {
		os.Remove(dest)
		return fmt.Errorf("%w: %s/%s: status %d", tasks.ErrDownloadFailed, repoID, filePath, res.StatusCode())
	}
	return nil
}

func (c *Client) resolvePath(repoType RepoType, repoID, filePath string) string {
	if repoType == DatasetRepo {
		return path.Join("/datasets", repoID, "resolve/main", filePath)
	}
	return path.Join("/", repoID, "resolve/main", filePath)
}

func matchesAny(filePath string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := path.Match(pattern, filePath); err == nil && ok {
			return true
		}
	}
	return false
}
