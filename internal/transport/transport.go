package transport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"trainer-downloader/pkg/tasks"

	"github.com/go-resty/resty/v2"
)

// Downloader performs single streaming HTTP GETs into local files.
type Downloader struct {
	client *resty.Client
}

func NewDownloader() *Downloader {
	return &Downloader{client: resty.New()}
}

// GetToFile streams the body of url into dest, creating parent directories
// as needed. A non-2xx response or transport error fails with
// ErrDownloadFailed and leaves no file behind. There are no retries.
func (d *Downloader) GetToFile(ctx context.Context, url, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dest, err)
	}

	res, err := d.client.R().
		SetContext(ctx).
		SetOutput(dest).
		Get(url)
	if err != nil {
		os.Remove(dest)
		return fmt.Errorf("%w: GET %s: %v", tasks.ErrDownloadFailed, url, err)
	}
	if !res.IsSuccess() {
		os.Remove(dest)
		return fmt.Errorf("%w: GET %s: status %d", tasks.ErrDownloadFailed, url, res.StatusCode())
	}
	return nil
}
