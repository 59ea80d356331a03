package fetcher

import (
	"context"
	"log/slog"

	"trainer-downloader/internal/hub"
)

type auxAsset struct {
	repoID        string
	allowPatterns []string
}

// Fixed tokenizer and text-encoder repositories image-task training expects
// in the shared hub cache. The t5 repository is restricted to its tokenizer
// files; its weights are never needed here.
var imageAuxAssets = []auxAsset{
	{repoID: "openai/clip-vit-large-patch14"},
	{repoID: "laion/CLIP-ViT-bigG-14-laion2B-39B-b160k"},
	{
		repoID: "google/t5-v1_1-xxl",
		allowPatterns: []string{
			"tokenizer_config.json",
			"spiece.model",
			"special_tokens_map.json",
			"tokenizer.json",
		},
	},
}

// EnsureImageAuxAssets makes the fixed auxiliary assets for image tasks
// present in the shared cache, fetching each missing repository in turn.
func (f *Fetcher) EnsureImageAuxAssets(ctx context.Context) error {
	for _, asset := range imageAuxAssets {
		key := SanitizeRepoID(asset.repoID)
		if f.hfCache.Has(key) {
			slog.Info("auxiliary asset already present, skipping download", "repo", asset.repoID)
			continue
		}
		if err := f.hub.DownloadSnapshot(ctx, hub.ModelRepo, asset.repoID, f.hfCache.Path(key), asset.allowPatterns); err != nil {
			return err
		}
		slog.Info("downloaded auxiliary asset", "repo", asset.repoID)
	}
	return nil
}
