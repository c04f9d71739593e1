package installer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/progzone122/kff/internal/progress"
)

// ToolchainResult describes an installed toolchain.
type ToolchainResult struct {
	Tag   string
	Asset string
	Dir   string
	Files int
}

// InstallToolchain downloads the release archive for target and unpacks it
// into dir. An empty tag selects the latest release.
func (i *Installer) InstallToolchain(ctx context.Context, target, tag, dir string) (*ToolchainResult, error) {
	if err := ValidateTarget(target); err != nil {
		return nil, err
	}

	release, err := i.Release(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("looking up toolchain release: %w", err)
	}
	asset, err := SelectAsset(release, target)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(i.out, "Downloading from: %s\n", asset.DownloadURL)
	files, err := i.downloadAndExtract(ctx, asset, dir)
	if err != nil {
		return nil, err
	}

	return &ToolchainResult{Tag: release.TagName, Asset: asset.Name, Dir: dir, Files: files}, nil
}

// downloadAndExtract streams the asset through the extractor so the
// archive never touches disk.
func (i *Installer) downloadAndExtract(ctx context.Context, asset *Asset, dir string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.DownloadURL, nil)
	if err != nil {
		return 0, fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", "kff")

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("downloading %s: %w", asset.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	total := resp.ContentLength
	if total <= 0 {
		total = asset.Size
	}

	rep := progress.New(i.out)
	files, err := ExtractTarGz(rep.CountingReader(resp.Body, "Downloading", total), dir)
	rep.Close()
	if err != nil {
		return files, fmt.Errorf("extracting %s: %w", asset.Name, err)
	}
	return files, nil
}
