package installer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

const githubAPIBase = "https://api.github.com"

// LatestRelease fetches the latest release of the toolchain repository.
func (i *Installer) LatestRelease(ctx context.Context) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", i.apiBase, i.repo)
	return i.fetchRelease(ctx, url)
}

// ReleaseByTag fetches a release by tag. Tags are used exactly as given.
func (i *Installer) ReleaseByTag(ctx context.Context, tag string) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/tags/%s", i.apiBase, i.repo, tag)
	return i.fetchRelease(ctx, url)
}

// Release returns the release for tag, or the latest one when tag is empty
// or "latest".
func (i *Installer) Release(ctx context.Context, tag string) (*Release, error) {
	if tag == "" || tag == "latest" {
		return i.LatestRelease(ctx)
	}
	return i.ReleaseByTag(ctx, tag)
}

func (i *Installer) fetchRelease(ctx context.Context, url string) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "kff")

	// Support optional GitHub token for higher rate limits.
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		req.Header.Set("Authorization", "token "+token)
	}

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("release not found")
	}
	if resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("GitHub API rate limit exceeded. Set GITHUB_TOKEN for higher limits")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var release Release
	if err := json.Unmarshal(body, &release); err != nil {
		return nil, fmt.Errorf("parsing release JSON: %w", err)
	}
	return &release, nil
}

// AssetName returns the archive name published for a toolchain target.
func AssetName(target string) string {
	return target + ".tar.gz"
}

// SelectAsset finds the archive for target. Release assets carry a prefix
// (for example "x-tools-kindlehf.tar.gz"), so names are matched by suffix.
func SelectAsset(release *Release, target string) (*Asset, error) {
	want := AssetName(target)
	for idx := range release.Assets {
		if strings.HasSuffix(release.Assets[idx].Name, want) {
			return &release.Assets[idx], nil
		}
	}
	return nil, fmt.Errorf("no asset named %q found in release %s", want, release.TagName)
}
