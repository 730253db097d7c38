// Package googlefonts fetches font files from the google/fonts repository on GitHub.
package googlefonts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"corebell/internal/download"
)

const (
	DefaultAPIBase   = "https://api.github.com/repos/google/fonts/contents/ofl"
	DefaultRawPrefix = "https://raw.githubusercontent.com/google/fonts/"
)

// ErrNotFound means no family folder matched the name.
var ErrNotFound = errors.New("font not found on Google Fonts")

// Client lists family folders through the GitHub contents API. Only files
// under RawPrefix are downloaded; the name never becomes a free-form URL.
type Client struct {
	APIBase   string
	RawPrefix string
	HTTP      *http.Client
}

// New returns a Client for the public repository.
func New() *Client {
	return &Client{
		APIBase:   DefaultAPIBase,
		RawPrefix: DefaultRawPrefix,
		HTTP:      &http.Client{Timeout: 15 * time.Second},
	}
}

type githubFile struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// Folders returns the ofl folder names to try for a display name:
// "Open Sans" gives "opensans" then "open-sans".
func Folders(name string) []string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return nil
	}
	noSpaces := strings.ReplaceAll(lower, " ", "")
	out := []string{noSpaces}
	if hy := strings.ReplaceAll(lower, " ", "-"); hy != noSpaces {
		out = append(out, hy)
	}
	return out
}

// DownloadURL returns the raw URL of a font file in folder, preferring an upright face.
func (c *Client) DownloadURL(ctx context.Context, folder string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIBase+"/"+url.PathEscape(folder), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("google fonts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s", ErrNotFound, folder)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google fonts: HTTP %d", resp.StatusCode)
	}
	var files []githubFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return "", fmt.Errorf("google fonts: %w", err)
	}
	var italic string
	for _, f := range files {
		lower := strings.ToLower(f.Name)
		if f.Type != "file" || !strings.HasPrefix(f.DownloadURL, c.RawPrefix) {
			continue
		}
		if !strings.HasSuffix(lower, ".ttf") && !strings.HasSuffix(lower, ".otf") {
			continue
		}
		if !strings.Contains(lower, "italic") {
			return f.DownloadURL, nil
		}
		if italic == "" {
			italic = f.DownloadURL
		}
	}
	if italic != "" {
		return italic, nil
	}
	return "", fmt.Errorf("%w: no .ttf or .otf in %s", ErrNotFound, folder)
}

// Fetch downloads the family into destDir/<folder>/ and returns the file path.
func (c *Client) Fetch(ctx context.Context, family, destDir string) (string, error) {
	folders := Folders(family)
	if len(folders) == 0 {
		return "", fmt.Errorf("google fonts: empty family name")
	}
	var lastErr error
	for _, folder := range folders {
		u, err := c.DownloadURL(ctx, folder)
		if err != nil {
			lastErr = err
			continue
		}
		return download.Download(ctx, u, filepath.Join(destDir, folder))
	}
	return "", lastErr
}
