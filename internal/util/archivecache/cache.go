// Package archivecache downloads icon theme archives and keeps them in the
// user cache directory so repeated installs do not download again.
package archivecache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	httputil "github.com/galister/freedesktop/internal/util/http"
	"github.com/galister/freedesktop/internal/version"
	"github.com/galister/freedesktop/pkg/xdg"
)

// CacheOptions configures archive caching behavior.
type CacheOptions struct {
	// CacheDir is the directory where archives are cached.
	// If empty, defaults to $XDG_CACHE_HOME/freedesktop-icon/archives.
	CacheDir string

	// Refresh downloads the archive even when a cached copy exists.
	Refresh bool

	// Fetch configures the download.
	Fetch httputil.FetchOptions
}

// CacheDir returns the archive cache directory below the user's
// $XDG_CACHE_HOME.
func CacheDir(dirs xdg.Dirs) (string, error) {
	if dirs.CacheHome == "" {
		return "", fmt.Errorf("failed to determine cache directory: neither XDG_CACHE_HOME nor HOME is set")
	}
	return filepath.Join(dirs.CacheHome, version.Name, "archives"), nil
}

// DefaultCacheDir returns the archive cache directory for the current
// environment.
func DefaultCacheDir() (string, error) {
	dirs, err := xdg.FromEnv()
	if err != nil {
		return "", fmt.Errorf("failed to determine cache directory: %w", err)
	}
	return CacheDir(dirs)
}

// cacheName derives a stable file name from a URL. The URL's own file name
// is kept as a suffix so the archive format can still be read from it.
func cacheName(rawURL string) string {
	hash := sha256.Sum256([]byte(rawURL))
	prefix := fmt.Sprintf("%x", hash[:8])

	base := ""
	if parsed, err := url.Parse(rawURL); err == nil {
		base = path.Base(parsed.Path)
	}
	if base == "" || base == "/" || base == "." {
		return prefix
	}
	return prefix + "-" + base
}

// DownloadAndCache returns the local path of the archive at rawURL,
// downloading it first unless a cached copy exists.
func DownloadAndCache(ctx context.Context, rawURL string, opts CacheOptions) (string, error) {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return "", fmt.Errorf("invalid URL: must start with http:// or https://")
	}

	cacheDir := opts.CacheDir
	if cacheDir == "" {
		defaultDir, err := DefaultCacheDir()
		if err != nil {
			return "", err
		}
		cacheDir = defaultDir
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil { // #nosec G301 - cache directory needs standard permissions
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	cachedPath := filepath.Join(cacheDir, cacheName(rawURL))
	if !opts.Refresh {
		if info, err := os.Stat(cachedPath); err == nil && info.Mode().IsRegular() {
			return cachedPath, nil
		}
	}

	data, err := httputil.Fetch(ctx, rawURL, opts.Fetch)
	if err != nil {
		return "", fmt.Errorf("failed to download archive: %w", err)
	}

	// Write to a temporary file first so an interrupted download is never
	// mistaken for a cached archive.
	tmp, err := os.CreateTemp(cacheDir, ".download-")
	if err != nil {
		return "", fmt.Errorf("failed to create cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write cached archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write cached archive: %w", err)
	}
	if err := os.Rename(tmp.Name(), cachedPath); err != nil {
		return "", fmt.Errorf("failed to store cached archive: %w", err)
	}

	return cachedPath, nil
}
