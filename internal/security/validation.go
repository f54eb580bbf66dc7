// Package security provides validation for untrusted theme archives and
// download locations.
package security

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
)

// ValidateHTTPURL validates an HTTP(S) URL for safe downloads.
// Only allows HTTPS from non-local hosts.
func ValidateHTTPURL(urlStr string) error {
	if urlStr == "" {
		return fmt.Errorf("empty URL")
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	// Only allow HTTPS (not HTTP)
	if !strings.EqualFold(parsed.Scheme, "https") {
		return fmt.Errorf("only HTTPS URLs are allowed (got %s)", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("URL must have a hostname")
	}

	// Block localhost and private IPs to prevent SSRF
	host := strings.ToLower(parsed.Hostname())
	if isLocalOrPrivateHost(host) {
		return fmt.Errorf("URL cannot point to local or private hosts: %s", host)
	}

	return nil
}

// ValidateFilePath validates a file path within an archive to prevent directory traversal.
func ValidateFilePath(filePath, baseDir string) error {
	if filePath == "" {
		return fmt.Errorf("empty file path")
	}

	if filepath.IsAbs(filePath) {
		return fmt.Errorf("absolute paths in archives are not allowed: %s", filePath)
	}

	for part := range strings.SplitSeq(filepath.ToSlash(filePath), "/") {
		if part == ".." {
			return fmt.Errorf("file path contains directory traversal (..): %s", filePath)
		}
	}

	if !Within(filepath.Join(baseDir, filePath), baseDir) {
		return fmt.Errorf("file path would escape base directory: %s", filePath)
	}

	return nil
}

// ValidateSymlink validates a symbolic link stored in an archive. Icon themes
// link aliases to real icons, so relative targets are allowed as long as they
// resolve inside baseDir.
func ValidateSymlink(linkPath, target, baseDir string) error {
	if err := ValidateFilePath(linkPath, baseDir); err != nil {
		return err
	}

	if target == "" {
		return fmt.Errorf("symlink %s has an empty target", linkPath)
	}

	if filepath.IsAbs(target) {
		return fmt.Errorf("symlink %s has an absolute target: %s", linkPath, target)
	}

	resolved := filepath.Join(baseDir, filepath.Dir(linkPath), target)
	if !Within(resolved, baseDir) {
		return fmt.Errorf("symlink %s points outside the archive: %s", linkPath, target)
	}

	return nil
}

// Within reports whether path is baseDir or below it.
func Within(path, baseDir string) bool {
	cleanPath := filepath.Clean(path)
	cleanBase := filepath.Clean(baseDir)
	return cleanPath == cleanBase || strings.HasPrefix(cleanPath, cleanBase+string(filepath.Separator))
}

// LimitedReader wraps an io.Reader and limits the total bytes that can be read.
// A single LimitedReader can be shared by every entry of an archive to cap
// the total extracted size.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits. A reader that ends exactly at
// the limit reaches io.EOF normally; only data past the limit is an error.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		var extra [1]byte
		n, err := l.R.Read(extra[:])
		if n > 0 {
			return 0, fmt.Errorf("decompression size limit exceeded")
		}
		return 0, err
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}

// isLocalOrPrivateHost checks if a hostname is localhost or a private IP.
func isLocalOrPrivateHost(host string) bool {
	if host == "localhost" || host == "127.0.0.1" || host == "::1" {
		return true
	}

	if strings.HasPrefix(host, "192.168.") ||
		strings.HasPrefix(host, "10.") ||
		strings.HasPrefix(host, "169.254.") {
		return true
	}

	// 172.16.0.0/12
	if rest, ok := strings.CutPrefix(host, "172."); ok {
		second, _, _ := strings.Cut(rest, ".")
		switch second {
		case "16", "17", "18", "19", "20", "21", "22", "23",
			"24", "25", "26", "27", "28", "29", "30", "31":
			return true
		}
	}

	// Link-local and unique local IPv6
	if strings.HasPrefix(host, "fe80:") || strings.HasPrefix(host, "fc00:") || strings.HasPrefix(host, "fd00:") {
		return true
	}

	return false
}
