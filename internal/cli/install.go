package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/galister/freedesktop/internal/compression"
	"github.com/galister/freedesktop/internal/security"
	"github.com/galister/freedesktop/internal/util/archivecache"
	"github.com/galister/freedesktop/pkg/xdg"
)

func newInstallCmd(opts *rootOptions) *cobra.Command {
	var (
		force   bool
		refresh bool
		dest    string
	)

	cmd := &cobra.Command{
		Use:   "install <archive|url>",
		Short: "Install an icon theme archive",
		Long: `Install icon themes from a local archive or an HTTPS download.

Every directory in the archive that contains an index.theme is installed
into $XDG_DATA_HOME/icons. Supported formats: .tar.gz, .tar.xz, .tar.bz2,
.tar and .zip.

Examples:
  # Install a downloaded archive
  freedesktop-icon install ~/Downloads/Papirus.tar.gz

  # Install from a release URL, replacing an existing copy
  freedesktop-icon install --force https://example.org/themes/Tela.tar.xz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, opts, args[0], dest, force, refresh)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace themes that are already installed")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "download again even if the archive is cached")
	cmd.Flags().StringVar(&dest, "dest", "", "install into this directory instead of $XDG_DATA_HOME/icons")
	return cmd
}

func runInstall(cmd *cobra.Command, opts *rootOptions, source, dest string, force, refresh bool) error {
	r, logger, err := opts.resolver(cmd)
	if err != nil {
		return err
	}

	data, filename, err := readArchive(cmd.Context(), source, r.Dirs(), refresh)
	if err != nil {
		return err
	}

	if dest == "" {
		dest = r.Dirs().IconsHome()
	}

	result, err := compression.ExtractThemes(data, filename, dest, compression.Options{
		Force:  force,
		Logger: logger.Named("install"),
	})
	if err != nil {
		return fmt.Errorf("failed to install %s: %w", source, err)
	}

	out := cmd.OutOrStdout()
	for i, name := range result.Themes {
		fmt.Fprintf(out, "Installed %s -> %s\n", name, result.Paths[i])

		if theme, ok := r.ThemeByName(name); ok && theme.Path != result.Paths[i] {
			logger.Warn("installed theme is shadowed by another copy", "theme", name, "active", theme.Path)
		}
	}
	return nil
}

// readArchive loads an archive from an HTTPS URL or a local path and
// returns its content and file name. Downloads go through the archive cache.
func readArchive(ctx context.Context, source string, dirs xdg.Dirs, refresh bool) ([]byte, string, error) {
	lower := strings.ToLower(source)
	if !strings.HasPrefix(lower, "https://") && !strings.HasPrefix(lower, "http://") {
		data, err := os.ReadFile(source) // #nosec G304 - user-specified archive
		if err != nil {
			return nil, "", fmt.Errorf("failed to read archive: %w", err)
		}
		return data, filepath.Base(source), nil
	}

	if err := security.ValidateHTTPURL(source); err != nil {
		return nil, "", fmt.Errorf("refusing to download %s: %w", source, err)
	}

	parsed, err := url.Parse(source)
	if err != nil {
		return nil, "", fmt.Errorf("invalid URL: %w", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	cacheDir, err := archivecache.CacheDir(dirs)
	if err != nil {
		return nil, "", err
	}
	cached, err := archivecache.DownloadAndCache(ctx, source, archivecache.CacheOptions{
		CacheDir: cacheDir,
		Refresh:  refresh,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to download %s: %w", source, err)
	}

	data, err := os.ReadFile(cached) // #nosec G304 - path inside the archive cache
	if err != nil {
		return nil, "", fmt.Errorf("failed to read cached archive: %w", err)
	}

	filename := path.Base(parsed.Path)
	if filename == "/" || filename == "." {
		filename = "download"
	}
	return data, filename, nil
}
