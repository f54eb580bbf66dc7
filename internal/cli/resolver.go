package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/galister/freedesktop/internal/version"
	"github.com/galister/freedesktop/pkg/icontheme"
	"github.com/galister/freedesktop/pkg/xdg"
)

// logger returns a logger writing to the command's stderr at the level
// selected by the global flags.
func (o *rootOptions) logger(cmd *cobra.Command) hclog.Logger {
	level := hclog.Warn
	switch {
	case o.trace:
		level = hclog.Trace
	case o.verbose:
		level = hclog.Debug
	case o.quiet:
		level = hclog.Error
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   version.Name,
		Output: cmd.ErrOrStderr(),
		Level:  level,
		Color:  hclog.AutoColor,
	})
}

// resolver builds an icon theme resolver from the environment and flags.
func (o *rootOptions) resolver(cmd *cobra.Command) (*icontheme.Resolver, hclog.Logger, error) {
	logger := o.logger(cmd)

	dirs, err := xdg.FromEnv()
	if err != nil {
		return nil, nil, err
	}

	if len(o.dataDirs) > 0 {
		dataDirs := make([]string, 0, len(o.dataDirs))
		for _, dir := range o.dataDirs {
			abs, err := filepath.Abs(dir)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid data directory %q: %w", dir, err)
			}
			dataDirs = append(dataDirs, abs)
		}
		dirs.DataDirs = dataDirs
	}

	r := icontheme.NewBuilder().
		WithDirs(dirs).
		WithDesktopDetection().
		WithLogger(logger).
		Build()

	return r, logger, nil
}

// selectTheme picks the theme named by args, then --theme, then the
// configured theme.
func (o *rootOptions) selectTheme(r *icontheme.Resolver, args []string) (*icontheme.Theme, error) {
	name := o.theme
	if len(args) > 0 {
		name = args[0]
	}

	if name == "" {
		return r.Current()
	}

	theme, ok := r.ThemeByName(name)
	if !ok {
		return nil, fmt.Errorf("icon theme %q not found in %s", name, strings.Join(iconRoots(r.Dirs()), ", "))
	}
	return theme, nil
}

func iconRoots(dirs xdg.Dirs) []string {
	roots := []string{dirs.IconsHome()}
	for _, dir := range dirs.DataDirs {
		roots = append(roots, filepath.Join(dir, "icons"))
	}
	return roots
}

// newTableFor returns a table that renders aligned on a terminal and as
// tab-separated values otherwise.
func newTableFor(w io.Writer, headers ...string) *Table {
	t := NewTable(headers...)
	t.Plain = !isTerminal(w)
	return t
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 - file descriptors fit in int
}
