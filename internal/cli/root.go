// Package cli provides the command-line interface for freedesktop-icon.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/galister/freedesktop/internal/version"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	verbose  bool
	trace    bool
	quiet    bool
	theme    string
	dataDirs []string
}

// registerFlags adds the global flags to fs.
func (o *rootOptions) registerFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "enable verbose output")
	fs.BoolVar(&o.trace, "trace", false, "log every probed path")
	fs.BoolVarP(&o.quiet, "quiet", "q", false, "suppress warnings")
	fs.StringVarP(&o.theme, "theme", "t", "", "icon theme to use instead of the configured one")
	fs.StringSliceVar(&o.dataDirs, "data-dir", nil, "override XDG_DATA_DIRS (repeatable)")
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   version.Name,
		Short: "Resolve freedesktop icon names to files",
		Long: `freedesktop-icon resolves symbolic icon names such as "firefox" or
"folder" to image files, following the freedesktop.org Icon Theme
Specification.

Themes are searched in $XDG_DATA_HOME/icons and $XDG_DATA_DIRS/icons.
The active theme is read from the GTK settings files (and kdeglobals on
KDE Plasma), falling back to hicolor.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	opts.registerFlags(rootCmd.PersistentFlags())
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newGetCmd(opts),
		newThemeCmd(opts),
		newListCmd(opts),
		newInstallCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
				return nil
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(version.GetInfo())
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")
	return cmd
}
