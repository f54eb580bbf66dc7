package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCmd(opts *rootOptions) *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "get <icon>...",
		Short: "Resolve icon names to file paths",
		Long: `Resolve one or more icon names to files in the active icon theme.

The theme and its ancestors are searched in resolution order, preferring
SVG over PNG over XPM. Icons missing from every theme are looked up in the
legacy pixmaps directories.

Examples:
  # Resolve an icon in the configured theme
  freedesktop-icon get firefox

  # Resolve several icons at 32px in a specific theme
  freedesktop-icon get --theme Papirus --size 32 firefox thunderbird`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, opts, args, size)
		},
	}

	cmd.Flags().IntVarP(&size, "size", "s", 0, "nominal icon size (default: theme default or 48)")
	return cmd
}

func runGet(cmd *cobra.Command, opts *rootOptions, icons []string, size int) error {
	if size < 0 {
		return fmt.Errorf("invalid size %d: must be positive", size)
	}

	r, _, err := opts.resolver(cmd)
	if err != nil {
		return err
	}

	theme, err := opts.selectTheme(r, nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	missing := 0
	for _, icon := range icons {
		var (
			path string
			ok   bool
		)
		if size > 0 {
			path, ok = theme.GetWithSize(icon, size)
		} else {
			path, ok = theme.Get(icon)
		}

		if !ok {
			missing++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: not found in %s\n", icon, theme.Name)
			continue
		}

		if len(icons) == 1 {
			fmt.Fprintln(out, path)
		} else {
			fmt.Fprintf(out, "%s\t%s\n", icon, path)
		}
	}

	if missing > 0 {
		return fmt.Errorf("%d of %d icons not found", missing, len(icons))
	}
	return nil
}
