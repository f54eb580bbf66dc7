package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newThemeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Inspect icon themes",
		Long: `Inspect the active icon theme or a named one.

Subcommands accept an optional theme name. Without one they use --theme,
then the theme configured for the desktop.`,
	}

	cmd.AddCommand(
		newThemeCurrentCmd(opts),
		newThemeShowCmd(opts),
		newThemeOrderCmd(opts),
		newThemeDirsCmd(opts),
	)
	return cmd
}

func newThemeCurrentCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Print the configured icon theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, logger, err := opts.resolver(cmd)
			if err != nil {
				return err
			}

			theme, err := r.Current()
			if err != nil {
				return err
			}

			logger.Debug("resolved current theme", "theme", theme.Name, "path", theme.Path, "desktop", r.Desktop())
			fmt.Fprintln(cmd.OutOrStdout(), theme.Name)
			return nil
		},
	}
}

func newThemeShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show [theme]",
		Short: "Show a theme's metadata and directories",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := opts.resolver(cmd)
			if err != nil {
				return err
			}

			theme, err := opts.selectTheme(r, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			defaultSize := "-"
			if size, ok := theme.DefaultSize(); ok {
				defaultSize = strconv.Itoa(size)
			}

			fmt.Fprintf(out, "Name:         %s\n", theme.Name)
			fmt.Fprintf(out, "Display name: %s\n", orDash(theme.DisplayName))
			fmt.Fprintf(out, "Path:         %s\n", theme.Path)
			fmt.Fprintf(out, "Comment:      %s\n", orDash(theme.Comment))
			fmt.Fprintf(out, "Inherits:     %s\n", orDash(strings.Join(theme.Inherits, ", ")))
			fmt.Fprintf(out, "Hidden:       %t\n", theme.Hidden)
			fmt.Fprintf(out, "Default size: %s\n", defaultSize)
			fmt.Fprintf(out, "Directories:  %d\n", len(theme.Directories))

			if len(theme.Directories) == 0 {
				return nil
			}

			fmt.Fprintln(out)
			table := newTableFor(out, "DIRECTORY", "SIZE", "SCALE", "CONTEXT", "TYPE")
			for _, dir := range theme.Directories {
				table.AddRow(dir.Name, strconv.Itoa(dir.Size), strconv.Itoa(dir.Scale), dir.Context, dir.Type)
			}
			_, err = table.WriteTo(out)
			return err
		},
	}
}

func newThemeOrderCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "order [theme]",
		Short: "Print the inheritance resolution order",
		Long: `Print the themes searched for an icon, in order. The theme itself comes
first, followed by its ancestors depth-first in declared order. Each theme
appears once and ancestors that are not installed are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := opts.resolver(cmd)
			if err != nil {
				return err
			}

			theme, err := opts.selectTheme(r, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			table := newTableFor(out, "THEME", "PATH")
			for _, t := range theme.ResolutionOrder() {
				table.AddRow(t.Name, t.Path)
			}
			_, err = table.WriteTo(out)
			return err
		},
	}
}

func newThemeDirsCmd(opts *rootOptions) *cobra.Command {
	var size, scale int

	cmd := &cobra.Command{
		Use:   "dirs [theme]",
		Short: "List the directories probed for a size",
		Long: `List the directories probed for icons of the given size and scale, for
every theme in resolution order. Personal overlays under $XDG_DATA_HOME/icons
are listed before the installed directory they shadow.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if size < 0 || scale < 1 {
				return fmt.Errorf("invalid size %d or scale %d", size, scale)
			}

			r, _, err := opts.resolver(cmd)
			if err != nil {
				return err
			}

			theme, err := opts.selectTheme(r, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			table := newTableFor(out, "THEME", "DIRECTORY")
			for _, t := range theme.ResolutionOrder() {
				n := size
				if n == 0 {
					n = t.SearchSize()
				}
				for _, dir := range t.DirectoriesFor(n, scale) {
					table.AddRow(t.Name, dir)
				}
			}
			_, err = table.WriteTo(out)
			return err
		},
	}

	cmd.Flags().IntVarP(&size, "size", "s", 0, "nominal icon size (default: theme default or 48)")
	cmd.Flags().IntVar(&scale, "scale", 1, "HiDPI scale factor")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
