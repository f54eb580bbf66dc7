package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed icon themes",
		Long: `List the icon themes installed in the XDG data directories.

Themes marked Hidden in their index.theme (such as hicolor) are only
listed with --all.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := opts.resolver(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			table := newTableFor(out, "THEME", "NAME", "INHERITS", "PATH")
			table.SetColumnMaxWidth(1, 30)
			for _, theme := range r.Themes() {
				if theme.Hidden && !all {
					continue
				}
				table.AddRow(theme.Name, theme.DisplayName, strings.Join(theme.Inherits, ","), theme.Path)
			}
			_, err = table.WriteTo(out)
			return err
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include hidden themes")
	return cmd
}
