package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/pagedeck/internal/presentation"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List the registered pages in navigation order",
	Long: `List the page registry as JSON, after sorting, with the index each page
has in the select options and which page is shown at startup.

Examples:
  pagedeck pages
  pagedeck pages --config ./deck.yaml | jq '.pages[].friendly_name'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, _, _, shutdown, err := buildDeck()
		if err != nil {
			return err
		}
		defer shutdown()
		defer d.Close()

		formatter := presentation.NewFormatter(cmd.OutOrStdout())
		return formatter.FormatRegistry(presentation.FromManager(d.Manager))
	},
}

func init() {
	rootCmd.AddCommand(pagesCmd)
}
