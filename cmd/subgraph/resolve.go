package main

import (
	"fmt"

	"github.com/aegonwolf/substack/internal/identity"
	"github.com/spf13/cobra"
)

var resolveCategory bool

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().BoolVar(&resolveCategory, "category", false, "Treat arguments as category names")
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <url-or-category>...",
	Short: "Print the canonical identifier of each argument",
	Long: `Print the identifier each argument is merged under, one per line
as "raw<TAB>key". Useful for checking which URLs collapse into one node.

Examples:
  subgraph resolve https://lenny.substack.com https://www.lenny.com
  subgraph resolve --category Technology`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, raw := range args {
			key := identity.Publication(raw)
			if resolveCategory {
				key = identity.Category(raw)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", raw, key)
		}
	},
}
