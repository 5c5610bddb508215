package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root wither command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "wither",
		Short: "Expiring key/value persistence",
		Long: `Wither stores key/value data with time-based expiry. Entries are checked
and evicted lazily when read, never by a background sweeper. Data can live
in memory, a JSON file, SQLite, or Redis.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newGetCmd(),
		newSetCmd(),
		newHasCmd(),
		newRemoveCmd(),
		newClearCmd(),
		newServeCmd(),
		newInitCmd(),
	)

	return root
}
