package cli

import (
	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	opts := &storeOptions{}

	cmd := &cobra.Command{
		Use:   "remove <key>",
		Short: "Delete the entry for a key",
		Long:  `Deletes an entry. Removing a key that does not exist is not an error.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			st, cleanup, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			return st.Remove(cmd.Context(), args[0])
		},
	}

	opts.addFlags(cmd)
	return cmd
}
