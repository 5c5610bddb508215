package cli

import (
	"github.com/spf13/cobra"
)

func newClearCmd() *cobra.Command {
	opts := &storeOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every entry in the bound backend",
		Args:  cobra.NoArgs,
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

			return st.Clear(cmd.Context())
		},
	}

	opts.addFlags(cmd)
	return cmd
}
