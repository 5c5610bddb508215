package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHasCmd() *cobra.Command {
	opts := &storeOptions{}

	cmd := &cobra.Command{
		Use:   "has <key>",
		Short: "Check whether a raw entry exists for a key",
		Long: `Prints true or false. This is an existence check only: an entry past its
timeout that has not been read (and so not evicted) yet still reports true.`,
		Args: cobra.ExactArgs(1),
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

			ok, err := st.Has(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}

	opts.addFlags(cmd)
	return cmd
}
