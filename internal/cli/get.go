package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	opts := &storeOptions{}

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Read the value stored under a key",
		Long: `Reads a value, applying expiry on the way: an entry past its timeout is
evicted and reported as null. The value is printed as JSON.`,
		Example: `  wither get greeting
  wither get greeting --backend sqlite --sqlite-path wither.db`,
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

			value, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(value)
		},
	}

	opts.addFlags(cmd)
	return cmd
}
