package cli

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"
)

func newSetCmd() *cobra.Command {
	opts := &storeOptions{}
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a value under a key",
		Long: `Stores a value. The value argument is parsed as JSON when possible and
stored as a plain string otherwise. With --timeout the entry carries its
own expiry, overriding any global default.`,
		Example: `  wither set greeting hello
  wither set visits 42 --timeout 24h
  wither set user '{"name":"ada"}'`,
		Args: cobra.ExactArgs(2),
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

			value := parseValue(args[1])
			if cmd.Flags().Changed("timeout") {
				return st.SetWithTimeout(cmd.Context(), args[0], value, timeout)
			}
			return st.Set(cmd.Context(), args[0], value)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "per-entry expiry, overrides the global default")
	return cmd
}

// parseValue interprets the argument as JSON if it parses, otherwise as a
// bare string, so `set visits 42` stores a number and `set name ada`
// stores a string.
func parseValue(arg string) any {
	var v any
	if err := json.Unmarshal([]byte(arg), &v); err != nil {
		return arg
	}
	return v
}
