package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"coopledger/internal/cli"
	"coopledger/internal/log"
)

func newResetCommand(st *state) *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all data and recreate an empty ledger",
		Args:  cobra.NoArgs,
		RunE: st.run(func(cmd *cobra.Command, app *cli.App, _ []string) error {
			if !confirm {
				return errors.New("reset deletes every record; pass --yes to confirm")
			}
			log.FromContext(cmd.Context()).Warn("Resetting ledger", log.FieldPath, app.Config.DBPath)
			if err := app.Store.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Ledger reset")
			return nil
		}),
	}

	cmd.Flags().BoolVar(&confirm, "yes", false, "confirm the reset")
	return cmd
}
