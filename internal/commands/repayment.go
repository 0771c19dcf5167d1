package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"coopledger/internal/cli"
	"coopledger/internal/core"
)

func newRepaymentCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repayment",
		Short: "Manage recorded repayments",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a repayment and take it off the loan balance",
		Args:  cobra.ExactArgs(1),
		RunE: st.run(func(cmd *cobra.Command, app *cli.App, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ok, err := app.Ledger.DeleteRepayment(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !ok {
				return core.WrapRepaymentNotFound(id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Repayment #%d deleted\n", id)
			return nil
		}),
	})
	return cmd
}
