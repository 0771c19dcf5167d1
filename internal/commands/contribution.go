package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"coopledger/internal/cli"
	"coopledger/internal/core"
	"coopledger/internal/ledger"
)

func newContributionCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contribution",
		Aliases: []string{"contrib"},
		Short:   "Record and list contributions",
	}

	cmd.AddCommand(
		newContributionRecordCommand(st),
		newContributionListCommand(st),
		newContributionDeleteCommand(st),
	)
	return cmd
}

func newContributionRecordCommand(st *state) *cobra.Command {
	var memberID int64
	var amount, kind, month, notes, on string

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a member contribution",
		Args:  cobra.NoArgs,
		RunE: st.run(func(cmd *cobra.Command, app *cli.App, _ []string) error {
			a, err := parseAmount(amount)
			if err != nil {
				return err
			}
			when, err := parseDate(on)
			if err != nil {
				return err
			}

			c, err := app.Ledger.RecordContribution(cmd.Context(), ledger.ContributionParams{
				MemberID: memberID,
				Amount:   a,
				Type:     core.ContributionType(kind),
				Month:    month,
				Date:     when,
				Notes:    notes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contribution #%d of %s recorded for %s\n",
				c.ID, core.FormatMoney(app.Config.CurrencySymbol, c.Amount), c.Month)
			return nil
		}),
	}

	cmd.Flags().Int64Var(&memberID, "member", 0, "contributing member id (required)")
	_ = cmd.MarkFlagRequired("member")
	cmd.Flags().StringVar(&amount, "amount", "", "amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&kind, "type", string(core.ContributionMonthly), "Monthly, Weekly or Voluntary")
	cmd.Flags().StringVar(&month, "month", "", "reporting month YYYY-MM (default current month)")
	cmd.Flags().StringVar(&notes, "notes", "", "free text")
	cmd.Flags().StringVar(&on, "date", "", "contribution date, YYYY-MM-DD (default today)")
	return cmd
}

func newContributionListCommand(st *state) *cobra.Command {
	var memberID int64
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contributions",
		Args:  cobra.NoArgs,
		RunE: st.run(func(cmd *cobra.Command, app *cli.App, _ []string) error {
			ctx := cmd.Context()

			var (
				cs  []core.Contribution
				err error
			)
			switch {
			case memberID > 0:
				cs, err = app.Ledger.ListContributionsByMember(ctx, memberID)
			case month != "":
				cs, err = app.Ledger.ListContributionsByMonth(ctx, month)
			default:
				cs, err = app.Ledger.ListContributions(ctx)
			}
			if err != nil {
				return err
			}
			if len(cs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No contributions")
				return nil
			}

			money := app.Config.CurrencySymbol
			tw := newTable(cmd.OutOrStdout())
			row(tw, "ID", "MEMBER", "AMOUNT", "TYPE", "DATE", "MONTH")
			for _, c := range cs {
				if month != "" && c.Month != month {
					continue
				}
				row(tw, c.ID, c.MemberID, core.FormatMoney(money, c.Amount), c.Type, date(c.ContributionDate), c.Month)
			}
			return tw.Flush()
		}),
	}

	cmd.Flags().Int64Var(&memberID, "member", 0, "only contributions of this member")
	cmd.Flags().StringVar(&month, "month", "", "only contributions tagged with this month")
	return cmd
}

func newContributionDeleteCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a contribution",
		Args:  cobra.ExactArgs(1),
		RunE: st.run(func(cmd *cobra.Command, app *cli.App, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ok, err := app.Ledger.DeleteContribution(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !ok {
				return core.WrapContributionNotFound(id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contribution #%d deleted\n", id)
			return nil
		}),
	}
}
