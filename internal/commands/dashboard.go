package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"coopledger/internal/cli"
	"coopledger/internal/core"
)

func newDashboardCommand(st *state) *cobra.Command {
	var window, limit int

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show society totals, the contribution trend and recent activity",
		Args:  cobra.NoArgs,
		RunE: st.run(func(cmd *cobra.Command, app *cli.App, _ []string) error {
			if !cmd.Flags().Changed("window") {
				window = app.Config.TrendWindow
			}
			if !cmd.Flags().Changed("limit") {
				limit = app.Config.ActivityLimit
			}

			d, err := app.Ledger.Dashboard(cmd.Context(), window, limit)
			if err != nil {
				return err
			}

			money := app.Config.CurrencySymbol
			out := cmd.OutOrStdout()

			tw := newTable(out)
			row(tw, "Members:", d.MemberCount)
			row(tw, "Total contributions:", core.FormatMoney(money, d.TotalContributions))
			row(tw, "Total loans issued:", core.FormatMoney(money, d.TotalLoansIssued))
			row(tw, "Active loans:", d.ActiveLoanCount)
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintln(out, "\nMonthly contributions")
			if len(d.Trend) == 0 {
				fmt.Fprintln(out, "  none")
			} else {
				tw = newTable(out)
				for _, m := range d.Trend {
					row(tw, "  "+m.Month, core.FormatMoney(money, m.Amount))
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}

			fmt.Fprintln(out, "\nContributions by member")
			if len(d.ByMember) == 0 {
				fmt.Fprintln(out, "  none")
			} else {
				tw = newTable(out)
				for _, m := range d.ByMember {
					row(tw, fmt.Sprintf("  #%d", m.MemberID), m.MemberName, core.FormatMoney(money, m.Amount))
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}

			fmt.Fprintln(out, "\nRecent activity")
			if len(d.Recent) == 0 {
				fmt.Fprintln(out, "  none")
				return nil
			}
			tw = newTable(out)
			for _, a := range d.Recent {
				row(tw, "  "+date(a.Date), a.Kind, a.MemberName, core.FormatMoney(money, a.Amount), a.Description)
			}
			return tw.Flush()
		}),
	}

	cmd.Flags().IntVar(&window, "window", 0, "months in the contribution trend (default TREND_WINDOW)")
	cmd.Flags().IntVar(&limit, "limit", 0, "entries in the activity feed (default ACTIVITY_LIMIT)")
	return cmd
}
