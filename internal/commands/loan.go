package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"coopledger/internal/cli"
	"coopledger/internal/core"
	"coopledger/internal/ledger"
)

func newLoanCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Issue and manage loans",
	}

	cmd.AddCommand(
		newLoanIssueCommand(st),
		newLoanListCommand(st),
		newLoanShowCommand(st),
		newLoanUpdateCommand(st),
		newLoanDeleteCommand(st),
		newLoanRepayCommand(st),
		newLoanRepaymentsCommand(st),
	)
	return cmd
}

func newLoanIssueCommand(st *state) *cobra.Command {
	var memberID int64
	var amount, rate, endDate string

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a loan to a member",
		Args:  cobra.NoArgs,
		RunE: st.run(func(cmd *cobra.Command, app *cli.App, _ []string) error {
			principal, err := parseAmount(amount)
			if err != nil {
				return err
			}
			r, err := parseRate(rate)
			if err != nil {
				return err
			}
			end, err := parseDate(endDate)
			if err != nil {
				return err
			}

			l, err := app.Ledger.IssueLoan(cmd.Context(), ledger.IssueLoanParams{
				MemberID:     memberID,
				Principal:    principal,
				InterestRate: r,
				EndDate:      end,
			})
			if err != nil {
				return err
			}

			money := app.Config.CurrencySymbol
			fmt.Fprintf(cmd.OutOrStdout(), "Loan #%d issued: %s at %s%% (interest %s, total due %s)\n",
				l.ID, core.FormatMoney(money, l.Amount), l.InterestRate,
				core.FormatMoney(money, l.TotalInterest), core.FormatMoney(money, l.TotalDue()))
			return nil
		}),
	}

	cmd.Flags().Int64Var(&memberID, "member", 0, "borrowing member id (required)")
	_ = cmd.MarkFlagRequired("member")
	cmd.Flags().StringVar(&amount, "amount", "", "principal (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&rate, "rate", "0", "flat interest rate in percent")
	cmd.Flags().StringVar(&endDate, "end-date", "", "expected end date, YYYY-MM-DD")
	return cmd
}

func newLoanListCommand(st *state) *cobra.Command {
	var memberID int64
	var active bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List loans",
		Args:  cobra.NoArgs,
		RunE: st.run(func(cmd *cobra.Command, app *cli.App, _ []string) error {
			ctx := cmd.Context()

			var (
				loans []core.Loan
				err   error
			)
			switch {
			case active:
				loans, err = app.Ledger.ListActiveLoans(ctx)
			case memberID > 0:
				loans, err = app.Ledger.ListLoansByMember(ctx, memberID)
			default:
				loans, err = app.Ledger.ListLoans(ctx)
			}
			if err != nil {
				return err
			}
			if len(loans) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No loans")
				return nil
			}

			money := app.Config.CurrencySymbol
			tw := newTable(cmd.OutOrStdout())
			row(tw, "ID", "MEMBER", "AMOUNT", "RATE %", "REPAID", "OUTSTANDING", "STATUS", "START")
			for _, l := range loans {
				if active && memberID > 0 && l.MemberID != memberID {
					continue
				}
				row(tw, l.ID, l.MemberID,
					core.FormatMoney(money, l.Amount), l.InterestRate,
					core.FormatMoney(money, l.AmountRepaid), core.FormatMoney(money, l.Outstanding()),
					l.Status, date(l.StartDate))
			}
			return tw.Flush()
		}),
	}

	cmd.Flags().Int64Var(&memberID, "member", 0, "only loans of this member")
	cmd.Flags().BoolVar(&active, "active", false, "only Active loans")
	return cmd
}

func newLoanShowCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a loan and its balance",
		Args:  cobra.ExactArgs(1),
		RunE: st.run(func(cmd *cobra.Command, app *cli.App, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			l, err := app.Ledger.GetLoan(ctx, id)
			if err != nil {
				return err
			}
			if l == nil {
				return core.WrapLoanNotFound(id)
			}
			reps, err := app.Ledger.ListRepayments(ctx, id)
			if err != nil {
				return err
			}

			money := app.Config.CurrencySymbol
			tw := newTable(cmd.OutOrStdout())
			row(tw, "ID:", l.ID)
			row(tw, "Member:", l.MemberID)
			row(tw, "Principal:", core.FormatMoney(money, l.Amount))
			row(tw, "Rate:", l.InterestRate.String()+"%")
			row(tw, "Interest:", core.FormatMoney(money, l.TotalInterest))
			row(tw, "Total due:", core.FormatMoney(money, l.TotalDue()))
			row(tw, "Repaid:", core.FormatMoney(money, l.AmountRepaid))
			row(tw, "Outstanding:", core.FormatMoney(money, l.Outstanding()))
			row(tw, "Status:", l.Status)
			row(tw, "Started:", date(l.StartDate))
			row(tw, "Ends:", optDate(l.EndDate))
			row(tw, "Repayments:", len(reps))
			return tw.Flush()
		}),
	}
}

func newLoanUpdateCommand(st *state) *cobra.Command {
	var rate, endDate, status string
	var clearEndDate bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a loan's rate, end date or status",
		Args:  cobra.ExactArgs(1),
		RunE: st.run(func(cmd *cobra.Command, app *cli.App, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var changes ledger.LoanChanges
			flags := cmd.Flags()
			if flags.Changed("rate") {
				r, err := parseRate(rate)
				if err != nil {
					return err
				}
				changes.InterestRate = &r
			}
			if flags.Changed("end-date") {
				if changes.EndDate, err = parseDate(endDate); err != nil {
					return err
				}
			}
			changes.ClearEndDate = clearEndDate
			if flags.Changed("status") {
				s := core.LoanStatus(status)
				changes.Status = &s
			}

			l, err := app.Ledger.UpdateLoan(cmd.Context(), id, changes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loan #%d updated (%s)\n", l.ID, l.Status)
			return nil
		}),
	}

	cmd.Flags().StringVar(&rate, "rate", "", "interest rate in percent; interest already fixed is unchanged")
	cmd.Flags().StringVar(&endDate, "end-date", "", "end date, YYYY-MM-DD")
	cmd.Flags().BoolVar(&clearEndDate, "clear-end-date", false, "remove the end date")
	cmd.MarkFlagsMutuallyExclusive("end-date", "clear-end-date")
	cmd.Flags().StringVar(&status, "status", "", "Pending, Active or Defaulted")
	return cmd
}

func newLoanDeleteCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a loan and its repayments",
		Args:  cobra.ExactArgs(1),
		RunE: st.run(func(cmd *cobra.Command, app *cli.App, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ok, err := app.Ledger.DeleteLoan(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !ok {
				return core.WrapLoanNotFound(id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loan #%d deleted\n", id)
			return nil
		}),
	}
}

func newLoanRepayCommand(st *state) *cobra.Command {
	var amount, notes, paidOn string

	cmd := &cobra.Command{
		Use:   "repay <loan-id>",
		Short: "Record a repayment against a loan",
		Args:  cobra.ExactArgs(1),
		RunE: st.run(func(cmd *cobra.Command, app *cli.App, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			paid, err := parseAmount(amount)
			if err != nil {
				return err
			}
			when, err := parseDate(paidOn)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			rep, err := app.Ledger.RecordRepayment(ctx, ledger.RepaymentParams{
				LoanID:      id,
				Amount:      paid,
				PaymentDate: when,
				Notes:       notes,
			})
			if err != nil {
				return err
			}

			l, err := app.Ledger.GetLoan(ctx, id)
			if err != nil {
				return err
			}

			money := app.Config.CurrencySymbol
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Repayment #%d of %s recorded on loan #%d\n", rep.ID, core.FormatMoney(money, rep.AmountPaid), id)
			if l != nil {
				if l.Status == core.LoanPaid {
					fmt.Fprintf(out, "Loan #%d is fully paid\n", id)
				} else {
					fmt.Fprintf(out, "Outstanding: %s\n", core.FormatMoney(money, l.Outstanding()))
				}
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount paid (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&notes, "notes", "", "free text")
	cmd.Flags().StringVar(&paidOn, "date", "", "payment date, YYYY-MM-DD (default today)")
	return cmd
}

func newLoanRepaymentsCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "repayments <loan-id>",
		Short: "List the repayments of a loan",
		Args:  cobra.ExactArgs(1),
		RunE: st.run(func(cmd *cobra.Command, app *cli.App, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			reps, err := app.Ledger.ListRepayments(cmd.Context(), id)
			if err != nil {
				return err
			}
			if len(reps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No repayments")
				return nil
			}

			money := app.Config.CurrencySymbol
			tw := newTable(cmd.OutOrStdout())
			row(tw, "ID", "AMOUNT", "DATE", "NOTES")
			for _, r := range reps {
				row(tw, r.ID, core.FormatMoney(money, r.AmountPaid), date(r.PaymentDate), orDash(r.Notes))
			}
			return tw.Flush()
		}),
	}
}
