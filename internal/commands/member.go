package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"coopledger/internal/cli"
	"coopledger/internal/core"
	"coopledger/internal/ledger"
)

func newMemberCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage members",
	}

	cmd.AddCommand(
		newMemberAddCommand(st),
		newMemberListCommand(st),
		newMemberShowCommand(st),
		newMemberUpdateCommand(st),
		newMemberDeleteCommand(st),
	)
	return cmd
}

func newMemberAddCommand(st *state) *cobra.Command {
	var p ledger.CreateMemberParams
	var status string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new member",
		Args:  cobra.NoArgs,
		RunE: st.run(func(cmd *cobra.Command, app *cli.App, _ []string) error {
			p.Status = core.MemberStatus(status)
			m, err := app.Ledger.CreateMember(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Member #%d %s added\n", m.ID, m.Name)
			return nil
		}),
	}

	cmd.Flags().StringVar(&p.Name, "name", "", "full name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&p.Contact, "contact", "", "phone number")
	cmd.Flags().StringVar(&p.Email, "email", "", "email address")
	cmd.Flags().StringVar(&status, "status", string(core.MemberActive), "Active, Inactive or Suspended")
	return cmd
}

func newMemberListCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List members",
		Args:  cobra.NoArgs,
		RunE: st.run(func(cmd *cobra.Command, app *cli.App, _ []string) error {
			members, err := app.Ledger.ListMembers(cmd.Context())
			if err != nil {
				return err
			}
			if len(members) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No members")
				return nil
			}

			tw := newTable(cmd.OutOrStdout())
			row(tw, "ID", "NAME", "CONTACT", "EMAIL", "STATUS", "JOINED")
			for _, m := range members {
				row(tw, m.ID, m.Name, orDash(m.Contact), orDash(m.Email), m.Status, date(m.JoinDate))
			}
			return tw.Flush()
		}),
	}
}

func newMemberShowCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a member with their loans and contributions",
		Args:  cobra.ExactArgs(1),
		RunE: st.run(func(cmd *cobra.Command, app *cli.App, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			m, err := app.Ledger.GetMember(ctx, id)
			if err != nil {
				return err
			}
			if m == nil {
				return core.WrapMemberNotFound(id)
			}

			loans, err := app.Ledger.ListLoansByMember(ctx, id)
			if err != nil {
				return err
			}
			contributions, err := app.Ledger.ListContributionsByMember(ctx, id)
			if err != nil {
				return err
			}

			money := app.Config.CurrencySymbol
			out := cmd.OutOrStdout()
			tw := newTable(out)
			row(tw, "ID:", m.ID)
			row(tw, "Name:", m.Name)
			row(tw, "Contact:", orDash(m.Contact))
			row(tw, "Email:", orDash(m.Email))
			row(tw, "Status:", m.Status)
			row(tw, "Joined:", date(m.JoinDate))

			outstanding := decimal.Zero
			for _, l := range loans {
				outstanding = outstanding.Add(l.Outstanding())
			}
			contributed := decimal.Zero
			for _, c := range contributions {
				contributed = contributed.Add(c.Amount)
			}
			row(tw, "Loans:", fmt.Sprintf("%d (%s outstanding)", len(loans), core.FormatMoney(money, outstanding)))
			row(tw, "Contributions:", fmt.Sprintf("%d (%s total)", len(contributions), core.FormatMoney(money, contributed)))
			return tw.Flush()
		}),
	}
}

func newMemberUpdateCommand(st *state) *cobra.Command {
	var name, contact, email, status string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a member's details",
		Args:  cobra.ExactArgs(1),
		RunE: st.run(func(cmd *cobra.Command, app *cli.App, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var changes ledger.MemberChanges
			flags := cmd.Flags()
			if flags.Changed("name") {
				changes.Name = &name
			}
			if flags.Changed("contact") {
				changes.Contact = &contact
			}
			if flags.Changed("email") {
				changes.Email = &email
			}
			if flags.Changed("status") {
				s := core.MemberStatus(status)
				changes.Status = &s
			}

			m, err := app.Ledger.UpdateMember(cmd.Context(), id, changes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Member #%d updated\n", m.ID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&contact, "contact", "", "phone number")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&status, "status", "", "Active, Inactive or Suspended")
	return cmd
}

func newMemberDeleteCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a member with all their loans, repayments and contributions",
		Args:  cobra.ExactArgs(1),
		RunE: st.run(func(cmd *cobra.Command, app *cli.App, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ok, err := app.Ledger.DeleteMember(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !ok {
				return core.WrapMemberNotFound(id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Member #%d deleted\n", id)
			return nil
		}),
	}
}
