package commands

import (
	"github.com/spf13/cobra"

	"coopledger/internal/cli"
	"coopledger/internal/config"
	"coopledger/internal/core"
	"coopledger/internal/log"
)

// Version is set at build time.
var Version = "dev"

// state carries the root flags down to the subcommands.
type state struct {
	envFile string
	dbPath  string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	st := &state{}

	rootCmd := &cobra.Command{
		Use:     "coopledger",
		Short:   "Cooperative society ledger: members, loans, repayments and contributions",
		Version: Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&st.envFile, "env-file", ".env", "environment file to load")
	rootCmd.PersistentFlags().StringVar(&st.dbPath, "db", "", "database file (overrides LEDGER_DB_PATH)")

	rootCmd.AddCommand(
		newMemberCommand(st),
		newLoanCommand(st),
		newRepaymentCommand(st),
		newContributionCommand(st),
		newDashboardCommand(st),
		newExportCommand(st),
		newResetCommand(st),
	)

	return rootCmd
}

type runFunc func(cmd *cobra.Command, app *cli.App, args []string) error

// run opens the ledger for the duration of one command.
func (st *state) run(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := cli.LoadEnvFile(st.envFile); err != nil {
			return err
		}

		cfg, err := cli.LoadAndValidateConfig(func(c *config.Config) {
			if st.dbPath != "" {
				c.DBPath = st.dbPath
			}
		})
		if err != nil {
			return err
		}

		logger := cli.SetupLogger(cfg, cmd.ErrOrStderr()).WithComponent(log.ComponentCLI)
		app, err := cli.Open(cfg, logger)
		if err != nil {
			return err
		}
		defer app.Close()

		cmd.SetContext(log.NewContext(cmd.Context(), logger))
		logger.Debug("Command started", log.FieldOperation, log.OpStartup, "command", cmd.CommandPath())

		if err := fn(cmd, app, args); err != nil {
			logger.Debug("Command failed", log.NewFields().
				WithOperation(cmd.Name()).
				WithErrorType(errorType(err)).
				WithError(err).
				ToSlice()...)
			return err
		}
		return nil
	}
}

func errorType(err error) string {
	switch {
	case core.IsValidation(err):
		return log.ErrorTypeValidation
	case core.IsNotFound(err):
		return log.ErrorTypeNotFound
	case core.IsConsistency(err):
		return log.ErrorTypeDatabase
	}
	return log.ErrorTypeInternal
}
