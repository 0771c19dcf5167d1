package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"coopledger/internal/cli"
	"coopledger/internal/export"
)

func newExportCommand(st *state) *cobra.Command {
	var format, dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export members, loans and contributions to CSV or XLSX",
		Args:  cobra.NoArgs,
		RunE: st.run(func(cmd *cobra.Command, app *cli.App, _ []string) error {
			exporter := app.Exporter
			if format != "" || dir != "" {
				if format == "" {
					format = app.Config.ExportFormat
				}
				if dir == "" {
					dir = app.Config.ExportDir
				}
				exporter = export.New(app.Ledger, dir, export.Format(format), app.Logger)
			}

			paths, err := exporter.Export(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&format, "format", "", "csv or xlsx (default EXPORT_FORMAT)")
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default EXPORT_DIR)")
	return cmd
}
