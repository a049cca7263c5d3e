package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newExportCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Export the analysis of a period to an XLSX workbook",
		Example: `  cafectl export --from 2025-03-01 --to 2025-03-31 --out march.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := v.GetString("out")
			if out == "" {
				return errors.New("--out is required")
			}
			period, err := periodFromFlags(v)
			if err != nil {
				return err
			}
			svc, closeFn, err := openAnalytics(cmd.Context(), v)
			if err != nil {
				return err
			}
			defer closeFn()

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			if err := svc.ExportXLSX(cmd.Context(), period, f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", out, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "workbook written to", out)
			return nil
		},
	}
	addPeriodFlags(cmd)
	cmd.Flags().String("out", "", "path of the .xlsx file to write")
	return cmd
}
