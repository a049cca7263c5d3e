package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newReportCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the performance report of a period",
		Example: `  cafectl report --from 2025-03-01 --to 2025-03-31
  cafectl report --mode forecast --out forecast.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := periodFromFlags(v)
			if err != nil {
				return err
			}
			svc, closeFn, err := openAnalytics(cmd.Context(), v)
			if err != nil {
				return err
			}
			defer closeFn()

			report, err := svc.Report(cmd.Context(), period, v.GetString("mode"))
			if err != nil {
				return err
			}
			if out := v.GetString("out"); out != "" {
				if err := os.WriteFile(out, []byte(report), 0o644); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "report written to", out)
				return nil
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), report)
			return err
		},
	}
	addPeriodFlags(cmd)
	cmd.Flags().String("mode", "full", "sections to render: full, forecast, anomalies, recommendations")
	cmd.Flags().String("out", "", "write the report to this file instead of stdout")
	return cmd
}
