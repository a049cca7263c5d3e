// Package cli implements the cafectl command line.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cafe_backoffice/internal/config"
	"cafe_backoffice/internal/database"
	"cafe_backoffice/internal/models"
	"cafe_backoffice/internal/repositories"
	"cafe_backoffice/internal/services"
	"cafe_backoffice/pkg/utils"
)

// NewRootCommand builds cafectl with its subcommands. Flags are bound to v, so
// their defaults may also come from the --config file.
func NewRootCommand(v *viper.Viper) *cobra.Command {
	var cfgFile string
	root := &cobra.Command{
		Use:           "cafectl",
		Short:         "Financial analytics for the café back office",
		Long:          `cafectl renders the Arabic performance report, exports the analysis to XLSX and seeds demo data.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
			}
			return v.BindPFlags(cmd.Flags())
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file with analytics settings and flag defaults")

	root.AddCommand(newReportCommand(v), newExportCommand(v), newSeedCommand(v))
	return root
}

// Execute runs cafectl and exits non-zero on failure.
func Execute() {
	utils.InitLogger()
	if err := NewRootCommand(viper.New()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func addPeriodFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "first day, YYYY-MM-DD (default: 30 days before --to)")
	cmd.Flags().String("to", "", "last day, YYYY-MM-DD (default: today)")
}

func periodFromFlags(v *viper.Viper) (models.Period, error) {
	return services.ParsePeriod(v.GetString("from"), v.GetString("to"), time.Now())
}

// openAnalytics connects to the database and builds the analytics service. The
// returned function closes every resource it opened.
func openAnalytics(ctx context.Context, v *viper.Viper) (services.AnalyticsService, func(), error) {
	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, nil, err
	}
	engine, err := cfg.NewEngine(nil)
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Open(ctx, database.ConfigFromEnv())
	if err != nil {
		return nil, nil, err
	}
	cache, closeCache := services.ReportCacheFromEnv(ctx)
	svc := services.NewAnalyticsService(
		repositories.NewOrderRepository(db),
		repositories.NewReceiptRepository(db),
		repositories.NewExpenseRepository(db),
		repositories.NewStaffRepository(db),
		engine, cache,
	)
	return svc, func() { closeAll(db, closeCache) }, nil
}

func closeAll(db *sql.DB, closeCache func() error) {
	if err := closeCache(); err != nil {
		utils.LogWarn(err, "closing report cache")
	}
	if err := db.Close(); err != nil {
		utils.LogWarn(err, "closing database")
	}
}
