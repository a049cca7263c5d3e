package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"cafe_backoffice/internal/analytics"
	"cafe_backoffice/pkg/utils"
)

// EnvPrefix prefixes every environment override, e.g. ANALYTICS_CASH_SHARE.
const EnvPrefix = "ANALYTICS"

// ErrInvalidConfig is returned when the analytics configuration cannot be used.
var ErrInvalidConfig = errors.New("invalid analytics config")

// AnalyticsConfig tunes the analytics engine.
type AnalyticsConfig struct {
	CashShare       float64                    `mapstructure:"cash_share"`
	AlertThresholds analytics.AlertThresholds  `mapstructure:"alert_thresholds"`
	Classifier      *analytics.ClassifierRules `mapstructure:"classifier"`
}

// PathFromEnv is the config file named by ANALYTICS_CONFIG, empty when unset.
func PathFromEnv() string {
	return utils.Getenv(EnvPrefix+"_CONFIG", "")
}

// Load reads the optional YAML or JSON file at path with environment overrides.
// Without a file every setting takes its default and the built-in classifier rules apply.
func Load(path string) (*AnalyticsConfig, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	}
	return FromViper(v)
}

// FromViper decodes the analytics settings held by v, reading its config file if one is set.
func FromViper(v *viper.Viper) (*AnalyticsConfig, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalidConfig, v.ConfigFileUsed(), err)
		}
	}

	var cfg AnalyticsConfig
	decoderOption := viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			dc.DecodeHook,
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := v.Unmarshal(&cfg, decoderOption); err != nil {
		return nil, fmt.Errorf("%w: decoding: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	th := analytics.DefaultAlertThresholds()
	v.SetDefault("cash_share", analytics.DefaultCashShare)
	v.SetDefault("alert_thresholds.spike_multiplier", th.SpikeMultiplier)
	v.SetDefault("alert_thresholds.max_expense_ratio", th.MaxExpenseRatio)
	v.SetDefault("alert_thresholds.max_payroll_ratio", th.MaxPayrollRatio)
	v.SetDefault("alert_thresholds.new_vendor_min_amount", th.NewVendorMinAmount)
}

// Validate checks ranges that the engine would otherwise silently replace.
func (c *AnalyticsConfig) Validate() error {
	if c.CashShare < 0 || c.CashShare > 1 {
		return fmt.Errorf("%w: cash_share %v outside [0,1]", ErrInvalidConfig, c.CashShare)
	}
	th := c.AlertThresholds
	if th.SpikeMultiplier <= 0 || th.MaxExpenseRatio <= 0 || th.MaxPayrollRatio <= 0 || th.NewVendorMinAmount < 0 {
		return fmt.Errorf("%w: alert thresholds must be positive: %+v", ErrInvalidConfig, th)
	}
	return nil
}

// Rules returns the configured classifier rules, or the built-in set.
func (c *AnalyticsConfig) Rules() analytics.ClassifierRules {
	if c.Classifier == nil {
		return analytics.DefaultRules()
	}
	return *c.Classifier
}

// NewEngine compiles the classifier and builds an engine with the configured options.
// clock may be nil.
func (c *AnalyticsConfig) NewEngine(clock func() time.Time) (*analytics.Engine, error) {
	classifier, err := analytics.NewClassifier(c.Rules())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return analytics.NewEngine(classifier,
		analytics.WithCashShare(c.CashShare),
		analytics.WithAlertThresholds(c.AlertThresholds),
		analytics.WithClock(clock),
	), nil
}
