package config

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/Rhymond/go-money"
	"github.com/fsnotify/fsnotify"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	MissingMonthsZero = "zero"
	MissingMonthsSkip = "skip"
)

// AgeingBucket is a days-ago window [FromDays, ToDays). A nil ToDays is open ended.
type AgeingBucket struct {
	Label    string `mapstructure:"label" json:"label"`
	FromDays int    `mapstructure:"from_days" json:"from_days"`
	ToDays   *int   `mapstructure:"to_days" json:"to_days,omitempty"`
}

// MaxHistoryMonths bounds how far back a profit history may reach.
const MaxHistoryMonths = 120

type ForecastConfig struct {
	HistoryMonths int    `mapstructure:"history_months"`
	Degree        int    `mapstructure:"degree"`
	MissingMonths string `mapstructure:"missing_months"`
}

type AccountingConfig struct {
	AgeingBuckets    []AgeingBucket `mapstructure:"ageing_buckets"`
	BalanceTolerance string         `mapstructure:"balance_tolerance"`
	Currency         string         `mapstructure:"currency"`
	Forecast         ForecastConfig `mapstructure:"forecast"`
}

func DefaultAccountingConfig() AccountingConfig {
	return AccountingConfig{
		AgeingBuckets: []AgeingBucket{
			{Label: "0-30", FromDays: 0, ToDays: intPtr(30)},
			{Label: "30-60", FromDays: 30, ToDays: intPtr(60)},
			{Label: "60-90", FromDays: 60, ToDays: intPtr(90)},
			{Label: "90+", FromDays: 90, ToDays: nil},
		},
		BalanceTolerance: "0.02",
		Currency:         money.USD,
		Forecast: ForecastConfig{
			HistoryMonths: 24,
			Degree:        2,
			MissingMonths: MissingMonthsZero,
		},
	}
}

func intPtr(v int) *int { return &v }

// Tolerance returns the balance tolerance as a decimal.
func (c AccountingConfig) Tolerance() decimal.Decimal {
	tolerance, err := decimal.NewFromString(strings.TrimSpace(c.BalanceTolerance))
	if err != nil {
		return decimal.RequireFromString("0.02")
	}
	return tolerance
}

type AccountingConfigHolder struct {
	current atomic.Value // holds AccountingConfig
}

// NewStaticAccountingConfig returns a holder that never reloads.
func NewStaticAccountingConfig(cfg AccountingConfig) *AccountingConfigHolder {
	holder := &AccountingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewAccountingConfigHolder(log *zap.Logger) (*AccountingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("accounting")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/nestogy")
	v.AddConfigPath(".")

	v.SetEnvPrefix("NESTOGY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultAccountingConfig()
	v.SetDefault("accounting.balance_tolerance", defaults.BalanceTolerance)
	v.SetDefault("accounting.currency", defaults.Currency)
	v.SetDefault("accounting.forecast.history_months", defaults.Forecast.HistoryMonths)
	v.SetDefault("accounting.forecast.degree", defaults.Forecast.Degree)
	v.SetDefault("accounting.forecast.missing_months", defaults.Forecast.MissingMonths)

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileFound = false
	}

	cfg, err := decodeAccounting(v)
	if err != nil {
		return nil, err
	}

	holder := NewStaticAccountingConfig(cfg)
	if !fileFound {
		return holder, nil
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		holder.reload(v, e.Name, log)
	})
	v.WatchConfig()

	return holder, nil
}

// reload swaps in the file's current contents. Invalid edits keep the previous config.
func (h *AccountingConfigHolder) reload(v *viper.Viper, file string, log *zap.Logger) {
	updated, err := decodeAccounting(v)
	if err != nil {
		log.Warn("accounting config reload rejected", zap.String("file", file), zap.Error(err))
		return
	}
	h.current.Store(updated)
	log.Info("accounting config reloaded", zap.String("file", file))
}

func (h *AccountingConfigHolder) Get() AccountingConfig {
	return h.current.Load().(AccountingConfig)
}

func decodeAccounting(v *viper.Viper) (AccountingConfig, error) {
	var cfg AccountingConfig
	if err := v.UnmarshalKey("accounting", &cfg); err != nil {
		return AccountingConfig{}, err
	}
	if len(cfg.AgeingBuckets) == 0 {
		cfg.AgeingBuckets = DefaultAccountingConfig().AgeingBuckets
	}
	cfg.Currency = strings.ToUpper(strings.TrimSpace(cfg.Currency))
	cfg.Forecast.MissingMonths = strings.ToLower(strings.TrimSpace(cfg.Forecast.MissingMonths))
	if err := ValidateAccountingConfig(cfg); err != nil {
		return AccountingConfig{}, err
	}
	return cfg, nil
}

func ValidateAccountingConfig(cfg AccountingConfig) error {
	if len(cfg.AgeingBuckets) == 0 {
		return errors.New("accounting.ageing_buckets cannot be empty")
	}
	for _, bucket := range cfg.AgeingBuckets {
		if bucket.FromDays < 0 {
			return fmt.Errorf("accounting.ageing_buckets[%s]: from_days must be >= 0", bucket.Label)
		}
		if bucket.ToDays != nil && *bucket.ToDays <= bucket.FromDays {
			return fmt.Errorf("accounting.ageing_buckets[%s]: to_days must be greater than from_days", bucket.Label)
		}
	}
	if _, err := decimal.NewFromString(strings.TrimSpace(cfg.BalanceTolerance)); err != nil {
		return fmt.Errorf("accounting.balance_tolerance: %w", err)
	}
	if money.GetCurrency(cfg.Currency) == nil {
		return fmt.Errorf("accounting.currency: unknown currency %q", cfg.Currency)
	}
	if cfg.Forecast.HistoryMonths < 1 || cfg.Forecast.HistoryMonths > MaxHistoryMonths {
		return fmt.Errorf("accounting.forecast.history_months must be between 1 and %d", MaxHistoryMonths)
	}
	if cfg.Forecast.Degree < 0 {
		return errors.New("accounting.forecast.degree must be >= 0")
	}
	switch cfg.Forecast.MissingMonths {
	case MissingMonthsZero, MissingMonthsSkip:
	default:
		return fmt.Errorf("accounting.forecast.missing_months: unsupported policy %q", cfg.Forecast.MissingMonths)
	}
	return nil
}
