package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestDefaultAccountingConfigIsValid(t *testing.T) {
	cfg := DefaultAccountingConfig()
	require.NoError(t, ValidateAccountingConfig(cfg))
	assert.Len(t, cfg.AgeingBuckets, 4)
	assert.Nil(t, cfg.AgeingBuckets[3].ToDays)
	assert.Equal(t, "0.02", cfg.Tolerance().String())
}

func TestValidateAccountingConfigRejectsBadValues(t *testing.T) {
	cases := map[string]func(*AccountingConfig){
		"empty buckets":   func(c *AccountingConfig) { c.AgeingBuckets = nil },
		"inverted bucket": func(c *AccountingConfig) { c.AgeingBuckets[0].ToDays = intPtr(0) },
		"negative from":   func(c *AccountingConfig) { c.AgeingBuckets[0].FromDays = -1 },
		"bad tolerance":   func(c *AccountingConfig) { c.BalanceTolerance = "two cents" },
		"no history":      func(c *AccountingConfig) { c.Forecast.HistoryMonths = 0 },
		"long history":    func(c *AccountingConfig) { c.Forecast.HistoryMonths = MaxHistoryMonths + 1 },
		"negative degree": func(c *AccountingConfig) { c.Forecast.Degree = -1 },
		"unknown policy":  func(c *AccountingConfig) { c.Forecast.MissingMonths = "interpolate" },
		"bad currency":    func(c *AccountingConfig) { c.Currency = "XXQ" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultAccountingConfig()
			mutate(&cfg)
			assert.Error(t, ValidateAccountingConfig(cfg))
		})
	}
}

func TestNewAccountingConfigHolderFallsBackToDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	holder, err := NewAccountingConfigHolder(zap.NewNop())
	require.NoError(t, err)

	cfg := holder.Get()
	assert.Equal(t, DefaultAccountingConfig().AgeingBuckets, cfg.AgeingBuckets)
	assert.Equal(t, 24, cfg.Forecast.HistoryMonths)
	assert.Equal(t, 2, cfg.Forecast.Degree)
	assert.Equal(t, MissingMonthsZero, cfg.Forecast.MissingMonths)
	assert.Equal(t, "USD", cfg.Currency)
}

func TestToleranceFallsBackOnGarbage(t *testing.T) {
	cfg := AccountingConfig{BalanceTolerance: "oops"}
	assert.Equal(t, "0.02", cfg.Tolerance().String())
}

func writeAccountingFile(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "accounting.yml"), []byte(body), 0o644))
}

func TestAccountingConfigReloadsOnFileChange(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeAccountingFile(t, dir, "accounting:\n  forecast:\n    history_months: 12\n")

	holder, err := NewAccountingConfigHolder(zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, 12, holder.Get().Forecast.HistoryMonths)

	writeAccountingFile(t, dir, "accounting:\n  forecast:\n    history_months: 36\n")
	assert.Eventually(t, func() bool {
		return holder.Get().Forecast.HistoryMonths == 36
	}, 5*time.Second, 20*time.Millisecond)
}

func TestReloadKeepsPreviousConfigOnInvalidEdit(t *testing.T) {
	dir := t.TempDir()
	const valid = "accounting:\n  balance_tolerance: \"0.02\"\n  currency: USD\n" +
		"  forecast:\n    history_months: 24\n    missing_months: zero\n"
	writeAccountingFile(t, dir, valid+"    degree: -1\n")

	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, "accounting.yml"))
	require.NoError(t, v.ReadInConfig())

	holder := NewStaticAccountingConfig(DefaultAccountingConfig())
	holder.reload(v, "accounting.yml", zap.NewNop())
	assert.Equal(t, 2, holder.Get().Forecast.Degree)

	writeAccountingFile(t, dir, valid+"    degree: 3\n")
	require.NoError(t, v.ReadInConfig())
	holder.reload(v, "accounting.yml", zap.NewNop())
	assert.Equal(t, 3, holder.Get().Forecast.Degree)
}
