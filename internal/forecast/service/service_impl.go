package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/config"
	forecastdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/forecast/domain"
	ledgerdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ledgerstore/domain"
	obslogger "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/logger"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/metrics"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/linalg"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/money"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Repo       ledgerdomain.Repository
	Accounting *config.AccountingConfigHolder
	Metrics    *metrics.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	repo       ledgerdomain.Repository
	accounting *config.AccountingConfigHolder
	metrics    *metrics.Metrics
}

func NewService(p ServiceParam) forecastdomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("forecast.service"),
		repo:       p.Repo,
		accounting: p.Accounting,
		metrics:    p.Metrics,
	}
}

func (s *Service) WithTx(tx *gorm.DB) forecastdomain.Service {
	if tx == nil {
		return s
	}
	clone := *s
	clone.db = tx
	return &clone
}

func (s *Service) Profit(ctx context.Context, year, month int) (decimal.Decimal, error) {
	if !validMonth(month) {
		return decimal.Zero, forecastdomain.ErrInvalidMonth
	}
	sample, err := s.sample(ctx, monthStart(year, month))
	if err != nil {
		return decimal.Zero, err
	}
	return sample.Profit, nil
}

func (s *Service) History(ctx context.Context, year, month, months int) ([]forecastdomain.Sample, error) {
	if !validMonth(month) {
		return nil, forecastdomain.ErrInvalidMonth
	}
	if months < 1 {
		return nil, forecastdomain.ErrInvalidHistory
	}
	if months > config.MaxHistoryMonths {
		obslogger.WithContext(ctx, s.log).Debug("clamping profit history", zap.Int("requested", months), zap.Int("max", config.MaxHistoryMonths))
		months = config.MaxHistoryMonths
	}
	anchor := monthStart(year, month)

	samples := make([]forecastdomain.Sample, 0, months)
	for i := 1; i <= months; i++ {
		sample, err := s.sample(ctx, anchor.AddDate(0, -i, 0))
		if err != nil {
			return nil, err
		}
		sample.Index = i
		samples = append(samples, sample)
	}
	return samples, nil
}

// Forecast fits a polynomial to the trailing profit history, evaluates it at the
// requested month and blends the result with the same month last year when that
// month was profitable. A singular fit falls back to last year's profit.
func (s *Service) Forecast(ctx context.Context, year, month int) (forecastdomain.Forecast, error) {
	if !validMonth(month) {
		return forecastdomain.Forecast{}, forecastdomain.ErrInvalidMonth
	}
	cfg := s.config()

	history, err := s.History(ctx, year, month, cfg.HistoryMonths)
	if err != nil {
		return forecastdomain.Forecast{}, err
	}
	lastYear, err := s.Profit(ctx, year-1, month)
	if err != nil {
		return forecastdomain.Forecast{}, err
	}

	xs := make([]float64, 0, len(history))
	ys := make([]float64, 0, len(history))
	for _, sample := range history {
		if sample.Empty && cfg.MissingMonths == config.MissingMonthsSkip {
			continue
		}
		xs = append(xs, float64(sample.Index))
		ys = append(ys, sample.Profit.InexactFloat64())
	}

	result := forecastdomain.Forecast{
		Year:     year,
		Month:    time.Month(month),
		LastYear: money.Round(lastYear),
		Samples:  len(xs),
		Policy:   cfg.MissingMonths,
	}

	coefficients, err := linalg.PolyFit(xs, ys, cfg.Degree)
	if err == nil && !linalg.IsFinite(coefficients) {
		err = linalg.ErrSingularMatrix
	}
	if err != nil {
		if !errors.Is(err, linalg.ErrSingularMatrix) {
			return forecastdomain.Forecast{}, fmt.Errorf("fit profit history: %w", err)
		}
		obslogger.WithContext(ctx, s.log).Warn("profit regression is singular, using last year's profit",
			zap.Int("year", year),
			zap.Int("month", month),
			zap.Int("samples", len(xs)),
			zap.String("missing_months", cfg.MissingMonths),
		)
		s.metrics.RecordForecastFallback(ctx, "singular_matrix")
		result.Value = result.LastYear
		result.Fallback = true
		s.metrics.RecordReport(ctx, "forecast")
		return result, nil
	}

	base := decimal.NewFromFloat(linalg.Evaluate(coefficients, 0))
	value := base
	if lastYear.IsPositive() {
		value = base.Add(lastYear).Div(decimal.NewFromInt(2))
	}

	result.Coefficients = coefficients
	result.Base = money.Round(base)
	result.Value = money.Round(value)
	s.metrics.RecordReport(ctx, "forecast")
	return result, nil
}

func (s *Service) config() config.ForecastConfig {
	if s.accounting == nil {
		return config.DefaultAccountingConfig().Forecast
	}
	return s.accounting.Get().Forecast
}

func (s *Service) sample(ctx context.Context, start time.Time) (forecastdomain.Sample, error) {
	end := start.AddDate(0, 1, 0)

	income, err := s.repo.PaymentAmounts(ctx, s.db, ledgerdomain.PaymentFilter{PaidFrom: &start, PaidBefore: &end})
	if err != nil {
		return forecastdomain.Sample{}, fmt.Errorf("income for %s: %w", start.Format("2006-01"), err)
	}
	expenses, err := s.repo.ExpenseAmounts(ctx, s.db, start, end)
	if err != nil {
		return forecastdomain.Sample{}, fmt.Errorf("expenses for %s: %w", start.Format("2006-01"), err)
	}

	in := money.Sum(income...)
	out := money.Sum(expenses...)
	return forecastdomain.Sample{
		Year:     start.Year(),
		Month:    start.Month(),
		Income:   in,
		Expenses: out,
		Profit:   in.Sub(out),
		Empty:    len(income) == 0 && len(expenses) == 0,
	}, nil
}

func validMonth(month int) bool {
	return month >= 1 && month <= 12
}

// monthStart normalises (year, month) so that month 0 is December of the prior year.
func monthStart(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}
