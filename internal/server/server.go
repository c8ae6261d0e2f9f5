package server

import (
	"context"
	"net/http"
	"time"

	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ageing"
	ageingdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ageing/domain"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/client"
	clientdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/client/domain"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/config"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/forecast"
	forecastdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/forecast/domain"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/invoice"
	invoicedomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/invoice/domain"
	obsmiddleware "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/logger"
	obsmetrics "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/metrics"
	obstracing "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/tracing"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/payment"
	paymentdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/payment/domain"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/statement"
	statementdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/statement/domain"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/tax"
	taxdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/tax/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	invoice.Module,
	payment.Module,
	ageing.Module,
	tax.Module,
	forecast.Module,
	client.Module,
	statement.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           cfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(cfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	invoiceSvc   invoicedomain.Service
	paymentSvc   paymentdomain.Service
	ageingSvc    ageingdomain.Service
	taxSvc       taxdomain.Service
	forecastSvc  forecastdomain.Service
	clientSvc    clientdomain.Service
	statementSvc statementdomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	InvoiceSvc   invoicedomain.Service
	PaymentSvc   paymentdomain.Service
	AgeingSvc    ageingdomain.Service
	TaxSvc       taxdomain.Service
	ForecastSvc  forecastdomain.Service
	ClientSvc    clientdomain.Service
	StatementSvc statementdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		invoiceSvc:   p.InvoiceSvc,
		paymentSvc:   p.PaymentSvc,
		ageingSvc:    p.AgeingSvc,
		taxSvc:       p.TaxSvc,
		forecastSvc:  p.ForecastSvc,
		clientSvc:    p.ClientSvc,
		statementSvc: p.StatementSvc,
	}

	svc.registerAPIRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/v1")

	// -------- Invoices --------
	api.GET("/invoices/:id/total", s.GetInvoiceTotal)
	api.GET("/invoices/:id/balance", s.GetInvoiceBalance)
	api.GET("/invoices/:id/summary", s.GetInvoiceSummary)
	api.GET("/invoices/:id/payments", s.ListInvoicePayments)

	// -------- Quotes --------
	api.GET("/quotes/:id/total", s.GetQuoteTotal)

	// -------- Clients --------
	api.GET("/clients/:id/balance", s.GetClientBalance)
	api.GET("/clients/:id/past-due", s.GetClientPastDue)
	api.GET("/clients/:id/payments", s.ListClientPayments)
	api.GET("/clients/:id/ageing", s.GetClientAgeing)
	api.GET("/clients/:id/summary", s.GetClientSummary)
	api.GET("/clients/:id/mrr", s.GetClientMonthlyRecurring)
	api.GET("/clients/:id/statement.pdf", s.GetClientStatement)

	// -------- Payments --------
	api.GET("/payments", s.ListPaymentsByReference)

	// -------- Reports --------
	reports := api.Group("/reports")
	reports.GET("/tax", s.GetTaxReport)
	reports.GET("/profit", s.GetProfitReport)
	reports.GET("/forecast", s.GetForecastReport)
	reports.GET("/collections", s.GetCollectionsReport)
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})
}
