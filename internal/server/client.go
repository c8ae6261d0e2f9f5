package server

import (
	"net/http"
	"strings"

	obscontext "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/context"
	"github.com/gin-gonic/gin"
)

func (s *Server) GetClientBalance(c *gin.Context) {
	id, err := parseIDParam(c, obscontext.EntityClient)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	balance, err := s.paymentSvc.ClientBalance(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"client_id": id.String(), "balance": amount(balance)}})
}

func (s *Server) GetClientPastDue(c *gin.Context) {
	id, err := parseIDParam(c, obscontext.EntityClient)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	balance, err := s.paymentSvc.ClientPastDueBalance(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"client_id": id.String(), "past_due": amount(balance)}})
}

func (s *Server) ListClientPayments(c *gin.Context) {
	id, err := parseIDParam(c, obscontext.EntityClient)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	payments, err := s.paymentSvc.PaymentsForClient(ctx, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	sum, err := s.paymentSvc.SumPaymentsForClient(ctx, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toPaymentViews(payments), "total": amount(sum)})
}

// GetClientAgeing returns the full bucket report, or a single window when from_days is given.
func (s *Server) GetClientAgeing(c *gin.Context) {
	requestScope(c).SetReport("ageing")
	id, err := parseIDParam(c, obscontext.EntityClient)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	fromDays, err := optionalIntQuery(c, "from_days")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	toDays, err := optionalIntQuery(c, "to_days")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	if fromDays == nil {
		if toDays != nil {
			AbortWithError(c, newValidationError("from_days", "invalid_from_days", "from_days is required with to_days"))
			return
		}
		report, err := s.ageingSvc.Report(ctx, id)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": toAgeingView(report)})
		return
	}

	if *fromDays < 0 {
		AbortWithError(c, newValidationError("from_days", "invalid_from_days", "from_days must be >= 0"))
		return
	}
	balance, err := s.ageingSvc.Balance(ctx, id, *fromDays, toDays)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"client_id": id.String(),
		"from_days": *fromDays,
		"to_days":   toDays,
		"balance":   amount(balance),
	}})
}

func (s *Server) GetClientSummary(c *gin.Context) {
	id, err := parseIDParam(c, obscontext.EntityClient)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	summary, err := s.clientSvc.Summary(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toClientSummaryView(summary)})
}

func (s *Server) GetClientMonthlyRecurring(c *gin.Context) {
	id, err := parseIDParam(c, obscontext.EntityClient)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	mrr, err := s.clientSvc.MonthlyRecurringAmount(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"client_id": id.String(), "monthly_recurring": amount(mrr)}})
}

func (s *Server) GetClientStatement(c *gin.Context) {
	requestScope(c).SetReport("statement")
	id, err := parseIDParam(c, obscontext.EntityClient)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.statementSvc.Render(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="statement-`+id.String()+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}

func (s *Server) ListPaymentsByReference(c *gin.Context) {
	reference := strings.TrimSpace(c.Query("reference"))

	payments, err := s.paymentSvc.PaymentsByReference(c.Request.Context(), reference)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toPaymentViews(payments)})
}
