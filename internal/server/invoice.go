package server

import (
	"net/http"

	obscontext "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/context"
	"github.com/gin-gonic/gin"
)

func (s *Server) GetInvoiceTotal(c *gin.Context) {
	id, err := parseIDParam(c, obscontext.EntityInvoice)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	total, err := s.invoiceSvc.InvoiceTotal(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"invoice_id": id.String(), "total": amount(total)}})
}

func (s *Server) GetInvoiceBalance(c *gin.Context) {
	id, err := parseIDParam(c, obscontext.EntityInvoice)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	balance, err := s.invoiceSvc.InvoiceBalance(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"invoice_id": id.String(), "balance": amount(balance)}})
}

func (s *Server) GetInvoiceSummary(c *gin.Context) {
	id, err := parseIDParam(c, obscontext.EntityInvoice)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	summary, err := s.invoiceSvc.Summary(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toInvoiceSummaryView(summary)})
}

func (s *Server) ListInvoicePayments(c *gin.Context) {
	id, err := parseIDParam(c, obscontext.EntityInvoice)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	payments, err := s.paymentSvc.PaymentsForInvoice(ctx, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	sum, err := s.paymentSvc.SumPaymentsForInvoice(ctx, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toPaymentViews(payments), "total": amount(sum)})
}

func (s *Server) GetQuoteTotal(c *gin.Context) {
	id, err := parseIDParam(c, obscontext.EntityQuote)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	total, err := s.invoiceSvc.QuoteTotal(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"quote_id": id.String(), "total": amount(total)}})
}
