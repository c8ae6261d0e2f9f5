package server

import (
	"net/http"

	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

func (s *Server) GetTaxReport(c *gin.Context) {
	requestScope(c).SetReport("tax")
	year, err := requiredIntQuery(c, "year")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	month, err := optionalIntQuery(c, "month")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	requestScope(c).SetPeriod(year, month)

	report, err := s.taxSvc.Report(c.Request.Context(), year, month)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toTaxReportView(report)})
}

// GetProfitReport returns the month's profit and, with months set, the trailing history.
func (s *Server) GetProfitReport(c *gin.Context) {
	requestScope(c).SetReport("profit")
	year, err := requiredIntQuery(c, "year")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	month, err := requiredIntQuery(c, "month")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	months, err := optionalIntQuery(c, "months")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	requestScope(c).SetPeriod(year, &month)

	ctx := c.Request.Context()
	profit, err := s.forecastSvc.Profit(ctx, year, month)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := gin.H{"year": year, "month": month, "profit": amount(profit)}
	if months != nil {
		history, err := s.forecastSvc.History(ctx, year, month, *months)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		resp["history"] = toSampleViews(history)
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetForecastReport(c *gin.Context) {
	requestScope(c).SetReport("forecast")
	year, err := requiredIntQuery(c, "year")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	month, err := requiredIntQuery(c, "month")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	requestScope(c).SetPeriod(year, &month)

	forecast, err := s.forecastSvc.Forecast(c.Request.Context(), year, month)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toForecastView(forecast)})
}

func (s *Server) GetCollectionsReport(c *gin.Context) {
	requestScope(c).SetReport("collections")
	var query pagination.Pagination
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	page, err := s.clientSvc.CollectionsReport(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toCollectionsView(page)})
}
