package analytics

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	httperr "github.com/aevon-lab/merchant-pulse/internal/core/errors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all analytics API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	// Canonical routes, then the un-versioned aliases older dashboards still call.
	for _, prefix := range []string{"/v1/analytics", "/analytics"} {
		g := r.Group(prefix)
		g.GET("/top-merchant", s.HandleTopMerchant)
		g.GET("/monthly-active-merchants", s.HandleMonthlyActiveMerchants)
		g.GET("/product-adoption", s.HandleProductAdoption)
		g.GET("/kyc-funnel", s.HandleKYCFunnel)
		g.GET("/failure-rates", s.HandleFailureRates)
	}
}

// HandleTopMerchant handles GET /v1/analytics/top-merchant
func (s *Service) HandleTopMerchant(c *gin.Context) {
	resp, err := s.TopMerchant(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleMonthlyActiveMerchants handles GET /v1/analytics/monthly-active-merchants
func (s *Service) HandleMonthlyActiveMerchants(c *gin.Context) {
	resp, err := s.MonthlyActiveMerchants(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleProductAdoption handles GET /v1/analytics/product-adoption
// Query parameters: limit
func (s *Service) HandleProductAdoption(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	resp, err := s.ProductAdoption(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleKYCFunnel handles GET /v1/analytics/kyc-funnel
func (s *Service) HandleKYCFunnel(c *gin.Context) {
	resp, err := s.KYCFunnel(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleFailureRates handles GET /v1/analytics/failure-rates
// Query parameters: limit
func (s *Service) HandleFailureRates(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	resp, err := s.FailureRates(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// parseLimit reads the optional limit parameter. Absent means no limit.
func parseLimit(c *gin.Context) (int, bool) {
	raw, present := c.GetQuery("limit")
	if !present {
		return 0, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   "limit must be a positive integer",
		})
		return 0, false
	}
	return limit, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNoData):
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpNotFoundError,
			Message:   "No data available",
		})
	case errors.Is(err, ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid analytics query",
			Details:   err.Error(),
		})
	case errors.Is(err, ErrQueryTimeout), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, httperr.ErrorResponse{
			ErrorType: httperr.HttpTimeoutError,
			Message:   "Analytics query timed out",
		})
	default:
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to compute analytics",
		})
	}
}
