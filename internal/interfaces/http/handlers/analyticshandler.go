package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	analytics "github.com/orris-inc/subadmin/internal/application/analytics/usecases"
	"github.com/orris-inc/subadmin/internal/shared/errors"
	"github.com/orris-inc/subadmin/internal/shared/logger"
	"github.com/orris-inc/subadmin/internal/shared/utils"
)

type getPurchaseTrendUseCase interface {
	Execute(ctx context.Context, query analytics.GetPurchaseTrendQuery) (*analytics.PurchaseTrendResult, error)
}

type getOverviewUseCase interface {
	Execute(ctx context.Context) (*analytics.OverviewResult, error)
}

// AnalyticsHandler serves the admin dashboard.
type AnalyticsHandler struct {
	trendUC    getPurchaseTrendUseCase
	overviewUC getOverviewUseCase
	logger     logger.Interface
}

func NewAnalyticsHandler(trendUC getPurchaseTrendUseCase, overviewUC getOverviewUseCase, logger logger.Interface) *AnalyticsHandler {
	return &AnalyticsHandler{
		trendUC:    trendUC,
		overviewUC: overviewUC,
		logger:     logger,
	}
}

// GetPurchaseTrend handles GET /admin/analytics/trend
//
//	@Summary		Daily purchase trend
//	@Description	Approved revenue or purchase count per business day, shaped for the dashboard line chart
//	@Tags			admin-analytics
//	@Produce		json
//	@Param			metric	query		string	false	"revenue (default) or count"
//	@Param			days	query		int		false	"1..365, default 30"
//	@Success		200		{object}	utils.APIResponse{data=analytics.PurchaseTrendResult}
//	@Failure		400		{object}	utils.APIResponse
//	@Router			/admin/analytics/trend [get]
func (h *AnalyticsHandler) GetPurchaseTrend(c *gin.Context) {
	query := analytics.GetPurchaseTrendQuery{Metric: c.Query("metric")}

	if raw := c.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("days must be an integer"))
			return
		}
		query.Days = days
	}

	result, err := h.trendUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetOverview handles GET /admin/analytics/overview
//
//	@Summary	Dashboard totals
//	@Tags		admin-analytics
//	@Produce	json
//	@Success	200	{object}	utils.APIResponse{data=analytics.OverviewResult}
//	@Router		/admin/analytics/overview [get]
func (h *AnalyticsHandler) GetOverview(c *gin.Context) {
	result, err := h.overviewUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
