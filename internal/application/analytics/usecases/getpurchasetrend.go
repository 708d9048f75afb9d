package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/orris-inc/subadmin/internal/domain/subscription"
	vo "github.com/orris-inc/subadmin/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/subadmin/internal/shared/biztime"
	"github.com/orris-inc/subadmin/internal/shared/errors"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

const (
	MetricRevenue = "revenue"
	MetricCount   = "count"

	DefaultTrendDays = 30
	MaxTrendDays     = 365
)

type GetPurchaseTrendQuery struct {
	Metric string
	Days   int
}

// PurchaseTrendResult is a daily series shaped for the dashboard line chart.
type PurchaseTrendResult struct {
	Labels     []string `json:"labels"`
	Data       []uint64 `json:"data"`
	Title      string   `json:"title"`
	XAxisTitle string   `json:"x_axis_title"`
	YAxisTitle string   `json:"y_axis_title"`
}

// GetPurchaseTrendUseCase aggregates approved purchases per business day.
type GetPurchaseTrendUseCase struct {
	purchaseRepo subscription.PurchaseRepository
	location     *time.Location
	logger       logger.Interface
	now          func() time.Time
}

func NewGetPurchaseTrendUseCase(
	purchaseRepo subscription.PurchaseRepository,
	location *time.Location,
	logger logger.Interface,
) *GetPurchaseTrendUseCase {
	if location == nil {
		location = biztime.Location()
	}
	return &GetPurchaseTrendUseCase{
		purchaseRepo: purchaseRepo,
		location:     location,
		logger:       logger,
		now:          time.Now,
	}
}

func (uc *GetPurchaseTrendUseCase) Execute(ctx context.Context, query GetPurchaseTrendQuery) (*PurchaseTrendResult, error) {
	metric := query.Metric
	if metric == "" {
		metric = MetricRevenue
	}
	if metric != MetricRevenue && metric != MetricCount {
		return nil, errors.NewValidationError(
			fmt.Sprintf("invalid metric %q, expected %s or %s", query.Metric, MetricRevenue, MetricCount))
	}

	days := query.Days
	if days == 0 {
		days = DefaultTrendDays
	}
	if days < 1 || days > MaxTrendDays {
		return nil, errors.NewValidationError(fmt.Sprintf("days must be between 1 and %d", MaxTrendDays))
	}

	labels, since := biztime.LastNDaysIn(uc.now(), days, uc.location)

	purchases, err := uc.purchaseRepo.ListReviewedSince(ctx, vo.PurchaseStatusApproved, since)
	if err != nil {
		uc.logger.Errorw("failed to load approved purchases", "error", err, "since", since)
		return nil, fmt.Errorf("failed to load approved purchases: %w", err)
	}

	index := make(map[string]int, len(labels))
	for i, label := range labels {
		index[label] = i
	}

	data := make([]uint64, len(labels))
	for _, p := range purchases {
		if p.ReviewedAt() == nil {
			continue
		}
		i, ok := index[biztime.DayKeyIn(*p.ReviewedAt(), uc.location)]
		if !ok {
			continue
		}
		if metric == MetricRevenue {
			data[i] += p.Price()
		} else {
			data[i]++
		}
	}

	result := &PurchaseTrendResult{
		Labels:     labels,
		Data:       data,
		XAxisTitle: "Date",
	}
	if metric == MetricRevenue {
		result.Title = fmt.Sprintf("Revenue over the last %d days", days)
		result.YAxisTitle = "Revenue"
	} else {
		result.Title = fmt.Sprintf("Approved purchases over the last %d days", days)
		result.YAxisTitle = "Purchases"
	}
	return result, nil
}
