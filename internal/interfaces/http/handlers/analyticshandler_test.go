package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analytics "github.com/orris-inc/subadmin/internal/application/analytics/usecases"
	"github.com/orris-inc/subadmin/internal/interfaces/http/handlers/testutil"
	"github.com/orris-inc/subadmin/internal/shared/errors"
)

type mockPurchaseTrendUC struct {
	result *analytics.PurchaseTrendResult
	err    error
	got    *analytics.GetPurchaseTrendQuery
}

func (m *mockPurchaseTrendUC) Execute(ctx context.Context, query analytics.GetPurchaseTrendQuery) (*analytics.PurchaseTrendResult, error) {
	m.got = &query
	return m.result, m.err
}

type mockOverviewUC struct {
	result *analytics.OverviewResult
	err    error
}

func (m *mockOverviewUC) Execute(ctx context.Context) (*analytics.OverviewResult, error) {
	return m.result, m.err
}

func TestAnalyticsHandler_GetPurchaseTrend_Success(t *testing.T) {
	mockUC := &mockPurchaseTrendUC{result: &analytics.PurchaseTrendResult{
		Labels:     []string{"2025-01-01", "2025-01-02"},
		Data:       []uint64{0, 1500},
		Title:      "Revenue",
		XAxisTitle: "Date",
		YAxisTitle: "Revenue",
	}}
	handler := NewAnalyticsHandler(mockUC, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/admin/analytics/trend", nil)
	testutil.SetQueryParams(c, map[string]string{"metric": "revenue", "days": "2"})
	handler.GetPurchaseTrend(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUC.got)
	assert.Equal(t, "revenue", mockUC.got.Metric)
	assert.Equal(t, 2, mockUC.got.Days)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var got analytics.PurchaseTrendResult
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, []uint64{0, 1500}, got.Data)
	assert.Len(t, got.Labels, 2)
}

func TestAnalyticsHandler_GetPurchaseTrend_DefaultsLeftToUseCase(t *testing.T) {
	mockUC := &mockPurchaseTrendUC{result: &analytics.PurchaseTrendResult{}}
	handler := NewAnalyticsHandler(mockUC, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/admin/analytics/trend", nil)
	handler.GetPurchaseTrend(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUC.got)
	assert.Empty(t, mockUC.got.Metric)
	assert.Zero(t, mockUC.got.Days)
}

func TestAnalyticsHandler_GetPurchaseTrend_NonNumericDays(t *testing.T) {
	mockUC := &mockPurchaseTrendUC{}
	handler := NewAnalyticsHandler(mockUC, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/admin/analytics/trend", nil)
	testutil.SetQueryParams(c, map[string]string{"days": "week"})
	handler.GetPurchaseTrend(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, mockUC.got)
}

func TestAnalyticsHandler_GetPurchaseTrend_ValidationError(t *testing.T) {
	mockUC := &mockPurchaseTrendUC{err: errors.NewValidationError("days must be between 1 and 365")}
	handler := NewAnalyticsHandler(mockUC, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/admin/analytics/trend", nil)
	testutil.SetQueryParams(c, map[string]string{"days": "400"})
	handler.GetPurchaseTrend(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyticsHandler_GetOverview(t *testing.T) {
	mockUC := &mockOverviewUC{result: &analytics.OverviewResult{
		Packages:          3,
		PendingPurchases:  2,
		ApprovedPurchases: 5,
		ApprovedRevenue:   5000,
		ActiveSubscribers: 4,
	}}
	handler := NewAnalyticsHandler(nil, mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/admin/analytics/overview", nil)
	handler.GetOverview(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var got analytics.OverviewResult
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, uint64(5000), got.ApprovedRevenue)
	assert.Equal(t, int64(4), got.ActiveSubscribers)
}
