package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/subadmin/internal/shared/errors"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestErrorResponseWithError_AppError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ErrorResponseWithError(c, errors.NewNotFoundError("Package not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decode(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Package not found", resp.Error.Message)
}

func TestErrorResponseWithError_BindingErrorIsBadRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"num_of_days":0}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req struct {
		Name      string `json:"name" binding:"required"`
		NumOfDays int    `json:"num_of_days" binding:"required,gt=0"`
	}
	err := c.ShouldBindJSON(&req)
	require.Error(t, err)

	ErrorResponseWithError(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Details, "name is required")
}

func TestErrorResponseWithError_MalformedJSONIsBadRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req struct {
		Name string `json:"name"`
	}
	err := c.ShouldBindJSON(&req)
	require.Error(t, err)

	ErrorResponseWithError(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorResponseWithError_UnknownErrorHidesDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ErrorResponseWithError(c, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.NotContains(t, resp.Error.Message, assert.AnError.Error())
}

func TestListSuccessResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ListSuccessResponse(c, []string{"a", "b"}, 45, 2, 20)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data ListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(45), resp.Data.Total)
	assert.Equal(t, 3, resp.Data.TotalPages)
}
