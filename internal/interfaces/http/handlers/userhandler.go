package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	userdto "github.com/orris-inc/subadmin/internal/application/user/dto"
	userusecases "github.com/orris-inc/subadmin/internal/application/user/usecases"
	"github.com/orris-inc/subadmin/internal/shared/id"
	"github.com/orris-inc/subadmin/internal/shared/logger"
	"github.com/orris-inc/subadmin/internal/shared/utils"
)

type getUserUseCase interface {
	Execute(ctx context.Context, userSID string) (*userdto.UserDTO, error)
}

type listUsersUseCase interface {
	Execute(ctx context.Context, query userusecases.ListUsersQuery) (*userusecases.ListUsersResult, error)
}

// UserHandler exposes subscription validity of users to admins.
type UserHandler struct {
	getUC  getUserUseCase
	listUC listUsersUseCase
	logger logger.Interface
}

func NewUserHandler(getUC getUserUseCase, listUC listUsersUseCase, logger logger.Interface) *UserHandler {
	return &UserHandler{
		getUC:  getUC,
		listUC: listUC,
		logger: logger,
	}
}

// ListUsers handles GET /admin/users
//
//	@Summary	List users
//	@Tags		admin-users
//	@Produce	json
//	@Param		page		query		int	false	"Page"
//	@Param		page_size	query		int	false	"Page size"
//	@Success	200			{object}	utils.APIResponse{data=utils.ListResponse{items=[]userdto.UserDTO}}
//	@Router		/admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), userusecases.ListUsersQuery{
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Users, result.Total, result.Page, result.PageSize)
}

// GetUser handles GET /admin/users/:id
//
//	@Summary	Get user
//	@Tags		admin-users
//	@Produce	json
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	utils.APIResponse{data=userdto.UserDTO}
//	@Failure	404	{object}	utils.APIResponse
//	@Router		/admin/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	userSID, err := utils.ParseSIDParam(c, "id", id.PrefixUser, "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), userSID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
