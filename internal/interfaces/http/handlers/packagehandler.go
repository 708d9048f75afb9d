package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/subadmin/internal/application/subscription/usecases"
	"github.com/orris-inc/subadmin/internal/shared/id"
	"github.com/orris-inc/subadmin/internal/shared/logger"
	"github.com/orris-inc/subadmin/internal/shared/utils"
)

// PackageHandler serves the package catalogue and its admin management.
type PackageHandler struct {
	listUC   listPackagesUseCase
	getUC    getPackageUseCase
	createUC createPackageUseCase
	updateUC updatePackageUseCase
	deleteUC deletePackageUseCase
	logger   logger.Interface
}

func NewPackageHandler(
	listUC listPackagesUseCase,
	getUC getPackageUseCase,
	createUC createPackageUseCase,
	updateUC updatePackageUseCase,
	deleteUC deletePackageUseCase,
	logger logger.Interface,
) *PackageHandler {
	return &PackageHandler{
		listUC:   listUC,
		getUC:    getUC,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		logger:   logger,
	}
}

type CreatePackageRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"Monthly"`
	Description string `json:"description" binding:"max=2000" example:"**30 days** of access"`
	NumOfDays   int    `json:"num_of_days" binding:"required,gt=0" example:"30"`
	Price       uint64 `json:"price" example:"1000"`
}

type UpdatePackageRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	NumOfDays   *int    `json:"num_of_days" binding:"omitempty,gt=0"`
	Price       *uint64 `json:"price"`
}

// ListPackages handles GET /packages
//
//	@Summary		List packages
//	@Description	All packages, oldest first
//	@Tags			packages
//	@Produce		json
//	@Success		200	{object}	utils.APIResponse{data=[]dto.PackageDTO}
//	@Router			/packages [get]
func (h *PackageHandler) ListPackages(c *gin.Context) {
	result, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetPackage handles GET /packages/:id
//
//	@Summary	Get package
//	@Tags		packages
//	@Produce	json
//	@Param		id	path		string	true	"Package ID"
//	@Success	200	{object}	utils.APIResponse{data=dto.PackageDTO}
//	@Failure	404	{object}	utils.APIResponse
//	@Router		/packages/{id} [get]
func (h *PackageHandler) GetPackage(c *gin.Context) {
	packageSID, err := parsePackageSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), packageSID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreatePackage handles POST /admin/packages
//
//	@Summary	Create package
//	@Tags		admin-packages
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreatePackageRequest	true	"Package"
//	@Success	201		{object}	utils.APIResponse{data=dto.PackageDTO}
//	@Failure	400		{object}	utils.APIResponse
//	@Router		/admin/packages [post]
func (h *PackageHandler) CreatePackage(c *gin.Context) {
	var req CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create package", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreatePackageCommand{
		Name:        req.Name,
		Description: req.Description,
		NumOfDays:   req.NumOfDays,
		Price:       req.Price,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Package created successfully")
}

// UpdatePackage handles PUT /admin/packages/:id. Omitted fields are kept.
//
//	@Summary	Update package
//	@Tags		admin-packages
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Package ID"
//	@Param		request	body		UpdatePackageRequest	true	"Fields to change"
//	@Success	200		{object}	utils.APIResponse{data=dto.PackageDTO}
//	@Failure	400		{object}	utils.APIResponse
//	@Failure	404		{object}	utils.APIResponse
//	@Router		/admin/packages/{id} [put]
func (h *PackageHandler) UpdatePackage(c *gin.Context) {
	packageSID, err := parsePackageSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update package",
			"package_sid", packageSID,
			"error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdatePackageCommand{
		PackageSID:  packageSID,
		Name:        req.Name,
		Description: req.Description,
		NumOfDays:   req.NumOfDays,
		Price:       req.Price,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Package updated successfully", result)
}

// DeletePackage handles DELETE /admin/packages/:id
//
//	@Summary	Delete package
//	@Tags		admin-packages
//	@Param		id	path	string	true	"Package ID"
//	@Success	204
//	@Failure	404	{object}	utils.APIResponse
//	@Failure	409	{object}	utils.APIResponse	"package has pending purchases"
//	@Router		/admin/packages/{id} [delete]
func (h *PackageHandler) DeletePackage(c *gin.Context) {
	packageSID, err := parsePackageSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), packageSID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func parsePackageSID(c *gin.Context) (string, error) {
	return utils.ParseSIDParam(c, "id", id.PrefixPackage, "package")
}
