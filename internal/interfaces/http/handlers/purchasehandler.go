package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/subadmin/internal/application/subscription/usecases"
	"github.com/orris-inc/subadmin/internal/shared/constants"
	"github.com/orris-inc/subadmin/internal/shared/errors"
	"github.com/orris-inc/subadmin/internal/shared/id"
	"github.com/orris-inc/subadmin/internal/shared/logger"
	"github.com/orris-inc/subadmin/internal/shared/utils"
)

// PurchaseHandler handles subscribing to packages and reviewing purchases.
type PurchaseHandler struct {
	subscribeUC subscribePackageUseCase
	listUC      listPurchasesUseCase
	listMineUC  listUserPurchasesUseCase
	confirmUC   confirmPurchaseUseCase
	logger      logger.Interface
}

func NewPurchaseHandler(
	subscribeUC subscribePackageUseCase,
	listUC listPurchasesUseCase,
	listMineUC listUserPurchasesUseCase,
	confirmUC confirmPurchaseUseCase,
	logger logger.Interface,
) *PurchaseHandler {
	return &PurchaseHandler{
		subscribeUC: subscribeUC,
		listUC:      listUC,
		listMineUC:  listMineUC,
		confirmUC:   confirmUC,
		logger:      logger,
	}
}

// ConfirmPurchaseRequest decides a pending purchase. Omitting reject approves.
type ConfirmPurchaseRequest struct {
	Reject bool `json:"reject" example:"false"`
}

// SubscribePackage handles POST /packages/:id/subscribe
//
//	@Summary		Subscribe to a package
//	@Description	Submits a PENDING purchase with a proof-of-payment file in multipart field "transition"
//	@Tags			packages
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id			path		string	true	"Package ID"
//	@Param			X-User-ID	header		string	true	"Caller user ID"
//	@Param			transition	formData	file	true	"Proof of payment"
//	@Success		201			{object}	utils.APIResponse{data=dto.PurchaseDTO}
//	@Failure		400			{object}	utils.APIResponse
//	@Failure		404			{object}	utils.APIResponse
//	@Failure		429			{object}	utils.APIResponse
//	@Router			/packages/{id}/subscribe [post]
func (h *PurchaseHandler) SubscribePackage(c *gin.Context) {
	packageSID, err := parsePackageSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userSID := c.GetString(constants.ContextKeyUserSID)

	fileHeader, err := c.FormFile(constants.ProofFormField)
	if err != nil {
		h.logger.Warnw("missing proof of payment", "error", err, "user_sid", userSID)
		utils.ErrorResponseWithError(c, errors.NewValidationError(
			"proof of payment is required", "multipart field \""+constants.ProofFormField+"\" is missing"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Errorw("failed to open uploaded proof", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("failed to read uploaded file"))
		return
	}
	defer file.Close()

	result, err := h.subscribeUC.Execute(c.Request.Context(), usecases.SubscribePackageCommand{
		UserSID:    userSID,
		PackageSID: packageSID,
		Proof: &usecases.ProofUpload{
			Filename: fileHeader.Filename,
			Size:     fileHeader.Size,
			Content:  file,
		},
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Purchase submitted successfully")
}

// ListPurchases handles GET /admin/purchases
//
//	@Summary	List purchases
//	@Tags		admin-purchases
//	@Produce	json
//	@Param		status		query		string	false	"PENDING, APPROVED or REJECTED"
//	@Param		page		query		int		false	"Page"
//	@Param		page_size	query		int		false	"Page size"
//	@Success	200			{object}	utils.APIResponse{data=utils.ListResponse{items=[]dto.PurchaseDTO}}
//	@Failure	400			{object}	utils.APIResponse
//	@Router		/admin/purchases [get]
func (h *PurchaseHandler) ListPurchases(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListPurchasesQuery{
		Status:   c.Query("status"),
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Purchases, result.Total, result.Page, result.PageSize)
}

// ListMyPurchases handles GET /purchases/me
//
//	@Summary	List own purchases
//	@Tags		purchases
//	@Produce	json
//	@Param		X-User-ID	header		string	true	"Caller user ID"
//	@Param		page		query		int		false	"Page"
//	@Param		page_size	query		int		false	"Page size"
//	@Success	200			{object}	utils.APIResponse{data=utils.ListResponse{items=[]dto.PurchaseDTO}}
//	@Failure	404			{object}	utils.APIResponse
//	@Router		/purchases/me [get]
func (h *PurchaseHandler) ListMyPurchases(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listMineUC.Execute(c.Request.Context(), usecases.ListUserPurchasesQuery{
		UserSID:  c.GetString(constants.ContextKeyUserSID),
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Purchases, result.Total, result.Page, result.PageSize)
}

// ConfirmPurchase handles POST /admin/purchases/:id/confirm
//
//	@Summary		Approve or reject a purchase
//	@Description	Approval extends the user's validity by the purchased number of days
//	@Tags			admin-purchases
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Purchase ID"
//	@Param			request	body		ConfirmPurchaseRequest	false	"Decision"
//	@Success		200		{object}	utils.APIResponse{data=dto.PurchaseDTO}
//	@Failure		400		{object}	utils.APIResponse	"Something went wrong"
//	@Router			/admin/purchases/{id}/confirm [post]
func (h *PurchaseHandler) ConfirmPurchase(c *gin.Context) {
	purchaseSID, err := utils.ParseSIDParam(c, "id", id.PrefixPurchase, "purchase")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ConfirmPurchaseRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warnw("invalid request body for confirm purchase",
				"purchase_sid", purchaseSID,
				"error", err)
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	result, err := h.confirmUC.Execute(c.Request.Context(), usecases.ConfirmPurchaseCommand{
		PurchaseSID: purchaseSID,
		Reject:      req.Reject,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	message := "Purchase approved"
	if req.Reject {
		message = "Purchase rejected"
	}
	utils.SuccessResponse(c, http.StatusOK, message, result)
}
