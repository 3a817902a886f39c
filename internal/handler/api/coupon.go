package api

import (
	"net/http"

	reqdto "travel-booking/internal/handler/dto/request"
	resdto "travel-booking/internal/handler/dto/response"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	cmds commands.CouponCommands
	q    queries.CouponQueries
}

func NewCouponHandler(cmds commands.CouponCommands, q queries.CouponQueries) *CouponHandler {
	return &CouponHandler{cmds: cmds, q: q}
}

// @Summary Start coupon purchase
// @Description Opens a payment order for one coupon of a live offer
// @Tags coupons
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Success 201 {object} resdto.PaymentOrderResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /offers/{id}/coupons/purchase [post]
func (h *CouponHandler) Purchase(c *gin.Context) {
	offerID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	order, err := h.cmds.Purchase(c.Request.Context(), offerID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromPaymentOrder(order))
}

// @Summary Confirm coupon purchase
// @Description Issues the coupon for a captured payment. Repeating the same payment id returns the same coupon.
// @Tags coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Param request body reqdto.ConfirmCouponRequest true "Confirm request"
// @Success 201 {object} resdto.ConfirmCouponResponse
// @Success 200 {object} resdto.ConfirmCouponResponse "replayed"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /offers/{id}/coupons/confirm [post]
func (h *CouponHandler) Confirm(c *gin.Context) {
	offerID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req reqdto.ConfirmCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	result, err := h.cmds.ConfirmPurchase(c.Request.Context(), offerID, userID, req.PaymentID)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.ConfirmCouponResponse{
		CouponID:     result.CouponID.String(),
		CouponNumber: result.Number,
		Replayed:     result.IsReplayed,
	})
}

// @Summary List my coupons
// @Tags coupons
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.ListResponse[resdto.CouponResponse]
// @Router /coupons/mine [get]
func (h *CouponHandler) ListMine(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cursor, limit := pageParams(c)
	page, err := h.q.ListMine(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPage(page, resdto.FromCouponView))
}

// @Summary Preview coupon redemption
// @Description Shows the discount a winning coupon would give on a booking without consuming it
// @Tags coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RedemptionPreviewRequest true "Preview request"
// @Success 200 {object} resdto.RedemptionPreviewResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /coupons/redemption-preview [post]
func (h *CouponHandler) PreviewRedemption(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req reqdto.RedemptionPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	preview, err := h.cmds.PreviewRedemption(c.Request.Context(), userID, req.CouponNumber, req.PackageID, req.BookingTotal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.RedemptionPreviewResponse{
		CouponID:       preview.CouponID.String(),
		DiscountAmount: preview.DiscountAmount,
	})
}
