package api

import (
	"context"
	"net/http"

	reqdto "travel-booking/internal/handler/dto/request"
	resdto "travel-booking/internal/handler/dto/response"
	"travel-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DiscountHandler struct {
	cmds commands.DiscountCommands
}

func NewDiscountHandler(cmds commands.DiscountCommands) *DiscountHandler {
	return &DiscountHandler{cmds: cmds}
}

// @Summary Apply discount code
// @Description Consumes one use of the code for the caller
// @Tags discounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ApplyDiscountRequest true "Apply request"
// @Success 200 {object} resdto.DiscountQuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /discounts/apply [post]
func (h *DiscountHandler) Apply(c *gin.Context) {
	h.quote(c, h.cmds.Apply)
}

// @Summary Preview discount code
// @Description Evaluates the code without consuming a use
// @Tags discounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ApplyDiscountRequest true "Preview request"
// @Success 200 {object} resdto.DiscountQuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /discounts/preview [post]
func (h *DiscountHandler) Preview(c *gin.Context) {
	h.quote(c, h.cmds.Preview)
}

type quoteFunc func(ctx context.Context, userID uuid.UUID, code string, total int64) (*commands.DiscountQuote, error)

func (h *DiscountHandler) quote(c *gin.Context, fn quoteFunc) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req reqdto.ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	q, err := fn(c.Request.Context(), userID, req.Code, req.OrderTotal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDiscountQuote(q))
}

// @Summary Create discount code
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateDiscountRequest true "Create discount request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/discounts [post]
func (h *DiscountHandler) Create(c *gin.Context) {
	var req reqdto.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	id, err := h.cmds.CreateDiscountCoupon(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id.String()})
}
