package api

import (
	"errors"
	"net/http"

	reqdto "travel-booking/internal/handler/dto/request"
	resdto "travel-booking/internal/handler/dto/response"
	"travel-booking/internal/handler/httperr"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const idempotencyKeyHeader = "Idempotency-Key"

var errIdempotencyKeyRequired = errors.New("idempotency key header missing or not a uuid")

type OfferHandler struct {
	cmds    commands.OfferCommands
	winners commands.WinnerCommands
	q       queries.OfferQueries
	coupons queries.CouponQueries
}

func NewOfferHandler(
	cmds commands.OfferCommands,
	winners commands.WinnerCommands,
	q queries.OfferQueries,
	coupons queries.CouponQueries,
) *OfferHandler {
	return &OfferHandler{cmds: cmds, winners: winners, q: q, coupons: coupons}
}

// @Summary Get live offer
// @Description Returns the single live offer. Served from cache; sold_coupons may lag briefly.
// @Tags offers
// @Produce json
// @Success 200 {object} resdto.OfferResponse
// @Failure 404 {object} httperr.Response
// @Router /offers/live [get]
func (h *OfferHandler) GetLive(c *gin.Context) {
	view, err := h.q.GetLive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOfferView(view))
}

// @Summary Get offer
// @Tags offers
// @Produce json
// @Param id path string true "Offer ID"
// @Success 200 {object} resdto.OfferResponse
// @Failure 404 {object} httperr.Response
// @Router /offers/{id} [get]
func (h *OfferHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOfferView(view))
}

// @Summary List offers
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.ListResponse[resdto.OfferResponse]
// @Router /admin/offers [get]
func (h *OfferHandler) List(c *gin.Context) {
	cursor, limit := pageParams(c)
	page, err := h.q.List(c.Request.Context(), cursor, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPage(page, resdto.FromOfferView))
}

// @Summary Create offer
// @Description Only one offer may be live; set replaceLive to end the current one
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateOfferRequest true "Create offer request"
// @Success 201 {object} resdto.OfferResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/offers [post]
func (h *OfferHandler) Create(c *gin.Context) {
	var req reqdto.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	id, err := h.cmds.CreateOffer(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load offer", nil)
		return
	}
	c.Header("Location", "/api/offers/"+id.String())
	c.JSON(http.StatusCreated, resdto.FromOfferView(view))
}

// @Summary End offer
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /admin/offers/{id}/end [post]
func (h *OfferHandler) End(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.EndOffer(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Announce winners
// @Description Random draw, or explicit coupon numbers when couponNumbers is given. Replays the stored result for a repeated Idempotency-Key.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "UUID"
// @Param id path string true "Offer ID"
// @Param request body reqdto.AnnounceWinnersRequest true "Announce winners request"
// @Success 200 {object} resdto.AnnounceWinnersResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/offers/{id}/winners [post]
func (h *OfferHandler) AnnounceWinners(c *gin.Context) {
	offerID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	key, err := uuid.Parse(c.GetHeader(idempotencyKeyHeader))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errIdempotencyKeyRequired, "Idempotency-Key header must be a UUID", nil)
		return
	}
	var req reqdto.AnnounceWinnersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	result, err := h.winners.AnnounceWinners(c.Request.Context(), req.ToInput(offerID), actorID, key)
	if err != nil {
		respondError(c, err)
		return
	}
	if result.IsReplayed {
		c.Header("Idempotent-Replayed", "true")
	}
	c.JSON(http.StatusOK, resdto.FromAnnounceWinners(result))
}

// @Summary List offer coupons
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Param winners query bool false "Only winning coupons"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.ListResponse[resdto.CouponResponse]
// @Router /admin/offers/{id}/coupons [get]
func (h *OfferHandler) ListCoupons(c *gin.Context) {
	offerID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	cursor, limit := pageParams(c)
	filters := queries.CouponFilters{WinnersOnly: c.Query("winners") == "true"}
	page, err := h.coupons.ListByOffer(c.Request.Context(), offerID, filters, cursor, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPage(page, resdto.FromCouponView))
}
