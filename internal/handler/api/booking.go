package api

import (
	"net/http"

	"travel-booking/internal/domain/user"
	reqdto "travel-booking/internal/handler/dto/request"
	resdto "travel-booking/internal/handler/dto/response"
	"travel-booking/internal/handler/httperr"
	"travel-booking/internal/handler/middleware"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Start booking
// @Description Reserves a booking id and opens a payment order. Seats are taken on confirm.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.StartBookingRequest true "Start booking request"
// @Success 201 {object} resdto.StartBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /bookings/start [post]
func (h *BookingHandler) Start(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req reqdto.StartBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	result, err := h.cmds.StartBooking(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.StartBookingResponse{
		BookingID: result.BookingID,
		Order:     resdto.FromPaymentOrder(result.Order),
	})
}

// @Summary Confirm booking
// @Description Takes seats and records the booking for a captured payment. Repeating a booking id returns the existing booking.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ConfirmBookingRequest true "Confirm booking request"
// @Success 201 {object} resdto.ConfirmBookingResponse
// @Success 200 {object} resdto.ConfirmBookingResponse "replayed"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req reqdto.ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	result, err := h.cmds.ConfirmBooking(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.q.GetByBookingIDSystem(c.Request.Context(), result.BookingID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load booking", nil)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	} else {
		c.Header("Location", "/api/bookings/"+result.BookingID)
	}
	c.JSON(status, resdto.ConfirmBookingResponse{
		Booking:  resdto.FromBookingView(view),
		Replayed: result.IsReplayed,
	})
}

// @Summary List my bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.ListResponse[resdto.BookingListItemResponse]
// @Router /bookings [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cursor, limit := pageParams(c)
	page, err := h.q.ListByUser(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPage(page, resdto.FromBookingListItem))
}

// @Summary Get booking
// @Description Owners see their own bookings; staff and admins see all
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param bookingId path string true "Booking ID, e.g. OKB000123"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{bookingId} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	userID, role, ok := identity(c)
	if !ok {
		return
	}
	view, err := h.q.GetByBookingID(c.Request.Context(), userID, role, c.Param("bookingId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Cancel booking
// @Tags bookings
// @Security BearerAuth
// @Param bookingId path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{bookingId}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	userID, role, ok := identity(c)
	if !ok {
		return
	}
	if err := h.cmds.CancelBooking(c.Request.Context(), userID, role, c.Param("bookingId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List all bookings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param package_id query string false "Filter by package"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.ListResponse[resdto.BookingListItemResponse]
// @Failure 400 {object} httperr.Response
// @Router /admin/bookings [get]
func (h *BookingHandler) ListAll(c *gin.Context) {
	var filters queries.BookingFilters
	if v := c.Query("status"); v != "" {
		filters.Status = &v
	}
	if v := c.Query("package_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			abortBadRequest(c, err)
			return
		}
		filters.PackageID = &id
	}

	cursor, limit := pageParams(c)
	page, err := h.q.ListAll(c.Request.Context(), filters, cursor, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPage(page, resdto.FromBookingListItem))
}

// @Summary Update booking status
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param bookingId path string true "Booking ID"
// @Param request body reqdto.UpdateBookingStatusRequest true "Status"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/bookings/{bookingId} [patch]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req reqdto.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	if err := h.cmds.UpdateBookingStatus(c.Request.Context(), c.Param("bookingId"), req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete booking
// @Tags admin
// @Security BearerAuth
// @Param bookingId path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /admin/bookings/{bookingId} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.cmds.DeleteBooking(c.Request.Context(), c.Param("bookingId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func identity(c *gin.Context) (uuid.UUID, user.Role, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return uuid.Nil, "", false
	}
	role, _ := middleware.GetUserRole(c)
	return userID, role, true
}
