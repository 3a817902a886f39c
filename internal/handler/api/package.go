package api

import (
	"net/http"

	reqdto "travel-booking/internal/handler/dto/request"
	resdto "travel-booking/internal/handler/dto/response"
	"travel-booking/internal/handler/httperr"
	"travel-booking/internal/usecase/commands"
	"travel-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const uploadFormField = "file"

type PackageHandler struct {
	cmds commands.CatalogCommands
	q    queries.CatalogQueries
}

func NewPackageHandler(cmds commands.CatalogCommands, q queries.CatalogQueries) *PackageHandler {
	return &PackageHandler{cmds: cmds, q: q}
}

// @Summary List packages
// @Tags packages
// @Produce json
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.ListResponse[resdto.PackageResponse]
// @Failure 400 {object} httperr.Response
// @Router /packages [get]
func (h *PackageHandler) List(c *gin.Context) {
	cursor, limit := pageParams(c)
	page, err := h.q.ListPackages(c.Request.Context(), cursor, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPage(page, resdto.FromPackageView))
}

// @Summary Get package
// @Tags packages
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} resdto.PackageResponse
// @Failure 404 {object} httperr.Response
// @Router /packages/{id} [get]
func (h *PackageHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetPackage(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPackageView(view))
}

// @Summary Create package
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreatePackageRequest true "Create package request"
// @Success 201 {object} resdto.PackageResponse
// @Failure 400 {object} httperr.Response
// @Router /admin/packages [post]
func (h *PackageHandler) Create(c *gin.Context) {
	var req reqdto.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	id, err := h.cmds.CreatePackage(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	view, err := h.q.GetPackage(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load package", nil)
		return
	}
	c.Header("Location", "/api/packages/"+id.String())
	c.JSON(http.StatusCreated, resdto.FromPackageView(view))
}

// @Summary Adjust total seats
// @Description Changes capacity; available seats move by the same delta and may not go negative
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Package ID"
// @Param request body reqdto.AdjustSeatsRequest true "Adjust seats request"
// @Success 200 {object} resdto.PackageResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/packages/{id}/seats [patch]
func (h *PackageHandler) AdjustSeats(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.AdjustSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	if err := h.cmds.AdjustTotalSeats(c.Request.Context(), id, *req.TotalSeats); err != nil {
		respondError(c, err)
		return
	}
	view, err := h.q.GetPackage(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPackageView(view))
}

// @Summary Upload package image
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Package ID"
// @Param file formData file true "Image (jpeg, png or webp)"
// @Success 200 {object} resdto.URLResponse
// @Failure 400 {object} httperr.Response
// @Failure 413 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /admin/packages/{id}/image [post]
func (h *PackageHandler) UploadImage(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	in, closeFn, ok := readUpload(c)
	if !ok {
		return
	}
	defer closeFn()

	url, err := h.cmds.UploadPackageImage(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.URLResponse{URL: url})
}

// @Summary Upload offer banner
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image (jpeg, png or webp)"
// @Success 201 {object} resdto.URLResponse
// @Failure 400 {object} httperr.Response
// @Failure 413 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /admin/uploads/banners [post]
func (h *PackageHandler) UploadBanner(c *gin.Context) {
	in, closeFn, ok := readUpload(c)
	if !ok {
		return
	}
	defer closeFn()

	url, err := h.cmds.UploadBanner(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.URLResponse{URL: url})
}

func readUpload(c *gin.Context) (commands.UploadInput, func(), bool) {
	header, err := c.FormFile(uploadFormField)
	if err != nil {
		abortBadRequest(c, err)
		return commands.UploadInput{}, nil, false
	}
	file, err := header.Open()
	if err != nil {
		abortBadRequest(c, err)
		return commands.UploadInput{}, nil, false
	}
	return commands.UploadInput{
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}, func() { _ = file.Close() }, true
}
