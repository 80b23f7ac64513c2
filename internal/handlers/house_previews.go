package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"house-preview-backend/internal/logging"
	"house-preview-backend/internal/middleware"
	"house-preview-backend/internal/models"
	"house-preview-backend/internal/services"
	"house-preview-backend/internal/validation"
)

type HousePreviewHandler struct {
	previews       *services.PreviewService
	defaultPerPage int
	maxPerPage     int
}

func NewHousePreviewHandler(previews *services.PreviewService, defaultPerPage, maxPerPage int) *HousePreviewHandler {
	return &HousePreviewHandler{
		previews:       previews,
		defaultPerPage: defaultPerPage,
		maxPerPage:     maxPerPage,
	}
}

func (h *HousePreviewHandler) render(p *models.HousePreview) models.HousePreviewResponse {
	return models.NewHousePreviewResponse(p, h.previews.PublicURL)
}

// List godoc
// @Summary     List house previews
// @Description Paginated listing, most recent first. An unknown status filter is ignored.
// @Tags        house-previews
// @Produce     json
// @Param       status   query string false "Filter by status" Enums(pending, processing, completed, cancelled)
// @Param       page     query int    false "Page number" default(1)
// @Param       per_page query int    false "Page size (max 100)" default(15)
// @Success     200 {object} models.Envelope{data=models.PaginatedResponse}
// @Failure     500 {object} models.Envelope
// @Router      /api/house-previews [get]
func (h *HousePreviewHandler) List(c *gin.Context) {
	perPage := intQuery(c, "per_page", h.defaultPerPage)
	if perPage > h.maxPerPage {
		perPage = h.maxPerPage
	}

	page, err := h.previews.List(c.Request.Context(), services.ListParams{
		Status:  c.Query("status"),
		Page:    intQuery(c, "page", 1),
		PerPage: perPage,
	})
	if err != nil {
		fail(c, err, "Failed to list house previews")
		return
	}

	resp := models.PaginatedResponse{
		CurrentPage: page.Page,
		Data:        make([]models.HousePreviewResponse, len(page.Items)),
		PerPage:     page.PerPage,
		Total:       page.Total,
		LastPage:    page.LastPage,
	}
	for i := range page.Items {
		resp.Data[i] = h.render(&page.Items[i])
	}
	if n := len(page.Items); n > 0 {
		from := (page.Page-1)*page.PerPage + 1
		to := from + n - 1
		resp.From, resp.To = &from, &to
	}

	ok(c, http.StatusOK, "", resp)
}

// Create godoc
// @Summary     Submit a house preview
// @Description Validates the whole submission before anything is stored. The customer is matched by phone and created when unknown.
// @Tags        house-previews
// @Accept      multipart/form-data
// @Produce     json
// @Param       customer[name]    formData string true  "Customer name"
// @Param       customer[phone]   formData string true  "10 digit contact number"
// @Param       customer[address] formData string true  "Customer address"
// @Param       colors            formData string false "Colours separated by ::"
// @Param       customer_message  formData string false "Message for the designer"
// @Param       png_image         formData file   true  "PNG image (max 10MB)"
// @Param       svg_image         formData file   false "SVG overlay (max 5MB)"
// @Success     201 {object} models.Envelope{data=models.HousePreviewResponse}
// @Failure     422 {object} models.Envelope
// @Failure     500 {object} models.Envelope
// @Router      /api/house-previews [post]
func (h *HousePreviewHandler) Create(c *gin.Context) {
	sub, err := readSubmission(c)
	if err != nil {
		fail(c, err, "Failed to create house preview")
		return
	}

	preview, err := h.previews.Create(c.Request.Context(), sub)
	if err != nil {
		fail(c, err, "Failed to create house preview")
		return
	}

	ok(c, http.StatusCreated, "House preview submitted successfully", h.render(preview))
}

// Get godoc
// @Summary     Show a house preview
// @Tags        house-previews
// @Produce     json
// @Param       id path int true "House preview ID"
// @Success     200 {object} models.Envelope{data=models.HousePreviewResponse}
// @Failure     404 {object} models.Envelope
// @Router      /api/house-previews/{id} [get]
func (h *HousePreviewHandler) Get(c *gin.Context) {
	id, found := idParam(c, "id")
	if !found {
		notFound(c, msgNotFound)
		return
	}

	preview, err := h.previews.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "Failed to load house preview")
		return
	}

	ok(c, http.StatusOK, "", h.render(preview))
}

// UpdateStatus godoc
// @Summary     Update the status of a house preview
// @Description Only the status changes; any status may follow any other.
// @Tags        house-previews
// @Accept      json
// @Produce     json
// @Param       id   path int                        true "House preview ID"
// @Param       body body models.UpdateStatusRequest true "New status"
// @Success     200 {object} models.Envelope{data=models.HousePreviewResponse}
// @Failure     404 {object} models.Envelope
// @Failure     422 {object} models.Envelope
// @Router      /api/house-previews/{id} [put]
func (h *HousePreviewHandler) UpdateStatus(c *gin.Context) {
	id, found := idParam(c, "id")
	if !found {
		notFound(c, msgNotFound)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.previews.Get(ctx, id); err != nil {
		fail(c, err, "Failed to update house preview")
		return
	}

	var req models.UpdateStatusRequest
	// A missing or malformed body leaves Status empty and fails validation.
	if err := c.ShouldBind(&req); err != nil {
		logging.Ctx(ctx).Debug().Err(err).Int64("id", id).Msg("failed to bind status update")
	}
	if verr := validation.ValidateStatusUpdate(&validation.StatusUpdate{Status: req.Status}); verr != nil {
		invalid(c, verr)
		return
	}

	preview, err := h.previews.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		fail(c, err, "Failed to update house preview")
		return
	}

	ok(c, http.StatusOK, "House preview status updated successfully", h.render(preview))
}

// MarkProcessed godoc
// @Summary     Mark a house preview as processed
// @Description Sets status completed and records the authenticated staff member and time.
// @Tags        house-previews
// @Produce     json
// @Security    Bearer
// @Param       id path int true "House preview ID"
// @Success     200 {object} models.Envelope{data=models.HousePreviewResponse}
// @Failure     401 {object} models.Envelope
// @Failure     404 {object} models.Envelope
// @Failure     422 {object} models.Envelope
// @Router      /api/house-previews/{id}/processed [post]
func (h *HousePreviewHandler) MarkProcessed(c *gin.Context) {
	id, found := idParam(c, "id")
	if !found {
		notFound(c, msgNotFound)
		return
	}

	var processedBy *int64
	if staffID, exists := middleware.StaffID(c); exists {
		processedBy = &staffID
	}

	preview, err := h.previews.MarkAsProcessed(c.Request.Context(), id, processedBy)
	if err != nil {
		fail(c, err, "Failed to update house preview")
		return
	}

	ok(c, http.StatusOK, "House preview marked as processed", h.render(preview))
}

// Delete godoc
// @Summary     Delete a house preview
// @Description Removes the stored images and then the record.
// @Tags        house-previews
// @Produce     json
// @Param       id path int true "House preview ID"
// @Success     200 {object} models.Envelope
// @Failure     404 {object} models.Envelope
// @Failure     500 {object} models.Envelope
// @Router      /api/house-previews/{id} [delete]
func (h *HousePreviewHandler) Delete(c *gin.Context) {
	id, found := idParam(c, "id")
	if !found {
		notFound(c, msgNotFound)
		return
	}

	if err := h.previews.Delete(c.Request.Context(), id); err != nil {
		fail(c, err, "Failed to delete house preview")
		return
	}

	ok(c, http.StatusOK, "House preview deleted successfully", nil)
}

// readSubmission maps the multipart form onto a submission. Files are read
// fully into memory, up to one byte past their size limit.
func readSubmission(c *gin.Context) (*validation.PreviewSubmission, error) {
	sub := &validation.PreviewSubmission{
		CustomerMessage: strings.TrimSpace(c.PostForm("customer_message")),
	}

	name, hasName := c.GetPostForm("customer[name]")
	phone, hasPhone := c.GetPostForm("customer[phone]")
	address, hasAddress := c.GetPostForm("customer[address]")
	if hasName || hasPhone || hasAddress {
		sub.Customer = &validation.CustomerSubmission{
			Name:    strings.TrimSpace(name),
			Phone:   strings.TrimSpace(phone),
			Address: strings.TrimSpace(address),
		}
	}

	sub.Colors = c.PostForm("colors")
	if sub.Colors == "" {
		var tokens []string
		for _, t := range c.PostFormArray("colors[]") {
			if t = strings.TrimSpace(t); t != "" {
				tokens = append(tokens, t)
			}
		}
		sub.Colors = models.JoinColors(tokens)
	}

	var err error
	if sub.PNGImage, err = readAttachment(c, validation.PNGImageRule); err != nil {
		return nil, err
	}
	if sub.SVGImage, err = readAttachment(c, validation.SVGImageRule); err != nil {
		return nil, err
	}
	return sub, nil
}

// readAttachment returns nil when the field carries no file.
func readAttachment(c *gin.Context, rule validation.FileRule) (*models.Attachment, error) {
	fh, err := c.FormFile(rule.Field)
	if err != nil {
		return nil, nil
	}
	return openAttachment(fh, rule.MaxKB*1024+1)
}

func openAttachment(fh *multipart.FileHeader, limit int64) (*models.Attachment, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, &services.StorageError{Op: "read upload", Path: fh.Filename, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return nil, &services.StorageError{Op: "read upload", Path: fh.Filename, Err: err}
	}

	return &models.Attachment{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
