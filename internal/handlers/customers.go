package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"house-preview-backend/internal/models"
	"house-preview-backend/internal/services"
)

type CustomerHandler struct {
	previews *services.PreviewService
}

func NewCustomerHandler(previews *services.PreviewService) *CustomerHandler {
	return &CustomerHandler{previews: previews}
}

// CustomerPreviewsResponse is a customer with their previews.
type CustomerPreviewsResponse struct {
	Customer      *models.CustomerResponse      `json:"customer"`
	HousePreviews []models.HousePreviewResponse `json:"house_previews"`
}

// HousePreviews godoc
// @Summary     List a customer's house previews
// @Tags        customers
// @Produce     json
// @Param       id path int true "Customer ID"
// @Success     200 {object} models.Envelope{data=handlers.CustomerPreviewsResponse}
// @Failure     404 {object} models.Envelope
// @Router      /api/customers/{id}/house-previews [get]
func (h *CustomerHandler) HousePreviews(c *gin.Context) {
	id, found := idParam(c, "id")
	if !found {
		notFound(c, msgCustomerNotFound)
		return
	}

	customer, previews, err := h.previews.CustomerPreviews(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "Failed to load customer house previews")
		return
	}

	resp := CustomerPreviewsResponse{
		Customer:      models.NewCustomerResponse(customer),
		HousePreviews: make([]models.HousePreviewResponse, len(previews)),
	}
	for i := range previews {
		resp.HousePreviews[i] = models.NewHousePreviewResponse(&previews[i], h.previews.PublicURL)
		resp.HousePreviews[i].Customer = nil
	}

	ok(c, http.StatusOK, "", resp)
}
