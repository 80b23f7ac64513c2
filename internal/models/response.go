package models

import "time"

// Envelope is the body of every API response.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

type CustomerResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Address   string     `json:"address"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

type HousePreviewResponse struct {
	ID              int64             `json:"id"`
	CustomerID      int64             `json:"customer_id"`
	Colors          *string           `json:"colors"`
	PNGImage        string            `json:"png_image"`
	SVGImage        *string           `json:"svg_image"`
	CustomerMessage *string           `json:"customer_message"`
	Status          PreviewStatus     `json:"status"`
	ProcessedBy     *int64            `json:"processed_by"`
	ProcessedAt     *time.Time        `json:"processed_at"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	DeletedAt       *time.Time        `json:"deleted_at"`
	PNGImageURL     *string           `json:"png_image_url"`
	SVGImageURL     *string           `json:"svg_image_url"`
	ColorsArray     []string          `json:"colors_array"`
	Customer        *CustomerResponse `json:"customer,omitempty"`
}

// PaginatedResponse mirrors the length-aware paginator shape clients already consume.
type PaginatedResponse struct {
	CurrentPage int                    `json:"current_page"`
	Data        []HousePreviewResponse `json:"data"`
	PerPage     int                    `json:"per_page"`
	Total       int64                  `json:"total"`
	LastPage    int                    `json:"last_page"`
	From        *int                   `json:"from"`
	To          *int                   `json:"to"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func NewCustomerResponse(c *Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	resp := &CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.DeletedAt.Valid {
		resp.DeletedAt = &c.DeletedAt.Time
	}
	return resp
}

// NewHousePreviewResponse renders a preview; publicURL turns a stored path into a URL.
func NewHousePreviewResponse(p *HousePreview, publicURL func(string) string) HousePreviewResponse {
	resp := HousePreviewResponse{
		ID:          p.ID,
		CustomerID:  p.CustomerID,
		PNGImage:    p.PNGImage,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		ColorsArray: p.ColorsArray(),
		Customer:    NewCustomerResponse(p.Customer),
	}
	if p.Colors.Valid {
		resp.Colors = &p.Colors.String
	}
	if p.SVGImage.Valid {
		resp.SVGImage = &p.SVGImage.String
	}
	if p.CustomerMessage.Valid {
		resp.CustomerMessage = &p.CustomerMessage.String
	}
	if p.ProcessedBy.Valid {
		resp.ProcessedBy = &p.ProcessedBy.Int64
	}
	if p.ProcessedAt.Valid {
		resp.ProcessedAt = &p.ProcessedAt.Time
	}
	if p.DeletedAt.Valid {
		resp.DeletedAt = &p.DeletedAt.Time
	}
	if p.PNGImage != "" {
		u := publicURL(p.PNGImage)
		resp.PNGImageURL = &u
	}
	if p.SVGImage.Valid && p.SVGImage.String != "" {
		u := publicURL(p.SVGImage.String)
		resp.SVGImageURL = &u
	}
	return resp
}
