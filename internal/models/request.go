package models

type UpdateStatusRequest struct {
	// Status is one of pending, processing, completed or cancelled.
	Status string `json:"status" form:"status" example:"processing"`
}
