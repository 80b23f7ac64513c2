package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"house-preview-backend/internal/logging"
	"house-preview-backend/internal/models"
	"house-preview-backend/internal/services"
	"house-preview-backend/internal/validation"
)

const (
	msgNotFound         = "House preview not found"
	msgCustomerNotFound = "Customer not found"
	msgInvalid          = "The given data was invalid."
)

func ok(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, models.Envelope{Success: true, Message: message, Data: data})
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, models.Envelope{Success: false, Message: message})
}

func invalid(c *gin.Context, verr *validation.RequestValidationError) {
	c.JSON(http.StatusUnprocessableEntity, models.Envelope{
		Success: false,
		Message: msgInvalid,
		Errors:  verr.Fields(),
	})
}

// fail writes the response for err. Unexpected errors are logged and the
// client only sees message plus a coarse category.
func fail(c *gin.Context, err error, message string) {
	var verr *validation.RequestValidationError
	var serr *services.StorageError
	switch {
	case errors.As(err, &verr):
		invalid(c, verr)
		return
	case errors.Is(err, services.ErrPreviewNotFound):
		notFound(c, msgNotFound)
		return
	case errors.Is(err, services.ErrCustomerNotFound):
		notFound(c, msgCustomerNotFound)
		return
	case errors.Is(err, services.ErrInvalidStatus):
		invalid(c, validation.InvalidField("status", "oneof", ""))
		return
	case errors.Is(err, services.ErrUnknownUser):
		invalid(c, validation.InvalidField("processed_by", "exists", ""))
		return
	}

	category := "persistence failure"
	if errors.As(err, &serr) {
		category = "storage failure"
	}
	logging.Ctx(c.Request.Context()).Error().Err(err).Str("route", c.FullPath()).Msg(message)
	c.JSON(http.StatusInternalServerError, models.Envelope{
		Success: false,
		Message: message,
		Error:   category,
	})
}

// idParam parses a positive numeric path parameter.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// intQuery reads a loose integer query parameter, falling back to def for
// missing, malformed or non-positive values.
func intQuery(c *gin.Context, name string, def int) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil || n < 1 {
		return def
	}
	return n
}
