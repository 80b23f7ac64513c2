package validation_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"house-preview-backend/internal/models"
	"house-preview-backend/internal/validation"
)

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 32)...)
	svgBytes = []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`)
)

func validSubmission() *validation.PreviewSubmission {
	return &validation.PreviewSubmission{
		Customer: &validation.CustomerSubmission{
			Name:    "Jane Doe",
			Phone:   "9876543210",
			Address: "12 Elm St",
		},
		Colors:   "red::blue",
		PNGImage: &models.Attachment{Filename: "house.png", Data: pngBytes},
	}
}

func TestValidateSubmission_Valid(t *testing.T) {
	assert.Nil(t, validation.ValidateSubmission(validSubmission()))

	s := validSubmission()
	s.SVGImage = &models.Attachment{Filename: "overlay.svg", Data: svgBytes}
	assert.Nil(t, validation.ValidateSubmission(s))
}

func TestValidateSubmission_MissingCustomer(t *testing.T) {
	s := validSubmission()
	s.Customer = nil

	verr := validation.ValidateSubmission(s)
	require.NotNil(t, verr)
	assert.Equal(t, []string{"Customer information is required."}, verr.Fields()["customer"])
}

func TestValidateSubmission_CustomerFields(t *testing.T) {
	s := validSubmission()
	s.Customer = &validation.CustomerSubmission{Name: "J", Phone: "98765-4321", Address: ""}

	verr := validation.ValidateSubmission(s)
	require.NotNil(t, verr)

	fields := verr.Fields()
	assert.Equal(t, []string{"The customer name field must be at least 2 characters."}, fields["customer.name"])
	assert.Equal(t, []string{"Contact number must contain digits only."}, fields["customer.phone"])
	assert.Equal(t, []string{"Address is required."}, fields["customer.address"])
}

func TestValidateSubmission_PhoneLength(t *testing.T) {
	s := validSubmission()
	s.Customer.Phone = "12345"

	verr := validation.ValidateSubmission(s)
	require.NotNil(t, verr)
	assert.Equal(t, []string{"Contact number must be exactly 10 digits."}, verr.Fields()["customer.phone"])
}

func TestValidateSubmission_PNGRequired(t *testing.T) {
	s := validSubmission()
	s.PNGImage = nil

	verr := validation.ValidateSubmission(s)
	require.NotNil(t, verr)
	assert.Equal(t, []string{"PNG image is required."}, verr.Fields()["png_image"])
}

func TestValidateSubmission_PNGWrongType(t *testing.T) {
	s := validSubmission()
	s.PNGImage = &models.Attachment{Filename: "house.jpg", Data: []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")}

	verr := validation.ValidateSubmission(s)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields()["png_image"], "PNG file must be in PNG format.")
}

func TestValidateSubmission_PNGNotAnImage(t *testing.T) {
	s := validSubmission()
	s.PNGImage = &models.Attachment{Filename: "house.png", Data: []byte("just some text")}

	verr := validation.ValidateSubmission(s)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields()["png_image"], "PNG file must be a valid image.")
	assert.Contains(t, verr.Fields()["png_image"], "PNG file must be in PNG format.")
}

func TestValidateSubmission_PNGTooLarge(t *testing.T) {
	s := validSubmission()
	big := append([]byte{}, pngBytes...)
	big = append(big, bytes.Repeat([]byte{0}, 10240*1024)...)
	s.PNGImage = &models.Attachment{Filename: "house.png", Data: big}

	verr := validation.ValidateSubmission(s)
	require.NotNil(t, verr)
	assert.Equal(t, []string{"PNG image must not exceed 10MB."}, verr.Fields()["png_image"])
}

func TestValidateSubmission_SVGWrongType(t *testing.T) {
	s := validSubmission()
	s.SVGImage = &models.Attachment{Filename: "overlay.png", Data: pngBytes}

	verr := validation.ValidateSubmission(s)
	require.NotNil(t, verr)
	assert.Equal(t, []string{"SVG file must be in SVG format."}, verr.Fields()["svg_image"])
	assert.False(t, verr.Has("png_image"))
}

func TestValidateSubmission_SVGTooLarge(t *testing.T) {
	s := validSubmission()
	padding := strings.Repeat(" ", 5120*1024)
	s.SVGImage = &models.Attachment{Filename: "overlay.svg", Data: append(append([]byte{}, svgBytes...), padding...)}

	verr := validation.ValidateSubmission(s)
	require.NotNil(t, verr)
	assert.Equal(t, []string{"SVG file must not exceed 5MB."}, verr.Fields()["svg_image"])
}

func TestValidateSubmission_CollectsEveryField(t *testing.T) {
	s := &validation.PreviewSubmission{
		Customer: &validation.CustomerSubmission{},
		SVGImage: &models.Attachment{Filename: "x.txt", Data: []byte("hello")},
	}

	verr := validation.ValidateSubmission(s)
	require.NotNil(t, verr)
	for _, field := range []string{"customer.name", "customer.phone", "customer.address", "png_image", "svg_image"} {
		assert.True(t, verr.Has(field), field)
	}
	assert.Contains(t, verr.Error(), "customer.phone: Contact number is required.")
}

func TestValidateStatusUpdate(t *testing.T) {
	for _, s := range []string{"pending", "processing", "completed", "cancelled"} {
		assert.Nil(t, validation.ValidateStatusUpdate(&validation.StatusUpdate{Status: s}), s)
	}

	verr := validation.ValidateStatusUpdate(&validation.StatusUpdate{Status: "archived"})
	require.NotNil(t, verr)
	assert.Equal(t, []string{"The selected status is invalid."}, verr.Fields()["status"])

	verr = validation.ValidateStatusUpdate(&validation.StatusUpdate{})
	require.NotNil(t, verr)
	assert.Equal(t, []string{"The status field is required."}, verr.Fields()["status"])
}

func TestFileRuleExtension(t *testing.T) {
	assert.Equal(t, ".png", validation.PNGImageRule.Extension())
	assert.Equal(t, ".svg", validation.SVGImageRule.Extension())
	assert.Equal(t, "image/png", validation.PNGImageRule.ContentType())
	assert.Equal(t, "image/svg+xml", validation.SVGImageRule.ContentType())
}
