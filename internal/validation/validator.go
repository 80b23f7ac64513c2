// Package validation checks inbound submissions before any side effect.
//
// Struct fields are validated with go-playground/validator using the json
// tag as the field key, so failures are reported under the same dotted
// names clients submit (customer.phone, png_image, ...). Attachments are
// checked by FileRule. Every failure for every field is collected into one
// RequestValidationError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"house-preview-backend/internal/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// CustomerSubmission is the customer block of a preview submission.
type CustomerSubmission struct {
	Name    string `json:"name" validate:"required,min=2,max=255"`
	Phone   string `json:"phone" validate:"required,len=10,number"`
	Address string `json:"address" validate:"required,min=5,max=500"`
}

// PreviewSubmission is a house preview submission as parsed from the form.
type PreviewSubmission struct {
	Customer        *CustomerSubmission `json:"customer" validate:"required"`
	Colors          string              `json:"colors" validate:"omitempty,max=1000"`
	CustomerMessage string              `json:"customer_message" validate:"omitempty,max=2000"`

	PNGImage *models.Attachment `json:"-"`
	SVGImage *models.Attachment `json:"-"`
}

// StatusUpdate is the body of a status update.
type StatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=pending processing completed cancelled"`
}

// messages overrides the generic message for a field and rule.
var messages = map[string]string{
	"customer.required":         "Customer information is required.",
	"customer.name.required":    "Customer name is required.",
	"customer.phone.required":   "Contact number is required.",
	"customer.phone.len":        "Contact number must be exactly 10 digits.",
	"customer.phone.number":     "Contact number must contain digits only.",
	"customer.address.required": "Address is required.",

	"png_image.required": "PNG image is required.",
	"png_image.image":    "PNG file must be a valid image.",
	"png_image.mimes":    "PNG file must be in PNG format.",
	"png_image.max":      "PNG image must not exceed 10MB.",

	"svg_image.mimes": "SVG file must be in SVG format.",
	"svg_image.max":   "SVG file must not exceed 5MB.",
}

// RequestValidationError holds every failed rule keyed by field.
type RequestValidationError struct {
	fields map[string][]string
}

func newRequestValidationError() *RequestValidationError {
	return &RequestValidationError{fields: make(map[string][]string)}
}

func (ve *RequestValidationError) add(field, rule, param string) {
	ve.fields[field] = append(ve.fields[field], message(field, rule, param))
}

// Fields returns the messages keyed by field.
func (ve *RequestValidationError) Fields() map[string][]string {
	return ve.fields
}

// Has reports whether field failed validation.
func (ve *RequestValidationError) Has(field string) bool {
	return len(ve.fields[field]) > 0
}

func (ve *RequestValidationError) empty() bool {
	return len(ve.fields) == 0
}

func (ve *RequestValidationError) Error() string {
	if ve.empty() {
		return "validation failed"
	}
	keys := make([]string, 0, len(ve.fields))
	for k := range ve.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(ve.fields[k], " ")))
	}
	return strings.Join(parts, "; ")
}

// GetValidator returns the shared validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ValidateSubmission checks the whole submission, attachments included.
// It returns nil when the submission is valid.
func ValidateSubmission(s *PreviewSubmission) *RequestValidationError {
	ve := newRequestValidationError()
	collect(ve, GetValidator().Struct(s))
	PNGImageRule.check(ve, s.PNGImage)
	SVGImageRule.check(ve, s.SVGImage)

	if ve.empty() {
		return nil
	}
	return ve
}

// ValidateStatusUpdate checks a status update body.
func ValidateStatusUpdate(u *StatusUpdate) *RequestValidationError {
	ve := newRequestValidationError()
	collect(ve, GetValidator().Struct(u))
	if ve.empty() {
		return nil
	}
	return ve
}

// InvalidField builds a single-field validation error.
func InvalidField(field, rule, param string) *RequestValidationError {
	ve := newRequestValidationError()
	ve.add(field, rule, param)
	return ve
}

func collect(ve *RequestValidationError, err error) {
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		ve.fields["_"] = append(ve.fields["_"], err.Error())
		return
	}
	for _, fe := range fieldErrs {
		ve.add(fieldKey(fe.Namespace()), fe.Tag(), fe.Param())
	}
}

// fieldKey drops the struct type name from a validator namespace.
func fieldKey(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(field, rule, param string) string {
	if msg, ok := messages[field+"."+rule]; ok {
		return msg
	}
	attr := strings.NewReplacer(".", " ", "_", " ").Replace(field)
	switch rule {
	case "required":
		return fmt.Sprintf("The %s field is required.", attr)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", attr, param)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s.", attr, param)
	case "len":
		return fmt.Sprintf("The %s field must be %s characters.", attr, param)
	case "number":
		return fmt.Sprintf("The %s field must contain digits only.", attr)
	case "oneof", "exists":
		return fmt.Sprintf("The selected %s is invalid.", attr)
	case "mimes":
		return fmt.Sprintf("The %s field must be a file of type: %s.", attr, param)
	case "image":
		return fmt.Sprintf("The %s field must be an image.", attr)
	default:
		return fmt.Sprintf("The %s field is invalid.", attr)
	}
}
