package validation

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"house-preview-backend/internal/models"
)

// FileRule describes the accepted shape of one uploaded file.
type FileRule struct {
	Field      string
	Required   bool
	Image      bool
	Extensions []string
	MIMETypes  []string
	MaxKB      int64
}

var (
	PNGImageRule = FileRule{
		Field:      "png_image",
		Required:   true,
		Image:      true,
		Extensions: []string{".png"},
		MIMETypes:  []string{"image/png"},
		MaxKB:      10240,
	}

	SVGImageRule = FileRule{
		Field:      "svg_image",
		Extensions: []string{".svg"},
		MIMETypes:  []string{"image/svg+xml"},
		MaxKB:      5120,
	}
)

func (r FileRule) check(ve *RequestValidationError, a *models.Attachment) {
	if a == nil || len(a.Data) == 0 {
		if r.Required {
			ve.add(r.Field, "required", "")
		}
		return
	}

	detected := mimetype.Detect(a.Data)
	if r.Image && !strings.HasPrefix(detected.String(), "image/") {
		ve.add(r.Field, "image", "")
	}
	if !r.extensionAllowed(a.Filename) || !r.mimeAllowed(detected) {
		ve.add(r.Field, "mimes", strings.TrimPrefix(strings.Join(r.Extensions, ","), "."))
	}
	if a.Size() > r.MaxKB*1024 {
		ve.add(r.Field, "max", strconv.FormatInt(r.MaxKB, 10))
	}
}

func (r FileRule) extensionAllowed(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range r.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (r FileRule) mimeAllowed(detected *mimetype.MIME) bool {
	for _, allowed := range r.MIMETypes {
		if detected.Is(allowed) {
			return true
		}
	}
	return false
}

// Extension returns the canonical extension stored files get.
func (r FileRule) Extension() string {
	return r.Extensions[0]
}

// ContentType returns the media type stored files are written with.
func (r FileRule) ContentType() string {
	return r.MIMETypes[0]
}
