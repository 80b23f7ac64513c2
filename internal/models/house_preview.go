package models

import (
	"database/sql"
	"errors"
	"strings"
	"time"
)

// ColorSeparator joins colour tokens in the colors column.
const ColorSeparator = "::"

var (
	// ErrRecordNotFound is returned by the store when no live row matches.
	ErrRecordNotFound = errors.New("record not found")
	// ErrInvalidReference is returned when a foreign key points at a missing row.
	ErrInvalidReference = errors.New("invalid reference")
)

type PreviewStatus string

const (
	StatusPending    PreviewStatus = "pending"
	StatusProcessing PreviewStatus = "processing"
	StatusCompleted  PreviewStatus = "completed"
	StatusCancelled  PreviewStatus = "cancelled"
)

// PreviewStatuses lists every accepted status in declaration order.
var PreviewStatuses = []PreviewStatus{StatusPending, StatusProcessing, StatusCompleted, StatusCancelled}

// ParsePreviewStatus reports whether s names one of the preview statuses.
func ParsePreviewStatus(s string) (PreviewStatus, bool) {
	for _, st := range PreviewStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

type HousePreview struct {
	ID              int64
	CustomerID      int64
	Colors          sql.NullString
	PNGImage        string
	SVGImage        sql.NullString
	CustomerMessage sql.NullString
	Status          PreviewStatus
	ProcessedBy     sql.NullInt64
	ProcessedAt     sql.NullTime
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       sql.NullTime

	// Customer is only set when the caller joined it explicitly.
	Customer *Customer
}

// ColorsArray splits the stored colours into tokens, nil when none are stored.
func (p *HousePreview) ColorsArray() []string {
	if !p.Colors.Valid {
		return nil
	}
	return SplitColors(p.Colors.String)
}

// JoinColors serialises colour tokens for storage.
func JoinColors(tokens []string) string {
	return strings.Join(tokens, ColorSeparator)
}

// SplitColors is the inverse of JoinColors for tokens that do not contain the separator.
func SplitColors(colors string) []string {
	if colors == "" {
		return nil
	}
	return strings.Split(colors, ColorSeparator)
}

// PreviewFilter narrows a preview listing. A nil Status means every status.
type PreviewFilter struct {
	Status *PreviewStatus
	Limit  int
	Offset int
}

// Attachment is an uploaded file held in memory.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (a *Attachment) Size() int64 {
	return int64(len(a.Data))
}
