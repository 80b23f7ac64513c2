package services

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strings"
	"time"

	"house-preview-backend/internal/logging"
	"house-preview-backend/internal/metrics"
	"house-preview-backend/internal/models"
	"house-preview-backend/internal/validation"
)

// ListParams are the loose list inputs. Page and PerPage are expected to be
// normalised by the caller; Status is ignored unless it names a status.
type ListParams struct {
	Status  string
	Page    int
	PerPage int
}

// PreviewPage is one page of a listing.
type PreviewPage struct {
	Items    []models.HousePreview
	Page     int
	PerPage  int
	Total    int64
	LastPage int
}

type PreviewService struct {
	store     Store
	uploads   *UploadService
	customers *CustomerDirectory
	now       func() time.Time
}

func NewPreviewService(store Store, uploads *UploadService) *PreviewService {
	return &PreviewService{
		store:     store,
		uploads:   uploads,
		customers: NewCustomerDirectory(),
		now:       time.Now,
	}
}

// PublicURL returns the URL a stored attachment is served from.
func (s *PreviewService) PublicURL(storagePath string) string {
	return s.uploads.PublicURL(storagePath)
}

func (s *PreviewService) List(ctx context.Context, params ListParams) (*PreviewPage, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage < 1 {
		params.PerPage = 15
	}

	filter := models.PreviewFilter{
		Limit:  params.PerPage,
		Offset: pageOffset(params.Page, params.PerPage),
	}
	if status, ok := models.ParsePreviewStatus(params.Status); ok {
		filter.Status = &status
	}

	items, total, err := s.store.ListPreviews(ctx, filter)
	if err != nil {
		return nil, &PersistenceError{Op: "list previews", Err: err}
	}

	lastPage := int((total + int64(params.PerPage) - 1) / int64(params.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}

	return &PreviewPage{
		Items:    items,
		Page:     params.Page,
		PerPage:  params.PerPage,
		Total:    total,
		LastPage: lastPage,
	}, nil
}

// Create validates the submission, stores its attachments and then, in one
// transaction, resolves the customer and inserts the preview.
//
// Nothing is written when validation fails. Attachments are written before
// the transaction; if it fails they stay in storage.
func (s *PreviewService) Create(ctx context.Context, sub *validation.PreviewSubmission) (*models.HousePreview, error) {
	if verr := validation.ValidateSubmission(sub); verr != nil {
		return nil, verr
	}

	pngPath, err := s.uploads.Store(ctx, RasterImage, sub.PNGImage)
	if err != nil {
		return nil, err
	}
	svgPath, err := s.uploads.Store(ctx, VectorImage, sub.SVGImage)
	if err != nil {
		return nil, err
	}

	preview := &models.HousePreview{
		Colors:          nullString(sub.Colors),
		PNGImage:        pngPath,
		SVGImage:        nullString(svgPath),
		CustomerMessage: nullString(sub.CustomerMessage),
		Status:          models.StatusPending,
	}

	err = s.store.WithTx(ctx, func(tx Store) error {
		customer, _, err := s.customers.ResolveOrCreate(ctx, tx, models.CustomerInput{
			Name:    strings.TrimSpace(sub.Customer.Name),
			Phone:   sub.Customer.Phone,
			Address: strings.TrimSpace(sub.Customer.Address),
		})
		if err != nil {
			return err
		}

		preview.CustomerID = customer.ID
		if err := tx.CreatePreview(ctx, preview); err != nil {
			return &PersistenceError{Op: "create preview", Err: err}
		}
		return nil
	})
	if err != nil {
		var perr *PersistenceError
		if !errors.As(err, &perr) {
			err = &PersistenceError{Op: "create preview", Err: err}
		}
		logging.Ctx(ctx).Warn().
			Str("png_image", pngPath).
			Str("svg_image", svgPath).
			Msg("preview insert failed after attachments were stored")
		return nil, err
	}

	metrics.PreviewsCreated.Inc()
	logging.Ctx(ctx).Info().
		Int64("preview_id", preview.ID).
		Int64("customer_id", preview.CustomerID).
		Msg("house preview created")

	return s.Get(ctx, preview.ID)
}

func (s *PreviewService) Get(ctx context.Context, id int64) (*models.HousePreview, error) {
	p, err := s.store.GetPreview(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, ErrPreviewNotFound
		}
		return nil, &PersistenceError{Op: "get preview", Err: err}
	}
	return p, nil
}

// UpdateStatus writes a new status. Any status may follow any other; only
// the status column changes.
func (s *PreviewService) UpdateStatus(ctx context.Context, id int64, raw string) (*models.HousePreview, error) {
	status, ok := models.ParsePreviewStatus(raw)
	if !ok {
		return nil, ErrInvalidStatus
	}

	if err := s.store.UpdatePreviewStatus(ctx, id, status); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, ErrPreviewNotFound
		}
		return nil, &PersistenceError{Op: "update status", Err: err}
	}

	logging.Ctx(ctx).Info().Int64("preview_id", id).Str("status", string(status)).Msg("house preview status updated")
	return s.Get(ctx, id)
}

// MarkAsProcessed sets status completed together with who processed the
// preview and when. processedBy may be nil.
func (s *PreviewService) MarkAsProcessed(ctx context.Context, id int64, processedBy *int64) (*models.HousePreview, error) {
	if err := s.store.MarkPreviewProcessed(ctx, id, processedBy, s.now()); err != nil {
		switch {
		case errors.Is(err, models.ErrRecordNotFound):
			return nil, ErrPreviewNotFound
		case errors.Is(err, models.ErrInvalidReference):
			return nil, ErrUnknownUser
		}
		return nil, &PersistenceError{Op: "mark processed", Err: err}
	}

	logging.Ctx(ctx).Info().Int64("preview_id", id).Msg("house preview marked as processed")
	return s.Get(ctx, id)
}

// Delete removes the preview's attachments and then the row itself. The row
// is kept when an attachment cannot be removed.
func (s *PreviewService) Delete(ctx context.Context, id int64) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.uploads.Cleanup(ctx, p.PNGImage, p.SVGImage.String); err != nil {
		return err
	}

	if err := s.store.DeletePreview(ctx, id); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return ErrPreviewNotFound
		}
		return &PersistenceError{Op: "delete preview", Err: err}
	}

	metrics.PreviewsDeleted.Inc()
	logging.Ctx(ctx).Info().Int64("preview_id", id).Msg("house preview deleted")
	return nil
}

// CustomerPreviews lists a customer's previews, most recent first.
func (s *PreviewService) CustomerPreviews(ctx context.Context, customerID int64) (*models.Customer, []models.HousePreview, error) {
	customer, err := s.store.GetCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, nil, ErrCustomerNotFound
		}
		return nil, nil, &PersistenceError{Op: "get customer", Err: err}
	}

	previews, err := s.store.ListCustomerPreviews(ctx, customerID)
	if err != nil {
		return nil, nil, &PersistenceError{Op: "list customer previews", Err: err}
	}
	return customer, previews, nil
}

// pageOffset returns the row offset of page, saturating at math.MaxInt so
// absurd page numbers read past the end instead of wrapping negative.
func pageOffset(page, perPage int) int {
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
