package supabase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"house-preview-backend/internal/models"
	"house-preview-backend/internal/services"
)

// foreignKeyViolation is the Postgres SQLSTATE for a failed FK check.
const foreignKeyViolation = "23503"

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// DatabaseClient implements services.Store on the Supabase Postgres
// database. A client returned to a WithTx callback runs every statement
// in that transaction.
type DatabaseClient struct {
	db *sql.DB
	q  queryer
	tx bool
}

var _ services.Store = (*DatabaseClient)(nil)

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewDatabaseClientFromDB(db), nil
}

// NewDatabaseClientFromDB wraps an already opened handle.
func NewDatabaseClientFromDB(db *sql.DB) *DatabaseClient {
	return &DatabaseClient{db: db, q: db}
}

func (d *DatabaseClient) DB() *sql.DB {
	return d.db
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

// WithTx runs fn inside a transaction, committing when fn returns nil.
// Nested calls join the outer transaction.
func (d *DatabaseClient) WithTx(ctx context.Context, fn func(tx services.Store) error) error {
	if d.tx {
		return fn(d)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&DatabaseClient{db: d.db, q: tx, tx: true}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("failed to rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

const customerColumns = `id, name, phone, address, created_at, updated_at, deleted_at`

func scanCustomer(row interface{ Scan(...interface{}) error }) (*models.Customer, error) {
	var c models.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (d *DatabaseClient) FindCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	c, err := scanCustomer(d.q.QueryRowContext(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE phone = $1 AND deleted_at IS NULL
		ORDER BY id ASC
		LIMIT 1
	`, phone))
	if err != nil {
		return nil, translate("failed to find customer", err)
	}
	return c, nil
}

func (d *DatabaseClient) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	c, err := scanCustomer(d.q.QueryRowContext(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE id = $1 AND deleted_at IS NULL
	`, id))
	if err != nil {
		return nil, translate("failed to get customer", err)
	}
	return c, nil
}

func (d *DatabaseClient) CreateCustomer(ctx context.Context, c *models.Customer) error {
	err := d.q.QueryRowContext(ctx, `
		INSERT INTO customers (name, phone, address)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, c.Name, c.Phone, c.Address).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return translate("failed to create customer", err)
	}
	return nil
}

const previewSelect = `
	SELECT hp.id, hp.customer_id, hp.colors, hp.png_image, hp.svg_image, hp.customer_message,
		hp.status, hp.processed_by, hp.processed_at, hp.created_at, hp.updated_at, hp.deleted_at,
		c.id, c.name, c.phone, c.address, c.created_at, c.updated_at, c.deleted_at
	FROM house_previews hp
	JOIN customers c ON c.id = hp.customer_id
`

func scanPreview(row interface{ Scan(...interface{}) error }) (*models.HousePreview, error) {
	var p models.HousePreview
	var c models.Customer
	err := row.Scan(
		&p.ID, &p.CustomerID, &p.Colors, &p.PNGImage, &p.SVGImage, &p.CustomerMessage,
		&p.Status, &p.ProcessedBy, &p.ProcessedAt, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
		&c.ID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Customer = &c
	return &p, nil
}

func (d *DatabaseClient) CreatePreview(ctx context.Context, p *models.HousePreview) error {
	if p.Status == "" {
		p.Status = models.StatusPending
	}
	err := d.q.QueryRowContext(ctx, `
		INSERT INTO house_previews (customer_id, colors, png_image, svg_image, customer_message, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, p.CustomerID, p.Colors, p.PNGImage, p.SVGImage, p.CustomerMessage, string(p.Status)).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return translate("failed to create house preview", err)
	}
	return nil
}

func (d *DatabaseClient) GetPreview(ctx context.Context, id int64) (*models.HousePreview, error) {
	p, err := scanPreview(d.q.QueryRowContext(ctx, previewSelect+`
		WHERE hp.id = $1 AND hp.deleted_at IS NULL
	`, id))
	if err != nil {
		return nil, translate("failed to get house preview", err)
	}
	return p, nil
}

func (d *DatabaseClient) ListPreviews(ctx context.Context, filter models.PreviewFilter) ([]models.HousePreview, int64, error) {
	where := `WHERE hp.deleted_at IS NULL`
	args := []interface{}{}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where += fmt.Sprintf(` AND hp.status = $%d`, len(args))
	}

	var total int64
	if err := d.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM house_previews hp `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count house previews: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	previews, err := d.queryPreviews(ctx, previewSelect+where+fmt.Sprintf(`
		ORDER BY hp.created_at DESC, hp.id DESC
		LIMIT $%d OFFSET $%d
	`, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	return previews, total, nil
}

func (d *DatabaseClient) ListCustomerPreviews(ctx context.Context, customerID int64) ([]models.HousePreview, error) {
	return d.queryPreviews(ctx, previewSelect+`
		WHERE hp.customer_id = $1 AND hp.deleted_at IS NULL
		ORDER BY hp.created_at DESC, hp.id DESC
	`, customerID)
}

func (d *DatabaseClient) queryPreviews(ctx context.Context, query string, args ...interface{}) ([]models.HousePreview, error) {
	rows, err := d.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list house previews: %w", err)
	}
	defer rows.Close()

	previews := make([]models.HousePreview, 0)
	for rows.Next() {
		p, err := scanPreview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan house preview: %w", err)
		}
		previews = append(previews, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list house previews: %w", err)
	}
	return previews, nil
}

func (d *DatabaseClient) UpdatePreviewStatus(ctx context.Context, id int64, status models.PreviewStatus) error {
	res, err := d.q.ExecContext(ctx, `
		UPDATE house_previews
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`, string(status), id)
	return affectedOne("failed to update house preview status", res, err)
}

func (d *DatabaseClient) MarkPreviewProcessed(ctx context.Context, id int64, processedBy *int64, at time.Time) error {
	var by sql.NullInt64
	if processedBy != nil {
		by = sql.NullInt64{Int64: *processedBy, Valid: true}
	}
	res, err := d.q.ExecContext(ctx, `
		UPDATE house_previews
		SET status = $1, processed_by = $2, processed_at = $3, updated_at = NOW()
		WHERE id = $4 AND deleted_at IS NULL
	`, string(models.StatusCompleted), by, at, id)
	return affectedOne("failed to mark house preview processed", res, err)
}

func (d *DatabaseClient) DeletePreview(ctx context.Context, id int64) error {
	res, err := d.q.ExecContext(ctx, `
		DELETE FROM house_previews
		WHERE id = $1
	`, id)
	return affectedOne("failed to delete house preview", res, err)
}

func affectedOne(msg string, res sql.Result, err error) error {
	if err != nil {
		return translate(msg, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", msg, err)
	}
	if n == 0 {
		return models.ErrRecordNotFound
	}
	return nil
}

// translate maps driver errors onto the model sentinels.
func translate(msg string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrRecordNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == foreignKeyViolation {
		return fmt.Errorf("%s: %s: %w", msg, pqErr.Constraint, models.ErrInvalidReference)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
