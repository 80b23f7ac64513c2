// Package servicetest provides in-memory implementations of the service
// layer's store interfaces for tests.
package servicetest

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"house-preview-backend/internal/models"
	"house-preview-backend/internal/services"
)

// MemoryStore implements services.Store. Rows get increasing ids and
// creation times one second apart starting at Epoch.
type MemoryStore struct {
	mu sync.Mutex

	customers map[int64]models.Customer
	previews  map[int64]models.HousePreview
	users     map[int64]bool
	nextID    int64
	clock     time.Time

	// FailCreatePreview, when set, is returned by CreatePreview.
	FailCreatePreview error
}

var Epoch = time.Date(2025, 11, 24, 9, 0, 0, 0, time.UTC)

var _ services.Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		customers: make(map[int64]models.Customer),
		previews:  make(map[int64]models.HousePreview),
		users:     make(map[int64]bool),
		clock:     Epoch,
	}
}

// AddUser registers a user id that processed_by may reference.
func (m *MemoryStore) AddUser(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id] = true
}

// Customers returns a snapshot of every customer, ordered by id.
func (m *MemoryStore) Customers() []models.Customer {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Customer, 0, len(m.customers))
	for _, c := range m.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PreviewCount returns the number of stored previews.
func (m *MemoryStore) PreviewCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.previews)
}

// SeedPreview stores p as-is apart from id and timestamps.
func (m *MemoryStore) SeedPreview(p models.HousePreview) models.HousePreview {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	m.previews[p.ID] = p
	return p
}

func (m *MemoryStore) stamp(id *int64, created, updated *time.Time) {
	m.nextID++
	m.clock = m.clock.Add(time.Second)
	*id = m.nextID
	*created = m.clock
	*updated = m.clock
}

func (m *MemoryStore) FindCustomerByPhone(_ context.Context, phone string) (*models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var found *models.Customer
	for _, c := range m.customers {
		if c.Phone == phone && !c.DeletedAt.Valid && (found == nil || c.ID < found.ID) {
			c := c
			found = &c
		}
	}
	if found == nil {
		return nil, models.ErrRecordNotFound
	}
	return found, nil
}

func (m *MemoryStore) GetCustomer(_ context.Context, id int64) (*models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok || c.DeletedAt.Valid {
		return nil, models.ErrRecordNotFound
	}
	return &c, nil
}

func (m *MemoryStore) CreateCustomer(_ context.Context, c *models.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stamp(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	m.customers[c.ID] = *c
	return nil
}

func (m *MemoryStore) CreatePreview(_ context.Context, p *models.HousePreview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCreatePreview != nil {
		return m.FailCreatePreview
	}
	if _, ok := m.customers[p.CustomerID]; !ok {
		return fmt.Errorf("customer %d: %w", p.CustomerID, models.ErrInvalidReference)
	}
	if p.Status == "" {
		p.Status = models.StatusPending
	}
	m.stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	stored := *p
	stored.Customer = nil
	m.previews[p.ID] = stored
	return nil
}

func (m *MemoryStore) withCustomer(p models.HousePreview) models.HousePreview {
	if c, ok := m.customers[p.CustomerID]; ok {
		p.Customer = &c
	}
	return p
}

func (m *MemoryStore) GetPreview(_ context.Context, id int64) (*models.HousePreview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.previews[id]
	if !ok || p.DeletedAt.Valid {
		return nil, models.ErrRecordNotFound
	}
	p = m.withCustomer(p)
	return &p, nil
}

func (m *MemoryStore) sortedPreviews(keep func(models.HousePreview) bool) []models.HousePreview {
	out := make([]models.HousePreview, 0)
	for _, p := range m.previews {
		if p.DeletedAt.Valid || !keep(p) {
			continue
		}
		out = append(out, m.withCustomer(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (m *MemoryStore) ListPreviews(_ context.Context, filter models.PreviewFilter) ([]models.HousePreview, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.sortedPreviews(func(p models.HousePreview) bool {
		return filter.Status == nil || p.Status == *filter.Status
	})
	total := int64(len(all))

	start := filter.Offset
	if start > len(all) {
		start = len(all)
	}
	end := len(all)
	if filter.Limit > 0 && start+filter.Limit < end {
		end = start + filter.Limit
	}
	return all[start:end], total, nil
}

func (m *MemoryStore) ListCustomerPreviews(_ context.Context, customerID int64) ([]models.HousePreview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedPreviews(func(p models.HousePreview) bool {
		return p.CustomerID == customerID
	}), nil
}

func (m *MemoryStore) UpdatePreviewStatus(_ context.Context, id int64, status models.PreviewStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.previews[id]
	if !ok || p.DeletedAt.Valid {
		return models.ErrRecordNotFound
	}
	p.Status = status
	m.previews[id] = p
	return nil
}

func (m *MemoryStore) MarkPreviewProcessed(_ context.Context, id int64, processedBy *int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.previews[id]
	if !ok || p.DeletedAt.Valid {
		return models.ErrRecordNotFound
	}
	p.ProcessedBy = sql.NullInt64{}
	if processedBy != nil {
		if !m.users[*processedBy] {
			return fmt.Errorf("user %d: %w", *processedBy, models.ErrInvalidReference)
		}
		p.ProcessedBy = sql.NullInt64{Int64: *processedBy, Valid: true}
	}
	p.Status = models.StatusCompleted
	p.ProcessedAt = sql.NullTime{Time: at, Valid: true}
	m.previews[id] = p
	return nil
}

func (m *MemoryStore) DeletePreview(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.previews[id]; !ok {
		return models.ErrRecordNotFound
	}
	delete(m.previews, id)
	return nil
}

// WithTx snapshots the rows and restores them when fn fails.
func (m *MemoryStore) WithTx(_ context.Context, fn func(tx services.Store) error) error {
	m.mu.Lock()
	customers := make(map[int64]models.Customer, len(m.customers))
	for k, v := range m.customers {
		customers[k] = v
	}
	previews := make(map[int64]models.HousePreview, len(m.previews))
	for k, v := range m.previews {
		previews[k] = v
	}
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.customers = customers
		m.previews = previews
		m.mu.Unlock()
		return err
	}
	return nil
}
