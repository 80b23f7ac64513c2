package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"house-preview-backend/internal/models"
	"house-preview-backend/internal/services"
	"house-preview-backend/internal/services/servicetest"
)

func TestResolveOrCreate_NewPhone(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewMemoryStore()
	dir := services.NewCustomerDirectory()

	c, created, err := dir.ResolveOrCreate(ctx, store, models.CustomerInput{
		Name: "Jane Doe", Phone: "9876543210", Address: "12 Elm St",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, c.ID)
	assert.Len(t, store.Customers(), 1)
}

func TestResolveOrCreate_ExistingPhoneIsNotUpdated(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewMemoryStore()
	dir := services.NewCustomerDirectory()

	first, _, err := dir.ResolveOrCreate(ctx, store, models.CustomerInput{
		Name: "Jane Doe", Phone: "9876543210", Address: "12 Elm St",
	})
	require.NoError(t, err)

	second, created, err := dir.ResolveOrCreate(ctx, store, models.CustomerInput{
		Name: "Janet Doe", Phone: "9876543210", Address: "99 Oak Ave",
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	customers := store.Customers()
	require.Len(t, customers, 1)
	assert.Equal(t, "Jane Doe", customers[0].Name)
	assert.Equal(t, "12 Elm St", customers[0].Address)
}

// lookupBarrier makes every phone lookup wait until n lookups have happened,
// reproducing two submissions that both read before either writes.
type lookupBarrier struct {
	*servicetest.MemoryStore
	wg *sync.WaitGroup
}

func (s lookupBarrier) FindCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	c, err := s.MemoryStore.FindCustomerByPhone(ctx, phone)
	s.wg.Done()
	s.wg.Wait()
	return c, err
}

func TestResolveOrCreate_ConcurrentSamePhoneCreatesDuplicates(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewMemoryStore()
	dir := services.NewCustomerDirectory()

	var barrier sync.WaitGroup
	barrier.Add(2)
	gated := lookupBarrier{MemoryStore: store, wg: &barrier}

	var done sync.WaitGroup
	ids := make([]int64, 2)
	for i := 0; i < 2; i++ {
		done.Add(1)
		go func(i int) {
			defer done.Done()
			c, created, err := dir.ResolveOrCreate(ctx, gated, models.CustomerInput{
				Name: "Jane Doe", Phone: "9876543210", Address: "12 Elm St",
			})
			assert.NoError(t, err)
			assert.True(t, created)
			ids[i] = c.ID
		}(i)
	}
	done.Wait()

	assert.NotEqual(t, ids[0], ids[1])
	assert.Len(t, store.Customers(), 2)
}
