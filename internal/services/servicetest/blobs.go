package servicetest

import (
	"context"
	"sort"
	"sync"

	"house-preview-backend/internal/services"
)

// MemoryBlobStore implements services.BlobStore and records every call.
type MemoryBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte

	Puts    []string
	Checks  []string
	Deletes []string

	// FailPut and FailDelete, when set, are returned by Put and Delete.
	FailPut    error
	FailDelete error
}

var _ services.BlobStore = (*MemoryBlobStore)(nil)

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string][]byte)}
}

func (b *MemoryBlobStore) Put(_ context.Context, path string, data []byte, _ string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Puts = append(b.Puts, path)
	if b.FailPut != nil {
		return b.FailPut
	}
	b.blobs[path] = append([]byte(nil), data...)
	return nil
}

func (b *MemoryBlobStore) Exists(_ context.Context, path string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Checks = append(b.Checks, path)
	_, ok := b.blobs[path]
	return ok, nil
}

func (b *MemoryBlobStore) Delete(_ context.Context, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Deletes = append(b.Deletes, path)
	if b.FailDelete != nil {
		return b.FailDelete
	}
	delete(b.blobs, path)
	return nil
}

func (b *MemoryBlobStore) PublicURL(path string) string {
	return "http://localhost:8080/storage/" + path
}

// Paths returns every stored path in sorted order.
func (b *MemoryBlobStore) Paths() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.blobs))
	for p := range b.blobs {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Has reports whether path is stored.
func (b *MemoryBlobStore) Has(path string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.blobs[path]
	return ok
}

// Seed stores data at path without recording a Put.
func (b *MemoryBlobStore) Seed(path string, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blobs[path] = data
}
