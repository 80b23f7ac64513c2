package supabase_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	storage "github.com/supabase-community/storage-go"
	"house-preview-backend/internal/supabase"
)

func TestStorageClient_PublicURL(t *testing.T) {
	client := supabase.NewStorageClient(nil, "https://abc.supabase.co/", "house-previews")

	assert.Equal(t,
		"https://abc.supabase.co/storage/v1/object/public/house-previews/house_previews/images/a.png",
		client.PublicURL("house_previews/images/a.png"))
}

// folderServer answers list calls for a folder holding names, honouring the
// requested limit and offset.
func folderServer(t *testing.T, names []string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	calls := &atomic.Int32{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var body struct {
			Limit  int `json:"limit"`
			Offset int `json:"offset"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Limit <= 0 {
			body.Limit = 100
		}

		page := make([]map[string]string, 0, body.Limit)
		for i := body.Offset; i < len(names) && i < body.Offset+body.Limit; i++ {
			page = append(page, map[string]string{"name": names[i]})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(page)
	}))
	t.Cleanup(server.Close)
	return server, calls
}

func newBucketClient(server *httptest.Server) *supabase.StorageClient {
	return supabase.NewStorageClient(
		storage.NewClient(server.URL+"/storage/v1", "service-key", nil),
		server.URL, "house-previews")
}

func TestStorageClient_Exists(t *testing.T) {
	server, _ := folderServer(t, []string{"a.png", "b.png"})
	client := newBucketClient(server)

	ok, err := client.Exists(context.Background(), "house_previews/images/b.png")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.Exists(context.Background(), "house_previews/images/c.png")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorageClient_ExistsReadsEveryPage(t *testing.T) {
	names := make([]string, 1500)
	for i := range names {
		names[i] = fmt.Sprintf("%04d.png", i)
	}
	server, calls := folderServer(t, names)
	client := newBucketClient(server)

	for _, name := range []string{"0000.png", "0999.png", "1000.png", "1200.png", "1499.png"} {
		ok, err := client.Exists(context.Background(), "house_previews/images/"+name)
		require.NoError(t, err)
		assert.True(t, ok, name)
	}

	calls.Store(0)
	ok, err := client.Exists(context.Background(), "house_previews/images/9999.png")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int32(2), calls.Load())
}
