package cache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/peachstatevotes/election-data-api/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFetchJSONPopulatesCache(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"name":"senate","count":3}`))
	}))
	defer srv.Close()

	now := time.Now()
	store := newTestStore(&now)
	opts := durableOpts(time.Hour)
	ctx := context.Background()

	v, err := FetchJSON[payload](ctx, store, srv.Client(), srv.URL, "doc", opts)
	require.NoError(t, err)
	assert.Equal(t, payload{Name: "senate", Count: 3}, v)

	// Second call inside the window is served from cache.
	v, err = FetchJSON[payload](ctx, store, srv.Client(), srv.URL, "doc", opts)
	require.NoError(t, err)
	assert.Equal(t, "senate", v.Name)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	// Past the window the upstream is consulted again.
	now = now.Add(2 * time.Hour)
	_, err = FetchJSON[payload](ctx, store, srv.Client(), srv.URL, "doc", opts)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestFetchJSONStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	now := time.Now()
	store := newTestStore(&now)

	_, err := FetchJSON[payload](context.Background(), store, srv.Client(), srv.URL, "doc", durableOpts(time.Hour))
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)

	// Failed fetches leave nothing behind.
	_, ok := store.Get(context.Background(), "doc", durableOpts(NoExpiry))
	assert.False(t, ok)
}

func TestFetchJSONDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	now := time.Now()
	store := newTestStore(&now)

	_, err := FetchJSON[payload](context.Background(), store, srv.Client(), srv.URL, "doc", durableOpts(time.Hour))
	assert.Error(t, err)
}

func TestFetchJSONMemoryStorage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"house","count":1}`))
	}))
	defer srv.Close()

	now := time.Now()
	store := newTestStore(&now)
	opts := ports.CacheOptions{Duration: time.Hour, Storage: ports.CacheMemory}

	_, err := FetchJSON[payload](context.Background(), store, srv.Client(), srv.URL, "doc", opts)
	require.NoError(t, err)

	v, ok := Get[payload](context.Background(), store, "doc", opts)
	require.True(t, ok)
	assert.Equal(t, "house", v.Name)

	// Nothing leaked into the durable backend.
	_, ok = store.Get(context.Background(), "doc", durableOpts(NoExpiry))
	assert.False(t, ok)
}
