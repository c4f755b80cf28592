package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"artify/internal/domain"
)

type memResultImages struct {
	mu    sync.Mutex
	saved map[string][]byte
	types map[string]string
}

func newMemResultImages() *memResultImages {
	return &memResultImages{saved: map[string][]byte{}, types: map[string]string{}}
}

func (m *memResultImages) key(orderID string, index int) string {
	return fmt.Sprintf("%s/%d", orderID, index)
}

func (m *memResultImages) Save(ctx context.Context, orderID string, index int, contentType string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := m.key(orderID, index)
	m.saved[k] = append([]byte(nil), data...)
	m.types[k] = contentType
	return nil
}

func (m *memResultImages) Get(ctx context.Context, orderID string, index int) (string, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := m.key(orderID, index)
	data, ok := m.saved[k]
	if !ok {
		return "", nil, domain.ErrNotFound
	}
	return m.types[k], data, nil
}

func (m *memResultImages) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func TestResultStorePersistUnitUsesOneBasedIndexes(t *testing.T) {
	images := newMemResultImages()
	files, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	store := NewResultStore(ResultStoreOptions{
		Images:        images,
		Files:         files,
		PublicBaseURL: "https://shop.example",
	})

	url, err := store.PersistUnit(context.Background(), "ART-1", 0, "image/png", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("persist unit: %v", err)
	}
	if url != "https://shop.example/api/orders/ART-1/result/1" {
		t.Fatalf("url = %q, want 1-based serving index", url)
	}
	ct, data, err := images.Get(context.Background(), "ART-1", 1)
	if err != nil {
		t.Fatalf("unit 0 not stored at db index 1: %v", err)
	}
	if ct != "image/png" || len(data) != 3 {
		t.Fatalf("stored %q/%d bytes", ct, len(data))
	}
	if !files.Exists("results/ART-1/01.png") {
		t.Fatal("disk copy missing at 1-based key")
	}
}

func TestResultStorePersistBatchIdempotent(t *testing.T) {
	images := newMemResultImages()
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "image/webp")
		w.Write([]byte("img"))
	}))
	defer srv.Close()

	store := NewResultStore(ResultStoreOptions{
		Images:        images,
		PublicBaseURL: "https://shop.example",
	})

	provider := []string{
		srv.URL + "/a.webp",
		"https://shop.example/api/orders/ART-2/result/2",
		srv.URL + "/c.webp",
	}
	out := store.PersistBatch(context.Background(), "ART-2", provider)
	if len(out) != 3 {
		t.Fatalf("batch size = %d", len(out))
	}
	if out[0] != "https://shop.example/api/orders/ART-2/result/1" {
		t.Fatalf("out[0] = %q", out[0])
	}
	if out[1] != provider[1] {
		t.Fatalf("permanent url rewritten: %q", out[1])
	}
	if out[2] != "https://shop.example/api/orders/ART-2/result/3" {
		t.Fatalf("out[2] = %q", out[2])
	}
	if hits != 2 {
		t.Fatalf("downloads = %d, want 2 (permanent entry skipped)", hits)
	}

	// Second pass downloads nothing, every entry is already permanent.
	again := store.PersistBatch(context.Background(), "ART-2", out)
	if hits != 2 {
		t.Fatalf("downloads after second pass = %d, want still 2", hits)
	}
	for i := range again {
		if again[i] != out[i] {
			t.Fatalf("second pass changed entry %d", i)
		}
	}
}

func TestResultStorePersistBatchKeepsProviderURLOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	store := NewResultStore(ResultStoreOptions{
		Images:        newMemResultImages(),
		PublicBaseURL: "https://shop.example",
	})
	in := []string{srv.URL + "/gone.webp"}
	out := store.PersistBatch(context.Background(), "ART-3", in)
	if out[0] != in[0] {
		t.Fatalf("failed download should keep provider url, got %q", out[0])
	}
}

func TestServeKey(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"image/jpeg", "results/ART-1/03.jpg"},
		{"image/png", "results/ART-1/03.png"},
		{"image/webp", "results/ART-1/03.webp"},
		{"", "results/ART-1/03.jpg"},
	}
	for _, tc := range tests {
		if got := ServeKey("ART-1", 3, tc.contentType); got != tc.want {
			t.Fatalf("ServeKey(%q) = %q, want %q", tc.contentType, got, tc.want)
		}
	}
}
