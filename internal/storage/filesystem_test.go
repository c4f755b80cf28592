package storage

import (
	"context"
	"testing"
)

func TestFileStoreWriteReadRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	key, err := store.Write(context.Background(), "uploads/abc123/photo.jpg", []byte("photo"))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if key != "uploads/abc123/photo.jpg" {
		t.Fatalf("key = %q", key)
	}
	data, err := store.Read(context.Background(), key)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "photo" {
		t.Fatalf("read back %q", data)
	}
	if !store.Exists(key) {
		t.Fatal("exists = false for written key")
	}
	if store.Exists("uploads/abc123/missing.jpg") {
		t.Fatal("exists = true for missing key")
	}
}

func TestSanitizeKeyRejectsTraversal(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
		want    string
	}{
		{"results/ART-1/01.jpg", false, "results/ART-1/01.jpg"},
		{"/leading/slash.jpg", false, "leading/slash.jpg"},
		{"./dotted/path.jpg", false, "dotted/path.jpg"},
		{"a/../b.jpg", false, "b.jpg"},
		{"../escape.jpg", true, ""},
		{"..", true, ""},
		{"", true, ""},
		{"   ", true, ""},
	}
	for _, tc := range tests {
		got, err := sanitizeKey(tc.key)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("sanitizeKey(%q) = %q, want error", tc.key, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("sanitizeKey(%q): %v", tc.key, err)
		}
		if got != tc.want {
			t.Fatalf("sanitizeKey(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}
