package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/hexhalftone/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	tests := []struct {
		name string
		xdg  string
		home string
		want string
	}{
		{"xdg cache home", "/tmp/xdg", "/home/u", filepath.Join("/tmp/xdg", "hexhalftone")},
		{"home fallback", "", "/home/u", filepath.Join("/home/u", ".cache", "hexhalftone")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			t.Setenv("HOME", tt.home)

			dir, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if dir != tt.want {
				t.Errorf("cacheDir() = %q, want %q", dir, tt.want)
			}
		})
	}
}

func TestClearCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hexhalftone")

	n, err := clearCache(dir)
	if err != nil || n != 0 {
		t.Fatalf("clearCache(missing) = %d, %v; want 0, nil", n, err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("clearCache should not create a missing directory")
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, k := range []string{"one", "two"} {
		if err := fc.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	n, err = clearCache(dir)
	if err != nil {
		t.Fatalf("clearCache() error: %v", err)
	}
	if n != 2 {
		t.Errorf("clearCache() = %d, want 2", n)
	}
}
