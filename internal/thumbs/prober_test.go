package thumbs

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picbrowse/internal/config"
	"picbrowse/internal/discovery"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
}

func newProber(t *testing.T) *Prober {
	t.Helper()
	lister, err := discovery.NewService(discovery.Options{ImagePatterns: config.DefaultConfig().Host.ImagePatterns})
	require.NoError(t, err)
	return NewProber(2, lister)
}

func TestProbeReadsDimensions(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	bad := filepath.Join(dir, "bad.jpg")
	writePNG(t, good, 64, 48)
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0644))

	var mu sync.Mutex
	var results []Result
	err := newProber(t).Probe(context.Background(), []string{good, bad, filepath.Join(dir, "gone.jpg")}, func(r Result) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, r)
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	assert.Equal(t, "unknown", results[0].Info.Fields["Format"])
	assert.Empty(t, results[0].Info.Dimensions)
	assert.Error(t, results[1].Err)
	assert.Equal(t, "64x48", results[2].Info.Dimensions)
	assert.Equal(t, "png", results[2].Info.Fields["Format"])
	assert.Equal(t, "good.png", results[2].Info.Filename)
	assert.Equal(t, "file://"+good, results[2].Thumb)
}

func TestProbeStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := newProber(t).Probe(ctx, []string{"/a.png", "/b.png"}, func(Result) { calls++ })
	assert.NoError(t, err)
	assert.Zero(t, calls)
}

func TestFolderIcon(t *testing.T) {
	p := newProber(t)
	empty := t.TempDir()
	full := t.TempDir()
	writePNG(t, filepath.Join(full, "a.png"), 1, 1)

	assert.Equal(t, FolderIconEmpty, p.FolderIcon(context.Background(), empty))
	assert.Equal(t, FolderIconImages, p.FolderIcon(context.Background(), full))
}
