package thumbs

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"picbrowse/internal/discovery"
	"picbrowse/internal/domain"
)

// FolderIcons are the folder thumbnails: with images inside, and without
const (
	FolderIconImages = "▣"
	FolderIconEmpty  = "□"
)

// Result is what the prober learned about one image
type Result struct {
	Path  string
	Thumb string
	Info  domain.EntryInfo
	Err   error
}

// Prober reads image headers on a bounded pool of workers
type Prober struct {
	workers int
	lister  *discovery.Service
}

func NewProber(workers int, lister *discovery.Service) *Prober {
	if workers < 1 {
		workers = 1
	}
	return &Prober{workers: workers, lister: lister}
}

// Probe inspects the images and calls report for each, in completion order.
// report may be called from several goroutines at once.
func (p *Prober) Probe(ctx context.Context, paths []string, report func(Result)) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for _, path := range paths {
		path := path
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			report(probeImage(path))
			return nil
		})
	}
	return g.Wait()
}

func probeImage(path string) Result {
	r := Result{Path: path, Thumb: "file://" + path}

	f, err := os.Open(path)
	if err != nil {
		r.Err = fmt.Errorf("failed to open image: %w", err)
		return r
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		r.Err = fmt.Errorf("failed to stat image: %w", err)
		return r
	}

	fields := map[string]string{
		"Size":     discovery.HumanSize(info.Size()),
		"Modified": info.ModTime().Format("2006-01-02 15:04"),
	}
	r.Info = domain.EntryInfo{Filename: filepath.Base(path), Fields: fields}

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		// still show the file, just without dimensions
		logrus.WithError(err).WithField("path", path).Debug("thumbs: unreadable image header")
		fields["Format"] = "unknown"
		return r
	}
	fields["Format"] = format
	r.Info.Dimensions = fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)
	return r
}

// FolderIcon picks the thumbnail of a folder: whether it holds any image
func (p *Prober) FolderIcon(ctx context.Context, dir string) string {
	l, err := p.lister.List(ctx, dir)
	if err != nil || len(l.Images) == 0 {
		return FolderIconEmpty
	}
	return FolderIconImages
}
