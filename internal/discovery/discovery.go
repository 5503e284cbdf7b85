package discovery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"picbrowse/internal/domain"
)

// File is one directory entry the browser may show
type File struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// Listing is the content of one folder
type Listing struct {
	Folder  string
	Crumbs  []domain.Crumb
	Folders []File
	Images  []File
	Totals  domain.Totals
}

// Options configures which files are listed and in what order
type Options struct {
	ImagePatterns  []string
	IgnorePatterns []string
	ShowHidden     bool
	Sort           SortMode
}

// Service lists folders for the local host
type Service struct {
	matcher    *Matcher
	showHidden bool
	sort       SortMode
}

// NewService creates a new discovery service
func NewService(opts Options) (*Service, error) {
	m, err := NewMatcher(opts.ImagePatterns, opts.IgnorePatterns)
	if err != nil {
		return nil, err
	}
	return &Service{matcher: m, showHidden: opts.ShowHidden, sort: opts.Sort}, nil
}

// List reads one folder: its subfolders and the images matching the patterns
func (s *Service) List(ctx context.Context, dir string) (*Listing, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder: %w", err)
	}

	l := &Listing{Folder: abs, Crumbs: Crumbs(abs)}
	for _, d := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !s.Accepts(d.Name(), d.IsDir()) {
			continue
		}
		info, err := d.Info()
		if err != nil {
			// removed while listing
			logrus.WithError(err).WithField("path", d.Name()).Debug("discovery: skipping entry")
			continue
		}
		f := File{
			Path:    filepath.Join(abs, d.Name()),
			Name:    d.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			IsDir:   d.IsDir(),
		}
		if f.IsDir {
			l.Folders = append(l.Folders, f)
		} else {
			l.Images = append(l.Images, f)
		}
	}

	sortFiles(l.Folders, SortByName)
	sortFiles(l.Images, s.sort)
	l.Totals = totals(l.Images)

	logrus.WithFields(logrus.Fields{
		"path":    abs,
		"folders": len(l.Folders),
		"images":  len(l.Images),
	}).Info("discovery: listed folder")
	return l, nil
}

// Accepts reports whether a directory entry is shown
func (s *Service) Accepts(name string, isDir bool) bool {
	if !s.showHidden && strings.HasPrefix(name, ".") {
		return false
	}
	if s.matcher.Ignored(name) {
		return false
	}
	return isDir || s.matcher.IsImage(name)
}

// Stat describes a single path, as reported by the watcher
func (s *Service) Stat(path string) (File, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, false
	}
	name := filepath.Base(path)
	if !s.Accepts(name, info.IsDir()) {
		return File{}, false
	}
	return File{Path: path, Name: name, Size: info.Size(), ModTime: info.ModTime(), IsDir: info.IsDir()}, true
}

// GroupOf returns the image group a file is listed under. Only date order groups images.
func (s *Service) GroupOf(f File) string {
	if s.sort == SortByDate {
		return f.ModTime.Format("2006-01-02")
	}
	return ""
}

// Groups returns the image group labels in listing order
func (s *Service) Groups(l *Listing) []string {
	var labels []string
	seen := make(map[string]bool)
	for _, f := range l.Images {
		g := s.GroupOf(f)
		if !seen[g] {
			seen[g] = true
			labels = append(labels, g)
		}
	}
	return labels
}

// Crumbs splits a folder path into its breadcrumb trail, root first
func Crumbs(dir string) []domain.Crumb {
	dir = filepath.Clean(dir)
	var crumbs []domain.Crumb
	for {
		name := filepath.Base(dir)
		if name == string(filepath.Separator) || name == "." {
			name = dir
		}
		crumbs = append(crumbs, domain.Crumb{Name: name, Path: dir})
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	for i, j := 0, len(crumbs)-1; i < j; i, j = i+1, j-1 {
		crumbs[i], crumbs[j] = crumbs[j], crumbs[i]
	}
	return crumbs
}

func totals(images []File) domain.Totals {
	t := domain.Totals{Count: len(images)}
	var size int64
	var latest time.Time
	for _, f := range images {
		size += f.Size
		if f.ModTime.After(latest) {
			latest = f.ModTime
		}
	}
	if len(images) > 0 {
		t.FolderSize = HumanSize(size)
		t.LatestDate = latest.Format("2006-01-02")
	}
	return t
}

// HumanSize formats a byte count with a binary unit
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// Upsert adds or replaces a file in a listing, keeping its order and totals
func (s *Service) Upsert(l *Listing, f File) {
	list := &l.Images
	mode := s.sort
	if f.IsDir {
		list, mode = &l.Folders, SortByName
	}

	replaced := false
	for i := range *list {
		if (*list)[i].Path == f.Path {
			(*list)[i] = f
			replaced = true
			break
		}
	}
	if !replaced {
		*list = append(*list, f)
	}
	sortFiles(*list, mode)
	l.Totals = totals(l.Images)
}

// Remove drops a path from a listing and returns what it was
func (s *Service) Remove(l *Listing, path string) (File, bool) {
	for _, list := range []*[]File{&l.Images, &l.Folders} {
		for i, f := range *list {
			if f.Path == path {
				*list = append((*list)[:i], (*list)[i+1:]...)
				l.Totals = totals(l.Images)
				return f, true
			}
		}
	}
	return File{}, false
}
