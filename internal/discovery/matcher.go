package discovery

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Matcher classifies file names with glob patterns
type Matcher struct {
	images []glob.Glob
	ignore []glob.Glob
}

// NewMatcher compiles the image and ignore patterns
func NewMatcher(images, ignore []string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range images {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to compile image pattern %q: %w", p, err)
		}
		m.images = append(m.images, g)
	}
	for _, p := range ignore {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to compile ignore pattern %q: %w", p, err)
		}
		m.ignore = append(m.ignore, g)
	}
	return m, nil
}

// IsImage reports whether a file name looks like an image
func (m *Matcher) IsImage(name string) bool {
	return matchAny(m.images, name)
}

func (m *Matcher) Ignored(name string) bool {
	return matchAny(m.ignore, name)
}

func matchAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
