package discovery

import (
	"sort"
	"strings"
)

// SortMode represents the order images are listed in
type SortMode int

const (
	SortByName SortMode = iota
	SortByDate
	SortBySize
)

// ParseSortMode maps the configured name to a mode, defaulting to name order
func ParseSortMode(s string) SortMode {
	switch s {
	case "date":
		return SortByDate
	case "size":
		return SortBySize
	default:
		return SortByName
	}
}

// sortFiles orders files in place. Date order is newest first, size order largest first.
func sortFiles(files []File, mode SortMode) {
	switch mode {
	case SortByDate:
		sort.SliceStable(files, func(i, j int) bool {
			if !files[i].ModTime.Equal(files[j].ModTime) {
				return files[i].ModTime.After(files[j].ModTime)
			}
			return lessName(files[i], files[j])
		})
	case SortBySize:
		sort.SliceStable(files, func(i, j int) bool {
			if files[i].Size != files[j].Size {
				return files[i].Size > files[j].Size
			}
			return lessName(files[i], files[j])
		})
	default:
		sort.SliceStable(files, func(i, j int) bool {
			return lessName(files[i], files[j])
		})
	}
}

func lessName(a, b File) bool {
	la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
	if la != lb {
		return la < lb
	}
	return a.Name < b.Name
}
