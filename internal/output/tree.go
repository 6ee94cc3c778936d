package output

import (
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
)

const (
	// Width of one tree level ("├── ").
	treeIndent = 4

	// Status alignment column.
	statusColumn = 30
)

// FileStatus is one generated file and the outcome of writing it.
type FileStatus struct {
	// Path is relative to the tree root, with either separator.
	Path string

	// Status is a write status such as StatusCreated.
	Status string
}

// RenderFileTree renders files under rootName with their statuses aligned
// near column 30. Directories are listed before files at every level.
func RenderFileTree(rootName string, files []FileStatus) string {
	if len(files) == 0 {
		return ""
	}

	split := make([][]string, 0, len(files))
	status := make(map[string]string, len(files))
	for _, f := range files {
		clean := path.Clean(filepath.ToSlash(f.Path))
		split = append(split, strings.Split(clean, "/"))
		status[clean] = f.Status
	}
	slices.SortFunc(split, compareTreePaths)

	root := tree.Root(StyleSummary.Render(rootName + "/"))
	dirs := map[string]*tree.Tree{"": root}

	for _, parts := range split {
		parent := root
		for i := range len(parts) - 1 {
			key := strings.Join(parts[:i+1], "/")
			dir, ok := dirs[key]
			if !ok {
				dir = tree.Root(parts[i] + "/")
				parent.Child(dir)
				dirs[key] = dir
			}
			parent = dir
		}
		parent.Child(statusLabel(parts, status[strings.Join(parts, "/")]))
	}

	return root.String() + "\n"
}

// compareTreePaths orders split paths so that, at the first differing
// segment, directories sort before files and names sort alphabetically.
func compareTreePaths(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] == b[i] {
			continue
		}
		aDir, bDir := i < len(a)-1, i < len(b)-1
		if aDir != bDir {
			if aDir {
				return -1
			}
			return 1
		}
		return strings.Compare(a[i], b[i])
	}
	return len(a) - len(b)
}

// statusLabel pads the file name so statuses line up across depths.
func statusLabel(parts []string, status string) string {
	name := parts[len(parts)-1]
	if status == "" {
		return name
	}
	padding := statusColumn - treeIndent*len(parts) - lipgloss.Width(name)
	if padding < 2 {
		padding = 2
	}
	return name + strings.Repeat(" ", padding) + StatusStyle(status).Render(status)
}
