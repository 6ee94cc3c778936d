package typegen

import (
	"encoding/json"
	"fmt"

	"github.com/extforge/cli/internal/config"
	"github.com/extforge/cli/internal/fsutil"
	"github.com/extforge/cli/internal/templates"
)

type pathRow struct {
	Key   string
	Value string
}

// TSConfigEntry renders the project type configuration. Alias targets and
// the include and exclude globs are relative to the generated directory.
func TSConfigEntry(s *config.Settings) (File, error) {
	rows := make([]pathRow, 0, 2*len(s.Alias))
	for _, a := range s.Alias {
		rel, err := fsutil.RelativePath(s.GenDir, a.Path)
		if err != nil {
			return File{}, fmt.Errorf("alias %s: %w", a.Name, err)
		}
		rows = append(rows,
			pathRow{Key: quote(a.Name), Value: quote(rel)},
			pathRow{Key: quote(a.Name + "/*"), Value: quote(rel + "/*")},
		)
	}

	root, err := fsutil.RelativePath(s.GenDir, s.Root)
	if err != nil {
		return File{}, err
	}
	out, err := fsutil.RelativePath(s.GenDir, s.OutBaseDir)
	if err != nil {
		return File{}, err
	}

	text, err := templates.Render(templates.TSConfig, struct {
		Paths   []pathRow
		Include string
		Exclude string
	}{
		Paths:   rows,
		Include: quote(root + "/**/*"),
		Exclude: quote(out),
	})
	if err != nil {
		return File{}, err
	}
	return File{Path: TSConfigPath, Text: text}, nil
}

// quote returns s as a JSON string literal.
func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
