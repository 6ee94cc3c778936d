package globals

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/extforge/cli/internal/config"
	"github.com/extforge/cli/internal/fsutil"
)

// DefaultPrefixes limits which dotenv variables reach client code.
var DefaultPrefixes = []string{"VITE_", "EXTFORGE_"}

// EnvFiles returns the dotenv files consulted for mode, lowest precedence first.
func EnvFiles(mode string) []string {
	return []string{
		".env",
		".env.local",
		".env." + mode,
		".env." + mode + ".local",
	}
}

// LoadEnv reads the project's dotenv files and returns the prefixed variables
// as string-typed globals, sorted by name. Later files override earlier ones.
// Missing files are skipped.
func LoadEnv(s *config.Settings) ([]Var, error) {
	files := s.Env.Files
	if len(files) == 0 {
		files = EnvFiles(s.Mode)
	}
	prefixes := s.Env.Prefixes
	if len(prefixes) == 0 {
		prefixes = DefaultPrefixes
	}

	merged := make(map[string]string)
	for _, f := range files {
		path := f
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.Root, path)
		}

		ok, err := fsutil.Exists(path)
		if err != nil {
			return nil, fmt.Errorf("checking %s: %w", path, err)
		}
		if !ok {
			continue
		}

		values, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		for k, v := range values {
			merged[k] = v
		}
	}

	var vars []Var
	for name, value := range merged {
		if !hasAnyPrefix(name, prefixes) {
			continue
		}
		vars = append(vars, Var{Name: name, Value: value, Type: "string"})
	}
	sort.Slice(vars, func(i, j int) bool {
		return vars[i].Name < vars[j].Name
	})
	return vars, nil
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
