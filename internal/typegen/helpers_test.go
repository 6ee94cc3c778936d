package typegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/extforge/cli/internal/config"
	"github.com/extforge/cli/internal/entrypoint"
)

// newSettings resolves settings for a fresh project root.
func newSettings(t *testing.T, f *config.File) *config.Settings {
	t.Helper()
	if f == nil {
		f = &config.File{}
	}
	s, err := config.Resolve(t.TempDir(), f)
	require.NoError(t, err)
	return s
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// exampleEntrypoints returns a popup page and a background script.
func exampleEntrypoints(s *config.Settings) []entrypoint.Entrypoint {
	return []entrypoint.Entrypoint{
		{
			Name:      "popup",
			Type:      entrypoint.TypePopup,
			InputPath: filepath.Join(s.EntrypointsDir, "popup.html"),
			OutputDir: s.OutDir,
		},
		{
			Name:      "background",
			Type:      entrypoint.TypeBackground,
			InputPath: filepath.Join(s.EntrypointsDir, "background.ts"),
			OutputDir: s.OutDir,
		},
	}
}
