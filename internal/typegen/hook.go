package typegen

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/extforge/cli/internal/config"
	"github.com/extforge/cli/internal/fsutil"
)

// Hook contributes additional entries after the built-in stages. prior is
// read-only; returned entries are appended before cross-referencing.
type Hook interface {
	Entries(ctx context.Context, s *config.Settings, prior []Entry) ([]Entry, error)
}

// HookFunc adapts a function to Hook.
type HookFunc func(ctx context.Context, s *config.Settings, prior []Entry) ([]Entry, error)

// Entries calls f.
func (f HookFunc) Entries(ctx context.Context, s *config.Settings, prior []Entry) ([]Entry, error) {
	return f(ctx, s, prior)
}

// Hooks runs hooks in order. Each hook also sees the entries added by the
// hooks before it.
type Hooks []Hook

// Entries returns the combined additions of every hook.
func (hs Hooks) Entries(ctx context.Context, s *config.Settings, prior []Entry) ([]Entry, error) {
	var added []Entry
	for _, h := range hs {
		view := slices.Clip(append(slices.Clip(prior), added...))
		more, err := h.Entries(ctx, s, view)
		if err != nil {
			return nil, err
		}
		added = append(added, more...)
	}
	return added, nil
}

// ExtraEntriesHook contributes the entries declared under types.extra in the
// settings file. A path entry takes its text from file when set, resolved
// against the project root.
var ExtraEntriesHook = HookFunc(func(_ context.Context, s *config.Settings, _ []Entry) ([]Entry, error) {
	entries := make([]Entry, 0, len(s.Extra))
	for _, x := range s.Extra {
		if x.Module != "" {
			entries = append(entries, ModuleRef{Module: x.Module})
			continue
		}

		text := x.Text
		if x.File != "" {
			data, err := os.ReadFile(fsutil.Resolve(s.Root, x.File))
			if err != nil {
				return nil, fmt.Errorf("reading extra entry %s: %w", x.Path, err)
			}
			text = string(data)
		}
		entries = append(entries, File{Path: x.Path, Text: text, TSReference: x.TSReference})
	}
	return entries, nil
})
