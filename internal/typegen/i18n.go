package typegen

import (
	"github.com/extforge/cli/internal/config"
	"github.com/extforge/cli/internal/fsutil"
	"github.com/extforge/cli/internal/i18n"
	"github.com/extforge/cli/internal/templates"
)

// I18nBundleExists reports whether the default-locale bundle is present.
// Without a default locale the bundle path is <publicDir>/_locales/messages.json.
func I18nBundleExists(s *config.Settings) (bool, error) {
	return fsutil.Exists(i18n.BundlePath(s.PublicDir, s.Manifest.DefaultLocale))
}

// I18nEntry declares one getMessage overload per message of the default
// locale. Without a default locale it renders zero overloads.
func I18nEntry(s *config.Settings) (File, error) {
	var (
		messages []i18n.Message
		err      error
	)
	if locale := s.Manifest.DefaultLocale; locale != "" {
		messages, err = i18n.ReadBundle(i18n.BundlePath(s.PublicDir, locale))
	} else {
		messages, err = i18n.Parse([]byte("{}"))
	}
	if err != nil {
		return File{}, err
	}

	text, err := RenderI18n(messages)
	if err != nil {
		return File{}, err
	}
	return File{Path: I18nPath, Text: text, TSReference: true}, nil
}

// RenderI18n renders the overloads for messages in order.
func RenderI18n(messages []i18n.Message) (string, error) {
	return templates.Render(templates.I18n, struct{ Messages []i18n.Message }{messages})
}
