// Package i18n reads extension locale bundles (_locales/<locale>/messages.json)
// into an ordered list of messages.
//
// Bundles are validated against an embedded JSON Schema before parsing, and
// message order follows the order of keys in the source file.
package i18n
