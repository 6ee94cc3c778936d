package config

import (
	"os"
	"strings"
	"unicode"
)

// envPrefix is the prefix of every environment variable extforge reads.
const envPrefix = "EXTFORGE"

// Source indicates where a configuration value came from.
type Source string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag Source = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv Source = "env"
	// SourceConfig indicates value came from the settings file.
	SourceConfig Source = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault Source = "default"
)

// Resolved is a configuration value together with its provenance.
type Resolved struct {
	// Key is the settings key, e.g. "manifestVersion".
	Key string
	// Value is the winning value; empty when nothing was set.
	Value string
	// Source indicates where Value came from.
	Source Source
	// Shadowed contains values overridden by higher precedence.
	Shadowed map[Source]string
}

// ResolveValue resolves key using precedence: flag > env > config > default.
// The environment variable is derived from the key, see EnvVar.
func ResolveValue(key, flagValue, configValue, defaultValue string) Resolved {
	r := Resolved{Key: key, Shadowed: make(map[Source]string)}

	candidates := []struct {
		source Source
		value  string
	}{
		{SourceFlag, flagValue},
		{SourceEnv, os.Getenv(EnvVar(key))},
		{SourceConfig, configValue},
		{SourceDefault, defaultValue},
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if r.Source == "" {
			r.Value = c.value
			r.Source = c.source
			continue
		}
		if c.source != SourceDefault {
			r.Shadowed[c.source] = c.value
		}
	}

	return r
}

// EnvVar returns the environment variable for a camelCase settings key:
// "manifestVersion" becomes "EXTFORGE_MANIFEST_VERSION".
func EnvVar(key string) string {
	var b strings.Builder
	b.WriteString(envPrefix)
	b.WriteByte('_')
	for i, r := range key {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
