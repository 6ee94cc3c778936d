// Package config loads, validates, and resolves extforge project settings.
//
// Settings are read from extforge.yaml in the project root (viper), overlaid
// with EXTFORGE_* environment variables and command-line flags, validated
// against an embedded CUE schema, and finally resolved into absolute
// directories consumed by the type generator.
package config

// FileName is the settings file looked up in the project root.
const FileName = "extforge.yaml"

// Module types.
const (
	// ModuleTypeNode marks a module installed as a package dependency.
	ModuleTypeNode = "node_module"

	// ModuleTypeLocal marks a module that lives inside the project.
	ModuleTypeLocal = "local"
)

// Commands the build tool can be running.
const (
	CommandBuild = "build"
	CommandServe = "serve"
)

// File mirrors the on-disk shape of extforge.yaml. Relative paths are
// relative to the project root; see Resolve.
type File struct {
	SrcDir          string            `mapstructure:"srcDir" yaml:"srcDir,omitempty"`
	PublicDir       string            `mapstructure:"publicDir" yaml:"publicDir,omitempty"`
	EntrypointsDir  string            `mapstructure:"entrypointsDir" yaml:"entrypointsDir,omitempty"`
	OutDir          string            `mapstructure:"outDir" yaml:"outDir,omitempty"`
	Browser         string            `mapstructure:"browser" yaml:"browser,omitempty"`
	ManifestVersion int               `mapstructure:"manifestVersion" yaml:"manifestVersion,omitempty"`
	Mode            string            `mapstructure:"mode" yaml:"mode,omitempty"`
	Command         string            `mapstructure:"command" yaml:"command,omitempty"`
	Modules         []Module          `mapstructure:"modules" yaml:"modules,omitempty"`
	Alias           map[string]string `mapstructure:"alias" yaml:"alias,omitempty"`
	Imports         ImportsFile       `mapstructure:"imports" yaml:"imports"`
	Manifest        Manifest          `mapstructure:"manifest" yaml:"manifest,omitempty"`
	Env             EnvFile           `mapstructure:"env" yaml:"env,omitempty"`
	Types           TypesFile         `mapstructure:"types" yaml:"types,omitempty"`
}

// Module is an extension module registered with the build.
type Module struct {
	// ID is the module's package name or local path.
	ID string `mapstructure:"id" yaml:"id"`

	// Type is ModuleTypeNode or ModuleTypeLocal.
	Type string `mapstructure:"type" yaml:"type"`

	// ConfigKey is the settings key the module reads its options from, if any.
	ConfigKey string `mapstructure:"configKey" yaml:"configKey,omitempty"`
}

// ImportsFile configures the auto-import scanner.
type ImportsFile struct {
	Enabled  bool           `mapstructure:"enabled" yaml:"enabled"`
	Dirs     []string       `mapstructure:"dirs" yaml:"dirs,omitempty"`
	Presets  []ImportPreset `mapstructure:"presets" yaml:"presets,omitempty"`
	Imports  []ImportSpec   `mapstructure:"imports" yaml:"imports,omitempty"`
	ESLintrc ESLintrc       `mapstructure:"eslintrc" yaml:"eslintrc"`
}

// ImportPreset declares a group of names auto-imported from one module.
type ImportPreset struct {
	From    string   `mapstructure:"from" yaml:"from"`
	Imports []string `mapstructure:"imports" yaml:"imports"`
}

// ImportSpec declares a single auto-import.
type ImportSpec struct {
	Name string `mapstructure:"name" yaml:"name"`
	As   string `mapstructure:"as" yaml:"as,omitempty"`
	From string `mapstructure:"from" yaml:"from"`
}

// ESLintrc controls emission of the linter globals file.
type ESLintrc struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// FilePath is relative to the generated directory unless absolute.
	FilePath string `mapstructure:"filePath" yaml:"filePath,omitempty"`

	// GlobalsPropValue is true, false, or one of "readonly", "readable",
	// "writable", "writeable".
	GlobalsPropValue any `mapstructure:"globalsPropValue" yaml:"globalsPropValue,omitempty"`
}

// Manifest holds the manifest metadata the generator needs.
type Manifest struct {
	DefaultLocale string `mapstructure:"defaultLocale" yaml:"defaultLocale,omitempty"`
}

// EnvFile configures which dotenv files feed build-time globals.
type EnvFile struct {
	// Files overrides the default dotenv lookup list.
	Files []string `mapstructure:"files" yaml:"files,omitempty"`

	// Prefixes limits which variables are exposed.
	Prefixes []string `mapstructure:"prefixes" yaml:"prefixes,omitempty"`
}

// TypesFile configures additional generated type entries.
type TypesFile struct {
	Extra []ExtraEntry `mapstructure:"extra" yaml:"extra,omitempty"`
}

// ExtraEntry is a user-declared entry appended through the extension hook.
// Exactly one of Module or Path is set.
type ExtraEntry struct {
	Module      string `mapstructure:"module" yaml:"module,omitempty"`
	Path        string `mapstructure:"path" yaml:"path,omitempty"`
	Text        string `mapstructure:"text" yaml:"text,omitempty"`
	File        string `mapstructure:"file" yaml:"file,omitempty"`
	TSReference bool   `mapstructure:"tsReference" yaml:"tsReference,omitempty"`
}

// Alias maps an import alias to an absolute directory.
type Alias struct {
	Name string
	Path string
}

// Settings is the fully resolved, read-only build configuration consumed by
// the type generator. All directories are absolute.
type Settings struct {
	Root           string
	SrcDir         string
	PublicDir      string
	EntrypointsDir string

	// OutBaseDir is the build output root, excluded from type checking.
	OutBaseDir string

	// OutDir is the per-target build output directory inside OutBaseDir.
	OutDir string

	// GenDir is the root every generated artifact is written under.
	GenDir string

	Browser         string
	ManifestVersion int
	Mode            string
	Command         string

	Modules  []Module
	Alias    []Alias
	Imports  ImportsFile
	Manifest Manifest
	Env      EnvFile
	Extra    []ExtraEntry
}

// DefaultFile returns the settings written by `extforge config init`.
func DefaultFile() *File {
	return &File{
		SrcDir:          ".",
		PublicDir:       "public",
		EntrypointsDir:  "entrypoints",
		OutDir:          ".output",
		Browser:         "chrome",
		ManifestVersion: 3,
		Imports: ImportsFile{
			Enabled: true,
			Dirs:    DefaultImportDirs(),
		},
	}
}

// DefaultImportDirs lists the source directories scanned for auto-imports.
func DefaultImportDirs() []string {
	return []string{"components", "composables", "hooks", "utils"}
}
