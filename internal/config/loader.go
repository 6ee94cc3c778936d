package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"

	oerrors "github.com/extforge/cli/internal/errors"
	"github.com/extforge/cli/internal/output"
)

// LoadOptions carries command-line overrides into Load.
type LoadOptions struct {
	// Root is the project directory. Defaults to the working directory.
	Root string

	// ConfigFile is an explicit settings file (--config).
	ConfigFile string

	// Flag overrides; empty or zero means "not set".
	Browser         string
	Mode            string
	Command         string
	ManifestVersion int
}

// Loader reads extforge.yaml with viper and resolves it into Settings.
type Loader struct {
	v         *viper.Viper
	validator *Validator
}

// NewLoader creates a new settings loader.
func NewLoader() (*Loader, error) {
	validator, err := NewValidator()
	if err != nil {
		return nil, err
	}

	// Alias names may contain dots, so nested keys use a different delimiter.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigType("yaml")
	v.SetDefault("imports::enabled", true)

	return &Loader{v: v, validator: validator}, nil
}

// Load reads, validates, and resolves the project settings.
// A missing settings file is not an error: defaults apply.
func (l *Loader) Load(opts LoadOptions) (*Settings, error) {
	root := opts.Root
	if root == "" {
		root = "."
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, oerrors.NewNotFoundError(
			"project directory does not exist",
			root,
			"Pass the extension project directory as the first argument.",
		)
	}

	file, err := l.readFile(root, opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	if err := applyOverrides(file, opts); err != nil {
		return nil, err
	}

	return Resolve(root, file)
}

func (l *Loader) readFile(root, explicit string) (*File, error) {
	path, err := ConfigFilePath(root, explicit)
	if err != nil {
		return nil, fmt.Errorf("getting settings file path: %w", err)
	}

	exists, err := ConfigFileExists(path)
	if err != nil {
		return nil, fmt.Errorf("checking settings file: %w", err)
	}

	switch {
	case exists:
		if err := l.validator.ValidateFile(path); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading settings file: %w", err)
		}
		output.Debug("loaded settings", "file", path)
	case explicit != "":
		return nil, oerrors.NewNotFoundError("settings file not found", path, "")
	default:
		output.Debug("no settings file, using defaults", "expected", path)
	}

	var file File
	if err := l.v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("unmarshaling settings: %w", err)
	}
	return &file, nil
}

// applyOverrides resolves the build-target knobs with flag > env > config >
// default precedence and writes the winners back into f.
func applyOverrides(f *File, opts LoadOptions) error {
	mvFlag := ""
	if opts.ManifestVersion != 0 {
		mvFlag = strconv.Itoa(opts.ManifestVersion)
	}
	mvConfig := ""
	if f.ManifestVersion != 0 {
		mvConfig = strconv.Itoa(f.ManifestVersion)
	}

	browser := ResolveValue("browser", opts.Browser, f.Browser, "chrome")
	mode := ResolveValue("mode", opts.Mode, f.Mode, "production")
	command := ResolveValue("command", opts.Command, f.Command, CommandBuild)
	mv := ResolveValue("manifestVersion", mvFlag, mvConfig, "")

	for _, r := range []Resolved{browser, mode, command, mv} {
		if r.Source != "" {
			output.Debug("resolved setting", "key", r.Key, "value", r.Value, "source", r.Source)
		}
	}

	f.Browser = browser.Value
	f.Mode = mode.Value
	f.Command = command.Value
	f.ManifestVersion = 0

	if mv.Value != "" {
		n, err := strconv.Atoi(mv.Value)
		if err != nil || (n != 2 && n != 3) {
			return oerrors.NewValidationError(
				fmt.Sprintf("invalid manifest version %q", mv.Value),
				string(mv.Source),
				"manifestVersion",
				"Use 2 or 3.",
			)
		}
		f.ManifestVersion = n
	}

	if f.Command != CommandBuild && f.Command != CommandServe {
		return oerrors.NewValidationError(
			fmt.Sprintf("invalid command %q", f.Command),
			string(command.Source),
			"command",
			`Use "build" or "serve".`,
		)
	}

	return nil
}
