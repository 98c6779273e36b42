package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix marks the environment variables that override config keys.
	EnvPrefix = "TASKDIALOG_"

	// ProfileEnv names the profile to load.
	ProfileEnv = EnvPrefix + "PROFILE"

	defaultConfigDir = "configs"
	baseProfile      = "base"
)

// ErrUnknownProfile is returned when no YAML file exists for the profile.
var ErrUnknownProfile = errors.New("unknown profile")

// Option configures the Load function.
type Option func(*loadOptions)

type loadOptions struct {
	configDir string
}

// WithConfigDir sets the directory holding base.yaml and the profile files.
// Defaults to "configs" relative to the working directory.
func WithConfigDir(dir string) Option {
	return func(o *loadOptions) {
		o.configDir = dir
	}
}

// Load merges, lowest precedence first: built-in defaults, base.yaml, the
// profile's YAML, then TASKDIALOG_* environment variables. An environment
// variable applies only if it names a key that already exists after the
// files are read, so TASKDIALOG_DIALOG_CLOSE_ON_SUCCESS sets
// dialog.close_on_success and a typo is ignored rather than guessed at.
func Load(profile string, opts ...Option) (*Config, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	o := &loadOptions{configDir: defaultConfigDir}
	for _, opt := range opts {
		opt(o)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	for _, name := range []string{baseProfile, profile} {
		path := filepath.Join(o.configDir, name+".yaml")
		err := k.Load(file.Provider(path), yaml.Parser())
		if errors.Is(err, fs.ErrNotExist) && name == profile {
			return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownProfile, profile, strings.Join(profiles(o.configDir), ", "))
		}
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	keys := envKeys(k.Keys())
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(name, value string) (string, any) {
			return keys[strings.ToLower(strings.TrimPrefix(name, EnvPrefix))], value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", profile, err)
	}
	return &cfg, nil
}

func validateProfile(profile string) error {
	switch {
	case strings.TrimSpace(profile) == "":
		return errors.New("profile must not be empty")
	case profile == baseProfile:
		return errors.New("base is loaded with every profile and cannot be selected")
	case strings.ContainsAny(profile, `/\`) || strings.Contains(profile, ".."):
		return fmt.Errorf("profile must be a bare name, got %q", profile)
	}
	return nil
}

// envKeys maps "dialog_close_on_success" style names back to the dotted
// key they override.
func envKeys(keys []string) map[string]string {
	m := make(map[string]string, len(keys))
	for _, key := range keys {
		m[strings.ReplaceAll(key, ".", "_")] = key
	}
	return m
}

// profiles lists the selectable profiles found in dir.
func profiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".yaml")
		if ok && !e.IsDir() && name != baseProfile {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
