package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/updatecenter/pkg/catalog/filter"
	"github.com/matzehuels/updatecenter/pkg/errors"
	"github.com/matzehuels/updatecenter/pkg/version"
)

// =============================================================================
// Config
// =============================================================================

// Config is the merged configuration of a run. Values come from, in
// increasing precedence: defaults, the --config file, UPDATECENTER_*
// environment variables, and command-line flags.
type Config struct {
	// Index is a local index file to filter.
	Index string `toml:"index" yaml:"index"`

	// Repository is a Maven repository URL to read releases from when no
	// index is given.
	Repository string `toml:"repository" yaml:"repository"`

	// Plugins lists the plugins to load from Repository.
	Plugins []string `toml:"plugins" yaml:"plugins"`

	// DownloadDir receives artifacts resolved from Repository.
	DownloadDir string `toml:"download_dir" yaml:"download_dir"`

	// Cache is a cache URL (file path, file://, redis://). Empty selects
	// the user cache directory.
	Cache    string        `toml:"cache" yaml:"cache"`
	CacheTTL time.Duration `toml:"cache_ttl" yaml:"cache_ttl"`
	NoCache  bool          `toml:"no_cache" yaml:"no_cache"`

	Output string `toml:"output" yaml:"output"`

	Filter FilterConfig `toml:"filter" yaml:"filter"`
	Serve  ServeConfig  `toml:"serve" yaml:"serve"`
}

// FilterConfig holds the filter chain settings.
type FilterConfig struct {
	CapPlugin        string `toml:"limit_plugin_core_dependency" yaml:"limit_plugin_core_dependency"`
	CapCore          string `toml:"limit_core_release" yaml:"limit_core_release"`
	StableCore       bool   `toml:"only_stable_core" yaml:"only_stable_core"`
	OnlyExperimental bool   `toml:"only_experimental" yaml:"only_experimental"`
	WithExperimental bool   `toml:"with_experimental" yaml:"with_experimental"`
	JavaVersion      string `toml:"java_version" yaml:"java_version"`
	InterpolateJava  bool   `toml:"interpolate_java" yaml:"interpolate_java"`
	MaxPlugins       int    `toml:"max_plugins" yaml:"max_plugins"`
	AllowList        string `toml:"allowed_artifacts_file" yaml:"allowed_artifacts_file"`
	Depth            int    `toml:"depth" yaml:"depth"`
}

// ServeConfig holds settings of the serve command.
type ServeConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// defaultConfig returns the configuration used when nothing is set.
func defaultConfig() Config {
	return Config{
		CacheTTL: 24 * time.Hour,
		Filter:   FilterConfig{Depth: filter.DefaultDepth},
		Serve:    ServeConfig{Addr: ":8080"},
	}
}

// loadConfigFile decodes a TOML or YAML file over cfg.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		_, err = toml.Decode(string(data), cfg)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return nil
}

// =============================================================================
// Environment
// =============================================================================

type envVar struct {
	name  string
	apply func(cfg *Config, value string) error
}

func stringVar(dst func(*Config) *string) func(*Config, string) error {
	return func(cfg *Config, v string) error {
		*dst(cfg) = v
		return nil
	}
}

func boolVar(dst func(*Config) *bool) func(*Config, string) error {
	return func(cfg *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*dst(cfg) = b
		return nil
	}
}

func intVar(dst func(*Config) *int) func(*Config, string) error {
	return func(cfg *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*dst(cfg) = n
		return nil
	}
}

var envVars = []envVar{
	{"INDEX", stringVar(func(c *Config) *string { return &c.Index })},
	{"REPOSITORY", stringVar(func(c *Config) *string { return &c.Repository })},
	{"PLUGINS", func(c *Config, v string) error {
		c.Plugins = strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' })
		return nil
	}},
	{"DOWNLOAD_DIR", stringVar(func(c *Config) *string { return &c.DownloadDir })},
	{"CACHE", stringVar(func(c *Config) *string { return &c.Cache })},
	{"CACHE_TTL", func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.CacheTTL = d
		return nil
	}},
	{"NO_CACHE", boolVar(func(c *Config) *bool { return &c.NoCache })},
	{"OUTPUT", stringVar(func(c *Config) *string { return &c.Output })},
	{"LIMIT_PLUGIN_CORE_DEPENDENCY", stringVar(func(c *Config) *string { return &c.Filter.CapPlugin })},
	{"LIMIT_CORE_RELEASE", stringVar(func(c *Config) *string { return &c.Filter.CapCore })},
	{"ONLY_STABLE_CORE", boolVar(func(c *Config) *bool { return &c.Filter.StableCore })},
	{"ONLY_EXPERIMENTAL", boolVar(func(c *Config) *bool { return &c.Filter.OnlyExperimental })},
	{"WITH_EXPERIMENTAL", boolVar(func(c *Config) *bool { return &c.Filter.WithExperimental })},
	{"JAVA_VERSION", stringVar(func(c *Config) *string { return &c.Filter.JavaVersion })},
	{"INTERPOLATE_JAVA", boolVar(func(c *Config) *bool { return &c.Filter.InterpolateJava })},
	{"MAX_PLUGINS", intVar(func(c *Config) *int { return &c.Filter.MaxPlugins })},
	{"ALLOWED_ARTIFACTS_FILE", stringVar(func(c *Config) *string { return &c.Filter.AllowList })},
	{"DEPTH", intVar(func(c *Config) *int { return &c.Filter.Depth })},
	{"ADDR", stringVar(func(c *Config) *string { return &c.Serve.Addr })},
}

// applyEnv overlays UPDATECENTER_* variables found by lookup.
func applyEnv(cfg *Config, lookup func(string) (string, bool), logger *log.Logger) error {
	for _, ev := range envVars {
		name := envPrefix + ev.name
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := ev.apply(cfg, strings.TrimSpace(v)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "environment %s", name)
		}
		logger.Debug("config from environment", "var", name, "value", v)
	}
	return nil
}

// =============================================================================
// Filter Options
// =============================================================================

// filterOptions converts the filter settings into chain options. Version
// strings that do not parse are reported as invalid input.
func (f FilterConfig) filterOptions(logger *log.Logger) (filter.Options, error) {
	opts := filter.Options{
		StableCore:       f.StableCore,
		OnlyExperimental: f.OnlyExperimental,
		WithExperimental: f.WithExperimental,
		InterpolateJava:  f.InterpolateJava,
		MaxPlugins:       f.MaxPlugins,
		Depth:            f.Depth,
		Logger:           logger,
	}

	var err error
	if f.CapCore != "" {
		if opts.CapCore, err = version.Parse(f.CapCore); err != nil {
			return filter.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "--limit-core-release")
		}
	}
	if f.CapPlugin != "" {
		if opts.CapPlugin, err = version.Parse(f.CapPlugin); err != nil {
			return filter.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "--limit-plugin-core-dependency")
		}
	}
	if f.JavaVersion != "" {
		if opts.JavaVersion, err = version.ParseJava(f.JavaVersion); err != nil {
			return filter.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "--java-version")
		}
	}
	if f.AllowList != "" {
		if opts.AllowList, err = filter.LoadAllowList(f.AllowList); err != nil {
			return filter.Options{}, err
		}
	}
	return opts, nil
}
