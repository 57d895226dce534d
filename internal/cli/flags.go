package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// sourceFlags binds the flags shared by filter and serve. Values only
// take effect for flags the user set, so that environment and file
// settings survive.
type sourceFlags struct {
	configPath string
	cfg        Config
}

func (f *sourceFlags) register(fs *pflag.FlagSet) {
	d := defaultConfig()
	fs.StringVarP(&f.configPath, "config", "c", "", "TOML or YAML configuration file")
	fs.StringVarP(&f.cfg.Index, "index", "i", "", "local index file (.json or .json.zst)")
	fs.StringVar(&f.cfg.Repository, "repository", "", "Maven repository URL to read releases from")
	fs.StringSliceVar(&f.cfg.Plugins, "plugins", nil, "plugins to load from --repository (groupId:artifactId or artifactId)")
	fs.StringVar(&f.cfg.DownloadDir, "download-dir", "", "directory for artifacts downloaded from --repository")
	fs.StringVar(&f.cfg.Cache, "cache", "", "cache URL (directory, file://, redis://); default is the user cache directory")
	fs.DurationVar(&f.cfg.CacheTTL, "cache-ttl", d.CacheTTL, "expiry of cached repository metadata")
	fs.BoolVar(&f.cfg.NoCache, "no-cache", false, "disable caching")

	fs.StringVar(&f.cfg.Filter.CapPlugin, "limit-plugin-core-dependency", "", "drop plugin releases requiring a newer core than this")
	fs.StringVar(&f.cfg.Filter.CapCore, "limit-core-release", "", "drop core releases older than this")
	fs.BoolVar(&f.cfg.Filter.StableCore, "only-stable-core", false, "keep LTS core releases only")
	fs.BoolVar(&f.cfg.Filter.OnlyExperimental, "only-experimental", false, "keep alpha and beta plugin releases only")
	fs.BoolVar(&f.cfg.Filter.WithExperimental, "with-experimental", false, "keep alpha and beta plugin releases")
	fs.StringVar(&f.cfg.Filter.JavaVersion, "java-version", "", "drop plugin releases requiring a newer Java")
	fs.BoolVar(&f.cfg.Filter.InterpolateJava, "interpolate-java", false, "guess the minimum Java version from the required core")
	fs.IntVar(&f.cfg.Filter.MaxPlugins, "max-plugins", 0, "keep only the first N plugins")
	fs.StringVar(&f.cfg.Filter.AllowList, "allowed-artifacts-file", "", "allow list of plugin versions (TOML or YAML)")
	fs.IntVar(&f.cfg.Filter.Depth, "depth", d.Filter.Depth, "releases kept per plugin when limiting versions")
}

// resolve merges defaults, the config file, the environment and the
// flags the user set.
func (f *sourceFlags) resolve(c *CLI, cmd *cobra.Command) (Config, error) {
	cfg := defaultConfig()
	if f.configPath != "" {
		if err := loadConfigFile(f.configPath, &cfg); err != nil {
			return Config{}, err
		}
		c.Logger.Debug("config file loaded", "path", f.configPath)
	}
	if err := applyEnv(&cfg, c.lookupEnv, c.Logger); err != nil {
		return Config{}, err
	}

	fs := cmd.Flags()
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
			c.Logger.Debug("config from flag", "flag", name)
		}
	}
	fl := f.cfg
	set("index", func() { cfg.Index = fl.Index })
	set("repository", func() { cfg.Repository = fl.Repository })
	set("plugins", func() { cfg.Plugins = fl.Plugins })
	set("download-dir", func() { cfg.DownloadDir = fl.DownloadDir })
	set("cache", func() { cfg.Cache = fl.Cache })
	set("cache-ttl", func() { cfg.CacheTTL = fl.CacheTTL })
	set("no-cache", func() { cfg.NoCache = fl.NoCache })
	set("output", func() { cfg.Output = fl.Output })
	set("addr", func() { cfg.Serve.Addr = fl.Serve.Addr })
	set("limit-plugin-core-dependency", func() { cfg.Filter.CapPlugin = fl.Filter.CapPlugin })
	set("limit-core-release", func() { cfg.Filter.CapCore = fl.Filter.CapCore })
	set("only-stable-core", func() { cfg.Filter.StableCore = fl.Filter.StableCore })
	set("only-experimental", func() { cfg.Filter.OnlyExperimental = fl.Filter.OnlyExperimental })
	set("with-experimental", func() { cfg.Filter.WithExperimental = fl.Filter.WithExperimental })
	set("java-version", func() { cfg.Filter.JavaVersion = fl.Filter.JavaVersion })
	set("interpolate-java", func() { cfg.Filter.InterpolateJava = fl.Filter.InterpolateJava })
	set("max-plugins", func() { cfg.Filter.MaxPlugins = fl.Filter.MaxPlugins })
	set("allowed-artifacts-file", func() { cfg.Filter.AllowList = fl.Filter.AllowList })
	set("depth", func() { cfg.Filter.Depth = fl.Filter.Depth })
	return cfg, nil
}
