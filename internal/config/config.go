package config

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"codec-generator/internal/analyze"
	"codec-generator/internal/gen"
	"codec-generator/internal/names"
)

const (
	// AppName is the application name.
	AppName = "codec-generator"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = ".codecgen"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "yaml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "CODECGEN"
)

// ColorMode controls colored diagnostic output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every generator setting.
type Config struct {
	// Jobs bounds concurrent type processing; 0 means GOMAXPROCS.
	Jobs     int       `mapstructure:"jobs"`
	LogLevel string    `mapstructure:"log_level"`
	Color    ColorMode `mapstructure:"color"`

	FileSuffix       string `mapstructure:"file_suffix"`
	GenerateComments bool   `mapstructure:"generate_comments"`

	GetterPrefixes []string `mapstructure:"getter_prefixes"`
	SkipMethods    []string `mapstructure:"skip_methods"`

	DirectivePrefix string `mapstructure:"directive_prefix"`
	BuildMethod     string `mapstructure:"build_method"`
}

// LoadOptions selects where configuration is read from.
type LoadOptions struct {
	// ConfigFilePath is used exclusively when set; it must exist.
	ConfigFilePath string
	// Dir is searched for .codecgen.yaml when ConfigFilePath is empty.
	// Empty means the current directory.
	Dir string
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	nopts := names.DefaultOptions()
	aopts := analyze.DefaultOptions()
	gcfg := gen.DefaultGeneratorConfig()

	return Config{
		Jobs:             0,
		LogLevel:         "info",
		Color:            ColorAuto,
		FileSuffix:       gcfg.FileSuffix,
		GenerateComments: gcfg.GenerateComments,
		GetterPrefixes:   nopts.GetterPrefixes,
		SkipMethods:      nopts.SkipMethods,
		DirectivePrefix:  aopts.DirectivePrefix,
		BuildMethod:      aopts.BuildMethod,
	}
}

// Load reads the configuration. It returns the config and the path of the
// file it was read from, empty when only defaults and environment applied.
func Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("jobs", defaults.Jobs)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("color", string(defaults.Color))
	v.SetDefault("file_suffix", defaults.FileSuffix)
	v.SetDefault("generate_comments", defaults.GenerateComments)
	v.SetDefault("getter_prefixes", defaults.GetterPrefixes)
	v.SetDefault("skip_methods", defaults.SkipMethods)
	v.SetDefault("directive_prefix", defaults.DirectivePrefix)
	v.SetDefault("build_method", defaults.BuildMethod)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""

	if opts.ConfigFilePath != "" {
		v.SetConfigFile(opts.ConfigFilePath)

		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("failed to read config %s: %w", opts.ConfigFilePath, err)
		}

		resolvedPath = opts.ConfigFilePath
	} else {
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}

		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileExt)
		v.AddConfigPath(dir)

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, "", fmt.Errorf("failed to read config: %w", err)
			}
			// If no config file found, use defaults (no error)
		} else {
			resolvedPath = v.ConfigFileUsed()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return &cfg, resolvedPath, nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	var errs []error

	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("%w: jobs must not be negative, got %d", ErrInvalidConfig, c.Jobs))
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%w: log_level: %w", ErrInvalidConfig, err))
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmt.Errorf("%w: color must be auto, always or never, got %q", ErrInvalidConfig, c.Color))
	}

	if !strings.HasSuffix(c.FileSuffix, ".go") {
		errs = append(errs, fmt.Errorf("%w: file_suffix must end in .go, got %q", ErrInvalidConfig, c.FileSuffix))
	}

	if c.DirectivePrefix == "" {
		errs = append(errs, fmt.Errorf("%w: directive_prefix must not be empty", ErrInvalidConfig))
	}

	if c.BuildMethod == "" {
		errs = append(errs, fmt.Errorf("%w: build_method must not be empty", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// Workers returns the effective concurrency.
func (c *Config) Workers() int {
	if c.Jobs == 0 {
		return runtime.GOMAXPROCS(0)
	}

	return c.Jobs
}

// Level returns the parsed log level. Validate guarantees it parses.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}

	return lvl
}

// NamesOptions returns the collector options.
func (c *Config) NamesOptions() names.Options {
	return names.Options{
		GetterPrefixes: c.GetterPrefixes,
		SkipMethods:    c.SkipMethods,
	}
}

// AnalyzeOptions returns the introspector options.
func (c *Config) AnalyzeOptions() analyze.Options {
	return analyze.Options{
		DirectivePrefix: c.DirectivePrefix,
		BuildMethod:     c.BuildMethod,
	}
}

// GeneratorConfig returns the emitter settings. outputDir may be empty to
// write next to each type.
func (c *Config) GeneratorConfig(outputDir string) gen.GeneratorConfig {
	return gen.GeneratorConfig{
		FileSuffix:       c.FileSuffix,
		OutputDir:        outputDir,
		GenerateComments: c.GenerateComments,
	}
}
