package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/lucaspopp0/go-monorepo-test/pkg/errors"
	"github.com/lucaspopp0/go-monorepo-test/pkg/logging"
)

const (
	// EnvPrefix prefixes every configuration environment variable
	EnvPrefix = "MONOMOD_"

	// DefaultEnvFile is read from the repository root when present
	DefaultEnvFile = ".monomod.env"
)

// ConfigFileNames are tried in order in the repository root
var ConfigFileNames = []string{".monomod.toml", "monomod.toml", ".monomod.yaml", ".monomod.yml"}

// LoadOptions selects the configuration sources
type LoadOptions struct {
	// Root is the repository root searched for config and env files
	Root string

	// ConfigFile overrides the repository config lookup; it must exist
	ConfigFile string

	// EnvFile overrides the default env file; it must exist
	EnvFile string
}

// Load merges defaults, the repository config file, the env file and the
// process environment into a validated Config.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Repository config
	configPath, err := resolveConfigFile(opts)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), parserFor(configPath)); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse config file").
				WithDetail("path", configPath)
		}
		logger.Debug().Str("path", configPath).Msg("Loaded repository config")
	}

	// 3. Env file
	envPath, err := resolveEnvFile(opts)
	if err != nil {
		return nil, err
	}
	if envPath != "" {
		vars, err := godotenv.Read(envPath)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse env file").
				WithDetail("path", envPath)
		}
		if err := k.Load(confmap.Provider(envFileValues(vars), "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env file").
				WithDetail("path", envPath)
		}
		logger.Debug().Str("path", envPath).Int("vars", len(vars)).Msg("Loaded env file")
	}

	// 4. Process environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	cfg.Source = configPath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the embedded defaults without consulting any other source
func Default() *Config {
	cfg, err := decodeDefaults(defaultConfig)
	if err != nil {
		logger := logging.GetLogger("config")
		logger.Error().Err(err).Msg("Embedded defaults are invalid")
		return &Config{}
	}
	return cfg
}

func decodeDefaults(data []byte) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: data}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal defaults")
	}
	return &cfg, nil
}

// parserFor picks the YAML parser for .yaml/.yml files and TOML otherwise
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// resolveConfigFile returns the explicit config file, or the first
// repository config file found, or "" when there is none.
func resolveConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return "", errors.Wrap(err, errors.ErrConfigLoad, "config file not found").
				WithDetail("path", opts.ConfigFile)
		}
		return opts.ConfigFile, nil
	}

	if opts.Root == "" {
		return "", nil
	}
	for _, name := range ConfigFileNames {
		path := filepath.Join(opts.Root, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

func resolveEnvFile(opts LoadOptions) (string, error) {
	if opts.EnvFile != "" {
		if _, err := os.Stat(opts.EnvFile); err != nil {
			return "", errors.Wrap(err, errors.ErrConfigLoad, "env file not found").
				WithDetail("path", opts.EnvFile)
		}
		return opts.EnvFile, nil
	}

	if opts.Root == "" {
		return "", nil
	}
	path := filepath.Join(opts.Root, DefaultEnvFile)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return "", nil
}

// envKey maps MONOMOD_DISCOVERY__FOLLOW_SYMLINKS to discovery.follow_symlinks
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// envFileValues keeps the MONOMOD_ entries of an env file, keyed like envKey
func envFileValues(vars map[string]string) map[string]interface{} {
	values := make(map[string]interface{})
	for name, value := range vars {
		if !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		values[envKey(name)] = value
	}
	return values
}
