// Package config loads tablecheck configuration from defaults, an optional
// YAML file, TABLECHECK_ environment variables and CLI flags, in that order
// of increasing precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/dataqa-labs/tablecheck/internal/quality"
)

const defaultConfigFile = "tablecheck.yaml"

// ServerConfig holds transport-layer settings.
type ServerConfig struct {
	Addr           string `koanf:"addr"`
	MaxUploadBytes int64  `koanf:"max_upload_bytes"`
}

// Config is the full runtime configuration.
type Config struct {
	Server     ServerConfig       `koanf:"server"`
	Thresholds quality.Thresholds `koanf:"thresholds"`
}

// flagKeys maps CLI flag names onto config keys so flags can override the
// nested file/env settings.
var flagKeys = map[string]string{
	"addr":             "server.addr",
	"max-upload-bytes": "server.max_upload_bytes",
}

func defaults() map[string]interface{} {
	th := quality.DefaultThresholds()
	return map[string]interface{}{
		"server.addr":                        ":8080",
		"server.max_upload_bytes":            int64(32 << 20),
		"thresholds.min_rows":                th.MinRows,
		"thresholds.max_columns":             th.MaxColumns,
		"thresholds.max_missing_share":       th.MaxMissingShare,
		"thresholds.max_categorical_unique":  th.MaxCategoricalUnique,
		"thresholds.high_cardinality_share":  th.HighCardinalityShare,
		"thresholds.max_duplicate_row_share": th.MaxDuplicateRowShare,
		"thresholds.max_zero_share":          th.MaxZeroShare,
	}
}

// Load builds the configuration. cfgFile may be empty, in which case
// tablecheck.yaml is used when present. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			cfgFile = defaultConfigFile
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", cfgFile, err)
		}
	}

	// TABLECHECK_SERVER__ADDR=:9090 → server.addr. Double underscore is the
	// nesting separator so single underscores survive inside key names.
	err := k.Load(env.Provider("TABLECHECK_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "TABLECHECK_")
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
