package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config file names, in lookup order.
const (
	ConfigFileName    = "leapgraph.yaml"
	ConfigFileNameAlt = "leapgraph.yml"
)

// maxUpwardSearchLevels limits how far up the directory tree to search for
// config files.
const maxUpwardSearchLevels = 10

// envPrefix namespaces environment overrides, e.g. LEAPGRAPH_SEVERITY.
const envPrefix = "LEAPGRAPH_"

// Load resolves configuration with the priority
// defaults < config file < environment < CLI flags.
//
// explicitPath forces a specific config file; otherwise leapgraph.yaml is
// searched upward from the working directory. flags may be nil.
func Load(explicitPath string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// Defaults.
	if err := k.Load(confmap.Provider(map[string]any{
		"state":    DefaultStatePath,
		"severity": DefaultSeverity,
		"format":   DefaultFormat,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// Config file (optional unless explicitly requested).
	path := findConfigFile(explicitPath)
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	} else if explicitPath != "" {
		return nil, fmt.Errorf("config file %s not found", explicitPath)
	}

	// Environment. LEAPGRAPH_CUSTOM_SCALARS=DateTime,JSON etc.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	// CLI flags, highest priority. Only flags the user changed win.
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			// Kebab-case flags map to snake_case config keys.
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.ApplyDefaults()
	SetCurrent(&cfg)
	return &cfg, nil
}

// findConfigFile finds the config file to use.
// Priority: explicit path > leapgraph.yaml upward from CWD.
func findConfigFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for i := 0; i < maxUpwardSearchLevels; i++ {
		for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
