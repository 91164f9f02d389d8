package config

import (
	"bytes"
	"os"
	"strings"

	"github.com/ajitpratap0/coltable/pkg/tableerrors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. COLTABLE_TABLE_SHRINK_BUFFER.
const EnvPrefix = "COLTABLE"

// Load reads a YAML configuration file. ${VAR} references in the file are
// replaced with environment values, COLTABLE_* variables override individual
// keys, and missing keys take their defaults. The result is validated.
func Load(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath) //nolint:gosec // G304: path is supplied by the caller
	if err != nil {
		return nil, tableerrors.Wrap(err, tableerrors.ErrorTypeConfig, "failed to read config file")
	}
	return Parse(data)
}

// Parse is Load for YAML already in memory.
func Parse(data []byte) (*Config, error) {
	v := newViper()
	content := substituteEnvVars(string(data))
	if err := v.ReadConfig(bytes.NewBufferString(content)); err != nil {
		return nil, tableerrors.Wrap(err, tableerrors.ErrorTypeConfig, "failed to parse YAML")
	}
	return decode(v)
}

// FromEnv builds a configuration from defaults and COLTABLE_* variables only.
func FromEnv() (*Config, error) {
	return decode(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only covers keys viper already knows about.
	d := Default()
	v.SetDefault("table.shrink_buffer", d.Table.ShrinkBuffer)
	v.SetDefault("table.shrink_factor", d.Table.ShrinkFactor)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.development", d.Logging.Development)
	v.SetDefault("logging.encoding", d.Logging.Encoding)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.namespace", d.Metrics.Namespace)
	v.SetDefault("snapshot.algorithm", d.Snapshot.Algorithm)
	v.SetDefault("snapshot.level", d.Snapshot.Level)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, tableerrors.Wrap(err, tableerrors.ErrorTypeConfig, "failed to decode config")
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to a YAML file.
func Save(filePath string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return tableerrors.Wrap(err, tableerrors.ErrorTypeConfig, "failed to marshal YAML")
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil { //nolint:gosec
		return tableerrors.Wrap(err, tableerrors.ErrorTypeConfig, "failed to write config file")
	}

	return nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
func substituteEnvVars(content string) string {
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		varName := content[start+2 : end]
		envValue := os.Getenv(varName)
		content = content[:start] + envValue + content[end+1:]
	}
	return content
}
