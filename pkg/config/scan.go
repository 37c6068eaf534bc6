package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultScanConfigPath is looked up in the working directory when no
// explicit config file is given.
const DefaultScanConfigPath = ".apisentry.yaml"

// ScanConfig is the per-project scan configuration.
type ScanConfig struct {
	IgnorePaths           []string          `yaml:"ignore_paths"`
	CustomSensitiveFields []string          `yaml:"custom_sensitive_fields"`
	Compliance            string            `yaml:"compliance"`
	Rules                 map[string]string `yaml:"rules"`
}

// LoadScanConfig reads a scan config file. When path is empty the
// default location is tried; a missing file yields zero-value defaults
// rather than an error, while an explicitly named file must exist.
func LoadScanConfig(path string) (*ScanConfig, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultScanConfigPath
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return &ScanConfig{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg ScanConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}
