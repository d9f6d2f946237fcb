package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads and parses an audit configuration from the given YAML path.
func Load(path string) (*AuditConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg AuditConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config %s: %s", path, errs[0].Error())
	}
	return &cfg, nil
}

// LoadDefault searches for an audit config in standard locations and
// loads the first one found. Search order: ./pgcheckup.yaml,
// ~/.pgcheckup/config.yaml. No file found is not an error — the tool
// runs fine on flags and defaults alone.
func LoadDefault() (*AuditConfig, error) {
	candidates := []string{"pgcheckup.yaml"}

	home, err := os.UserHomeDir()
	if err == nil {
		candidates = append(candidates, filepath.Join(home, ".pgcheckup", "config.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	return &AuditConfig{}, nil
}
