package db

import (
	"fmt"
	"os"
	"strings"
)

// Config holds the connection parameters resolved from the environment.
type Config struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
	// PassFile is the PGPASSFILE path; when set, user/password come
	// from the file and only host/port/database are mandatory.
	PassFile string
}

// ConfigFromEnv resolves connection parameters from POSTGRES_* variables.
// It returns the config plus any non-fatal warnings (currently only
// loose pgpass file permissions). Missing required variables produce a
// single error enumerating every missing name.
func ConfigFromEnv() (Config, []string, error) {
	cfg := Config{PassFile: os.Getenv("PGPASSFILE")}

	requiredVars := []string{"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_DB"}
	if cfg.PassFile == "" {
		requiredVars = append(requiredVars, "POSTGRES_USER", "POSTGRES_PASSWORD")
	}

	values := make(map[string]string)
	var missing []string
	for _, name := range requiredVars {
		v := os.Getenv(name)
		if v == "" {
			missing = append(missing, name)
			continue
		}
		values[name] = v
	}
	if len(missing) > 0 {
		return Config{}, nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	cfg.Host = values["POSTGRES_HOST"]
	cfg.Port = values["POSTGRES_PORT"]
	cfg.Database = values["POSTGRES_DB"]
	cfg.User = values["POSTGRES_USER"]
	cfg.Password = values["POSTGRES_PASSWORD"]

	var warnings []string
	if cfg.PassFile != "" {
		warning, err := checkPassFile(cfg.PassFile)
		if err != nil {
			return Config{}, nil, err
		}
		if warning != "" {
			warnings = append(warnings, warning)
		}
	}

	return cfg, warnings, nil
}

// checkPassFile verifies the pgpass file exists and warns when its
// permission bits allow access beyond the owner.
func checkPassFile(path string) (warning string, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("PGPASSFILE %q does not exist or is not readable: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("PGPASSFILE %q is not a regular file", path)
	}
	perm := info.Mode().Perm()
	if perm != 0o600 {
		return fmt.Sprintf("pgpass file permissions are %04o, should be 0600", perm), nil
	}
	return "", nil
}
