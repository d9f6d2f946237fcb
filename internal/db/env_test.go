package db

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearConnEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_DB",
		"POSTGRES_USER", "POSTGRES_PASSWORD", "PGPASSFILE",
	} {
		t.Setenv(name, "")
	}
}

func TestConfigFromEnv_AllSet(t *testing.T) {
	clearConnEnv(t)
	t.Setenv("POSTGRES_HOST", "db.example.com")
	t.Setenv("POSTGRES_PORT", "5432")
	t.Setenv("POSTGRES_DB", "orders")
	t.Setenv("POSTGRES_USER", "auditor")
	t.Setenv("POSTGRES_PASSWORD", "secret")

	cfg, warnings, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if cfg.Host != "db.example.com" || cfg.Port != "5432" || cfg.Database != "orders" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.User != "auditor" || cfg.Password != "secret" {
		t.Errorf("credentials not resolved: %+v", cfg)
	}
}

func TestConfigFromEnv_MissingVarsEnumerated(t *testing.T) {
	clearConnEnv(t)
	t.Setenv("POSTGRES_HOST", "db.example.com")
	t.Setenv("POSTGRES_PORT", "5432")
	t.Setenv("POSTGRES_DB", "orders")

	_, _, err := ConfigFromEnv()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, name := range []string{"POSTGRES_USER", "POSTGRES_PASSWORD"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error should name %s: %v", name, err)
		}
	}
}

func TestConfigFromEnv_PassFileRelaxesCredentials(t *testing.T) {
	clearConnEnv(t)
	passfile := filepath.Join(t.TempDir(), "pgpass")
	if err := os.WriteFile(passfile, []byte("db.example.com:5432:orders:auditor:secret\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("POSTGRES_HOST", "db.example.com")
	t.Setenv("POSTGRES_PORT", "5432")
	t.Setenv("POSTGRES_DB", "orders")
	t.Setenv("PGPASSFILE", passfile)

	cfg, warnings, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("0600 passfile should not warn: %v", warnings)
	}
	if cfg.PassFile != passfile {
		t.Errorf("passfile not carried: %+v", cfg)
	}
}

func TestConfigFromEnv_LoosePassFilePermissionsWarn(t *testing.T) {
	clearConnEnv(t)
	passfile := filepath.Join(t.TempDir(), "pgpass")
	if err := os.WriteFile(passfile, []byte("db:5432:orders:auditor:secret\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("POSTGRES_HOST", "db.example.com")
	t.Setenv("POSTGRES_PORT", "5432")
	t.Setenv("POSTGRES_DB", "orders")
	t.Setenv("PGPASSFILE", passfile)

	_, warnings, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("loose permissions must warn, not fail: %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "0644") {
		t.Errorf("expected a 0644 permission warning, got %v", warnings)
	}
}

func TestConfigFromEnv_MissingPassFileFatal(t *testing.T) {
	clearConnEnv(t)
	t.Setenv("POSTGRES_HOST", "db.example.com")
	t.Setenv("POSTGRES_PORT", "5432")
	t.Setenv("POSTGRES_DB", "orders")
	t.Setenv("PGPASSFILE", filepath.Join(t.TempDir(), "nope"))

	if _, _, err := ConfigFromEnv(); err == nil {
		t.Error("expected error for nonexistent passfile")
	}
}

func TestConfigDSN(t *testing.T) {
	cfg := Config{
		Host:     "db.example.com",
		Port:     "5432",
		Database: "orders",
		User:     "auditor",
		Password: "secret",
	}
	dsn := cfg.DSN()
	for _, part := range []string{"host=db.example.com", "port=5432", "dbname=orders", "user=auditor", "password=secret"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("DSN missing %q: %s", part, dsn)
		}
	}
}

func TestConfigDSN_PassFile(t *testing.T) {
	cfg := Config{
		Host:     "db.example.com",
		Port:     "5432",
		Database: "orders",
		PassFile: "/home/auditor/.pgpass",
	}
	dsn := cfg.DSN()
	if !strings.Contains(dsn, "passfile=/home/auditor/.pgpass") {
		t.Errorf("DSN missing passfile: %s", dsn)
	}
	if strings.Contains(dsn, "password=") {
		t.Errorf("DSN should not carry a password keyword: %s", dsn)
	}
}

func TestConfigDSN_Quoting(t *testing.T) {
	cfg := Config{
		Host:     "localhost",
		Port:     "5432",
		Database: "orders",
		User:     "auditor",
		Password: "p a'ss",
	}
	dsn := cfg.DSN()
	if !strings.Contains(dsn, `password='p a\'ss'`) {
		t.Errorf("password not quoted: %s", dsn)
	}
}
