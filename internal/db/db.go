package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/lucasnoah/pgcheckup/internal/checks"
)

// DB wraps the run's single PostgreSQL connection.
type DB struct {
	conn *pgx.Conn
}

// Connect opens one connection to the target instance. When a passfile
// is configured the driver resolves credentials from it. Driver errors
// are returned as-is so the underlying message reaches the user.
func Connect(ctx context.Context, cfg Config) (*DB, error) {
	conn, err := pgx.Connect(ctx, cfg.DSN())
	if err != nil {
		return nil, err
	}
	return &DB{conn: conn}, nil
}

// Close releases the connection.
func (d *DB) Close(ctx context.Context) error {
	return d.conn.Close(ctx)
}

// DSN renders the config as a keyword/value connection string.
func (c Config) DSN() string {
	parts := []string{
		"host=" + quoteDSN(c.Host),
		"port=" + quoteDSN(c.Port),
		"dbname=" + quoteDSN(c.Database),
	}
	if c.PassFile != "" {
		parts = append(parts, "passfile="+quoteDSN(c.PassFile))
	} else {
		parts = append(parts,
			"user="+quoteDSN(c.User),
			"password="+quoteDSN(c.Password),
		)
	}
	return strings.Join(parts, " ")
}

// quoteDSN quotes a keyword/value DSN value per libpq rules.
func quoteDSN(v string) string {
	if v != "" && !strings.ContainsAny(v, " '\\") {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// ServerVersion returns the server's version() string.
func (d *DB) ServerVersion(ctx context.Context) (string, error) {
	var version string
	if err := d.conn.QueryRow(ctx, "SELECT version()").Scan(&version); err != nil {
		return "", err
	}
	return version, nil
}

// Setting returns one pg_settings row by name.
func (d *DB) Setting(ctx context.Context, name string) (checks.Setting, error) {
	var value string
	var unit *string
	err := d.conn.QueryRow(ctx,
		"SELECT setting, unit FROM pg_settings WHERE name = $1", name,
	).Scan(&value, &unit)
	if err == pgx.ErrNoRows {
		return checks.Setting{}, fmt.Errorf("unknown setting %q", name)
	}
	if err != nil {
		return checks.Setting{}, err
	}
	s := checks.Setting{Value: value}
	if unit != nil {
		s.Unit = *unit
	}
	return s, nil
}

// Settings returns pg_settings rows keyed by name. Names the server
// does not know are omitted from the map rather than erroring; settings
// have come and gone across major versions and each rule decides what an
// absent row means.
func (d *DB) Settings(ctx context.Context, names ...string) (map[string]checks.Setting, error) {
	rows, err := d.conn.Query(ctx,
		"SELECT name, setting, unit FROM pg_settings WHERE name = ANY($1)", names,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]checks.Setting, len(names))
	for rows.Next() {
		var name, value string
		var unit *string
		if err := rows.Scan(&name, &value, &unit); err != nil {
			return nil, err
		}
		s := checks.Setting{Value: value}
		if unit != nil {
			s.Unit = *unit
		}
		settings[name] = s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return settings, nil
}

// BGWriterMaxWritten returns pg_stat_bgwriter.maxwritten_clean.
func (d *DB) BGWriterMaxWritten(ctx context.Context) (int64, error) {
	var n int64
	if err := d.conn.QueryRow(ctx, "SELECT maxwritten_clean FROM pg_stat_bgwriter").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CheckpointCounts returns pg_stat_checkpointer.num_timed and num_requested.
func (d *DB) CheckpointCounts(ctx context.Context) (timed, requested int64, err error) {
	err = d.conn.QueryRow(ctx, "SELECT num_timed, num_requested FROM pg_stat_checkpointer").Scan(&timed, &requested)
	if err != nil {
		return 0, 0, err
	}
	return timed, requested, nil
}
