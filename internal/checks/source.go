package checks

import (
	"context"
	"strconv"
)

// Setting is a single pg_settings row: the raw value and its unit tag.
// Unit is "" for unitless settings (pg_settings reports NULL).
type Setting struct {
	Value string
	Unit  string
}

// Int64 parses the setting value as an integer.
func (s Setting) Int64() (int64, error) {
	return strconv.ParseInt(s.Value, 10, 64)
}

// Float64 parses the setting value as a float.
func (s Setting) Float64() (float64, error) {
	return strconv.ParseFloat(s.Value, 64)
}

// Source reads configuration and statistics from the target instance.
// The live implementation holds the run's single connection; tests
// supply a fake.
type Source interface {
	// Setting returns one pg_settings row by name.
	Setting(ctx context.Context, name string) (Setting, error)
	// Settings returns pg_settings rows keyed by name. Names the
	// server does not know are omitted from the map.
	Settings(ctx context.Context, names ...string) (map[string]Setting, error)
	// BGWriterMaxWritten returns pg_stat_bgwriter.maxwritten_clean.
	BGWriterMaxWritten(ctx context.Context) (int64, error)
	// CheckpointCounts returns pg_stat_checkpointer.num_timed and num_requested.
	CheckpointCounts(ctx context.Context) (timed, requested int64, err error)
}
