package checks

import (
	"context"
	"fmt"

	"github.com/lucasnoah/pgcheckup/internal/hostinfo"
)

// fakeSource serves settings and statistics from fixed maps.
type fakeSource struct {
	settings   map[string]Setting
	settingErr map[string]error
	maxWritten int64
	timed      int64
	requested  int64
	statsErr   error
}

func (f *fakeSource) Setting(ctx context.Context, name string) (Setting, error) {
	if err := f.settingErr[name]; err != nil {
		return Setting{}, err
	}
	s, ok := f.settings[name]
	if !ok {
		return Setting{}, fmt.Errorf("unknown setting %q", name)
	}
	return s, nil
}

func (f *fakeSource) Settings(ctx context.Context, names ...string) (map[string]Setting, error) {
	out := make(map[string]Setting, len(names))
	for _, name := range names {
		if err := f.settingErr[name]; err != nil {
			return nil, err
		}
		if s, ok := f.settings[name]; ok {
			out[name] = s
		}
	}
	return out, nil
}

func (f *fakeSource) BGWriterMaxWritten(ctx context.Context) (int64, error) {
	if f.statsErr != nil {
		return 0, f.statsErr
	}
	return f.maxWritten, nil
}

func (f *fakeSource) CheckpointCounts(ctx context.Context) (int64, int64, error) {
	if f.statsErr != nil {
		return 0, 0, f.statsErr
	}
	return f.timed, f.requested, nil
}

// testHost is a fixed host context for rule tests.
func testHost() hostinfo.Context {
	return hostinfo.Context{
		CPUCount:   8,
		MemoryGB:   16,
		Storage:    hostinfo.SSD,
		Deployment: hostinfo.OnPrem,
	}
}

// healthySettings returns a full set of settings that pass every rule
// for testHost.
func healthySettings() map[string]Setting {
	return map[string]Setting{
		"random_page_cost":                    {Value: "1.1"},
		"seq_page_cost":                       {Value: "1.0"},
		"shared_buffers":                      {Value: "4", Unit: "GB"},
		"checkpoint_timeout":                  {Value: "5", Unit: "min"},
		"max_connections":                     {Value: "100"},
		"work_mem":                            {Value: "4", Unit: "MB"},
		"maintenance_work_mem":                {Value: "512", Unit: "MB"},
		"idle_in_transaction_session_timeout": {Value: "60000", Unit: "ms"},
		"idle_session_timeout":                {Value: "60000", Unit: "ms"},
		"statement_timeout":                   {Value: "30000", Unit: "ms"},
		"track_io_timing":                     {Value: "on"},
		"track_wal_io_timing":                 {Value: "on"},
		"track_commit_timestamp":              {Value: "on"},
		"log_lock_waits":                      {Value: "on"},
		"log_temp_files":                      {Value: "1024"},
		"autovacuum_max_workers":              {Value: "3"},
		"max_parallel_maintenance_workers":    {Value: "2"},
	}
}
