package checks

import (
	"context"
	"fmt"

	"github.com/lucasnoah/pgcheckup/internal/hostinfo"
)

// checkMonitoringSettings flags instrumentation that ships disabled.
// None of these affect correctness; all of them make the next incident
// harder to diagnose when off.
func checkMonitoringSettings(ctx context.Context, src Source, host hostinfo.Context) ([]Verdict, error) {
	settings, err := src.Settings(ctx,
		"track_io_timing",
		"track_wal_io_timing",
		"track_commit_timestamp",
		"log_lock_waits",
		"log_temp_files",
	)
	if err != nil {
		return nil, err
	}

	var verdicts []Verdict

	offRules := []struct {
		name    string
		offNote string
		onNote  string
	}{
		{
			"track_io_timing",
			"track_io_timing is disabled. Enabling this setting allows for measuring I/O timings which is useful for performance diagnostics.",
			"track_io_timing is enabled, which allows for measuring I/O timings.",
		},
		{
			"track_wal_io_timing",
			"track_wal_io_timing is disabled. Enabling this setting allows for measuring WAL I/O timings which can help diagnose WAL-related performance issues.",
			"track_wal_io_timing is enabled, which allows for measuring WAL I/O timings.",
		},
		{
			"track_commit_timestamp",
			"track_commit_timestamp is disabled. Enabling this setting allows tracking transaction commit timestamps, which is useful for replication and temporal queries.",
			"track_commit_timestamp is enabled, which allows tracking of transaction commit timestamps.",
		},
		{
			"log_lock_waits",
			"log_lock_waits is disabled. Enabling this setting allows logging of lock wait events, which can help diagnose lock contention issues.",
			"log_lock_waits is enabled, which allows logging of lock wait events.",
		},
	}

	// A setting the server does not know (track_wal_io_timing predates
	// PostgreSQL 14) counts as disabled: nothing is tracking.
	for _, r := range offRules {
		s, ok := settings[r.name]
		v := Verdict{
			Parameter: r.name,
			Result:    Passed,
			Priority:  Low,
			Notes:     r.onNote,
		}
		if !ok || s.Value == "off" {
			v.Result = Failed
			v.Notes = r.offNote
		}
		verdicts = append(verdicts, v)
	}

	// log_temp_files disables with -1 rather than off.
	tempFiles, ok := settings["log_temp_files"]
	v := Verdict{
		Parameter: "log_temp_files",
		Result:    Passed,
		Priority:  Low,
		Notes: fmt.Sprintf("log_temp_files is set to %sKB, which logs usage of temporary files larger than this threshold to help identify inefficient queries.",
			tempFiles.Value),
	}
	if !ok || tempFiles.Value == "-1" {
		v.Result = Failed
		v.Notes = "log_temp_files is disabled (-1). Setting this to a value (in KB) will log the use of temporary files larger than that threshold, which helps identify queries that might benefit from more work_mem allocation."
	}
	verdicts = append(verdicts, v)

	return verdicts, nil
}
