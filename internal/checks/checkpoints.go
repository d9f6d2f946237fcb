package checks

import (
	"context"
	"fmt"

	"github.com/lucasnoah/pgcheckup/internal/hostinfo"
)

// checkCheckpointTimeout compares checkpoint_timeout against the
// desired RTO. Crash recovery replays WAL since the last checkpoint,
// so a timeout above the RTO makes the objective unreachable. Skipped
// when no RTO was given.
func checkCheckpointTimeout(ctx context.Context, src Source, host hostinfo.Context) ([]Verdict, error) {
	if host.DesiredRTOMinutes == 0 {
		return []Verdict{{
			Parameter: "checkpoint_timeout",
			Result:    Skipped,
			Priority:  Low,
			Notes:     "No RTO specified",
		}}, nil
	}

	s, err := src.Setting(ctx, "checkpoint_timeout")
	if err != nil {
		return nil, err
	}
	raw, err := s.Int64()
	if err != nil {
		return nil, fmt.Errorf("parse checkpoint_timeout: %w", err)
	}

	var timeoutMinutes float64
	switch s.Unit {
	case "s":
		timeoutMinutes = float64(raw) / 60
	case "min":
		timeoutMinutes = float64(raw)
	default:
		return []Verdict{{
			Parameter: "checkpoint_timeout",
			Result:    Error,
			Priority:  High,
			Notes:     fmt.Sprintf("Unexpected unit for checkpoint_timeout: %s", s.Unit),
		}}, nil
	}

	v := Verdict{
		Parameter: "checkpoint_timeout",
		Result:    Passed,
		Priority:  Low,
		Notes:     "Within acceptable range for RTO",
	}
	if timeoutMinutes > float64(host.DesiredRTOMinutes) {
		v.Result = Failed
		v.Priority = High
		v.Notes = fmt.Sprintf("Exceeds RTO (%.1fmin > %dmin). Reduce to meet recovery objectives.",
			timeoutMinutes, host.DesiredRTOMinutes)
	}
	return []Verdict{v}, nil
}

// checkCheckpointStats reads the cumulative checkpoint counters.
// maxwritten_clean > 0 means the bgwriter keeps hitting its page limit;
// num_timed < num_requested means checkpoints are being forced early by
// WAL volume rather than arriving on schedule.
func checkCheckpointStats(ctx context.Context, src Source, host hostinfo.Context) ([]Verdict, error) {
	maxWritten, err := src.BGWriterMaxWritten(ctx)
	if err != nil {
		return nil, err
	}
	timed, requested, err := src.CheckpointCounts(ctx)
	if err != nil {
		return nil, err
	}

	var verdicts []Verdict

	bgwriter := Verdict{
		Parameter: "bgwriter_lru_maxpages",
		Result:    Passed,
		Priority:  Low,
		Notes:     "bgwriter_lru_maxpages is properly configured.",
	}
	if maxWritten > 0 {
		bgwriter.Result = Failed
		bgwriter.Priority = Medium
		bgwriter.Notes = "Consider increasing bgwriter_lru_maxpages to reduce checkpoint I/O spikes."
	}
	verdicts = append(verdicts, bgwriter)

	walSize := Verdict{
		Parameter: "max_wal_size",
		Result:    Passed,
		Priority:  Low,
		Notes:     "max_wal_size is properly configured.",
	}
	if timed < requested {
		walSize.Result = Failed
		walSize.Priority = High
		walSize.Notes = "Consider increasing max_wal_size to reduce checkpoint frequency and I/O spikes."
	}
	verdicts = append(verdicts, walSize)

	return verdicts, nil
}
