package checks

import (
	"context"
	"fmt"

	"github.com/lucasnoah/pgcheckup/internal/hostinfo"
)

// checkSessionTimeouts flags the three session timeouts that default to
// 0 (disabled). A value of 0 leaves idle transactions holding locks and
// runaway statements running forever.
func checkSessionTimeouts(ctx context.Context, src Source, host hostinfo.Context) ([]Verdict, error) {
	settings, err := src.Settings(ctx,
		"idle_in_transaction_session_timeout",
		"idle_session_timeout",
		"statement_timeout",
	)
	if err != nil {
		return nil, err
	}

	rules := []struct {
		name         string
		disabledNote string
	}{
		{"idle_in_transaction_session_timeout", "No timeout set. Add timeout to prevent resource locks."},
		{"idle_session_timeout", "No timeout set. Add timeout to terminate inactive sessions."},
		{"statement_timeout", "No timeout set. Add timeout to prevent long-running queries."},
	}

	var verdicts []Verdict
	for _, r := range rules {
		// idle_session_timeout only exists from PostgreSQL 14 on; a
		// timeout the server does not know is a timeout that is not set.
		s, ok := settings[r.name]
		if !ok {
			s = Setting{Value: "0"}
		}
		value, err := s.Int64()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", r.name, err)
		}

		v := Verdict{
			Parameter: r.name,
			Result:    Passed,
			Priority:  Low,
			Notes:     fmt.Sprintf("Timeout set: %d %s", value, s.Unit),
		}
		if value == 0 {
			v.Result = Failed
			v.Notes = r.disabledNote
		}
		verdicts = append(verdicts, v)
	}
	return verdicts, nil
}
