package checks

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRunAll_HealthyInstance(t *testing.T) {
	src := &fakeSource{settings: healthySettings(), timed: 20, requested: 10}

	verdicts := RunAll(context.Background(), src, testHost())

	// 6 single-verdict rules + 3 timeouts + 5 monitoring + 2 checkpoint
	// stats + 2 workers.
	if len(verdicts) != 18 {
		t.Fatalf("expected 18 verdicts, got %d", len(verdicts))
	}
	for _, v := range verdicts {
		switch v.Result {
		case Passed, Skipped:
		default:
			t.Errorf("%s: got %s, want PASSED or SKIPPED", v.Parameter, v.Result)
		}
	}
	// No RTO in testHost, so checkpoint_timeout is skipped.
	if verdicts[2].Parameter != "checkpoint_timeout" || verdicts[2].Result != Skipped {
		t.Errorf("expected checkpoint_timeout SKIPPED at position 2, got %s %s",
			verdicts[2].Parameter, verdicts[2].Result)
	}
}

func TestRunAll_Order(t *testing.T) {
	src := &fakeSource{settings: healthySettings(), timed: 20, requested: 10}

	verdicts := RunAll(context.Background(), src, testHost())

	wantOrder := []string{
		"random_page_cost/seq_page_cost",
		"shared_buffers",
		"checkpoint_timeout",
		"max_connections",
		"maintenance_work_mem",
		"work_mem",
		"idle_in_transaction_session_timeout",
		"idle_session_timeout",
		"statement_timeout",
		"track_io_timing",
		"track_wal_io_timing",
		"track_commit_timestamp",
		"log_lock_waits",
		"log_temp_files",
		"bgwriter_lru_maxpages",
		"max_wal_size",
		"autovacuum_max_workers",
		"max_parallel_maintenance_workers",
	}
	if len(verdicts) != len(wantOrder) {
		t.Fatalf("expected %d verdicts, got %d", len(wantOrder), len(verdicts))
	}
	for i, want := range wantOrder {
		if verdicts[i].Parameter != want {
			t.Errorf("position %d: got %s, want %s", i, verdicts[i].Parameter, want)
		}
	}
}

func TestRunAll_RuleErrorDoesNotAbort(t *testing.T) {
	// shared_buffers queries fail; every other rule still runs.
	src := &fakeSource{
		settings: healthySettings(),
		settingErr: map[string]error{
			"shared_buffers": errors.New(`relation "pg_settings" does not exist`),
		},
		timed:     20,
		requested: 10,
	}

	verdicts := RunAll(context.Background(), src, testHost())

	var errorVerdicts []Verdict
	for _, v := range verdicts {
		if v.Result == Error {
			errorVerdicts = append(errorVerdicts, v)
		}
	}
	// shared_buffers is read by three rules: its own, max_connections,
	// and work_mem.
	if len(errorVerdicts) != 3 {
		t.Fatalf("expected 3 ERROR verdicts, got %d", len(errorVerdicts))
	}
	for _, v := range errorVerdicts {
		if v.Priority != High {
			t.Errorf("%s: ERROR verdict should be HIGH, got %s", v.Parameter, v.Priority)
		}
		if !strings.Contains(v.Notes, "does not exist") {
			t.Errorf("%s: notes should carry the driver error, got %q", v.Parameter, v.Notes)
		}
	}

	// The later groups still produced verdicts.
	last := verdicts[len(verdicts)-1]
	if last.Parameter != "max_parallel_maintenance_workers" {
		t.Errorf("battery did not run to completion, last parameter %s", last.Parameter)
	}
}

func TestRunAll_StatsErrorDoesNotAbort(t *testing.T) {
	src := &fakeSource{
		settings: healthySettings(),
		statsErr: errors.New("permission denied for view pg_stat_bgwriter"),
	}

	verdicts := RunAll(context.Background(), src, testHost())

	var found bool
	for _, v := range verdicts {
		if v.Parameter == "checkpoint_stats" {
			found = true
			if v.Result != Error || v.Priority != High {
				t.Errorf("got %s/%s, want ERROR/HIGH", v.Result, v.Priority)
			}
		}
	}
	if !found {
		t.Error("expected an ERROR verdict under checkpoint_stats")
	}
	if verdicts[len(verdicts)-1].Parameter != "max_parallel_maintenance_workers" {
		t.Error("worker rules should still run after the stats error")
	}
}
