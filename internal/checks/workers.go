package checks

import (
	"context"
	"fmt"

	"github.com/lucasnoah/pgcheckup/internal/hostinfo"
)

// RecommendedAutovacuumWorkers returns clamp(cpuCount/5, 3, 16).
func RecommendedAutovacuumWorkers(cpuCount int) int {
	return clamp(cpuCount/5, 3, 16)
}

// RecommendedParallelMaintenanceWorkers returns clamp(cpuCount/8, 2, 8).
func RecommendedParallelMaintenanceWorkers(cpuCount int) int {
	return clamp(cpuCount/8, 2, 8)
}

func clamp(x, lo, hi int) int {
	if x < lo {
		x = lo
	}
	if x > hi {
		x = hi
	}
	return x
}

// checkWorkerSettings compares the worker pools against the CPU-derived
// recommendations. Any mismatch, high or low, is flagged.
func checkWorkerSettings(ctx context.Context, src Source, host hostinfo.Context) ([]Verdict, error) {
	rules := []struct {
		name        string
		recommended int
	}{
		{"autovacuum_max_workers", RecommendedAutovacuumWorkers(host.CPUCount)},
		{"max_parallel_maintenance_workers", RecommendedParallelMaintenanceWorkers(host.CPUCount)},
	}

	var verdicts []Verdict
	for _, r := range rules {
		s, err := src.Setting(ctx, r.name)
		if err != nil {
			return nil, err
		}
		current, err := s.Int64()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", r.name, err)
		}

		v := Verdict{
			Parameter: r.name,
			Result:    Passed,
			Priority:  Medium,
			Notes:     fmt.Sprintf("Optimal for %d CPUs", host.CPUCount),
		}
		if int(current) != r.recommended {
			v.Result = Failed
			v.Notes = fmt.Sprintf("Current: %d, Recommended: %d for %d CPUs", current, r.recommended, host.CPUCount)
		}
		verdicts = append(verdicts, v)
	}
	return verdicts, nil
}
