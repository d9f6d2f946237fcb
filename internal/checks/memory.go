package checks

import (
	"context"
	"fmt"

	"github.com/lucasnoah/pgcheckup/internal/hostinfo"
)

// checkPageCosts flags SSD hosts whose random_page_cost sits far above
// seq_page_cost; the planner then over-penalizes index scans.
func checkPageCosts(ctx context.Context, src Source, host hostinfo.Context) ([]Verdict, error) {
	settings, err := src.Settings(ctx, "random_page_cost", "seq_page_cost")
	if err != nil {
		return nil, err
	}
	randomCost, err := settings["random_page_cost"].Float64()
	if err != nil {
		return nil, fmt.Errorf("parse random_page_cost: %w", err)
	}
	seqCost, err := settings["seq_page_cost"].Float64()
	if err != nil {
		return nil, fmt.Errorf("parse seq_page_cost: %w", err)
	}

	failed := host.Storage == hostinfo.SSD && randomCost-seqCost > 0.3

	v := Verdict{
		Parameter: "random_page_cost/seq_page_cost",
		Result:    Passed,
		Priority:  Low,
		Notes:     "Optimal for current storage type",
	}
	if failed {
		v.Result = Failed
		v.Priority = Medium
		v.Notes = "For SSD: reduce random_page_cost to within 0.1-0.3 of seq_page_cost"
	}
	return []Verdict{v}, nil
}

// checkSharedBuffers fails when shared_buffers exceeds 40% of system
// memory, which starves the OS page cache.
func checkSharedBuffers(ctx context.Context, src Source, host hostinfo.Context) ([]Verdict, error) {
	s, err := src.Setting(ctx, "shared_buffers")
	if err != nil {
		return nil, err
	}
	raw, err := s.Int64()
	if err != nil {
		return nil, fmt.Errorf("parse shared_buffers: %w", err)
	}
	sharedGB := ToGB(raw, s.Unit)
	threshold := float64(host.MemoryGB) * 0.4

	v := Verdict{
		Parameter: "shared_buffers",
		Result:    Passed,
		Priority:  Low,
		Notes:     "Within acceptable range",
	}
	if sharedGB > threshold {
		v.Result = Failed
		v.Priority = High
		v.Notes = fmt.Sprintf("Exceeds 40%% of memory (%.1fGB/%.1fGB). Reduce to prevent OS pressure.", sharedGB, threshold)
	}
	return []Verdict{v}, nil
}

// checkMaxConnectionsMemory fails when the worst case of every
// connection allocating work_mem, on top of shared_buffers, reaches
// total system memory.
func checkMaxConnectionsMemory(ctx context.Context, src Source, host hostinfo.Context) ([]Verdict, error) {
	settings, err := src.Settings(ctx, "max_connections", "work_mem", "shared_buffers")
	if err != nil {
		return nil, err
	}
	maxConns, err := settings["max_connections"].Int64()
	if err != nil {
		return nil, fmt.Errorf("parse max_connections: %w", err)
	}
	workMemRaw, err := settings["work_mem"].Int64()
	if err != nil {
		return nil, fmt.Errorf("parse work_mem: %w", err)
	}
	sharedRaw, err := settings["shared_buffers"].Int64()
	if err != nil {
		return nil, fmt.Errorf("parse shared_buffers: %w", err)
	}

	workMemMB := ToMB(workMemRaw, settings["work_mem"].Unit)
	sharedGB := ToGB(sharedRaw, settings["shared_buffers"].Unit)
	neededGB := workMemMB*float64(maxConns)/1024 + sharedGB

	v := Verdict{
		Parameter: "max_connections",
		Result:    Passed,
		Priority:  Low,
		Notes:     "Memory configuration within safe limits",
	}
	if neededGB >= float64(host.MemoryGB) {
		v.Result = Failed
		v.Priority = High
		v.Notes = fmt.Sprintf("Memory usage (%.1fGB) may exceed available (%dGB). Reduce connections (%d) or work_mem (%.0fMB).",
			neededGB, host.MemoryGB, maxConns, workMemMB)
	}
	return []Verdict{v}, nil
}

// checkMaintenanceWorkMem fails above 1GB; autovacuum workers each get
// their own allocation so large values multiply.
func checkMaintenanceWorkMem(ctx context.Context, src Source, host hostinfo.Context) ([]Verdict, error) {
	s, err := src.Setting(ctx, "maintenance_work_mem")
	if err != nil {
		return nil, err
	}
	raw, err := s.Int64()
	if err != nil {
		return nil, fmt.Errorf("parse maintenance_work_mem: %w", err)
	}
	memMB := ToMB(raw, s.Unit)

	v := Verdict{
		Parameter: "maintenance_work_mem",
		Result:    Passed,
		Priority:  Medium,
		Notes:     "Within recommended limits",
	}
	if memMB > 1024 {
		v.Result = Failed
		v.Notes = fmt.Sprintf("Exceeds 1GB (%.0fMB). Reduce to prevent excessive memory usage.", memMB)
	}
	return []Verdict{v}, nil
}

// checkWorkMem fails when work_mem times max_connections exceeds 25%
// of the memory left after shared_buffers.
func checkWorkMem(ctx context.Context, src Source, host hostinfo.Context) ([]Verdict, error) {
	settings, err := src.Settings(ctx, "work_mem", "max_connections", "shared_buffers")
	if err != nil {
		return nil, err
	}
	workMemRaw, err := settings["work_mem"].Int64()
	if err != nil {
		return nil, fmt.Errorf("parse work_mem: %w", err)
	}
	maxConns, err := settings["max_connections"].Int64()
	if err != nil {
		return nil, fmt.Errorf("parse max_connections: %w", err)
	}
	sharedRaw, err := settings["shared_buffers"].Int64()
	if err != nil {
		return nil, fmt.Errorf("parse shared_buffers: %w", err)
	}

	workMemMB := ToMB(workMemRaw, settings["work_mem"].Unit)
	sharedMB := ToMB(sharedRaw, settings["shared_buffers"].Unit)
	systemMB := float64(host.MemoryGB) * 1024

	budgetMB := (systemMB - sharedMB) * 0.25
	potentialMB := workMemMB * float64(maxConns)

	v := Verdict{
		Parameter: "work_mem",
		Result:    Passed,
		Priority:  Low,
		Notes:     "Within reasonable limits",
	}
	if potentialMB > budgetMB {
		v.Result = Failed
		v.Priority = High
		v.Notes = fmt.Sprintf("Potential usage (%.0fMB) exceeds 25%% limit (%.0fMB). Reduce work_mem or connections.",
			potentialMB, budgetMB)
	}
	return []Verdict{v}, nil
}
