package checks

import (
	"context"

	"github.com/lucasnoah/pgcheckup/internal/hostinfo"
)

// Rule is one independently evaluable check. Run reads live values from
// the source, applies a fixed threshold against the host context, and
// returns one or more verdicts. A non-nil error means the rule could
// not be evaluated at all (typically a driver error); the runner
// converts it into a single ERROR verdict under Name.
type Rule struct {
	Name string
	Run  func(ctx context.Context, src Source, host hostinfo.Context) ([]Verdict, error)
}

// Registry returns the full rule battery in its fixed evaluation order.
func Registry() []Rule {
	return []Rule{
		{Name: "random_page_cost/seq_page_cost", Run: checkPageCosts},
		{Name: "shared_buffers", Run: checkSharedBuffers},
		{Name: "checkpoint_timeout", Run: checkCheckpointTimeout},
		{Name: "max_connections", Run: checkMaxConnectionsMemory},
		{Name: "maintenance_work_mem", Run: checkMaintenanceWorkMem},
		{Name: "work_mem", Run: checkWorkMem},
		{Name: "timeouts", Run: checkSessionTimeouts},
		{Name: "monitoring_settings", Run: checkMonitoringSettings},
		{Name: "checkpoint_stats", Run: checkCheckpointStats},
		{Name: "worker_settings", Run: checkWorkerSettings},
	}
}

// RunAll evaluates every rule sequentially on the one connection.
// A rule failure never aborts the battery: the error is surfaced as a
// HIGH-priority ERROR verdict and the next rule runs.
func RunAll(ctx context.Context, src Source, host hostinfo.Context) []Verdict {
	var all []Verdict
	for _, rule := range Registry() {
		verdicts, err := rule.Run(ctx, src, host)
		if err != nil {
			all = append(all, Verdict{
				Parameter: rule.Name,
				Result:    Error,
				Priority:  High,
				Notes:     "Error: " + err.Error(),
			})
			continue
		}
		all = append(all, verdicts...)
	}
	return all
}
