package checks

// CheckResult is the outcome of one rule evaluation.
type CheckResult string

const (
	Passed  CheckResult = "PASSED"
	Failed  CheckResult = "FAILED"
	Skipped CheckResult = "SKIPPED"
	Error   CheckResult = "ERROR"
)

// Priority ranks how urgently a finding should be acted on.
type Priority string

const (
	High   Priority = "HIGH"
	Medium Priority = "MEDIUM"
	Low    Priority = "LOW"
)

// Rank returns the sort rank of a priority: HIGH first, LOW last.
// Unknown priorities sort after everything recognized.
func (p Priority) Rank() int {
	switch p {
	case High:
		return 0
	case Medium:
		return 1
	case Low:
		return 2
	}
	return 3
}

// Verdict is one rule's outcome for one parameter. It is created once
// per run and never mutated.
type Verdict struct {
	Parameter string      `json:"parameter"`
	Result    CheckResult `json:"check_result"`
	Priority  Priority    `json:"priority"`
	Notes     string      `json:"notes"`
}
