package config

import "fmt"

// ValidationError represents a single validation issue with a config.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// recognizedPriorities is the set of valid priority names for the
// report filter.
var recognizedPriorities = map[string]bool{
	"HIGH":   true,
	"MEDIUM": true,
	"LOW":    true,
}

// Validate checks an AuditConfig for semantic errors. It returns a
// slice of all validation errors found (empty if valid). Host context
// range checks (positive cpu/memory, enum membership) happen later in
// hostinfo.Resolve alongside flag values; here only file-specific
// shape is checked.
func Validate(cfg *AuditConfig) []ValidationError {
	var errs []ValidationError

	if cfg.Host.CPUCount < 0 {
		errs = append(errs, ValidationError{
			Field:   "host.cpu_count",
			Message: fmt.Sprintf("must not be negative, got %d", cfg.Host.CPUCount),
		})
	}
	if cfg.Host.MemoryGB < 0 {
		errs = append(errs, ValidationError{
			Field:   "host.memory_gb",
			Message: fmt.Sprintf("must not be negative, got %d", cfg.Host.MemoryGB),
		})
	}
	if cfg.Host.DesiredRTOMinutes < 0 {
		errs = append(errs, ValidationError{
			Field:   "host.desired_rto_minutes",
			Message: fmt.Sprintf("must not be negative, got %d", cfg.Host.DesiredRTOMinutes),
		})
	}

	for i, p := range cfg.Report.Priorities {
		if !recognizedPriorities[p] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("report.priorities[%d]", i),
				Message: fmt.Sprintf("unrecognized priority %q", p),
			})
		}
	}

	return errs
}
