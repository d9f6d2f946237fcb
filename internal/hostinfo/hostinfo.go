package hostinfo

import (
	"fmt"
	"strings"
)

// StorageType identifies the storage backend the instance runs on.
type StorageType string

const (
	SSD StorageType = "ssd"
	HDD StorageType = "hdd"
)

// ParseStorageType converts a flag/config value into a StorageType.
func ParseStorageType(s string) (StorageType, error) {
	switch StorageType(strings.ToLower(s)) {
	case SSD:
		return SSD, nil
	case HDD:
		return HDD, nil
	}
	return "", fmt.Errorf("unrecognized storage type %q (want ssd or hdd)", s)
}

// DeploymentType identifies where the instance is deployed.
type DeploymentType string

const (
	OnPrem DeploymentType = "onprem"
	RDS    DeploymentType = "rds"
)

// ParseDeploymentType converts a flag/config value into a DeploymentType.
func ParseDeploymentType(s string) (DeploymentType, error) {
	switch DeploymentType(strings.ToLower(s)) {
	case OnPrem:
		return OnPrem, nil
	case RDS:
		return RDS, nil
	}
	return "", fmt.Errorf("unrecognized deployment type %q (want onprem or rds)", s)
}

// Context holds the host-derived inputs the checks evaluate against.
// It is built once at startup and never mutated.
type Context struct {
	CPUCount          int
	MemoryGB          int
	Storage           StorageType
	DesiredRTOMinutes int // 0 means no RTO was given; RTO-dependent checks skip
	Deployment        DeploymentType
}

// Overrides carries explicit values from flags or the config file.
// Zero-valued fields fall back to probe results or fixed defaults.
type Overrides struct {
	CPUCount          int
	MemoryGB          int
	Storage           StorageType
	DesiredRTOMinutes int
	Deployment        DeploymentType
}

// ValidationError represents a single invalid host context field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Resolve builds a Context from explicit overrides, falling back to the
// probe for cpu/memory and to fixed defaults for storage and deployment.
// The result is validated; any violation aborts the run.
func Resolve(o Overrides, p Probe) (Context, error) {
	ctx := Context{
		CPUCount:          o.CPUCount,
		MemoryGB:          o.MemoryGB,
		Storage:           o.Storage,
		DesiredRTOMinutes: o.DesiredRTOMinutes,
		Deployment:        o.Deployment,
	}

	if ctx.CPUCount == 0 {
		ctx.CPUCount = p.CPUCount()
	}
	if ctx.MemoryGB == 0 {
		mem, err := p.MemoryGB()
		if err != nil {
			return Context{}, fmt.Errorf("detect system memory: %w (use --memory-gb)", err)
		}
		ctx.MemoryGB = mem
	}
	if ctx.Storage == "" {
		ctx.Storage = SSD
	}
	if ctx.Deployment == "" {
		ctx.Deployment = OnPrem
	}

	if errs := validate(ctx); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return Context{}, fmt.Errorf("invalid host context: %s", strings.Join(msgs, "; "))
	}
	return ctx, nil
}

// validate checks a Context for semantic errors. It returns a slice of
// all validation errors found (empty if valid).
func validate(c Context) []ValidationError {
	var errs []ValidationError

	if c.CPUCount <= 0 {
		errs = append(errs, ValidationError{
			Field:   "cpu_count",
			Message: fmt.Sprintf("must be a positive integer, got %d", c.CPUCount),
		})
	}
	if c.MemoryGB <= 0 {
		errs = append(errs, ValidationError{
			Field:   "memory_gb",
			Message: fmt.Sprintf("must be a positive integer, got %d", c.MemoryGB),
		})
	}
	if c.Storage != SSD && c.Storage != HDD {
		errs = append(errs, ValidationError{
			Field:   "storage_type",
			Message: fmt.Sprintf("must be ssd or hdd, got %q", c.Storage),
		})
	}
	if c.Deployment != OnPrem && c.Deployment != RDS {
		errs = append(errs, ValidationError{
			Field:   "deployment_type",
			Message: fmt.Sprintf("must be onprem or rds, got %q", c.Deployment),
		})
	}
	if c.DesiredRTOMinutes < 0 {
		errs = append(errs, ValidationError{
			Field:   "desired_rto_minutes",
			Message: fmt.Sprintf("must be a positive integer, got %d", c.DesiredRTOMinutes),
		})
	}

	return errs
}
