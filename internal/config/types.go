package config

// AuditConfig is the top-level structure parsed from the audit YAML.
// Everything is optional; flags override file values.
type AuditConfig struct {
	Host   HostConfig   `yaml:"host"`
	Report ReportConfig `yaml:"report"`
}

// HostConfig carries host context overrides normally supplied by flags.
type HostConfig struct {
	CPUCount          int    `yaml:"cpu_count"`
	MemoryGB          int    `yaml:"memory_gb"`
	StorageType       string `yaml:"storage_type"`
	DesiredRTOMinutes int    `yaml:"desired_rto_minutes"`
	DeploymentType    string `yaml:"deployment_type"`
}

// ReportConfig carries default filter and export settings.
type ReportConfig struct {
	HidePassed  bool     `yaml:"hide_passed"`
	HideSkipped bool     `yaml:"hide_skipped"`
	Priorities  []string `yaml:"priorities"`
	Parameters  []string `yaml:"parameters"`
	CSVOutput   string   `yaml:"csv_output"`
}
