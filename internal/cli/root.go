package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucasnoah/pgcheckup/internal/checks"
	"github.com/lucasnoah/pgcheckup/internal/config"
	"github.com/lucasnoah/pgcheckup/internal/db"
	"github.com/lucasnoah/pgcheckup/internal/hostinfo"
	"github.com/lucasnoah/pgcheckup/internal/report"
)

var version = "dev"

func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

var rootCmd = newRootCmd()

func Execute() error {
	return rootCmd.Execute()
}

// newRootCmd builds the root command with a fresh flag set. Flag state
// persists on a command across Execute calls, so anything that runs the
// command more than once needs its own instance.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pgcheckup",
		Short: "pgcheckup — audit a PostgreSQL instance against best-practice thresholds",
		Long: `pgcheckup connects once to a running PostgreSQL instance, evaluates its
configuration and statistics against thresholds derived from the host's
CPU count, memory, storage type, and recovery objectives, and prints a
prioritized pass/fail report.

Connection parameters come from POSTGRES_HOST, POSTGRES_PORT,
POSTGRES_DB, and either POSTGRES_USER/POSTGRES_PASSWORD or a PGPASSFILE.`,
		Version:      version,
		SilenceUsage: true,
		RunE:         runAudit,
	}

	f := cmd.Flags()
	f.Int("cpu-count", 0, "Number of CPUs (default: detected)")
	f.Int("memory-gb", 0, "System memory in GB (default: detected)")
	f.String("storage-type", "", "Storage backend type: ssd or hdd (default ssd)")
	f.Int("desired-rto", 0, "Desired Recovery Time Objective in minutes")
	f.String("deployment-type", "", "Deployment type: onprem or rds (default onprem)")
	f.String("csv-output", "", "Also export the report to a CSV file at this path")
	f.Bool("hide-passed", false, "Hide PASSED checks from the report")
	f.Bool("hide-skipped", false, "Hide SKIPPED checks from the report")
	f.StringSlice("priority", nil, "Only show verdicts with these priorities (HIGH, MEDIUM, LOW)")
	f.StringSlice("parameter", nil, "Only show verdicts for these parameters")
	f.String("config", "", "Path to an audit config YAML (default: ./pgcheckup.yaml, ~/.pgcheckup/config.yaml)")
	return cmd
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	host, err := resolveHostContext(cmd, cfg)
	if err != nil {
		return err
	}

	connCfg, warnings, err := db.ConfigFromEnv()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning:", w)
	}

	ctx := cmd.Context()
	d, err := db.Connect(ctx, connCfg)
	if err != nil {
		return fmt.Errorf("could not connect to PostgreSQL database: %w", err)
	}
	defer d.Close(ctx)

	serverVersion, err := d.ServerVersion(ctx)
	if err != nil {
		return fmt.Errorf("query server version: %w", err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n\n", serverVersion)

	verdicts := checks.RunAll(ctx, d, host)
	rows := report.Prepare(verdicts, reportOptions(cmd, cfg))

	if csvPath := csvOutput(cmd, cfg); csvPath != "" {
		if err := report.WriteCSV(csvPath, rows); err != nil {
			return err
		}
	}

	return report.Render(out, rows)
}

// loadConfig loads the audit config. An explicit --config path must
// exist; the default search tolerates absence.
func loadConfig(cmd *cobra.Command) (*config.AuditConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.Load(path)
	}
	return config.LoadDefault()
}

// resolveHostContext merges flags over config file values, then fills
// the rest from host introspection and fixed defaults.
func resolveHostContext(cmd *cobra.Command, cfg *config.AuditConfig) (hostinfo.Context, error) {
	o := hostinfo.Overrides{
		CPUCount:          cfg.Host.CPUCount,
		MemoryGB:          cfg.Host.MemoryGB,
		DesiredRTOMinutes: cfg.Host.DesiredRTOMinutes,
	}

	storage := cfg.Host.StorageType
	deployment := cfg.Host.DeploymentType

	f := cmd.Flags()
	if f.Changed("cpu-count") {
		v, err := explicitPositive(cmd, "cpu-count", "cpu_count")
		if err != nil {
			return hostinfo.Context{}, err
		}
		o.CPUCount = v
	}
	if f.Changed("memory-gb") {
		v, err := explicitPositive(cmd, "memory-gb", "memory_gb")
		if err != nil {
			return hostinfo.Context{}, err
		}
		o.MemoryGB = v
	}
	if f.Changed("desired-rto") {
		v, err := explicitPositive(cmd, "desired-rto", "desired_rto_minutes")
		if err != nil {
			return hostinfo.Context{}, err
		}
		o.DesiredRTOMinutes = v
	}
	if f.Changed("storage-type") {
		storage, _ = f.GetString("storage-type")
	}
	if f.Changed("deployment-type") {
		deployment, _ = f.GetString("deployment-type")
	}

	if storage != "" {
		st, err := hostinfo.ParseStorageType(storage)
		if err != nil {
			return hostinfo.Context{}, err
		}
		o.Storage = st
	}
	if deployment != "" {
		dt, err := hostinfo.ParseDeploymentType(deployment)
		if err != nil {
			return hostinfo.Context{}, err
		}
		o.Deployment = dt
	}

	return hostinfo.Resolve(o, hostinfo.SystemProbe{})
}

// explicitPositive reads an integer flag the user set on the command
// line. An explicit zero or negative value is an error, not a fallback
// to host detection.
func explicitPositive(cmd *cobra.Command, flag, field string) (int, error) {
	v, _ := cmd.Flags().GetInt(flag)
	if v <= 0 {
		return 0, fmt.Errorf("invalid host context: %s: must be a positive integer, got %d", field, v)
	}
	return v, nil
}

// reportOptions merges report filter flags over config file defaults.
func reportOptions(cmd *cobra.Command, cfg *config.AuditConfig) report.Options {
	opts := report.Options{
		SortByPriority: true,
		ShowPassed:     !cfg.Report.HidePassed,
		ShowSkipped:    !cfg.Report.HideSkipped,
		Priorities:     cfg.Report.Priorities,
		Parameters:     cfg.Report.Parameters,
	}

	f := cmd.Flags()
	if f.Changed("hide-passed") {
		hide, _ := f.GetBool("hide-passed")
		opts.ShowPassed = !hide
	}
	if f.Changed("hide-skipped") {
		hide, _ := f.GetBool("hide-skipped")
		opts.ShowSkipped = !hide
	}
	if f.Changed("priority") {
		opts.Priorities, _ = f.GetStringSlice("priority")
	}
	if f.Changed("parameter") {
		opts.Parameters, _ = f.GetStringSlice("parameter")
	}
	return opts
}

// csvOutput returns the CSV export path, flag over config file.
func csvOutput(cmd *cobra.Command, cfg *config.AuditConfig) string {
	if cmd.Flags().Changed("csv-output") {
		path, _ := cmd.Flags().GetString("csv-output")
		return path
	}
	return cfg.Report.CSVOutput
}
