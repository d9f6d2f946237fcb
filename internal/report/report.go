package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/lucasnoah/pgcheckup/internal/checks"
)

// Options controls filtering and ordering of the verdict table.
type Options struct {
	SortByPriority bool
	ShowPassed     bool
	ShowSkipped    bool
	// Priorities is an allow-list of priority names; empty means all.
	Priorities []string
	// Parameters is an allow-list of parameter names; empty means all.
	Parameters []string
}

// Prepare filters and sorts verdicts per the options. Filters are pure
// predicates, so applying the same options twice is a no-op.
func Prepare(verdicts []checks.Verdict, opts Options) []checks.Verdict {
	out := filter(verdicts, opts)
	if opts.SortByPriority {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		})
	}
	return out
}

func filter(verdicts []checks.Verdict, opts Options) []checks.Verdict {
	priorities := toSet(opts.Priorities)
	parameters := toSet(opts.Parameters)

	out := make([]checks.Verdict, 0, len(verdicts))
	for _, v := range verdicts {
		if !opts.ShowPassed && v.Result == checks.Passed {
			continue
		}
		if !opts.ShowSkipped && v.Result == checks.Skipped {
			continue
		}
		if len(priorities) > 0 && !priorities[string(v.Priority)] {
			continue
		}
		if len(parameters) > 0 && !parameters[v.Parameter] {
			continue
		}
		out = append(out, v)
	}
	return out
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// Render writes the verdicts as an aligned text table. An empty set
// renders a message instead of a bare header.
func Render(w io.Writer, verdicts []checks.Verdict) error {
	if len(verdicts) == 0 {
		_, err := fmt.Fprintln(w, "No results match the specified criteria.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PARAMETER\tRESULT\tPRIORITY\tNOTES")
	for _, v := range verdicts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Parameter, v.Result, v.Priority, v.Notes)
	}
	return tw.Flush()
}

// WriteCSV exports the same row set to a flat delimited file with a
// fixed header.
func WriteCSV(path string, verdicts []checks.Verdict) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}

	w := csv.NewWriter(f)
	records := [][]string{{"parameter", "check_result", "priority", "notes"}}
	for _, v := range verdicts {
		records = append(records, []string{v.Parameter, string(v.Result), string(v.Priority), v.Notes})
	}
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("write csv: %w", err)
	}
	return f.Close()
}
