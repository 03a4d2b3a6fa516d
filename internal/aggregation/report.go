package aggregation

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

type PreferenceMean struct {
	Column string
	Mean   float64
	OK     bool
}

// Report summarizes one pipeline run.
type Report struct {
	FilesRead       []string
	Skipped         []SkippedFile
	SurveyRowsIn    int
	SurveyRowsOut   int
	FinalRowsIn     int
	FinalRowsOut    int
	Users           int
	Missing         map[string]int
	PreferenceMeans []PreferenceMean
	Outputs         []string
}

func newReport() *Report {
	return &Report{Missing: make(map[string]int)}
}

func (r *Report) Print(w io.Writer) {
	line := strings.Repeat("=", 60)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "  SURVEY AGGREGATION REPORT")
	fmt.Fprintln(w, line)

	fmt.Fprintf(w, "\nFiles read:              %d\n", len(r.FilesRead))
	fmt.Fprintf(w, "Files skipped:           %d\n", len(r.Skipped))
	for _, s := range r.Skipped {
		fmt.Fprintf(w, "  - %s: %s\n", s.Path, s.Reason)
	}
	fmt.Fprintf(w, "Survey rows (in/out):    %d / %d\n", r.SurveyRowsIn, r.SurveyRowsOut)
	fmt.Fprintf(w, "Final rows (in/out):     %d / %d\n", r.FinalRowsIn, r.FinalRowsOut)
	fmt.Fprintf(w, "Respondents:             %d\n", r.Users)

	fmt.Fprintln(w, "\nPreference statistics:")
	for _, p := range r.PreferenceMeans {
		if !p.OK {
			fmt.Fprintf(w, "  %-30s n/a\n", p.Column)
			continue
		}
		fmt.Fprintf(w, "  %-30s %5.2f (-1 = AI preferred, 1 = Manual preferred)\n", p.Column, p.Mean)
	}

	if len(r.Missing) > 0 {
		fmt.Fprintln(w, "\nMissing or unparseable values:")
		for _, field := range slices.Sorted(maps.Keys(r.Missing)) {
			fmt.Fprintf(w, "  %-30s %d\n", field, r.Missing[field])
		}
	}

	if len(r.Outputs) > 0 {
		fmt.Fprintln(w, "\nOutputs:")
		for _, o := range r.Outputs {
			fmt.Fprintf(w, "  %s\n", o)
		}
	}
	fmt.Fprintln(w, line)
}
