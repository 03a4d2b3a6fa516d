package aggregation

import (
	"fmt"
	"path/filepath"

	"poisurvey/pkg/logger"
)

const (
	SurveyOutput    = "processed_survey_responses.csv"
	FinalOutput     = "processed_final_responses.csv"
	AggregateOutput = "user_aggregates.csv"
)

type Options struct {
	InputDir      string
	OutputDir     string
	SurveyPattern string
	FinalPattern  string
}

func DefaultOptions() Options {
	return Options{
		InputDir:      "results",
		OutputDir:     "processed_data",
		SurveyPattern: "survey_responses_*.csv",
		FinalPattern:  "final_responses_*.csv",
	}
}

// Run loads both export families, processes them, aggregates per user and
// writes the three output tables. Malformed files are skipped and listed in
// the report; only I/O on the outputs fails the run.
func Run(opts Options, log *logger.Logger) (*Report, error) {
	report := newReport()

	surveyIn, err := LoadTables(opts.InputDir, opts.SurveyPattern, "user_id", "timestamp")
	if err != nil {
		return nil, err
	}
	finalIn, err := LoadTables(opts.InputDir, opts.FinalPattern, "timestamp")
	if err != nil {
		return nil, err
	}
	for _, res := range []*LoadResult{surveyIn, finalIn} {
		report.FilesRead = append(report.FilesRead, res.Files...)
		report.Skipped = append(report.Skipped, res.Skipped...)
		for _, s := range res.Skipped {
			log.Warn("skipping malformed export", "file", s.Path, "reason", s.Reason)
		}
	}
	report.SurveyRowsIn = len(surveyIn.Table.Rows)
	report.FinalRowsIn = len(finalIn.Table.Rows)
	log.Info("loaded exports",
		"survey_files", len(surveyIn.Files), "final_files", len(finalIn.Files), "skipped", len(report.Skipped))

	processed := ProcessSurvey(surveyIn.Table, report.Missing)
	final := ProcessFinal(finalIn.Table, report.Missing)
	users := AggregateUsers(processed)

	report.SurveyRowsOut = len(processed.Rows)
	report.FinalRowsOut = len(final.Rows)
	report.Users = len(users)
	for _, col := range PreferenceColumns {
		m, ok := ColumnMean(processed, scoreColumn(col))
		report.PreferenceMeans = append(report.PreferenceMeans, PreferenceMean{Column: scoreColumn(col), Mean: m, OK: ok})
	}

	outputs := []struct {
		name    string
		columns []string
		rows    []Row
	}{
		{SurveyOutput, processed.Columns, processed.Rows},
		{FinalOutput, final.Columns, final.Rows},
		{AggregateOutput, UserAggregateColumns(), users},
	}
	for _, o := range outputs {
		path := filepath.Join(opts.OutputDir, o.name)
		if err := WriteTable(path, o.columns, o.rows); err != nil {
			return report, fmt.Errorf("write %s: %w", o.name, err)
		}
		report.Outputs = append(report.Outputs, path)
	}
	log.Info("aggregation finished", "users", report.Users, "survey_rows", report.SurveyRowsOut)
	return report, nil
}
