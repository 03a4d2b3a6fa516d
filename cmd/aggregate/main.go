package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"poisurvey/internal/aggregation"
	"poisurvey/pkg/logger"
)

type Options struct {
	aggregation.Options
	Mode string
}

func main() {
	opt := &Options{Options: aggregation.DefaultOptions(), Mode: "development"}

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Consolidate survey exports into analysis-ready tables",
		RunE: func(cmd *cobra.Command, arguments []string) error {
			if err := opt.Validate(); err != nil {
				return err
			}
			return opt.Run()
		},
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.StringVar(&opt.InputDir, "input-dir", opt.InputDir, "Directory holding the raw CSV exports")
	flags.StringVar(&opt.OutputDir, "output-dir", opt.OutputDir, "Directory the processed tables are written to")
	flags.StringVar(&opt.SurveyPattern, "survey-pattern", opt.SurveyPattern, "Glob for comparison exports")
	flags.StringVar(&opt.FinalPattern, "final-pattern", opt.FinalPattern, "Glob for final feedback exports")
	flags.StringVar(&opt.Mode, "log-mode", opt.Mode, "Logger mode (development, production)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func (o *Options) Validate() error {
	if o.InputDir == "" || o.OutputDir == "" {
		return fmt.Errorf("--input-dir and --output-dir must not be empty")
	}
	if o.InputDir == o.OutputDir {
		return fmt.Errorf("--output-dir must differ from --input-dir")
	}
	return nil
}

func (o *Options) Run() error {
	log, err := logger.New(o.Mode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	report, err := aggregation.Run(o.Options, log)
	if report != nil {
		report.Print(os.Stdout)
	}
	return err
}
