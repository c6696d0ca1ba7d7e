package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	apiv1 "github.com/petrolab/distillation-converter/api/v1"
	"github.com/petrolab/distillation-converter/internal/batch"
	"github.com/petrolab/distillation-converter/internal/config"
	"github.com/petrolab/distillation-converter/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file")
	inputDir := flag.String("input", "data", "Directory containing CSV sample files")
	outputDir := flag.String("output", "output", "Directory for converted curves and the report")
	inputType := flag.String("input-type", "", "Curve family of the input files: D86, D2887 or TBP")
	density := flag.Float64("density", 0, "Default density in kg/m3 for files without one")
	profilesPath := flag.String("profiles", "", "Sample profile YAML file")
	reportFile := flag.String("report", batch.DefaultReportFilename, "Report filename inside the output directory")
	logLevel := flag.String("log-level", "", "Log level: info, debug or trace")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `distill-batch — convert every CSV distillation sample in a directory

Input files need a volume column and a temperature column; a density
column is optional. Each sample produces <name>_converted.csv with the
D86, D2887 and both TBP curves, and the run ends with a JSON report.

Usage:
  distill-batch --input data/ --output out/
  distill-batch --input gc-runs/ --input-type D2887 --density 850
  distill-batch --input data/ --profiles profiles.yaml

Flags:
`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("distill-batch %s\n", apiv1.Version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalf("loading configuration: %v", err)
	}
	if *inputType == "" {
		*inputType = cfg.Batch.InputType
	}
	if *density == 0 {
		*density = cfg.Batch.DensityKgM3
	}
	if *profilesPath == "" {
		*profilesPath = cfg.Batch.ProfilesPath
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}

	logger, err := logging.NewLogger(*logLevel, cfg.Logging.Development)
	if err != nil {
		fatalf("configuring logging: %v", err)
	}
	logging.SetLogger(logger)

	profiles, err := config.LoadSampleProfiles(*profilesPath)
	if err != nil {
		fatalf("loading profiles: %v", err)
	}

	processor, err := batch.NewProcessor(*inputDir, *outputDir, batch.Options{
		InputType:          *inputType,
		DefaultDensityKgM3: *density,
		Profiles:           profiles,
		Logger:             logger,
	})
	if err != nil {
		fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := processor.ProcessAll(ctx); err != nil {
		fatalf("batch processing: %v", err)
	}

	processor.GenerateReport().WriteSummary(os.Stdout)
	if _, err := processor.SaveReport(*reportFile); err != nil {
		fatalf("saving report: %v", err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "distill-batch: "+format+"\n", args...)
	os.Exit(1)
}
