package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/mrsinham/ctdose/cmd/ctdose/wizard"
	"github.com/mrsinham/ctdose/cmd/ctdose/wizard/components"
	"github.com/mrsinham/ctdose/cmd/ctdose/wizard/types"
	"github.com/mrsinham/ctdose/internal/checklist"
	"github.com/mrsinham/ctdose/internal/dicom"
	"github.com/mrsinham/ctdose/internal/export"
	"github.com/mrsinham/ctdose/internal/logging"
	"github.com/mrsinham/ctdose/internal/record"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "checklist":
			return runChecklist(args[1:])
		case "view":
			return runView(args[1:])
		}
	}
	return runSession(args)
}

// runChecklist prints the checklist of one contrast mode.
func runChecklist(args []string) error {
	fs := pflag.NewFlagSet("checklist", pflag.ContinueOnError)
	contrast := fs.String("contrast", checklist.WithoutContrast.Slug(), "Contrast mode: without-contrast, with-contrast")
	if err := fs.Parse(args); err != nil {
		return err
	}

	mode, err := checklist.ParseMode(*contrast)
	if err != nil {
		return err
	}

	fmt.Println(components.TitleStyle.Render(mode.String()))
	for i, item := range checklist.Compose(mode) {
		fmt.Printf("  %2d. %s\n", i+1, item)
	}
	return nil
}

// runView renders an exported CSV file as a table.
func runView(args []string) error {
	fs := pflag.NewFlagSet("view", pflag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: ctdose view FILE.csv")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("reading export: %w", err)
	}
	records, err := export.DecodeCSV(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", fs.Arg(0), err)
	}

	fmt.Println(components.RecordsTable(records))
	fmt.Printf("%d件\n", len(records))
	return nil
}

// runSession starts the interactive recording session.
func runSession(args []string) error {
	fs := pflag.NewFlagSet("ctdose", pflag.ContinueOnError)
	fs.Usage = func() { printHelp(fs) }

	configFile := fs.String("config", "", "Load settings from YAML file")
	outputDir := fs.String("output", "", "Directory for exported files (default: '.')")
	contrast := fs.String("contrast", "", "Initial contrast mode: without-contrast, with-contrast")
	fromDICOM := fs.String("from-dicom", "", "Prefill the first entry from a CT DICOM file")
	logFile := fs.String("log-file", "", "Log file path (default: 'ctdose.log')")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error (default: info)")
	saveConfig := fs.String("save-config", "", "Save the resolved settings to YAML file")
	showVersion := fs.Bool("version", false, "Show version")
	help := fs.BoolP("help", "h", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *help {
		printHelp(fs)
		return nil
	}
	if *showVersion {
		fmt.Printf("ctdose %s\n", version)
		return nil
	}

	settings := wizard.DefaultSettings()
	if *configFile != "" {
		loaded, err := wizard.LoadFromYAML(*configFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		settings = loaded
	}

	settings, err := wizard.Config{
		OutputDir:       *outputDir,
		DefaultContrast: *contrast,
		Log:             wizard.LogConfig{File: *logFile, Level: *logLevel},
	}.Apply(settings)
	if err != nil {
		return err
	}

	if *saveConfig != "" {
		if err := wizard.SaveToYAML(settings, *saveConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", err)
		} else {
			fmt.Printf("Configuration saved to %s\n", *saveConfig)
		}
	}

	logger, err := logging.New(settings.LogFile, settings.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("session started",
		zap.String("version", version),
		zap.String("output_dir", settings.OutputDir),
		zap.String("contrast", settings.DefaultContrast.Slug()))

	var draft *types.EntryDraft
	if *fromDICOM != "" {
		p, err := dicom.ReadPrefill(*fromDICOM)
		if err != nil {
			logger.Error("prefill failed", zap.String("file", *fromDICOM), zap.Error(err))
			return fmt.Errorf("reading %s: %w", *fromDICOM, err)
		}
		logger.Info("prefill read", zap.String("file", *fromDICOM), zap.Strings("found", p.Found))
		d := wizard.FromFields(p.Fields, settings.DefaultContrast)
		if !p.Has(dicom.FieldAge) {
			d.Age = ""
		}
		if !p.Has(dicom.FieldGender) {
			d.Gender = ""
		}
		draft = &d
	}

	session := record.NewSession(record.WithLogger(logger))
	if err := wizard.Run(session, settings, draft, logger); err != nil {
		return err
	}

	logger.Info("session finished", zap.Int("records", session.Len()))
	return nil
}

func printHelp(fs *pflag.FlagSet) {
	fmt.Println("ctdose")
	fmt.Println("======")
	fmt.Println()
	fmt.Println("Pre-scan checklist and dose recording for CT examinations.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  ctdose [options]                       Start an interactive session")
	fmt.Println("  ctdose checklist [--contrast MODE]     Print the checklist")
	fmt.Println("  ctdose view FILE.csv                   Show an exported CSV file")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println(strings.TrimRight(fs.FlagUsages(), "\n"))
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Start with the contrast checklist, exporting to ./exports")
	fmt.Println("  ctdose --contrast with-contrast --output ./exports")
	fmt.Println()
	fmt.Println("  # Prefill patient and CTDIvol from a DICOM header")
	fmt.Println("  ctdose --from-dicom ./series/IM0001")
	fmt.Println()
	fmt.Println("  # Show the records of a previous export")
	fmt.Println("  ctdose view ct_dose_records.csv")
}
