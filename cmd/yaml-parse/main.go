/*
Command yaml-parse prints every leaf of a YAML document as a shell
assignment, without validating it.

Usage:

	yaml-parse [flags] <file_path>

Nested keys are joined with "_" and dashes become underscores. Lists are
joined with spaces:

	$ yaml-parse config.yaml
	config_email="dev@example.com"
	repos_my_project_remotes="https://a.git https://b.git"

Output is intended for eval. Values are not escaped.
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/repo-sync-config/internal/application"
	"github.com/eugenenazirov/repo-sync-config/internal/config"
	"github.com/eugenenazirov/repo-sync-config/internal/logging"
)

const (
	exitOK         = 0
	exitFailure    = 1
	exitUsageError = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	kingpinApp := kingpin.New("yaml-parse", "Process a YAML file.")
	kingpinApp.UsageWriter(stderr)
	kingpinApp.ErrorWriter(stderr)

	filePath := kingpinApp.Arg("file_path", "The path to the YAML file to process.").Required().String()
	settingsFile := kingpinApp.Flag("settings", "Path to a YAML settings file for this tool.").String()
	logLevel := kingpinApp.Flag("log-level", "Log level for diagnostics written to stderr.").String()
	logEncoding := kingpinApp.Flag("log-encoding", "Log encoding: console or json.").String()

	if _, err := kingpinApp.Parse(args); err != nil {
		kingpinApp.Errorf("%s, try --help", err)
		return exitUsageError
	}

	cfg, err := config.Load(&config.CLIOverrides{
		SettingsFile: *settingsFile,
		DocumentPath: *filePath,
		LogLevel:     logLevel,
		LogEncoding:  logEncoding,
	})
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return exitUsageError
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return exitFailure
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger, stdout)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return exitFailure
	}

	if err := app.Dump(); err != nil {
		logger.Debug("dump failed", zap.Error(err))
		if rerr := application.Report(stdout, cfg.DocumentPath, err); rerr != nil {
			logger.Error("failed to write report", zap.Error(rerr))
		}
		return exitFailure
	}

	return exitOK
}
