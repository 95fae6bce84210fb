/*
Command yaml-lookup validates a repository sync configuration and prints the
values whose flattened key path matches a glob pattern.

Usage:

	yaml-lookup [flags] <file_path> <lookup_key>

Keys are flattened by joining nested mapping keys with "_", with dashes
rewritten to underscores. A matched list prints as one space separated line
and a matched mapping prints its key names, one per line:

	for repo in $(yaml-lookup config.yaml repos); do
		dir=$(yaml-lookup config.yaml "repos_${repo}_local")
		remotes=$(yaml-lookup config.yaml "repos_${repo}_remotes")
	done

The document is validated before every lookup. On failure the problems and a
configuration guide are printed to stdout and the exit status is 1.
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
	kingpinApp := kingpin.New("yaml-lookup", "Process and validate a YAML configuration file.")
	kingpinApp.UsageWriter(stderr)
	kingpinApp.ErrorWriter(stderr)

	filePath := kingpinApp.Arg("file_path", "The path to the YAML file to process.").Required().String()
	lookupKey := kingpinApp.Arg("lookup_key", "The key to look up in the YAML file.").Required().String()
	templatePath := kingpinApp.Flag("template", "File whose raw text is checked for commented-out sections (defaults to file_path).").String()
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
		LookupKey:    *lookupKey,
		TemplatePath: templatePath,
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

	if err := app.Lookup(); err != nil {
		logger.Debug("lookup failed", zap.Error(err))
		if rerr := application.Report(stdout, cfg.DocumentPath, err); rerr != nil {
			logger.Error("failed to write report", zap.Error(rerr))
		}
		return exitFailure
	}

	return exitOK
}
