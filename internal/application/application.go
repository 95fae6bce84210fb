package application

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/eugenenazirov/repo-sync-config/internal/config"
	"github.com/eugenenazirov/repo-sync-config/internal/document"
	"github.com/eugenenazirov/repo-sync-config/internal/flatten"
	"github.com/eugenenazirov/repo-sync-config/internal/format"
	"github.com/eugenenazirov/repo-sync-config/internal/validator"
)

var (
	// ErrInvalidConfig is wrapped by errors reporting a document that failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrNotMapping is returned when a document to dump has no top-level mapping.
	ErrNotMapping = errors.New("document does not contain a mapping")
)

// ValidationError carries the result of a failed validation.
type ValidationError struct {
	Path   string
	Result validator.Result
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrInvalidConfig, e.Path, e.Result.Err())
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// App encapsulates the resolved configuration and output sink.
type App struct {
	cfg    config.Config
	logger *zap.Logger
	out    io.Writer
}

// New initializes the application from the provided configuration.
func New(cfg config.Config, logger *zap.Logger, out io.Writer) (*App, error) {
	if out == nil {
		return nil, errors.New("output writer is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{cfg: cfg, logger: logger, out: out}, nil
}

// Lookup loads and validates the document, then writes one line per
// formatted value whose flattened key path matches the lookup key.
// Output is written as matches are found.
func (a *App) Lookup() error {
	doc, err := a.load()
	if err != nil {
		return err
	}

	result := validator.ValidateFile(doc, a.cfg.TemplatePath)
	if !result.Valid() {
		a.logger.Warn("configuration failed validation",
			zap.String("path", a.cfg.DocumentPath),
			zap.String("template", a.cfg.TemplatePath),
			zap.Int("violations", len(result.Messages())))
		return &ValidationError{Path: a.cfg.DocumentPath, Result: result}
	}

	matches, err := flatten.Match(doc.Root(), a.cfg.LookupKey)
	if err != nil {
		return fmt.Errorf("lookup %q: %w", a.cfg.LookupKey, err)
	}

	count := 0
	for path, value := range matches {
		count++
		a.logger.Debug("key matched", zap.Stringer("key", path))
		if err := a.writeLines(format.Lines(value)); err != nil {
			return err
		}
	}

	a.logger.Debug("lookup complete",
		zap.String("pattern", a.cfg.LookupKey),
		zap.Int("matches", count))
	return nil
}

// Dump loads the document and writes a name="value" line for every leaf.
// No validation is performed.
func (a *App) Dump() error {
	doc, err := a.load()
	if err != nil {
		return err
	}
	if !document.IsMapping(doc.Root()) {
		return fmt.Errorf("%w: %s", ErrNotMapping, a.cfg.DocumentPath)
	}

	count := 0
	for path, value := range flatten.Walk(doc.Root()) {
		if document.IsMapping(value) {
			continue
		}
		count++
		if err := a.writeLines([]string{format.Assignment(path, value)}); err != nil {
			return err
		}
	}

	a.logger.Debug("dump complete", zap.Int("leaves", count))
	return nil
}

func (a *App) load() (*document.Document, error) {
	doc, err := document.Load(a.cfg.DocumentPath)
	if err != nil {
		a.logger.Debug("failed to load document",
			zap.String("path", a.cfg.DocumentPath), zap.Error(err))
		return nil, err
	}
	a.logger.Debug("loaded document", zap.String("path", doc.Path))
	return doc, nil
}

func (a *App) writeLines(lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(a.out, line); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}
