package validator

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/repo-sync-config/internal/document"
)

const (
	sectionConfig = "config"
	sectionRepos  = "repos"

	fieldLocal   = "local"
	fieldRemotes = "remotes"
)

var (
	requiredSections     = []string{sectionConfig, sectionRepos}
	requiredConfigFields = []string{"email", "name", "branch"}

	// Each pattern is scanned on its own, so "<YOUR_EMAIL>" reports both the
	// bracketed token and the bare sentinel inside it.
	placeholderPatterns = []*regexp.Regexp{
		regexp.MustCompile(`<[A-Z_]+>`),
		regexp.MustCompile(`<[a-zA-Z_]+>`),
		regexp.MustCompile(`YOURUSERNAME`),
		regexp.MustCompile(`YOUR_EMAIL`),
		regexp.MustCompile(`YOUR_GIT_USERNAME`),
	}

	commentedConfigMarkers = [][]byte{[]byte("# config:"), []byte("#config:")}
)

// Result is the outcome of validating one document.
type Result struct {
	err error
}

// Valid reports whether no violations were found.
func (r Result) Valid() bool {
	return r.err == nil
}

// Err returns every violation combined into one error, or nil.
func (r Result) Err() error {
	return r.err
}

// Messages returns the violations in the order they were found.
func (r Result) Messages() []string {
	errs := multierr.Errors(r.err)
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}

// ValidateFile validates doc, reading the raw text used for the
// commented-section check from templatePath. The template is usually the
// file doc was parsed from, but may be the unsubstituted original of a
// generated document.
func ValidateFile(doc *document.Document, templatePath string) Result {
	raw, err := document.ReadRaw(templatePath)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			return Result{err: fmt.Errorf("Configuration file '%s' not found", templatePath)}
		}
		return Result{err: fmt.Errorf("Unable to read configuration file '%s'", templatePath)}
	}
	return Validate(doc, raw)
}

// Validate checks doc against the schema. raw is the unparsed template text,
// used only to tell an empty file apart from one whose sections are
// commented out.
func Validate(doc *document.Document, raw []byte) Result {
	if doc.Empty() {
		if hasCommentedConfig(raw) {
			return fail("Configuration sections are commented out - please uncomment 'config:' and 'repos:' sections")
		}
		return fail("Configuration file contains only comments or is empty - please add configuration sections")
	}

	var errs error
	root := doc.Root()

	if found := placeholders(root); len(found) > 0 {
		errs = multierr.Append(errs, fmt.Errorf(
			"Template placeholders found in active configuration that need replacement: %s",
			strings.Join(found, ", ")))
	}

	for _, section := range requiredSections {
		if _, ok := document.Lookup(root, section); !ok {
			errs = multierr.Append(errs, fmt.Errorf("Missing required section: '%s'", section))
		}
	}
	if errs != nil {
		return Result{err: errs}
	}

	config, _ := document.Lookup(root, sectionConfig)
	repos, _ := document.Lookup(root, sectionRepos)

	if !document.IsMapping(config) {
		return Result{err: multierr.Append(errs,
			fmt.Errorf("Section '%s' must be a mapping", sectionConfig))}
	}
	if !document.IsFalsy(repos) && !document.IsMapping(repos) {
		return Result{err: multierr.Append(errs,
			fmt.Errorf("Section '%s' must be a mapping", sectionRepos))}
	}

	errs = multierr.Append(errs, validateConfigSection(config))

	if document.IsFalsy(repos) {
		return Result{err: multierr.Append(errs,
			fmt.Errorf("No repositories defined in '%s' section", sectionRepos))}
	}

	for _, repo := range document.Pairs(repos) {
		errs = multierr.Append(errs, validateRepo(repo.Key, repo.Value))
	}

	return Result{err: errs}
}

func validateConfigSection(config *yaml.Node) error {
	var errs error
	for _, field := range requiredConfigFields {
		value, ok := document.Lookup(config, field)
		switch {
		case !ok:
			errs = multierr.Append(errs, fmt.Errorf("Missing required config field: '%s'", field))
		case document.IsBlank(value):
			errs = multierr.Append(errs, fmt.Errorf("Config field '%s' is empty", field))
		}
	}
	return errs
}

func validateRepo(name string, repo *yaml.Node) error {
	if !document.IsMapping(repo) {
		return fmt.Errorf("Repository '%s' configuration must be a mapping", name)
	}

	var errs error

	local, ok := document.Lookup(repo, fieldLocal)
	switch {
	case !ok:
		errs = multierr.Append(errs, fmt.Errorf("Repository '%s' missing '%s' path", name, fieldLocal))
	case document.IsBlank(local):
		errs = multierr.Append(errs, fmt.Errorf("Repository '%s' has empty '%s' path", name, fieldLocal))
	}

	remotes, ok := document.Lookup(repo, fieldRemotes)
	switch {
	case !ok:
		errs = multierr.Append(errs, fmt.Errorf("Repository '%s' missing '%s' list", name, fieldRemotes))
	case !document.IsSequence(remotes) || len(document.Resolve(remotes).Content) == 0:
		errs = multierr.Append(errs, fmt.Errorf("Repository '%s' '%s' must be a non-empty list", name, fieldRemotes))
	}

	return errs
}

// placeholders returns the distinct template tokens found in any key or
// value under root, sorted.
func placeholders(root *yaml.Node) []string {
	seen := make(map[string]struct{})
	document.Scalars(root, func(s string) {
		for _, re := range placeholderPatterns {
			for _, m := range re.FindAllString(s, -1) {
				seen[m] = struct{}{}
			}
		}
	})

	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

func hasCommentedConfig(raw []byte) bool {
	for _, marker := range commentedConfigMarkers {
		if bytes.Contains(raw, marker) {
			return true
		}
	}
	return false
}

func fail(msg string) Result {
	return Result{err: errors.New(msg)}
}
