package application

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/repo-sync-config/internal/config"
	"github.com/eugenenazirov/repo-sync-config/internal/document"
)

const sampleConfig = `config:
  email: dev@example.com
  name: dev
  branch: main
repos:
  my-project:
    local: /srv/my-project
    remotes:
      - https://example.com/my-project.git
      - https://example.com/backup.git
  tools:
    local: /srv/tools
    remotes: [git@example.com:tools.git]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func newTestApp(t *testing.T, cfg config.Config) (*App, *bytes.Buffer) {
	t.Helper()

	if cfg.TemplatePath == "" {
		cfg.TemplatePath = cfg.DocumentPath
	}
	var out bytes.Buffer
	app, err := New(cfg, zaptest.NewLogger(t), &out)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return app, &out
}

func TestNewRequiresWriter(t *testing.T) {
	if _, err := New(config.Config{}, nil, nil); err == nil {
		t.Fatalf("expected error without output writer")
	}
}

func TestLookup(t *testing.T) {
	path := writeFile(t, "config.yaml", sampleConfig)

	tests := []struct {
		key  string
		want string
	}{
		{key: "config_email", want: "dev@example.com\n"},
		{key: "repos", want: "my-project\ntools\n"},
		{key: "repos_my-project_remotes", want: "https://example.com/my-project.git https://example.com/backup.git\n"},
		{key: "repos_*_local", want: "/srv/my-project\n/srv/tools\n"},
		{key: "config_?ame", want: "dev\n"},
		{key: "nothing", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			app, out := newTestApp(t, config.Config{DocumentPath: path, LookupKey: tc.key})
			if err := app.Lookup(); err != nil {
				t.Fatalf("Lookup returned error: %v", err)
			}
			if got := out.String(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestLookupValidationFailure(t *testing.T) {
	path := writeFile(t, "config.yaml", "config:\n  email: <EMAIL>\n")
	app, out := newTestApp(t, config.Config{DocumentPath: path, LookupKey: "*"})

	err := app.Lookup()

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig in chain")
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output on validation failure, got %q", out.String())
	}
	if len(validationErr.Result.Messages()) != 2 {
		t.Fatalf("expected placeholder and missing repos messages, got %v", validationErr.Result.Messages())
	}
}

func TestLookupUsesTemplatePath(t *testing.T) {
	effective := writeFile(t, "config_sub.yaml", "")
	template := writeFile(t, "config.yaml", "# config:\n#   email: x\n")

	app, _ := newTestApp(t, config.Config{DocumentPath: effective, TemplatePath: template, LookupKey: "*"})

	var validationErr *ValidationError
	if err := app.Lookup(); !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	msgs := validationErr.Result.Messages()
	if len(msgs) != 1 || !strings.Contains(msgs[0], "commented out") {
		t.Fatalf("expected commented-out message from template, got %v", msgs)
	}
}

func TestLookupLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		app, _ := newTestApp(t, config.Config{DocumentPath: filepath.Join(t.TempDir(), "nope.yaml"), LookupKey: "*"})
		if err := app.Lookup(); !errors.Is(err, document.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("unreadable", func(t *testing.T) {
		app, _ := newTestApp(t, config.Config{DocumentPath: t.TempDir(), LookupKey: "*"})
		if err := app.Lookup(); !errors.Is(err, document.ErrUnreadable) {
			t.Fatalf("expected ErrUnreadable, got %v", err)
		}
	})

	t.Run("multiple documents", func(t *testing.T) {
		path := writeFile(t, "config.yaml", sampleConfig+"---\nfoo: 1\n")
		app, out := newTestApp(t, config.Config{DocumentPath: path, LookupKey: "*"})
		var syntaxErr *document.SyntaxError
		if err := app.Lookup(); !errors.As(err, &syntaxErr) {
			t.Fatalf("expected *document.SyntaxError, got %v", err)
		}
		if out.Len() != 0 {
			t.Fatalf("expected no output, got %q", out.String())
		}
	})

	t.Run("syntax error", func(t *testing.T) {
		path := writeFile(t, "config.yaml", "config: [\n")
		app, _ := newTestApp(t, config.Config{DocumentPath: path, LookupKey: "*"})
		var syntaxErr *document.SyntaxError
		if err := app.Lookup(); !errors.As(err, &syntaxErr) {
			t.Fatalf("expected *document.SyntaxError, got %v", err)
		}
	})
}

func TestLookupInvalidPattern(t *testing.T) {
	path := writeFile(t, "config.yaml", sampleConfig)
	app, _ := newTestApp(t, config.Config{DocumentPath: path, LookupKey: "[z-a]"})

	if err := app.Lookup(); err == nil {
		t.Fatalf("expected error for invalid pattern")
	}
}

func TestDump(t *testing.T) {
	path := writeFile(t, "config.yaml", sampleConfig+"empty: {}\n")
	app, out := newTestApp(t, config.Config{DocumentPath: path})

	if err := app.Dump(); err != nil {
		t.Fatalf("Dump returned error: %v", err)
	}

	want := strings.Join([]string{
		`config_email="dev@example.com"`,
		`config_name="dev"`,
		`config_branch="main"`,
		`repos_my_project_local="/srv/my-project"`,
		`repos_my_project_remotes="https://example.com/my-project.git https://example.com/backup.git"`,
		`repos_tools_local="/srv/tools"`,
		`repos_tools_remotes="git@example.com:tools.git"`,
	}, "\n") + "\n"
	if got := out.String(); got != want {
		t.Fatalf("unexpected dump:\n%s\nwant:\n%s", got, want)
	}
}

func TestDumpSkipsValidation(t *testing.T) {
	path := writeFile(t, "config.yaml", "name: <PLACEHOLDER>\n")
	app, out := newTestApp(t, config.Config{DocumentPath: path})

	if err := app.Dump(); err != nil {
		t.Fatalf("Dump returned error: %v", err)
	}
	if got := out.String(); got != "name=\"<PLACEHOLDER>\"\n" {
		t.Fatalf("unexpected dump %q", got)
	}
}

func TestDumpFailsFast(t *testing.T) {
	t.Run("syntax error", func(t *testing.T) {
		path := writeFile(t, "config.yaml", "a: [\n")
		app, out := newTestApp(t, config.Config{DocumentPath: path})
		var syntaxErr *document.SyntaxError
		if err := app.Dump(); !errors.As(err, &syntaxErr) {
			t.Fatalf("expected *document.SyntaxError, got %v", err)
		}
		if out.Len() != 0 {
			t.Fatalf("expected no partial output, got %q", out.String())
		}
	})

	t.Run("not a mapping", func(t *testing.T) {
		path := writeFile(t, "config.yaml", "- a\n- b\n")
		app, _ := newTestApp(t, config.Config{DocumentPath: path})
		if err := app.Dump(); !errors.Is(err, ErrNotMapping) {
			t.Fatalf("expected ErrNotMapping, got %v", err)
		}
	})
}

func TestReport(t *testing.T) {
	path := "config.yaml"

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "not found",
			err:  document.ErrNotFound,
			want: "ERROR: Configuration file 'config.yaml' not found.\n",
		},
		{
			name: "syntax",
			err:  &document.SyntaxError{Path: path, Diagnostic: "[1:1] boom", Err: errors.New("boom")},
			want: "ERROR: Invalid YAML syntax in 'config.yaml':\n[1:1] boom\n",
		},
		{
			name: "unreadable",
			err:  &document.ReadError{Path: path, Err: document.ErrPathIsDirectory},
			want: "ERROR: Unable to read configuration file 'config.yaml': path is a directory, not a file\n",
		},
		{
			name: "not a mapping",
			err:  ErrNotMapping,
			want: "ERROR: Configuration file 'config.yaml' does not contain a mapping.\n",
		},
		{
			name: "other",
			err:  errors.New("write output: broken pipe"),
			want: "ERROR: write output: broken pipe\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Report(&buf, path, tc.err); err != nil {
				t.Fatalf("Report returned error: %v", err)
			}
			if got := buf.String(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestReportValidation(t *testing.T) {
	path := writeFile(t, "config.yaml", "other: 1\n")
	app, _ := newTestApp(t, config.Config{DocumentPath: path, LookupKey: "*"})

	err := app.Lookup()
	var buf bytes.Buffer
	if rerr := Report(&buf, path, err); rerr != nil {
		t.Fatalf("Report returned error: %v", rerr)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "ERROR: Invalid configuration:\n  - Missing required section: 'config'\n") {
		t.Fatalf("unexpected report:\n%s", out)
	}
	if !strings.Contains(out, "CONFIGURATION REQUIRED") {
		t.Fatalf("expected help text in report")
	}
}
