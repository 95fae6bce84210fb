package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	goyaml "github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/parser"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNotFound is returned when the configuration file does not exist.
	ErrNotFound = errors.New("configuration file not found")
	// ErrUnreadable is returned when the path exists but cannot be read as a file.
	ErrUnreadable = errors.New("configuration file cannot be read")
	// ErrPathIsDirectory is the cause reported when the path names a directory.
	ErrPathIsDirectory = errors.New("path is a directory, not a file")
)

// ReadError reports a path that exists but could not be read. It matches
// ErrUnreadable with errors.Is and unwraps to the underlying cause.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrUnreadable, e.Path, e.Err)
}

func (e *ReadError) Is(target error) bool {
	return target == ErrUnreadable
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// SyntaxError reports a YAML document that failed to parse.
type SyntaxError struct {
	Path string
	// Diagnostic is a human readable description of the failure, annotated
	// with the offending source lines when they can be located.
	Diagnostic string
	Err        error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid YAML syntax in %q: %v", e.Path, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Document is one parsed YAML file.
type Document struct {
	Path string
	root *yaml.Node
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Document, error) {
	data, err := ReadRaw(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

// Parse parses data as a single YAML document. A stream holding more than
// one document is rejected.
func Parse(path string, data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var node yaml.Node
	if err := dec.Decode(&node); err != nil && !errors.Is(err, io.EOF) {
		return nil, syntaxError(path, data, err)
	}

	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case err == nil:
		err = fmt.Errorf("expected a single document in the stream, found another at line %d", extra.Line)
		return nil, &SyntaxError{Path: path, Diagnostic: err.Error(), Err: err}
	case !errors.Is(err, io.EOF):
		return nil, syntaxError(path, data, err)
	}

	doc := &Document{Path: path}
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		doc.root = Resolve(node.Content[0])
	}
	return doc, nil
}

func syntaxError(path string, data []byte, err error) *SyntaxError {
	return &SyntaxError{
		Path:       path,
		Diagnostic: diagnose(data, err),
		Err:        err,
	}
}

// ReadRaw returns the raw bytes of the file at path, classifying failures as
// ErrNotFound or *ReadError.
func ReadRaw(path string) ([]byte, error) {
	cleanPath := filepath.Clean(path)

	stat, err := os.Stat(cleanPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, &ReadError{Path: path, Err: err}
	}
	if stat.IsDir() {
		return nil, &ReadError{Path: path, Err: ErrPathIsDirectory}
	}

	data, err := os.ReadFile(cleanPath) // #nosec G304 -- path is supplied by the operator
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	return data, nil
}

// Root returns the top-level node, or nil for an empty or comment-only file.
func (d *Document) Root() *yaml.Node {
	if d == nil {
		return nil
	}
	return d.root
}

// Empty reports whether the document has no usable content: no root node,
// or a root that is null, false, zero, an empty string or an empty collection.
func (d *Document) Empty() bool {
	return IsFalsy(d.Root())
}

// diagnose renders a parse failure with source context. goccy/go-yaml's
// parser reports token positions that FormatError can annotate; when it
// accepts input that yaml.v3 rejected, the yaml.v3 message is used as is.
func diagnose(data []byte, fallback error) string {
	if _, err := parser.ParseBytes(data, 0); err != nil {
		return goyaml.FormatError(err, false, true)
	}
	return fallback.Error()
}
