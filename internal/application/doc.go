// Package application wires the loader, validator, matcher and formatter
// into the two command pipelines. It keeps the main packages focused on
// argument parsing and exit codes.
package application
