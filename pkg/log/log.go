// Package log defines the small structured-logging interface used
// throughout the core, so that an embedding frontend can plug in
// whatever logging backend it already uses.
package log

import "fmt"

// Logger is the minimal leveled-logging surface the core depends on.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type stdLogger struct{}

// New returns a Logger that writes prefixed lines to stdout.
func New() Logger {
	return stdLogger{}
}

func (stdLogger) Infof(format string, args ...interface{}) {
	fmt.Printf("[INFO]\t"+format+"\n", args...)
}

func (stdLogger) Errorf(format string, args ...interface{}) {
	fmt.Printf("[ERROR]\t"+format+"\n", args...)
}

func (stdLogger) Debugf(format string, args ...interface{}) {
	fmt.Printf("[DEBUG]\t"+format+"\n", args...)
}

type nullLogger struct{}

// NewNull returns a Logger that discards everything, the default for
// embedders that don't care to see core diagnostics.
func NewNull() Logger {
	return nullLogger{}
}

func (nullLogger) Infof(string, ...interface{})  {}
func (nullLogger) Errorf(string, ...interface{}) {}
func (nullLogger) Debugf(string, ...interface{}) {}
