// Package logging builds the structured logger used by the CLI and the pipeline.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/baditaflorin/l"
)

// Logger is the subset of l.Logger the pipeline writes to.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Options selects where and how log events are written.
type Options struct {
	Output   io.Writer // defaults to os.Stderr
	FilePath string    // when set, events are appended to this file instead of Output
	JSON     bool
}

// New creates a logger. The returned close function flushes and releases the sink.
func New(opts Options) (Logger, func() error, error) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var file *os.File
	if opts.FilePath != "" {
		f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", opts.FilePath, err)
		}
		file = f
		out = f
	}

	logger, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:      out,
		JsonFormat:  opts.JSON,
		AsyncWrite:  false,
		BufferSize:  64 * 1024,
		MaxFileSize: 10 * 1024 * 1024, // 10MB
		MaxBackups:  5,
		AddSource:   false,
		Metrics:     false,
	})
	if err != nil {
		if file != nil {
			_ = file.Close()
		}
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	closeFn := func() error {
		err := logger.Close()
		if file != nil {
			if cerr := file.Close(); err == nil {
				err = cerr
			}
		}
		return err
	}
	return logger, closeFn, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}
