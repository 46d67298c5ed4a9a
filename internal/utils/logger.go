package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Logger provides leveled logging. Everything goes to one writer, stderr by
// default, so command output on stdout stays clean.
type Logger struct {
	out   *log.Logger
	debug bool
}

// NewLogger creates a Logger writing to stderr.
func NewLogger(debug bool) *Logger {
	return NewLoggerTo(os.Stderr, debug)
}

// NewLoggerTo creates a Logger writing to w.
func NewLoggerTo(w io.Writer, debug bool) *Logger {
	return &Logger{out: log.New(w, "", 0), debug: debug}
}

// NopLogger discards everything.
func NopLogger() *Logger {
	return NewLoggerTo(io.Discard, false)
}

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) Info(format string, args ...any) {
	l.printf("\033[32mINFO\033[0m ", format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.printf("\033[33mWARN\033[0m ", format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.printf("\033[31mERROR\033[0m", format, args...)
}

// Debug is silent unless the logger was built with debug enabled.
func (l *Logger) Debug(format string, args ...any) {
	if !l.debug {
		return
	}
	l.printf("\033[36mDEBUG\033[0m", format, args...)
}

func (l *Logger) printf(level, format string, args ...any) {
	if l == nil {
		return
	}
	l.out.Printf("[%s] %s %s", l.timestamp(), level, fmt.Sprintf(format, args...))
}
