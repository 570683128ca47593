// Package logging provides the leveled logger used across the dashboard. Output is one JSON object
// per line, or a coloured human-readable line when stdout is a terminal.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

const fileMode = 0644

// PrettyPrint is implemented by messages that know how to render themselves on a terminal.
type PrettyPrint interface {
	PrettyPrint(writer io.Writer)
}

// Logger is the logging contract shared by every package.
type Logger interface {
	Debug(args ...any)
	Debugf(format string, args ...any)
	Log(args ...any)
	Logf(format string, args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Notice(args ...any)
	Noticef(format string, args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	ChangeLevel(level Level)
}

type logger struct {
	mu         sync.Mutex
	level      Level
	normalOut  io.Writer
	errorOut   io.Writer
	isTerminal bool
	exit       func(code int)
}

type logEntry struct {
	Level   Level     `json:"level"`
	Time    time.Time `json:"time"`
	Message any       `json:"message"`
	TraceID string    `json:"trace_id,omitempty"`
}

// NewLogger creates a logger writing INFO and below to stdout and ERROR and above to stderr.
func NewLogger(level Level) Logger {
	l := &logger{
		level:     level,
		normalOut: os.Stdout,
		errorOut:  os.Stderr,
		exit:      os.Exit,
	}

	l.isTerminal = checkIfTerminal(l.normalOut)

	return l
}

// NewFileLogger writes every level to the given file. An empty path discards all output.
func NewFileLogger(path string) Logger {
	l := &logger{
		level:     DEBUG,
		normalOut: io.Discard,
		errorOut:  io.Discard,
		exit:      os.Exit,
	}

	if path == "" {
		return l
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, fileMode)
	if err != nil {
		return l
	}

	l.normalOut = f
	l.errorOut = f

	return l
}

func checkIfTerminal(w io.Writer) bool {
	switch v := w.(type) {
	case *os.File:
		return term.IsTerminal(int(v.Fd()))
	default:
		return false
	}
}

func (l *logger) logf(level Level, format string, args ...any) {
	if level < l.level {
		return
	}

	out := l.normalOut
	if level >= ERROR {
		out = l.errorOut
	}

	entry := logEntry{
		Level: level,
		Time:  time.Now(),
	}

	args, entry.TraceID = extractTraceID(args)

	switch {
	case len(args) == 1 && format == "":
		entry.Message = args[0]
	case len(args) != 1 && format == "":
		entry.Message = fmt.Sprint(args...)
	default:
		entry.Message = fmt.Sprintf(format, args...)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.isTerminal {
		l.prettyPrint(entry, out)
	} else {
		_ = json.NewEncoder(out).Encode(entry)
	}

	if level == FATAL && l.exit != nil {
		l.exit(1)
	}
}

// extractTraceID strips the trace marker appended by ContextLogger.
func extractTraceID(args []any) ([]any, string) {
	if len(args) == 0 {
		return args, ""
	}

	m, ok := args[len(args)-1].(map[string]any)
	if !ok {
		return args, ""
	}

	id, ok := m[traceIDKey].(string)
	if !ok {
		return args, ""
	}

	return args[:len(args)-1], id
}

func (*logger) prettyPrint(e logEntry, out io.Writer) {
	fmt.Fprintf(out, "\u001B[38;5;%dm%s\u001B[0m [%s] ", e.Level.color(), e.Level.String()[0:4], e.Time.Format(time.TimeOnly))

	if e.TraceID != "" {
		fmt.Fprintf(out, "\u001B[38;5;8m%s\u001B[0m ", e.TraceID)
	}

	if fn, ok := e.Message.(PrettyPrint); ok {
		fn.PrettyPrint(out)
		return
	}

	fmt.Fprintf(out, "%v\n", e.Message)
}

func (l *logger) Debug(args ...any)                  { l.logf(DEBUG, "", args...) }
func (l *logger) Debugf(format string, args ...any)  { l.logf(DEBUG, format, args...) }
func (l *logger) Log(args ...any)                    { l.logf(INFO, "", args...) }
func (l *logger) Logf(format string, args ...any)    { l.logf(INFO, format, args...) }
func (l *logger) Info(args ...any)                   { l.logf(INFO, "", args...) }
func (l *logger) Infof(format string, args ...any)   { l.logf(INFO, format, args...) }
func (l *logger) Notice(args ...any)                 { l.logf(NOTICE, "", args...) }
func (l *logger) Noticef(format string, args ...any) { l.logf(NOTICE, format, args...) }
func (l *logger) Warn(args ...any)                   { l.logf(WARN, "", args...) }
func (l *logger) Warnf(format string, args ...any)   { l.logf(WARN, format, args...) }
func (l *logger) Error(args ...any)                  { l.logf(ERROR, "", args...) }
func (l *logger) Errorf(format string, args ...any)  { l.logf(ERROR, format, args...) }
func (l *logger) Fatal(args ...any)                  { l.logf(FATAL, "", args...) }
func (l *logger) Fatalf(format string, args ...any)  { l.logf(FATAL, format, args...) }

func (l *logger) ChangeLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}
