// Package logger writes category-tagged log lines: colored text to the
// terminal and one JSON object per line to a daily file.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "INFO"
	}
}

type Entry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Category  string `json:"category"`
	Message   string `json:"message"`
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
}

type Logger struct {
	mu    sync.Mutex
	term  io.Writer
	file  io.Writer
	close func() error
	min   Level
}

// New creates <dir>/<service>-YYYY-MM-DD.log and logs to it and stdout.
func New(dir, service string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	name := filepath.Join(dir, fmt.Sprintf("%s-%s.log", service, time.Now().Format("2006-01-02")))
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l := NewWithWriters(os.Stdout, f)
	l.close = f.Close
	l.Info("LOGGER", "log file: "+name)
	return l, nil
}

// NewWithWriters builds a logger on arbitrary writers. Either may be nil.
func NewWithWriters(term, file io.Writer) *Logger {
	return &Logger{term: term, file: file, min: DEBUG}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWithWriters(nil, nil)
}

// SetLevel drops entries below min.
func (l *Logger) SetLevel(min Level) {
	l.mu.Lock()
	l.min = min
	l.mu.Unlock()
}

func (l *Logger) log(level Level, category, message string) {
	if l == nil || level < l.min {
		return
	}
	_, file, line, ok := runtime.Caller(2)
	if ok {
		file = filepath.Base(file)
	}
	entry := Entry{
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		Level:     level.String(),
		Category:  strings.ToUpper(category),
		Message:   message,
		File:      file,
		Line:      line,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.term != nil {
		fmt.Fprint(l.term, formatTerminal(entry))
	}
	if l.file != nil {
		bs, _ := json.Marshal(entry)
		l.file.Write(append(bs, '\n'))
	}
}

func formatTerminal(e Entry) string {
	var levelColor *color.Color
	switch e.Level {
	case "DEBUG":
		levelColor = color.New(color.FgCyan)
	case "INFO":
		levelColor = color.New(color.FgGreen)
	case "WARN":
		levelColor = color.New(color.FgYellow)
	case "ERROR", "FATAL":
		levelColor = color.New(color.FgRed, color.Bold)
	default:
		levelColor = color.New(color.FgWhite)
	}

	ts := color.New(color.FgBlue).Sprint(e.Timestamp[11:19])
	lvl := levelColor.Sprintf("%-5s", e.Level)
	cat := levelColor.Sprintf("[%-8s]", e.Category)
	if e.File != "" && e.Line > 0 {
		src := color.New(color.FgMagenta).Sprintf(" (%s:%d)", e.File, e.Line)
		return fmt.Sprintf("%s %s %s %s%s\n", ts, lvl, cat, e.Message, src)
	}
	return fmt.Sprintf("%s %s %s %s\n", ts, lvl, cat, e.Message)
}

func (l *Logger) Debug(category, message string) { l.log(DEBUG, category, message) }
func (l *Logger) Info(category, message string)  { l.log(INFO, category, message) }
func (l *Logger) Warn(category, message string)  { l.log(WARN, category, message) }
func (l *Logger) Error(category, message string) { l.log(ERROR, category, message) }

func (l *Logger) Fatal(category, message string) {
	l.log(FATAL, category, message)
	l.Close()
	os.Exit(1)
}

func (l *Logger) LogAPI(method, path string, status int, took time.Duration) {
	l.log(INFO, "API", fmt.Sprintf("%s %s - %d (%s)", method, path, status, took.Round(time.Microsecond)))
}

func (l *Logger) LogDatabase(operation, collection, message string) {
	l.log(INFO, "DATABASE", fmt.Sprintf("[%s] %s - %s", operation, collection, message))
}

func (l *Logger) LogEvent(action, eventType, message string) {
	l.log(INFO, "EVENTS", fmt.Sprintf("[%s] %s - %s", action, eventType, message))
}

func (l *Logger) LogSecurity(event, message string) {
	l.log(WARN, "SECURITY", fmt.Sprintf("[%s] %s", event, message))
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() {
	if l == nil || l.close == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.close()
	l.close = nil
}
