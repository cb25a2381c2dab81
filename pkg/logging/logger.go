package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// NewJSONLogger creates a logger writing JSON lines to w
func NewJSONLogger(w io.Writer, level Level) *JSONLogger {
	return &JSONLogger{
		out:   &lockedWriter{w: w},
		level: level,
		now:   time.Now,
	}
}

// New creates a JSON logger from a level name such as "info" or "debug"
func New(w io.Writer, level string) (*JSONLogger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return NewJSONLogger(w, lvl), nil
}

func (l *JSONLogger) log(level Level, msg string, fields ...Field) {
	if level < l.level {
		return
	}

	entry := LogEntry{
		Time:    l.now().UTC().Format(time.RFC3339Nano),
		Level:   level.String(),
		Message: msg,
	}

	if n := len(l.fields) + len(fields); n > 0 {
		entry.Fields = make(map[string]any, n)
		for _, f := range l.fields {
			entry.Fields[f.Key] = f.Value
		}
		// Call-site fields win over preset ones
		for _, f := range fields {
			entry.Fields[f.Key] = f.Value
		}
	}

	data, err := json.Marshal(entry)

	l.out.mu.Lock()
	defer l.out.mu.Unlock()

	if err != nil {
		fmt.Fprintf(l.out.w, "[ERROR] Failed to marshal log entry %q: %v\n", msg, err)
		return
	}
	l.out.w.Write(append(data, '\n'))
}

// Debug logs a debug-level message
func (l *JSONLogger) Debug(msg string, fields ...Field) {
	l.log(DebugLevel, msg, fields...)
}

// Info logs an info-level message
func (l *JSONLogger) Info(msg string, fields ...Field) {
	l.log(InfoLevel, msg, fields...)
}

// Warn logs a warning-level message
func (l *JSONLogger) Warn(msg string, fields ...Field) {
	l.log(WarnLevel, msg, fields...)
}

// Error logs an error-level message
func (l *JSONLogger) Error(msg string, fields ...Field) {
	l.log(ErrorLevel, msg, fields...)
}

// With creates a child logger sharing the same output with the given fields pre-set
func (l *JSONLogger) With(fields ...Field) Logger {
	newFields := make([]Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	return &JSONLogger{
		out:    l.out,
		level:  l.level,
		fields: newFields,
		now:    l.now,
	}
}

// Enabled reports whether messages at level would be written
func (l *JSONLogger) Enabled(level Level) bool {
	return level >= l.level
}

// Level returns the minimum level written
func (l *JSONLogger) Level() Level {
	return l.level
}

// StartTimer begins timing a phase
func StartTimer(logger Logger, msg string, fields ...Field) *TimedOperation {
	return &TimedOperation{
		logger: logger,
		msg:    msg,
		start:  time.Now(),
		fields: fields,
	}
}

// Elapsed returns the time since the timer started
func (t *TimedOperation) Elapsed() time.Duration {
	return time.Since(t.start)
}

// End logs the phase at info level with its duration and any extra fields
func (t *TimedOperation) End(extra ...Field) time.Duration {
	elapsed := t.Elapsed()
	t.logger.Info(t.msg, t.with(elapsed, extra)...)
	return elapsed
}

// EndDebug is End at debug level
func (t *TimedOperation) EndDebug(extra ...Field) time.Duration {
	elapsed := t.Elapsed()
	t.logger.Debug(t.msg, t.with(elapsed, extra)...)
	return elapsed
}

// EndError logs the phase as failed with its duration
func (t *TimedOperation) EndError(err error) time.Duration {
	elapsed := t.Elapsed()
	t.logger.Error(t.msg+" failed", t.with(elapsed, []Field{Error(err)})...)
	return elapsed
}

func (t *TimedOperation) with(elapsed time.Duration, extra []Field) []Field {
	fields := make([]Field, 0, len(t.fields)+len(extra)+1)
	fields = append(fields, t.fields...)
	fields = append(fields, extra...)
	return append(fields, Latency(elapsed))
}
