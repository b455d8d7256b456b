package cli

import (
	"bytes"
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, LogInfo)

	if logger == nil {
		t.Fatal("newLogger() returned nil")
	}

	logger.Info("Writing icon.ico")

	if !bytes.Contains(buf.Bytes(), []byte("Writing icon.ico")) {
		t.Errorf("logger output = %q, want message", buf.String())
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "warn at default level",
			level:   LogWarn,
			logFunc: func(l *log.Logger) { l.Warn("inkscape not found, using native renderer") },
			wantLog: true,
		},
		{
			name:    "info at default level",
			level:   LogWarn,
			logFunc: func(l *log.Logger) { l.Info("Generated 6 files") },
			wantLog: false,
		},
		{
			name:    "debug at info level",
			level:   LogInfo,
			logFunc: func(l *log.Logger) { l.Debug("rendered", "size", 256) },
			wantLog: false,
		},
		{
			name:    "debug at verbose level",
			level:   LogDebug,
			logFunc: func(l *log.Logger) { l.Debug("rendered", "size", 256) },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, LogInfo)

	prog := newProgress(logger)
	if prog == nil {
		t.Fatal("newProgress() returned nil")
	}

	time.Sleep(10 * time.Millisecond)

	prog.done("Generated 6 files")

	// Elapsed time is appended in parentheses, e.g. "(12ms)" or "(1.234s)".
	re := regexp.MustCompile(`Generated 6 files \([0-9.]+m?s\)`)
	if !re.Match(buf.Bytes()) {
		t.Errorf("progress.done() output = %q, want message with elapsed time", buf.String())
	}
}

func TestWithLogger(t *testing.T) {
	ctx := context.Background()
	logger := log.Default()

	retrieved := loggerFromContext(withLogger(ctx, logger))
	if retrieved != logger {
		t.Error("loggerFromContext should return the same logger")
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	if logger := loggerFromContext(context.Background()); logger == nil {
		t.Error("loggerFromContext should return default logger when none set")
	}
}

func TestLoggerFromContextWithValue(t *testing.T) {
	var buf bytes.Buffer
	customLogger := newLogger(&buf, LogInfo)

	ctx := withLogger(context.Background(), customLogger)
	retrieved := loggerFromContext(ctx)

	if retrieved != customLogger {
		t.Error("loggerFromContext should return the custom logger")
	}

	retrieved.Info("Rendered icon.png")
	if !bytes.Contains(buf.Bytes(), []byte("Rendered icon.png")) {
		t.Errorf("custom logger output = %q, want message", buf.String())
	}
}
