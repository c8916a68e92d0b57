package logger

import (
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultLogFile is the rotating JSON log, relative to the working directory.
const DefaultLogFile = "logs/sandbox.log"

// maxLines bounds the in-memory history shown by the terminal overlay.
const maxLines = 500

// Config selects level, console format and the optional rotating log file.
type Config struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"` // "console" or "json"
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"` // days
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// DefaultConfig logs at info to the console and to logs/sandbox.log.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "console",
		LogFile:    DefaultLogFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     7,
	}
}

// Logger is a zap logger that also keeps the recent entries as plain lines,
// each prefixed with [timestamp], for drawing in the terminal overlay.
type Logger struct {
	*zap.Logger

	lines *lineBuffer
	file  *lumberjack.Logger
}

// New builds a logger writing to stderr.
func New(cfg Config) *Logger {
	return NewWithWriter(cfg, zapcore.Lock(os.Stderr))
}

// NewWithWriter builds a logger whose console output goes to console.
// An unknown level falls back to info.
func NewWithWriter(cfg Config, console zapcore.WriteSyncer) *Logger {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	lines := &lineBuffer{limit: maxLines}
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder(cfg.Format), console, level),
		zapcore.NewCore(lineEncoder(), lines, level),
	}

	l := &Logger{lines: lines}
	if cfg.LogFile != "" {
		l.file = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(jsonEncoder(), zapcore.AddSync(l.file), level))
	}

	l.Logger = zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel))
	return l
}

// Log records a line typed into the terminal.
func (l *Logger) Log(line string) {
	l.Info(line)
}

// Lines returns a copy of the retained lines, oldest first.
func (l *Logger) Lines() []string {
	return l.lines.snapshot()
}

// Close flushes buffered entries and closes the log file.
func (l *Logger) Close() error {
	_ = l.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func jsonEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}

func consoleEncoder(format string) zapcore.Encoder {
	if format == "json" {
		return jsonEncoder()
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

// lineEncoder renders "[2006-01-02 15:04:05] message {fields}".
func lineEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:    "ts",
		MessageKey: "msg",
		LineEnding: zapcore.DefaultLineEnding,
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + t.Format("2006-01-02 15:04:05") + "]")
		},
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	})
}

// lineBuffer is a WriteSyncer keeping the last limit entries.
type lineBuffer struct {
	mu    sync.Mutex
	lines []string
	limit int
}

func (b *lineBuffer) Write(p []byte) (int, error) {
	text := strings.TrimSpace(string(p))
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, line := range strings.Split(text, "\n") {
		b.lines = append(b.lines, line)
	}
	if over := len(b.lines) - b.limit; over > 0 {
		b.lines = append(b.lines[:0], b.lines[over:]...)
	}
	return len(p), nil
}

func (b *lineBuffer) Sync() error { return nil }

func (b *lineBuffer) snapshot() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}
