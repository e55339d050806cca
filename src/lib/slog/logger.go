package slog

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	config *Config
	logger *zap.Logger
	mux    sync.Mutex
)

// Config allows slog to be configured.
type Config struct {
	Disabled bool
	Colorful bool

	// JSON switches the console encoder to the JSON encoder.
	JSON bool

	// Output is where the logs are written. Defaults to stdout.
	Output io.Writer
}

func getConfig() *Config {
	if config == nil {
		config = &Config{
			Disabled: strings.Contains(os.Args[0], "_test") || strings.Contains(os.Args[0], ".test"),
			JSON:     os.Getenv("SLOG_FORMAT") == "json",
		}
	}

	return config
}

// getLogger returns a configured zap logger instance
func getLogger() *zap.Logger {
	mux.Lock()
	defer mux.Unlock()

	if logger != nil {
		return logger
	}

	cfg := getConfig()

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05"),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if cfg.Colorful && !cfg.JSON {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level := zapcore.InfoLevel

	if debug := os.Getenv("DEBUG"); debug != "" {
		level = zapcore.DebugLevel
	}

	var encoder zapcore.Encoder

	if cfg.JSON {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	var out io.Writer = os.Stdout

	if cfg.Output != nil {
		out = cfg.Output
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), level)

	if cfg.Disabled {
		core = zapcore.NewNopCore()
	}

	logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return logger
}

// SetConfig sets the configuration for slog.
func SetConfig(conf *Config) {
	mux.Lock()
	defer mux.Unlock()

	config = conf
	logger = nil
}

const DL1 = 1 // Debug level 1 is used for general debug messages.
const DL2 = 2 // Debug level 2 is used for more detailed debug messages, such as function calls and variable values.
const DL3 = 3 // Debug level 3 is used for noisy messages, such as request and response logging.

type LogOpts struct {
	Msg     string
	MsgArgs []any
	Payload []zap.Field
	Level   int
}

// Debug logs debug level stuff.
func Debug(opts LogOpts) {
	debug := os.Getenv("DEBUG")

	if debug == "" {
		return
	}

	debugLevel, _ := strconv.Atoi(debug)

	// Debugging is enabled, but the level is not sufficient
	if debugLevel > 0 && opts.Level > debugLevel {
		return
	} else if debugLevel == 0 && debug != "TRUE" {
		return
	}

	msg := opts.Msg

	if len(opts.MsgArgs) > 0 {
		msg = fmt.Sprintf(msg, opts.MsgArgs...)
	}

	getLogger().Debug(msg, opts.Payload...)
}

// With returns a child logger carrying the given fields. The returned
// logger does not skip a caller frame.
func With(fields ...zap.Field) *zap.Logger {
	return getLogger().WithOptions(zap.AddCallerSkip(-1)).With(fields...)
}

// Info logs info level stuff.
func Info(v ...any) {
	getLogger().Info(fmt.Sprint(v...))
}

// Infof accepts a formatted string and calls Info function.
func Infof(msg string, args ...any) {
	getLogger().Info(fmt.Sprintf(msg, args...))
}

// Warnf logs a formatted warning.
func Warnf(msg string, args ...any) {
	getLogger().Warn(fmt.Sprintf(msg, args...))
}

// Error logs error level stuff.
func Error(v ...any) {
	getLogger().Error(fmt.Sprint(v...))
}

// Errorf accepts a formatted string and calls Error function.
func Errorf(msg string, args ...any) {
	getLogger().Error(fmt.Sprintf(msg, args...))
}
