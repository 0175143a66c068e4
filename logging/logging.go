// Package logging builds the zap loggers used by the command line tool and
// the example programs.
package logging

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to stderr so that command output on stdout stays clean.
func New(pretty bool, development bool, level zapcore.LevelEnabler) *zap.Logger {
	return NewZapLogger(zapcore.AddSync(os.Stderr), pretty, development, level)
}

// NewZapLogger returns a logger writing to syncer. pretty selects the console
// encoder, otherwise entries are JSON.
func NewZapLogger(syncer zapcore.WriteSyncer, pretty, development bool, level zapcore.LevelEnabler) *zap.Logger {
	var encoder zapcore.Encoder
	if pretty {
		encoder = zapConsoleEncoder()
	} else {
		encoder = ZapJsonEncoder()
	}
	core := zapcore.NewCore(encoder, syncer, level)
	return zap.New(core, defaultZapCoreOptions(development)...)
}

// NewWriterLogger is NewZapLogger for a plain io.Writer.
func NewWriterLogger(w io.Writer, pretty, development bool, level zapcore.LevelEnabler) *zap.Logger {
	return NewZapLogger(zapcore.AddSync(w), pretty, development, level)
}

func zapBaseEncoderConfig() zapcore.EncoderConfig {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeDuration = zapcore.SecondsDurationEncoder
	ec.TimeKey = "time"
	return ec
}

// ZapJsonEncoder encodes entries as JSON with millisecond unix timestamps.
func ZapJsonEncoder() zapcore.Encoder {
	ec := zapBaseEncoderConfig()
	ec.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		nanos := t.UnixNano()
		millis := int64(math.Trunc(float64(nanos) / float64(time.Millisecond)))
		enc.AppendInt64(millis)
	}
	return zapcore.NewJSONEncoder(ec)
}

func zapConsoleEncoder() zapcore.Encoder {
	ec := zapBaseEncoderConfig()
	ec.ConsoleSeparator = " "
	ec.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05 PM")
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}

func defaultZapCoreOptions(development bool) []zap.Option {
	var zapOpts []zap.Option
	if development {
		zapOpts = append(zapOpts, zap.AddCaller(), zap.Development())
	}
	zapOpts = append(zapOpts, zap.AddStacktrace(zap.ErrorLevel))
	return zapOpts
}

// ZapLogLevelFromString parses a level name such as "debug" or "WARNING".
func ZapLogLevelFromString(logLevel string) (zapcore.Level, error) {
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		return zapcore.DebugLevel, nil
	case "INFO":
		return zapcore.InfoLevel, nil
	case "WARNING", "WARN":
		return zapcore.WarnLevel, nil
	case "ERROR":
		return zapcore.ErrorLevel, nil
	case "FATAL":
		return zapcore.FatalLevel, nil
	case "PANIC":
		return zapcore.PanicLevel, nil
	default:
		return -1, fmt.Errorf("unknown log level: %s", logLevel)
	}
}
