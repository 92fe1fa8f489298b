package utils

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logLevelDebugStringConstant          = "debug"
	logLevelInfoStringConstant           = "info"
	logLevelWarnStringConstant           = "warn"
	logLevelErrorStringConstant          = "error"
	logFormatStructuredStringConstant    = "structured"
	logFormatConsoleStringConstant       = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
	logFileMaximumSizeMegabytesConstant  = 5
	logFileMaximumBackupsConstant        = 3
	logFileMaximumAgeDaysConstant        = 30
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

// LoggerOptions configures logger construction.
type LoggerOptions struct {
	Level    LogLevel
	Format   LogFormat
	FilePath string
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct {
	homeExpander *HomeExpander
}

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

// NewLoggerFactory constructs a new logger factory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{homeExpander: NewHomeExpander()}
}

// CreateLogger produces a zap.Logger writing to standard error with the requested level and format.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	return factory.CreateLoggerWithOptions(LoggerOptions{Level: requestedLogLevel, Format: requestedLogFormat})
}

// CreateLoggerWithOptions produces a zap.Logger and, when FilePath is set, tees every entry at debug level
// as JSON into a size-rotated log file.
func (factory *LoggerFactory) CreateLoggerWithOptions(options LoggerOptions) (*zap.Logger, error) {
	zapLogLevel, levelExists := logLevelMapping[LogLevel(strings.ToLower(string(options.Level)))]
	if !levelExists {
		return nil, fmt.Errorf(unsupportedLogLevelTemplateConstant, options.Level)
	}

	encoderConfiguration := zap.NewProductionEncoderConfig()
	encoderConfiguration.EncodeTime = zapcore.ISO8601TimeEncoder

	var standardErrorEncoder zapcore.Encoder
	switch LogFormat(strings.ToLower(string(options.Format))) {
	case LogFormatStructured:
		standardErrorEncoder = zapcore.NewJSONEncoder(encoderConfiguration)
	case LogFormatConsole:
		standardErrorEncoder = zapcore.NewConsoleEncoder(encoderConfiguration)
	default:
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, options.Format)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(standardErrorEncoder, zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(zapLogLevel)),
	}

	trimmedFilePath := strings.TrimSpace(options.FilePath)
	if len(trimmedFilePath) > 0 {
		rotatingWriter := &lumberjack.Logger{
			Filename:   factory.homeExpander.Expand(trimmedFilePath),
			MaxSize:    logFileMaximumSizeMegabytesConstant,
			MaxBackups: logFileMaximumBackupsConstant,
			MaxAge:     logFileMaximumAgeDaysConstant,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfiguration), zapcore.AddSync(rotatingWriter), zap.NewAtomicLevelAt(zapcore.DebugLevel)))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}
