// Package logx is the structured logger shared by every package in the
// module. The package-level functions write through a default logger
// configured from the environment.
package logx

import (
	"context"
	"fmt"
	"io"
)

var defaultLogger = NewLogger(LoadFromEnv())

func SetDefaultLogger(logger *Logger) { defaultLogger = logger }
func GetDefaultLogger() *Logger       { return defaultLogger }
func SetLevel(level Level)            { defaultLogger.SetLevel(level) }
func SetOutput(w io.Writer)           { defaultLogger.SetOutput(w) }

func Trace(msg string) { defaultLogger.log(LevelTrace, msg, nil, nil) }
func Debug(msg string) { defaultLogger.log(LevelDebug, msg, nil, nil) }
func Info(msg string)  { defaultLogger.log(LevelInfo, msg, nil, nil) }
func Warn(msg string)  { defaultLogger.log(LevelWarn, msg, nil, nil) }
func Error(msg string) { defaultLogger.log(LevelError, msg, nil, nil) }

func Fatal(msg string) {
	defaultLogger.log(LevelFatal, msg, nil, nil)
	defaultLogger.exitFunc(1)
}

func Debugf(format string, args ...any) { Debug(fmt.Sprintf(format, args...)) }
func Infof(format string, args ...any)  { Info(fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { Warn(fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { Error(fmt.Sprintf(format, args...)) }
func Fatalf(format string, args ...any) { Fatal(fmt.Sprintf(format, args...)) }

func WithFields(fields Fields) *Entry        { return defaultLogger.WithFields(fields) }
func WithField(key string, v any) *Entry     { return defaultLogger.WithField(key, v) }
func WithError(err error) *Entry             { return defaultLogger.WithError(err) }
func WithContext(ctx context.Context) *Entry { return newEntry(defaultLogger).WithContext(ctx) }
