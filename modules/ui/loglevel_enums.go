package ui

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

var logLevelNames = []string{"Trace", "Debug", "Info", "Warn", "Error", "Fatal", "Panic"}

func (i LogLevel) String() string {
	if i < 0 || int(i) >= len(logLevelNames) {
		return fmt.Sprintf("LogLevel(%d)", i)
	}
	return logLevelNames[i]
}

// LogLevelString parses a level name case insensitively
func LogLevelString(s string) (LogLevel, error) {
	for i, name := range logLevelNames {
		if strings.EqualFold(name, s) {
			return LogLevel(i), nil
		}
	}
	return 0, fmt.Errorf("%s does not belong to LogLevel values", s)
}

func LogLevelStrings() []string {
	names := make([]string, len(logLevelNames))
	copy(names, logLevelNames)
	return names
}

func (i LogLevel) zerolog() zerolog.Level {
	switch i {
	case LevelTrace:
		return zerolog.TraceLevel
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelFatal:
		return zerolog.FatalLevel
	case LevelPanic:
		return zerolog.PanicLevel
	}
	return zerolog.NoLevel
}
