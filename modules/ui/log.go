package ui

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Console output goes to stderr, stdout is reserved for the generated document
var console io.Writer = colorable.NewColorableStderr()

func init() {
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: "15:04:05.000",
	})
	pterm.SetDefaultOutput(console)
	pterm.PrintDebugMessages = true
}

type LogLevel int

const (
	LevelTrace LogLevel = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
	LevelPanic
)

var (
	outputMutex sync.Mutex

	logLevel    = LevelInfo
	clearneeded bool

	Zerotime  bool
	starttime = time.Now()
)

func SetLoglevel(i LogLevel) {
	logLevel = i
}

func GetLoglevel() LogLevel {
	return logLevel
}

var (
	logfile       *os.File
	logfileinit   bool // stop buffering, SetLogFile has been called
	logfilebuffer *bytes.Buffer
	logfilelevel  = LevelInfo
	filelog       zerolog.Logger
)

// SetLogFile starts JSON logging to path. Anything logged before the first call is buffered and
// flushed into the file. An empty path discards the buffer and disables file logging.
func SetLogFile(path string, i LogLevel) error {
	outputMutex.Lock()
	defer outputMutex.Unlock()

	logfileinit = true

	if logfile != nil {
		logfile.Close()
		logfile = nil
	}

	if path == "" {
		logfilebuffer = nil
		return nil
	}

	os.MkdirAll(filepath.Dir(path), 0755)

	var err error
	logfile, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open logfile %s: %s", path, err)
	}

	logfilelevel = i
	filelog = zerolog.New(logfile)

	if logfilebuffer != nil {
		io.Copy(logfile, logfilebuffer)
		logfilebuffer = nil
	}

	return nil
}

type Logger struct {
	ll    LogLevel
	pterm pterm.PrefixPrinter
}

func timestamp() string {
	if Zerotime {
		elapsed := time.Since(starttime)
		return fmt.Sprintf("%02d:%02d:%02d.%03d", int(elapsed.Hours()), int(elapsed.Minutes())%60, int(elapsed.Seconds())%60, elapsed.Milliseconds()%1000)
	}
	return time.Now().Format("15:04:05.000")
}

// clearLine wipes a progress bar off the console, callers hold outputMutex
func clearLine() {
	if clearneeded {
		pterm.Fprinto(console, strings.Repeat(" ", pterm.GetTerminalWidth()))
		pterm.Fprinto(console)
		clearneeded = false
	}
}

func (t Logger) Msgf(format string, args ...any) {
	if logLevel > t.ll && (logfileinit && logfilelevel > t.ll) {
		return
	}

	outputMutex.Lock()

	timetext := timestamp()

	if logfileinit {
		if logfile != nil && logfilelevel <= t.ll {
			filelog.WithLevel(t.ll.zerolog()).Str("time", timetext).Msgf(format, args...)
		}
	} else if logLevel <= t.ll {
		if logfilebuffer == nil {
			logfilebuffer = bytes.NewBuffer(nil)
			filelog = zerolog.New(logfilebuffer)
		}
		filelog.WithLevel(t.ll.zerolog()).Str("time", timetext).Msgf(format, args...)
	}

	if logLevel <= t.ll {
		clearLine()
		tprefix := pterm.DefaultBasicText.Sprint(timetext + " ")
		pterm.Fprint(console, tprefix+t.pterm.Sprintfln(format, args...))
	}

	if t.ll == LevelFatal {
		if logfile != nil {
			logfile.Close()
		}
		os.Exit(1)
	}
	outputMutex.Unlock()

	if t.ll == LevelPanic {
		panic(fmt.Sprintf(format, args...))
	}
}

func (t Logger) Msg(msg string) Logger {
	t.Msgf("%s", msg)
	return t
}

func (t Logger) Err(e error) Logger {
	if logLevel <= t.ll {
		t.Msgf("Error: %v", e.Error())
	}
	return t
}

func Trace() Logger {
	return Logger{
		LevelTrace,
		pterm.PrefixPrinter{
			MessageStyle: &pterm.ThemeDefault.InfoMessageStyle,
			Prefix: pterm.Prefix{
				Style: &pterm.Style{pterm.FgCyan},
				Text:  "TRACE",
			},
		},
	}
}

func Debug() Logger {
	return Logger{LevelDebug, pterm.Debug}
}

func Info() Logger {
	return Logger{
		LevelInfo,
		pterm.PrefixPrinter{
			MessageStyle: &pterm.ThemeDefault.InfoMessageStyle,
			Prefix: pterm.Prefix{
				Style: &pterm.ThemeDefault.InfoPrefixStyle,
				Text:  "INFORMA",
			},
		},
	}
}

func Warn() Logger {
	return Logger{
		LevelWarn,
		pterm.PrefixPrinter{
			MessageStyle: &pterm.ThemeDefault.WarningMessageStyle,
			Prefix: pterm.Prefix{
				Style: &pterm.ThemeDefault.WarningPrefixStyle,
				Text:  "WARNING",
			},
		},
	}
}

func Error() Logger {
	return Logger{LevelError, pterm.Error}
}

func Fatal() Logger {
	return Logger{LevelFatal, pterm.Fatal}
}
