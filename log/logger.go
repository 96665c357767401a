package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Level orders verbosity from most to least chatty.
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var backendLevels = map[Level]logging.Level{
	Debug:   logging.DEBUG,
	Info:    logging.INFO,
	Notice:  logging.NOTICE,
	Warning: logging.WARNING,
	Error:   logging.ERROR,
}

func (l Level) String() string {
	return backendLevels[l.clamp()].String()
}

func (l Level) clamp() Level {
	return max(Debug, min(l, Error))
}

var (
	// Terminal output is colored; anything else gets plain lines.
	colorFormat = logging.MustStringFormatter(
		`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
	)
	plainFormat = logging.MustStringFormatter(
		`[%{time:15:04:05.000}] [%{module}] [%{level}] %{message}`,
	)

	current = Notice
)

// Logger is the subset of the go-logging API used by the viewer packages.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns a named logger. The name shows up in the [module] column.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects all loggers to sink, keeping the current level.
func SetSink(sink io.Writer) {
	format := plainFormat
	if sink == os.Stdout || sink == os.Stderr {
		format = colorFormat
	}
	backend := logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), format)
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(backendLevels[current], "")
	logging.SetBackend(leveled)
}

// SetLevel sets the verbosity for every logger. Out of range levels are
// clamped to Debug or Error.
func SetLevel(level Level) {
	current = level.clamp()
	logging.SetLevel(backendLevels[current], "")
}

// CurrentLevel returns the level set by the last SetLevel call.
func CurrentLevel() Level {
	return current
}

// ForVerbosity maps the number of -v flags to a level: none keeps Notice,
// each flag lowers it one step down to Debug.
func ForVerbosity(count int) Level {
	return (Notice - Level(count)).clamp()
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}
