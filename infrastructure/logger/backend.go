package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jrick/logrotate/rotator"
	"github.com/pkg/errors"
)

const normalLogSize = 512

// defaultFlags specifies changes to the default logger behavior. It is
// configured using the LDBVIEW_LOGFLAGS environment variable. New logger
// backends can override these default flags using NewBackendWithFlags.
var defaultFlags = getDefaultFlags()

// Flags to modify Backend's behavior.
const (
	// LogFlagLongFile modifies the logger output to include full path and line number
	// of the logging callsite, e.g. /a/b/c/main.go:123.
	LogFlagLongFile uint32 = 1 << iota

	// LogFlagShortFile modifies the logger output to include filename and line number
	// of the logging callsite, e.g. main.go:123. takes precedence over LogFlagLongFile.
	LogFlagShortFile
)

// Read logger flags from the LDBVIEW_LOGFLAGS environment variable. Multiple
// flags can be set at once, separated by commas.
func getDefaultFlags() (flags uint32) {
	for _, f := range strings.Split(os.Getenv("LDBVIEW_LOGFLAGS"), ",") {
		switch f {
		case "longfile":
			flags |= LogFlagLongFile
		case "shortfile":
			flags |= LogFlagShortFile
		}
	}
	return
}

const (
	defaultThresholdKB = 10 * 1000 // 10 MB logs by default.
	defaultMaxRolls    = 4         // keep 4 last logs by default.
)

// Backend is a logging backend. Subsystems created from the backend write to
// the backend's writers. Writes happen synchronously on the caller's
// goroutine and are serialized by the backend, so a subsystem logger never
// outlives the call that produced the entry.
type Backend struct {
	flag    uint32
	mu      sync.Mutex
	writers []logWriter
	closed  bool
}

// NewBackendWithFlags configures a Backend to use the specified flags rather than using
// the package's defaults as determined through the LDBVIEW_LOGFLAGS environment
// variable.
func NewBackendWithFlags(flags uint32) *Backend {
	return &Backend{flag: flags}
}

// NewBackend creates a new logger backend.
func NewBackend() *Backend {
	return NewBackendWithFlags(defaultFlags)
}

type logWriter interface {
	io.WriteCloser
	LogLevel() Level
}

type logWriterWrap struct {
	io.WriteCloser
	logLevel Level
}

func (lw logWriterWrap) LogLevel() Level {
	return lw.logLevel
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// AddLogFile adds a file which the log will write into on a certain
// log level with the default log rotation settings. It'll create the file if it doesn't exist.
func (b *Backend) AddLogFile(logFile string, logLevel Level) error {
	return b.AddLogFileWithCustomRotator(logFile, logLevel, defaultThresholdKB, defaultMaxRolls)
}

// AddLogWriter adds a writer which the log will write into on a certain log
// level. Writers that are also io.Closers are closed together with the backend.
func (b *Backend) AddLogWriter(writer io.Writer, logLevel Level) error {
	writeCloser, ok := writer.(io.WriteCloser)
	if !ok {
		writeCloser = nopCloser{writer}
	}
	return b.addWriter(logWriterWrap{WriteCloser: writeCloser, logLevel: logLevel})
}

// AddLogFileWithCustomRotator adds a file which the log will write into on a certain
// log level, with the specified log rotation settings.
// It'll create the file if it doesn't exist.
func (b *Backend) AddLogFileWithCustomRotator(logFile string, logLevel Level, thresholdKB int64, maxRolls int) error {
	logDir, _ := filepath.Split(logFile)
	// if the logDir is empty then `logFile` is in the cwd and there's no need to create any directory.
	if logDir != "" {
		err := os.MkdirAll(logDir, 0700)
		if err != nil {
			return errors.Errorf("failed to create log directory: %+v", err)
		}
	}
	r, err := rotator.New(logFile, thresholdKB, false, maxRolls)
	if err != nil {
		return errors.Errorf("failed to create file rotator: %s", err)
	}
	return b.addWriter(logWriterWrap{WriteCloser: r, logLevel: logLevel})
}

func (b *Backend) addWriter(writer logWriter) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return errors.New("the logger backend is closed")
	}
	b.writers = append(b.writers, writer)
	return nil
}

// HasWriters returns true if at least one writer was attached to the backend.
// Loggers skip formatting entirely while this is false.
func (b *Backend) HasWriters() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return !b.closed && len(b.writers) > 0
}

func (b *Backend) write(level Level, entry []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	for _, writer := range b.writers {
		if level >= writer.LogLevel() {
			_, _ = writer.Write(entry)
		}
	}
}

// Close finalizes all log rotators for this backend. Entries written after
// Close are dropped.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, writer := range b.writers {
		_ = writer.Close()
	}
	b.writers = nil
}

// Logger returns a new logger for a particular subsystem that writes to the
// Backend b. A tag describes the subsystem and is included in all log
// messages. The logger is off until its level is changed.
func (b *Backend) Logger(subsystemTag string) *Logger {
	return &Logger{level: uint32(LevelOff), tag: subsystemTag, b: b}
}
