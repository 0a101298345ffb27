package logger

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// timestampFormat is the format of the timestamp prefixing every log entry
const timestampFormat = "2006-01-02 15:04:05.000"

var (
	backendLog = NewBackend()

	subsystemsMutex sync.Mutex
	subsystems      = make(map[string]*Logger)
)

// Logger writes log entries for a particular subsystem to the package
// backend. A tag describes the subsystem and is included in all entries.
// Loggers start at the off level; InitLogStdout or SetLogLevels turns
// them on.
type Logger struct {
	level   uint32 // Level, accessed atomically
	tag     string
	backend *Backend
}

// RegisterSubSystem returns the logger for the given subsystem tag,
// creating it if it doesn't exist yet
func RegisterSubSystem(tag string) *Logger {
	subsystemsMutex.Lock()
	defer subsystemsMutex.Unlock()
	if log, ok := subsystems[tag]; ok {
		return log
	}
	log := &Logger{level: uint32(LevelOff), tag: tag, backend: backendLog}
	subsystems[tag] = log
	return log
}

// InitLogStdout attaches stdout to the package backend and enables every
// registered subsystem at the given level
func InitLogStdout(logLevel Level) {
	backendLog.AddLogWriter(os.Stdout, logLevel)
	SetLogLevels(logLevel)
}

// InitLogFile attaches a rotating log file to the package backend and
// enables every registered subsystem at the given level
func InitLogFile(logFile string, logLevel Level) error {
	err := backendLog.AddLogFile(logFile, logLevel)
	if err != nil {
		return err
	}
	SetLogLevels(logLevel)
	return nil
}

// SetLogLevels sets the level of every registered subsystem logger
func SetLogLevels(logLevel Level) {
	subsystemsMutex.Lock()
	defer subsystemsMutex.Unlock()
	for _, log := range subsystems {
		log.SetLevel(logLevel)
	}
}

// BackendLog returns the package backend, so callers can close it on exit
func BackendLog() *Backend {
	return backendLog
}

// Level returns the current logging level of this logger
func (l *Logger) Level() Level {
	return Level(atomic.LoadUint32(&l.level))
}

// SetLevel sets the logging level of this logger
func (l *Logger) SetLevel(logLevel Level) {
	atomic.StoreUint32(&l.level, uint32(logLevel))
}

// Backend returns the backend this logger writes to
func (l *Logger) Backend() *Backend {
	return l.backend
}

func (l *Logger) write(logLevel Level, format string, args ...interface{}) {
	if logLevel < l.Level() {
		return
	}
	message := format
	if len(args) != 0 {
		message = fmt.Sprintf(format, args...)
	}
	entry := fmt.Sprintf("%s [%s] %s: %s\n",
		time.Now().Format(timestampFormat), logLevel, l.tag, message)
	l.backend.write(logLevel, []byte(entry))
}

// Tracef formats a message according to a format specifier and writes it
// with the trace level
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.write(LevelTrace, format, args...)
}

// Debugf formats a message according to a format specifier and writes it
// with the debug level
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.write(LevelDebug, format, args...)
}

// Infof formats a message according to a format specifier and writes it
// with the info level
func (l *Logger) Infof(format string, args ...interface{}) {
	l.write(LevelInfo, format, args...)
}

// Warnf formats a message according to a format specifier and writes it
// with the warn level
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.write(LevelWarn, format, args...)
}

// Errorf formats a message according to a format specifier and writes it
// with the error level
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.write(LevelError, format, args...)
}

// Criticalf formats a message according to a format specifier and writes it
// with the critical level
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.write(LevelCritical, format, args...)
}
