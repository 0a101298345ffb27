package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/jrick/logrotate/rotator"
	"github.com/pkg/errors"
)

const (
	defaultThresholdKB = 10 * 1000 // 10 MB logs by default.
	defaultMaxRolls    = 8         // keep 8 last logs by default.
)

// Backend is a logging backend. Subsystem loggers created from the backend
// write to the backend's writers. Writes are serialized with a mutex, so a
// Backend is safe for use from multiple goroutines.
type Backend struct {
	mutex   sync.Mutex
	writers []backendWriter
}

type backendWriter struct {
	writer   io.WriteCloser
	logLevel Level
}

// NewBackend creates a new logger backend with no writers attached
func NewBackend() *Backend {
	return &Backend{}
}

// AddLogWriter attaches an io.WriteCloser which the backend will write into
// every log entry at or above the given level
func (b *Backend) AddLogWriter(writer io.WriteCloser, logLevel Level) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.writers = append(b.writers, backendWriter{writer: writer, logLevel: logLevel})
}

// AddLogFile attaches a rotating log file which the backend will write into
// every log entry at or above the given level. The file and its directory
// are created if they don't exist.
func (b *Backend) AddLogFile(logFile string, logLevel Level) error {
	logDir, _ := filepath.Split(logFile)
	// If logDir is empty then logFile is in the cwd and there's no need to
	// create any directory.
	if logDir != "" {
		err := os.MkdirAll(logDir, 0700)
		if err != nil {
			return errors.Wrapf(err, "failed to create log directory %s", logDir)
		}
	}
	r, err := rotator.New(logFile, defaultThresholdKB, false, defaultMaxRolls)
	if err != nil {
		return errors.Wrapf(err, "failed to create file rotator for %s", logFile)
	}
	b.AddLogWriter(r, logLevel)
	return nil
}

// write sends a formatted log entry to every writer whose level allows it
func (b *Backend) write(logLevel Level, entry []byte) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	for _, writer := range b.writers {
		if logLevel >= writer.logLevel {
			_, _ = writer.writer.Write(entry)
		}
	}
}

// Close finalizes all writers attached to this backend
func (b *Backend) Close() {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	for _, writer := range b.writers {
		_ = writer.writer.Close()
	}
	b.writers = nil
}
