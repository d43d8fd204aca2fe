package logger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrLogDirEmpty is returned by NewDailyFile when no directory is given.
var ErrLogDirEmpty = errors.New("log directory cannot be empty")

// DailyFile is an io.Writer appending to <dir>/<name>.YYYY-MM-DD and
// switching to a new file when the date changes. Safe for concurrent use.
type DailyFile struct {
	dir  string
	name string
	now  func() time.Time

	mu   sync.Mutex
	day  string
	file *os.File
}

// DailyFileOption configures a DailyFile.
type DailyFileOption func(*DailyFile)

// WithClock overrides the time source used to pick the file date.
func WithClock(now func() time.Time) DailyFileOption {
	return func(f *DailyFile) {
		if now != nil {
			f.now = now
		}
	}
}

// NewDailyFile creates the directory if needed and opens today's file.
func NewDailyFile(dir, name string, opts ...DailyFileOption) (*DailyFile, error) {
	if dir == "" {
		return nil, ErrLogDirEmpty
	}
	if name == "" {
		name = "app.log"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %q: %w", dir, err)
	}

	f := &DailyFile{dir: dir, name: name, now: time.Now}
	for _, opt := range opts {
		opt(f)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.rotate(f.now().Format(time.DateOnly)); err != nil {
		return nil, err
	}
	return f, nil
}

// Write appends p to the file for the current date.
func (f *DailyFile) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if day := f.now().Format(time.DateOnly); day != f.day || f.file == nil {
		if err := f.rotate(day); err != nil {
			return 0, err
		}
	}
	return f.file.Write(p)
}

// Path returns the path of the file currently written to.
func (f *DailyFile) Path() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.path(f.day)
}

// Close flushes and closes the current file.
func (f *DailyFile) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}

// rotate must be called with f.mu held.
func (f *DailyFile) rotate(day string) error {
	file, err := os.OpenFile(f.path(day), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	if f.file != nil {
		_ = f.file.Close()
	}
	f.file = file
	f.day = day
	return nil
}

func (f *DailyFile) path(day string) string {
	return filepath.Join(f.dir, f.name+"."+day)
}
