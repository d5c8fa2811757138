package logging

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// LogFilePath builds <logsDir>/<appName>.<YYYYMMDD_HHMMSS>.log.
func LogFilePath(logsDir, appName string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", appName, sessionStart.Format("20060102_150405")),
	)
}

// OpenSessionLog creates logsDir if needed and opens the session log for
// appending. A file already at that path is moved aside to <path>.old.
func OpenSessionLog(logsDir, appName string, sessionStart time.Time) (*os.File, string, error) {
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create logs directory: %w", err)
	}

	path := LogFilePath(logsDir, appName, sessionStart)
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, path+".old"); err != nil {
			return nil, "", fmt.Errorf("failed to rotate log file: %w", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, "", fmt.Errorf("failed to stat log file: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open log file: %w", err)
	}
	return f, path, nil
}
