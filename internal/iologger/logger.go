// Package iologger sets up the default slog logger of GNpin.
// This is an impure I/O package.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gnames/gnpin/pkg/config"
)

// LogFile is the name of the log file in the log directory.
const LogFile = "gnpin.log"

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init makes a logger from cfg the default slog logger. Logs with
// "file" destination go to LogFile in logDir, which is truncated unless
// append is true. A log file opened by a previous Init is closed.
func Init(logDir string, cfg config.LogConfig, append bool) error {
	mu.Lock()
	defer mu.Unlock()

	w, err := openWriter(logDir, cfg.Destination, append)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(newHandler(w, cfg)))
	return nil
}

// Close closes the log file, if any. Logs after Close go to stderr.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	return swapFile(nil)
}

func openWriter(logDir, destination string, append bool) (io.Writer, error) {
	switch destination {
	case "stdout":
		return os.Stdout, swapFile(nil)
	case "file":
	default:
		return os.Stderr, swapFile(nil)
	}

	path := filepath.Join(logDir, LogFile)
	flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if append {
		flag = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return nil, CreateLogFileError(path, err)
	}
	return f, swapFile(f)
}

// swapFile keeps f as the current log file and closes the previous one.
func swapFile(f *os.File) error {
	prev := logFile
	logFile = f
	if prev == nil {
		return nil
	}
	return prev.Close()
}

func newHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: level(cfg.Level)}
	if cfg.Format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func level(s string) slog.Level {
	var res slog.Level
	if err := res.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return res
}
