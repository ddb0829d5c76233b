// Package main реализует точку входа службы заметок.
package main

import (
	"fmt"
	"os"
	"strings"

	"notesapp/pkg/logger"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
	ErrSyncLogger = "failed to sync logger"
)

func main() {
	err := rootCmd.Execute()

	syncLogger(logger.Log(rootCmd.Context()))

	if err != nil {
		os.Exit(1)
	}
}

func syncLogger(log *logger.Logger) {
	if err := log.Sync(); err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
			return
		}
		_, _ = fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err)
	}
}
