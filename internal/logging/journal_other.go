//go:build windows || plan9

package logging

import (
	"errors"
	"log/slog"
	"runtime"
)

func newJournalHandler() (slog.Handler, error) {
	return nil, errors.New("systemd journal is not supported on " + runtime.GOOS)
}
