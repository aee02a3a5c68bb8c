//go:build !windows && !plan9

package logging

import (
	"log/slog"

	slogjournal "github.com/systemd/slog-journal"
)

func newJournalHandler() (slog.Handler, error) {
	return slogjournal.NewHandler(&slogjournal.Options{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			a.Key = journalKey(a.Key)
			return a
		},
		ReplaceGroup: journalKey,
	})
}
