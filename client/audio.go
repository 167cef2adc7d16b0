package client

import (
	"fmt"
	"io"
	"log/slog"
)

type musicPlayer interface {
	Toggle() bool
}

// bell is the background music of a terminal: it rings when the music
// starts and keeps quiet when it stops.
type bell struct {
	writer  io.Writer
	logger  *slog.Logger
	playing bool
}

func newBell(w io.Writer, l *slog.Logger) *bell {
	return &bell{writer: w, logger: l}
}

// Toggle starts or stops the music and reports whether it's playing.
func (b *bell) Toggle() bool {
	b.playing = !b.playing
	if b.playing {
		if _, err := fmt.Fprint(b.writer, "\a"); err != nil {
			b.logger.Error("unable to ring the bell", slog.String("error", err.Error()))
		}
	}
	b.logger.Debug("music toggled", slog.Bool("playing", b.playing))
	return b.playing
}
