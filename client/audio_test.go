package client

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBell(t *testing.T) {
	w := &strings.Builder{}
	b := newBell(w, slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.True(t, b.Toggle())
	assert.Equal(t, "\a", w.String())
	assert.False(t, b.Toggle())
	assert.Equal(t, "\a", w.String(), "stopping the music is silent")
}
