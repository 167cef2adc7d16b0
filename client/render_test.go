package client

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"blockfall/tetris"

	approvals "github.com/approvals/go-approval-tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRender(t *testing.T) (*render, *strings.Builder) {
	t.Helper()
	w := &strings.Builder{}
	r, err := newRender(w, slog.New(slog.NewTextHandler(io.Discard, nil)), 10, 20, true)
	require.NoError(t, err)
	return r, w
}

// cursorCodes strips the cursor and clearing sequences around every frame.
var cursorCodes = strings.NewReplacer(resetPos, "", clearScreen, "", clearBelow, "")

func TestMain(m *testing.M) {
	approvals.UseFolder("testdata")
	os.Exit(m.Run())
}

func TestRenderLobby(t *testing.T) {
	r, w := testRender(t)
	r.lobby(lobbyMessage)
	approvals.VerifyString(t, cursorCodes.Replace(w.String()))
}

func TestRenderGame(t *testing.T) {
	r, w := testRender(t)
	r.game(tetris.NewTestTetris(tetris.T))
	approvals.VerifyString(t, cursorCodes.Replace(w.String()))
}

func TestRenderPaused(t *testing.T) {
	r, w := testRender(t)
	tts := tetris.NewTestTetris(tetris.T)
	tts.TogglePause()
	r.game(tts)
	approvals.VerifyString(t, cursorCodes.Replace(w.String()))
}

func TestRenderLockedCells(t *testing.T) {
	r, w := testRender(t)
	tts := tetris.NewTestTetris(tetris.O)
	tts.Board.Set(0, 19)
	tts.Board.Set(1, 19)
	tts.Score = 2300
	tts.Level = 3
	r.game(tts)
	approvals.VerifyString(t, cursorCodes.Replace(w.String()))
}

func TestRenderFrame(t *testing.T) {
	r, w := testRender(t)
	r.music(true)
	out := w.String()
	assert.True(t, strings.HasPrefix(out, resetPos), "every frame starts at the top left corner")
	assert.True(t, strings.HasSuffix(out, clearBelow), "every frame clears what's left below")
	assert.Contains(t, out, "Music: on")
	assert.NotContains(t, out, "\n\n", "every new line should carry a carriage return")
	assert.Equal(t, strings.Count(out, "\n"), strings.Count(out, "\r\n"))
}

func TestRows(t *testing.T) {
	r, _ := testRender(t)
	tts := tetris.NewTestTetris(tetris.I)
	tts.Board.Set(9, 19)
	rows := r.rows(tts)
	require.Len(t, rows, 20)
	assert.Equal(t, " . . . .[][][][] . .", rows[0])
	assert.Equal(t, " . . . . . . . . .[]", rows[19])
	assert.Equal(t, strings.Repeat(emptyCell, 10), rows[10])
}
