package client

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"blockfall/tetris"

	"github.com/eiannone/keyboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTetris struct {
	updateCh chan *tetris.Tetris
	starts   int
	actions  []tetris.Action
	stop     sync.Once
	mu       sync.Mutex
}

func newMockTetris() *mockTetris {
	return &mockTetris{updateCh: make(chan *tetris.Tetris)}
}

func (m *mockTetris) Updates() <-chan *tetris.Tetris { return m.updateCh }
func (m *mockTetris) Stop()                          { m.stop.Do(func() { close(m.updateCh) }) }

func (m *mockTetris) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.starts++
}

func (m *mockTetris) Action(a tetris.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = append(m.actions, a)
}

func (m *mockTetris) get() (int, []tetris.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.starts, append([]tetris.Action(nil), m.actions...)
}

type mockRender struct {
	lobbies []string
	games   int
	musicOn bool
	mu      sync.Mutex
}

func (m *mockRender) reset() {}

func (m *mockRender) lobby(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lobbies = append(m.lobbies, message)
}

func (m *mockRender) game(*tetris.Tetris) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games++
}

func (m *mockRender) music(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.musicOn = on
}

type mockMusic struct{ playing bool }

func (m *mockMusic) Toggle() bool { m.playing = !m.playing; return m.playing }

func testClient() (*Client, *mockTetris, *mockRender, chan keyboard.KeyEvent) {
	tts := newMockTetris()
	render := &mockRender{}
	kCh := make(chan keyboard.KeyEvent)
	return &Client{
		tetris: tts,
		render: render,
		music:  &mockMusic{},
		logger: slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})),
		kbCh:   kCh,
		state:  &state{current: lobby},
	}, tts, render, kCh
}

// barrier is a key with no action. Once it's received every key
// sent before it has been handled.
var barrier = keyboard.KeyEvent{Rune: 'x'}

func TestClient(t *testing.T) {
	cl, tts, render, kCh := testClient()
	done := make(chan struct{})
	go func() { cl.Start(); close(done) }()

	// keys don't reach the game from the lobby.
	kCh <- keyboard.KeyEvent{Key: keyboard.KeyArrowLeft}
	kCh <- barrier
	starts, actions := tts.get()
	assert.Equal(t, 0, starts)
	assert.Empty(t, actions)

	// 'p' starts a game.
	kCh <- keyboard.KeyEvent{Rune: 'p'}
	kCh <- barrier
	starts, _ = tts.get()
	assert.Equal(t, 1, starts)
	assert.Equal(t, playing, cl.state.get())

	// while in game, keys should direct to tetris actions.
	keys := []keyboard.KeyEvent{
		{Key: keyboard.KeyArrowLeft},
		{Key: keyboard.KeyArrowRight},
		{Key: keyboard.KeyArrowDown},
		{Key: keyboard.KeyArrowUp},
		{Key: keyboard.KeySpace},
		{Rune: 'm'},
	}
	for _, k := range keys {
		kCh <- k
	}
	kCh <- barrier
	_, actions = tts.get()
	assert.Equal(t, []tetris.Action{
		tetris.MoveLeft,
		tetris.MoveRight,
		tetris.SoftDrop,
		tetris.Rotate,
		tetris.TogglePause,
	}, actions)
	render.mu.Lock()
	assert.True(t, render.musicOn, "wanted music to be on")
	render.mu.Unlock()

	// every update is rendered, game over goes back to the lobby.
	tts.updateCh <- &tetris.Tetris{Phase: tetris.Running}
	tts.updateCh <- &tetris.Tetris{Phase: tetris.GameOver}
	require.Eventually(t, func() bool { return cl.state.get() == lobby }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		render.mu.Lock()
		defer render.mu.Unlock()
		return render.games == 2 && len(render.lobbies) == 2
	}, time.Second, 5*time.Millisecond)
	render.mu.Lock()
	assert.Equal(t, []string{lobbyMessage, gameOverMessage}, render.lobbies)
	render.mu.Unlock()

	// 'q' quits from the lobby.
	kCh <- keyboard.KeyEvent{Rune: 'q'}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("wanted Start() to return after 'q'")
	}
}

func TestClientQuitsOnCtrlC(t *testing.T) {
	cl, _, _, kCh := testClient()
	done := make(chan struct{})
	go func() { cl.Start(); close(done) }()
	kCh <- keyboard.KeyEvent{Rune: 'p'}
	kCh <- keyboard.KeyEvent{Key: keyboard.KeyCtrlC}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("wanted Start() to return after ctrl+c")
	}
}

func TestGesture(t *testing.T) {
	cl, tts, _, _ := testClient()

	cl.Gesture(120, 0)
	_, actions := tts.get()
	assert.Empty(t, actions, "gestures are ignored in the lobby")

	cl.state.set(playing)
	cl.Gesture(120, 10)
	cl.Gesture(10, 20)
	cl.Gesture(-5, -90)
	_, actions = tts.get()
	assert.Equal(t, []tetris.Action{tetris.MoveRight, tetris.Rotate}, actions)
}
