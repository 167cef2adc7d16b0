package client

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"blockfall/tetris"

	"github.com/eiannone/keyboard"
)

const (
	lobbyMessage    = "(p)lay   (q)uit"
	gameOverMessage = "Game Over :)   (p)lay again   (q)uit"
)

type clientState int

const (
	lobby clientState = iota
	playing
)

type state struct {
	current clientState
	mu      sync.Mutex
}

func (s *state) get() clientState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *state) set(c clientState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = c
}

type tetrisGame interface {
	Start()
	Updates() <-chan *tetris.Tetris
	Action(tetris.Action)
	Stop()
}

type renderer interface {
	lobby(message string)
	game(*tetris.Tetris)
	music(on bool)
	reset()
}

type Client struct {
	tetris tetrisGame
	render renderer
	music  musicPlayer
	logger *slog.Logger
	kbCh   <-chan keyboard.KeyEvent
	state  *state
	wg     sync.WaitGroup
}

type Options struct {
	// Writer is where the game is drawn. Defaults to os.Stdout.
	Writer io.Writer
	// NoColor draws the game without colors.
	NoColor bool
	Tetris  tetris.Options
}

func New(l *slog.Logger, o *Options) (*Client, error) {
	w := o.Writer
	if w == nil {
		w = os.Stdout
	}
	o.Tetris.Logger = l
	width, height := o.Tetris.Size()
	r, err := newRender(w, l, width, height, o.NoColor)
	if err != nil {
		return nil, fmt.Errorf("failed to load renderer: %w", err)
	}
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	return &Client{
		tetris: tetris.NewGame(&o.Tetris),
		render: r,
		music:  newBell(w, l),
		logger: l,
		kbCh:   kb,
		state:  &state{current: lobby},
	}, nil
}

// Start shows the lobby and blocks until the player quits.
func (c *Client) Start() {
	c.render.reset()
	c.render.lobby(lobbyMessage)
	c.listenKB()
	c.tetris.Stop()
	c.wg.Wait()
}

// Close releases the keyboard.
func (c *Client) Close() {
	if err := keyboard.Close(); err != nil {
		c.logger.Error("unable to close keyboard", slog.String("error", err.Error()))
	}
}

// Gesture forwards a swipe of dx, dy to the running game. Terminals don't
// produce swipes, it's the entry point for touch front ends.
func (c *Client) Gesture(dx, dy float64) {
	if c.state.get() != playing {
		return
	}
	if a, ok := Swipe(dx, dy); ok {
		c.action(a)
	}
}

func (c *Client) listenKB() {
	for {
		event, ok := <-c.kbCh
		if !ok {
			c.logger.Error("Keyboard events channel closed unexpectedly")
			return
		}
		if event.Err != nil {
			c.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
			return
		}
		if event.Key == keyboard.KeyCtrlC || event.Key == keyboard.KeyEsc {
			return
		}
		switch c.state.get() {
		case lobby:
			switch event.Rune {
			case 'p':
				c.state.set(playing)
				c.tetris.Start()
				c.wg.Add(1)
				go c.listenTetris(c.tetris.Updates())
			case 'q':
				return
			}
		case playing:
			if a, ok := keyAction(event); ok {
				c.action(a)
			}
		}
	}
}

func (c *Client) action(a tetris.Action) {
	if a == tetris.ToggleMusic {
		c.render.music(c.music.Toggle())
		return
	}
	c.tetris.Action(a)
}

func (c *Client) listenTetris(updates <-chan *tetris.Tetris) {
	defer c.wg.Done()
	c.render.reset()
	for u := range updates {
		c.render.game(u)
		if u.Phase == tetris.GameOver {
			c.logger.Info("game over", slog.Int("score", u.Score), slog.Int("level", u.Level))
			c.state.set(lobby)
			c.render.lobby(gameOverMessage)
		}
	}
}
