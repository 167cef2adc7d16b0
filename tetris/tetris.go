// Package tetris contains the logic of the game.
package tetris

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"
)

const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// Phase is where the game is in its lifecycle.
type Phase int

const (
	Running Phase = iota
	Paused
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	case GameOver:
		return "GameOver"
	}
	return "Unknown"
}

// Options configures a new Tetris. Zero values take the defaults.
type Options struct {
	Width  int
	Height int
	// Seed for the piece generator. 0 picks a random one.
	Seed   uint64
	Logger *slog.Logger
}

// Tetris holds the whole state of a game: the board, the falling
// tetromino, score, level and phase. It isn't safe for concurrent use,
// Game serializes access to it.
type Tetris struct {
	Board *Board
	// Tetromino is the falling piece. It's nil once the game is over.
	Tetromino *Piece
	Score     int
	Level     int
	Phase     Phase

	width, height int
	draw          func() Shape
	logger        *slog.Logger
}

// Size returns the board size with the defaults applied.
func (o Options) Size() (width, height int) {
	width, height = o.Width, o.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return width, height
}

// Validate checks that every tetromino fits on the board at the spawn
// position.
func (o Options) Validate() error {
	width, height := o.Size()
	col := spawnCol(width)
	for _, s := range Shapes {
		g := catalog[s]
		if col < 0 || col+len(g[0]) > width || len(g) > height {
			return fmt.Errorf("%s doesn't fit on a %dx%d board", s, width, height)
		}
	}
	return nil
}

func spawnCol(width int) int { return width/2 - 1 }

func New(o *Options) *Tetris {
	if o == nil {
		o = &Options{}
	}
	t := &Tetris{logger: o.Logger}
	t.width, t.height = o.Size()
	if t.logger == nil {
		t.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	seed := o.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) //nolint:gosec
	}
	r := rand.New(rand.NewPCG(seed, seed>>1|1)) //nolint:gosec
	t.draw = func() Shape { return Shapes[r.IntN(len(Shapes))] }
	t.Restart()
	return t
}

// Restart resets the board, score, level and phase and spawns a tetromino.
func (t *Tetris) Restart() {
	t.Board = NewBoard(t.width, t.height)
	t.Tetromino = nil
	t.Score = 0
	t.Level = 1
	t.Phase = Running
	t.spawn()
}

func (t *Tetris) MoveLeft()  { t.shift(-1) }
func (t *Tetris) MoveRight() { t.shift(1) }

// SoftDrop moves the tetromino one row down. When it can't fall any further
// it's locked into the board and the next one spawns.
func (t *Tetris) SoftDrop() {
	if !t.playing() {
		return
	}
	t.Tetromino.Row++
	if Collides(t.Board, t.Tetromino) {
		t.Tetromino.Row--
		t.lock()
		t.spawn()
	}
}

// Rotate turns the tetromino clockwise. If the new orientation collides
// it keeps turning, up to a full turn back to where it started.
func (t *Tetris) Rotate() {
	if !t.playing() {
		return
	}
	grid := t.Tetromino.Grid
	for range 4 {
		grid = RotateClockwise(grid)
		test := &Piece{Grid: grid, Col: t.Tetromino.Col, Row: t.Tetromino.Row}
		if !Collides(t.Board, test) {
			t.Tetromino.Grid = grid
			return
		}
	}
}

// Tick drops the tetromino one row when elapsed, the time since the
// previous drop, is past the fall interval of the current level.
// It reports whether the drop timer should be reset.
func (t *Tetris) Tick(elapsed time.Duration) bool {
	if !t.playing() || elapsed <= FallInterval(t.Level) {
		return false
	}
	t.SoftDrop()
	return true
}

// TogglePause switches between Running and Paused.
func (t *Tetris) TogglePause() {
	switch t.Phase {
	case Running:
		t.Phase = Paused
	case Paused:
		t.Phase = Running
	}
	t.logger.Debug("pause toggled", slog.String("phase", t.Phase.String()))
}

// Apply performs the Action a. Actions the engine doesn't handle are ignored.
func (t *Tetris) Apply(a Action) {
	switch a {
	case MoveLeft:
		t.MoveLeft()
	case MoveRight:
		t.MoveRight()
	case SoftDrop:
		t.SoftDrop()
	case Rotate:
		t.Rotate()
	case TogglePause:
		t.TogglePause()
	}
}

// Snapshot returns a copy of the game that's safe to read concurrently.
func (t *Tetris) Snapshot() *Tetris {
	return &Tetris{
		Board:     t.Board.copy(),
		Tetromino: t.Tetromino.copy(),
		Score:     t.Score,
		Level:     t.Level,
		Phase:     t.Phase,
		width:     t.width,
		height:    t.height,
	}
}

func (t *Tetris) playing() bool {
	return t.Phase == Running && t.Tetromino != nil
}

func (t *Tetris) shift(delta int) {
	if !t.playing() {
		return
	}
	t.Tetromino.Col += delta
	if Collides(t.Board, t.Tetromino) {
		t.Tetromino.Col -= delta
	}
}

// lock moves the tetromino to the board, clears complete lines and
// updates score and level. It returns the cells written to the board.
func (t *Tetris) lock() int {
	n := t.Board.Lock(t.Tetromino)
	t.Tetromino = nil
	lines := t.Board.ClearFullLines()
	if lines > 0 {
		t.Score += lines * linePoints
		t.Level = LevelFor(t.Score)
		t.logger.Debug("lines cleared",
			slog.Int("lines", lines),
			slog.Int("score", t.Score),
			slog.Int("level", t.Level),
		)
	}
	return n
}

// spawn draws a tetromino and places it at the top center of the board.
//
// .	0 1 2 3 4 5 6 7 8 9		.	0 1 2
// 0	X X X X O O O X X X		0	O O O
// 1	X X X X X X O X X X		1	X X O
//
// If it collides and the top row is taken the game is over. Otherwise it
// is locked one row up, which only lands its bottom cells on the top row,
// and the next one is drawn.
func (t *Tetris) spawn() {
	for range t.height + 1 {
		tt := NewPiece(t.draw())
		tt.Col = spawnCol(t.width)
		tt.Row = 0
		t.Tetromino = tt
		if !Collides(t.Board, tt) {
			return
		}
		if t.Board.TopRowOccupied() {
			break
		}
		tt.Row--
		if t.lock() == 0 {
			// the board didn't change, there's no room left.
			break
		}
	}
	t.Tetromino = nil
	t.Phase = GameOver
	t.logger.Info("game over", slog.Int("score", t.Score), slog.Int("level", t.Level))
}
