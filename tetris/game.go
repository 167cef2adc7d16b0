package tetris

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	MoveLeft    Action = "left"   // Moves the Tetromino one step to the left.
	MoveRight   Action = "right"  // Moves the Tetromino one step to the right.
	SoftDrop    Action = "down"   // Moves the Tetromino one step down, locking it if blocked.
	Rotate      Action = "rotate" // Rotates the Tetromino clockwise.
	TogglePause Action = "pause"  // Pauses or resumes the game.
	ToggleMusic Action = "music"  // Plays or stops the background music. Not handled by the engine.
)

// frameRate is how often the game checks if the tetromino has to fall.
const frameRate = 20 * time.Millisecond

type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) *wrappedTicker {
	t := &wrappedTicker{ticker: time.NewTicker(d)}
	t.ticker.Stop()
	return t
}

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

// Game drives a Tetris. Frame ticks and player actions go through a single
// goroutine so they never see the state half way through a move.
type Game struct {
	tetris *Tetris
	ticker Ticker
	now    func() time.Time
	logger *slog.Logger

	// guarded by mu, replaced on every Start.
	mu       sync.Mutex
	id       string
	actionCh chan Action
	updateCh chan *Tetris
	doneCh   chan struct{}
	exitCh   chan struct{}
}

func NewGame(o *Options) *Game {
	return NewConfigurableGame(newWrappedTicker(frameRate), time.Now, o)
}

func NewConfigurableGame(ticker Ticker, now func() time.Time, o *Options) *Game {
	if o == nil {
		o = &Options{}
	}
	return newGame(New(o), ticker, now, o.Logger)
}

func newGame(t *Tetris, ticker Ticker, now func() time.Time, l *slog.Logger) *Game {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Game{
		tetris: t,
		ticker: ticker,
		now:    now,
		logger: l,
	}
}

// Start begins a new game. The first update is the freshly spawned tetromino.
func (g *Game) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.exitCh != nil {
		select {
		case <-g.exitCh:
		default:
			// a game is still running, stop it before starting over.
			close(g.doneCh)
			<-g.exitCh
		}
	}
	g.id = uuid.NewString()
	g.actionCh = make(chan Action)
	g.updateCh = make(chan *Tetris)
	g.doneCh = make(chan struct{})
	g.exitCh = make(chan struct{})
	g.tetris.logger = g.logger.With(slog.String("game", g.id))
	g.tetris.Restart()
	g.logger.Info("game started", slog.String("game", g.id))
	go g.listen(g.actionCh, g.updateCh, g.doneCh, g.exitCh)
}

// Stop ends the running game. The update channel is closed.
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.exitCh == nil {
		return
	}
	select {
	case <-g.exitCh:
	default:
		close(g.doneCh)
		<-g.exitCh
	}
}

// Action sends a to the running game. It's dropped if the game is over or
// replaced by a new one before it's received.
func (g *Game) Action(a Action) {
	g.mu.Lock()
	actionCh, exitCh := g.actionCh, g.exitCh
	g.mu.Unlock()
	if exitCh == nil {
		return
	}
	select {
	case actionCh <- a:
	case <-exitCh:
	}
}

// Updates returns the channel with a snapshot of the game after every change.
// It's closed after the game over snapshot or when the game is stopped.
func (g *Game) Updates() <-chan *Tetris {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.updateCh
}

// ID identifies the current game in the logs.
func (g *Game) ID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.id
}

func (g *Game) listen(actionCh <-chan Action, updateCh chan<- *Tetris, doneCh, exitCh chan struct{}) {
	defer close(exitCh)
	defer close(updateCh)
	defer g.ticker.Stop()

	lastDrop := g.now()
	g.ticker.Reset(frameRate)
	if !g.publish(updateCh, doneCh) {
		return
	}
	for {
		select {
		case now := <-g.ticker.C():
			if g.tetris.Phase == Paused {
				// the drop timer doesn't run while paused.
				lastDrop = now
				continue
			}
			if !g.tetris.Tick(now.Sub(lastDrop)) {
				continue
			}
			lastDrop = now
		case a := <-actionCh:
			g.tetris.Apply(a)
		case <-doneCh:
			g.tetris.logger.Debug("game stopped")
			return
		}
		if !g.publish(updateCh, doneCh) {
			return
		}
		if g.tetris.Phase == GameOver {
			return
		}
	}
}

func (g *Game) publish(updateCh chan<- *Tetris, doneCh chan struct{}) bool {
	select {
	case updateCh <- g.tetris.Snapshot():
		return true
	case <-doneCh:
		return false
	}
}
