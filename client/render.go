package client

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"text/template"

	"blockfall/tetris"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	resetPos    = "\033[H"  // Reset cursor position to 0,0
	clearScreen = "\033[2J" // Clear the whole screen
	clearBelow  = "\033[J"  // Clear from the cursor to the end of the screen

	filledCell = "[]"
	emptyCell  = " ."
)

// lockedColor paints the cells of the board. Locked cells lose the
// color of the tetromino they came from.
var lockedColor = lipgloss.Color("#607d8b")

//go:embed "layout.tmpl"
var layout string

type templateData struct {
	Tetris  *tetris.Tetris
	Message string
	Music   bool
}

type render struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template
	styles   *lipgloss.Renderer
	// updates and key presses render from different goroutines.
	mu sync.Mutex
	*templateData
}

func newRender(w io.Writer, l *slog.Logger, width, height int, noColor bool) (*render, error) {
	r := &render{
		writer: w,
		logger: l,
		styles: lipgloss.NewRenderer(w),
		templateData: &templateData{
			// the lobby shows an empty board until the first game starts.
			Tetris: &tetris.Tetris{Board: tetris.NewBoard(width, height), Level: 1},
		},
	}
	if noColor {
		r.styles.SetColorProfile(termenv.Ascii)
	}
	tmp, err := r.loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	r.template = tmp
	return r, nil
}

func (r *render) lobby(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Message = message
	r.execute()
}

func (r *render) game(t *tetris.Tetris) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Tetris = t
	switch t.Phase {
	case tetris.Paused:
		r.Message = "Paused, (p) to resume"
	default:
		r.Message = ""
	}
	r.execute()
}

func (r *render) music(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Music = on
	r.execute()
}

func (r *render) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.writer, clearScreen)
}

func (r *render) execute() {
	fmt.Fprint(r.writer, resetPos)
	if err := r.template.Execute(r.writer, r.templateData); err != nil {
		r.logger.Error("unable to execute template", slog.String("error", err.Error()))
	}
	fmt.Fprint(r.writer, clearBelow)
}

func (r *render) loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"rows":   r.rows,
		"border": border,
	}

	// we use the console raw so new lines don't automatically transform into carriage return
	// to fix that we add a carriage return to every new line in the layout.
	l := strings.ReplaceAll(layout, "\n", "\r\n")
	l = strings.ReplaceAll(l, "Terminal Tetris", r.styles.NewStyle().Bold(true).Render("Terminal Tetris"))
	return template.New("layout").Funcs(funcMap).Parse(l)
}

// rows renders the board with the current tetromino on top, one string per row.
func (r *render) rows(t *tetris.Tetris) []string {
	cells := t.Board.Cells()
	painted := make([][]string, len(cells))
	for y, row := range cells {
		painted[y] = make([]string, len(row))
		for x, c := range row {
			painted[y][x] = emptyCell
			if c {
				painted[y][x] = r.cell(lockedColor)
			}
		}
	}

	// renders the current tetromino if exist
	if tt := t.Tetromino; tt != nil {
		color := lipgloss.Color(tt.Shape.Color())
		for iy, y := range tt.Grid {
			for ix, x := range y {
				row, col := tt.Row+iy, tt.Col+ix
				if x && row >= 0 && row < len(painted) && col >= 0 && col < len(painted[row]) {
					painted[row][col] = r.cell(color)
				}
			}
		}
	}

	rendered := make([]string, len(painted))
	for i := range painted {
		rendered[i] = strings.Join(painted[i], "")
	}
	return rendered
}

func (r *render) cell(c lipgloss.Color) string {
	return r.styles.NewStyle().Foreground(c).Reverse(true).Render(filledCell)
}

func border(t *tetris.Tetris) string {
	return "+" + strings.Repeat("-", t.Board.Width()*len(filledCell)) + "+"
}
