package tetris

// Shape identifies the catalog entry a piece was drawn from.
// Rotation changes the Grid but never the Shape.
type Shape string

const (
	I Shape = "I"
	O Shape = "O"
	Z Shape = "Z"
	S Shape = "S"
	L Shape = "L"
	J Shape = "J"
	T Shape = "T"
)

// Shapes is the catalog in draw order.
var Shapes = []Shape{I, O, Z, S, L, J, T}

/*
.	I			O		Z		S

.	0 1 2 3		0 1		0 1 2	0 1 2

0	O O O O		O O		O O X	X O O

1				O O		X O O	O O X

.	L			J		T

.	0 1 2		0 1 2	0 1 2

0	O O O		O O O	O O O

1	X X O		O X X	X O X
*/
var catalog = map[Shape][][]bool{
	I: {
		{true, true, true, true},
	},
	O: {
		{true, true},
		{true, true},
	},
	Z: {
		{true, true, false},
		{false, true, true},
	},
	S: {
		{false, true, true},
		{true, true, false},
	},
	L: {
		{true, true, true},
		{false, false, true},
	},
	J: {
		{true, true, true},
		{true, false, false},
	},
	T: {
		{true, true, true},
		{false, true, false},
	},
}

// Piece is the falling tetromino. Col and Row are the board coordinates
// of the top-left cell of Grid.
type Piece struct {
	Grid  [][]bool
	Col   int
	Row   int
	Shape Shape
}

// NewPiece returns a piece with its own copy of the catalog grid for s.
func NewPiece(s Shape) *Piece {
	return &Piece{
		Grid:  copyGrid(catalog[s]),
		Shape: s,
	}
}

func (p *Piece) copy() *Piece {
	if p == nil {
		return nil
	}
	return &Piece{
		Grid:  copyGrid(p.Grid),
		Col:   p.Col,
		Row:   p.Row,
		Shape: p.Shape,
	}
}

// RotateClockwise returns a new grid turned 90 degrees clockwise.
// A grid with R rows and C columns becomes C rows and R columns.
//
//	0 1 2		0 1
//	O O O	>	O O		0
//	O X X		X O		1
//				X O		2
func RotateClockwise(grid [][]bool) [][]bool {
	rows := len(grid)
	if rows == 0 {
		return nil
	}
	rotated := make([][]bool, len(grid[0]))
	for x := range rotated {
		rotated[x] = make([]bool, rows)
	}
	for y, r := range grid {
		for x, c := range r {
			rotated[x][rows-1-y] = c
		}
	}
	return rotated
}

func copyGrid(grid [][]bool) [][]bool {
	c := make([][]bool, len(grid))
	for i := range grid {
		c[i] = make([]bool, len(grid[i]))
		copy(c[i], grid[i])
	}
	return c
}
