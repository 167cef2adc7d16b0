package tetris

import "slices"

// Board is the playfield of locked cells.
// Rows go from 0 at the top to height-1 at the bottom and
// columns from 0 on the left to width-1 on the right.
type Board struct {
	width, height int
	rows          [][]bool
}

func NewBoard(width, height int) *Board {
	b := &Board{width: width, height: height, rows: make([][]bool, height)}
	for i := range b.rows {
		b.rows[i] = make([]bool, width)
	}
	return b
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// Occupied reports whether a piece cell can't be at col, row.
// The side walls and the floor count as occupied. Anything above
// the board is open space so pieces can rotate right after spawning.
func (b *Board) Occupied(col, row int) bool {
	if col < 0 || col >= b.width || row >= b.height {
		return true
	}
	if row < 0 {
		return false
	}
	return b.rows[row][col]
}

// Set marks a cell as occupied. Cells outside the board are ignored
// and report false.
func (b *Board) Set(col, row int) bool {
	if col < 0 || col >= b.width || row < 0 || row >= b.height {
		return false
	}
	b.rows[row][col] = true
	return true
}

// Lock merges the filled cells of p into the board and returns how many
// cells landed on it. The caller must have checked p doesn't collide.
func (b *Board) Lock(p *Piece) int {
	var n int
	for y, r := range p.Grid {
		for x, c := range r {
			if c && b.Set(p.Col+x, p.Row+y) {
				n++
			}
		}
	}
	return n
}

// ClearFullLines removes every complete row, shifting the rows above down
// and adding empty rows at the top. It returns the number of rows removed.
func (b *Board) ClearFullLines() int {
	var cleared int
	for row := b.height - 1; row >= 0; {
		if !b.full(row) {
			row--
			continue
		}
		// the row above is now at this index, so we check it again.
		b.rows = slices.Delete(b.rows, row, row+1)
		b.rows = slices.Insert(b.rows, 0, make([]bool, b.width))
		cleared++
	}
	return cleared
}

// TopRowOccupied reports whether any cell of the first row is set.
func (b *Board) TopRowOccupied() bool {
	return b.height > 0 && slices.Contains(b.rows[0], true)
}

// Cells returns a copy of the grid that is safe to keep.
func (b *Board) Cells() [][]bool {
	return copyGrid(b.rows)
}

func (b *Board) full(row int) bool {
	return len(b.rows[row]) > 0 && !slices.Contains(b.rows[row], false)
}

func (b *Board) copy() *Board {
	if b == nil {
		return nil
	}
	return &Board{width: b.width, height: b.height, rows: copyGrid(b.rows)}
}
