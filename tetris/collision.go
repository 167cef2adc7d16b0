package tetris

// Collides reports whether p overlaps a wall, the floor or a locked cell.
func Collides(b *Board, p *Piece) bool {
	return CollidesAt(b, p, 0, 0)
}

// CollidesAt is Collides for p moved by dCol columns and dRow rows.
// p itself is not modified.
//
//	.	0 1 2 3 4 5 6 7 8 9		.	0 1 2
//	0	X X X X O O O X X X		0	O O O
//	1	X X X X O X X X X X		1	O X X
//	2	X X X X C X X X X X
//
// the J above collides with C when moved with dRow 1.
func CollidesAt(b *Board, p *Piece, dCol, dRow int) bool {
	for y, r := range p.Grid {
		for x, c := range r {
			// we only care about the filled cells of the tetromino.
			if c && b.Occupied(p.Col+x+dCol, p.Row+y+dRow) {
				return true
			}
		}
	}
	return false
}
