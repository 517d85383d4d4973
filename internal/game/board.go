package game

// поле: Rows строк по Cols клеток, нулевое значение - пустое поле
type Board [Rows][Cols]PieceKind

// заполнена ли строка целиком
func (b *Board) RowFull(y int) bool {
	for _, cell := range b[y] {
		if cell == KindNone {
			return false
		}
	}
	return true
}

// количество занятых клеток, удобно для проверок
func (b *Board) Filled() int {
	n := 0
	for y := range b {
		for _, cell := range b[y] {
			if cell != KindNone {
				n++
			}
		}
	}
	return n
}

// LockAndClear stamps the piece into a copy of board and removes every full
// row in one pass. Rows above the removed ones shift down and empty rows are
// added on top, so the result always has Rows rows. Piece cells outside the
// board (negative rows) are dropped.
func LockAndClear(board Board, piece ActivePiece) (Board, int) {
	stamped := board
	for dy, row := range piece.Shape {
		for dx, filled := range row {
			if !filled {
				continue
			}
			x := piece.Pos.X + dx
			y := piece.Pos.Y + dy
			if y < 0 || y >= Rows || x < 0 || x >= Cols {
				continue
			}
			stamped[y][x] = piece.Kind
		}
	}

	var out Board
	cleared := 0
	dst := Rows - 1
	for y := Rows - 1; y >= 0; y-- {
		if stamped.RowFull(y) {
			cleared++
			continue
		}
		out[dst] = stamped[y]
		dst--
	}
	return out, cleared
}
