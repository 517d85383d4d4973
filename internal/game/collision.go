package game

// Collides reports whether shape placed at pos leaves the board horizontally,
// drops below the last row or overlaps a locked cell. Cells above the board
// (y < 0) are only checked against the side walls.
func Collides(board *Board, shape Shape, pos Position) bool {
	for dy, row := range shape {
		for dx, filled := range row {
			if !filled {
				continue
			}

			x := pos.X + dx
			y := pos.Y + dy

			if x < 0 || x >= Cols || y >= Rows {
				return true
			}
			if y >= 0 && board[y][x] != KindNone {
				return true
			}
		}
	}
	return false
}

// RotateCW returns shape turned 90 degrees clockwise: transpose, then reverse
// every row. Rectangular shapes swap their dimensions.
func RotateCW(shape Shape) Shape {
	if len(shape) == 0 {
		return Shape{}
	}

	rows, cols := len(shape), len(shape[0])
	rotated := make(Shape, cols)
	for i := range rotated {
		rotated[i] = make([]bool, rows)
		for j := 0; j < rows; j++ {
			rotated[i][j] = shape[rows-1-j][i]
		}
	}
	return rotated
}
