package game

// тип фигуры, он же метка занятой клетки поля. пустая клетка - KindNone
type PieceKind string

const (
	KindNone PieceKind = ""
	KindI    PieceKind = "I"
	KindJ    PieceKind = "J"
	KindL    PieceKind = "L"
	KindO    PieceKind = "O"
	KindS    PieceKind = "S"
	KindT    PieceKind = "T"
	KindZ    PieceKind = "Z"
)

// матрица занятых клеток фигуры, строки сверху вниз
type Shape [][]bool

type Piece struct {
	Kind    PieceKind
	Shape   Shape
	Pattern string
}

var allKinds = []PieceKind{KindI, KindJ, KindL, KindO, KindS, KindT, KindZ}

var pieces = map[PieceKind]Piece{
	KindI: {Kind: KindI, Pattern: "block-pattern-1", Shape: parseShape(
		"....",
		"####",
		"....",
		"....",
	)},
	KindJ: {Kind: KindJ, Pattern: "block-pattern-2", Shape: parseShape(
		"#..",
		"###",
		"...",
	)},
	KindL: {Kind: KindL, Pattern: "block-pattern-3", Shape: parseShape(
		"..#",
		"###",
		"...",
	)},
	KindO: {Kind: KindO, Pattern: "block-pattern-1", Shape: parseShape(
		"##",
		"##",
	)},
	KindS: {Kind: KindS, Pattern: "block-pattern-2", Shape: parseShape(
		".##",
		"##.",
		"...",
	)},
	KindT: {Kind: KindT, Pattern: "block-pattern-3", Shape: parseShape(
		".#.",
		"###",
		"...",
	)},
	KindZ: {Kind: KindZ, Pattern: "block-pattern-1", Shape: parseShape(
		"##.",
		".##",
		"...",
	)},
}

func parseShape(rows ...string) Shape {
	shape := make(Shape, len(rows))
	for y, row := range rows {
		shape[y] = make([]bool, len(row))
		for x, c := range row {
			shape[y][x] = c == '#'
		}
	}
	return shape
}

// все 7 фигур в фиксированном порядке
func AllKinds() []PieceKind {
	out := make([]PieceKind, len(allKinds))
	copy(out, allKinds)
	return out
}

// базовая форма фигуры (копия, можно менять)
func ShapeOf(kind PieceKind) Shape {
	p, ok := pieces[kind]
	if !ok {
		return nil
	}
	return p.Shape.Clone()
}

// метка оформления для клиента
func PatternOf(kind PieceKind) string {
	return pieces[kind].Pattern
}

func (k PieceKind) Valid() bool {
	_, ok := pieces[k]
	return ok
}

func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	out := make(Shape, len(s))
	for y := range s {
		out[y] = append([]bool(nil), s[y]...)
	}
	return out
}

func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for y := range s {
		if len(s[y]) != len(other[y]) {
			return false
		}
		for x := range s[y] {
			if s[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}
