package game

// размеры поля
const (
	Rows = 20
	Cols = 10
)

// каждые 10 линий - новый уровень
const LinesPerLevel = 10

// очки за одновременно снятые линии (0-4), умножаются на (level + 1)
var Scoring = [...]int{0, 40, 100, 300, 1200}

type Status string

const (
	StatusRunning  Status = "running"
	StatusPaused   Status = "paused"
	StatusGameOver Status = "game_over"
)

// источник случайности для выбора следующей фигуры,
// *rand.Rand из math/rand/v2 подходит, в тестах подставляется фиксированная последовательность
type RandomSource interface {
	IntN(n int) int
}

// результат шага вниз (гравитация или soft drop)
type StepResult struct {
	Moved        bool `json:"moved"`
	Locked       bool `json:"locked"`
	LinesCleared int  `json:"lines_cleared"`
	GameOver     bool `json:"game_over"`
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// падающая фигура. заменяется целиком при каждом движении
type ActivePiece struct {
	Kind  PieceKind `json:"kind"`
	Shape Shape     `json:"shape"`
	Pos   Position  `json:"pos"`
}

// снимок состояния для отрисовки
type Snapshot struct {
	Board       Board        `json:"board"`
	Active      *ActivePiece `json:"active,omitempty"`
	Ghost       *Position    `json:"ghost,omitempty"`
	Next        PieceKind    `json:"next"`
	NextPattern string       `json:"next_pattern"`
	Score       int          `json:"score"`
	Level       int          `json:"level"`
	Lines       int          `json:"lines"`
	Status      Status       `json:"status"`
}
