package game

import (
	"math/rand/v2"
	"time"
)

// Session is a single-player game: the board, the falling piece, the queued
// next piece and the counters. It is not safe for concurrent use; the owner
// serializes commands and clock steps.
type Session struct {
	board  Board
	active *ActivePiece
	next   PieceKind
	score  int
	level  int
	lines  int
	status Status
	rng    RandomSource
}

// создает новую партию и сразу выставляет первую фигуру.
// rng == nil - случайность от текущего времени
func NewSession(rng RandomSource) *Session {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	s := &Session{rng: rng}
	s.Reset()
	return s
}

// Reset clears the board and counters, draws a fresh next piece and spawns.
func (s *Session) Reset() {
	s.board = Board{}
	s.active = nil
	s.score = 0
	s.level = 0
	s.lines = 0
	s.status = StatusRunning
	s.next = s.randomKind()
	s.spawn()
}

func (s *Session) randomKind() PieceKind {
	return allKinds[s.rng.IntN(len(allKinds))]
}

// Spawn promotes the next piece when there is no active piece and the game
// is not over. Returns true if a piece was installed.
func (s *Session) Spawn() bool {
	if s.active != nil || s.status == StatusGameOver {
		return false
	}
	return s.spawn()
}

func (s *Session) spawn() bool {
	kind := s.next
	s.next = s.randomKind()

	shape := ShapeOf(kind)
	pos := Position{X: Cols/2 - shape.Width()/2, Y: 0}

	// фигура не помещается - конец игры, активной фигуры нет
	if Collides(&s.board, shape, pos) {
		s.active = nil
		s.status = StatusGameOver
		return false
	}

	s.active = &ActivePiece{Kind: kind, Shape: shape, Pos: pos}
	return true
}

// Move shifts the active piece by (dx, dy) if the target is free. A
// successful soft-drop step down is worth one point.
func (s *Session) Move(dx, dy int, softDrop bool) bool {
	if s.status != StatusRunning || s.active == nil {
		return false
	}

	pos := Position{X: s.active.Pos.X + dx, Y: s.active.Pos.Y + dy}
	if Collides(&s.board, s.active.Shape, pos) {
		return false
	}

	s.active = &ActivePiece{Kind: s.active.Kind, Shape: s.active.Shape, Pos: pos}
	if softDrop && dy > 0 {
		s.score++
	}
	return true
}

func (s *Session) MoveLeft() bool  { return s.Move(-1, 0, false) }
func (s *Session) MoveRight() bool { return s.Move(1, 0, false) }

// Rotate turns the active piece clockwise in place. A rotation that would
// collide is rejected; there are no wall or floor kicks.
func (s *Session) Rotate() bool {
	if s.status != StatusRunning || s.active == nil {
		return false
	}

	rotated := RotateCW(s.active.Shape)
	if Collides(&s.board, rotated, s.active.Pos) {
		return false
	}

	s.active = &ActivePiece{Kind: s.active.Kind, Shape: rotated, Pos: s.active.Pos}
	return true
}

// Tick is one gravity step.
func (s *Session) Tick() StepResult {
	return s.drop(false)
}

// SoftDrop is a player-requested step down, scored per row.
func (s *Session) SoftDrop() StepResult {
	return s.drop(true)
}

func (s *Session) drop(softDrop bool) StepResult {
	if s.status != StatusRunning || s.active == nil {
		return StepResult{}
	}
	if s.Move(0, 1, softDrop) {
		return StepResult{Moved: true}
	}
	return s.lock()
}

// фиксирует фигуру, снимает линии, начисляет очки и выставляет следующую
func (s *Session) lock() StepResult {
	board, cleared := LockAndClear(s.board, *s.active)
	s.board = board

	// очки считаются по уровню до пересчета
	s.score += Scoring[cleared] * (s.level + 1)
	s.lines += cleared
	s.level = s.lines / LinesPerLevel

	s.active = nil
	s.spawn()

	return StepResult{
		Locked:       true,
		LinesCleared: cleared,
		GameOver:     s.status == StatusGameOver,
	}
}

// TogglePause switches between running and paused. No effect after game over.
func (s *Session) TogglePause() Status {
	switch s.status {
	case StatusRunning:
		s.status = StatusPaused
	case StatusPaused:
		s.status = StatusRunning
	}
	return s.status
}

func (s *Session) Status() Status  { return s.status }
func (s *Session) Score() int      { return s.score }
func (s *Session) Level() int      { return s.level }
func (s *Session) Lines() int      { return s.lines }
func (s *Session) Next() PieceKind { return s.next }
func (s *Session) Board() Board    { return s.board }

// копия активной фигуры, nil если фигуры нет
func (s *Session) Active() *ActivePiece {
	if s.active == nil {
		return nil
	}
	return &ActivePiece{Kind: s.active.Kind, Shape: s.active.Shape.Clone(), Pos: s.active.Pos}
}

// строка, на которую упадет фигура, если отпустить ее вниз. Ничего не меняет
func (s *Session) ghost() *Position {
	if s.active == nil {
		return nil
	}
	pos := s.active.Pos
	for !Collides(&s.board, s.active.Shape, Position{X: pos.X, Y: pos.Y + 1}) {
		pos.Y++
	}
	return &pos
}

// Snapshot returns a read-only copy of everything the presentation draws.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Board:       s.board,
		Active:      s.Active(),
		Ghost:       s.ghost(),
		Next:        s.next,
		NextPattern: PatternOf(s.next),
		Score:       s.score,
		Level:       s.level,
		Lines:       s.lines,
		Status:      s.status,
	}
}
