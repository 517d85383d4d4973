package ws

import (
	"context"
	"encoding/json"
	"time"

	"tetris_webapp/internal/domain"
	"tetris_webapp/internal/game"
	"tetris_webapp/internal/logger"
	"tetris_webapp/internal/metrics"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait     = 10 * time.Second
	pongWait      = 30 * time.Second
	pingPeriod    = 25 * time.Second
	submitTimeout = 5 * time.Second
)

// команды от клиента
const (
	CmdLeft   = "left"
	CmdRight  = "right"
	CmdDown   = "down"
	CmdRotate = "rotate"
	CmdPause  = "pause"
	CmdReset  = "reset"
	CmdSubmit = "submit"
)

type Command struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

// сообщения клиенту
type Message struct {
	Type  string         `json:"type"`
	State *game.Snapshot `json:"state,omitempty"`
	ID    int64          `json:"id,omitempty"`
	Error string         `json:"error,omitempty"`
}

// Client - одно соединение и одна партия. Партией владеет только loop,
// команды и шаги часов идут через него по очереди
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
	Hub  *Hub

	commands  chan Command
	session   *game.Session
	clock     *game.Clock
	submitted bool
}

// rng == nil - обычная случайность
func NewClient(conn *websocket.Conn, hub *Hub, rng game.RandomSource) *Client {
	session := game.NewSession(rng)
	return &Client{
		ID:       uuid.New().String(),
		Conn:     conn,
		Send:     make(chan []byte, 256),
		Hub:      hub,
		commands: make(chan Command, 64),
		session:  session,
		clock:    game.NewClock(session),
	}
}

// Run обслуживает соединение до его закрытия или остановки hub
func (c *Client) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.Hub.register(c)
	defer c.Hub.unregister(c)

	log := logger.With("session", c.ID)
	log.Info("play session opened")
	metrics.GamesStarted.Inc()

	go c.writePump(ctx)
	go c.readPump(ctx, cancel)

	c.loop(ctx)
	log.Info("play session closed", "score", c.session.Score(), "status", c.session.Status())
}

func (c *Client) loop(ctx context.Context) {
	ticker := time.NewTicker(c.Hub.FrameInterval)
	defer ticker.Stop()

	c.pushState()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-c.commands:
			c.handleCommand(ctx, cmd)
		case now := <-ticker.C:
			if r, stepped := c.clock.Frame(now); stepped {
				c.afterStep(r)
				c.pushState()
			}
		}
	}
}

func (c *Client) handleCommand(ctx context.Context, cmd Command) {
	switch cmd.Type {
	case CmdLeft:
		c.session.MoveLeft()
	case CmdRight:
		c.session.MoveRight()
	case CmdDown:
		c.afterStep(c.session.SoftDrop())
	case CmdRotate:
		c.session.Rotate()
	case CmdPause:
		c.session.TogglePause()
		c.clock.Reset()
	case CmdReset:
		c.session.Reset()
		c.clock.Reset()
		c.submitted = false
		metrics.GamesStarted.Inc()
	case CmdSubmit:
		c.submit(ctx, cmd.Name)
		return
	default:
		c.send(Message{Type: "error", Error: "unknown command"})
		return
	}
	c.pushState()
}

func (c *Client) afterStep(r game.StepResult) {
	if r.LinesCleared > 0 {
		metrics.LinesCleared.Add(float64(r.LinesCleared))
	}
	if r.GameOver {
		metrics.GamesOver.Inc()
		logger.Info("game over", "session", c.ID, "score", c.session.Score(), "lines", c.session.Lines())
	}
}

// отправка результата в таблицу рекордов. ошибка не трогает партию,
// можно повторить
func (c *Client) submit(ctx context.Context, name string) {
	if c.session.Status() != game.StatusGameOver {
		c.send(Message{Type: "error", Error: "game is not over"})
		return
	}
	if c.submitted {
		c.send(Message{Type: "error", Error: "score already submitted"})
		return
	}
	if c.Hub.Leaderboard == nil {
		c.send(Message{Type: "error", Error: "leaderboard unavailable"})
		return
	}

	ctx, cancel := context.WithTimeout(ctx, submitTimeout)
	defer cancel()

	score := int64(c.session.Score())
	id, err := c.Hub.Leaderboard.Submit(ctx, domain.ScoreSubmission{
		Name:  name,
		Score: &score,
		Level: c.session.Level(),
		Lines: c.session.Lines(),
	})
	if err != nil {
		logger.Warn("score submit failed", "session", c.ID, "error", err)
		c.send(Message{Type: "error", Error: err.Error()})
		return
	}

	c.submitted = true
	c.send(Message{Type: "submitted", ID: id})
}

func (c *Client) pushState() {
	snap := c.session.Snapshot()
	c.send(Message{Type: "state", State: &snap})
}

func (c *Client) send(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Error("encode message failed", "session", c.ID, "error", err)
		return
	}
	select {
	case c.Send <- data:
	default:
		// клиент не успевает читать, следующий снимок все равно придет
		logger.Warn("send buffer full, message dropped", "session", c.ID, "type", msg.Type)
	}
}

// read
func (c *Client) readPump(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()

	c.Conn.SetReadLimit(1024)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("play read failed", "session", c.ID, "error", err)
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			c.send(Message{Type: "error", Error: "bad command"})
			continue
		}

		select {
		case c.commands <- cmd:
		case <-ctx.Done():
			return
		}
	}
}

// write
func (c *Client) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case msg := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Warn("play write failed", "session", c.ID, "error", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-ctx.Done():
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.Conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
