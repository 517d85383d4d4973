package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tetris_webapp/internal/domain"
	"tetris_webapp/internal/game"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// всегда выдает одну и ту же фигуру
type fixedSource int

func (f fixedSource) IntN(n int) int { return int(f) % n }

type recordingSubmitter struct {
	subs []domain.ScoreSubmission
	err  error
}

func (s *recordingSubmitter) Submit(_ context.Context, sub domain.ScoreSubmission) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.subs = append(s.subs, sub)
	return int64(len(s.subs)), nil
}

// клиент без соединения: только партия и очередь исходящих сообщений
func newLoopClient(t *testing.T, sub ScoreSubmitter) *Client {
	t.Helper()
	hub := NewHub(sub, time.Hour)
	return NewClient(nil, hub, fixedSource(3))
}

func readMessage(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data := <-c.Send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	default:
		t.Fatal("no message queued")
		return Message{}
	}
}

// доводит партию до конца soft drop-ом одной и той же фигуры
func playUntilGameOver(t *testing.T, c *Client) {
	t.Helper()
	for i := 0; i < 10000 && c.session.Status() != game.StatusGameOver; i++ {
		c.handleCommand(context.Background(), Command{Type: CmdDown})
		readMessage(t, c)
	}
	require.Equal(t, game.StatusGameOver, c.session.Status())
}

func TestHandleCommand_Moves(t *testing.T) {
	c := newLoopClient(t, nil)
	ctx := context.Background()

	c.handleCommand(ctx, Command{Type: CmdLeft})
	msg := readMessage(t, c)
	require.Equal(t, "state", msg.Type)
	require.NotNil(t, msg.State.Active)
	assert.Equal(t, 3, msg.State.Active.Pos.X)

	c.handleCommand(ctx, Command{Type: CmdDown})
	msg = readMessage(t, c)
	assert.Equal(t, 1, msg.State.Score)

	c.handleCommand(ctx, Command{Type: CmdPause})
	msg = readMessage(t, c)
	assert.Equal(t, game.StatusPaused, msg.State.Status)

	c.handleCommand(ctx, Command{Type: "jump"})
	msg = readMessage(t, c)
	assert.Equal(t, "error", msg.Type)
}

func TestSubmit_OnlyAfterGameOver(t *testing.T) {
	sub := &recordingSubmitter{}
	c := newLoopClient(t, sub)

	c.handleCommand(context.Background(), Command{Type: CmdSubmit, Name: "ann"})
	msg := readMessage(t, c)
	assert.Equal(t, "error", msg.Type)
	assert.Empty(t, sub.subs)
}

func TestSubmit_AfterGameOver(t *testing.T) {
	sub := &recordingSubmitter{}
	c := newLoopClient(t, sub)
	playUntilGameOver(t, c)

	c.handleCommand(context.Background(), Command{Type: CmdSubmit, Name: "ann"})
	msg := readMessage(t, c)
	require.Equal(t, "submitted", msg.Type)
	assert.Equal(t, int64(1), msg.ID)

	require.Len(t, sub.subs, 1)
	assert.Equal(t, "ann", sub.subs[0].Name)
	assert.Equal(t, int64(c.session.Score()), *sub.subs[0].Score)

	// второй раз нельзя
	c.handleCommand(context.Background(), Command{Type: CmdSubmit, Name: "ann"})
	assert.Equal(t, "error", readMessage(t, c).Type)
	assert.Len(t, sub.subs, 1)
}

func TestSubmit_FailureKeepsGameState(t *testing.T) {
	sub := &recordingSubmitter{err: errors.New("db down")}
	c := newLoopClient(t, sub)
	playUntilGameOver(t, c)
	before := c.session.Snapshot()

	c.handleCommand(context.Background(), Command{Type: CmdSubmit, Name: "ann"})
	msg := readMessage(t, c)
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, before, c.session.Snapshot())
	assert.False(t, c.submitted)

	// повтор после восстановления проходит
	sub.err = nil
	c.handleCommand(context.Background(), Command{Type: CmdSubmit, Name: "ann"})
	assert.Equal(t, "submitted", readMessage(t, c).Type)
}

func TestReset_AllowsNewSubmission(t *testing.T) {
	sub := &recordingSubmitter{}
	c := newLoopClient(t, sub)
	playUntilGameOver(t, c)

	c.handleCommand(context.Background(), Command{Type: CmdSubmit, Name: "ann"})
	readMessage(t, c)

	c.handleCommand(context.Background(), Command{Type: CmdReset})
	msg := readMessage(t, c)
	assert.Equal(t, game.StatusRunning, msg.State.Status)
	assert.Zero(t, msg.State.Score)
	assert.False(t, c.submitted)
}

func dialPlay(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/play", NewWSHandler(hub, nil).HandlePlay())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/play"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readConn(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestPlayEndpoint(t *testing.T) {
	hub := NewHub(&recordingSubmitter{}, time.Hour)
	t.Cleanup(hub.Shutdown)
	conn := dialPlay(t, hub)

	msg := readConn(t, conn)
	require.Equal(t, "state", msg.Type)
	assert.Equal(t, game.StatusRunning, msg.State.Status)
	assert.NotNil(t, msg.State.Active)
	assert.True(t, msg.State.Next.Valid())

	require.NoError(t, conn.WriteJSON(Command{Type: CmdPause}))
	msg = readConn(t, conn)
	assert.Equal(t, game.StatusPaused, msg.State.Status)

	require.NoError(t, conn.WriteJSON(Command{Type: CmdSubmit, Name: "ann"}))
	msg = readConn(t, conn)
	assert.Equal(t, "error", msg.Type)

	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestPlayEndpoint_GravityTicks(t *testing.T) {
	hub := NewHub(nil, 5*time.Millisecond)
	t.Cleanup(hub.Shutdown)
	conn := dialPlay(t, hub)

	first := readConn(t, conn)
	require.NotNil(t, first.State.Active)

	// следующий снимок приходит сам, от часов
	next := readConn(t, conn)
	require.Equal(t, "state", next.Type)
	require.NotNil(t, next.State.Active)
	assert.Equal(t, first.State.Active.Pos.Y+1, next.State.Active.Pos.Y)
}

func TestPlayEndpoint_OriginCheck(t *testing.T) {
	h := NewWSHandler(NewHub(nil, time.Hour), []string{"https://tetris.example"})

	req := httptest.NewRequest(http.MethodGet, "/ws/play", nil)
	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, h.checkOrigin(req))

	req.Header.Set("Origin", "https://tetris.example")
	assert.True(t, h.checkOrigin(req))
}
