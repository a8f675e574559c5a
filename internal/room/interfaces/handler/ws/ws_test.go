package ws

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	roomactor "Conquest/internal/room/actor"
	"Conquest/internal/room/actors"
	"Conquest/internal/shared/session"
	"Conquest/internal/shared/transport/ws"
	"Conquest/modules/kit/logx"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T) (*httptest.Server, *roomactor.Runtime) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rt := roomactor.NewRuntime(actors.Deps{
		Registry: session.NewRegistry(nil),
		Options:  actors.RoomOptions{EnforceTurnOrder: true},
	}, time.Second)
	t.Cleanup(rt.Shutdown)

	h := NewWsHandler(rt, nil, ws.Options{}, logx.Nop())
	engine := gin.New()
	h.RegisterRoutes(engine.Group(""))

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv, rt
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", path, err)
	}
	t.Cleanup(func() { _ = c.Close() })
	_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
	return c
}

func readType(t *testing.T, c *websocket.Conn) string {
	t.Helper()
	var msg map[string]any
	if err := c.ReadJSON(&msg); err != nil {
		t.Fatalf("读取消息失败: %v", err)
	}
	s, _ := msg["type"].(string)
	return s
}

func expectClose(t *testing.T, c *websocket.Conn, code int) *websocket.CloseError {
	t.Helper()
	for {
		_, _, err := c.ReadMessage()
		if err == nil {
			continue
		}
		var ce *websocket.CloseError
		if !errors.As(err, &ce) {
			t.Fatalf("期望关闭帧 %d, got err=%v", code, err)
		}
		if ce.Code != code {
			t.Fatalf("关闭码不符: got=%d want=%d text=%q", ce.Code, code, ce.Text)
		}
		return ce
	}
}

func TestWs_连通性探测(t *testing.T) {
	srv, _ := newTestServer(t)
	c := dial(t, srv, "/ws/test/test")

	var msg map[string]string
	if err := c.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if msg["message"] != "Test connection successful" {
		t.Fatalf("探测消息不符: %v", msg)
	}
	expectClose(t, c, websocket.CloseNormalClosure)
}

func TestWs_未知房间或玩家以1008关闭(t *testing.T) {
	srv, rt := newTestServer(t)

	c := dial(t, srv, "/ws/NOPE0000/someone")
	if ce := expectClose(t, c, websocket.ClosePolicyViolation); ce.Text != "Room not found" {
		t.Fatalf("关闭原因不符: %q", ce.Text)
	}

	created, err := rt.CreateRoom(context.Background(), "alice")
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	c2 := dial(t, srv, "/ws/"+created.RoomCode+"/ghost")
	if ce := expectClose(t, c2, websocket.ClosePolicyViolation); ce.Text != "Player not in room" {
		t.Fatalf("关闭原因不符: %q", ce.Text)
	}
}

func TestWs_连接后收到快照并能准备(t *testing.T) {
	srv, rt := newTestServer(t)
	created, err := rt.CreateRoom(context.Background(), "alice")
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	c := dial(t, srv, "/ws/"+created.RoomCode+"/"+created.PlayerID)
	if got := readType(t, c); got != "room_state" {
		t.Fatalf("第一条应为 room_state, got=%q", got)
	}
	if got := readType(t, c); got != "player_joined" {
		t.Fatalf("第二条应为 player_joined, got=%q", got)
	}

	if err := c.WriteJSON(map[string]any{"type": "player_ready", "ready": true}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if got := readType(t, c); got != "player_ready_update" {
		t.Fatalf("期望 player_ready_update, got=%q", got)
	}

	// 单人房间不能开局，end_turn 只回复失败
	if err := c.WriteJSON(map[string]any{"type": "end_turn"}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var res map[string]any
	if err := c.ReadJSON(&res); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if res["type"] != "action_result" || res["success"] != false {
		t.Fatalf("期望失败的 action_result, got=%v", res)
	}
}

func TestWs_坏消息以1003断开(t *testing.T) {
	srv, rt := newTestServer(t)
	created, err := rt.CreateRoom(context.Background(), "alice")
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	c := dial(t, srv, "/ws/"+created.RoomCode+"/"+created.PlayerID)
	_ = readType(t, c)
	_ = readType(t, c)

	if err := c.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	expectClose(t, c, websocket.CloseUnsupportedData)

	// 断开只影响这一条连接，房间仍在
	if _, err := rt.GetRoom(context.Background(), created.RoomCode); err != nil {
		t.Fatalf("房间应保留: %v", err)
	}
}

func TestWs_未知消息类型以1003断开(t *testing.T) {
	srv, rt := newTestServer(t)
	created, err := rt.CreateRoom(context.Background(), "alice")
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	c := dial(t, srv, "/ws/"+created.RoomCode+"/"+created.PlayerID)
	_ = readType(t, c)
	_ = readType(t, c)

	if err := c.WriteJSON(map[string]any{"type": "teleport"}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	expectClose(t, c, websocket.CloseUnsupportedData)
}
