package ws

import (
	"context"
	"errors"
	"testing"

	"Conquest/internal/shared/transport"
	"Conquest/modules/kit/errx"
	"Conquest/modules/kit/logx"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubConn struct {
	props map[string]any
	done  chan struct{}
}

func newStubConn() *stubConn {
	return &stubConn{props: map[string]any{}, done: make(chan struct{})}
}

func (c *stubConn) SetProperty(k string, v any) { c.props[k] = v }
func (c *stubConn) GetProperty(k string) any { return c.props[k] }
func (c *stubConn) RemoveProperty(k string) { delete(c.props, k) }
func (c *stubConn) Addr() string { return "127.0.0.1:1" }
func (c *stubConn) Push(any) error { return nil }
func (c *stubConn) CloseWithCode(int, string) {}
func (c *stubConn) Close() {}
func (c *stubConn) Done() <-chan struct{} { return c.done }

func TestRouter_未注册类型返回false(t *testing.T) {
	r := NewRouter(logx.Nop())
	if r.Dispatch(&WsMsgReq{Msg: &ClientMessage{Type: "chat"}, Conn: newStubConn()}) {
		t.Fatalf("未注册类型不应被处理")
	}
	if r.Dispatch(nil) {
		t.Fatalf("nil 请求不应被处理")
	}
}

func TestRouter_按错误类型记录biz_code(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := NewRouter(logx.NewZapLogger(zap.New(core)))

	r.Handle(MsgEndTurn, func(ctx context.Context, req *WsMsgReq) error { return nil })
	r.Handle(MsgGameAction, func(ctx context.Context, req *WsMsgReq) error {
		return errx.NewBiz("ROOM_X", "Not enough resources")
	})
	r.Handle(MsgPlayerReady, func(ctx context.Context, req *WsMsgReq) error {
		return errors.New("boom")
	})

	conn := newStubConn()
	conn.SetProperty(ConnKeyRoomCode, "ABCD1234")
	for _, typ := range []string{MsgEndTurn, MsgGameAction, MsgPlayerReady} {
		if !r.Dispatch(&WsMsgReq{Msg: &ClientMessage{Type: typ}, Conn: conn}) {
			t.Fatalf("%s 应被处理", typ)
		}
	}

	want := []int64{transport.OK, transport.ActionRejected, transport.SystemError}
	entries := logs.All()
	if len(entries) != len(want) {
		t.Fatalf("期望 %d 条 access 日志，got=%d", len(want), len(entries))
	}
	for i, e := range entries {
		fields := e.ContextMap()
		if fields["biz_code"] != want[i] {
			t.Fatalf("第 %d 条 biz_code got=%v want=%d", i, fields["biz_code"], want[i])
		}
		if fields["room_code"] != "ABCD1234" {
			t.Fatalf("access 日志缺少 room_code: %v", fields)
		}
	}
}
