package session

import (
	"sync"
	"testing"
	"time"

	"Conquest/internal/shared/transport/ws"
)

type fakeConn struct {
	mu      sync.Mutex
	addr    string
	pushErr error
	pushed  []any
	closed  bool
	code    int
	done    chan struct{}
	once    sync.Once
}

func newFakeConn(addr string) *fakeConn {
	return &fakeConn{addr: addr, done: make(chan struct{})}
}

func (c *fakeConn) SetProperty(string, any) {}
func (c *fakeConn) GetProperty(string) any { return nil }
func (c *fakeConn) RemoveProperty(string) {}
func (c *fakeConn) Addr() string { return c.addr }

func (c *fakeConn) Push(msg any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pushErr != nil {
		return c.pushErr
	}
	c.pushed = append(c.pushed, msg)
	return nil
}

func (c *fakeConn) CloseWithCode(code int, _ string) {
	c.mu.Lock()
	c.code = code
	c.mu.Unlock()
	c.Close()
}

func (c *fakeConn) Close() {
	c.once.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		close(c.done)
	})
}

func (c *fakeConn) Done() <-chan struct{} { return c.done }

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pushed)
}

func TestRegistry_广播失败只摘除故障连接(t *testing.T) {
	r := NewRegistry(nil)
	good1, bad, good2 := newFakeConn("a"), newFakeConn("b"), newFakeConn("c")
	bad.pushErr = ws.ErrSendBufferFull

	r.Register("ROOM1", good1)
	r.Register("ROOM1", bad)
	r.Register("ROOM1", good2)

	if n := r.Broadcast("ROOM1", "hello"); n != 2 {
		t.Fatalf("期望投递 2 条，got=%d", n)
	}
	if good1.count() != 1 || good2.count() != 1 {
		t.Fatalf("正常连接都应收到消息 good1=%d good2=%d", good1.count(), good2.count())
	}
	if r.Count("ROOM1") != 2 {
		t.Fatalf("故障连接应被摘除，count=%d", r.Count("ROOM1"))
	}
	if !bad.closed {
		t.Fatalf("故障连接应被关闭")
	}
}

func TestRegistry_房间之间互不影响(t *testing.T) {
	r := NewRegistry(nil)
	a, b := newFakeConn("a"), newFakeConn("b")
	r.Register("ROOM1", a)
	r.Register("ROOM2", b)

	r.Broadcast("ROOM1", "only-room1")
	if a.count() != 1 || b.count() != 0 {
		t.Fatalf("广播越界 a=%d b=%d", a.count(), b.count())
	}
	if r.Total() != 2 {
		t.Fatalf("Total got=%d", r.Total())
	}
}

func TestRegistry_连接结束自动注销(t *testing.T) {
	r := NewRegistry(nil)
	c := newFakeConn("a")
	r.Register("ROOM1", c)
	c.Close()

	deadline := time.Now().Add(time.Second)
	for r.Count("ROOM1") != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("连接关闭后应自动注销")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRegistry_CloseRoom(t *testing.T) {
	r := NewRegistry(nil)
	a, b := newFakeConn("a"), newFakeConn("b")
	r.Register("ROOM1", a)
	r.Register("ROOM1", b)

	r.CloseRoom("ROOM1", ws.CloseGoingAway, "room evicted")
	if r.Count("ROOM1") != 0 {
		t.Fatalf("CloseRoom 后不应再有连接")
	}
	if a.code != ws.CloseGoingAway || !b.closed {
		t.Fatalf("连接应以 1001 关闭 a.code=%d b.closed=%v", a.code, b.closed)
	}
	if r.Broadcast("ROOM1", "x") != 0 {
		t.Fatalf("空房间广播应投递 0 条")
	}
}
