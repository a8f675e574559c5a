package session

import (
	"sync"

	"Conquest/internal/shared/transport/ws"
	"Conquest/modules/kit/logx"

	"go.uber.org/zap"
)

// Registry 维护每个房间的在线连接集合，广播尽力而为：
// 某条连接投递失败只会把它摘掉，不影响同房间的其它连接。
type Registry interface {
	Register(roomCode string, conn ws.WSConn)
	Unregister(roomCode string, conn ws.WSConn)
	Broadcast(roomCode string, msg any) int
	Count(roomCode string) int
	Total() int
	CloseRoom(roomCode string, code int, reason string)
}

type ConnRegistry struct {
	sync.RWMutex
	rooms   map[string]map[ws.WSConn]struct{}
	watched map[ws.WSConn]string
	log     logx.Logger
}

func NewRegistry(l logx.Logger) *ConnRegistry {
	if l == nil {
		l = logx.Nop()
	}
	return &ConnRegistry{
		rooms:   make(map[string]map[ws.WSConn]struct{}),
		watched: make(map[ws.WSConn]string),
		log:     l,
	}
}

func (r *ConnRegistry) Register(roomCode string, conn ws.WSConn) {
	if conn == nil || roomCode == "" {
		return
	}
	r.Lock()
	defer r.Unlock()

	set := r.rooms[roomCode]
	if set == nil {
		set = make(map[ws.WSConn]struct{})
		r.rooms[roomCode] = set
	}
	set[conn] = struct{}{}

	// 每条连接只启动一个 watcher，连接结束后自动摘除
	if _, ok := r.watched[conn]; !ok {
		r.watched[conn] = roomCode
		go r.watchConnDone(roomCode, conn)
	}
}

func (r *ConnRegistry) watchConnDone(roomCode string, conn ws.WSConn) {
	<-conn.Done()
	r.Unregister(roomCode, conn)
}

func (r *ConnRegistry) Unregister(roomCode string, conn ws.WSConn) {
	r.Lock()
	defer r.Unlock()
	r.removeLocked(roomCode, conn)
}

func (r *ConnRegistry) removeLocked(roomCode string, conn ws.WSConn) {
	if set := r.rooms[roomCode]; set != nil {
		delete(set, conn)
		if len(set) == 0 {
			delete(r.rooms, roomCode)
		}
	}
	delete(r.watched, conn)
}

// Broadcast 返回成功投递的连接数。
func (r *ConnRegistry) Broadcast(roomCode string, msg any) int {
	r.RLock()
	targets := make([]ws.WSConn, 0, len(r.rooms[roomCode]))
	for conn := range r.rooms[roomCode] {
		targets = append(targets, conn)
	}
	r.RUnlock()

	delivered := 0
	var failed []ws.WSConn
	for _, conn := range targets {
		if err := conn.Push(msg); err != nil {
			r.log.Warn("broadcast push failed, pruning connection",
				zap.String("room_code", roomCode),
				zap.String("remote_addr", conn.Addr()),
				zap.Error(err))
			failed = append(failed, conn)
			continue
		}
		delivered++
	}

	if len(failed) > 0 {
		r.Lock()
		for _, conn := range failed {
			r.removeLocked(roomCode, conn)
		}
		r.Unlock()
		for _, conn := range failed {
			conn.Close()
		}
	}
	return delivered
}

func (r *ConnRegistry) Count(roomCode string) int {
	r.RLock()
	defer r.RUnlock()
	return len(r.rooms[roomCode])
}

func (r *ConnRegistry) Total() int {
	r.RLock()
	defer r.RUnlock()
	n := 0
	for _, set := range r.rooms {
		n += len(set)
	}
	return n
}

// CloseRoom 关闭并摘除房间内所有连接（房间被回收时调用）。
func (r *ConnRegistry) CloseRoom(roomCode string, code int, reason string) {
	r.Lock()
	set := r.rooms[roomCode]
	delete(r.rooms, roomCode)
	for conn := range set {
		delete(r.watched, conn)
	}
	r.Unlock()

	for conn := range set {
		conn.CloseWithCode(code, reason)
	}
}
