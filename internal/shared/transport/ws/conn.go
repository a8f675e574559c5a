package ws

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"Conquest/internal/shared/transport"
	"Conquest/modules/kit/errx"
	"Conquest/modules/kit/logx"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Options struct {
	SendBuffer   int
	ReadLimit    int64
	WriteTimeout time.Duration
	PongTimeout  time.Duration
	// RateLimit 每秒允许的上行消息数，<=0 表示不限。
	RateLimit float64
	RateBurst int
}

func (o Options) normalize() Options {
	if o.SendBuffer <= 0 {
		o.SendBuffer = 256
	}
	if o.ReadLimit <= 0 {
		o.ReadLimit = 64 * 1024
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 10 * time.Second
	}
	if o.PongTimeout <= 0 {
		o.PongTimeout = 60 * time.Second
	}
	if o.RateLimit > 0 && o.RateBurst <= 0 {
		o.RateBurst = int(o.RateLimit)
		if o.RateBurst < 1 {
			o.RateBurst = 1
		}
	}
	return o
}

type outbound struct {
	data        any
	close       bool
	closeCode   int
	closeReason string
}

// WsConn 包装一条 gorilla 连接：一个读协程负责解码分发，一个写协程独占写端。
type WsConn struct {
	conn     *websocket.Conn
	router   *Router
	outChan  chan outbound
	property map[string]any
	sync.RWMutex
	done      chan struct{}
	closeOnce sync.Once
	limiter   *rate.Limiter
	opts      Options
	log       logx.Logger
}

func NewWsConn(wsConn *websocket.Conn, router *Router, opts Options, l logx.Logger) *WsConn {
	opts = opts.normalize()
	c := &WsConn{
		conn:     wsConn,
		router:   router,
		outChan:  make(chan outbound, opts.SendBuffer),
		property: make(map[string]any),
		done:     make(chan struct{}),
		opts:     opts,
		log:      l,
	}
	if opts.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateBurst)
	}
	return c
}

func (s *WsConn) SetProperty(key string, value any) {
	s.Lock()
	defer s.Unlock()
	s.property[key] = value
}

func (s *WsConn) GetProperty(key string) any {
	s.RLock()
	defer s.RUnlock()
	return s.property[key]
}

func (s *WsConn) RemoveProperty(key string) {
	s.Lock()
	defer s.Unlock()
	delete(s.property, key)
}

func (s *WsConn) Addr() string {
	return s.conn.RemoteAddr().String()
}

func (s *WsConn) Push(msg any) error {
	select {
	case <-s.done:
		return ErrConnClosed
	default:
	}
	select {
	case s.outChan <- outbound{data: msg}:
		return nil
	case <-s.done:
		return ErrConnClosed
	default:
		return ErrSendBufferFull
	}
}

func (s *WsConn) CloseWithCode(code int, reason string) {
	select {
	case s.outChan <- outbound{close: true, closeCode: code, closeReason: reason}:
	case <-s.done:
	default:
		// 缓冲已满，直接发关闭帧
		s.writeClose(code, reason)
		s.Close()
	}
}

// Reject 用于握手后立即拒绝：直接写关闭帧并断开，不启动读写协程。
func (s *WsConn) Reject(code int, reason string) {
	s.writeClose(code, reason)
	s.Close()
}

func (s *WsConn) Close() {
	s.closeOnce.Do(func() {
		_ = s.conn.Close()
		close(s.done)
	})
}

func (s *WsConn) Done() <-chan struct{} {
	return s.done
}

// Run 启动读写协程。router 为空时只写不读（例如连通性测试连接）。
func (s *WsConn) Run() {
	if s.router != nil {
		go s.readMsgLoop()
	}
	go s.writeMsgLoop()
}

func (s *WsConn) readMsgLoop() {
	defer func() {
		if err := recover(); err != nil {
			s.log.Error("ws readMsgLoop panic", zap.String("err", fmt.Sprintf("%v", err)))
		}
		s.Close()
	}()

	s.conn.SetReadLimit(s.opts.ReadLimit)
	_ = s.conn.SetReadDeadline(time.Now().Add(s.opts.PongTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.opts.PongTimeout))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				s.log.Warn("ws read msg", zap.String("remote_addr", s.Addr()), zap.Error(err))
			}
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(s.opts.PongTimeout))

		if s.limiter != nil && !s.limiter.Allow() {
			s.rejectFrame(transport.RateLimited, errx.ErrRateLimited.Msg())
			continue
		}

		msg, err := DecodeClientMessage(data)
		if err != nil {
			s.rejectFrame(transport.BadMessage, err.Error())
			s.writeClose(CloseUnsupportedData, "malformed message")
			return
		}
		if !s.router.Dispatch(&WsMsgReq{Msg: msg, Conn: s}) {
			s.rejectFrame(transport.BadMessage, "unknown message type: "+msg.Type)
			s.writeClose(CloseUnsupportedData, "unknown message type")
			return
		}
	}
}

// rejectFrame 记录未进入路由的帧（限流、解析失败、未知类型）。
func (s *WsConn) rejectFrame(code int, reason string) {
	ctx := transport.NewContext("WS frame", "")
	transport.SetBizCode(ctx, transport.BizCode(code))
	transport.SetErrorReason(ctx, reason)
	transport.AddFields(ctx, zap.String("remote_addr", s.Addr()))
	transport.WriteAccessLog(ctx, s.log)
}

func (s *WsConn) writeMsgLoop() {
	ticker := time.NewTicker(s.opts.PongTimeout * 9 / 10)
	defer func() {
		ticker.Stop()
		s.Close()
	}()
	for {
		select {
		case msg := <-s.outChan:
			if msg.close {
				s.writeClose(msg.closeCode, msg.closeReason)
				return
			}
			if err := s.write(msg.data); err != nil {
				s.log.Warn("ws write msg", zap.String("remote_addr", s.Addr()), zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *WsConn) write(data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		// 单条消息编码失败不影响连接
		s.log.Error("ws write marshal json error", zap.Error(err))
		return nil
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

func (s *WsConn) writeClose(code int, reason string) {
	deadline := time.Now().Add(s.opts.WriteTimeout)
	_ = s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
}
