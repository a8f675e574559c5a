package dc

import (
	"context"
	"sync"
	"time"

	"Conquest/internal/room/app/port"
	"Conquest/internal/room/entity"
	"Conquest/modules/kit/logx"

	"go.uber.org/zap"
)

const (
	defaultRetryEvery = 2 * time.Second
	maxPending        = 1024
)

// MatchDC 是对局归档的写后缓冲：房间 actor 只负责入队，后台协程写库，
// 失败的记录留在队列里按 retryEvery 重试，不阻塞任何房间。
type MatchDC struct {
	repo       port.MatchRepository
	retryEvery time.Duration
	log        logx.Logger

	mu      sync.Mutex
	pending []*entity.MatchRecord
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func NewMatchDC(repo port.MatchRepository, retryEvery time.Duration, l logx.Logger) *MatchDC {
	if retryEvery <= 0 {
		retryEvery = defaultRetryEvery
	}
	if l == nil {
		l = logx.Nop()
	}
	d := &MatchDC{
		repo:       repo,
		retryEvery: retryEvery,
		log:        l,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go d.writerLoop()
	return d
}

// Enqueue 非阻塞；关闭后或队列已满时丢弃并返回 false。
func (d *MatchDC) Enqueue(rec *entity.MatchRecord) bool {
	if rec == nil {
		return false
	}
	d.mu.Lock()
	if d.closed || len(d.pending) >= maxPending {
		d.mu.Unlock()
		d.log.Warn("match archive dropped", zap.Int64("match_id", rec.ID), zap.String("room_code", string(rec.RoomCode)))
		return false
	}
	d.pending = append(d.pending, rec)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
	return true
}

func (d *MatchDC) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

func (d *MatchDC) Recent(ctx context.Context, limit int) ([]*entity.MatchRecord, error) {
	return d.repo.ListRecent(ctx, limit)
}

// Close 停止接收新记录，并在 ctx 截止前尽量写完队列。
func (d *MatchDC) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.stop)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *MatchDC) writerLoop() {
	defer close(d.done)

	ticker := time.NewTicker(d.retryEvery)
	defer ticker.Stop()
	for {
		select {
		case <-d.wake:
			d.consumePending()
		case <-ticker.C:
			d.consumePending()
		case <-d.stop:
			d.drain()
			return
		}
	}
}

// consumePending 按入队顺序写，遇到失败就停下等下一次重试。
func (d *MatchDC) consumePending() bool {
	for {
		d.mu.Lock()
		if len(d.pending) == 0 {
			d.mu.Unlock()
			return true
		}
		rec := d.pending[0]
		d.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := d.repo.SaveMatch(ctx, rec)
		cancel()
		if err != nil {
			logx.ReportSysErrorWithLoggerContext(context.Background(), d.log, logx.NewSysLog("archive.save_match", err),
				zap.Int64("match_id", rec.ID))
			return false
		}

		d.mu.Lock()
		if len(d.pending) > 0 && d.pending[0] == rec {
			d.pending = d.pending[1:]
		}
		d.mu.Unlock()
	}
}

func (d *MatchDC) drain() {
	for attempt := 0; attempt < 3; attempt++ {
		if d.consumePending() {
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	if n := d.Pending(); n > 0 {
		d.log.Warn("match archive not flushed on close", zap.Int("pending", n))
	}
}
