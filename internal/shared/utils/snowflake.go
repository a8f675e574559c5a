package utils

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	// 2025-01-01 00:00:00 UTC，单位毫秒
	snowflakeEpochMilli int64 = 1735689600000

	nodeBits uint8 = 10
	seqBits  uint8 = 12

	maxNodeID int64 = -1 ^ (-1 << nodeBits)
	maxSeq    int64 = -1 ^ (-1 << seqBits)

	nodeShift uint8 = seqBits
	timeShift uint8 = nodeBits + seqBits
)

// Snowflake 生成对局归档记录的全局递增 id，节点号取自 logic.server_id。
type Snowflake struct {
	mu     sync.Mutex
	nodeID int64
	lastTS int64
	seq    int64
	now    func() int64
}

func NewSnowflake(nodeID int64) (*Snowflake, error) {
	if nodeID < 0 || nodeID > maxNodeID {
		return nil, fmt.Errorf("snowflake node id out of range: %d", nodeID)
	}
	return &Snowflake{
		nodeID: nodeID,
		now:    func() int64 { return time.Now().UnixMilli() },
	}, nil
}

func (s *Snowflake) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now()
	if ts < s.lastTS {
		// 时钟回拨时不回退
		ts = s.lastTS
	}

	if ts == s.lastTS {
		s.seq = (s.seq + 1) & maxSeq
		if s.seq == 0 {
			ts = s.waitNextMillisecond(s.lastTS)
		}
	} else {
		s.seq = 0
	}

	s.lastTS = ts
	return ((ts - snowflakeEpochMilli) << timeShift) | (s.nodeID << nodeShift) | s.seq
}

func (s *Snowflake) waitNextMillisecond(lastTS int64) int64 {
	ts := s.now()
	for ts <= lastTS {
		time.Sleep(100 * time.Microsecond)
		ts = s.now()
	}
	return ts
}

// NodeOf 从 id 中取回节点号，排查归档来源时用。
func NodeOf(id int64) int64 {
	return (id >> nodeShift) & maxNodeID
}

var (
	defaultMu        sync.RWMutex
	defaultSnowflake *Snowflake
)

// InitSnowflake 在启动时按配置设置全局生成器。
func InitSnowflake(nodeID int64) error {
	gen, err := NewSnowflake(nodeID)
	if err != nil {
		return err
	}
	defaultMu.Lock()
	defaultSnowflake = gen
	defaultMu.Unlock()
	return nil
}

func NextSnowflakeID() (int64, error) {
	defaultMu.RLock()
	gen := defaultSnowflake
	defaultMu.RUnlock()
	if gen == nil {
		return 0, errors.New("snowflake generator not initialized")
	}
	return gen.NextID(), nil
}
