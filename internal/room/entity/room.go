package entity

import "time"

const (
	DefaultMaxPlayers = 4
	DefaultMinPlayers = 2
)

type RoomCode string

// Room 独占持有自己的玩家；order 记录加入顺序，回合轮转、战损顺序和胜负判定都依赖它。
type Room struct {
	code        RoomCode
	players     map[PlayerID]*Player
	order       []PlayerID
	state       GameState
	currentTurn PlayerID
	turnNumber  int
	winner      PlayerID
	createdAt   time.Time
	maxPlayers  int
}

func NewRoom(code RoomCode, creator *Player, createdAt time.Time, maxPlayers int) *Room {
	if maxPlayers <= 0 || maxPlayers > DefaultMaxPlayers {
		maxPlayers = DefaultMaxPlayers
	}
	r := &Room{
		code:       code,
		players:    make(map[PlayerID]*Player, maxPlayers),
		state:      StateWaiting,
		turnNumber: 1,
		createdAt:  createdAt,
		maxPlayers: maxPlayers,
	}
	if creator != nil {
		r.players[creator.ID()] = creator
		r.order = append(r.order, creator.ID())
	}
	return r
}

func (r *Room) Code() RoomCode {
	return r.code
}

func (r *Room) State() GameState {
	return r.state
}

func (r *Room) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Room) TurnNumber() int {
	return r.turnNumber
}

// CurrentTurn 只在 playing 之后有意义。
func (r *Room) CurrentTurn() (PlayerID, bool) {
	return r.currentTurn, r.currentTurn != ""
}

func (r *Room) Winner() (PlayerID, bool) {
	return r.winner, r.winner != ""
}

func (r *Room) PlayerCount() int {
	return len(r.order)
}

func (r *Room) Player(id PlayerID) (*Player, bool) {
	p, ok := r.players[id]
	return p, ok
}

// Order 返回加入顺序的拷贝。
func (r *Room) Order() []PlayerID {
	out := make([]PlayerID, len(r.order))
	copy(out, r.order)
	return out
}

// Players 按加入顺序返回玩家。
func (r *Room) Players() []*Player {
	out := make([]*Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.players[id])
	}
	return out
}

func (r *Room) IndexOf(id PlayerID) int {
	for i, pid := range r.order {
		if pid == id {
			return i
		}
	}
	return -1
}

func (r *Room) AddPlayer(p *Player) error {
	if r.state != StateWaiting {
		return ErrRoomAlreadyStarted
	}
	if len(r.order) >= r.maxPlayers {
		return ErrRoomFull
	}
	if _, ok := r.players[p.ID()]; ok {
		return ErrDuplicatePlayer
	}
	r.players[p.ID()] = p
	r.order = append(r.order, p.ID())
	return nil
}

// Start waiting -> playing，先手是第一个加入的玩家。
func (r *Room) Start() bool {
	if r.state != StateWaiting || len(r.order) == 0 {
		return false
	}
	r.state = StatePlaying
	r.currentTurn = r.order[0]
	return true
}

// PassTurn 把回合交给 next；wrapped 表示绕回了第一个玩家，回合数加一。
func (r *Room) PassTurn(next PlayerID, wrapped bool) {
	r.currentTurn = next
	if wrapped {
		r.turnNumber++
	}
}

// Finish 是终态迁移，只生效一次。
func (r *Room) Finish(winner PlayerID) bool {
	if r.state == StateFinished {
		return false
	}
	if _, ok := r.players[winner]; !ok {
		return false
	}
	r.state = StateFinished
	r.winner = winner
	return true
}
