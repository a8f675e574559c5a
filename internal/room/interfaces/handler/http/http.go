package http

import (
	"context"
	nethttp "net/http"
	"strconv"
	"strings"
	"time"

	roomactor "Conquest/internal/room/actor"
	"Conquest/internal/room/actors"
	"Conquest/internal/room/entity"
	"Conquest/internal/room/interfaces/handler"
	"Conquest/internal/room/interfaces/handler/http/dto"
	"Conquest/modules/kit/errx"
	"Conquest/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

const (
	defaultMatchLimit = 20
	maxMatchLimit     = 100
	maxNameLen        = 32
)

type RoomService interface {
	CreateRoom(ctx context.Context, playerName string) (*actors.RoomReply, error)
	JoinRoom(ctx context.Context, roomCode, playerName string) (*actors.RoomReply, error)
	GetRoom(ctx context.Context, roomCode string) (*actors.RoomReply, error)
	Stats(ctx context.Context) (roomactor.Stats, error)
}

type MatchReader interface {
	Recent(ctx context.Context, limit int) ([]*entity.MatchRecord, error)
}

type HttpHandler struct {
	rooms   RoomService
	matches MatchReader
	log     logx.Logger
	now     func() time.Time
}

func NewHttpHandler(rooms RoomService, matches MatchReader, l logx.Logger) *HttpHandler {
	if l == nil {
		l = logx.Nop()
	}
	return &HttpHandler{rooms: rooms, matches: matches, log: l, now: time.Now}
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/", h.Root)

	api := group.Group("/api")
	api.GET("/health", h.Health)
	api.GET("/test", h.Test)
	api.POST("/create-room", h.CreateRoom)
	api.POST("/join-room", h.JoinRoom)
	api.GET("/room/:room_code", h.GetRoom)
	api.GET("/matches", h.Matches)
}

func (h *HttpHandler) Root(c *gin.Context) {
	c.JSON(nethttp.StatusOK, gin.H{
		"message":           "Strategy Game API",
		"status":            "online",
		"websocket_support": true,
		"timestamp":         h.timestamp(),
	})
}

func (h *HttpHandler) Health(c *gin.Context) {
	stats, err := h.rooms.Stats(c.Request.Context())
	if err != nil {
		h.error(c, "health", err)
		return
	}
	c.JSON(nethttp.StatusOK, gin.H{
		"status":             "healthy",
		"websocket_support":  true,
		"active_rooms":       stats.Rooms,
		"active_connections": stats.Connections,
		"timestamp":          h.timestamp(),
	})
}

func (h *HttpHandler) Test(c *gin.Context) {
	stats, err := h.rooms.Stats(c.Request.Context())
	if err != nil {
		h.error(c, "test", err)
		return
	}
	c.JSON(nethttp.StatusOK, gin.H{
		"message":       "Backend is working!",
		"api_url":       "OK",
		"websocket_url": "Check connection manually",
		"timestamp":     h.timestamp(),
		"test_data": gin.H{
			"rooms_count":       stats.Rooms,
			"connections_count": stats.Connections,
		},
	})
}

func (h *HttpHandler) CreateRoom(c *gin.Context) {
	name, ok := h.playerName(c)
	if !ok {
		return
	}
	reply, err := h.rooms.CreateRoom(c.Request.Context(), name)
	if err != nil {
		h.error(c, "create_room", err)
		return
	}
	c.JSON(nethttp.StatusOK, dto.RoomTicket{RoomCode: reply.RoomCode, PlayerID: reply.PlayerID, Room: reply.Room})
}

func (h *HttpHandler) JoinRoom(c *gin.Context) {
	code := strings.TrimSpace(c.Query("room_code"))
	if code == "" {
		h.fail(c, nethttp.StatusBadRequest, "room_code is required")
		return
	}
	name, ok := h.playerName(c)
	if !ok {
		return
	}
	reply, err := h.rooms.JoinRoom(c.Request.Context(), code, name)
	if err != nil {
		h.error(c, "join_room", err)
		return
	}
	c.JSON(nethttp.StatusOK, dto.RoomTicket{RoomCode: reply.RoomCode, PlayerID: reply.PlayerID, Room: reply.Room})
}

func (h *HttpHandler) GetRoom(c *gin.Context) {
	reply, err := h.rooms.GetRoom(c.Request.Context(), c.Param("room_code"))
	if err != nil {
		h.error(c, "get_room", err)
		return
	}
	c.JSON(nethttp.StatusOK, dto.RoomInfoOf(reply.Room))
}

// Matches 返回最近结束的对局，limit 默认 20、最大 100。
func (h *HttpHandler) Matches(c *gin.Context) {
	if h.matches == nil {
		h.fail(c, nethttp.StatusServiceUnavailable, "Match archive disabled")
		return
	}
	limit := defaultMatchLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.fail(c, nethttp.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxMatchLimit)
	}
	recs, err := h.matches.Recent(c.Request.Context(), limit)
	if err != nil {
		h.error(c, "list_matches", err)
		return
	}
	c.JSON(nethttp.StatusOK, gin.H{"matches": dto.MatchesOf(recs)})
}

func (h *HttpHandler) playerName(c *gin.Context) (string, bool) {
	name := strings.TrimSpace(c.Query("player_name"))
	if name == "" {
		h.fail(c, nethttp.StatusBadRequest, "player_name is required")
		return "", false
	}
	if len([]rune(name)) > maxNameLen {
		h.error(c, "player_name", errx.ErrReqParamERR.WithData("player_name", name))
		return "", false
	}
	return name, true
}

func (h *HttpHandler) timestamp() string {
	return h.now().Format(time.RFC3339)
}

func (h *HttpHandler) fail(c *gin.Context, status int, detail string) {
	c.JSON(status, dto.ErrorResp{Detail: detail})
}

func (h *HttpHandler) error(c *gin.Context, action string, err error) {
	status, detail := handler.HandleHTTPError(c.Request.Context(), h.log, action, err)
	h.fail(c, status, detail)
}
