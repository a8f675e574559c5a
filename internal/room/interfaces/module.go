package interfaces

import (
	roomactor "Conquest/internal/room/actor"
	"Conquest/internal/room/interfaces/handler/http"
	roomws "Conquest/internal/room/interfaces/handler/ws"
	transporthttp "Conquest/internal/shared/transport/http"
	"Conquest/internal/shared/transport/ws"
	"Conquest/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

type Module struct {
	wsHandler   *roomws.WsHandler
	httpHandler *http.HttpHandler
}

// New 组装大厅 HTTP 接口和房间 WebSocket 入口；matches 为空时对局查询返回 503。
func New(rt *roomactor.Runtime, matches http.MatchReader, allowed func(origin string) bool, opts ws.Options, l logx.Logger) *Module {
	return &Module{
		wsHandler:   roomws.NewWsHandler(rt, allowed, opts, l),
		httpHandler: http.NewHttpHandler(rt, matches, l),
	}
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.httpHandler.RegisterRoutes(g)
	m.wsHandler.RegisterRoutes(g)
}

var _ transporthttp.Registrar = (*Module)(nil)
