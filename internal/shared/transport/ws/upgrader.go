package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// NewUpgrader 构造升级器；allowed 为空时放行所有 Origin。
func NewUpgrader(allowed func(origin string) bool) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || allowed == nil {
				return true
			}
			return allowed(origin)
		},
	}
}
