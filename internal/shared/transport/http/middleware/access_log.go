package middleware

import (
	"Conquest/internal/shared/transport"
	"Conquest/modules/kit/logx"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessLog 统一写访问日志，业务码由 HTTP 状态码推导。
// WebSocket 升级请求不在这里记录，连接内的每条消息由 ws 分发器记录。
func AccessLog(log logx.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isUpgrade(c.Request) {
			c.Next()
			return
		}
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		action := c.Request.Method + " " + route

		ctx := transport.NewContextWithParent(c.Request.Context(), action, "http")
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		transport.SetBizCode(ctx, transport.BizCode(bizCodeFromStatus(c.Writer.Status())))
		transport.AddFields(ctx, zap.Int("status", c.Writer.Status()), zap.String("client_ip", c.ClientIP()))
		transport.WriteAccessLog(ctx, log)
	}
}

func bizCodeFromStatus(status int) int {
	switch {
	case status < http.StatusBadRequest:
		return transport.OK
	case status == http.StatusNotFound:
		return transport.RoomNotFound
	case status < http.StatusInternalServerError:
		return transport.InvalidParam
	case status == http.StatusServiceUnavailable:
		return transport.Unavailable
	default:
		return transport.SystemError
	}
}

func isUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}
