package handler

import (
	"context"
	"errors"
	nethttp "net/http"

	"Conquest/internal/room/entity"
	"Conquest/internal/shared/transport"
	"Conquest/internal/shared/transport/ws"
	"Conquest/modules/kit/errx"
	"Conquest/modules/kit/logx"
)

const busyMessage = "Internal server error"

// HandleHTTPError 把房间错误映射为 HTTP 状态码和 detail 文案，并按错误类型记日志。
func HandleHTTPError(ctx context.Context, l logx.Logger, action string, err error) (int, string) {
	var e *errx.Error
	if errors.As(err, &e) {
		transport.SetErrorReason(ctx, string(e.Code()))
	}

	if errx.IsBiz(err) {
		logx.ReportBizWithLoggerContext(ctx, l, logx.NewBizLogFromError(action, err))
		switch {
		case errors.Is(err, entity.ErrRoomNotFound):
			return nethttp.StatusNotFound, errx.MsgOf(err, "Room not found")
		default:
			return nethttp.StatusBadRequest, errx.MsgOf(err, "Bad request")
		}
	}

	logx.ReportSysErrorWithLoggerContext(ctx, l, logx.NewSysLog(action, err))
	switch {
	case errors.Is(err, errx.ErrTimeout), errors.Is(err, errx.ErrUnavailable):
		return nethttp.StatusServiceUnavailable, "Service unavailable"
	default:
		return nethttp.StatusInternalServerError, busyMessage
	}
}

// CloseFrameOf 决定握手阶段被拒绝的连接用哪个关闭码和原因。
func CloseFrameOf(err error) (int, string) {
	switch {
	case errors.Is(err, entity.ErrRoomNotFound):
		return ws.ClosePolicyViolation, "Room not found"
	case errors.Is(err, entity.ErrPlayerNotFound):
		return ws.ClosePolicyViolation, "Player not in room"
	case errx.IsBiz(err):
		return ws.ClosePolicyViolation, errx.MsgOf(err, "Rejected")
	default:
		return ws.CloseInternalError, "Server busy"
	}
}
