package transport

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 业务码按 HTTP 语义分段：0 成功，1~499 业务拒绝（WARN），>=500 系统错误（ERROR）。
const (
	OK             = 0
	InvalidParam   = 400
	ActionRejected = 409
	RoomNotFound   = 404
	BadMessage     = 422
	RateLimited    = 429
	SystemError    = 500
	Unavailable    = 503
)
