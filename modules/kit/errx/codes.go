package errx

// 系统类错误码：用于技术错误归一化（告警、排障）。
// 房间/对局等业务错误码由各业务包自行定义，不放在 kit 里。
const (
	// CodeInternal 兜底的内部错误。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeUnavailable 依赖不可用（归档存储、actor 系统等）。
	CodeUnavailable Code = "SERVICE_UNAVAILABLE"
	// CodeTimeout actor 请求或存储调用超时。
	CodeTimeout Code = "TIMEOUT"
	// CodeRateLimited 连接消息频率超限。
	CodeRateLimited Code = "RATE_LIMITED"
	// CodeBadMessage 客户端消息无法解析或类型未知。
	CodeBadMessage Code = "BAD_MESSAGE"
	// CodeReqParamError 请求参数错误。
	CodeReqParamError Code = "REQ_PARAM_ERROR"
)

// 哨兵错误：通过 WithData/WithCause 派生新对象，禁止原地修改。
var (
	ErrInternal    = NewSys(CodeInternal, "internal server error")
	ErrUnavailable = NewSys(CodeUnavailable, "service unavailable")
	ErrTimeout     = NewSys(CodeTimeout, "request timeout")
	ErrRateLimited = NewBiz(CodeRateLimited, "too many messages")
	ErrBadMessage  = NewBiz(CodeBadMessage, "malformed message")
	ErrReqParamERR = NewBiz(CodeReqParamError, "invalid request parameters")
)
