// file: internal/errors/messages.go

package errors

type ErrorMessage struct {
	Code    int
	Message string
}

var (
	ErrInvalidData    = ErrorMessage{Code: 1001, Message: "Invalid data"}
	ErrUnknownMessage = ErrorMessage{Code: 1002, Message: "Unknown message type"}
	ErrNoSession      = ErrorMessage{Code: 1003, Message: "No active session"}
	ErrInternalServer = ErrorMessage{Code: 2000, Message: "Internal server error"}
)

// GetErrorMessage 返回给定错误代码的错误消息
func GetErrorMessage(code int) string {
	switch code {
	case ErrInvalidData.Code:
		return ErrInvalidData.Message
	case ErrUnknownMessage.Code:
		return ErrUnknownMessage.Message
	case ErrNoSession.Code:
		return ErrNoSession.Message
	case ErrInternalServer.Code:
		return ErrInternalServer.Message
	default:
		return "Unknown error"
	}
}
