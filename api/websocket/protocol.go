package protocol

const (
	HeartbeatMessage         = "heartbeat"          // 心跳请求
	HeartbeatResponseMessage = "heartbeat_response" // 心跳响应
	ErrorMessage             = "error"              // 错误响应

	SessionStartMessage = "session_start" // 会话建立（连接后服务端推送）
	SessionResetMessage = "session_reset" // 重新开始会话请求

	CatalogRequestMessage = "catalog_request" // 课程目录请求
	CatalogMessage        = "catalog"         // 课程目录响应

	CourseToggleMessage  = "course_toggle"  // 课程勾选/取消请求
	CourseToggledMessage = "course_toggled" // 课程勾选响应

	RegistrantUpdateMessage  = "registrant_update"  // 报名人信息更新请求
	RegistrantUpdatedMessage = "registrant_updated" // 报名人信息更新响应

	CalculateFeesMessage = "calculate_fees" // 费用计算请求
	FeeQuoteMessage      = "fee_quote"      // 费用计算结果
)

type Message struct {
	Type string      `json:"type"`
	Code int         `json:"code"`
	Data interface{} `json:"data"`
}

// CatalogEntry 目录中的一门课程及其在当前会话中的选中状态
type CatalogEntry struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type SessionStart struct {
	SessionID string         `json:"sessionId"`
	Catalog   []CatalogEntry `json:"catalog"`
	Selected  []int          `json:"selected"`
}

type CourseToggled struct {
	CourseID    int   `json:"courseId"`
	Selected    bool  `json:"selected"`
	SelectedIDs []int `json:"selectedIds"`
}

// FeeQuote 金额均以字符串传输，保留全部精度；Display 为两位小数的展示文本
type FeeQuote struct {
	Count        int    `json:"count"`
	Base         string `json:"base"`
	DiscountRate string `json:"discountRate"`
	Discount     string `json:"discount"`
	Subtotal     string `json:"subtotal"`
	VAT          string `json:"vat"`
	Total        string `json:"total"`
	Display      string `json:"display"`
}
