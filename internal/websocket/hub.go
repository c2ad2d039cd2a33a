package websocket

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"workingna/api/websocket"
	"workingna/internal/catalog"
	e "workingna/internal/errors"
	"workingna/internal/fees"
	"workingna/internal/session"
	"workingna/pkg/models"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// 常量定义
const (
	writeWait      = 10 * time.Second    // 写操作超时时间
	pongWait       = 60 * time.Second    // 等待 pong 消息的最大时间
	pingPeriod     = (pongWait * 9) / 10 // 发送 ping 消息的周期
	maxMessageSize = 1024                // 最大消息大小
)

var newline = []byte{'\n'}

// WebSocket 连接升级器
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client 表示一个 WebSocket 客户端连接，每个连接拥有一个报名会话
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	session *session.Session
}

// Hub 维护活动客户端的集合
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	quit       chan struct{}
	sessions   *session.Manager
	catalog    *catalog.Catalog
	logger     *zap.Logger
}

// NewHub 创建一个新的 Hub
func NewHub(sessions *session.Manager, c *catalog.Catalog, logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
		sessions:   sessions,
		catalog:    c,
		logger:     logger,
	}
}

// Run 启动 Hub 的主循环，直到 Stop 被调用
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				if client.session != nil {
					h.sessions.EndSession(client.session.ID)
				}
			}
		case <-h.quit:
			for client := range h.clients {
				delete(h.clients, client)
				client.conn.Close()
			}
			return
		}
	}
}

// Stop 关闭所有连接并结束主循环
func (h *Hub) Stop() {
	close(h.quit)
}

// readPump 从 WebSocket 连接中泵取消息
// 它是会话唯一的处理协程，选课集合只在这里被修改
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.quit:
			c.hub.sessions.EndSession(c.session.ID)
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Error("Unexpected close error", zap.Error(err))
			}
			break
		}

		var msg protocol.Message
		err = json.Unmarshal(message, &msg)
		if err != nil {
			c.hub.logger.Error("Error unmarshalling message", zap.Error(err))
			c.sendError(e.ErrInvalidData)
			continue
		}

		switch msg.Type {
		case protocol.HeartbeatMessage:
			c.handleHeartbeat()
		case protocol.CatalogRequestMessage:
			c.handleCatalogRequest()
		case protocol.CourseToggleMessage:
			c.handleCourseToggle(msg.Data)
		case protocol.RegistrantUpdateMessage:
			c.handleRegistrantUpdate(msg.Data)
		case protocol.CalculateFeesMessage:
			c.handleCalculateFees()
		case protocol.SessionResetMessage:
			c.handleSessionReset()
		default:
			c.hub.logger.Warn("Unknown message type", zap.String("type", msg.Type))
			c.sendError(e.ErrUnknownMessage)
		}
	}
}

// registrantFromRequest 从查询参数读取报名人初始信息，不做校验
func registrantFromRequest(r *http.Request) models.Registrant {
	q := r.URL.Query()
	return models.Registrant{
		Name:  q.Get("name"),
		Phone: q.Get("phone"),
		Email: q.Get("email"),
	}
}

// handleHeartbeat 处理心跳消息
func (c *Client) handleHeartbeat() {
	c.reply(protocol.Message{
		Type: protocol.HeartbeatResponseMessage,
		Data: "pong",
	})
}

// handleCatalogRequest 返回课程目录及当前选中状态
func (c *Client) handleCatalogRequest() {
	c.reply(protocol.Message{
		Type: protocol.CatalogMessage,
		Data: map[string]interface{}{
			"courses": c.catalogEntries(),
		},
	})
}

// handleCourseToggle 处理课程勾选消息
// 目录外的课程 ID 不视为错误，照常切换
func (c *Client) handleCourseToggle(data interface{}) {
	if c.session == nil {
		c.sendError(e.ErrNoSession)
		return
	}

	toggleData, ok := data.(map[string]interface{})
	if !ok {
		c.hub.logger.Error("Invalid course toggle data")
		c.sendError(e.ErrInvalidData)
		return
	}

	courseID, ok := intField(toggleData, "courseId")
	if !ok {
		c.hub.logger.Error("Invalid course ID", zap.Any("courseId", toggleData["courseId"]))
		c.sendError(e.ErrInvalidData)
		return
	}

	selected := c.session.ToggleCourse(courseID)
	c.hub.logger.Debug("Toggled course",
		zap.String("sessionID", c.session.ID),
		zap.Int("courseID", courseID),
		zap.Bool("selected", selected))

	c.reply(protocol.Message{
		Type: protocol.CourseToggledMessage,
		Data: protocol.CourseToggled{
			CourseID:    courseID,
			Selected:    selected,
			SelectedIDs: c.session.Selection.IDs(),
		},
	})
}

// handleRegistrantUpdate 更新报名人信息，缺省字段保持原值
func (c *Client) handleRegistrantUpdate(data interface{}) {
	if c.session == nil {
		c.sendError(e.ErrNoSession)
		return
	}

	fields, ok := data.(map[string]interface{})
	if !ok {
		c.hub.logger.Error("Invalid registrant data")
		c.sendError(e.ErrInvalidData)
		return
	}

	registrant := c.session.Registrant
	for key, target := range map[string]*string{
		"name":  &registrant.Name,
		"phone": &registrant.Phone,
		"email": &registrant.Email,
	} {
		v, present := fields[key]
		if !present {
			continue
		}
		s, ok := v.(string)
		if !ok {
			c.hub.logger.Error("Invalid registrant field", zap.String("field", key))
			c.sendError(e.ErrInvalidData)
			return
		}
		*target = s
	}
	c.session.UpdateRegistrant(registrant)

	c.reply(protocol.Message{
		Type: protocol.RegistrantUpdatedMessage,
		Data: registrant,
	})
}

// handleCalculateFees 计算并返回当前会话的费用
func (c *Client) handleCalculateFees() {
	if c.session == nil {
		c.sendError(e.ErrNoSession)
		return
	}

	quote := c.session.Calculate(c.hub.catalog)
	c.hub.logger.Info("Calculated fees",
		zap.String("sessionID", c.session.ID),
		zap.Int("count", quote.Count),
		zap.String("total", quote.Total.String()))

	c.reply(protocol.Message{
		Type: protocol.FeeQuoteMessage,
		Data: feeQuote(quote),
	})
}

// handleSessionReset 结束当前会话并开始一个新的空会话
func (c *Client) handleSessionReset() {
	var registrant models.Registrant
	if c.session != nil {
		registrant = c.session.Registrant
		c.hub.sessions.EndSession(c.session.ID)
	}
	c.session = c.hub.sessions.CreateSession(registrant)
	c.sendSessionStart()
}

func (c *Client) sendSessionStart() {
	c.reply(protocol.Message{
		Type: protocol.SessionStartMessage,
		Data: protocol.SessionStart{
			SessionID: c.session.ID,
			Catalog:   c.catalogEntries(),
			Selected:  c.session.Selection.IDs(),
		},
	})
}

func (c *Client) catalogEntries() []protocol.CatalogEntry {
	courses := c.hub.catalog.List()
	entries := make([]protocol.CatalogEntry, 0, len(courses))
	for _, course := range courses {
		entries = append(entries, protocol.CatalogEntry{
			ID:       course.ID,
			Name:     course.Name,
			Price:    course.Price.String(),
			Label:    course.Label(),
			Selected: c.session != nil && c.session.Selection.Contains(course.ID),
		})
	}
	return entries
}

func (c *Client) sendError(msg e.ErrorMessage) {
	c.reply(protocol.Message{
		Type: protocol.ErrorMessage,
		Code: msg.Code,
		Data: msg.Message,
	})
}

func (c *Client) reply(msg protocol.Message) {
	c.send <- marshalMessage(msg)
}

func feeQuote(q fees.Quote) protocol.FeeQuote {
	return protocol.FeeQuote{
		Count:        q.Count,
		Base:         q.Base.String(),
		DiscountRate: q.DiscountRate.String(),
		Discount:     q.Discount.String(),
		Subtotal:     q.Subtotal.String(),
		VAT:          q.VAT.String(),
		Total:        q.Total.String(),
		Display:      q.Display(),
	}
}

// intField 读取 JSON 数字字段，必须是整数
func intField(data map[string]interface{}, key string) (int, bool) {
	v, ok := data[key].(float64)
	if !ok || v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}

// marshalMessage 将消息序列化为 JSON
func marshalMessage(msg protocol.Message) []byte {
	data, _ := json.Marshal(msg)
	return data
}

// ServeWs 处理 WebSocket 连接请求
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.logger.Error("Error upgrading connection", zap.Error(err))
		return
	}

	client := &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		session: hub.sessions.CreateSession(registrantFromRequest(r)),
	}

	select {
	case client.hub.register <- client:
	case <-hub.quit:
		hub.sessions.EndSession(client.session.ID)
		conn.Close()
		return
	}

	client.sendSessionStart()

	go client.readPump()
	go client.writePump()
}

// writePump 将消息泵送到 WebSocket 连接
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write(newline)
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.hub.quit:
			return
		}
	}
}
