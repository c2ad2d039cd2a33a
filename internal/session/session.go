package session

import (
	"sync"
	"time"

	"workingna/internal/catalog"
	"workingna/internal/fees"
	"workingna/internal/selection"
	"workingna/pkg/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session 一次报名表单会话，独占自己的选课集合
// Session 本身不加锁，只能由持有它的连接处理协程修改
type Session struct {
	ID         string
	Registrant models.Registrant
	Selection  *selection.Set
	StartTime  time.Time
	EndTime    time.Time
	LastQuote  *fees.Quote
}

// ToggleCourse 切换课程的选中状态
func (s *Session) ToggleCourse(courseID int) bool {
	return s.Selection.Toggle(courseID)
}

func (s *Session) UpdateRegistrant(r models.Registrant) {
	s.Registrant = r
}

// Calculate 计算当前选课的费用并记录为最近一次结果
func (s *Session) Calculate(c *catalog.Catalog) fees.Quote {
	quote := fees.Compute(s.Selection, c)
	s.LastQuote = &quote
	return quote
}

type Manager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

func (m *Manager) CreateSession(registrant models.Registrant) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := &Session{
		ID:         uuid.New().String(),
		Registrant: registrant,
		Selection:  selection.New(),
		StartTime:  time.Now(),
	}

	m.sessions[session.ID] = session
	m.logger.Info("Created new session", zap.String("sessionID", session.ID))

	return session
}

func (m *Manager) GetSession(sessionID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[sessionID]
	return session, ok
}

func (m *Manager) EndSession(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[sessionID]; ok {
		session.EndTime = time.Now()
		m.logger.Info("Ended session",
			zap.String("sessionID", sessionID),
			zap.Ints("selected", session.Selection.IDs()),
			zap.Duration("duration", session.EndTime.Sub(session.StartTime)))
		delete(m.sessions, sessionID)
	}
}

// Count 返回当前活动会话数
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
