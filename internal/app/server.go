package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"workingna/internal/catalog"
	"workingna/internal/config"
	"workingna/internal/session"
	"workingna/internal/websocket"

	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	Config         config.Config
	Catalog        *catalog.Catalog
	SessionManager *session.Manager
	Hub            *websocket.Hub
	Logger         *zap.Logger
}

func NewServer(cfg config.Config, logger *zap.Logger) (*Server, error) {
	c, err := catalog.Load(cfg.CatalogFile, logger)
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(logger)
	return &Server{
		Config:         cfg,
		Catalog:        c,
		SessionManager: sessions,
		Hub:            websocket.NewHub(sessions, c, logger),
		Logger:         logger,
	}, nil
}

// Handler 返回 /ws 和 /healthz 路由
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		websocket.ServeWs(s.Hub, w, r)
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{
			"courses":  s.Catalog.Len(),
			"sessions": s.SessionManager.Count(),
		})
	})
	return mux
}

// Run 启动 Hub 和 HTTP 服务，ctx 取消后优雅退出
func (s *Server) Run(ctx context.Context) error {
	go s.Hub.Run()
	defer s.Hub.Stop()

	srv := &http.Server{Addr: s.Config.Addr, Handler: s.Handler()}
	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("Server is running", zap.String("addr", s.Config.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.Logger.Info("Server stopped")
	return nil
}
