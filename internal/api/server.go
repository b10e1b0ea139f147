package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"multi-asset-trader/internal/simulator"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Server 是仪表盘服务层，只消费模拟器的只读快照和启停控制，
// 从不直接触碰核心状态
type Server struct {
	sim          *simulator.Simulator
	addr         string
	pushInterval time.Duration
	upgrader     websocket.Upgrader
	logger       *zap.Logger
}

// NewServer 创建仪表盘服务
func NewServer(sim *simulator.Simulator, addr string, pushInterval time.Duration, logger *zap.Logger) *Server {
	if pushInterval <= 0 {
		pushInterval = time.Second
	}
	return &Server{
		sim:          sim,
		addr:         addr,
		pushInterval: pushInterval,
		upgrader: websocket.Upgrader{
			// 本地仪表盘，不做跨域校验
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Run 阻塞运行 HTTP 服务，ctx 取消时优雅关闭
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/start", s.handleStart)
	mux.HandleFunc("/api/stop", s.handleStop)
	mux.HandleFunc("/ws", s.handleWS)

	srv := &http.Server{Addr: s.addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("Dashboard server listening", zap.String("addr", s.addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.sim.Status())
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	s.sim.Start()
	s.writeJSON(w, map[string]string{"message": "simulator started"})
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	s.sim.Stop()
	s.writeJSON(w, map[string]string{"message": "simulator stopped"})
}

// handleWS 按固定节奏向客户端推送状态快照
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(s.pushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := conn.WriteJSON(s.sim.Status()); err != nil {
				// 客户端断开是正常路径
				return
			}
		case <-r.Context().Done():
			return
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("Failed to encode response", zap.Error(err))
	}
}
