package simulator

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Scheduler 以固定节奏驱动模拟周期
// 时钟可注入以便测试；取消时让进行中的周期跑完再退出，不做周期内中断。
type Scheduler struct {
	sim      *Simulator
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewScheduler 创建调度器，interval 是周期节奏 (例如 1s)
func NewScheduler(sim *Simulator, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Scheduler{
		sim:      sim,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

// Run 阻塞运行周期循环，直到 ctx 被取消
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("Scheduler started", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// RunCycle 在模拟器未运行时是空操作
			s.sim.RunCycle(s.now())
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped")
			return
		}
	}
}
