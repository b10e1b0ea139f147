package risk

import (
	"fmt"
	"math"
	"time"

	"multi-asset-trader/internal/market"
	"multi-asset-trader/internal/service"
)

// Outcome 是风控裁决结果
type Outcome string

const (
	OutcomeAccept Outcome = "ACCEPT"
	OutcomeClip   Outcome = "CLIP" // 数量被削减到仓位上限内
	OutcomeReject Outcome = "REJECT"
)

// Decision 由执行引擎消费；被拒绝不是错误，是正常的"未成交"结果
type Decision struct {
	Outcome  Outcome
	Quantity int64 // 裁决后的数量 (CLIP 时小于提案数量)
	Reason   string
}

func accept(quantity int64) Decision {
	return Decision{Outcome: OutcomeAccept, Quantity: quantity}
}

func reject(reason string) Decision {
	return Decision{Outcome: OutcomeReject, Reason: reason}
}

// Manager 按顺序执行三道独立闸门：单日亏损、相关性、仓位规模
// 自身无副作用 (Evaluate 不修改任何账户状态)；
// 单日亏损累计值由调度器在每个周期结束时通过 RecordPnL 喂入。
type Manager struct {
	cfg      service.RiskConfig
	registry *market.Registry

	dailyPnL float64
	day      time.Time // 当前交易日 (按注入时钟的自然日)
}

// NewManager 创建风控管理器
func NewManager(cfg service.RiskConfig, registry *market.Registry) *Manager {
	return &Manager{cfg: cfg, registry: registry}
}

// RecordPnL 累计当日盈亏
// 跨过自然日边界时累计值清零 —— 亏损闸门随之解除
func (m *Manager) RecordPnL(delta float64, now time.Time) {
	day := now.Truncate(24 * time.Hour)
	if !day.Equal(m.day) {
		m.day = day
		m.dailyPnL = 0
	}
	m.dailyPnL += delta
}

// DailyPnL 返回当日累计盈亏
func (m *Manager) DailyPnL() float64 {
	return m.dailyPnL
}

// Evaluate 对一笔交易意向做裁决
// totalValue 是组合当前总值，positions 是现有持仓视图
func (m *Manager) Evaluate(symbol string, quantity int64, price float64, totalValue float64, positions map[string]int64) Decision {
	if quantity <= 0 || price <= 0 || totalValue <= 0 {
		return reject("invalid proposal")
	}

	// 闸门 1: 单日亏损达到上限后，当日禁止一切新交易
	if m.dailyPnL < -m.cfg.MaxDailyLoss*totalValue {
		return reject(fmt.Sprintf("daily loss limit reached: pnl %.2f, limit %.2f",
			m.dailyPnL, -m.cfg.MaxDailyLoss*totalValue))
	}

	// 闸门 2: 与已有持仓相关性过高则拒绝
	// 加仓同一符号不算相关性事件
	for held, qty := range positions {
		if qty == 0 || held == symbol {
			continue
		}
		if corr := m.registry.Correlation(symbol, held); math.Abs(corr) > m.cfg.CorrelationLimit {
			return reject(fmt.Sprintf("correlation with %s position too high: %.2f", held, corr))
		}
	}

	// 闸门 3: 仓位规模超限时削减数量而不是直接拒绝
	proposedValue := math.Abs(float64(quantity) * price)
	maxValue := m.cfg.MaxPositionSize * totalValue
	if proposedValue > maxValue {
		clipped := int64(maxValue / price)
		if clipped < 1 {
			return reject("position size limit leaves no room")
		}
		return Decision{
			Outcome:  OutcomeClip,
			Quantity: clipped,
			Reason:   fmt.Sprintf("clipped from %d to %d by position size limit", quantity, clipped),
		}
	}

	return accept(quantity)
}
