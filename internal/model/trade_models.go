package model

import (
	"fmt"
	"time"
)

// SignalAction 定义了信号动作
type SignalAction string

const (
	ActionBuy  SignalAction = "BUY"
	ActionSell SignalAction = "SELL"
	ActionHold SignalAction = "HOLD"
)

// StrategyTag 标记信号或成交的来源策略
type StrategyTag string

const (
	StrategyVWAPMomentum  StrategyTag = "vwap_momentum"
	StrategyMeanReversion StrategyTag = "mean_reversion"
	StrategyCombined      StrategyTag = "combined" // 两个策略融合后的信号
)

// Signal 结构体定义了策略层向执行层发出的意向
// 每个周期重新生成，生成后不再修改
type Signal struct {
	Symbol     string       `json:"symbol"`
	Action     SignalAction `json:"action"`
	Confidence float64      `json:"confidence"` // [0,1] 归一化信号强度
	Strategy   StrategyTag  `json:"strategy"`
}

func (s Signal) String() string {
	return fmt.Sprintf("SIGNAL [%s | %s] Confidence: %.3f | Source: %s",
		s.Symbol, s.Action, s.Confidence, s.Strategy)
}

// Trade 记录一笔已经成交并落账的交易，记录后不可变
type Trade struct {
	ID        string       `json:"id"` // 单调递增序列，例如 "T000001"
	Symbol    string       `json:"symbol"`
	Side      SignalAction `json:"side"` // BUY 或 SELL
	Quantity  int64        `json:"quantity"`
	Price     float64      `json:"price"`
	Fee       float64      `json:"fee"`
	Timestamp time.Time    `json:"timestamp"`
	Strategy  StrategyTag  `json:"strategy"`
}

func (t Trade) String() string {
	return fmt.Sprintf("TRADE %s [%s %s] %d @ %.4f | Fee: %.4f",
		t.ID, t.Side, t.Symbol, t.Quantity, t.Price, t.Fee)
}

// Portfolio 是组合账本每个周期重新计算的视图
// 唯一写入方是 PortfolioLedger
type Portfolio struct {
	Cash        float64          `json:"cash"`
	Positions   map[string]int64 `json:"positions"` // Symbol -> 带符号持仓数量
	TotalValue  float64          `json:"total_value"`
	DailyPnL    float64          `json:"daily_pnl"`
	TotalPnL    float64          `json:"total_pnl"`
	SharpeRatio float64          `json:"sharpe_ratio"`
	MaxDrawdown float64          `json:"max_drawdown"`
	WinRate     float64          `json:"win_rate"`
}
