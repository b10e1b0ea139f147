package executor

import (
	"time"

	"multi-asset-trader/internal/model"
)

// Result 是执行结果；非 FILLED 的结果是正常的"未成交"，不是错误
type Result string

const (
	ResultFilled               Result = "FILLED"
	ResultInsufficientCash     Result = "INSUFFICIENT_CASH"
	ResultInsufficientPosition Result = "INSUFFICIENT_POSITION"
	ResultInvalidOrder         Result = "INVALID_ORDER"
)

// Filled 报告这笔订单是否实际成交落账
func (r Result) Filled() bool {
	return r == ResultFilled
}

// Executor 是交易执行器的通用接口
// 现金和持仓只能通过 Execute 变更，保证成交记录与账户状态严格一致
type Executor interface {
	// Execute 尝试执行一笔订单；成交时返回落账的交易记录
	Execute(symbol string, side model.SignalAction, quantity int64, price float64,
		strategy model.StrategyTag, now time.Time) (model.Trade, Result)

	// Cash 返回当前现金余额
	Cash() float64

	// Position 返回某符号的当前持仓数量
	Position(symbol string) int64

	// Positions 返回全部持仓的副本
	Positions() map[string]int64

	// TradeHistory 返回最近成交记录的副本 (有界窗口)
	TradeHistory() []model.Trade

	// TradeCount 返回累计成交笔数 (含已滚出历史窗口的)
	TradeCount() int64
}
