package executor

import (
	"fmt"
	"time"

	"multi-asset-trader/internal/model"

	"go.uber.org/zap"
)

// 成交历史只保留最近 N 笔，防止长时间运行时无界增长
const maxTradeHistory = 200

// SimExecutor 把校验过的交易落账到现金/持仓状态
// 不变量：现金永远 >= 0；卖出不允许超过持仓 (不产生负持仓)；
// 交易记录追加当且仅当现金/持仓确实发生了变更。
// 并发安全由上层调度器的单写者锁保证，自身不加锁。
type SimExecutor struct {
	feeRate   float64
	cash      float64
	positions map[string]int64
	trades    []model.Trade
	seq       int64
	logger    *zap.Logger
}

// NewSimExecutor 创建执行引擎
func NewSimExecutor(initialCash, feeRate float64, logger *zap.Logger) *SimExecutor {
	return &SimExecutor{
		feeRate:   feeRate,
		cash:      initialCash,
		positions: make(map[string]int64),
		logger:    logger,
	}
}

// Execute 实现 Executor 接口
// fee = 数量 × 价格 × 费率；买入要求现金覆盖交易额加手续费，
// 卖出要求持仓覆盖数量，到账金额扣除手续费
func (e *SimExecutor) Execute(symbol string, side model.SignalAction, quantity int64, price float64,
	strategy model.StrategyTag, now time.Time) (model.Trade, Result) {

	if quantity <= 0 || price <= 0 {
		return model.Trade{}, ResultInvalidOrder
	}

	value := float64(quantity) * price
	fee := value * e.feeRate

	switch side {
	case model.ActionBuy:
		if e.cash < value+fee {
			return model.Trade{}, ResultInsufficientCash
		}
		e.cash -= value + fee
		e.positions[symbol] += quantity

	case model.ActionSell:
		if e.positions[symbol] < quantity {
			return model.Trade{}, ResultInsufficientPosition
		}
		e.cash += value - fee
		e.positions[symbol] -= quantity

	default:
		return model.Trade{}, ResultInvalidOrder
	}

	e.seq++
	trade := model.Trade{
		ID:        fmt.Sprintf("T%06d", e.seq),
		Symbol:    symbol,
		Side:      side,
		Quantity:  quantity,
		Price:     price,
		Fee:       fee,
		Timestamp: now,
		Strategy:  strategy,
	}
	e.trades = append(e.trades, trade)
	if len(e.trades) > maxTradeHistory {
		e.trades = e.trades[len(e.trades)-maxTradeHistory:]
	}

	e.logger.Info("Trade filled",
		zap.String("id", trade.ID),
		zap.String("symbol", symbol),
		zap.String("side", string(side)),
		zap.Int64("quantity", quantity),
		zap.Float64("price", price),
		zap.Float64("fee", fee),
		zap.Float64("cash", e.cash))

	return trade, ResultFilled
}

// Cash 实现 Executor 接口
func (e *SimExecutor) Cash() float64 {
	return e.cash
}

// Position 实现 Executor 接口
func (e *SimExecutor) Position(symbol string) int64 {
	return e.positions[symbol]
}

// Positions 返回持仓副本，防止外部修改
func (e *SimExecutor) Positions() map[string]int64 {
	out := make(map[string]int64, len(e.positions))
	for symbol, qty := range e.positions {
		out[symbol] = qty
	}
	return out
}

// TradeHistory 返回成交记录副本
func (e *SimExecutor) TradeHistory() []model.Trade {
	out := make([]model.Trade, len(e.trades))
	copy(out, e.trades)
	return out
}

// TradeCount 实现 Executor 接口
func (e *SimExecutor) TradeCount() int64 {
	return e.seq
}
