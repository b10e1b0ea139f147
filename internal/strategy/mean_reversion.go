package strategy

import (
	"math"

	"multi-asset-trader/internal/model"
	"multi-asset-trader/pkg/ta"
)

// 均值回归的超买超卖阈值
const (
	rsiOversold   = 30.0
	rsiOverbought = 70.0
)

// MeanReversion 基于布林带 + RSI 的均值回归策略
// 价格跌破下轨且 RSI 超卖时买入，升破上轨且 RSI 超买时卖出，
// 置信度随价格越轨的幅度缩放 (上限 1.0)
type MeanReversion struct {
	period    int
	k         float64
	rsiPeriod int
	books     map[string][]float64
}

// NewMeanReversion 创建策略 (建议 period=20, k=2.0, rsiPeriod=14)
func NewMeanReversion(period int, k float64, rsiPeriod int) *MeanReversion {
	if period < 2 {
		period = 2
	}
	return &MeanReversion{
		period:    period,
		k:         k,
		rsiPeriod: rsiPeriod,
		books:     make(map[string][]float64),
	}
}

func (s *MeanReversion) Tag() model.StrategyTag {
	return model.StrategyMeanReversion
}

// State 实现 Strategy 接口
func (s *MeanReversion) State(symbol string) State {
	if len(s.books[symbol]) < s.period {
		return StateWarmup
	}
	return StateActive
}

// OnTick 把价格写入滚动缓冲区并输出信号
// 缓冲区保留 2×period 个价格，保证 RSI 有足够历史
func (s *MeanReversion) OnTick(tick model.MarketTick) model.Signal {
	prices := append(s.books[tick.Symbol], tick.Price)
	if maxLen := s.period * 2; len(prices) > maxLen {
		prices = prices[len(prices)-maxLen:]
	}
	s.books[tick.Symbol] = prices

	if len(prices) < s.period {
		return hold(tick.Symbol, s.Tag())
	}

	upper, _, lower := ta.BBands(prices, s.period, s.k)
	rsi := ta.Rsi(prices, s.rsiPeriod)
	price := tick.Price

	// 超卖：价格跌破下轨且 RSI 确认
	if price < lower && rsi < rsiOversold && lower > 0 {
		confidence := math.Min(1.0, (lower-price)/lower*2)
		return model.Signal{Symbol: tick.Symbol, Action: model.ActionBuy, Confidence: confidence, Strategy: s.Tag()}
	}

	// 超买：价格升破上轨且 RSI 确认
	if price > upper && rsi > rsiOverbought && upper > 0 {
		confidence := math.Min(1.0, (price-upper)/upper*2)
		return model.Signal{Symbol: tick.Symbol, Action: model.ActionSell, Confidence: confidence, Strategy: s.Tag()}
	}

	return hold(tick.Symbol, s.Tag())
}

// Indicators 返回符号当前的指标视图，供状态快照使用
func (s *MeanReversion) Indicators(symbol string) (upper, middle, lower, rsi float64) {
	prices := s.books[symbol]
	upper, middle, lower = ta.BBands(prices, s.period, s.k)
	rsi = ta.Rsi(prices, s.rsiPeriod)
	return upper, middle, lower, rsi
}
