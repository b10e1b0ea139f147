package strategy

import (
	"math"

	"multi-asset-trader/internal/model"
	"multi-asset-trader/pkg/ta"
)

// VWAP 动量策略的评分权重与阈值
const (
	vwapMinPoints = 5 // 少于 5 个点维持 WARMUP

	weightDeviation  = 0.4
	weightMomentum   = 0.4
	weightVolatility = 0.2

	scoreThreshold = 0.02 // 评分越过 ±阈值才会给出方向信号
)

// vwapBook 单个符号的滚动价格/成交量缓冲区
type vwapBook struct {
	prices  []float64
	volumes []float64
}

// VWAPMomentum 结合 VWAP 偏离、动量斜率和波动率阻尼的加权评分策略
// 评分显著为负 (价格相对 VWAP 低估且动量配合) 时买入，显著为正时卖出
type VWAPMomentum struct {
	lookback int
	books    map[string]*vwapBook
}

// NewVWAPMomentum 创建策略，lookback 是滚动窗口长度 (建议 20)
func NewVWAPMomentum(lookback int) *VWAPMomentum {
	if lookback < vwapMinPoints {
		lookback = vwapMinPoints
	}
	return &VWAPMomentum{
		lookback: lookback,
		books:    make(map[string]*vwapBook),
	}
}

func (s *VWAPMomentum) Tag() model.StrategyTag {
	return model.StrategyVWAPMomentum
}

// State 实现 Strategy 接口
func (s *VWAPMomentum) State(symbol string) State {
	book, ok := s.books[symbol]
	if !ok || len(book.prices) < vwapMinPoints {
		return StateWarmup
	}
	return StateActive
}

// OnTick 把行情写入滚动缓冲区并输出信号
func (s *VWAPMomentum) OnTick(tick model.MarketTick) model.Signal {
	book, ok := s.books[tick.Symbol]
	if !ok {
		book = &vwapBook{
			prices:  make([]float64, 0, s.lookback),
			volumes: make([]float64, 0, s.lookback),
		}
		s.books[tick.Symbol] = book
	}

	book.prices = append(book.prices, tick.Price)
	book.volumes = append(book.volumes, tick.Volume)
	if len(book.prices) > s.lookback {
		book.prices = book.prices[1:]
		book.volumes = book.volumes[1:]
	}

	if len(book.prices) < vwapMinPoints {
		return hold(tick.Symbol, s.Tag())
	}

	score := s.score(book, tick.Price)
	confidence := math.Min(1.0, math.Abs(score))

	signal := model.Signal{
		Symbol:     tick.Symbol,
		Action:     model.ActionHold,
		Confidence: confidence,
		Strategy:   s.Tag(),
	}
	switch {
	case score < -scoreThreshold:
		signal.Action = model.ActionBuy
	case score > scoreThreshold:
		signal.Action = model.ActionSell
	}
	return signal
}

// score = 偏离×0.4 + 归一化动量×0.4 + 波动率阻尼×0.2
func (s *VWAPMomentum) score(book *vwapBook, price float64) float64 {
	vwap := ta.Vwap(book.prices, book.volumes)
	momentum := ta.Momentum(book.prices)
	volatility := ta.Volatility(book.prices)

	var deviation float64
	if vwap > 0 {
		deviation = (price - vwap) / vwap
	}

	var momentumFactor float64
	if price > 0 {
		momentumFactor = momentum / price
	}

	// 波动越高阻尼越小，抑制高波动期的信号强度
	volFactor := 1.0
	if volatility > 0 {
		volFactor = 1.0 / (1.0 + volatility*100)
	}

	return deviation*weightDeviation + momentumFactor*weightMomentum + volFactor*weightVolatility
}

// Indicators 返回符号当前的指标视图，供状态快照使用
func (s *VWAPMomentum) Indicators(symbol string) (vwap, momentum, volatility float64) {
	book, ok := s.books[symbol]
	if !ok {
		return 0, 0, 0
	}
	return ta.Vwap(book.prices, book.volumes), ta.Momentum(book.prices), ta.Volatility(book.prices)
}
