package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multi-asset-trader/internal/model"
)

func tick(symbol string, price, volume float64) model.MarketTick {
	return model.MarketTick{
		Symbol:    symbol,
		Price:     price,
		Volume:    volume,
		Timestamp: time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC),
	}
}

func TestVWAPMomentumWarmup(t *testing.T) {
	s := NewVWAPMomentum(20)

	assert.Equal(t, StateWarmup, s.State("AAPL"))
	for _, price := range []float64{100, 101, 102, 103} {
		signal := s.OnTick(tick("AAPL", price, 1000))
		assert.Equal(t, model.ActionHold, signal.Action)
		assert.Zero(t, signal.Confidence)
		assert.Equal(t, model.StrategyVWAPMomentum, signal.Strategy)
		assert.Equal(t, StateWarmup, s.State("AAPL"))
	}

	s.OnTick(tick("AAPL", 104, 1000))
	assert.Equal(t, StateActive, s.State("AAPL"))

	// 符号之间互不影响
	assert.Equal(t, StateWarmup, s.State("MSFT"))
}

func TestVWAPMomentumBuyOnUndervaluation(t *testing.T) {
	s := NewVWAPMomentum(20)

	// 价格持续下行且最后大幅跌破 VWAP：偏离和动量都为负
	var signal model.Signal
	for _, price := range []float64{110, 108, 106, 104, 90} {
		signal = s.OnTick(tick("AAPL", price, 1000))
	}

	require.Equal(t, model.ActionBuy, signal.Action)
	assert.Greater(t, signal.Confidence, 0.02)
	assert.LessOrEqual(t, signal.Confidence, 1.0)
	assert.Equal(t, model.StrategyVWAPMomentum, signal.Strategy)
}

func TestVWAPMomentumSellOnOvervaluation(t *testing.T) {
	s := NewVWAPMomentum(20)

	var signal model.Signal
	for _, price := range []float64{90, 92, 94, 96, 110} {
		signal = s.OnTick(tick("AAPL", price, 1000))
	}

	require.Equal(t, model.ActionSell, signal.Action)
	assert.Greater(t, signal.Confidence, 0.02)
}

func TestVWAPMomentumRollingWindow(t *testing.T) {
	s := NewVWAPMomentum(5)

	for price := 100.0; price < 120; price++ {
		s.OnTick(tick("AAPL", price, 1000))
	}

	// 窗口只保留最近 lookback 个点
	book := s.books["AAPL"]
	require.Len(t, book.prices, 5)
	require.Len(t, book.volumes, 5)
	assert.Equal(t, []float64{115, 116, 117, 118, 119}, book.prices)
}

func TestVWAPMomentumIndicators(t *testing.T) {
	s := NewVWAPMomentum(20)

	vwap, momentum, volatility := s.Indicators("AAPL")
	assert.Zero(t, vwap)
	assert.Zero(t, momentum)
	assert.Zero(t, volatility)

	for _, price := range []float64{100, 100, 100, 100, 100} {
		s.OnTick(tick("AAPL", price, 1000))
	}

	vwap, momentum, volatility = s.Indicators("AAPL")
	assert.InDelta(t, 100.0, vwap, 1e-9)
	assert.Zero(t, momentum)
	assert.Zero(t, volatility)
}
