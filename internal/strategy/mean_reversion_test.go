package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multi-asset-trader/internal/model"
)

func TestMeanReversionWarmup(t *testing.T) {
	s := NewMeanReversion(5, 2.0, 5)

	assert.Equal(t, StateWarmup, s.State("GOLD"))
	for _, price := range []float64{100, 100, 100, 100} {
		signal := s.OnTick(tick("GOLD", price, 1000))
		assert.Equal(t, model.ActionHold, signal.Action)
		assert.Equal(t, model.StrategyMeanReversion, signal.Strategy)
		assert.Equal(t, StateWarmup, s.State("GOLD"))
	}

	s.OnTick(tick("GOLD", 100, 1000))
	assert.Equal(t, StateActive, s.State("GOLD"))
}

func TestMeanReversionBuyOnOversold(t *testing.T) {
	s := NewMeanReversion(5, 1.5, 5)

	// 连续阴跌后急跌：价格击穿下轨且 RSI 深度超卖
	var signal model.Signal
	for _, price := range []float64{100, 100, 100, 100, 100, 99, 98, 97, 96, 75} {
		signal = s.OnTick(tick("GOLD", price, 1000))
	}

	require.Equal(t, model.ActionBuy, signal.Action)
	assert.Greater(t, signal.Confidence, 0.0)
	assert.LessOrEqual(t, signal.Confidence, 1.0)
}

func TestMeanReversionSellOnOverbought(t *testing.T) {
	s := NewMeanReversion(5, 1.5, 5)

	var signal model.Signal
	for _, price := range []float64{100, 100, 100, 100, 100, 101, 102, 103, 104, 125} {
		signal = s.OnTick(tick("GOLD", price, 1000))
	}

	require.Equal(t, model.ActionSell, signal.Action)
	assert.Greater(t, signal.Confidence, 0.0)
}

func TestMeanReversionHoldInsideBands(t *testing.T) {
	s := NewMeanReversion(5, 2.0, 5)

	// 温和波动不触发任何一侧
	var signal model.Signal
	for _, price := range []float64{100, 101, 99, 100, 101, 99, 100, 101} {
		signal = s.OnTick(tick("GOLD", price, 1000))
	}
	assert.Equal(t, model.ActionHold, signal.Action)
}

func TestMeanReversionBufferBounded(t *testing.T) {
	s := NewMeanReversion(5, 2.0, 5)

	for price := 100.0; price < 150; price++ {
		s.OnTick(tick("GOLD", price, 1000))
	}
	assert.Len(t, s.books["GOLD"], 10)
}

func TestMeanReversionIndicators(t *testing.T) {
	s := NewMeanReversion(5, 2.0, 5)

	for _, price := range []float64{100, 100, 100, 100, 100} {
		s.OnTick(tick("GOLD", price, 1000))
	}

	upper, middle, lower, rsi := s.Indicators("GOLD")
	assert.InDelta(t, 100.0, upper, 1e-9)
	assert.InDelta(t, 100.0, middle, 1e-9)
	assert.InDelta(t, 100.0, lower, 1e-9)
	// RSI 历史不足 (需要 period+1 个价格)，返回中性值
	assert.Equal(t, 50.0, rsi)
}
