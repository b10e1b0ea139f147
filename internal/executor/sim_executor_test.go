package executor

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"multi-asset-trader/internal/model"
)

var testTime = time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)

func TestExecuteBuy(t *testing.T) {
	e := NewSimExecutor(1000000, 0.001, zap.NewNop())

	trade, result := e.Execute("AAPL", model.ActionBuy, 100, 100, model.StrategyCombined, testTime)
	require.Equal(t, ResultFilled, result)
	assert.True(t, result.Filled())

	// 10000 交易额 + 10 手续费
	assert.InDelta(t, 989990.0, e.Cash(), 1e-9)
	assert.Equal(t, int64(100), e.Position("AAPL"))

	assert.Equal(t, "T000001", trade.ID)
	assert.Equal(t, model.ActionBuy, trade.Side)
	assert.InDelta(t, 10.0, trade.Fee, 1e-9)
	assert.Equal(t, model.StrategyCombined, trade.Strategy)
	assert.Equal(t, testTime, trade.Timestamp)
}

func TestExecuteSell(t *testing.T) {
	e := NewSimExecutor(1000000, 0.001, zap.NewNop())

	_, result := e.Execute("AAPL", model.ActionBuy, 100, 100, model.StrategyCombined, testTime)
	require.Equal(t, ResultFilled, result)

	trade, result := e.Execute("AAPL", model.ActionSell, 60, 110, model.StrategyCombined, testTime)
	require.Equal(t, ResultFilled, result)

	// 卖出到账 6600 - 6.6 手续费
	assert.InDelta(t, 989990.0+6600.0-6.6, e.Cash(), 1e-9)
	assert.Equal(t, int64(40), e.Position("AAPL"))
	assert.Equal(t, "T000002", trade.ID)
}

func TestExecuteInsufficientCash(t *testing.T) {
	e := NewSimExecutor(1000, 0.001, zap.NewNop())

	_, result := e.Execute("AAPL", model.ActionBuy, 100, 100, model.StrategyCombined, testTime)
	assert.Equal(t, ResultInsufficientCash, result)
	assert.False(t, result.Filled())

	// 被拒的订单不留任何痕迹
	assert.InDelta(t, 1000.0, e.Cash(), 1e-9)
	assert.Zero(t, e.Position("AAPL"))
	assert.Empty(t, e.TradeHistory())
	assert.Zero(t, e.TradeCount())
}

func TestExecuteInsufficientPosition(t *testing.T) {
	e := NewSimExecutor(1000000, 0.001, zap.NewNop())

	_, result := e.Execute("AAPL", model.ActionBuy, 10, 100, model.StrategyCombined, testTime)
	require.Equal(t, ResultFilled, result)

	// 卖出不允许超过持仓，不产生负持仓
	_, result = e.Execute("AAPL", model.ActionSell, 11, 100, model.StrategyCombined, testTime)
	assert.Equal(t, ResultInsufficientPosition, result)
	assert.Equal(t, int64(10), e.Position("AAPL"))
}

func TestExecuteInvalidOrder(t *testing.T) {
	e := NewSimExecutor(1000000, 0.001, zap.NewNop())

	_, result := e.Execute("AAPL", model.ActionBuy, 0, 100, model.StrategyCombined, testTime)
	assert.Equal(t, ResultInvalidOrder, result)

	_, result = e.Execute("AAPL", model.ActionBuy, 100, -1, model.StrategyCombined, testTime)
	assert.Equal(t, ResultInvalidOrder, result)

	_, result = e.Execute("AAPL", model.ActionHold, 100, 100, model.StrategyCombined, testTime)
	assert.Equal(t, ResultInvalidOrder, result)
}

func TestTradeHistoryBounded(t *testing.T) {
	e := NewSimExecutor(100000000, 0, zap.NewNop())

	for i := 0; i < maxTradeHistory+50; i++ {
		_, result := e.Execute("BTC", model.ActionBuy, 1, 1, model.StrategyCombined, testTime)
		require.Equal(t, ResultFilled, result)
	}

	history := e.TradeHistory()
	assert.Len(t, history, maxTradeHistory)
	// 序号持续累计，历史只是滑动窗口
	assert.Equal(t, int64(maxTradeHistory+50), e.TradeCount())
	assert.Equal(t, fmt.Sprintf("T%06d", maxTradeHistory+50), history[len(history)-1].ID)
}

func TestPositionsReturnsCopy(t *testing.T) {
	e := NewSimExecutor(1000000, 0.001, zap.NewNop())

	_, result := e.Execute("AAPL", model.ActionBuy, 10, 100, model.StrategyCombined, testTime)
	require.Equal(t, ResultFilled, result)

	positions := e.Positions()
	positions["AAPL"] = 999
	assert.Equal(t, int64(10), e.Position("AAPL"))
}
