package portfolio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multi-asset-trader/internal/model"
)

func update(l *Ledger, totalValue float64, step int) model.Portfolio {
	now := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC).Add(time.Duration(step) * time.Second)
	return l.Update(totalValue, nil, nil, now)
}

func TestUpdateTotalValue(t *testing.T) {
	l := NewLedger(1000000)
	now := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)

	positions := map[string]int64{"AAPL": 100, "BTC": 2, "GONE": 5, "FLAT": 0}
	prices := map[string]float64{"AAPL": 150, "BTC": 45000, "FLAT": 10}

	// 无报价的持仓和数量为 0 的持仓不计入总值
	p := l.Update(900000, positions, prices, now)
	assert.InDelta(t, 900000+100*150.0+2*45000.0, p.TotalValue, 1e-9)
	assert.InDelta(t, 900000.0, p.Cash, 1e-9)
	assert.Zero(t, p.DailyPnL)
	assert.InDelta(t, p.TotalValue-1000000, p.TotalPnL, 1e-9)
}

func TestUpdateDailyPnL(t *testing.T) {
	l := NewLedger(1000000)

	update(l, 1000000, 0)
	p := update(l, 1010000, 1)
	assert.InDelta(t, 10000.0, p.DailyPnL, 1e-9)

	p = update(l, 995000, 2)
	assert.InDelta(t, -15000.0, p.DailyPnL, 1e-9)
}

func TestMaxDrawdown(t *testing.T) {
	l := NewLedger(100)

	// 100 -> 120 -> 90：峰值 120 回撤到 90，回撤 25%
	update(l, 100, 0)
	update(l, 120, 1)
	p := update(l, 90, 2)
	assert.InDelta(t, 0.25, p.MaxDrawdown, 1e-9)

	// 创出新高不会缩小历史最大回撤
	p = update(l, 150, 3)
	assert.InDelta(t, 0.25, p.MaxDrawdown, 1e-9)
}

func TestSharpeZeroOnFlatSeries(t *testing.T) {
	l := NewLedger(100)

	for i := 0; i < 5; i++ {
		p := update(l, 100, i)
		assert.Zero(t, p.SharpeRatio)
	}
}

func TestSharpeSignFollowsTrend(t *testing.T) {
	l := NewLedger(100)

	for i, v := range []float64{100, 101, 103, 104, 107} {
		update(l, v, i)
	}
	p := update(l, 109, 5)
	assert.Greater(t, p.SharpeRatio, 0.0)

	l = NewLedger(100)
	for i, v := range []float64{100, 99, 97, 96, 93} {
		update(l, v, i)
	}
	p = update(l, 91, 5)
	assert.Less(t, p.SharpeRatio, 0.0)
}

func TestWinRate(t *testing.T) {
	l := NewLedger(100)

	// 4 个收益周期中 3 个为正
	for i, v := range []float64{100, 110, 120, 115, 130} {
		update(l, v, i)
	}
	p := update(l, 130, 5)
	// 第 5 个周期持平不算赢，3/5
	assert.InDelta(t, 0.6, p.WinRate, 1e-9)
}

func TestSnapshotsBounded(t *testing.T) {
	l := NewLedger(100)

	for i := 0; i < maxSnapshots+25; i++ {
		update(l, 100+float64(i), i)
	}

	snapshots := l.Snapshots()
	assert.Len(t, snapshots, maxSnapshots)
	assert.InDelta(t, 100+float64(maxSnapshots+24), snapshots[len(snapshots)-1].TotalValue, 1e-9)
}

func TestSentimentDerivation(t *testing.T) {
	l := NewLedger(1000)
	require.Equal(t, model.SentimentNeutral, l.Sentiment())

	// 快照不足回看窗口时维持中性
	for i := 0; i < sentimentLookback; i++ {
		update(l, 1000, i)
	}
	assert.Equal(t, model.SentimentNeutral, l.Sentiment())

	// 窗口内净值上涨超过 2% -> 看多
	for i := 0; i < sentimentLookback; i++ {
		update(l, 1000+float64(i+1)*10, sentimentLookback+i)
	}
	assert.Equal(t, model.SentimentBullish, l.Sentiment())

	// 窗口内净值下跌超过 2% -> 看空
	for i := 0; i < sentimentLookback; i++ {
		update(l, 1100-float64(i+1)*20, 2*sentimentLookback+i)
	}
	assert.Equal(t, model.SentimentBearish, l.Sentiment())
}
