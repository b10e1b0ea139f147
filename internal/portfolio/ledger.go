package portfolio

import (
	"math"
	"time"

	"multi-asset-trader/internal/model"
)

const (
	// 绩效快照只保留最近 N 条，收益率指标在这个窗口上推导
	maxSnapshots = 200

	// 市场情绪回看最近 10 条快照，净值变动超过 ±2% 触发情绪切换
	sentimentLookback  = 10
	sentimentThreshold = 0.02
)

// Ledger 是组合状态与绩效指标的唯一写入方
// 每个周期在全部执行完成之后调用一次 Update，
// 总值严格由 现金 + Σ 持仓×最新价 重算，不允许漂移。
type Ledger struct {
	initialCash float64
	snapshots   []model.PerformanceSnapshot

	sharpe      float64
	maxDrawdown float64
	winRate     float64
	sentiment   model.MarketSentiment
}

// NewLedger 创建组合账本
func NewLedger(initialCash float64) *Ledger {
	return &Ledger{
		initialCash: initialCash,
		sentiment:   model.SentimentNeutral,
	}
}

// Update 重算组合状态，追加绩效快照并刷新衍生指标
// prices 是本周期各符号的最新成交价
func (l *Ledger) Update(cash float64, positions map[string]int64, prices map[string]float64, now time.Time) model.Portfolio {
	totalValue := cash
	for symbol, quantity := range positions {
		if quantity == 0 {
			continue
		}
		if price, ok := prices[symbol]; ok {
			totalValue += float64(quantity) * price
		}
	}

	// 单周期盈亏 = 当前总值 - 上一快照总值，首个周期为 0
	var dailyPnL float64
	if n := len(l.snapshots); n > 0 {
		dailyPnL = totalValue - l.snapshots[n-1].TotalValue
	}

	l.snapshots = append(l.snapshots, model.PerformanceSnapshot{
		Timestamp:  now,
		TotalValue: totalValue,
		Cash:       cash,
		DailyPnL:   dailyPnL,
		Sentiment:  l.sentiment,
	})
	if len(l.snapshots) > maxSnapshots {
		l.snapshots = l.snapshots[len(l.snapshots)-maxSnapshots:]
	}

	l.recomputeMetrics()
	l.deriveSentiment()

	return model.Portfolio{
		Cash:        cash,
		Positions:   positions,
		TotalValue:  totalValue,
		DailyPnL:    dailyPnL,
		TotalPnL:    totalValue - l.initialCash,
		SharpeRatio: l.sharpe,
		MaxDrawdown: l.maxDrawdown,
		WinRate:     l.winRate,
	}
}

// Snapshots 返回绩效历史副本
func (l *Ledger) Snapshots() []model.PerformanceSnapshot {
	out := make([]model.PerformanceSnapshot, len(l.snapshots))
	copy(out, l.snapshots)
	return out
}

// Sentiment 返回最近一次推导出的市场情绪
func (l *Ledger) Sentiment() model.MarketSentiment {
	return l.sentiment
}

// recomputeMetrics 在快照窗口上重算 Sharpe、最大回撤和胜率
// 少于 2 条快照时全部维持 0
func (l *Ledger) recomputeMetrics() {
	if len(l.snapshots) < 2 {
		return
	}

	// 收益率序列 r[i] = (v[i] - v[i-1]) / v[i-1]
	returns := make([]float64, 0, len(l.snapshots)-1)
	for i := 1; i < len(l.snapshots); i++ {
		prev := l.snapshots[i-1].TotalValue
		if prev > 0 {
			returns = append(returns, (l.snapshots[i].TotalValue-prev)/prev)
		}
	}
	if len(returns) == 0 {
		return
	}

	// Sharpe = 平均收益 / 收益样本标准差 (无风险利率按 0)，标准差为 0 时取 0
	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var stdev float64
	if len(returns) > 1 {
		var variance float64
		for _, r := range returns {
			variance += (r - mean) * (r - mean)
		}
		stdev = math.Sqrt(variance / float64(len(returns)-1))
	}
	if stdev > 0 {
		l.sharpe = mean / stdev
	} else {
		l.sharpe = 0
	}

	// 最大回撤 = max (峰值 - 当前值) / 峰值
	peak := l.snapshots[0].TotalValue
	var maxDD float64
	for _, snap := range l.snapshots {
		if snap.TotalValue > peak {
			peak = snap.TotalValue
		}
		if peak > 0 {
			if dd := (peak - snap.TotalValue) / peak; dd > maxDD {
				maxDD = dd
			}
		}
	}
	l.maxDrawdown = maxDD

	// 胜率 = 正收益周期占比
	var wins int
	for _, r := range returns {
		if r > 0 {
			wins++
		}
	}
	l.winRate = float64(wins) / float64(len(returns))
}

// deriveSentiment 从快照尾部推导市场情绪，反馈给行情生成器
func (l *Ledger) deriveSentiment() {
	if len(l.snapshots) <= sentimentLookback {
		return
	}

	window := l.snapshots[len(l.snapshots)-sentimentLookback:]
	first := window[0].TotalValue
	last := window[len(window)-1].TotalValue
	if first <= 0 {
		return
	}

	switch {
	case last > first*(1+sentimentThreshold):
		l.sentiment = model.SentimentBullish
	case last < first*(1-sentimentThreshold):
		l.sentiment = model.SentimentBearish
	default:
		l.sentiment = model.SentimentNeutral
	}
}
