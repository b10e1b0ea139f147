// Package ta 提供策略层使用的指标计算
// 全部为无状态纯函数：输入是有序价格/成交量序列，输出当前指标值。
// 历史不足时返回文档约定的中性值，从不返回错误。
package ta

import (
	"math"

	"github.com/markcheno/go-talib"
)

// Vwap 计算成交量加权平均价
// 总成交量为 0 时返回 0
func Vwap(prices, volumes []float64) float64 {
	if len(prices) == 0 || len(prices) != len(volumes) {
		return 0
	}

	var totalPV, totalVolume float64
	for i := range prices {
		totalPV += prices[i] * volumes[i]
		totalVolume += volumes[i]
	}

	if totalVolume == 0 {
		return 0
	}
	return totalPV / totalVolume
}

// Rsi 计算相对强弱指数，取值范围 [0,100]
// 注意：对最近 period 个变化量做简单平均，而非 Wilder 平滑。
// 历史少于 period+1 个价格时返回中性值 50；平均亏损为 0 时返回 100。
func Rsi(prices []float64, period int) float64 {
	if period <= 0 || len(prices) < period+1 {
		return 50.0
	}

	var sumGain, sumLoss float64
	for i := len(prices) - period; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			sumGain += change
		} else {
			sumLoss += -change
		}
	}

	avgGain := sumGain / float64(period)
	avgLoss := sumLoss / float64(period)

	if avgLoss == 0 {
		return 100.0
	}

	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}

// BBands 计算布林带 (SMA ± k 倍标准差)
// 历史少于 period 个价格时返回 (0, 0, 0)
func BBands(prices []float64, period int, k float64) (upper, middle, lower float64) {
	if period <= 0 || len(prices) < period {
		return 0, 0, 0
	}

	up, mid, dn := talib.BBands(prices, period, k, k, talib.SMA)
	return up[len(up)-1], mid[len(mid)-1], dn[len(dn)-1]
}

// Momentum 对价格做索引位置上的最小二乘拟合，返回斜率
// 少于 5 个点时返回 0
func Momentum(prices []float64) float64 {
	n := len(prices)
	if n < 5 {
		return 0
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, p := range prices {
		x := float64(i)
		sumX += x
		sumY += p
		sumXY += x * p
		sumX2 += x * x
	}

	denom := float64(n)*sumX2 - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (float64(n)*sumXY - sumX*sumY) / denom
}

// Volatility 计算周期收益率的样本标准差
// 有效收益率少于 2 个时返回 0
func Volatility(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			continue
		}
		returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
	}

	if len(returns) < 2 {
		return 0
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns) - 1)

	return math.Sqrt(variance)
}
