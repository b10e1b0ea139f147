package market

import (
	"math"
	"math/rand"
	"time"

	"multi-asset-trader/internal/model"
)

// 行情合成常量
const (
	tickScale       = 0.01 // 把年化波动率系数折算到单个周期
	shockProb       = 0.3  // 冲击事件概率，触发时标准差翻倍
	shockMultiplier = 2.0
	offHoursFactor  = 0.1 // 固定交易时段的资产在盘外的波动率衰减

	volumeSigma = 0.15 // 成交量随机游走的标准差
	minVolume   = 1000.0
)

// 情绪对波动率的放大系数
var sentimentMultiplier = map[model.MarketSentiment]float64{
	model.SentimentBullish: 1.2,
	model.SentimentBearish: 1.3,
	model.SentimentNeutral: 1.0,
}

// Generator 为每个资产每个周期合成一条价格/成交量/买卖价的行情
// 随机源由外部注入，固定种子时输出完全可复现。
// 只被调度器单线程调用，自身不加锁。
type Generator struct {
	rng       *rand.Rand
	sentiment model.MarketSentiment
}

// NewGenerator 创建行情生成器
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{
		rng:       rng,
		sentiment: model.SentimentNeutral,
	}
}

// SetSentiment 更新市场情绪 (由组合账本在每个周期结束时推导)
func (g *Generator) SetSentiment(s model.MarketSentiment) {
	if _, known := sentimentMultiplier[s]; known {
		g.sentiment = s
	}
}

// NextTick 为资产合成下一条行情，并更新资产的基准价格和基准成交量
// 永远成功，没有错误路径
func (g *Generator) NextTick(asset *model.Asset, now time.Time) model.MarketTick {
	sigma := g.effectiveVolatility(asset, now)

	// 冲击事件：小概率放大标准差，模拟突发行情
	if g.rng.Float64() < shockProb {
		sigma *= shockMultiplier
	}

	open := asset.BasePrice
	price := open * (1 + g.rng.NormFloat64()*sigma)
	price = math.Max(price, classPriceFloor(asset.Class))

	// 成交量独立做乘性随机游走
	volume := asset.BaseVolume * (1 + g.rng.NormFloat64()*volumeSigma)
	volume = math.Max(volume, minVolume)

	// 最高/最低价是围绕新价格的小幅扰动
	high := price * (1 + g.rng.Float64()*0.02)
	low := price * (1 - g.rng.Float64()*0.02)

	spread := price * classSpreadPct(asset.Class)
	bid := price - spread/2
	ask := price + spread/2

	// 为下一周期保存基准状态
	asset.BasePrice = price
	asset.BaseVolume = volume

	return model.MarketTick{
		Symbol:    asset.Symbol,
		Price:     price,
		Volume:    volume,
		Bid:       bid,
		Ask:       ask,
		Spread:    spread,
		High:      high,
		Low:       low,
		Open:      open,
		Timestamp: now,
	}
}

// effectiveVolatility = 基础波动率 × 情绪系数 × 类别系数 × 盘外衰减
func (g *Generator) effectiveVolatility(asset *model.Asset, now time.Time) float64 {
	vol := asset.Volatility * sentimentMultiplier[g.sentiment] * classVolMultiplier(asset.Class) * tickScale

	// 只有股票有固定交易时段，盘外波动率大幅衰减
	if asset.Class == model.ClassStock {
		hour := now.Hour()
		if hour < asset.MarketOpen || hour >= asset.MarketClose {
			vol *= offHoursFactor
		}
	}

	return vol
}

func classVolMultiplier(class model.AssetClass) float64 {
	switch class {
	case model.ClassStock:
		return 1.3
	case model.ClassCrypto:
		return 1.5
	case model.ClassForex:
		return 0.8
	case model.ClassCommodity:
		return 0.9
	}
	return 1.0
}

// classPriceFloor 各类别的最低价格，防止价格游走到不合理区间
func classPriceFloor(class model.AssetClass) float64 {
	switch class {
	case model.ClassStock:
		return 1.0
	case model.ClassCrypto:
		return 0.01
	case model.ClassForex:
		return 0.0001
	case model.ClassCommodity:
		return 0.01
	}
	return 0.01
}

func classSpreadPct(class model.AssetClass) float64 {
	if class == model.ClassStock {
		return 0.001
	}
	return 0.01
}
