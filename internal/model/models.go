package model

import "time"

// AssetClass 资产类别
type AssetClass string

const (
	ClassStock     AssetClass = "stock"
	ClassCrypto    AssetClass = "crypto"
	ClassForex     AssetClass = "forex"
	ClassCommodity AssetClass = "commodity"
)

// Valid 检查是否为已知的资产类别
func (c AssetClass) Valid() bool {
	switch c {
	case ClassStock, ClassCrypto, ClassForex, ClassCommodity:
		return true
	}
	return false
}

// Asset 代表一个可交易资产
// 注册完成后除 BasePrice / BaseVolume 外全部只读；
// BasePrice 和 BaseVolume 由 MarketDataGenerator 独占更新
type Asset struct {
	Symbol       string             `json:"symbol"`
	Name         string             `json:"name"`
	Class        AssetClass         `json:"class"`
	BasePrice    float64            `json:"base_price"`
	Volatility   float64            `json:"volatility"` // 基础波动率系数
	BaseVolume   float64            `json:"base_volume"`
	MarketOpen   int                `json:"market_open"`  // 开盘小时，窗口为 [MarketOpen, MarketClose)
	MarketClose  int                `json:"market_close"` // 收盘小时
	Correlations map[string]float64 `json:"-"`            // Symbol -> 相关系数
}

// MarketTick 代表单个周期内某资产的市场快照
type MarketTick struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Volume    float64   `json:"volume"`
	Bid       float64   `json:"bid"`
	Ask       float64   `json:"ask"`
	Spread    float64   `json:"spread"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Open      float64   `json:"open"`
	Timestamp time.Time `json:"timestamp"`
}

// PerformanceSnapshot 每个周期追加一条，用于推导收益率指标
type PerformanceSnapshot struct {
	Timestamp  time.Time       `json:"timestamp"`
	TotalValue float64         `json:"total_value"`
	Cash       float64         `json:"cash"`
	DailyPnL   float64         `json:"daily_pnl"`
	Sentiment  MarketSentiment `json:"sentiment"`
}

// MarketSentiment 市场情绪，由最近的组合净值走势推导，反馈到行情波动率
type MarketSentiment string

const (
	SentimentBullish MarketSentiment = "bullish"
	SentimentBearish MarketSentiment = "bearish"
	SentimentNeutral MarketSentiment = "neutral"
)

// NewsEvent 模拟的市场新闻事件 (仅用于状态展示)
type NewsEvent struct {
	Headline  string    `json:"headline"`
	Impact    string    `json:"impact"` // positive / negative / neutral
	Timestamp time.Time `json:"timestamp"`
}
