package market

import (
	"fmt"
	"sort"

	"multi-asset-trader/internal/model"
)

// pairKey 是无序符号对的规范化键 (按字典序排列)
type pairKey struct {
	a, b string
}

func newPairKey(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// Registry 是可交易资产的静态目录
// 构造完成后除资产的 BasePrice / BaseVolume 外全部只读；
// 相关系数被展平为符号对查找表，双向对称。
type Registry struct {
	assets       map[string]*model.Asset
	symbols      []string // 确定性遍历顺序
	correlations map[pairKey]float64
}

// NewRegistry 构建并校验资产目录
// 任何配置问题在这里直接失败，调度器启动前即可发现
func NewRegistry(assets []*model.Asset) (*Registry, error) {
	if len(assets) == 0 {
		return nil, fmt.Errorf("registry: no assets configured")
	}

	r := &Registry{
		assets:       make(map[string]*model.Asset, len(assets)),
		correlations: make(map[pairKey]float64),
	}

	for _, asset := range assets {
		if asset.Symbol == "" {
			return nil, fmt.Errorf("registry: asset with empty symbol")
		}
		if _, exists := r.assets[asset.Symbol]; exists {
			return nil, fmt.Errorf("registry: duplicate symbol %s", asset.Symbol)
		}
		if !asset.Class.Valid() {
			return nil, fmt.Errorf("registry: %s has unknown asset class %q", asset.Symbol, asset.Class)
		}
		if asset.BasePrice <= 0 {
			return nil, fmt.Errorf("registry: %s has non-positive base price %.4f", asset.Symbol, asset.BasePrice)
		}
		if asset.Volatility <= 0 {
			return nil, fmt.Errorf("registry: %s has non-positive volatility %.4f", asset.Symbol, asset.Volatility)
		}
		if asset.MarketOpen < 0 || asset.MarketClose > 24 || asset.MarketOpen >= asset.MarketClose {
			return nil, fmt.Errorf("registry: %s has invalid trading-hours window %d-%d",
				asset.Symbol, asset.MarketOpen, asset.MarketClose)
		}
		r.assets[asset.Symbol] = asset
		r.symbols = append(r.symbols, asset.Symbol)
	}
	sort.Strings(r.symbols)

	// 展平相关系数矩阵，校验引用的符号必须已注册
	for _, asset := range assets {
		for other, coeff := range asset.Correlations {
			if _, known := r.assets[other]; !known {
				return nil, fmt.Errorf("registry: %s references unknown correlation symbol %s", asset.Symbol, other)
			}
			if other == asset.Symbol {
				return nil, fmt.Errorf("registry: %s has self correlation entry", asset.Symbol)
			}
			if coeff < -1 || coeff > 1 {
				return nil, fmt.Errorf("registry: correlation %s/%s = %.4f out of [-1,1]", asset.Symbol, other, coeff)
			}
			key := newPairKey(asset.Symbol, other)
			if prev, seen := r.correlations[key]; seen && prev != coeff {
				return nil, fmt.Errorf("registry: conflicting correlation for %s/%s: %.4f vs %.4f",
					key.a, key.b, prev, coeff)
			}
			r.correlations[key] = coeff
		}
	}

	return r, nil
}

// Get 按符号查找资产
func (r *Registry) Get(symbol string) (*model.Asset, bool) {
	asset, ok := r.assets[symbol]
	return asset, ok
}

// Symbols 返回按字典序排列的全部符号
func (r *Registry) Symbols() []string {
	out := make([]string, len(r.symbols))
	copy(out, r.symbols)
	return out
}

// Correlation 返回两个符号间的相关系数，未配置时为 0
func (r *Registry) Correlation(a, b string) float64 {
	if a == b {
		return 1.0
	}
	return r.correlations[newPairKey(a, b)]
}

// DefaultUniverse 返回内置的默认资产池：
// 四个资产类别共 10 个资产，含两两相关系数
func DefaultUniverse() []*model.Asset {
	stock := func(symbol, name string, price, vol float64, corr map[string]float64) *model.Asset {
		return &model.Asset{
			Symbol: symbol, Name: name, Class: model.ClassStock,
			BasePrice: price, Volatility: vol, BaseVolume: 1000000,
			MarketOpen: 9, MarketClose: 16, Correlations: corr,
		}
	}
	always := func(symbol, name string, class model.AssetClass, price, vol float64, corr map[string]float64) *model.Asset {
		return &model.Asset{
			Symbol: symbol, Name: name, Class: class,
			BasePrice: price, Volatility: vol, BaseVolume: 100000,
			MarketOpen: 0, MarketClose: 24, Correlations: corr,
		}
	}

	return []*model.Asset{
		stock("AAPL", "Apple Inc.", 150.0, 0.25, map[string]float64{"MSFT": 0.6, "GOOGL": 0.5, "TSLA": 0.4}),
		stock("MSFT", "Microsoft Corp.", 300.0, 0.22, map[string]float64{"AAPL": 0.6, "GOOGL": 0.7, "TSLA": 0.3}),
		stock("GOOGL", "Alphabet Inc.", 2800.0, 0.28, map[string]float64{"AAPL": 0.5, "MSFT": 0.7, "TSLA": 0.4}),
		stock("TSLA", "Tesla Inc.", 250.0, 0.45, map[string]float64{"AAPL": 0.4, "MSFT": 0.3, "GOOGL": 0.4}),
		always("BTC", "Bitcoin", model.ClassCrypto, 45000.0, 0.65, map[string]float64{"ETH": 0.8, "AAPL": 0.1, "MSFT": 0.1}),
		always("ETH", "Ethereum", model.ClassCrypto, 3000.0, 0.70, map[string]float64{"BTC": 0.8, "AAPL": 0.1, "MSFT": 0.1}),
		always("EUR/USD", "Euro/US Dollar", model.ClassForex, 1.08, 0.12, map[string]float64{"GBP/USD": 0.8, "AAPL": 0.1}),
		always("GBP/USD", "British Pound/US Dollar", model.ClassForex, 1.26, 0.15, map[string]float64{"EUR/USD": 0.8, "AAPL": 0.1}),
		always("GOLD", "Gold Futures", model.ClassCommodity, 1950.0, 0.20, map[string]float64{"SILVER": 0.7, "AAPL": -0.1, "MSFT": -0.1}),
		always("SILVER", "Silver Futures", model.ClassCommodity, 24.0, 0.25, map[string]float64{"GOLD": 0.7, "AAPL": -0.1, "MSFT": -0.1}),
	}
}
