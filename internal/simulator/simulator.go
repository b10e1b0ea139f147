package simulator

import (
	"math/rand"
	"sync"
	"time"

	"multi-asset-trader/internal/executor"
	"multi-asset-trader/internal/market"
	"multi-asset-trader/internal/model"
	"multi-asset-trader/internal/portfolio"
	"multi-asset-trader/internal/risk"
	"multi-asset-trader/internal/service"
	"multi-asset-trader/internal/strategy"

	"go.uber.org/zap"
)

// 新闻事件模拟参数
const (
	newsProbability = 0.1 // 每个周期生成新闻事件的概率
	maxNewsEvents   = 10
)

var newsHeadlines = []string{
	"Fed announces interest rate decision",
	"Tech earnings beat expectations",
	"Oil prices surge on supply concerns",
	"Crypto adoption increases",
	"Market volatility spikes",
	"Economic data shows strong growth",
	"Trade tensions ease",
	"Inflation data released",
}

var newsImpacts = []string{"positive", "negative", "neutral"}

// AssetStatus 是单个资产在状态快照中的视图
type AssetStatus struct {
	Tick           model.MarketTick `json:"tick"`
	VWAP           float64          `json:"vwap"`
	Momentum       float64          `json:"momentum"`
	Volatility     float64          `json:"volatility"`
	RSI            float64          `json:"rsi"`
	BollingerUpper float64          `json:"bollinger_upper"`
	BollingerMid   float64          `json:"bollinger_mid"`
	BollingerLower float64          `json:"bollinger_lower"`
	VWAPState      strategy.State   `json:"vwap_state"`
	MeanRevState   strategy.State   `json:"mean_rev_state"`
}

// Status 是对外暴露的只读状态快照
// 读取发生在周期之间，永远不会观察到半更新的状态
type Status struct {
	Running     bool                        `json:"running"`
	Timestamp   time.Time                   `json:"timestamp"`
	Sentiment   model.MarketSentiment       `json:"market_sentiment"`
	Assets      map[string]AssetStatus      `json:"assets"`
	Portfolio   model.Portfolio             `json:"portfolio"`
	Trades      []model.Trade               `json:"recent_trades"`
	Performance []model.PerformanceSnapshot `json:"performance_history"`
	News        []model.NewsEvent           `json:"news_events"`
	TotalTrades int64                       `json:"total_trades"`
}

// Simulator 是整个模拟的上下文对象，持有全部核心组件
// 单写者模型：RunCycle 持有写锁串行推进，Status 持读锁做副本快照。
type Simulator struct {
	mu sync.RWMutex

	registry  *market.Registry
	generator *market.Generator
	vwap      *strategy.VWAPMomentum
	meanRev   *strategy.MeanReversion
	fusion    *strategy.Fusion
	riskMgr   *risk.Manager
	exec      executor.Executor
	ledger    *portfolio.Ledger

	rng    *rand.Rand
	logger *zap.Logger

	running   bool
	lastTicks map[string]model.MarketTick
	portfolio model.Portfolio
	news      []model.NewsEvent
	lastCycle time.Time
}

// New 按配置装配一个完整的模拟器
func New(cfg *service.Config, registry *market.Registry, rng *rand.Rand, logger *zap.Logger) *Simulator {
	initialCash := cfg.Simulator.InitialCash

	return &Simulator{
		registry:  registry,
		generator: market.NewGenerator(rng),
		vwap:      strategy.NewVWAPMomentum(cfg.Strategy.VWAPLookback),
		meanRev:   strategy.NewMeanReversion(cfg.Strategy.BollingerPeriod, cfg.Strategy.BollingerK, cfg.Strategy.RSIPeriod),
		fusion:    strategy.NewFusion(cfg.Strategy.MinConfidence, cfg.Strategy.BaseQuantity),
		riskMgr:   risk.NewManager(cfg.Risk, registry),
		exec:      executor.NewSimExecutor(initialCash, cfg.Risk.FeeRate, logger),
		ledger:    portfolio.NewLedger(initialCash),
		rng:       rng,
		logger:    logger,
		lastTicks: make(map[string]model.MarketTick),
		portfolio: model.Portfolio{
			Cash:       initialCash,
			Positions:  map[string]int64{},
			TotalValue: initialCash,
		},
	}
}

// Start 打开运行标志，幂等
func (s *Simulator) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.logger.Info("Simulator started",
		zap.Int("assets", len(s.registry.Symbols())),
		zap.Float64("initial_value", s.portfolio.TotalValue))
}

// Stop 关闭运行标志，幂等；进行中的周期会先完成
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	s.logger.Info("Simulator stopped")
}

// Running 返回运行标志
func (s *Simulator) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// RunCycle 推进一个完整的模拟周期：
// 行情 -> 信号 -> 融合 -> 风控 -> 执行 -> 账本
// 未运行时为空操作。整个周期持有写锁，读者只能看到周期前或周期后的状态。
func (s *Simulator) RunCycle(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	// 1. 为全部资产生成本周期行情
	symbols := s.registry.Symbols()
	for _, symbol := range symbols {
		asset, ok := s.registry.Get(symbol)
		if !ok {
			continue
		}
		s.lastTicks[symbol] = s.generator.NextTick(asset, now)
	}

	// 2. 逐符号走完 信号 -> 融合 -> 风控 -> 执行
	for _, symbol := range symbols {
		tick := s.lastTicks[symbol]

		vwapSignal := s.vwap.OnTick(tick)
		meanRevSignal := s.meanRev.OnTick(tick)

		proposal, ok := s.fusion.Decide(vwapSignal, meanRevSignal)
		if !ok {
			continue
		}

		// 买单按卖一价成交，卖单按买一价成交
		price := tick.Ask
		if proposal.Side == model.ActionSell {
			price = tick.Bid
		}

		decision := s.riskMgr.Evaluate(proposal.Symbol, proposal.Quantity, price,
			s.portfolio.TotalValue, s.exec.Positions())
		if decision.Outcome == risk.OutcomeReject {
			s.logger.Debug("Proposal rejected by risk manager",
				zap.String("symbol", proposal.Symbol),
				zap.String("reason", decision.Reason))
			continue
		}
		if decision.Outcome == risk.OutcomeClip {
			s.logger.Debug("Proposal clipped by position size limit",
				zap.String("symbol", proposal.Symbol),
				zap.String("reason", decision.Reason))
		}

		// 执行失败 (现金/持仓不足) 同样静默跳过
		s.exec.Execute(proposal.Symbol, proposal.Side, decision.Quantity, price,
			model.StrategyCombined, now)
	}

	// 3. 全部执行完成后更新账本 (周期级屏障)
	prices := make(map[string]float64, len(s.lastTicks))
	for symbol, tick := range s.lastTicks {
		prices[symbol] = tick.Price
	}
	s.portfolio = s.ledger.Update(s.exec.Cash(), s.exec.Positions(), prices, now)
	s.riskMgr.RecordPnL(s.portfolio.DailyPnL, now)
	s.generator.SetSentiment(s.ledger.Sentiment())

	// 4. 小概率生成新闻事件
	if s.rng.Float64() < newsProbability {
		s.news = append(s.news, model.NewsEvent{
			Headline:  newsHeadlines[s.rng.Intn(len(newsHeadlines))],
			Impact:    newsImpacts[s.rng.Intn(len(newsImpacts))],
			Timestamp: now,
		})
		if len(s.news) > maxNewsEvents {
			s.news = s.news[len(s.news)-maxNewsEvents:]
		}
	}

	s.lastCycle = now
}

// Status 返回只读状态快照，不修改任何核心状态
func (s *Simulator) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	assets := make(map[string]AssetStatus, len(s.lastTicks))
	for symbol, tick := range s.lastTicks {
		vwap, momentum, volatility := s.vwap.Indicators(symbol)
		upper, mid, lower, rsi := s.meanRev.Indicators(symbol)
		assets[symbol] = AssetStatus{
			Tick:           tick,
			VWAP:           vwap,
			Momentum:       momentum,
			Volatility:     volatility,
			RSI:            rsi,
			BollingerUpper: upper,
			BollingerMid:   mid,
			BollingerLower: lower,
			VWAPState:      s.vwap.State(symbol),
			MeanRevState:   s.meanRev.State(symbol),
		}
	}

	port := s.portfolio
	positions := make(map[string]int64, len(port.Positions))
	for symbol, qty := range port.Positions {
		positions[symbol] = qty
	}
	port.Positions = positions

	news := make([]model.NewsEvent, len(s.news))
	copy(news, s.news)

	return Status{
		Running:     s.running,
		Timestamp:   s.lastCycle,
		Sentiment:   s.ledger.Sentiment(),
		Assets:      assets,
		Portfolio:   port,
		Trades:      s.exec.TradeHistory(),
		Performance: s.ledger.Snapshots(),
		News:        news,
		TotalTrades: s.exec.TradeCount(),
	}
}
