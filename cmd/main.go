package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"multi-asset-trader/internal/api"
	"multi-asset-trader/internal/market"
	"multi-asset-trader/internal/model"
	"multi-asset-trader/internal/service"
	"multi-asset-trader/internal/simulator"

	"go.uber.org/zap"
)

func main() {
	service.InitLogger()
	defer service.Logger.Sync()

	configPath := "config"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		service.Logger.Fatal("Configuration directory 'config/' not found. Please create it.")
	}
	cfg := service.LoadConfig(configPath)

	// 1. 构建资产目录 (配置为空时使用内置默认资产池)
	assets, err := assetsFromConfig(cfg.Market)
	if err != nil {
		service.Logger.Fatal("Invalid asset configuration", zap.Error(err))
	}
	registry, err := market.NewRegistry(assets)
	if err != nil {
		service.Logger.Fatal("Failed to build asset registry", zap.Error(err))
	}

	// 2. 随机源：种子为 0 时退回时间种子，配置固定种子可复现整个行情序列
	seed := cfg.Simulator.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	service.Logger.Info("Random source initialized", zap.Int64("seed", seed))

	// 3. 装配模拟器和调度器
	sim := simulator.New(cfg, registry, rng, service.Logger)
	scheduler := simulator.NewScheduler(sim, cfg.Simulator.Interval, service.Logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sim.Start()
	go scheduler.Run(ctx)

	// 4. 仪表盘服务 (可选)
	if cfg.Server.Enabled {
		server := api.NewServer(sim, cfg.Server.Addr, cfg.Server.PushInterval, service.Logger)
		if err := server.Run(ctx); err != nil {
			service.Logger.Fatal("Dashboard server failed", zap.Error(err))
		}
	} else {
		<-ctx.Done()
	}

	// 让进行中的周期跑完
	sim.Stop()
	service.Logger.Info("Shutdown complete")
}

// assetsFromConfig 把配置映射为资产模型；Assets 为空时返回内置默认资产池
func assetsFromConfig(cfg service.MarketConfig) ([]*model.Asset, error) {
	if len(cfg.Assets) == 0 {
		return market.DefaultUniverse(), nil
	}

	assets := make([]*model.Asset, 0, len(cfg.Assets))
	for _, ac := range cfg.Assets {
		open, close, err := service.ParseHoursWindow(ac.Hours)
		if err != nil {
			return nil, err
		}
		assets = append(assets, &model.Asset{
			Symbol:       ac.Symbol,
			Name:         ac.Name,
			Class:        model.AssetClass(ac.Class),
			BasePrice:    ac.BasePrice,
			Volatility:   ac.Volatility,
			BaseVolume:   ac.BaseVolume,
			MarketOpen:   open,
			MarketClose:  close,
			Correlations: ac.Correlations,
		})
	}
	return assets, nil
}
