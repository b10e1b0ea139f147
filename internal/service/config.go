// internal/service/config.go
package service

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Simulator SimulatorConfig `mapstructure:"Simulator"`
	Market    MarketConfig    `mapstructure:"Market"`
	Strategy  StrategyConfig  `mapstructure:"Strategy"`
	Risk      RiskConfig      `mapstructure:"Risk"`
	Server    ServerConfig    `mapstructure:"Server"`
}

// SimulatorConfig 定义了模拟器的全局参数
type SimulatorConfig struct {
	InitialCash float64       // 初始资金
	Interval    time.Duration // 模拟周期节奏 (例如 1s)
	Seed        int64         // 随机种子 (0 表示使用时间种子)
}

// MarketConfig 定义了资产池，为空时使用内置的默认资产池
type MarketConfig struct {
	Assets []AssetConfig
}

// AssetConfig 定义了单个可交易资产
type AssetConfig struct {
	Symbol       string
	Name         string
	Class        string // stock / crypto / forex / commodity
	BasePrice    float64
	Volatility   float64            // 年化基础波动率系数
	BaseVolume   float64            // 初始基准成交量
	Hours        string             // 交易时段窗口，例如 "9-16" 或 "0-24"
	Correlations map[string]float64 // Symbol -> 相关系数 (-1..1)
}

// StrategyConfig 定义了策略参数
type StrategyConfig struct {
	VWAPLookback    int     // VWAP 动量策略的滚动窗口
	BollingerPeriod int     // 布林带周期
	BollingerK      float64 // 布林带标准差倍数
	RSIPeriod       int
	MinConfidence   float64 // 融合信号的最小下单置信度
	BaseQuantity    int64   // 基础下单数量 (实际数量 = BaseQuantity × 置信度)
}

// RiskConfig 定义了风控参数
type RiskConfig struct {
	MaxPositionSize  float64 // 单一持仓市值占组合总值的上限比例
	MaxDailyLoss     float64 // 单日最大亏损占组合总值的比例，触发后当日停止开仓
	CorrelationLimit float64 // 与已有持仓的相关系数上限
	FeeRate          float64 // 交易手续费率 (例如 0.001)
}

// ServerConfig 定义了仪表盘服务参数
type ServerConfig struct {
	Enabled      bool
	Addr         string
	PushInterval time.Duration // websocket 状态推送周期
}

// GlobalConfig 存储加载后的全局配置
var GlobalConfig Config

// LoadConfig 读取并解析配置文件
func LoadConfig(configPath string) *Config {
	// 设置配置文件的名称、类型和路径
	viper.SetConfigName("config") // 文件名是 config
	viper.SetConfigType("yaml")   // 文件类型是 yaml
	viper.AddConfigPath(configPath)

	setDefaults()

	// 查找并读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Fatalf("Config file not found: %s", err)
		} else {
			log.Fatalf("Error reading config file: %s", err)
		}
	}

	// 将配置绑定到结构体
	if err := viper.Unmarshal(&GlobalConfig); err != nil {
		log.Fatalf("Unable to decode config into struct: %s", err)
	}

	return &GlobalConfig
}

func setDefaults() {
	viper.SetDefault("Simulator.InitialCash", 1000000.0)
	viper.SetDefault("Simulator.Interval", time.Second)
	viper.SetDefault("Simulator.Seed", 0)

	viper.SetDefault("Strategy.VWAPLookback", 20)
	viper.SetDefault("Strategy.BollingerPeriod", 20)
	viper.SetDefault("Strategy.BollingerK", 2.0)
	viper.SetDefault("Strategy.RSIPeriod", 14)
	viper.SetDefault("Strategy.MinConfidence", 0.3)
	viper.SetDefault("Strategy.BaseQuantity", 1000)

	viper.SetDefault("Risk.MaxPositionSize", 0.1)
	viper.SetDefault("Risk.MaxDailyLoss", 0.05)
	viper.SetDefault("Risk.CorrelationLimit", 0.7)
	viper.SetDefault("Risk.FeeRate", 0.001)

	viper.SetDefault("Server.Enabled", true)
	viper.SetDefault("Server.Addr", ":8001")
	viper.SetDefault("Server.PushInterval", time.Second)
}
