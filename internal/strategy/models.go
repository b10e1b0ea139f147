package strategy

import "multi-asset-trader/internal/model"

// State 是每个策略在单个符号上的两态状态机
type State string

const (
	// WARMUP: 滚动窗口内的数据点还不够，只会输出 HOLD
	StateWarmup State = "WARMUP"
	// ACTIVE: 数据已满足最小长度，开始输出真实信号
	StateActive State = "ACTIVE"
)

// Strategy 是信号策略的通用接口
// 每个策略按符号维护自己的滚动缓冲区，OnTick 先入账后出信号
type Strategy interface {
	// Tag 返回策略标识，写入信号与成交记录
	Tag() model.StrategyTag

	// OnTick 接收一条行情，返回该符号本周期的信号
	OnTick(tick model.MarketTick) model.Signal

	// State 返回策略在某符号上的状态机状态
	State(symbol string) State
}

func hold(symbol string, tag model.StrategyTag) model.Signal {
	return model.Signal{Symbol: symbol, Action: model.ActionHold, Confidence: 0, Strategy: tag}
}
