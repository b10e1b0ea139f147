package strategy

import (
	"math"

	"multi-asset-trader/internal/model"
)

// Fuse 把两个策略在同一符号上的信号合并为一个决策：
//   - 双方都给出同向的非 HOLD 信号：采纳该方向，置信度取平均 (一致性加成信任)
//   - 双方方向冲突 (一买一卖)：回到 HOLD，置信度归零
//   - 只有一方给出非 HOLD 信号：采纳该方向，置信度取两者较大值
func Fuse(a, b model.Signal) model.Signal {
	fused := model.Signal{
		Symbol:   a.Symbol,
		Action:   model.ActionHold,
		Strategy: model.StrategyCombined,
	}

	aActs := a.Action != model.ActionHold
	bActs := b.Action != model.ActionHold

	switch {
	case aActs && bActs && a.Action == b.Action:
		fused.Action = a.Action
		fused.Confidence = (a.Confidence + b.Confidence) / 2
	case aActs && bActs:
		// 策略分歧，不交易
		fused.Confidence = 0
	case aActs:
		fused.Action = a.Action
		fused.Confidence = math.Max(a.Confidence, b.Confidence)
	case bActs:
		fused.Action = b.Action
		fused.Confidence = math.Max(a.Confidence, b.Confidence)
	default:
		fused.Confidence = math.Max(a.Confidence, b.Confidence)
	}

	return fused
}

// Proposal 是融合信号转化出的交易意向，交给风控裁决
type Proposal struct {
	Symbol     string
	Side       model.SignalAction
	Quantity   int64
	Confidence float64
}

// Fusion 负责把融合信号转化为带数量的交易意向
type Fusion struct {
	minConfidence float64
	baseQuantity  int64
}

// NewFusion 创建信号融合器 (建议 minConfidence=0.3, baseQuantity=1000)
func NewFusion(minConfidence float64, baseQuantity int64) *Fusion {
	if baseQuantity <= 0 {
		baseQuantity = 1000
	}
	return &Fusion{minConfidence: minConfidence, baseQuantity: baseQuantity}
}

// Decide 融合两个信号并判断是否值得下单
// 只有非 HOLD 且置信度超过门槛才会产生意向；数量随置信度缩放
func (f *Fusion) Decide(a, b model.Signal) (Proposal, bool) {
	fused := Fuse(a, b)
	if fused.Action == model.ActionHold || fused.Confidence <= f.minConfidence {
		return Proposal{}, false
	}

	quantity := int64(math.Round(float64(f.baseQuantity) * fused.Confidence))
	if quantity < 1 {
		quantity = 1
	}

	return Proposal{
		Symbol:     fused.Symbol,
		Side:       fused.Action,
		Quantity:   quantity,
		Confidence: fused.Confidence,
	}, true
}
