package hook

import "time"

// DefaultSweepHold 标记符号动画的固定停留时长，与标记数量无关
const DefaultSweepHold = 4250 * time.Millisecond

// Sweep 对网格中所有标记符号发起 outcome 动画
type Sweep struct {
	Marker string
	Hold   time.Duration
}

// SweepResult 动画请求 + 需要停留的时长
type SweepResult struct {
	Requests []AnimationRequest
	Hold     time.Duration
}

// Run 轴序优先、位置序其次
func (s Sweep) Run(grid [][]string) SweepResult {
	hold := s.Hold
	if hold <= 0 {
		hold = DefaultSweepHold
	}
	res := SweepResult{Hold: hold}
	for reel, col := range grid {
		for pos, sym := range col {
			if sym == s.Marker {
				res.Requests = append(res.Requests, AnimationRequest{Reel: reel, Position: pos, Symbol: sym})
			}
		}
	}
	return res
}
