package hook

import (
	"time"

	"github.com/shopspring/decimal"
)

// AudioSink 音效请求通道
type AudioSink interface {
	Play(cue string)
}

// DisplaySink 展示文本（如 rollup 起始金额）
type DisplaySink interface {
	Show(text string)
}

// SpinContext 每次 post-spin 钩子调用的上下文，替代全局状态
type SpinContext struct {
	TitleID int64
	Payout  decimal.Decimal
	Grid    [][]string
	Audio   AudioSink
}

// Reel 第 i 轴的可见符号，越界返回 nil
func (c *SpinContext) Reel(i int) []string {
	if i < 0 || i >= len(c.Grid) {
		return nil
	}
	return c.Grid[i]
}

// AnimationRequest 一次 outcome 动画请求，播放由宿主表现层负责
type AnimationRequest struct {
	Reel     int    `json:"reel"`
	Position int    `json:"position"`
	Symbol   string `json:"symbol"`
}

// PostSpinResult post-spin 钩子输出
type PostSpinResult struct {
	Cue        string             `json:"cue,omitempty"`
	Animations []AnimationRequest `json:"animations,omitempty"`
	Hold       time.Duration      `json:"hold"`
}

// InitOptions 宿主初始化前由标题设置，宿主只在初始化时读取一次
type InitOptions struct {
	SuppressAnticipationFanfare bool
	AnticipationReel            int
}

// Rollup rollup 累加器
type Rollup struct {
	total  decimal.Decimal
	seeded bool
}

func (r *Rollup) Seed(v decimal.Decimal) {
	r.total = v
	r.seeded = true
}

func (r *Rollup) Add(v decimal.Decimal) {
	r.total = r.total.Add(v)
}

func (r *Rollup) Total() decimal.Decimal {
	return r.total
}

func (r *Rollup) Seeded() bool {
	return r.seeded
}

// SessionContext 免费游戏开局上下文
type SessionContext struct {
	TitleID        int64
	PreviousPayout decimal.Decimal
	Rollup         *Rollup
	Display        DisplaySink
}
