package g18980

import (
	"reelcfg/internal/biz/game/base"
	"reelcfg/internal/biz/hook"
	"reelcfg/internal/biz/stoporder"
)

const ID int64 = 18980
const Name = "三层龙宫"

// 上中下三层独立转轮
const (
	layerTop = iota
	layerMiddle
	layerBottom
)

const bonusReel = 2

var layout = stoporder.Layout{Reels: 5, Layers: 3}

var soundRule = hook.SoundRule{Reel: bonusReel, Cues: []hook.CueBinding{
	{Symbol: "BN1", Cue: "dragon_bonus_1"},
	{Symbol: "BN2", Cue: "dragon_bonus_2"},
	{Symbol: "BN3", Cue: "dragon_bonus_3"},
}}

var Register = New()
var _ base.IGame = (*Game)(nil)

type Game struct {
	*base.Default
}

func New() base.IGame {
	return &Game{Default: base.NewBaseGame(ID, Name, layout)}
}

// StopOrder 先落中层两侧，再向中间收拢，最后上下层同时锁定
func (*Game) StopOrder() (*stoporder.Table, error) {
	at := stoporder.Stop
	return stoporder.New(layout,
		stoporder.G(at(0, layerMiddle, 0), at(4, layerMiddle, 0)),
		stoporder.G(at(1, layerMiddle, 0), at(3, layerMiddle, 0)),
		stoporder.G(at(2, layerMiddle, 0)),
		stoporder.G(at(0, layerTop, 0), at(0, layerBottom, 1), at(1, layerTop, 0), at(1, layerBottom, 1)),
		stoporder.G(at(3, layerTop, 0), at(3, layerBottom, 1), at(4, layerTop, 0), at(4, layerBottom, 1)),
		stoporder.G(at(2, layerTop, 0), at(2, layerBottom, 1)),
	)
}

func (*Game) AfterSpin(ctx *hook.SpinContext) hook.PostSpinResult {
	return hook.PostSpinResult{Cue: soundRule.Apply(ctx)}
}

// ConfigurePreInit bonus 轴的音效已由 soundRule 负责，关闭宿主默认的期待音效
func (*Game) ConfigurePreInit(opts *hook.InitOptions) {
	opts.SuppressAnticipationFanfare = true
	opts.AnticipationReel = bonusReel
}

func (g *Game) AsStopOrderSupplier() base.StopOrderSupplier {
	return g
}

func (g *Game) AsPostSpinHook() base.PostSpinHook {
	return g
}

func (g *Game) AsPreInitConfigurer() base.PreInitConfigurer {
	return g
}
