package g18982

import (
	"reelcfg/internal/biz/game/base"
	"reelcfg/internal/biz/hook"
	"reelcfg/internal/biz/spin"
	"reelcfg/internal/biz/stoporder"
)

const ID int64 = 18982
const Name = "财神到"

var Register = New()
var _ base.IGame = (*Game)(nil)

var (
	soundRule = hook.SoundRule{Reel: 4, Cues: []hook.CueBinding{{Symbol: "SC", Cue: "scatter_land"}}}
	sweep     = hook.Sweep{Marker: "WILD"}
)

// Game 使用引擎默认停轮，结果为 protobuf
type Game struct {
	*base.Default
}

func New() base.IGame {
	return &Game{Default: base.NewBaseGame(ID, Name, stoporder.Layout{Reels: 5})}
}

func (*Game) PayloadConverter() spin.Converter {
	return spin.ProtoConverter
}

func (*Game) AfterSpin(ctx *hook.SpinContext) hook.PostSpinResult {
	cue := soundRule.Apply(ctx)
	res := sweep.Run(ctx.Grid)
	return hook.PostSpinResult{Cue: cue, Animations: res.Requests, Hold: res.Hold}
}

func (g *Game) AsPostSpinHook() base.PostSpinHook {
	return g
}
