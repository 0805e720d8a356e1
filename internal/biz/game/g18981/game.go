package g18981

import (
	"reelcfg/internal/biz/game/base"
	"reelcfg/internal/biz/hook"
	"reelcfg/internal/biz/stoporder"
)

const ID int64 = 18981
const Name = "金狮夺宝"

var layout = stoporder.Layout{Reels: 5, Layers: 1}

var sweep = hook.Sweep{Marker: "COIN", Hold: hook.DefaultSweepHold}

var Register = New()
var _ base.IGame = (*Game)(nil)

type Game struct {
	*base.Default
	gate hook.CarryOver
}

func New() base.IGame {
	return &Game{Default: base.NewBaseGame(ID, Name, layout)}
}

// StopOrder 从右往左两两停轮
func (*Game) StopOrder() (*stoporder.Table, error) {
	at := stoporder.Stop
	return stoporder.New(layout,
		stoporder.G(at(4, 0, 0), at(3, 0, 0)),
		stoporder.G(at(2, 0, 0), at(1, 0, 0)),
		stoporder.G(at(0, 0, 0)),
	)
}

func (*Game) AfterSpin(ctx *hook.SpinContext) hook.PostSpinResult {
	res := sweep.Run(ctx.Grid)
	return hook.PostSpinResult{Animations: res.Requests, Hold: res.Hold}
}

func (g *Game) CarryOverNeeded(s *hook.SessionContext) bool {
	return g.gate.Needed(s.PreviousPayout)
}

func (g *Game) CarryOver(s *hook.SessionContext) {
	g.gate.Apply(s)
}

func (g *Game) AsStopOrderSupplier() base.StopOrderSupplier {
	return g
}

func (g *Game) AsPostSpinHook() base.PostSpinHook {
	return g
}

func (g *Game) AsSessionStartHook() base.SessionStartHook {
	return g
}
