package g18983

import (
	_ "embed"

	"reelcfg/internal/biz/game/base"
	"reelcfg/internal/biz/hook"
	"reelcfg/internal/biz/stoporder"
)

const ID int64 = 18983
const Name = "雷霆五虎"

//go:embed stop_order.yaml
var stopOrderYAML []byte

var Register = New()
var _ base.IGame = (*Game)(nil)

type Game struct {
	*base.Default
	gate hook.CarryOver
}

func New() base.IGame {
	return &Game{Default: base.NewBaseGame(ID, Name, stoporder.Layout{Reels: 5, Layers: 2})}
}

func (*Game) StopOrder() (*stoporder.Table, error) {
	return stoporder.FromYAML(stopOrderYAML)
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

func (g *Game) AsSessionStartHook() base.SessionStartHook {
	return g
}
