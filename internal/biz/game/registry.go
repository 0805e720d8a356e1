package game

import (
	"reelcfg/internal/biz/game/base"
	"reelcfg/internal/biz/game/g18980"
	"reelcfg/internal/biz/game/g18981"
	"reelcfg/internal/biz/game/g18982"
	"reelcfg/internal/biz/game/g18983"
)

var gameInstances = []base.IGame{
	g18980.New(),
	g18981.New(),
	g18982.New(),
	g18983.New(),
}
