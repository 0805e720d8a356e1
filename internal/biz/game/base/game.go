package base

import (
	"reelcfg/internal/biz/hook"
	"reelcfg/internal/biz/spin"
	"reelcfg/internal/biz/stoporder"
)

// IGame 标题覆盖接口，能力按需提供：As* 返回 nil 表示该标题不覆盖此扩展点
type IGame interface {
	GameID() int64
	Name() string
	Layout() stoporder.Layout
	PayloadConverter() spin.Converter // 返回 nil 表示使用 JSON
	AsStopOrderSupplier() StopOrderSupplier
	AsPostSpinHook() PostSpinHook
	AsSessionStartHook() SessionStartHook
	AsPreInitConfigurer() PreInitConfigurer
}

// StopOrderSupplier 覆盖引擎默认的停轮顺序
type StopOrderSupplier interface {
	StopOrder() (*stoporder.Table, error)
}

// PostSpinHook 每次 spin 结算后调用
type PostSpinHook interface {
	AfterSpin(ctx *hook.SpinContext) hook.PostSpinResult
}

// SessionStartHook 免费游戏开局，在接受第一次 spin 前执行
type SessionStartHook interface {
	CarryOverNeeded(s *hook.SessionContext) bool
	CarryOver(s *hook.SessionContext)
}

// PreInitConfigurer 宿主初始化前设置标志
type PreInitConfigurer interface {
	ConfigurePreInit(opts *hook.InitOptions)
}

// Default 基础实现，不提供任何能力
type Default struct {
	gameID int64
	name   string
	layout stoporder.Layout
}

// NewBaseGame 创建基础标题
func NewBaseGame(gameID int64, name string, layout stoporder.Layout) *Default {
	return &Default{
		gameID: gameID,
		name:   name,
		layout: layout,
	}
}

func (g *Default) GameID() int64 {
	return g.gameID
}

func (g *Default) Name() string {
	return g.name
}

func (g *Default) Layout() stoporder.Layout {
	return g.layout
}

func (g *Default) PayloadConverter() spin.Converter {
	return nil
}

func (g *Default) AsStopOrderSupplier() StopOrderSupplier {
	return nil
}

func (g *Default) AsPostSpinHook() PostSpinHook {
	return nil
}

func (g *Default) AsSessionStartHook() SessionStartHook {
	return nil
}

func (g *Default) AsPreInitConfigurer() PreInitConfigurer {
	return nil
}
