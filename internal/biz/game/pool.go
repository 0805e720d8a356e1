package game

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"reelcfg/internal/biz/game/base"
	"reelcfg/internal/biz/stoporder"

	"golang.org/x/sync/errgroup"
)

type Pool struct {
	mu   sync.RWMutex
	byID map[int64]base.IGame
	list []base.IGame
}

func NewPool() *Pool {
	return NewPoolWith(gameInstances...)
}

// NewPoolWith 用指定标题创建池（测试或裁剪部署）
func NewPoolWith(games ...base.IGame) *Pool {
	p := &Pool{
		byID: make(map[int64]base.IGame),
		list: make([]base.IGame, 0, len(games)),
	}
	for _, g := range games {
		p.byID[g.GameID()] = g
		p.list = append(p.list, g)
	}
	sort.Slice(p.list, func(i, j int) bool {
		return p.list[i].GameID() < p.list[j].GameID()
	})
	return p
}

func (p *Pool) Get(gameID int64) (base.IGame, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	g, ok := p.byID[gameID]
	return g, ok
}

func (p *Pool) List() []base.IGame {
	p.mu.RLock()
	defer p.mu.RUnlock()
	cpy := append([]base.IGame{}, p.list...)
	return cpy
}

// RequireProtobuf 该标题的结果负载是否为 protobuf
func (p *Pool) RequireProtobuf(gameID int64) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	g, ok := p.byID[gameID]
	return ok && g != nil && g.PayloadConverter() != nil
}

// Validate 并发构建所有标题的停轮表，任一失败即返回
func (p *Pool) Validate(ctx context.Context) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, game := range p.List() {
		game := game
		g.Go(func() error {
			_, err := StopOrderOf(game)
			return err
		})
	}
	return g.Wait()
}

// StopOrderOf 标题的停轮表；未覆盖时返回引擎默认表
func StopOrderOf(g base.IGame) (*stoporder.Table, error) {
	s := g.AsStopOrderSupplier()
	if s == nil {
		t, err := stoporder.Default(g.Layout())
		if err != nil {
			return nil, fmt.Errorf("game %d default stop order: %w", g.GameID(), err)
		}
		return t, nil
	}
	t, err := s.StopOrder()
	if err != nil {
		return nil, fmt.Errorf("game %d stop order: %w", g.GameID(), err)
	}
	if tl, gl := t.Layout(), g.Layout(); tl.Reels != gl.Reels || tl.LayerCount() != gl.LayerCount() {
		return nil, fmt.Errorf("game %d stop order: layout %+v does not match declared %+v", g.GameID(), t.Layout(), g.Layout())
	}
	return t, nil
}
