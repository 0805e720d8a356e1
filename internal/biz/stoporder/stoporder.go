package stoporder

import (
	"fmt"

	"github.com/go-kratos/kratos/v2/errors"
)

// 错误原因，构建期配置错误，加载时直接失败
const (
	ReasonEmpty          = "STOP_ORDER_EMPTY"
	ReasonGroupEmpty     = "STOP_GROUP_EMPTY"
	ReasonReelOutOfRange = "STOP_REEL_OUT_OF_RANGE"
	ReasonLayerOutRange  = "STOP_LAYER_OUT_OF_RANGE"
	ReasonPairUncovered  = "STOP_PAIR_UNCOVERED"
)

// Descriptor 停轮描述：哪个轴、哪一层、子停点
type Descriptor struct {
	ReelIndex    int `json:"reel" yaml:"reel"`
	LayerIndex   int `json:"layer" yaml:"layer"`
	SubStopIndex int `json:"sub" yaml:"sub"`
}

// Stop 构造一个 Descriptor
func Stop(reel, layer, sub int) Descriptor {
	return Descriptor{ReelIndex: reel, LayerIndex: layer, SubStopIndex: sub}
}

// Pair 轴+层
type Pair struct {
	Reel  int `json:"reel"`
	Layer int `json:"layer"`
}

func (d Descriptor) Pair() Pair {
	return Pair{Reel: d.ReelIndex, Layer: d.LayerIndex}
}

// Group 同时锁定的一组停轮
type Group []Descriptor

// G 构造一个 Group
func G(ds ...Descriptor) Group {
	return Group(ds)
}

// Layout 标题声明的轴/层结构，Layers 为 0 时按单层处理
type Layout struct {
	Reels  int `json:"reels" yaml:"reels"`
	Layers int `json:"layers" yaml:"layers"`
}

func (l Layout) LayerCount() int {
	if l.Layers <= 0 {
		return 1
	}
	return l.Layers
}

// Table 停轮顺序表，构建后只读
type Table struct {
	layout Layout
	groups []Group
	pairs  []Pair
}

// New 校验并构建停轮顺序表
func New(layout Layout, groups ...Group) (*Table, error) {
	t, err := build(layout, groups)
	if err != nil {
		return nil, err
	}
	if missing := t.uncovered(); len(missing) > 0 {
		return nil, errors.BadRequest(ReasonPairUncovered,
			fmt.Sprintf("stop order leaves %d reel/layer pair(s) without a stop, first: reel=%d layer=%d",
				len(missing), missing[0].Reel, missing[0].Layer))
	}
	return t, nil
}

// MustNew 同 New，失败 panic，用于包级别表
func MustNew(layout Layout, groups ...Group) *Table {
	t, err := New(layout, groups...)
	if err != nil {
		panic(err)
	}
	return t
}

// Default 引擎默认停轮：从左到右逐轴，只停第 0 层
func Default(layout Layout) (*Table, error) {
	if layout.Reels <= 0 {
		return nil, errors.BadRequest(ReasonEmpty, fmt.Sprintf("default stop order needs reels, got %d", layout.Reels))
	}
	groups := make([]Group, layout.Reels)
	for i := range groups {
		groups[i] = G(Stop(i, 0, 0))
	}
	return build(layout, groups)
}

func build(layout Layout, groups []Group) (*Table, error) {
	if len(groups) == 0 {
		return nil, errors.BadRequest(ReasonEmpty, "stop order has no groups")
	}
	layers := layout.LayerCount()
	seen := make(map[Pair]struct{})
	t := &Table{layout: layout, groups: make([]Group, len(groups))}
	for gi, g := range groups {
		if len(g) == 0 {
			return nil, errors.BadRequest(ReasonGroupEmpty, fmt.Sprintf("group %d has no descriptors", gi))
		}
		for _, d := range g {
			if d.ReelIndex < 0 || d.ReelIndex >= layout.Reels {
				return nil, errors.BadRequest(ReasonReelOutOfRange,
					fmt.Sprintf("group %d: reel index %d out of range [0,%d)", gi, d.ReelIndex, layout.Reels))
			}
			if d.LayerIndex < 0 || d.LayerIndex >= layers {
				return nil, errors.BadRequest(ReasonLayerOutRange,
					fmt.Sprintf("group %d: layer index %d out of range [0,%d) on reel %d", gi, d.LayerIndex, layers, d.ReelIndex))
			}
			if _, ok := seen[d.Pair()]; !ok {
				seen[d.Pair()] = struct{}{}
				t.pairs = append(t.pairs, d.Pair())
			}
		}
		t.groups[gi] = append(Group(nil), g...)
	}
	return t, nil
}

func (t *Table) uncovered() []Pair {
	seen := make(map[Pair]struct{}, len(t.pairs))
	for _, p := range t.pairs {
		seen[p] = struct{}{}
	}
	var out []Pair
	for r := 0; r < t.layout.Reels; r++ {
		for l := 0; l < t.layout.LayerCount(); l++ {
			if _, ok := seen[Pair{Reel: r, Layer: l}]; !ok {
				out = append(out, Pair{Reel: r, Layer: l})
			}
		}
	}
	return out
}

func (t *Table) Layout() Layout {
	return t.layout
}

func (t *Table) Len() int {
	return len(t.groups)
}

// Group 第 i 组的副本
func (t *Table) Group(i int) Group {
	return append(Group(nil), t.groups[i]...)
}

// Groups 全部组的副本
func (t *Table) Groups() []Group {
	out := make([]Group, len(t.groups))
	for i, g := range t.groups {
		out[i] = append(Group(nil), g...)
	}
	return out
}

// Pairs 按首次出现顺序返回所有被寻址的轴/层
func (t *Table) Pairs() []Pair {
	return append([]Pair(nil), t.pairs...)
}
