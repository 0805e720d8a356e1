package stoporder

import (
	"testing"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	layout := Layout{Reels: 3, Layers: 2}
	cases := []struct {
		name   string
		groups []Group
		reason string
	}{
		{name: "ok", groups: []Group{
			G(Stop(0, 0, 0), Stop(2, 0, 0)),
			G(Stop(1, 0, 0), Stop(1, 1, 0)),
			G(Stop(0, 1, 0), Stop(2, 1, 0)),
		}},
		{name: "empty", groups: nil, reason: ReasonEmpty},
		{name: "empty group", groups: []Group{G(Stop(0, 0, 0)), G()}, reason: ReasonGroupEmpty},
		{name: "reel too big", groups: []Group{G(Stop(3, 0, 0))}, reason: ReasonReelOutOfRange},
		{name: "negative reel", groups: []Group{G(Stop(-1, 0, 0))}, reason: ReasonReelOutOfRange},
		{name: "layer too big", groups: []Group{G(Stop(0, 2, 0))}, reason: ReasonLayerOutRange},
		{name: "uncovered", groups: []Group{G(Stop(0, 0, 0), Stop(1, 0, 0), Stop(2, 0, 0))}, reason: ReasonPairUncovered},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tbl, err := New(layout, c.groups...)
			if c.reason == "" {
				require.NoError(t, err)
				assert.Equal(t, len(c.groups), tbl.Len())
				return
			}
			require.Error(t, err)
			assert.Nil(t, tbl)
			assert.Equal(t, c.reason, errors.Reason(err))
		})
	}
}

// TestNewNamesGroup 错误信息需定位到出错的组
func TestNewNamesGroup(t *testing.T) {
	_, err := New(Layout{Reels: 5},
		G(Stop(0, 0, 0)),
		G(Stop(1, 0, 0), Stop(2, 0, 0)),
		G(Stop(3, 0, 0), Stop(7, 0, 0)),
	)
	require.Error(t, err)
	assert.Contains(t, errors.FromError(err).Message, "group 2")
	assert.Contains(t, errors.FromError(err).Message, "reel index 7")
}

func TestTableCoversEveryPair(t *testing.T) {
	layout := Layout{Reels: 5, Layers: 3}
	var groups []Group
	for l := layout.Layers - 1; l >= 0; l-- {
		for r := 0; r < layout.Reels; r++ {
			groups = append(groups, G(Stop(r, l, 0)))
		}
	}
	tbl := MustNew(layout, groups...)

	visited := map[Pair]bool{}
	for _, g := range tbl.Groups() {
		for _, d := range g {
			assert.True(t, d.ReelIndex >= 0 && d.ReelIndex < layout.Reels)
			visited[d.Pair()] = true
		}
	}
	assert.Len(t, visited, layout.Reels*layout.Layers)
	assert.Len(t, tbl.Pairs(), layout.Reels*layout.Layers)
	assert.Equal(t, Pair{Reel: 0, Layer: 2}, tbl.Pairs()[0])
}

func TestTableIsImmutable(t *testing.T) {
	src := G(Stop(0, 0, 0), Stop(1, 0, 0))
	tbl := MustNew(Layout{Reels: 2}, src)

	src[0] = Stop(1, 0, 9)
	assert.Equal(t, Stop(0, 0, 0), tbl.Group(0)[0])

	g := tbl.Group(0)
	g[1] = Stop(0, 0, 5)
	assert.Equal(t, Stop(1, 0, 0), tbl.Group(0)[1])

	all := tbl.Groups()
	all[0][0] = Stop(1, 0, 3)
	assert.Equal(t, Stop(0, 0, 0), tbl.Groups()[0][0])
}

func TestDefault(t *testing.T) {
	tbl, err := Default(Layout{Reels: 5, Layers: 3})
	require.NoError(t, err)
	require.Equal(t, 5, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		assert.Equal(t, G(Stop(i, 0, 0)), tbl.Group(i))
	}
}

func TestDefaultWithoutReels(t *testing.T) {
	for _, reels := range []int{0, -1} {
		_, err := Default(Layout{Reels: reels})
		require.Error(t, err)
		assert.Equal(t, ReasonEmpty, errors.Reason(err), "reels=%d", reels)
	}
}

func TestMustNewPanics(t *testing.T) {
	assert.Panics(t, func() { MustNew(Layout{Reels: 1}) })
}

func TestFromYAML(t *testing.T) {
	raw := []byte(`
layout: {reels: 3, layers: 1}
groups:
  - [{reel: 0}, {reel: 2}]
  - [{reel: 1, sub: 1}]
`)
	tbl, err := FromYAML(raw)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, G(Stop(1, 0, 1)), tbl.Group(1))

	_, err = FromYAML([]byte("layout: {reels: 2}\ngroups:\n  - [{reel: 2}]\n"))
	assert.Equal(t, ReasonReelOutOfRange, errors.Reason(err))

	_, err = FromYAML([]byte("groups: ["))
	assert.Error(t, err)
}
