package hook

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type audioRec struct{ cues []string }

func (a *audioRec) Play(cue string) { a.cues = append(a.cues, cue) }

type displayRec struct{ texts []string }

func (d *displayRec) Show(text string) { d.texts = append(d.texts, text) }

var bonusRule = SoundRule{Reel: 2, Cues: []CueBinding{
	{Symbol: "BN1", Cue: "bonus_land_1"},
	{Symbol: "BN2", Cue: "bonus_land_2"},
}}

func TestSoundRule(t *testing.T) {
	cases := []struct {
		reel []string
		want []string
	}{
		{reel: []string{"WILD", "BN1", "10"}, want: []string{"bonus_land_1"}},
		{reel: []string{"WILD", "10", "J"}, want: nil},
		// 按可见顺序取第一个命中，而不是按映射顺序
		{reel: []string{"BN2", "BN1", "BN1"}, want: []string{"bonus_land_2"}},
		{reel: nil, want: nil},
	}
	for _, c := range cases {
		audio := &audioRec{}
		ctx := &SpinContext{Grid: [][]string{{"A"}, {"K"}, c.reel}, Audio: audio}
		bonusRule.Apply(ctx)
		assert.Equal(t, c.want, audio.cues, "%v", c.reel)
	}
}

func TestSoundRuleReelMissing(t *testing.T) {
	audio := &audioRec{}
	cue := bonusRule.Apply(&SpinContext{Grid: [][]string{{"BN1"}}, Audio: audio})
	assert.Empty(t, cue)
	assert.Empty(t, audio.cues)
}

func TestCarryOver(t *testing.T) {
	var gate CarryOver

	display := &displayRec{}
	rollup := &Rollup{}
	applied := gate.Apply(&SessionContext{PreviousPayout: decimal.Zero, Rollup: rollup, Display: display})
	assert.False(t, applied)
	assert.Empty(t, display.texts)
	assert.False(t, rollup.Seeded())
	assert.True(t, rollup.Total().IsZero())

	applied = gate.Apply(&SessionContext{PreviousPayout: decimal.NewFromInt(250), Rollup: rollup, Display: display})
	assert.True(t, applied)
	assert.Equal(t, []string{"250"}, display.texts)
	assert.True(t, rollup.Total().Equal(decimal.NewFromInt(250)))
}

func TestFormatCredits(t *testing.T) {
	assert.Equal(t, "250", FormatCredits(decimal.NewFromInt(250)))
	assert.Equal(t, "12.50", FormatCredits(decimal.RequireFromString("12.5")))
	assert.Equal(t, "0.05", FormatCredits(decimal.RequireFromString("0.05")))
}

func TestSweep(t *testing.T) {
	grid := [][]string{
		{"A", "K", "Q"},
		{"J", "10", "A"},
		{"K", "COIN", "J"},
		{"Q", "A", "K"},
		{"10", "J", "Q"},
	}
	res := Sweep{Marker: "COIN"}.Run(grid)
	assert.Equal(t, []AnimationRequest{{Reel: 2, Position: 1, Symbol: "COIN"}}, res.Requests)
	assert.Equal(t, DefaultSweepHold, res.Hold)

	grid[0][0], grid[4][2] = "COIN", "COIN"
	res = Sweep{Marker: "COIN"}.Run(grid)
	assert.Len(t, res.Requests, 3)
	assert.Equal(t, 0, res.Requests[0].Reel)
	assert.Equal(t, 4, res.Requests[2].Reel)
	assert.Equal(t, DefaultSweepHold, res.Hold)
}
