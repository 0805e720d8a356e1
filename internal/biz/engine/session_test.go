package engine

import (
	"fmt"
	"testing"
	"time"

	"reelcfg/internal/biz/game/base"
	"reelcfg/internal/biz/game/g18980"
	"reelcfg/internal/biz/game/g18981"
	"reelcfg/internal/biz/game/g18982"
	"reelcfg/internal/biz/game/g18983"
	"reelcfg/internal/biz/hook"
	"reelcfg/internal/biz/spin"
	"reelcfg/internal/biz/stoporder"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder 按发生顺序记录宿主侧事件
type recorder struct {
	events  []string
	cues    []string
	shown   []string
	fanfare []int
	now     time.Duration
}

func (r *recorder) Play(cue string) {
	r.cues = append(r.cues, cue)
	r.events = append(r.events, "cue:"+cue)
}

func (r *recorder) Show(text string) {
	r.shown = append(r.shown, text)
	r.events = append(r.events, "show:"+text)
}

func (r *recorder) Animate(req hook.AnimationRequest) {
	r.events = append(r.events, fmt.Sprintf("animate:%d/%d@%s", req.Reel, req.Position, r.now))
}

func (r *recorder) Sleep(d time.Duration) {
	r.now += d
	r.events = append(r.events, fmt.Sprintf("sleep:%s", d))
}

func (r *recorder) deps() Deps {
	return Deps{
		Audio:     r,
		Display:   r,
		Presenter: r,
		Clock:     r,
		Fanfare: func(reel int) {
			r.fanfare = append(r.fanfare, reel)
			r.events = append(r.events, fmt.Sprintf("fanfare:%d", reel))
		},
	}
}

func newSession(t *testing.T, g base.IGame, rec *recorder) *Session {
	t.Helper()
	s := NewSession(g, rec.deps())
	require.NoError(t, s.Init())
	return s
}

func grid5(reel2 ...string) [][]string {
	return [][]string{
		{"A", "K", "Q"},
		{"J", "10", "A"},
		reel2,
		{"Q", "A", "K"},
		{"10", "J", "Q"},
	}
}

func TestInitTwice(t *testing.T) {
	s := NewSession(g18981.New(), Deps{})
	require.NoError(t, s.Init())
	err := s.Init()
	assert.Equal(t, ReasonAlreadyInitialized, errors.Reason(err))
}

func TestResolveBeforeInit(t *testing.T) {
	s := NewSession(g18981.New(), Deps{})
	_, err := s.ResolveSpin(&spin.Result{})
	assert.Equal(t, ReasonNotInitialized, errors.Reason(err))
	_, err = s.StartFreeSpins(decimal.Zero)
	assert.Equal(t, ReasonNotInitialized, errors.Reason(err))
}

func TestFreeSpinRejectsSpinBeforeStart(t *testing.T) {
	rec := &recorder{}
	deps := rec.deps()
	deps.FreeSpin = true
	s := NewSession(g18981.New(), deps)
	require.NoError(t, s.Init())

	_, err := s.ResolveSpin(&spin.Result{Grid: grid5("A"), Payout: decimal.NewFromInt(5)})
	require.Error(t, err)
	assert.Equal(t, ReasonNotStarted, errors.Reason(err))
	assert.True(t, s.Rollup().IsZero())

	applied, err := s.StartFreeSpins(decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, applied)

	_, err = s.ResolveSpin(&spin.Result{Grid: grid5("A"), Payout: decimal.NewFromInt(5)})
	require.NoError(t, err)
	assert.True(t, s.Rollup().Equal(decimal.NewFromInt(105)))
}

// logRec 记录日志消息
type logRec struct {
	msgs []string
}

func (l *logRec) Log(_ log.Level, keyvals ...interface{}) error {
	for i := 0; i+1 < len(keyvals); i += 2 {
		if keyvals[i] == log.DefaultMessageKey {
			l.msgs = append(l.msgs, fmt.Sprint(keyvals[i+1]))
		}
	}
	return nil
}

func TestFanfareInitLogs(t *testing.T) {
	l := &logRec{}
	require.NoError(t, NewSession(g18982.New(), Deps{Logger: l}).Init())
	assert.Equal(t, []string{"no anticipation fanfare provided"}, l.msgs)

	l = &logRec{}
	rec := &recorder{}
	deps := rec.deps()
	deps.Logger = l
	require.NoError(t, NewSession(g18980.New(), deps).Init())
	require.Len(t, l.msgs, 1)
	assert.Contains(t, l.msgs[0], "anticipation fanfare suppressed")
}

func TestSoundSelectorAndFanfareSuppression(t *testing.T) {
	rec := &recorder{}
	s := newSession(t, g18980.New(), rec)
	assert.True(t, s.InitOptions().SuppressAnticipationFanfare)

	out, err := s.ResolveSpin(&spin.Result{Grid: grid5("WILD", "BN1", "10")})
	require.NoError(t, err)
	assert.Equal(t, "dragon_bonus_1", out.Cue)
	assert.Equal(t, []string{"dragon_bonus_1"}, rec.cues)

	_, err = s.ResolveSpin(&spin.Result{Grid: grid5("WILD", "10", "J")})
	require.NoError(t, err)
	assert.Equal(t, []string{"dragon_bonus_1"}, rec.cues)

	// 期待符号落在期待轴上，宿主默认期待音效也不能触发
	assert.Empty(t, rec.fanfare)
}

func TestFanfareAttachedWhenNotSuppressed(t *testing.T) {
	rec := &recorder{}
	s := newSession(t, g18982.New(), rec)
	assert.False(t, s.InitOptions().SuppressAnticipationFanfare)

	g := grid5("A", "K", "Q")
	g[4] = []string{"SC", "A", "K"}
	_, err := s.ResolveSpin(&spin.Result{Grid: g})
	require.NoError(t, err)
	assert.Equal(t, []int{4}, rec.fanfare)
	assert.Equal(t, []string{"scatter_land"}, rec.cues)
}

func TestSweepHoldsAfterAnimations(t *testing.T) {
	rec := &recorder{}
	s := newSession(t, g18981.New(), rec)

	out, err := s.ResolveSpin(&spin.Result{Grid: grid5("K", "COIN", "J")})
	require.NoError(t, err)
	require.Len(t, out.Animations, 1)
	assert.Equal(t, hook.AnimationRequest{Reel: 2, Position: 1, Symbol: "COIN"}, out.Animations[0])
	assert.Equal(t, hook.DefaultSweepHold, rec.now)
	assert.Equal(t, []string{"animate:2/1@0s", "sleep:4.25s"}, rec.events)
}

// holdGame 短停留，验证真实时钟下不会提前返回
type holdGame struct {
	*base.Default
}

func (*holdGame) AfterSpin(ctx *hook.SpinContext) hook.PostSpinResult {
	res := hook.Sweep{Marker: "M", Hold: 30 * time.Millisecond}.Run(ctx.Grid)
	return hook.PostSpinResult{Animations: res.Requests, Hold: res.Hold}
}

func (g *holdGame) AsPostSpinHook() base.PostSpinHook { return g }

func TestSweepRealClock(t *testing.T) {
	s := NewSession(&holdGame{Default: base.NewBaseGame(1, "hold", stoporder.Layout{Reels: 5})}, Deps{})
	require.NoError(t, s.Init())

	start := time.Now()
	out, err := s.ResolveSpin(&spin.Result{Grid: grid5("A", "M", "B")})
	require.NoError(t, err)
	assert.Len(t, out.Animations, 1)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestCarryOver(t *testing.T) {
	rec := &recorder{}
	s := newSession(t, g18981.New(), rec)

	applied, err := s.StartFreeSpins(decimal.Zero)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Empty(t, rec.shown)
	assert.True(t, s.Rollup().IsZero())

	applied, err = s.StartFreeSpins(decimal.NewFromInt(250))
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, []string{"250"}, rec.shown)
	assert.True(t, s.Rollup().Equal(decimal.NewFromInt(250)))

	_, err = s.ResolveSpin(&spin.Result{Grid: grid5("A"), Payout: decimal.NewFromInt(15)})
	require.NoError(t, err)
	assert.True(t, s.Rollup().Equal(decimal.NewFromInt(265)))
}

func TestCarryOverWithoutHook(t *testing.T) {
	rec := &recorder{}
	s := newSession(t, g18980.New(), rec)
	applied, err := s.StartFreeSpins(decimal.NewFromInt(250))
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Empty(t, rec.shown)
}

// reelRec 记录停轮过程
type reelRec struct {
	steps []string
}

func (r *reelRec) AwaitSpin(p stoporder.Pair) {
	r.steps = append(r.steps, fmt.Sprintf("await %d/%d", p.Reel, p.Layer))
}

func (r *reelRec) Commit(d stoporder.Descriptor) {
	r.steps = append(r.steps, fmt.Sprintf("commit %d/%d/%d", d.ReelIndex, d.LayerIndex, d.SubStopIndex))
}

func TestPlayStops(t *testing.T) {
	s := newSession(t, g18981.New(), &recorder{})
	drv := &reelRec{}
	trace, err := s.PlayStops(drv)
	require.NoError(t, err)
	assert.Len(t, trace, 5)
	assert.Equal(t, []string{
		"await 4/0", "await 3/0", "commit 4/0/0", "commit 3/0/0",
		"await 2/0", "await 1/0", "commit 2/0/0", "commit 1/0/0",
		"await 0/0", "commit 0/0/0",
	}, drv.steps)
}

func TestPlayStopsVisitsEveryPair(t *testing.T) {
	for _, g := range []base.IGame{g18980.New(), g18981.New(), g18983.New()} {
		s := newSession(t, g, &recorder{})
		trace, err := s.PlayStops(&reelRec{})
		require.NoError(t, err)

		visited := map[stoporder.Pair]bool{}
		for _, d := range trace {
			visited[d.Pair()] = true
		}
		layout := g.Layout()
		assert.Len(t, visited, layout.Reels*layout.LayerCount(), g.Name())
	}
}

func TestPlayStopsDefault(t *testing.T) {
	s := newSession(t, g18982.New(), &recorder{})
	drv := &reelRec{}
	_, err := s.PlayStops(drv)
	require.NoError(t, err)
	assert.Equal(t, "await 0/0", drv.steps[0])
	assert.Equal(t, "commit 4/0/0", drv.steps[len(drv.steps)-1])
}
