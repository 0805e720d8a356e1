package engine

import (
	"sync"
	"time"

	"reelcfg/internal/biz/game"
	"reelcfg/internal/biz/game/base"
	"reelcfg/internal/biz/hook"
	"reelcfg/internal/biz/spin"
	"reelcfg/internal/biz/stoporder"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/shopspring/decimal"
)

const (
	ReasonAlreadyInitialized = "SESSION_ALREADY_INITIALIZED"
	ReasonNotInitialized     = "SESSION_NOT_INITIALIZED"
	ReasonNotStarted         = "SESSION_NOT_STARTED"
)

// DefaultAnticipationSymbols 宿主默认期待音效关注的符号
var DefaultAnticipationSymbols = []string{"BN1", "BN2", "BN3", "SC"}

// Clock 固定停留使用，不可取消
type Clock interface {
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// RealClock 真实时钟
func RealClock() Clock { return realClock{} }

// Presenter 宿主表现层，动画触发后不等待完成
type Presenter interface {
	Animate(req hook.AnimationRequest)
}

// FanfareFunc 宿主默认期待音效
type FanfareFunc func(reel int)

// Deps 宿主提供的通道
type Deps struct {
	Audio               hook.AudioSink
	Display             hook.DisplaySink
	Presenter           Presenter
	Clock               Clock
	Fanfare             FanfareFunc
	AnticipationSymbols []string
	Logger              log.Logger
	// FreeSpin 免费游戏会话：StartFreeSpins 完成前拒绝 spin
	FreeSpin bool
}

// Session 按生命周期驱动一个标题的扩展点，单协程使用
type Session struct {
	game base.IGame
	deps Deps
	log  *log.Helper

	tableOnce sync.Once
	table     *stoporder.Table
	tableErr  error

	initialized bool
	opts        hook.InitOptions
	fanfare     FanfareFunc

	freeSpin bool
	started  bool
	rollup   hook.Rollup
}

// NewSession 创建会话
func NewSession(g base.IGame, deps Deps) *Session {
	if deps.Clock == nil {
		deps.Clock = RealClock()
	}
	if deps.AnticipationSymbols == nil {
		deps.AnticipationSymbols = DefaultAnticipationSymbols
	}
	if deps.Logger == nil {
		deps.Logger = log.GetLogger()
	}
	return &Session{
		game:     g,
		deps:     deps,
		log:      log.NewHelper(log.With(deps.Logger, "game_id", g.GameID())),
		freeSpin: deps.FreeSpin,
	}
}

func (s *Session) Game() base.IGame {
	return s.game
}

// Init 先让标题设置初始化前标志，再执行一次宿主初始化
func (s *Session) Init() error {
	if s.initialized {
		return errors.Conflict(ReasonAlreadyInitialized, "session already initialized")
	}
	s.opts = hook.InitOptions{AnticipationReel: s.game.Layout().Reels - 1}
	if c := s.game.AsPreInitConfigurer(); c != nil {
		c.ConfigurePreInit(&s.opts)
	}
	s.initialized = true

	// 宿主只在这里读取一次标志
	switch {
	case s.opts.SuppressAnticipationFanfare:
		s.log.Debugf("anticipation fanfare suppressed, reel=%d", s.opts.AnticipationReel)
	case s.deps.Fanfare == nil:
		s.log.Debug("no anticipation fanfare provided")
	default:
		s.fanfare = s.deps.Fanfare
	}
	return nil
}

// InitOptions 初始化时生效的标志
func (s *Session) InitOptions() hook.InitOptions {
	return s.opts
}

// StopOrder 标题停轮表，只加载一次
func (s *Session) StopOrder() (*stoporder.Table, error) {
	s.tableOnce.Do(func() {
		s.table, s.tableErr = game.StopOrderOf(s.game)
	})
	return s.table, s.tableErr
}

// StartFreeSpins 免费游戏开局，先执行带入判断，之后才接受 spin；
// 普通会话调用时切换为免费游戏
func (s *Session) StartFreeSpins(prev decimal.Decimal) (bool, error) {
	if !s.initialized {
		return false, errors.BadRequest(ReasonNotInitialized, "session not initialized")
	}
	s.freeSpin = true
	s.started = false
	s.rollup = hook.Rollup{}

	applied := false
	if h := s.game.AsSessionStartHook(); h != nil {
		sc := &hook.SessionContext{
			TitleID:        s.game.GameID(),
			PreviousPayout: prev,
			Rollup:         &s.rollup,
			Display:        s.deps.Display,
		}
		if h.CarryOverNeeded(sc) {
			h.CarryOver(sc)
			applied = true
			s.log.Infof("carry over payout %s into free spins", prev.String())
		}
	}
	s.started = true
	return applied, nil
}

// Rollup 当前免费游戏累计
func (s *Session) Rollup() decimal.Decimal {
	return s.rollup.Total()
}

// ResolveSpin spin 结算后的钩子；有停留时长时阻塞到停留结束
func (s *Session) ResolveSpin(res *spin.Result) (hook.PostSpinResult, error) {
	var out hook.PostSpinResult
	if !s.initialized {
		return out, errors.BadRequest(ReasonNotInitialized, "session not initialized")
	}
	if s.freeSpin && !s.started {
		return out, errors.BadRequest(ReasonNotStarted, "free spin session not started")
	}

	if h := s.game.AsPostSpinHook(); h != nil {
		out = h.AfterSpin(&hook.SpinContext{
			TitleID: s.game.GameID(),
			Payout:  res.Payout,
			Grid:    res.Grid,
			Audio:   s.deps.Audio,
		})
	}
	if s.deps.Presenter != nil {
		for _, req := range out.Animations {
			s.deps.Presenter.Animate(req)
		}
	}
	if s.fanfare != nil && s.anticipates(res.Grid) {
		s.fanfare(s.opts.AnticipationReel)
	}
	if s.freeSpin {
		s.rollup.Add(res.Payout)
	}
	if out.Hold > 0 {
		s.deps.Clock.Sleep(out.Hold)
	}
	return out, nil
}

func (s *Session) anticipates(grid [][]string) bool {
	r := s.opts.AnticipationReel
	if r < 0 || r >= len(grid) {
		return false
	}
	for _, sym := range grid[r] {
		for _, a := range s.deps.AnticipationSymbols {
			if sym == a {
				return true
			}
		}
	}
	return false
}
