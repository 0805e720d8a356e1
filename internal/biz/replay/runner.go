package replay

import (
	"context"
	"fmt"
	"sync"
	"time"

	"reelcfg/internal/biz/engine"
	"reelcfg/internal/biz/game/base"
	"reelcfg/internal/biz/hook"
	"reelcfg/internal/biz/spin"
	"reelcfg/pkg/xgo"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/panjf2000/ants/v2"
	"github.com/shopspring/decimal"
)

const defaultWorkers = 64

// Record 一段录制的会话：可选的免费游戏开局 + 依次下发的结果负载
type Record struct {
	GameID         int64           `json:"game_id"`
	Member         string          `json:"member"`
	FreeSpins      bool            `json:"free_spins"`
	PreviousPayout decimal.Decimal `json:"previous_payout"`
	Spins          [][]byte        `json:"spins"`
}

// GameLookup 按 ID 查标题
type GameLookup func(gameID int64) (base.IGame, bool)

// Runner 离线回放，会话之间并发，会话内部串行
type Runner struct {
	lookup  GameLookup
	workers int
	log     *log.Helper
}

func NewRunner(lookup GameLookup, workers int, logger log.Logger) *Runner {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Runner{lookup: lookup, workers: workers, log: log.NewHelper(logger)}
}

// Run 回放全部记录；ctx 取消后未开始的会话不再执行
func (r *Runner) Run(ctx context.Context, records []Record) (*Report, error) {
	pool, err := ants.NewPool(r.workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create ants pool: %v", err)
	}
	defer pool.Release()

	start := time.Now()
	st := newStats()
	var wg sync.WaitGroup
	for i := range records {
		rec := &records[i]
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			defer xgo.RecoverFromError(func(any) { st.failedSessions.Add(1) })
			r.runOne(rec, st)
		}); err != nil {
			wg.Done()
			st.failedSessions.Add(1)
			st.addError(err)
		}
	}
	wg.Wait()

	report := st.report(time.Since(start))
	r.log.Infof("replay done: sessions=%d spins=%d failed=%d(%.2f%%) elapsed=%s",
		report.Sessions, report.Spins, report.FailedSpins, report.FailedPct, report.Elapsed)
	return report, ctx.Err()
}

func (r *Runner) runOne(rec *Record, st *stats) {
	st.sessions.Add(1)
	g, ok := r.lookup(rec.GameID)
	if !ok {
		st.failedSessions.Add(1)
		st.addError(fmt.Errorf("game not found: %d", rec.GameID))
		return
	}

	sink := &sessionSink{st: st}
	sess := engine.NewSession(g, engine.Deps{Audio: sink, Presenter: sink, Clock: sink, FreeSpin: rec.FreeSpins})
	if err := sess.Init(); err != nil {
		st.failedSessions.Add(1)
		st.addError(err)
		return
	}
	if rec.FreeSpins {
		applied, err := sess.StartFreeSpins(rec.PreviousPayout)
		if err != nil {
			st.failedSessions.Add(1)
			st.addError(err)
			return
		}
		if applied {
			st.addCarryOver(rec.PreviousPayout)
		}
	}
	for _, raw := range rec.Spins {
		st.spins.Add(1)
		res, err := spin.Decode(raw, g.PayloadConverter())
		if err == nil {
			_, err = sess.ResolveSpin(res)
		}
		if err != nil {
			st.failedSpins.Add(1)
			st.addError(err)
		}
	}
}

// sessionSink 回放时的宿主通道：记录音效与动画，停留只累计不阻塞
type sessionSink struct {
	st *stats
}

func (s *sessionSink) Play(cue string) { s.st.addCue(cue) }

func (s *sessionSink) Animate(hook.AnimationRequest) { s.st.animations.Add(1) }

func (s *sessionSink) Sleep(d time.Duration) { s.st.hold.Add(int64(d)) }
