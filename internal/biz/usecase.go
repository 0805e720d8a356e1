package biz

import (
	"context"
	"fmt"
	"time"

	"reelcfg/internal/biz/engine"
	"reelcfg/internal/biz/game"
	"reelcfg/internal/biz/game/base"
	"reelcfg/internal/biz/hook"
	"reelcfg/internal/biz/metrics"
	"reelcfg/internal/biz/replay"
	"reelcfg/internal/biz/spin"
	"reelcfg/internal/biz/stoporder"
	"reelcfg/internal/conf"
	"reelcfg/internal/notify"
	"reelcfg/pkg/xgo"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"github.com/shopspring/decimal"
)

// ProviderSet is biz providers.
var ProviderSet = wire.NewSet(NewUseCase)

const (
	ReasonGameNotFound = "GAME_NOT_FOUND"
	validateTimeout    = 30 * time.Second
)

// CarryOverRecord 派彩带入审计
type CarryOverRecord struct {
	GameID  int64
	Member  string
	Amount  decimal.Decimal
	Display string
	Applied bool
}

// DataRepo 数据层接口：派彩交接 / 审计 / 报告上传
type DataRepo interface {
	SaveBonusPayout(ctx context.Context, gameID int64, member string, amount decimal.Decimal) error
	TakeBonusPayout(ctx context.Context, gameID int64, member string) (decimal.Decimal, error)
	InsertCarryOverLog(ctx context.Context, rec CarryOverRecord) error
	UploadBytes(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// SpinOutcome 一次 spin 的钩子输出，停留由调用方表现层执行。
// 服务端无会话状态：免费游戏累计由客户端从 FreeSpinStart.Rollup 起，逐次加上 Win
type SpinOutcome struct {
	Win        string                  `json:"win"`
	Cue        string                  `json:"cue,omitempty"`
	Animations []hook.AnimationRequest `json:"animations"`
	HoldMs     int64                   `json:"hold_ms"`
	Fanfare    bool                    `json:"fanfare"`
}

// FreeSpinStart 免费游戏开局结果，Rollup 为带入后的累计起点，之后由客户端维护
type FreeSpinStart struct {
	Applied bool   `json:"applied"`
	Display string `json:"display,omitempty"`
	Rollup  string `json:"rollup"`
}

// UseCase 编排层：标题池 + 引擎会话 + 数据层
type UseCase struct {
	repo     DataRepo
	log      *log.Helper
	logger   log.Logger
	c        *conf.Replay
	gamePool *game.Pool
	runner   *replay.Runner
	notify   notify.Notifier
}

// NewUseCase 启动时校验全部标题的停轮表，失败直接退出
func NewUseCase(repo DataRepo, logger log.Logger, c *conf.Replay, n notify.Notifier) (*UseCase, func(), error) {
	return newUseCase(game.NewPool(), repo, logger, c, n)
}

func newUseCase(pool *game.Pool, repo DataRepo, logger log.Logger, c *conf.Replay, n notify.Notifier) (*UseCase, func(), error) {
	if c == nil {
		c = &conf.Replay{}
	}
	if n == nil {
		n = notify.Noop{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), validateTimeout)
	defer cancel()
	if err := pool.Validate(ctx); err != nil {
		return nil, nil, fmt.Errorf("validate stop orders: %w", err)
	}

	uc := &UseCase{
		repo:     repo,
		log:      log.NewHelper(logger),
		logger:   logger,
		c:        c,
		gamePool: pool,
		runner:   replay.NewRunner(pool.Get, int(c.Workers), logger),
		notify:   n,
	}
	for _, g := range pool.List() {
		tbl, _ := game.StopOrderOf(g)
		metrics.ObserveStopOrder(g.GameID(), tbl.Len())
		uc.log.Infof("game loaded: id=%d name=%s groups=%d", g.GameID(), g.Name(), tbl.Len())
	}
	return uc, func() {}, nil
}

// GetGame 按 gameID 获取标题
func (uc *UseCase) GetGame(gameID int64) (base.IGame, error) {
	g, ok := uc.gamePool.Get(gameID)
	if !ok {
		return nil, errors.NotFound(ReasonGameNotFound, fmt.Sprintf("game not found: %d", gameID))
	}
	return g, nil
}

// ListGames 返回标题列表副本（按 GameID 升序）
func (uc *UseCase) ListGames() []base.IGame {
	return uc.gamePool.List()
}

// StopOrder 标题停轮表，未覆盖时为引擎默认表
func (uc *UseCase) StopOrder(gameID int64) (*stoporder.Table, error) {
	g, err := uc.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.StopOrderOf(g)
}

// ResolveSpin 执行 post-spin 钩子，不在服务端停留
func (uc *UseCase) ResolveSpin(ctx context.Context, gameID int64, payload []byte) (*SpinOutcome, error) {
	g, err := uc.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	res, err := spin.Decode(payload, g.PayloadConverter())
	if err != nil {
		return nil, err
	}

	out := &SpinOutcome{Animations: []hook.AnimationRequest{}}
	sess := engine.NewSession(g, engine.Deps{
		Clock:   skipHold{},
		Fanfare: func(int) { out.Fanfare = true },
		Logger:  uc.logger,
	})
	if err := sess.Init(); err != nil {
		return nil, err
	}
	r, err := sess.ResolveSpin(res)
	if err != nil {
		return nil, err
	}
	out.Win = hook.FormatCredits(res.Payout)
	out.Cue = r.Cue
	if len(r.Animations) > 0 {
		out.Animations = r.Animations
	}
	out.HoldMs = r.Hold.Milliseconds()
	metrics.ObserveSpin(gameID, r.Cue, len(r.Animations))
	uc.log.WithContext(ctx).Debugf("spin resolved: game=%d %s", gameID, xgo.ToJSON(out))
	return out, nil
}

// SaveBonusPayout bonus 结束记录派彩
func (uc *UseCase) SaveBonusPayout(ctx context.Context, gameID int64, member string, amount decimal.Decimal) error {
	if _, err := uc.GetGame(gameID); err != nil {
		return err
	}
	if amount.IsNegative() {
		return errors.BadRequest("PAYOUT_NEGATIVE", "payout must not be negative")
	}
	return uc.repo.SaveBonusPayout(ctx, gameID, member, amount)
}

// StartFreeSpins 领取上一局派彩，在第一次 spin 前执行带入判断
func (uc *UseCase) StartFreeSpins(ctx context.Context, gameID int64, member string) (*FreeSpinStart, error) {
	g, err := uc.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	prev, err := uc.repo.TakeBonusPayout(ctx, gameID, member)
	if err != nil {
		return nil, err
	}

	display := &lastDisplay{}
	sess := engine.NewSession(g, engine.Deps{Display: display, Logger: uc.logger, FreeSpin: true})
	if err := sess.Init(); err != nil {
		return nil, err
	}
	applied, err := sess.StartFreeSpins(prev)
	if err != nil {
		return nil, err
	}

	out := &FreeSpinStart{Applied: applied, Display: display.text, Rollup: hook.FormatCredits(sess.Rollup())}
	if applied {
		f, _ := prev.Float64()
		metrics.ObserveCarryOver(gameID, f)
	}
	if !prev.IsZero() {
		// 派彩已转移，审计失败不影响开局
		if err := uc.repo.InsertCarryOverLog(ctx, CarryOverRecord{
			GameID: gameID, Member: member, Amount: prev, Display: display.text, Applied: applied,
		}); err != nil {
			uc.log.Errorf("InsertCarryOverLog: %v", err)
		}
	}
	return out, nil
}

// RunReplay 回放录制的会话，按配置上传报告并通知
func (uc *UseCase) RunReplay(ctx context.Context, records []replay.Record) (*replay.Report, string, error) {
	report, err := uc.runner.Run(ctx, records)
	if err != nil {
		return nil, "", err
	}

	var url string
	if uc.c.UploadReport {
		key := fmt.Sprintf("%s/%s.json", uc.c.ReportPrefix, time.Now().Format("20060102-150405.000"))
		url, err = uc.repo.UploadBytes(ctx, key, "application/json", []byte(xgo.ToJSONPretty(report)))
		if err != nil {
			uc.log.Errorf("upload replay report: %v", err)
		}
	}

	msg := notify.BuildReplayMessage(report, url)
	if err := uc.notify.Send(ctx, msg); err != nil {
		uc.log.Warnf("notify replay report: %v", err)
	}
	return report, url, nil
}

// skipHold 服务端不停留，停留时长返回给调用方
type skipHold struct{}

func (skipHold) Sleep(time.Duration) {}

type lastDisplay struct {
	text string
}

func (d *lastDisplay) Show(text string) { d.text = text }
