package service

import (
	"context"
	"io"
	"strconv"
	"strings"

	"reelcfg/internal/biz"
	"reelcfg/internal/biz/replay"
	"reelcfg/internal/biz/stoporder"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/shopspring/decimal"
)

// Game 标题概要
type Game struct {
	GameID       int64            `json:"game_id"`
	GameName     string           `json:"game_name"`
	Layout       stoporder.Layout `json:"layout"`
	Capabilities []string         `json:"capabilities"`
}

type ListGamesResponse struct {
	Games []*Game `json:"games"`
	Total int32   `json:"total"`
}

type StopOrderResponse struct {
	GameID int64             `json:"game_id"`
	Layout stoporder.Layout  `json:"layout"`
	Groups []stoporder.Group `json:"groups"`
}

type BonusPayoutRequest struct {
	Member string          `json:"member"`
	Amount decimal.Decimal `json:"amount"`
}

func (r *BonusPayoutRequest) Validate() error {
	if strings.TrimSpace(r.Member) == "" {
		return errors.BadRequest("MEMBER_EMPTY", "member is required")
	}
	return nil
}

type FreeSpinStartRequest struct {
	Member string `json:"member"`
}

func (r *FreeSpinStartRequest) Validate() error {
	if strings.TrimSpace(r.Member) == "" {
		return errors.BadRequest("MEMBER_EMPTY", "member is required")
	}
	return nil
}

type ReplayRequest struct {
	Records []replay.Record `json:"records"`
}

func (r *ReplayRequest) Validate() error {
	if len(r.Records) == 0 {
		return errors.BadRequest("REPLAY_EMPTY", "records are required")
	}
	return nil
}

type ReplayResponse struct {
	Report    *replay.Report `json:"report"`
	ReportURL string         `json:"report_url,omitempty"`
}

// GameService 标题配置服务
type GameService struct {
	uc  *biz.UseCase
	log *log.Helper
}

func NewGameService(uc *biz.UseCase, logger log.Logger) *GameService {
	return &GameService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

// RegisterHTTP 注册路由
func (s *GameService) RegisterHTTP(srv *http.Server) {
	r := srv.Route("/")
	r.GET("/v1/titles", s.listGames)
	r.GET("/v1/titles/{id}/stop-order", s.stopOrder)
	r.POST("/v1/titles/{id}/spins", s.resolveSpin)
	r.POST("/v1/titles/{id}/bonus-payout", s.saveBonusPayout)
	r.POST("/v1/titles/{id}/free-spins/start", s.startFreeSpins)
	r.POST("/v1/replay", s.runReplay)
}

// ListGames 获取标题列表
func (s *GameService) ListGames(ctx context.Context) (*ListGamesResponse, error) {
	all := s.uc.ListGames()
	games := make([]*Game, len(all))
	for i, g := range all {
		var caps []string
		if g.AsStopOrderSupplier() != nil {
			caps = append(caps, "stop_order")
		}
		if g.AsPostSpinHook() != nil {
			caps = append(caps, "post_spin")
		}
		if g.AsSessionStartHook() != nil {
			caps = append(caps, "session_start")
		}
		if g.AsPreInitConfigurer() != nil {
			caps = append(caps, "pre_init")
		}
		games[i] = &Game{GameID: g.GameID(), GameName: g.Name(), Layout: g.Layout(), Capabilities: caps}
	}
	return &ListGamesResponse{Games: games, Total: int32(len(games))}, nil
}

// StopOrder 标题停轮表
func (s *GameService) StopOrder(ctx context.Context, gameID int64) (*StopOrderResponse, error) {
	tbl, err := s.uc.StopOrder(gameID)
	if err != nil {
		return nil, err
	}
	return &StopOrderResponse{GameID: gameID, Layout: tbl.Layout(), Groups: tbl.Groups()}, nil
}

func (s *GameService) listGames(ctx http.Context) error {
	h := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
		return s.ListGames(c)
	})
	out, err := h(ctx, nil)
	if err != nil {
		return err
	}
	return ctx.Result(200, out)
}

func (s *GameService) stopOrder(ctx http.Context) error {
	gameID, err := pathGameID(ctx)
	if err != nil {
		return err
	}
	h := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
		return s.StopOrder(c, gameID)
	})
	out, err := h(ctx, nil)
	if err != nil {
		return err
	}
	return ctx.Result(200, out)
}

// resolveSpin 请求体即服务端下发的结果负载（JSON 或 protobuf）
func (s *GameService) resolveSpin(ctx http.Context) error {
	gameID, err := pathGameID(ctx)
	if err != nil {
		return err
	}
	payload, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return errors.BadRequest("BODY_READ_FAILED", err.Error())
	}
	h := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
		return s.uc.ResolveSpin(c, gameID, payload)
	})
	out, err := h(ctx, nil)
	if err != nil {
		return err
	}
	return ctx.Result(200, out)
}

func (s *GameService) saveBonusPayout(ctx http.Context) error {
	gameID, err := pathGameID(ctx)
	if err != nil {
		return err
	}
	var in BonusPayoutRequest
	if err := ctx.Bind(&in); err != nil {
		return err
	}
	h := ctx.Middleware(func(c context.Context, req interface{}) (interface{}, error) {
		r := req.(*BonusPayoutRequest)
		return struct{}{}, s.uc.SaveBonusPayout(c, gameID, r.Member, r.Amount)
	})
	out, err := h(ctx, &in)
	if err != nil {
		return err
	}
	return ctx.Result(200, out)
}

func (s *GameService) startFreeSpins(ctx http.Context) error {
	gameID, err := pathGameID(ctx)
	if err != nil {
		return err
	}
	var in FreeSpinStartRequest
	if err := ctx.Bind(&in); err != nil {
		return err
	}
	h := ctx.Middleware(func(c context.Context, req interface{}) (interface{}, error) {
		return s.uc.StartFreeSpins(c, gameID, req.(*FreeSpinStartRequest).Member)
	})
	out, err := h(ctx, &in)
	if err != nil {
		return err
	}
	return ctx.Result(200, out)
}

func (s *GameService) runReplay(ctx http.Context) error {
	var in ReplayRequest
	if err := ctx.Bind(&in); err != nil {
		return err
	}
	h := ctx.Middleware(func(c context.Context, req interface{}) (interface{}, error) {
		report, url, err := s.uc.RunReplay(c, req.(*ReplayRequest).Records)
		if err != nil {
			return nil, err
		}
		return &ReplayResponse{Report: report, ReportURL: url}, nil
	})
	out, err := h(ctx, &in)
	if err != nil {
		return err
	}
	return ctx.Result(200, out)
}

func pathGameID(ctx http.Context) (int64, error) {
	raw := ctx.Vars().Get("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.BadRequest("GAME_ID_INVALID", "invalid game id: "+raw)
	}
	return id, nil
}
