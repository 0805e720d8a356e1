package data

import (
	"context"
	"fmt"
	"time"

	"reelcfg/internal/biz"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const redisTimeout = 5 * time.Second

// carryOverLog 派彩带入审计
type carryOverLog struct {
	ID        int64  `xorm:"pk autoincr 'id'"`
	GameID    int64  `xorm:"index 'game_id'"`
	Member    string `xorm:"varchar(64) index 'member'"`
	Amount    string `xorm:"varchar(32) 'amount'"`
	Display   string `xorm:"varchar(32) 'display'"`
	Applied   bool   `xorm:"'applied'"`
	CreatedAt int64  `xorm:"created 'created_at'"`
}

func (carryOverLog) TableName() string {
	return "carry_over_log"
}

// payoutKey reelcfg:payout:{gameID}:{member}
func payoutKey(gameID int64, member string) string {
	return fmt.Sprintf("reelcfg:payout:%d:%s", gameID, member)
}

// SaveBonusPayout bonus 结束时记录派彩，等待下一局免费游戏领取
func (r *dataRepo) SaveBonusPayout(ctx context.Context, gameID int64, member string, amount decimal.Decimal) error {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	if err := r.data.rdb.Set(ctx, payoutKey(gameID, member), amount.String(), r.payoutTTL).Err(); err != nil {
		return errors.Newf(500, "REDIS_PAYOUT_SAVE_FAILED", "save payout: %v", err)
	}
	return nil
}

// TakeBonusPayout 读取即转移所有权（GETDEL），不存在返回 0
func (r *dataRepo) TakeBonusPayout(ctx context.Context, gameID int64, member string) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	v, err := r.data.rdb.GetDel(ctx, payoutKey(gameID, member)).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, errors.Newf(500, "REDIS_PAYOUT_TAKE_FAILED", "take payout: %v", err)
	}
	amount, err := decimal.NewFromString(v)
	if err != nil {
		r.log.Warnf("drop malformed payout game=%d member=%s value=%q", gameID, member, v)
		return decimal.Zero, nil
	}
	return amount, nil
}

// InsertCarryOverLog 写入审计记录
func (r *dataRepo) InsertCarryOverLog(ctx context.Context, rec biz.CarryOverRecord) error {
	row := &carryOverLog{
		GameID:  rec.GameID,
		Member:  rec.Member,
		Amount:  rec.Amount.String(),
		Display: rec.Display,
		Applied: rec.Applied,
	}
	if _, err := r.data.db.Context(ctx).Insert(row); err != nil {
		return fmt.Errorf("insert carry_over_log: %w", err)
	}
	return nil
}
