package engine

import "reelcfg/internal/biz/stoporder"

// ReelDriver 宿主转轮
type ReelDriver interface {
	// AwaitSpin 等待该轴/层的默认转动结束
	AwaitSpin(p stoporder.Pair)
	// Commit 锁定到停点
	Commit(d stoporder.Descriptor)
}

// PlayStops 按组顺序停轮：每组先等待本组首次寻址的轴/层转完，再提交本组停点
func (s *Session) PlayStops(drv ReelDriver) ([]stoporder.Descriptor, error) {
	tbl, err := s.StopOrder()
	if err != nil {
		return nil, err
	}
	addressed := make(map[stoporder.Pair]struct{})
	trace := make([]stoporder.Descriptor, 0, tbl.Len())
	for _, g := range tbl.Groups() {
		for _, d := range g {
			if _, ok := addressed[d.Pair()]; ok {
				continue
			}
			addressed[d.Pair()] = struct{}{}
			drv.AwaitSpin(d.Pair())
		}
		for _, d := range g {
			drv.Commit(d)
			trace = append(trace, d)
		}
	}
	return trace, nil
}
