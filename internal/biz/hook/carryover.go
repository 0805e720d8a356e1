package hook

import "github.com/shopspring/decimal"

// CarryOver 上一局 bonus 派彩带入免费游戏
type CarryOver struct{}

// Needed 上一局派彩非 0
func (CarryOver) Needed(prev decimal.Decimal) bool {
	return !prev.IsZero()
}

// Apply 展示派彩并以其作为 rollup 起始值，不满足条件时不做任何事
func (c CarryOver) Apply(s *SessionContext) bool {
	if !c.Needed(s.PreviousPayout) {
		return false
	}
	if s.Display != nil {
		s.Display.Show(FormatCredits(s.PreviousPayout))
	}
	if s.Rollup != nil {
		s.Rollup.Seed(s.PreviousPayout)
	}
	return true
}

// FormatCredits 整数不带小数位，否则保留两位
func FormatCredits(v decimal.Decimal) string {
	if v.IsInteger() {
		return v.String()
	}
	return v.StringFixed(2)
}
