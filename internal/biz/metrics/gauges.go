package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	labelGameID = "game_id"
	labelCue    = "cue"
)

// 指标名规范：reelcfg_<name>，标签 game_id

var (
	stopOrderGroups = promauto.NewGaugeVec(prometheus.GaugeOpts{Name: "reelcfg_stop_order_groups", Help: "停轮表组数"}, []string{labelGameID})
	spinsResolved   = newCounter("reelcfg_spins_resolved_total", "已处理 spin 数")
	animations      = newCounter("reelcfg_animations_total", "outcome 动画请求数")
	carryOvers      = newCounter("reelcfg_carry_overs_total", "派彩带入次数")
	carryOverAmount = newCounter("reelcfg_carry_over_amount_total", "派彩带入金额")
	cuesPlayed      = promauto.NewCounterVec(prometheus.CounterOpts{Name: "reelcfg_cues_played_total", Help: "bonus 音效次数"}, []string{labelGameID, labelCue})
)

func newCounter(name, help string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, []string{labelGameID})
}

func gameLabel(gameID int64) string {
	return strconv.FormatInt(gameID, 10)
}

func ObserveStopOrder(gameID int64, groups int) {
	stopOrderGroups.WithLabelValues(gameLabel(gameID)).Set(float64(groups))
}

// ObserveSpin 一次 spin 的钩子输出
func ObserveSpin(gameID int64, cue string, animationCount int) {
	id := gameLabel(gameID)
	spinsResolved.WithLabelValues(id).Inc()
	if cue != "" {
		cuesPlayed.WithLabelValues(id, cue).Inc()
	}
	if animationCount > 0 {
		animations.WithLabelValues(id).Add(float64(animationCount))
	}
}

func ObserveCarryOver(gameID int64, amount float64) {
	id := gameLabel(gameID)
	carryOvers.WithLabelValues(id).Inc()
	carryOverAmount.WithLabelValues(id).Add(amount)
}
