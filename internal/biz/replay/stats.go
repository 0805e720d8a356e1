package replay

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"reelcfg/pkg/xgo"

	"github.com/shopspring/decimal"
)

// Report 回放汇总
type Report struct {
	Sessions       int64            `json:"sessions"`
	FailedSessions int64            `json:"failed_sessions"`
	Spins          int64            `json:"spins"`
	FailedSpins    int64            `json:"failed_spins"`
	FailedPct      float64          `json:"failed_pct"`
	Cues           map[string]int64 `json:"cues"`
	Animations     int64            `json:"animations"`
	CarryOvers     int64            `json:"carry_overs"`
	CarryOverTotal decimal.Decimal  `json:"carry_over_total"`
	TotalHold      string           `json:"total_hold"`
	Elapsed        string           `json:"elapsed"`
	Errors         map[string]int64 `json:"errors,omitempty"`
}

// stats 并发累计
type stats struct {
	sessions       atomic.Int64
	failedSessions atomic.Int64
	spins          atomic.Int64
	failedSpins    atomic.Int64
	animations     atomic.Int64
	carryOvers     atomic.Int64
	hold           atomic.Int64

	mu             sync.Mutex
	cues           map[string]int64
	errorCounts    map[string]int64
	carryOverTotal decimal.Decimal
}

func newStats() *stats {
	return &stats{
		cues:        make(map[string]int64),
		errorCounts: make(map[string]int64),
	}
}

func (s *stats) addCue(cue string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cues[cue]++
}

func (s *stats) addCarryOver(v decimal.Decimal) {
	s.carryOvers.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carryOverTotal = s.carryOverTotal.Add(v)
}

func (s *stats) addError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errorCounts[err.Error()]++
}

func (s *stats) report(elapsed time.Duration) *Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &Report{
		Sessions:       s.sessions.Load(),
		FailedSessions: s.failedSessions.Load(),
		Spins:          s.spins.Load(),
		FailedSpins:    s.failedSpins.Load(),
		Cues:           make(map[string]int64, len(s.cues)),
		Animations:     s.animations.Load(),
		CarryOvers:     s.carryOvers.Load(),
		CarryOverTotal: s.carryOverTotal,
		TotalHold:      xgo.ShortDuration(time.Duration(s.hold.Load())),
		Elapsed:        xgo.ShortDuration(elapsed),
	}
	r.FailedPct = xgo.Pct(r.FailedSpins, r.Spins)
	for k, v := range s.cues {
		r.Cues[k] = v
	}
	if len(s.errorCounts) > 0 {
		r.Errors = make(map[string]int64, len(s.errorCounts))
		for k, v := range s.errorCounts {
			r.Errors[k] = v
		}
	}
	return r
}

// TopCues 按次数倒序的音效名
func (r *Report) TopCues() []string {
	names := make([]string, 0, len(r.Cues))
	for k := range r.Cues {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		if r.Cues[names[i]] != r.Cues[names[j]] {
			return r.Cues[names[i]] > r.Cues[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
